package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/irwhub/employee-contract-app/config"
	"github.com/irwhub/employee-contract-app/internal/auth"
	"github.com/irwhub/employee-contract-app/models"
)

const testJWTSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Employee{}))

	a := NewAuth(db, nil, nil, config.Config{Identity: config.Identity{JWTSecret: testJWTSecret}})
	r := gin.New()
	r.Use(a.Handler())
	r.GET("/whoami", func(c *gin.Context) {
		emp, ok := CurrentEmployee(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, emp)
	})
	return r, db
}

func signToken(t *testing.T, email, secret string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"exp":   exp.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func get(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthAcceptsValidToken(t *testing.T) {
	r, db := newAuthTestRouter(t)
	emp := models.Employee{Name: "김직원", DateOfBirth: "1995-05-10", PINHash: "x", Role: models.RoleStaff, IsActive: true}
	require.NoError(t, db.Create(&emp).Error)

	token := signToken(t, auth.ShadowEmail(emp.ID), testJWTSecret, time.Now().Add(time.Hour))
	w := get(r, "Bearer "+token)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "김직원")
}

func TestAuthRejects(t *testing.T) {
	r, db := newAuthTestRouter(t)
	active := models.Employee{Name: "김직원", DateOfBirth: "1995-05-10", PINHash: "x", Role: models.RoleStaff, IsActive: true}
	require.NoError(t, db.Create(&active).Error)
	inactive := models.Employee{Name: "퇴사자", DateOfBirth: "1990-01-01", PINHash: "x", Role: models.RoleStaff, IsActive: false}
	require.NoError(t, db.Create(&inactive).Error)

	valid := signToken(t, auth.ShadowEmail(active.ID), testJWTSecret, time.Now().Add(time.Hour))

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"malformed header", valid},
		{"wrong scheme", "Basic " + valid},
		{"garbage token", "Bearer not-a-jwt"},
		{"wrong secret", "Bearer " + signToken(t, auth.ShadowEmail(active.ID), "other-secret", time.Now().Add(time.Hour))},
		{"expired token", "Bearer " + signToken(t, auth.ShadowEmail(active.ID), testJWTSecret, time.Now().Add(-time.Hour))},
		{"foreign email", "Bearer " + signToken(t, "someone@example.com", testJWTSecret, time.Now().Add(time.Hour))},
		{"inactive employee", "Bearer " + signToken(t, auth.ShadowEmail(inactive.ID), testJWTSecret, time.Now().Add(time.Hour))},
		{"unknown employee", "Bearer " + signToken(t, auth.ShadowEmail(9999), testJWTSecret, time.Now().Add(time.Hour))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, get(r, tc.header).Code)
		})
	}
}
