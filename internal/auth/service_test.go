package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/irwhub/employee-contract-app/config"
	"github.com/irwhub/employee-contract-app/internal/apperr"
	"github.com/irwhub/employee-contract-app/internal/identity"
	"github.com/irwhub/employee-contract-app/models"
)

// fakeIdentityServer mimics the provider endpoints the bridge touches.
type fakeIdentityServer struct {
	upserts []string
	grants  []string
}

func (f *fakeIdentityServer) start(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/admin/users", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email string `json:"email"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.upserts = append(f.upserts, body.Email)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "shadow-1", "email": body.Email})
	})
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		f.grants = append(f.grants, r.URL.Query().Get("grant_type"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "test-access",
			"refresh_token": "test-refresh",
			"expires_in":    3600,
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestService(t *testing.T, idpURL string) (*Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Employee{}))

	idp := identity.NewClient(config.Identity{BaseURL: idpURL, ServiceKey: "service-key"})
	svc := NewService(db, idp, config.Config{PINPepper: "test-pepper"})
	return svc, db
}

func seedEmployee(t *testing.T, db *gorm.DB, name, dob, pin string, active bool) models.Employee {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.MinCost)
	require.NoError(t, err)
	emp := models.Employee{Name: name, DateOfBirth: dob, PINHash: string(hash), Role: models.RoleStaff, IsActive: active}
	require.NoError(t, db.Create(&emp).Error)
	return emp
}

func TestLoginSucceeds(t *testing.T) {
	idp := &fakeIdentityServer{}
	srv := idp.start(t)
	svc, db := newTestService(t, srv.URL)
	emp := seedEmployee(t, db, "김직원", "1995-05-10", "0000", true)

	result, err := svc.Login(context.Background(), "김직원", "1995-05-10", "0000")
	require.NoError(t, err)

	assert.Equal(t, "test-access", result.Session.AccessToken)
	assert.Equal(t, "test-refresh", result.Session.RefreshToken)
	assert.Equal(t, emp.ID, result.Profile.EmployeeID)
	assert.Equal(t, models.RoleStaff, result.Profile.Role)

	// Shadow account was reset and exchanged via the password grant.
	require.Len(t, idp.upserts, 1)
	assert.Equal(t, ShadowEmail(emp.ID), idp.upserts[0])
	assert.Equal(t, []string{"password"}, idp.grants)
}

func TestLoginAcceptsCompactDOB(t *testing.T) {
	idp := &fakeIdentityServer{}
	srv := idp.start(t)
	svc, db := newTestService(t, srv.URL)
	seedEmployee(t, db, "김직원", "1995-05-10", "0000", true)

	_, err := svc.Login(context.Background(), "김직원", "950510", "0000")
	require.NoError(t, err)
}

func TestLoginWrongPIN(t *testing.T) {
	idp := &fakeIdentityServer{}
	srv := idp.start(t)
	svc, db := newTestService(t, srv.URL)
	seedEmployee(t, db, "김직원", "1995-05-10", "0000", true)

	_, err := svc.Login(context.Background(), "김직원", "1995-05-10", "1234")
	require.Error(t, err)
	kind, ok := apperr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, apperr.Authentication, kind)
	assert.Empty(t, idp.upserts, "identity provider must not be touched on a failed PIN")
}

func TestLoginInactiveEmployeeFailsLikeUnknown(t *testing.T) {
	idp := &fakeIdentityServer{}
	srv := idp.start(t)
	svc, db := newTestService(t, srv.URL)
	seedEmployee(t, db, "퇴사자", "1990-01-01", "0000", false)

	_, inactiveErr := svc.Login(context.Background(), "퇴사자", "1990-01-01", "0000")
	_, unknownErr := svc.Login(context.Background(), "없는사람", "1990-01-01", "0000")

	require.Error(t, inactiveErr)
	require.Error(t, unknownErr)
	assert.Equal(t, unknownErr.Error(), inactiveErr.Error())
}

func TestLoginValidation(t *testing.T) {
	idp := &fakeIdentityServer{}
	srv := idp.start(t)
	svc, _ := newTestService(t, srv.URL)

	cases := []struct {
		name, dob, pin string
	}{
		{"", "1995-05-10", "0000"},
		{"김직원", "", "0000"},
		{"김직원", "1995-05-10", ""},
		{"김직원", "1995-05-32", "0000"},
		{"김직원", "1995-05-10", "12a4"},
		{"김직원", "1995-05-10", "12345"},
	}
	for _, tc := range cases {
		_, err := svc.Login(context.Background(), tc.name, tc.dob, tc.pin)
		require.Error(t, err)
		kind, ok := apperr.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, apperr.Validation, kind)
	}
}

func TestLoginMissingPepperIsConfigError(t *testing.T) {
	idp := &fakeIdentityServer{}
	srv := idp.start(t)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Employee{}))
	svc := NewService(db, identity.NewClient(config.Identity{BaseURL: srv.URL, ServiceKey: "k"}), config.Config{})

	_, err = svc.Login(context.Background(), "김직원", "1995-05-10", "0000")
	require.Error(t, err)
	kind, ok := apperr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, apperr.Configuration, kind)
}

func TestShadowEmailRoundTrip(t *testing.T) {
	id, err := EmployeeIDFromShadowEmail(ShadowEmail(42))
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	_, err = EmployeeIDFromShadowEmail("someone@example.com")
	assert.Error(t, err)
}
