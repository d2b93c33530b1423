package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/irwhub/employee-contract-app/config"
	"github.com/irwhub/employee-contract-app/internal/auth"
	"github.com/irwhub/employee-contract-app/internal/identity"
	"github.com/irwhub/employee-contract-app/models"
)

const employeeCacheTTL = 10 * time.Minute

// CachedEmployee is the slice of the employee record kept in the
// request context and in the Redis cache.
type CachedEmployee struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

func (e CachedEmployee) IsAdmin() bool { return e.Role == models.RoleAdmin }

// Auth resolves bearer tokens to active employees. When the identity
// provider's JWT secret is configured the token is verified locally;
// otherwise each request costs a user-lookup call against the provider.
type Auth struct {
	db        *gorm.DB
	rdb       *redis.Client
	idp       *identity.Client
	jwtSecret []byte
}

func NewAuth(db *gorm.DB, rdb *redis.Client, idp *identity.Client, cfg config.Config) *Auth {
	var secret []byte
	if cfg.Identity.JWTSecret != "" {
		secret = []byte(cfg.Identity.JWTSecret)
	}
	return &Auth{db: db, rdb: rdb, idp: idp, jwtSecret: secret}
}

func (a *Auth) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			handleAuthError(c, "Authorization token not provided")
			return
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			handleAuthError(c, "Invalid Authorization header format")
			return
		}

		employeeID, err := a.resolveEmployeeID(c.Request.Context(), parts[1])
		if err != nil {
			slog.Warn("Bearer token rejected", "error", err)
			handleAuthError(c, "Invalid or expired token")
			return
		}

		emp, err := a.loadEmployee(c.Request.Context(), employeeID)
		if err != nil {
			handleAuthError(c, "Employee not found or inactive")
			return
		}

		c.Set("employee", *emp)
		c.Next()
	}
}

// resolveEmployeeID maps a bearer token to the employee id encoded in
// the shadow account's email.
func (a *Auth) resolveEmployeeID(ctx context.Context, token string) (uint, error) {
	if len(a.jwtSecret) > 0 {
		parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return a.jwtSecret, nil
		})
		if err != nil {
			return 0, err
		}
		claims, ok := parsed.Claims.(jwt.MapClaims)
		if !ok {
			return 0, errors.New("invalid token claims")
		}
		email, _ := claims["email"].(string)
		return auth.EmployeeIDFromShadowEmail(email)
	}

	user, err := a.idp.GetUser(ctx, token)
	if err != nil {
		return 0, err
	}
	return auth.EmployeeIDFromShadowEmail(user.Email)
}

func (a *Auth) loadEmployee(ctx context.Context, id uint) (*CachedEmployee, error) {
	cacheKey := fmt.Sprintf("employee:%d:data", id)

	if a.rdb != nil {
		cached, err := a.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var emp CachedEmployee
			if json.Unmarshal([]byte(cached), &emp) == nil {
				return &emp, nil
			}
			slog.Warn("Failed to unmarshal cached employee", "employee_id", id)
		} else if err != redis.Nil {
			slog.Error("Redis GET failed", "error", err, "employee_id", id)
		}
	}

	var dbEmp models.Employee
	if err := a.db.WithContext(ctx).Where("is_active = ?", true).First(&dbEmp, id).Error; err != nil {
		return nil, err
	}
	emp := CachedEmployee{ID: dbEmp.ID, Name: dbEmp.Name, Role: dbEmp.Role}

	if a.rdb != nil {
		if data, err := json.Marshal(emp); err == nil {
			if err := a.rdb.Set(ctx, cacheKey, data, employeeCacheTTL).Err(); err != nil {
				slog.Error("Failed to cache employee data", "error", err, "employee_id", id)
			}
		}
	}
	return &emp, nil
}

// CurrentEmployee returns the authenticated employee set by Handler.
func CurrentEmployee(c *gin.Context) (CachedEmployee, bool) {
	val, ok := c.Get("employee")
	if !ok {
		return CachedEmployee{}, false
	}
	emp, ok := val.(CachedEmployee)
	return emp, ok
}

func handleAuthError(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": message})
	c.Abort()
}
