// Package auth implements the credential bridge: it verifies a
// (name, date of birth, PIN) triple against the employee table and
// exchanges it for a bearer session on the employee's shadow account.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/irwhub/employee-contract-app/config"
	"github.com/irwhub/employee-contract-app/internal/apperr"
	"github.com/irwhub/employee-contract-app/internal/identity"
	"github.com/irwhub/employee-contract-app/models"
)

// One generic message for every credential failure so the response does
// not reveal whether the name, birth date or PIN was wrong.
const authFailureMessage = "이름, 생년월일 또는 PIN이 올바르지 않습니다"

var pinPattern = regexp.MustCompile(`^\d{4}$`)

type Service struct {
	db     *gorm.DB
	idp    *identity.Client
	pepper string
}

func NewService(db *gorm.DB, idp *identity.Client, cfg config.Config) *Service {
	return &Service{db: db, idp: idp, pepper: cfg.PINPepper}
}

type Profile struct {
	EmployeeID uint   `json:"employeeId"`
	Name       string `json:"name"`
	Role       string `json:"role"`
}

type LoginResult struct {
	Session *identity.Session `json:"session"`
	Profile Profile           `json:"profile"`
}

// Login authenticates the triple and returns a session on the
// employee's shadow account plus a minimal profile.
//
// The shadow password is reset on every login. That is deliberate: the
// password is derived, not stored, and overwriting it makes concurrent
// logins converge on the same credentials.
func (s *Service) Login(ctx context.Context, name, dob, pin string) (*LoginResult, error) {
	if name == "" || dob == "" || pin == "" {
		return nil, apperr.Validationf("name, dob and pin are required")
	}
	normalized, err := NormalizeDateOfBirth(dob)
	if err != nil {
		return nil, err
	}
	if !pinPattern.MatchString(pin) {
		return nil, apperr.Validationf("pin must be exactly 4 digits")
	}
	if s.pepper == "" {
		return nil, apperr.Configf("login", "PIN_PEPPER is not configured")
	}

	var emp models.Employee
	err = s.db.WithContext(ctx).
		Where("name = ? AND date_of_birth = ? AND is_active = ?", name, normalized, true).
		First(&emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Warn("Login rejected: no active employee match", "name", name)
			return nil, apperr.Authenticationf(authFailureMessage)
		}
		return nil, apperr.Upstreamf("login", err, "employee lookup failed")
	}

	if bcrypt.CompareHashAndPassword([]byte(emp.PINHash), []byte(pin)) != nil {
		slog.Warn("Login rejected: PIN mismatch", "employee_id", emp.ID)
		return nil, apperr.Authenticationf(authFailureMessage)
	}

	email := ShadowEmail(emp.ID)
	password := fmt.Sprintf("PW-%d-%s", emp.ID, s.pepper)

	if err := s.idp.AdminUpsertUser(ctx, email, password); err != nil {
		return nil, err
	}
	session, err := s.idp.PasswordGrant(ctx, email, password)
	if err != nil {
		return nil, err
	}

	slog.Info("Login succeeded", "employee_id", emp.ID, "role", emp.Role)
	return &LoginResult{
		Session: session,
		Profile: Profile{EmployeeID: emp.ID, Name: emp.Name, Role: emp.Role},
	}, nil
}

// ShadowEmail is the deterministic identity-provider address for an
// employee's shadow account.
func ShadowEmail(employeeID uint) string {
	return fmt.Sprintf("%d@internal.local", employeeID)
}

// EmployeeIDFromShadowEmail reverses ShadowEmail.
func EmployeeIDFromShadowEmail(email string) (uint, error) {
	local, _, ok := strings.Cut(email, "@")
	if !ok {
		return 0, fmt.Errorf("not a shadow account email: %q", email)
	}
	id, err := strconv.ParseUint(local, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("not a shadow account email: %q", email)
	}
	return uint(id), nil
}
