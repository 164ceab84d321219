package session

import (
	"context"
	"time"

	"hoteldash/internal/core/apperror"
	appctx "hoteldash/internal/core/context"
	"hoteldash/internal/domain"
	"hoteldash/pkg/logger"
)

// CredentialStore verifies a username/password pair against backend login
// records. A failed match returns a typed not-found error.
type CredentialStore interface {
	FindByCredentials(ctx context.Context, username, password string) (domain.Record, error)
}

// LoginResult is a successful authentication outcome.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Session   *appctx.SessionContext
}

// Service authenticates dashboard users and issues session tokens.
type Service struct {
	store CredentialStore
	jwt   *JWTService
}

// NewService creates a session service.
func NewService(store CredentialStore, jwt *JWTService) *Service {
	return &Service{store: store, jwt: jwt}
}

// Login verifies credentials against the backend and issues a token carrying
// the employee's id, username and position.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, apperror.NewValidation("Please input a Username and Password")
	}

	rec, err := s.store.FindByCredentials(ctx, username, password)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("The Username or Password is incorrect")
		}
		return nil, err
	}

	eid, ok := rec.Int("eid")
	if !ok {
		return nil, apperror.NewInternal(nil).WithDetail("reason", "login record has no employee id")
	}
	position, _ := rec.String("position")
	user, _ := rec.String("username")

	sess := &appctx.SessionContext{
		EmployeeID: eid,
		Username:   user,
		Position:   position,
	}

	token, expiresAt, err := s.jwt.GenerateToken(sess)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	logger.Info(ctx, "user logged in", "employee_id", eid, "position", position)
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Session: sess}, nil
}
