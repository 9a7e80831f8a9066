package domain

import (
	"context"
	"time"
)

// Role is the closed set of account roles. Handlers and usecases compare
// against these constants only; free-form role strings are rejected at the
// boundary.
type Role string

const (
	RoleStudent Role = "student"
	RoleCompany Role = "company"
	RoleAdmin   Role = "admin"
)

// ParseRole validates a role string from the outside world.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleStudent, RoleCompany, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// AccountStatus is the moderation state of an account.
type AccountStatus string

const (
	AccountActive  AccountStatus = "active"
	AccountBlocked AccountStatus = "blocked"
)

// Account is the credential record. Profile data lives in StudentProfile or
// CompanyProfile depending on the role.
type Account struct {
	ID           int64         `json:"id"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"-"`
	Role         Role          `json:"role"`
	Status       AccountStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// AuthResult is returned on successful login so the client can perform
// role-based redirection without a second round trip.
type AuthResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Account   *Account  `json:"account"`
}

// AccountRepository defines data access for accounts
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, id int64) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	UpdateStatus(ctx context.Context, id int64, status AccountStatus) error
	Delete(ctx context.Context, id int64) error
}

// AuthUsecase defines registration and login
type AuthUsecase interface {
	Register(ctx context.Context, email, password string, role Role) (*Account, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	GetCurrentAccount(ctx context.Context, id int64) (*Account, error)
}
