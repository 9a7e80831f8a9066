package usecase

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"espacestage-backend/internal/domain"
	"espacestage-backend/pkg/apperror"
	"espacestage-backend/pkg/audit"
	"espacestage-backend/pkg/auth"
)

type authUsecase struct {
	accountRepo domain.AccountRepository
	tokens      *auth.TokenService
	audit       *audit.Logger
}

func NewAuthUsecase(accountRepo domain.AccountRepository, tokens *auth.TokenService, auditLog *audit.Logger) domain.AuthUsecase {
	return &authUsecase{
		accountRepo: accountRepo,
		tokens:      tokens,
		audit:       auditLog,
	}
}

// Register creates a student or company account. Admin accounts are seeded
// out of band and can never be self-registered.
func (u *authUsecase) Register(ctx context.Context, email, password string, role domain.Role) (*domain.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperror.BadRequest("A valid email is required")
	}
	if len(password) < 8 {
		return nil, apperror.BadRequest("Password must be at least 8 characters")
	}
	if role != domain.RoleStudent && role != domain.RoleCompany {
		return nil, apperror.BadRequest("Role must be student or company")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	account := &domain.Account{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       domain.AccountActive,
	}
	if err := u.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("An account with this email already exists")
		}
		return nil, apperror.Internal(err)
	}
	return account, nil
}

// Login verifies credentials and issues a token. A blocked account is
// rejected regardless of role, and before the password is even checked the
// response stays indistinguishable for unknown emails and wrong passwords.
func (u *authUsecase) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	account, err := u.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			u.audit.Event(audit.EventLoginFailed, 0, zap.String("email", email))
			return nil, apperror.Unauthorized("Invalid email or password")
		}
		return nil, apperror.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		u.audit.Event(audit.EventLoginFailed, account.ID)
		return nil, apperror.Unauthorized("Invalid email or password")
	}

	if account.Status == domain.AccountBlocked {
		u.audit.Event(audit.EventLoginBlocked, account.ID)
		return nil, apperror.Forbidden("This account has been blocked")
	}

	token, expiresAt, err := u.tokens.Generate(account.ID, account.Email, string(account.Role))
	if err != nil {
		return nil, apperror.Internal(err)
	}

	u.audit.Event(audit.EventLoginSuccess, account.ID, zap.String("role", string(account.Role)))

	return &domain.AuthResult{
		Token:     token,
		ExpiresAt: expiresAt,
		Account:   account,
	}, nil
}

func (u *authUsecase) GetCurrentAccount(ctx context.Context, id int64) (*domain.Account, error) {
	account, err := u.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Account not found")
		}
		return nil, apperror.Internal(err)
	}
	return account, nil
}
