package usecase

import (
	"context"
	"errors"
	"math"

	"go.uber.org/zap"

	"espacestage-backend/internal/domain"
	"espacestage-backend/pkg/apperror"
	"espacestage-backend/pkg/audit"
)

type adminUsecase struct {
	adminRepo       domain.AdminRepository
	accountRepo     domain.AccountRepository
	offerRepo       domain.OfferRepository
	applicationRepo domain.ApplicationRepository
	auditLog        *audit.Logger
}

func NewAdminUsecase(
	adminRepo domain.AdminRepository,
	accountRepo domain.AccountRepository,
	offerRepo domain.OfferRepository,
	applicationRepo domain.ApplicationRepository,
	auditLog *audit.Logger,
) domain.AdminUsecase {
	return &adminUsecase{
		adminRepo:       adminRepo,
		accountRepo:     accountRepo,
		offerRepo:       offerRepo,
		applicationRepo: applicationRepo,
		auditLog:        auditLog,
	}
}

// requireAdmin re-checks the role stored in the request context. The route
// group already filters on role; this is the second gate so a wiring mistake
// in the router cannot expose moderation endpoints.
func requireAdmin(ctx context.Context) (int64, error) {
	role, _ := ctx.Value(domain.KeyAccountRole).(domain.Role)
	if role != domain.RoleAdmin {
		return 0, apperror.Forbidden("Admin role required")
	}
	actorID, _ := ctx.Value(domain.KeyAccountID).(int64)
	return actorID, nil
}

func (uc *adminUsecase) GetStats(ctx context.Context) (*domain.AdminStats, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	stats, err := uc.adminRepo.GetStats(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return stats, nil
}

func (uc *adminUsecase) ListAccounts(ctx context.Context, role string, page, pageSize int) (*domain.PaginatedResult[domain.AdminAccount], error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	var roleFilter domain.Role
	if role != "" {
		parsed, ok := domain.ParseRole(role)
		if !ok {
			return nil, apperror.BadRequest("Unknown role filter")
		}
		roleFilter = parsed
	}

	normalizePage(&page, &pageSize)
	accounts, total, err := uc.adminRepo.ListAccounts(ctx, roleFilter, page, pageSize)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return paginate(accounts, total, page, pageSize), nil
}

// SetAccountStatus blocks or reactivates an account. Admin accounts cannot
// be blocked, so a compromised admin cannot lock the others out.
func (uc *adminUsecase) SetAccountStatus(ctx context.Context, accountID int64, status domain.AccountStatus) error {
	actorID, err := requireAdmin(ctx)
	if err != nil {
		return err
	}
	if status != domain.AccountActive && status != domain.AccountBlocked {
		return apperror.BadRequest("Status must be active or blocked")
	}

	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Account not found")
		}
		return apperror.Internal(err)
	}
	if account.Role == domain.RoleAdmin && status == domain.AccountBlocked {
		return apperror.Forbidden("Admin accounts cannot be blocked")
	}

	if err := uc.accountRepo.UpdateStatus(ctx, accountID, status); err != nil {
		return apperror.Internal(err)
	}

	event := audit.EventAccountBlocked
	if status == domain.AccountActive {
		event = audit.EventAccountUnblock
	}
	uc.auditLog.Event(event, actorID, zap.Int64("target_account_id", accountID))
	return nil
}

// DeleteAccount removes an account and, through the cascading foreign keys,
// its profile, offers and applications.
func (uc *adminUsecase) DeleteAccount(ctx context.Context, accountID int64) error {
	actorID, err := requireAdmin(ctx)
	if err != nil {
		return err
	}
	if actorID == accountID {
		return apperror.BadRequest("You cannot delete your own account")
	}

	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Account not found")
		}
		return apperror.Internal(err)
	}
	if account.Role == domain.RoleAdmin {
		return apperror.Forbidden("Admin accounts cannot be deleted")
	}

	if err := uc.accountRepo.Delete(ctx, accountID); err != nil {
		return apperror.Internal(err)
	}
	uc.auditLog.Event(audit.EventAccountDeleted, actorID,
		zap.Int64("target_account_id", accountID),
		zap.String("target_role", string(account.Role)),
	)
	return nil
}

// ListOffers returns every offer regardless of status.
func (uc *adminUsecase) ListOffers(ctx context.Context, page, pageSize int) (*domain.PaginatedResult[domain.Offer], error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	normalizePage(&page, &pageSize)
	offers, total, err := uc.offerRepo.Search(ctx, domain.OfferFilter{
		ActiveOnly: false,
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return paginate(offers, total, page, pageSize), nil
}

func (uc *adminUsecase) SetOfferStatus(ctx context.Context, offerID int64, status domain.OfferStatus) error {
	actorID, err := requireAdmin(ctx)
	if err != nil {
		return err
	}
	if status != domain.OfferActive && status != domain.OfferDisabled {
		return apperror.BadRequest("Status must be active or disabled")
	}
	if err := uc.offerRepo.UpdateStatus(ctx, offerID, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Offer not found")
		}
		return apperror.Internal(err)
	}
	if status == domain.OfferDisabled {
		uc.auditLog.Event(audit.EventOfferDisabled, actorID, zap.Int64("offer_id", offerID))
	}
	return nil
}

func (uc *adminUsecase) DeleteOffer(ctx context.Context, offerID int64) error {
	actorID, err := requireAdmin(ctx)
	if err != nil {
		return err
	}
	if err := uc.offerRepo.Delete(ctx, offerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Offer not found")
		}
		return apperror.Internal(err)
	}
	uc.auditLog.Event(audit.EventOfferDeleted, actorID, zap.Int64("offer_id", offerID))
	return nil
}

func (uc *adminUsecase) DeleteApplication(ctx context.Context, applicationID int64) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	if err := uc.applicationRepo.Delete(ctx, applicationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Application not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

// paginate wraps a page of rows with derived metadata.
func paginate[T any](rows []T, total int64, page, pageSize int) *domain.PaginatedResult[T] {
	return &domain.PaginatedResult[T]{
		Data:       rows,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}
}
