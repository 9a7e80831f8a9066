package domain

import "context"

// RoleCounts breaks account totals down by role
type RoleCounts struct {
	Student int64 `json:"student"`
	Company int64 `json:"company"`
	Admin   int64 `json:"admin"`
}

// ApplicationStatusCounts breaks application totals down by status
type ApplicationStatusCounts struct {
	Pending  int64 `json:"pending"`
	Accepted int64 `json:"accepted"`
	Rejected int64 `json:"rejected"`
}

// AdminStats is the aggregate dashboard payload
type AdminStats struct {
	TotalAccounts        int64                   `json:"total_accounts"`
	AccountsByRole       RoleCounts              `json:"accounts_by_role"`
	BlockedAccounts      int64                   `json:"blocked_accounts"`
	TotalOffers          int64                   `json:"total_offers"`
	ActiveOffers         int64                   `json:"active_offers"`
	TotalApplications    int64                   `json:"total_applications"`
	ApplicationsByStatus ApplicationStatusCounts `json:"applications_by_status"`
}

// AdminAccount is an account row in the moderation listing, with the profile
// display name joined in.
type AdminAccount struct {
	Account
	DisplayName string `json:"display_name"`
	OfferCount  int64  `json:"offer_count"`
}

// AdminRepository defines data access for moderation and stats
type AdminRepository interface {
	GetStats(ctx context.Context) (*AdminStats, error)
	ListAccounts(ctx context.Context, role Role, page, pageSize int) ([]AdminAccount, int64, error)
}

// AdminUsecase defines admin moderation. Every method re-checks the admin
// role from the request context.
type AdminUsecase interface {
	GetStats(ctx context.Context) (*AdminStats, error)
	ListAccounts(ctx context.Context, role string, page, pageSize int) (*PaginatedResult[AdminAccount], error)
	SetAccountStatus(ctx context.Context, accountID int64, status AccountStatus) error
	DeleteAccount(ctx context.Context, accountID int64) error
	ListOffers(ctx context.Context, page, pageSize int) (*PaginatedResult[Offer], error)
	SetOfferStatus(ctx context.Context, offerID int64, status OfferStatus) error
	DeleteOffer(ctx context.Context, offerID int64) error
	DeleteApplication(ctx context.Context, applicationID int64) error
}
