package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"espacestage-backend/internal/domain"
)

// Mock Repositories

type MockAccountRepo struct {
	mock.Mock
}

func (m *MockAccountRepo) Create(ctx context.Context, account *domain.Account) error {
	return m.Called(ctx, account).Error(0)
}
func (m *MockAccountRepo) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountRepo) UpdateStatus(ctx context.Context, id int64, status domain.AccountStatus) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *MockAccountRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockStudentProfileRepo struct {
	mock.Mock
}

func (m *MockStudentProfileRepo) GetByAccountID(ctx context.Context, accountID int64) (*domain.StudentProfile, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudentProfile), args.Error(1)
}
func (m *MockStudentProfileRepo) Upsert(ctx context.Context, profile *domain.StudentProfile) error {
	return m.Called(ctx, profile).Error(0)
}
func (m *MockStudentProfileRepo) AttachFileURL(ctx context.Context, accountID int64, file domain.ProfileFile, url string) error {
	return m.Called(ctx, accountID, file, url).Error(0)
}

type MockCompanyProfileRepo struct {
	mock.Mock
}

func (m *MockCompanyProfileRepo) GetByAccountID(ctx context.Context, accountID int64) (*domain.CompanyProfile, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompanyProfile), args.Error(1)
}
func (m *MockCompanyProfileRepo) Upsert(ctx context.Context, profile *domain.CompanyProfile) error {
	return m.Called(ctx, profile).Error(0)
}
func (m *MockCompanyProfileRepo) AttachLogoURL(ctx context.Context, accountID int64, url string) error {
	return m.Called(ctx, accountID, url).Error(0)
}

type MockOfferRepo struct {
	mock.Mock
}

func (m *MockOfferRepo) Create(ctx context.Context, offer *domain.Offer) error {
	return m.Called(ctx, offer).Error(0)
}
func (m *MockOfferRepo) GetByID(ctx context.Context, id int64) (*domain.Offer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offer), args.Error(1)
}
func (m *MockOfferRepo) Search(ctx context.Context, filter domain.OfferFilter) ([]domain.Offer, int64, error) {
	args := m.Called(ctx, filter)
	var offers []domain.Offer
	if args.Get(0) != nil {
		offers = args.Get(0).([]domain.Offer)
	}
	return offers, args.Get(1).(int64), args.Error(2)
}
func (m *MockOfferRepo) FetchByCompany(ctx context.Context, companyAccountID int64, limit, offset int) ([]domain.Offer, int64, error) {
	args := m.Called(ctx, companyAccountID, limit, offset)
	var offers []domain.Offer
	if args.Get(0) != nil {
		offers = args.Get(0).([]domain.Offer)
	}
	return offers, args.Get(1).(int64), args.Error(2)
}
func (m *MockOfferRepo) Update(ctx context.Context, offer *domain.Offer) error {
	return m.Called(ctx, offer).Error(0)
}
func (m *MockOfferRepo) UpdateStatus(ctx context.Context, id int64, status domain.OfferStatus) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *MockOfferRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}
func (m *MockApplicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) ListByStudent(ctx context.Context, studentAccountID int64) ([]domain.Application, error) {
	args := m.Called(ctx, studentAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) ListByCompany(ctx context.Context, companyAccountID int64) ([]domain.Application, error) {
	args := m.Called(ctx, companyAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *MockApplicationRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockAdminRepo struct {
	mock.Mock
}

func (m *MockAdminRepo) GetStats(ctx context.Context) (*domain.AdminStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminStats), args.Error(1)
}
func (m *MockAdminRepo) ListAccounts(ctx context.Context, role domain.Role, page, pageSize int) ([]domain.AdminAccount, int64, error) {
	args := m.Called(ctx, role, page, pageSize)
	var accounts []domain.AdminAccount
	if args.Get(0) != nil {
		accounts = args.Get(0).([]domain.AdminAccount)
	}
	return accounts, args.Get(1).(int64), args.Error(2)
}

type MockReportRepo struct {
	mock.Mock
}

func (m *MockReportRepo) FetchApplicationRows(ctx context.Context, limit int) ([]domain.ApplicationReportRow, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApplicationReportRow), args.Error(1)
}
func (m *MockReportRepo) FetchPivotCells(ctx context.Context, rowDim, colDim string) ([]domain.PivotCell, error) {
	args := m.Called(ctx, rowDim, colDim)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PivotCell), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendApplicationReceived(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}
func (m *MockNotifier) SendStatusChanged(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}

// adminCtx builds a context carrying admin credentials the way the auth
// middleware does.
func adminCtx(accountID int64) context.Context {
	ctx := context.WithValue(context.Background(), domain.KeyAccountID, accountID)
	return context.WithValue(ctx, domain.KeyAccountRole, domain.RoleAdmin)
}

func ctxWithRole(role domain.Role) context.Context {
	ctx := context.WithValue(context.Background(), domain.KeyAccountID, int64(1))
	return context.WithValue(ctx, domain.KeyAccountRole, role)
}
