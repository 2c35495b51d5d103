package usecase

import (
	"context"
	"fmt"
	"time"

	"phone-auth/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ==================== OTP record repository ====================

type fakeOTPRecordRepo struct {
	records   []*entity.OTPRecord
	createErr error
	findErr   error
	markErr   error
}

func (f *fakeOTPRecordRepo) Create(ctx context.Context, record *entity.OTPRecord) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *record
	f.records = append(f.records, &cp)
	return nil
}

func (f *fakeOTPRecordRepo) FindUnverifiedMatch(ctx context.Context, phone, code string) (*entity.OTPRecord, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var best *entity.OTPRecord
	for _, r := range f.records {
		if r.Phone == phone && r.Code == code && !r.Verified && r.ExpiresAt.After(time.Now()) {
			if best == nil || r.CreatedAt.After(best.CreatedAt) {
				best = r
			}
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

func (f *fakeOTPRecordRepo) MarkVerified(ctx context.Context, id uuid.UUID) (bool, error) {
	if f.markErr != nil {
		return false, f.markErr
	}
	for _, r := range f.records {
		if r.ID == id && !r.Verified {
			r.Verified = true
			return true, nil
		}
	}
	return false, nil
}

// staleReadOTPRepo serves lookups from a pinned snapshot, so a test can
// interleave a concurrent consumption between the lookup and the
// conditional flip.
type staleReadOTPRepo struct {
	fakeOTPRecordRepo
	snapshot *entity.OTPRecord
}

func (f *staleReadOTPRepo) FindUnverifiedMatch(ctx context.Context, phone, code string) (*entity.OTPRecord, error) {
	if f.snapshot == nil {
		return f.fakeOTPRecordRepo.FindUnverifiedMatch(ctx, phone, code)
	}
	cp := *f.snapshot
	return &cp, nil
}

// ==================== user repository ====================

type fakeUserRepo struct {
	users     map[uuid.UUID]*entity.User
	createErr error
	findErr   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByStrategy(ctx context.Context, strategyName, externalIdentifier string) (*entity.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, u := range f.users {
		if u.StrategyName == strategyName && u.ExternalIdentifier == externalIdentifier {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// ==================== customer repository ====================

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer // keyed by user ID
	createErr error
	findErr   error
	updateErr error
	// dropOnCreate simulates a directory where the customer write is lost
	dropOnCreate bool
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
}

func (f *fakeCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.dropOnCreate {
		return nil
	}
	cp := *customer
	f.customers[customer.UserID] = &cp
	return nil
}

func (f *fakeCustomerRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Customer, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if c, ok := f.customers[userID]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeCustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	existing, ok := f.customers[customer.UserID]
	if !ok {
		return fmt.Errorf("customer %s not found", customer.ID.String())
	}
	*existing = *customer
	return nil
}

// ==================== session repository ====================

type fakeSessionRepo struct {
	sessions  map[uuid.UUID]*entity.Session // keyed by token
	createErr error
	revokeErr error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*entity.Session)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *session
	f.sessions[session.Token] = &cp
	return nil
}

func (f *fakeSessionRepo) FindValidSession(ctx context.Context, token uuid.UUID) (*entity.Session, error) {
	s, ok := f.sessions[token]
	if !ok || s.RevokedAt != nil || !s.ExpiresAt.After(time.Now()) {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionRepo) Revoke(ctx context.Context, token uuid.UUID) error {
	if f.revokeErr != nil {
		return f.revokeErr
	}
	s, ok := f.sessions[token]
	if !ok || s.RevokedAt != nil {
		return fmt.Errorf("session not found or already revoked")
	}
	now := time.Now()
	s.RevokedAt = &now
	return nil
}

// ==================== generator and notifier ====================

type fakeGenerator struct {
	codes []string
	calls int
	err   error
}

func (f *fakeGenerator) Generate() (string, error) {
	if f.err != nil {
		return "", f.err
	}
	code := f.codes[f.calls%len(f.codes)]
	f.calls++
	return code, nil
}

type sentCode struct {
	phone string
	code  string
}

type fakeNotifier struct {
	sends []sentCode
	err   error
}

func (f *fakeNotifier) Send(ctx context.Context, phone, code string) error {
	if f.err != nil {
		return f.err
	}
	f.sends = append(f.sends, sentCode{phone: phone, code: code})
	return nil
}

// ==================== OTP service ====================

type fakeOTPService struct {
	verifyResult bool
	verifyErr    error
	verified     []sentCode
}

func (f *fakeOTPService) RequestOTP(ctx context.Context, phone string) (*entity.OTPRecord, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeOTPService) VerifyOTP(ctx context.Context, phone, code string) (bool, error) {
	f.verified = append(f.verified, sentCode{phone: phone, code: code})
	if f.verifyErr != nil {
		return false, f.verifyErr
	}
	return f.verifyResult, nil
}

// ==================== strategy ====================

type fakeStrategy struct {
	name     string
	newCreds func() any
	user     *entity.User
	err      error
	gotCreds any
}

func (f *fakeStrategy) Name() string { return f.name }

func (f *fakeStrategy) NewCredentials() any {
	if f.newCreds != nil {
		return f.newCreds()
	}
	return &struct{}{}
}

func (f *fakeStrategy) Authenticate(ctx context.Context, credentials any) (*entity.User, error) {
	f.gotCreds = credentials
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

// ==================== helpers ====================

func testUser(strategyName, externalIdentifier string) *entity.User {
	now := time.Now()
	return &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		StrategyName:       strategyName,
		ExternalIdentifier: externalIdentifier,
		Verified:           true,
	}
}

func testDirectory(users *fakeUserRepo, customers *fakeCustomerRepo) IdentityDirectory {
	return NewIdentityDirectory(users, customers, zap.NewNop())
}
