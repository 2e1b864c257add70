package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"trailhub/internal/domain/entity"
	"trailhub/internal/domain/repository"
	"trailhub/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeAccountStore is an in-memory stand-in for the accounts table. It backs
// both the account and the session repository, mirroring how the real
// implementation shares one table.
type fakeAccountStore struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*entity.Account
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{accounts: make(map[uuid.UUID]*entity.Account)}
}

func (s *fakeAccountStore) clone(a *entity.Account) *entity.Account {
	cloned := *a
	if a.OTP != nil {
		otp := *a.OTP
		cloned.OTP = &otp
	}
	if a.OTPExpiresAt != nil {
		exp := *a.OTPExpiresAt
		cloned.OTPExpiresAt = &exp
	}

	return &cloned
}

func (s *fakeAccountStore) seed(a *entity.Account) *entity.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	s.accounts[a.ID] = s.clone(a)

	return a
}

func (s *fakeAccountStore) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.accounts[id]; ok {
		return s.clone(a), nil
	}

	return nil, repository.ErrAccountNotFound
}

func (s *fakeAccountStore) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if strings.EqualFold(a.Email, email) {
			return s.clone(a), nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (s *fakeAccountStore) ListByRole(_ context.Context, role entity.Role, _, _ int) ([]*entity.Account, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Account
	for _, a := range s.accounts {
		if a.Role == role {
			out = append(out, s.clone(a))
		}
	}

	return out, int64(len(out)), nil
}

func (s *fakeAccountStore) Create(_ context.Context, a *entity.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	s.accounts[a.ID] = s.clone(a)

	return nil
}

func (s *fakeAccountStore) Update(_ context.Context, a *entity.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[a.ID]; !ok {
		return repository.ErrAccountNotFound
	}
	a.UpdatedAt = time.Now()
	s.accounts[a.ID] = s.clone(a)

	return nil
}

func (s *fakeAccountStore) SaveTokenPair(_ context.Context, id uuid.UUID, access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return repository.ErrAccountNotFound
	}
	a.AccessToken = access
	a.RefreshToken = refresh

	return nil
}

func (s *fakeAccountStore) SaveAccessToken(_ context.Context, id uuid.UUID, access string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return repository.ErrAccountNotFound
	}
	a.AccessToken = access

	return nil
}

func (s *fakeAccountStore) StoredRefreshToken(_ context.Context, id uuid.UUID) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return "", repository.ErrAccountNotFound
	}

	return a.RefreshToken, nil
}

// get returns the stored record for assertions.
func (s *fakeAccountStore) get(id uuid.UUID) *entity.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.accounts[id]; ok {
		return s.clone(a)
	}

	return nil
}

func (s *fakeAccountStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.accounts)
}

// fakeTxManager runs the unit of work against the shared store and restores
// a snapshot when the callback errors, imitating a rollback.
type fakeTxManager struct {
	store *fakeAccountStore
}

type fakeRepoFactory struct {
	store *fakeAccountStore
}

func (f *fakeRepoFactory) AccountRepo() repository.AccountRepository { return f.store }
func (f *fakeRepoFactory) EventRepo() repository.EventRepository     { return nil }
func (f *fakeRepoFactory) GearRepo() repository.GearRepository       { return nil }

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	m.store.mu.Lock()
	snapshot := make(map[uuid.UUID]*entity.Account, len(m.store.accounts))
	for id, a := range m.store.accounts {
		snapshot[id] = m.store.clone(a)
	}
	m.store.mu.Unlock()

	if err := fn(&fakeRepoFactory{store: m.store}); err != nil {
		m.store.mu.Lock()
		m.store.accounts = snapshot
		m.store.mu.Unlock()

		return err
	}

	return nil
}

// fakePasswordHasher makes hashes recognizable without bcrypt cost.
type fakePasswordHasher struct{}

func (fakePasswordHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakePasswordHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

// fakeTokenService issues deterministic tokens and remembers which claims
// each one carries.
type fakeTokenService struct {
	mu           sync.Mutex
	counter      int
	issued       map[string]service.TokenClaims
	lastRemember bool
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{issued: make(map[string]service.TokenClaims)}
}

func (s *fakeTokenService) issue(kind string, accountID uuid.UUID, role entity.Role) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counter++
	token := fmt.Sprintf("%s-token-%d", kind, s.counter)
	s.issued[token] = service.TokenClaims{AccountID: accountID, Role: role}

	return token
}

func (s *fakeTokenService) IssueAccessToken(accountID uuid.UUID, role entity.Role) (string, error) {
	return s.issue("access", accountID, role), nil
}

func (s *fakeTokenService) IssueRefreshToken(accountID uuid.UUID, role entity.Role, remember bool) (string, error) {
	s.mu.Lock()
	s.lastRemember = remember
	s.mu.Unlock()

	return s.issue("refresh", accountID, role), nil
}

func (s *fakeTokenService) verify(token, kind string) (*service.TokenClaims, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	claims, ok := s.issued[token]
	if !ok || !strings.HasPrefix(token, kind) {
		return nil, errors.New("token verification failed")
	}

	return &claims, nil
}

func (s *fakeTokenService) VerifyAccessToken(token string) (*service.TokenClaims, error) {
	return s.verify(token, "access")
}

func (s *fakeTokenService) VerifyRefreshToken(token string) (*service.TokenClaims, error) {
	return s.verify(token, "refresh")
}

// fakeOTPGenerator hands out a fixed sequence of codes.
type fakeOTPGenerator struct {
	mu    sync.Mutex
	codes []string
	next  int
	ttl   time.Duration
}

func newFakeOTPGenerator(codes ...string) *fakeOTPGenerator {
	return &fakeOTPGenerator{codes: codes, ttl: 5 * time.Minute}
}

func (g *fakeOTPGenerator) Generate() (string, time.Time, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	code := g.codes[g.next%len(g.codes)]
	g.next++

	return code, time.Now().Add(g.ttl), nil
}

// fakeMailer records deliveries and can be told to fail.
type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	fail bool
}

type sentMail struct {
	to   string
	code string
}

func (m *fakeMailer) SendOTP(_ context.Context, to, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("smtp relay unreachable")
	}
	m.sent = append(m.sent, sentMail{to: to, code: code})

	return nil
}

func (m *fakeMailer) deliveries() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]sentMail(nil), m.sent...)
}

// fakeEventStore is an in-memory stand-in for the events and gear tables.
type fakeEventStore struct {
	mu     sync.Mutex
	events map[uuid.UUID]*entity.Event
	gear   map[uuid.UUID]*entity.Gear
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{
		events: make(map[uuid.UUID]*entity.Event),
		gear:   make(map[uuid.UUID]*entity.Gear),
	}
}

func (s *fakeEventStore) seed(e *entity.Event) *entity.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	cloned := *e
	s.events[e.ID] = &cloned

	return e
}

func (s *fakeEventStore) FindByID(_ context.Context, id uuid.UUID) (*entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.events[id]; ok {
		cloned := *e

		return &cloned, nil
	}

	return nil, repository.ErrEventNotFound
}

func (s *fakeEventStore) List(_ context.Context, filter repository.EventFilter) ([]*entity.Event, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Event
	for _, e := range s.events {
		if filter.VendorID != uuid.Nil && e.VendorID != filter.VendorID {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(e.Title), strings.ToLower(filter.Search)) {
			continue
		}
		cloned := *e
		out = append(out, &cloned)
	}

	return out, int64(len(out)), nil
}

func (s *fakeEventStore) Create(_ context.Context, e *entity.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = uuid.New()
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	cloned := *e
	s.events[e.ID] = &cloned

	return nil
}

func (s *fakeEventStore) UpdateStatus(_ context.Context, id uuid.UUID, status entity.EventStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return repository.ErrEventNotFound
	}
	e.Status = status

	return nil
}

func (s *fakeEventStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return repository.ErrEventNotFound
	}
	delete(s.events, id)

	return nil
}

func (s *fakeEventStore) CreateGear(_ context.Context, g *entity.Gear) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g.ID = uuid.New()
	g.CreatedAt = time.Now()
	cloned := *g
	s.gear[g.ID] = &cloned

	return nil
}

func (s *fakeEventStore) ListByEvent(_ context.Context, eventID uuid.UUID) ([]*entity.Gear, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Gear
	for _, g := range s.gear {
		if g.EventID == eventID {
			cloned := *g
			out = append(out, &cloned)
		}
	}

	return out, nil
}

func (s *fakeEventStore) getEvent(id uuid.UUID) *entity.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.events[id]; ok {
		cloned := *e

		return &cloned
	}

	return nil
}

// fakeGearRepo adapts fakeEventStore to the gear repository interface, which
// has its own Create.
type fakeGearRepo struct {
	store *fakeEventStore
}

func (r *fakeGearRepo) Create(ctx context.Context, g *entity.Gear) error {
	return r.store.CreateGear(ctx, g)
}

func (r *fakeGearRepo) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*entity.Gear, error) {
	return r.store.ListByEvent(ctx, eventID)
}

// authHarness bundles the service under test with its fakes.
type authHarness struct {
	service  *authService
	store    *fakeAccountStore
	tokens   *fakeTokenService
	mailer   *fakeMailer
	otpCodes *fakeOTPGenerator
}

func newAuthHarness() *authHarness {
	store := newFakeAccountStore()
	tokens := newFakeTokenService()
	mailer := &fakeMailer{}
	otp := newFakeOTPGenerator("123456", "654321")

	svc := &authService{
		txManager:    &fakeTxManager{store: store},
		accountRepo:  store,
		sessionRepo:  store,
		hasher:       fakePasswordHasher{},
		tokenService: tokens,
		otpGenerator: otp,
		mailer:       mailer,
		logger:       discardLogger(),
		now:          time.Now,
	}

	return &authHarness{
		service:  svc,
		store:    store,
		tokens:   tokens,
		mailer:   mailer,
		otpCodes: otp,
	}
}
