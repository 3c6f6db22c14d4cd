package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rahmatfadli/goverify/internal/auth/entity"
	"github.com/rahmatfadli/goverify/internal/pkg/goerror"
	"github.com/rahmatfadli/goverify/internal/pkg/goroutine"
	"github.com/rahmatfadli/goverify/internal/pkg/hash"
	"github.com/rahmatfadli/goverify/internal/pkg/instrument"
	"github.com/rahmatfadli/goverify/internal/pkg/jwt"
	"github.com/rahmatfadli/goverify/internal/pkg/validator"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type memRepo struct {
	accounts map[int64]*entity.Account
	err      error
}

func newMemRepo(accounts ...*entity.Account) *memRepo {
	r := &memRepo{accounts: map[int64]*entity.Account{}}
	for _, acc := range accounts {
		cp := *acc
		r.accounts[acc.ID] = &cp
	}

	return r
}

func (r *memRepo) GetAccountByID(_ context.Context, id int64) (*entity.Account, error) {
	if r.err != nil {
		return nil, r.err
	}
	if acc, ok := r.accounts[id]; ok {
		cp := *acc
		return &cp, nil
	}

	return nil, goerror.ErrNotFound
}

func (r *memRepo) GetAccountByPhone(_ context.Context, phone string) (*entity.Account, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, acc := range r.accounts {
		if acc.Phone == phone {
			cp := *acc
			return &cp, nil
		}
	}

	return nil, goerror.ErrNotFound
}

func (r *memRepo) GetAccountByEmail(_ context.Context, email string) (*entity.Account, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, acc := range r.accounts {
		if acc.Email == email {
			cp := *acc
			return &cp, nil
		}
	}

	return nil, goerror.ErrNotFound
}

func (r *memRepo) CreateAccount(_ context.Context, acc entity.NewAccount, hash string) error {
	if r.err != nil {
		return r.err
	}
	for _, existing := range r.accounts {
		if existing.Phone == acc.Phone {
			return goerror.ErrConflict
		}
	}

	r.accounts[acc.ID] = &entity.Account{
		ID:        acc.ID,
		Phone:     acc.Phone,
		Password:  hash,
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}

	return nil
}

func (r *memRepo) SetAccountEmail(_ context.Context, id int64, email string) error {
	if r.err != nil {
		return r.err
	}
	acc, ok := r.accounts[id]
	if !ok {
		return goerror.ErrNotFound
	}

	acc.Email = email
	acc.EmailVerified = false

	return nil
}

func (r *memRepo) SetChannelVerified(_ context.Context, id int64, ch entity.Channel) error {
	if r.err != nil {
		return r.err
	}
	acc, ok := r.accounts[id]
	if !ok {
		return goerror.ErrNotFound
	}

	switch ch {
	case entity.ChannelPhone:
		acc.PhoneVerified = true
	case entity.ChannelEmail:
		acc.EmailVerified = true
	}

	return nil
}

func (r *memRepo) UpdateAccountPassword(_ context.Context, id int64, hash string) error {
	if r.err != nil {
		return r.err
	}
	acc, ok := r.accounts[id]
	if !ok {
		return goerror.ErrNotFound
	}

	acc.Password = hash

	return nil
}

// memStore is safe for concurrent use since challenge cleanup runs on a
// background goroutine.
type memStore struct {
	mu         sync.Mutex
	challenges map[string]*entity.Challenge
	ttls       map[string]time.Duration
	creates    int

	getErr    error
	createErr error
	incrErr   error
	delErr    error
}

func newMemStore(challenges ...*entity.Challenge) *memStore {
	s := &memStore{
		challenges: map[string]*entity.Challenge{},
		ttls:       map[string]time.Duration{},
	}
	for _, chal := range challenges {
		cp := *chal
		s.challenges[storeKey(chal.Channel, chal.Address)] = &cp
	}

	return s
}

func storeKey(ch entity.Channel, address string) string {
	return ch.String() + ":" + address
}

func (s *memStore) GetChallenge(_ context.Context, ch entity.Channel, address string) (*entity.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.getErr != nil {
		return nil, s.getErr
	}
	if chal, ok := s.challenges[storeKey(ch, address)]; ok {
		cp := *chal
		return &cp, nil
	}

	return nil, goerror.ErrNotFound
}

func (s *memStore) CreateChallenge(_ context.Context, chal entity.Challenge, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.createErr != nil {
		return s.createErr
	}

	cp := chal
	s.challenges[storeKey(chal.Channel, chal.Address)] = &cp
	s.ttls[storeKey(chal.Channel, chal.Address)] = ttl
	s.creates++

	return nil
}

func (s *memStore) IncrementAttempts(_ context.Context, ch entity.Channel, address string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.incrErr != nil {
		return 0, s.incrErr
	}
	chal, ok := s.challenges[storeKey(ch, address)]
	if !ok {
		return 0, goerror.ErrNotFound
	}

	chal.Attempts++

	return chal.Attempts, nil
}

func (s *memStore) DeleteChallenge(_ context.Context, ch entity.Channel, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.delErr != nil {
		return s.delErr
	}

	delete(s.challenges, storeKey(ch, address))

	return nil
}

type sentCode struct {
	channel entity.Channel
	address string
	code    string
}

type fakeGateway struct {
	err  error
	sent []sentCode
}

func (g *fakeGateway) SendCode(_ context.Context, ch entity.Channel, address, code string) error {
	if g.err != nil {
		return g.err
	}

	g.sent = append(g.sent, sentCode{channel: ch, address: address, code: code})

	return nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type seqID struct{ next int64 }

func (s *seqID) Generate() int64 {
	s.next++
	return s.next
}

type fakeJWT struct {
	token     string
	genErr    error
	claims    jwt.Claims
	verifyErr error
}

func (f *fakeJWT) Generate(int64, string) (string, error) { return f.token, f.genErr }

func (f *fakeJWT) Verify(string) (jwt.Claims, error) { return f.claims, f.verifyErr }

type ucFixture struct {
	uc      *Usecase
	repo    *memRepo
	store   *memStore
	gateway *fakeGateway
	gr      *goroutine.Manager
	draws   *int
}

func newFixture(t *testing.T, repo *memRepo, store *memStore, gateway *fakeGateway) ucFixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("init validator: %v", err)
	}

	gr := goroutine.NewManager(4)
	draws := 0

	uc := New(Dependency{
		RepoDB:     repo,
		Store:      store,
		Gateway:    gateway,
		Validator:  v,
		Bcrypt:     hash.NewBcrypt(4, "pepper"),
		UID:        &seqID{next: 100},
		Clock:      fixedClock{now: testNow},
		JWTAccess:  &fakeJWT{token: "access-token"},
		JWTRefresh: &fakeJWT{token: "refresh-token"},
		Instrument: instrument.NewNoop(),
		Goroutine:  gr,
		CodeGenerator: func() string {
			draws++
			return "1234"
		},
	})

	return ucFixture{uc: uc, repo: repo, store: store, gateway: gateway, gr: gr, draws: &draws}
}

// drainTasks waits for background work scheduled by the usecase to finish.
func (f ucFixture) drainTasks(t *testing.T) {
	t.Helper()

	if err := f.gr.Wait(); err != nil {
		t.Fatalf("background tasks: %v", err)
	}
}

func assertCode(t *testing.T, err error, want goerror.Code) {
	t.Helper()

	if err == nil {
		t.Fatal("expected error, got nil")
	}

	gerr := &goerror.Error{}
	if !errors.As(err, &gerr) {
		t.Fatalf("expected goerror.Error, got %T: %v", err, err)
	}
	if gerr.Code() != want {
		t.Fatalf("expected code %v, got %v (%v)", want, gerr.Code(), err)
	}
}
