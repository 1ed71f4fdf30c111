package usecase

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"gretastore/internal/domain/entity"
	"gretastore/internal/domain/repository"
	"gretastore/pkg/logger"
)

type StoreDeps struct {
	Products repository.ProductRepository
	Orders   repository.OrderRepository
	Profiles repository.ProfileRepository
	Cart     repository.CartRepository
	Auth     AuthClient
	Notifier Notifier

	// AdminEmail is granted the admin role even without a profile record.
	AdminEmail string

	Now  func() time.Time
	Rand *rand.Rand
}

// StoreUseCase owns the catalog, cart, order history and session user. All
// reads return copies; all writes go through its methods.
type StoreUseCase struct {
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	profileRepo repository.ProfileRepository
	cartRepo    repository.CartRepository
	auth        AuthClient
	notifier    Notifier
	adminEmail  string
	now         func() time.Time

	randMu sync.Mutex
	rand   *rand.Rand

	mu       sync.RWMutex
	products []entity.Product
	cart     []entity.CartItem
	orders   []entity.Order
	user     *entity.User
	loading  bool
	sync     map[string]entity.SyncState

	cartVersion uint64
	saveMu      sync.Mutex
	savedCart   uint64

	background  sync.WaitGroup
	unsubscribe func()
}

func NewStoreUseCase(deps StoreDeps) *StoreUseCase {
	s := &StoreUseCase{
		productRepo: deps.Products,
		orderRepo:   deps.Orders,
		profileRepo: deps.Profiles,
		cartRepo:    deps.Cart,
		auth:        deps.Auth,
		notifier:    deps.Notifier,
		adminEmail:  deps.AdminEmail,
		now:         deps.Now,
		rand:        deps.Rand,
		loading:     true,
		sync:        make(map[string]entity.SyncState),
	}
	if s.notifier == nil {
		s.notifier = noopNotifier{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.rand == nil {
		s.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

// Init rehydrates the cart, restores the session, loads catalog and orders
// and subscribes to auth state changes. It never fails: every backend error
// is logged and replaced by a fallback.
func (s *StoreUseCase) Init(ctx context.Context) {
	s.rehydrateCart(ctx)
	s.restoreSession(ctx)
	s.loadProducts(ctx)
	s.loadOrders(ctx)

	s.mu.Lock()
	s.unsubscribe = s.auth.OnAuthStateChange(s.handleAuthEvent)
	s.loading = false
	s.mu.Unlock()

	logger.Info("Store initialized: %d products, %d orders, %d cart items",
		len(s.Products()), len(s.Orders()), len(s.Cart()))
}

// Close drops the auth subscription and waits for background catalog
// seeding to finish.
func (s *StoreUseCase) Close() {
	s.mu.Lock()
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	s.background.Wait()
}

func (s *StoreUseCase) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *StoreUseCase) Products() []entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProducts(s.products)
}

func (s *StoreUseCase) Orders() []entity.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneOrders(s.orders)
}

func (s *StoreUseCase) CurrentUser() *entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// SyncState reports where an optimistic change to a record stands.
func (s *StoreUseCase) SyncState(kind entity.RecordKind, id string) entity.SyncState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sync[syncKey(kind, id)]
}

func (s *StoreUseCase) setSyncLocked(kind entity.RecordKind, id string, state entity.SyncState) {
	s.sync[syncKey(kind, id)] = state
}

func (s *StoreUseCase) setSync(kind entity.RecordKind, id string, state entity.SyncState) {
	s.mu.Lock()
	s.setSyncLocked(kind, id, state)
	s.mu.Unlock()
}

func syncKey(kind entity.RecordKind, id string) string {
	return string(kind) + ":" + id
}

func (s *StoreUseCase) randIntn(n int) int {
	s.randMu.Lock()
	defer s.randMu.Unlock()
	return s.rand.Intn(n)
}

func cloneOrders(in []entity.Order) []entity.Order {
	out := make([]entity.Order, len(in))
	for i, o := range in {
		out[i] = o.Clone()
	}
	return out
}
