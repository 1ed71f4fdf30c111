// Package usecasetest provides in-memory stand-ins for the store's backend,
// auth provider and local storage.
package usecasetest

import (
	"context"
	stderrors "errors"
	"sort"
	"strconv"
	"sync"

	"gretastore/internal/domain/entity"
	"gretastore/pkg/errors"
)

var ErrBackendDown = stderrors.New("backend unreachable")

type ProductRepo struct {
	mu       sync.Mutex
	Items    []entity.Product
	NextID   int64
	ListErr  error
	WriteErr error
	Created  int
	Updated  []entity.Product
	Deleted  []int64
}

func (r *ProductRepo) List(ctx context.Context) ([]entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	return append([]entity.Product(nil), r.Items...), nil
}

func (r *ProductRepo) Create(ctx context.Context, product entity.Product) (entity.Product, error) {
	created, err := r.CreateMany(ctx, []entity.Product{product})
	if err != nil {
		return entity.Product{}, err
	}
	return created[0], nil
}

func (r *ProductRepo) CreateMany(ctx context.Context, products []entity.Product) ([]entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.WriteErr != nil {
		return nil, r.WriteErr
	}
	out := make([]entity.Product, len(products))
	for i, p := range products {
		r.NextID++
		p.ID = r.NextID
		r.Items = append(r.Items, p)
		out[i] = p
		r.Created++
	}
	return out, nil
}

func (r *ProductRepo) Update(ctx context.Context, product entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.WriteErr != nil {
		return r.WriteErr
	}
	r.Updated = append(r.Updated, product)
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.WriteErr != nil {
		return r.WriteErr
	}
	r.Deleted = append(r.Deleted, id)
	return nil
}

type OrderRepo struct {
	mu       sync.Mutex
	Items    []entity.Order
	nextID   int
	ListErr  error
	WriteErr error
	Statuses map[string]entity.OrderStatus
}

func (r *OrderRepo) ListByDateDesc(ctx context.Context) ([]entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	out := append([]entity.Order(nil), r.Items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *OrderRepo) Create(ctx context.Context, order entity.Order) (entity.Order, error) {
	created, err := r.CreateMany(ctx, []entity.Order{order})
	if err != nil {
		return entity.Order{}, err
	}
	return created[0], nil
}

func (r *OrderRepo) CreateMany(ctx context.Context, orders []entity.Order) ([]entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.WriteErr != nil {
		return nil, r.WriteErr
	}
	out := make([]entity.Order, len(orders))
	for i, o := range orders {
		r.nextID++
		o.ID = "ord-" + strconv.Itoa(r.nextID)
		r.Items = append(r.Items, o)
		out[i] = o
	}
	return out, nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.WriteErr != nil {
		return r.WriteErr
	}
	if r.Statuses == nil {
		r.Statuses = make(map[string]entity.OrderStatus)
	}
	r.Statuses[id] = status
	return nil
}

type ProfileRepo struct {
	mu       sync.Mutex
	Profiles map[string]entity.Profile
	GetErr   error
	WriteErr error
}

func (r *ProfileRepo) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	p, ok := r.Profiles[id]
	if !ok {
		return nil, errors.NotFound("Profile", nil)
	}
	return &p, nil
}

func (r *ProfileRepo) Upsert(ctx context.Context, profile entity.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.WriteErr != nil {
		return r.WriteErr
	}
	if r.Profiles == nil {
		r.Profiles = make(map[string]entity.Profile)
	}
	r.Profiles[profile.ID] = profile
	return nil
}

func (r *ProfileRepo) UpdateDetails(ctx context.Context, id, fullName, phone string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.WriteErr != nil {
		return r.WriteErr
	}
	p := r.Profiles[id]
	p.ID, p.FullName, p.Phone = id, fullName, phone
	if r.Profiles == nil {
		r.Profiles = make(map[string]entity.Profile)
	}
	r.Profiles[id] = p
	return nil
}

func (r *ProfileRepo) UpdateRole(ctx context.Context, id string, role entity.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.WriteErr != nil {
		return r.WriteErr
	}
	p, ok := r.Profiles[id]
	if !ok {
		return errors.NotFound("Profile", nil)
	}
	p.Role = role
	r.Profiles[id] = p
	return nil
}

// CartRepo keeps the cart in memory; share one between two stores to
// simulate a reload.
type CartRepo struct {
	mu      sync.Mutex
	Items   []entity.CartItem
	Saves   int
	LoadErr error
	SaveErr error
}

func (r *CartRepo) Load(ctx context.Context) ([]entity.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.LoadErr != nil {
		return nil, r.LoadErr
	}
	return append([]entity.CartItem(nil), r.Items...), nil
}

func (r *CartRepo) Save(ctx context.Context, items []entity.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.Items = append([]entity.CartItem(nil), items...)
	r.Saves++
	return nil
}

type account struct {
	user     entity.AuthUser
	password string
}

// Auth is a synchronous auth provider: listeners run inside the call that
// changed the session.
type Auth struct {
	mu         sync.Mutex
	accounts   map[string]account
	session    *entity.AuthUser
	token      string
	issued     map[string]string
	listeners  map[int]func(entity.AuthEvent, *entity.AuthUser)
	nextID     int
	SessionErr error
	MetaErr    error
	SignOutErr error
	Metadata   map[string][2]string
}

func NewAuth() *Auth {
	return &Auth{
		accounts:  make(map[string]account),
		issued:    make(map[string]string),
		listeners: make(map[int]func(entity.AuthEvent, *entity.AuthUser)),
		Metadata:  make(map[string][2]string),
	}
}

// AddAccount registers an account without signing in.
func (a *Auth) AddAccount(id, email, password string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.accounts[email] = account{user: entity.AuthUser{ID: id, Email: email}, password: password}
}

// SetSession pretends a session survived from a previous run.
func (a *Auth) SetSession(u *entity.AuthUser) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = u
	a.token = ""
	if u != nil {
		a.token = "token-" + u.ID + "-restored"
		a.issued[a.token] = u.ID
	}
}

func (a *Auth) SignUp(ctx context.Context, input entity.SignupInput) (*entity.AuthUser, error) {
	a.mu.Lock()
	if _, exists := a.accounts[input.Email]; exists {
		a.mu.Unlock()
		return nil, errors.BadRequest("Email already in use", nil)
	}
	a.nextID++
	u := entity.AuthUser{ID: "uid-" + strconv.Itoa(a.nextID), Email: input.Email, FullName: input.Name, Phone: input.Phone}
	a.accounts[input.Email] = account{user: u, password: input.Password}
	a.mu.Unlock()

	return a.SignInWithPassword(ctx, input.Email, input.Password)
}

func (a *Auth) SignInWithPassword(ctx context.Context, email, password string) (*entity.AuthUser, error) {
	a.mu.Lock()
	acc, ok := a.accounts[email]
	if !ok || acc.password != password {
		a.mu.Unlock()
		return nil, errors.Unauthorized("Invalid login credentials", nil)
	}
	u := acc.user
	a.session = &u
	a.nextID++
	a.token = "token-" + u.ID + "-" + strconv.Itoa(a.nextID)
	a.issued[a.token] = u.ID
	a.mu.Unlock()

	a.emit(entity.AuthSignedIn, &u)
	return &u, nil
}

func (a *Auth) SignOut(ctx context.Context) error {
	a.mu.Lock()
	a.session = nil
	a.token = ""
	err := a.SignOutErr
	a.mu.Unlock()

	a.emit(entity.AuthSignedOut, nil)
	return err
}

func (a *Auth) GetSession(ctx context.Context) (*entity.AuthUser, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.SessionErr != nil {
		return nil, a.SessionErr
	}
	if a.session == nil {
		return nil, nil
	}
	u := *a.session
	return &u, nil
}

func (a *Auth) UpdateUserMetadata(ctx context.Context, uid, fullName, phone string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.MetaErr != nil {
		return a.MetaErr
	}
	a.Metadata[uid] = [2]string{fullName, phone}
	return nil
}

func (a *Auth) IDToken(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return "", nil
	}
	return a.token, nil
}

// VerifyIDToken accepts every token issued by SignInWithPassword, including
// tokens of sessions that have since signed out.
func (a *Auth) VerifyIDToken(ctx context.Context, idToken string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	uid, ok := a.issued[idToken]
	if !ok {
		return "", errors.Unauthorized("unknown token", nil)
	}
	return uid, nil
}

func (a *Auth) OnAuthStateChange(fn func(entity.AuthEvent, *entity.AuthUser)) func() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nextID++
	id := a.nextID
	a.listeners[id] = fn
	return func() {
		a.mu.Lock()
		delete(a.listeners, id)
		a.mu.Unlock()
	}
}

func (a *Auth) Listeners() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.listeners)
}

func (a *Auth) emit(event entity.AuthEvent, u *entity.AuthUser) {
	a.mu.Lock()
	fns := make([]func(entity.AuthEvent, *entity.AuthUser), 0, len(a.listeners))
	for _, fn := range a.listeners {
		fns = append(fns, fn)
	}
	a.mu.Unlock()

	for _, fn := range fns {
		fn(event, u)
	}
}

// Notifier records every event in order.
type Notifier struct {
	mu     sync.Mutex
	Events []string
}

func (n *Notifier) Notify(event string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Events = append(n.Events, event)
}

func (n *Notifier) Count(event string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, e := range n.Events {
		if e == event {
			c++
		}
	}
	return c
}
