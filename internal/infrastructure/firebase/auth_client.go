package firebase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"firebase.google.com/go/v4/auth"

	"gretastore/internal/domain/entity"
	"gretastore/internal/domain/repository"
	"gretastore/pkg/errors"
	"gretastore/pkg/logger"
)

const (
	sessionKey = "session"

	claimFullName = "full_name"
	claimPhone    = "phone"
)

// adminClient is the part of the Admin SDK auth client the store uses.
type adminClient interface {
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	GetUser(ctx context.Context, uid string) (*auth.UserRecord, error)
	SetCustomUserClaims(ctx context.Context, uid string, customClaims map[string]interface{}) error
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

// storedSession is what survives a restart under the "session" key.
type storedSession struct {
	UID          string    `json:"uid"`
	Email        string    `json:"email"`
	IDToken      string    `json:"id_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type listener func(entity.AuthEvent, *entity.AuthUser)

// FirebaseAuthClient combines the Admin SDK with the Identity Toolkit REST
// API so the service can hold a password session of its own.
type FirebaseAuthClient struct {
	client adminClient
	rest   *identityToolkit
	store  repository.LocalStorage
	now    func() time.Time
	mu     sync.Mutex
	fns    map[int]listener
	nextFn int
}

func NewFirebaseAuthClient(ctx context.Context, client *auth.Client, apiKey string, store repository.LocalStorage) (*FirebaseAuthClient, error) {
	rest, err := newIdentityToolkit(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	return newAuthClient(client, rest, store), nil
}

func newAuthClient(client adminClient, rest *identityToolkit, store repository.LocalStorage) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client: client,
		rest:   rest,
		store:  store,
		now:    time.Now,
		fns:    make(map[int]listener),
	}
}

func (f *FirebaseAuthClient) SignUp(ctx context.Context, input entity.SignupInput) (*entity.AuthUser, error) {
	params := (&auth.UserToCreate{}).
		Email(input.Email).
		Password(input.Password).
		DisplayName(input.Name)

	user, err := f.client.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return nil, errors.BadRequest("Email already in use", err)
		}
		return nil, errors.BadRequest("Failed to create account", err)
	}

	claims := map[string]interface{}{claimFullName: input.Name, claimPhone: input.Phone}
	if err := f.client.SetCustomUserClaims(ctx, user.UID, claims); err != nil {
		logger.Warn("Failed to store metadata for %s: %v", user.UID, err)
	}

	return f.SignInWithPassword(ctx, input.Email, input.Password)
}

func (f *FirebaseAuthClient) SignInWithPassword(ctx context.Context, email, password string) (*entity.AuthUser, error) {
	tokens, err := f.rest.signInWithPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}

	session := storedSession{
		UID:          tokens.UID,
		Email:        tokens.Email,
		IDToken:      tokens.IDToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    f.now().Add(tokens.ExpiresIn),
	}
	if err := f.saveSession(ctx, session); err != nil {
		return nil, err
	}

	user, err := f.lookupUser(ctx, session.UID, session.Email)
	if err != nil {
		return nil, err
	}

	f.emit(entity.AuthSignedIn, user)
	return user, nil
}

// SignOut always forgets the local session; revoking the refresh tokens
// is best effort and its failure is returned after listeners have run.
func (f *FirebaseAuthClient) SignOut(ctx context.Context) error {
	session, err := f.loadSession(ctx)

	var revokeErr error
	if err == nil && session != nil {
		if err := f.client.RevokeRefreshTokens(ctx, session.UID); err != nil {
			revokeErr = errors.Unavailable("Failed to revoke session", err)
		}
	}
	if err := f.store.Remove(ctx, sessionKey); err != nil {
		logger.Error("Failed to remove stored session: %v", err)
	}

	f.emit(entity.AuthSignedOut, nil)
	return revokeErr
}

func (f *FirebaseAuthClient) GetSession(ctx context.Context) (*entity.AuthUser, error) {
	session, uid, err := f.activeSession(ctx)
	if err != nil || session == nil {
		return nil, err
	}
	return f.lookupUser(ctx, uid, session.Email)
}

// IDToken returns a verified, unexpired id token for the stored session.
func (f *FirebaseAuthClient) IDToken(ctx context.Context) (string, error) {
	session, _, err := f.activeSession(ctx)
	if err != nil || session == nil {
		return "", err
	}
	return session.IDToken, nil
}

func (f *FirebaseAuthClient) VerifyIDToken(ctx context.Context, idToken string) (string, error) {
	token, err := f.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", errors.Unauthorized("Invalid or expired token", err)
	}
	return token.UID, nil
}

// activeSession loads the stored session, refreshing its tokens when they
// have expired. A session the provider no longer accepts is removed and
// reported as nil.
func (f *FirebaseAuthClient) activeSession(ctx context.Context) (*storedSession, string, error) {
	session, err := f.loadSession(ctx)
	if err != nil || session == nil {
		return nil, "", err
	}

	if !f.now().Before(session.ExpiresAt) {
		tokens, err := f.rest.refresh(ctx, session.RefreshToken)
		if errors.Is(err, "UNAUTHORIZED") {
			logger.Info("Stored session for %s is no longer valid", session.Email)
			_ = f.store.Remove(ctx, sessionKey)
			return nil, "", nil
		}
		if err != nil {
			return nil, "", err
		}
		session.IDToken = tokens.IDToken
		session.RefreshToken = tokens.RefreshToken
		session.ExpiresAt = f.now().Add(tokens.ExpiresIn)
		if err := f.saveSession(ctx, *session); err != nil {
			return nil, "", err
		}
	}

	token, err := f.client.VerifyIDToken(ctx, session.IDToken)
	if err != nil {
		logger.Info("Stored token rejected: %v", err)
		_ = f.store.Remove(ctx, sessionKey)
		return nil, "", nil
	}
	return session, token.UID, nil
}

// UpdateUserMetadata merges name and phone into the account's custom claims.
func (f *FirebaseAuthClient) UpdateUserMetadata(ctx context.Context, uid, fullName, phone string) error {
	record, err := f.client.GetUser(ctx, uid)
	if err != nil {
		return errors.Unavailable("Failed to load account", err)
	}

	claims := make(map[string]interface{}, len(record.CustomClaims)+2)
	for k, v := range record.CustomClaims {
		claims[k] = v
	}
	claims[claimFullName] = fullName
	claims[claimPhone] = phone

	if err := f.client.SetCustomUserClaims(ctx, uid, claims); err != nil {
		return errors.Unavailable("Failed to update account", err)
	}

	session, _ := f.loadSession(ctx)
	if session != nil && session.UID == uid {
		f.emit(entity.AuthUserUpdated, &entity.AuthUser{ID: uid, Email: session.Email, FullName: fullName, Phone: phone})
	}
	return nil
}

func (f *FirebaseAuthClient) OnAuthStateChange(fn func(entity.AuthEvent, *entity.AuthUser)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextFn++
	id := f.nextFn
	f.fns[id] = fn

	return func() {
		f.mu.Lock()
		delete(f.fns, id)
		f.mu.Unlock()
	}
}

// TestConnection asks for a user that cannot exist; a not-found answer
// proves the credentials and network path work.
func (f *FirebaseAuthClient) TestConnection(ctx context.Context) error {
	_, err := f.client.GetUser(ctx, "gretastore-health-check")
	if err == nil || auth.IsUserNotFound(err) {
		return nil
	}
	return err
}

func (f *FirebaseAuthClient) emit(event entity.AuthEvent, user *entity.AuthUser) {
	f.mu.Lock()
	fns := make([]listener, 0, len(f.fns))
	for _, fn := range f.fns {
		fns = append(fns, fn)
	}
	f.mu.Unlock()

	for _, fn := range fns {
		fn(event, user)
	}
}

func (f *FirebaseAuthClient) lookupUser(ctx context.Context, uid, email string) (*entity.AuthUser, error) {
	user := &entity.AuthUser{ID: uid, Email: email}

	record, err := f.client.GetUser(ctx, uid)
	if err != nil {
		logger.Warn("Failed to load account %s: %v", uid, err)
		return user, nil
	}
	if record.UserInfo != nil && record.Email != "" {
		user.Email = record.Email
	}
	if name, ok := record.CustomClaims[claimFullName].(string); ok {
		user.FullName = name
	} else if record.UserInfo != nil {
		user.FullName = record.DisplayName
	}
	if phone, ok := record.CustomClaims[claimPhone].(string); ok {
		user.Phone = phone
	}
	return user, nil
}

func (f *FirebaseAuthClient) loadSession(ctx context.Context) (*storedSession, error) {
	raw, ok, err := f.store.Get(ctx, sessionKey)
	if err != nil {
		return nil, errors.Unavailable("Failed to read session", err)
	}
	if !ok {
		return nil, nil
	}

	var session storedSession
	if err := json.Unmarshal(raw, &session); err != nil || session.UID == "" {
		logger.Warn("Discarding unreadable session")
		_ = f.store.Remove(ctx, sessionKey)
		return nil, nil
	}
	return &session, nil
}

func (f *FirebaseAuthClient) saveSession(ctx context.Context, session storedSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return errors.Internal("Failed to encode session", err)
	}
	if err := f.store.Set(ctx, sessionKey, raw); err != nil {
		return errors.Unavailable("Failed to store session", err)
	}
	return nil
}
