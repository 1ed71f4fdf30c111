package firebase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"gretastore/internal/domain/entity"
	"gretastore/pkg/errors"
)

type memoryStorage struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{data: make(map[string][]byte)}
}

func (m *memoryStorage) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memoryStorage) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memoryStorage) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memoryStorage) Close() error { return nil }

type fakeAdmin struct {
	users     map[string]*auth.UserRecord
	createErr error
	revoked   []string
	revokeErr error
	verifyErr error
}

func newFakeAdmin() *fakeAdmin {
	return &fakeAdmin{users: make(map[string]*auth.UserRecord)}
}

func (f *fakeAdmin) addUser(uid, email string, claims map[string]interface{}) {
	f.users[uid] = &auth.UserRecord{UserInfo: &auth.UserInfo{UID: uid, Email: email}, CustomClaims: claims}
}

func (f *fakeAdmin) CreateUser(_ context.Context, _ *auth.UserToCreate) (*auth.UserRecord, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.addUser("uid-new", "nuevo@greta.pe", nil)
	return f.users["uid-new"], nil
}

func (f *fakeAdmin) GetUser(_ context.Context, uid string) (*auth.UserRecord, error) {
	u, ok := f.users[uid]
	if !ok {
		return nil, fmt.Errorf("no user %s", uid)
	}
	return u, nil
}

func (f *fakeAdmin) SetCustomUserClaims(_ context.Context, uid string, claims map[string]interface{}) error {
	u, ok := f.users[uid]
	if !ok {
		return fmt.Errorf("no user %s", uid)
	}
	u.CustomClaims = claims
	return nil
}

func (f *fakeAdmin) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return &auth.Token{UID: idToken[len("id-"):]}, nil
}

func (f *fakeAdmin) RevokeRefreshTokens(_ context.Context, uid string) error {
	f.revoked = append(f.revoked, uid)
	return f.revokeErr
}

// identityServer answers the two REST endpoints for a fixed set of accounts.
func identityServer(t *testing.T, accounts map[string][2]string, refreshOK bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/accounts:signInWithPassword", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		var in struct{ Email, Password string }
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		acc, ok := accounts[in.Email]
		if !ok || acc[0] != in.Password {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error":{"code":400,"message":"INVALID_LOGIN_CREDENTIALS"}}`)
			return
		}
		fmt.Fprintf(w, `{"localId":%q,"email":%q,"idToken":"id-%s","refreshToken":"rt-%s","expiresIn":"3600"}`,
			acc[1], in.Email, acc[1], acc[1])
	})
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if !refreshOK {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error":{"message":"TOKEN_EXPIRED"}}`)
			return
		}
		uid := r.Form.Get("refresh_token")[len("rt-"):]
		fmt.Fprintf(w, `{"user_id":%q,"id_token":"id-%s","refresh_token":"rt2-%s","expires_in":"3600"}`, uid, uid, uid)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, admin *fakeAdmin, srv *httptest.Server, store *memoryStorage) *FirebaseAuthClient {
	t.Helper()
	rest, err := newIdentityToolkit(context.Background(), "test-key", option.WithEndpoint(srv.URL+"/"))
	require.NoError(t, err)
	rest.tokenURL = srv.URL
	return newAuthClient(admin, rest, store)
}

func TestSignInPersistsSessionAndNotifies(t *testing.T) {
	admin := newFakeAdmin()
	admin.addUser("u1", "ana@greta.pe", map[string]interface{}{"full_name": "Ana", "phone": "999"})
	srv := identityServer(t, map[string][2]string{"ana@greta.pe": {"secret", "u1"}}, true)
	store := newMemoryStorage()
	client := newTestClient(t, admin, srv, store)

	var events []entity.AuthEvent
	unsubscribe := client.OnAuthStateChange(func(e entity.AuthEvent, u *entity.AuthUser) {
		events = append(events, e)
	})

	user, err := client.SignInWithPassword(context.Background(), "ana@greta.pe", "secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "Ana", user.FullName)
	assert.Equal(t, "999", user.Phone)
	assert.Equal(t, []entity.AuthEvent{entity.AuthSignedIn}, events)

	_, ok, _ := store.Get(context.Background(), sessionKey)
	assert.True(t, ok)

	unsubscribe()
	_, err = client.SignInWithPassword(context.Background(), "ana@greta.pe", "secret")
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestSignInReportsUnreachableService(t *testing.T) {
	srv := identityServer(t, nil, true)
	client := newTestClient(t, newFakeAdmin(), srv, newMemoryStorage())
	srv.Close()

	_, err := client.SignInWithPassword(context.Background(), "ana@greta.pe", "secret")
	assert.True(t, errors.Is(err, "BACKEND_UNAVAILABLE"))
}

func TestIDTokenAndVerify(t *testing.T) {
	admin := newFakeAdmin()
	admin.addUser("u1", "ana@greta.pe", nil)
	srv := identityServer(t, map[string][2]string{"ana@greta.pe": {"secret", "u1"}}, true)
	client := newTestClient(t, admin, srv, newMemoryStorage())
	ctx := context.Background()

	token, err := client.IDToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	_, err = client.SignInWithPassword(ctx, "ana@greta.pe", "secret")
	require.NoError(t, err)

	token, err = client.IDToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "id-u1", token)

	uid, err := client.VerifyIDToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "u1", uid)

	admin.verifyErr = fmt.Errorf("token revoked")
	_, err = client.VerifyIDToken(ctx, token)
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func TestSignInRejectsWrongPassword(t *testing.T) {
	srv := identityServer(t, map[string][2]string{"ana@greta.pe": {"secret", "u1"}}, true)
	client := newTestClient(t, newFakeAdmin(), srv, newMemoryStorage())

	_, err := client.SignInWithPassword(context.Background(), "ana@greta.pe", "nope")
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
	assert.Equal(t, "Invalid login credentials", errors.Message(err))
}

func TestGetSessionRestoresAndRefreshes(t *testing.T) {
	admin := newFakeAdmin()
	admin.addUser("u1", "ana@greta.pe", nil)
	srv := identityServer(t, map[string][2]string{"ana@greta.pe": {"secret", "u1"}}, true)
	store := newMemoryStorage()
	client := newTestClient(t, admin, srv, store)
	ctx := context.Background()

	none, err := client.GetSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = client.SignInWithPassword(ctx, "ana@greta.pe", "secret")
	require.NoError(t, err)

	// A new client over the same storage sees the session, as after a restart.
	restarted := newTestClient(t, admin, srv, store)
	restarted.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	user, err := restarted.GetSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "u1", user.ID)

	raw, _, _ := store.Get(ctx, sessionKey)
	var saved storedSession
	require.NoError(t, json.Unmarshal(raw, &saved))
	assert.Equal(t, "rt2-u1", saved.RefreshToken)
}

func TestGetSessionDropsRevokedRefreshToken(t *testing.T) {
	admin := newFakeAdmin()
	admin.addUser("u1", "ana@greta.pe", nil)
	srv := identityServer(t, map[string][2]string{"ana@greta.pe": {"secret", "u1"}}, false)
	store := newMemoryStorage()
	client := newTestClient(t, admin, srv, store)
	ctx := context.Background()

	_, err := client.SignInWithPassword(ctx, "ana@greta.pe", "secret")
	require.NoError(t, err)
	client.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	user, err := client.GetSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
	_, ok, _ := store.Get(ctx, sessionKey)
	assert.False(t, ok)
}

func TestSignOutClearsSessionEvenWhenRevokeFails(t *testing.T) {
	admin := newFakeAdmin()
	admin.addUser("u1", "ana@greta.pe", nil)
	admin.revokeErr = fmt.Errorf("network down")
	srv := identityServer(t, map[string][2]string{"ana@greta.pe": {"secret", "u1"}}, true)
	store := newMemoryStorage()
	client := newTestClient(t, admin, srv, store)
	ctx := context.Background()

	var last entity.AuthEvent
	client.OnAuthStateChange(func(e entity.AuthEvent, _ *entity.AuthUser) { last = e })

	_, err := client.SignInWithPassword(ctx, "ana@greta.pe", "secret")
	require.NoError(t, err)

	err = client.SignOut(ctx)
	assert.True(t, errors.Is(err, "BACKEND_UNAVAILABLE"))
	assert.Equal(t, []string{"u1"}, admin.revoked)
	assert.Equal(t, entity.AuthSignedOut, last)

	user, err := client.GetSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestSignUpStoresMetadataAndSignsIn(t *testing.T) {
	admin := newFakeAdmin()
	srv := identityServer(t, map[string][2]string{"nuevo@greta.pe": {"secret", "uid-new"}}, true)
	client := newTestClient(t, admin, srv, newMemoryStorage())

	user, err := client.SignUp(context.Background(), entity.SignupInput{
		Email: "nuevo@greta.pe", Password: "secret", Name: "Nuevo Cliente", Phone: "987654321",
	})
	require.NoError(t, err)
	assert.Equal(t, "uid-new", user.ID)
	assert.Equal(t, "Nuevo Cliente", user.FullName)
	assert.Equal(t, "987654321", user.Phone)

	admin.createErr = fmt.Errorf("EMAIL_EXISTS")
	_, err = client.SignUp(context.Background(), entity.SignupInput{Email: "nuevo@greta.pe", Password: "secret"})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestUpdateUserMetadataMergesClaims(t *testing.T) {
	admin := newFakeAdmin()
	admin.addUser("u1", "ana@greta.pe", map[string]interface{}{"full_name": "Ana", "tier": "gold"})
	srv := identityServer(t, map[string][2]string{"ana@greta.pe": {"secret", "u1"}}, true)
	client := newTestClient(t, admin, srv, newMemoryStorage())
	ctx := context.Background()

	_, err := client.SignInWithPassword(ctx, "ana@greta.pe", "secret")
	require.NoError(t, err)

	var updated *entity.AuthUser
	client.OnAuthStateChange(func(e entity.AuthEvent, u *entity.AuthUser) {
		if e == entity.AuthUserUpdated {
			updated = u
		}
	})

	require.NoError(t, client.UpdateUserMetadata(ctx, "u1", "Ana María", "111"))
	claims := admin.users["u1"].CustomClaims
	assert.Equal(t, "Ana María", claims["full_name"])
	assert.Equal(t, "111", claims["phone"])
	assert.Equal(t, "gold", claims["tier"])
	require.NotNil(t, updated)
	assert.Equal(t, "Ana María", updated.FullName)

	assert.Error(t, client.UpdateUserMetadata(ctx, "ghost", "x", "y"))
}
