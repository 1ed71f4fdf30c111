package usecase

import (
	"context"

	"gretastore/internal/domain/entity"
)

// AuthClient is the hosted authentication provider. Listeners registered with
// OnAuthStateChange run before SignInWithPassword, SignUp and SignOut return.
type AuthClient interface {
	SignUp(ctx context.Context, input entity.SignupInput) (*entity.AuthUser, error)
	SignInWithPassword(ctx context.Context, email, password string) (*entity.AuthUser, error)
	SignOut(ctx context.Context) error
	// GetSession returns nil without error when nobody is signed in.
	GetSession(ctx context.Context) (*entity.AuthUser, error)
	UpdateUserMetadata(ctx context.Context, uid, fullName, phone string) error
	// IDToken returns the id token of the current session, or "" when nobody
	// is signed in.
	IDToken(ctx context.Context) (string, error)
	// VerifyIDToken checks a token issued by the provider and returns its UID.
	VerifyIDToken(ctx context.Context, idToken string) (string, error)
	OnAuthStateChange(fn func(event entity.AuthEvent, user *entity.AuthUser)) (unsubscribe func())
}

// Notifier tells the presentation layer which collection changed.
type Notifier interface {
	Notify(event string)
}

const (
	EventCartUpdated     = "cart.updated"
	EventProductsUpdated = "products.updated"
	EventOrdersUpdated   = "orders.updated"
	EventSessionUpdated  = "session.updated"
)

type noopNotifier struct{}

func (noopNotifier) Notify(string) {}
