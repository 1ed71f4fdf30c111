package entity

// AuthUser is what the auth provider knows about a signed-in account.
type AuthUser struct {
	ID       string
	Email    string
	FullName string
	Phone    string
}

type AuthEvent string

const (
	AuthSignedIn    AuthEvent = "SIGNED_IN"
	AuthSignedOut   AuthEvent = "SIGNED_OUT"
	AuthUserUpdated AuthEvent = "USER_UPDATED"
)

type SignupInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
}
