package usecase

import (
	"context"
	stderrors "errors"
	"net/url"
	"strings"
	"time"

	"gretastore/internal/domain/entity"
	"gretastore/pkg/errors"
	"gretastore/pkg/logger"
)

const (
	defaultDisplayName = "Usuario"
	authEventTimeout   = 10 * time.Second
)

func (s *StoreUseCase) restoreSession(ctx context.Context) {
	authUser, err := s.auth.GetSession(ctx)
	if err != nil {
		logger.Error("Session error: %v", err)
		return
	}
	if authUser == nil {
		return
	}
	s.setUser(s.mapUser(ctx, authUser))
}

// handleAuthEvent keeps the session user in step with the auth provider.
func (s *StoreUseCase) handleAuthEvent(event entity.AuthEvent, authUser *entity.AuthUser) {
	if event == entity.AuthSignedOut || authUser == nil {
		s.setUser(nil)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), authEventTimeout)
	defer cancel()
	s.setUser(s.mapUser(ctx, authUser))
}

// mapUser derives role, name and phone from the profile record, falling back
// to the admin email match and the email's local part.
func (s *StoreUseCase) mapUser(ctx context.Context, authUser *entity.AuthUser) *entity.User {
	role := entity.RoleClient
	name := defaultDisplayName
	if local, _, ok := strings.Cut(authUser.Email, "@"); ok && local != "" {
		name = local
	}
	phone := ""

	if s.adminEmail != "" && strings.EqualFold(authUser.Email, s.adminEmail) {
		role = entity.RoleAdmin
	}

	profile, err := s.profileRepo.GetByID(ctx, authUser.ID)
	switch {
	case err != nil:
		logger.Warn("Could not fetch profile for %s, using fallback auth data: %v", authUser.ID, err)
	case profile != nil:
		if profile.Role.Valid() {
			role = profile.Role
		}
		if profile.FullName != "" {
			name = profile.FullName
		}
		phone = profile.Phone
	}

	return &entity.User{
		ID:     authUser.ID,
		Email:  authUser.Email,
		Name:   name,
		Role:   role,
		Phone:  phone,
		Avatar: avatarURL(name),
	}
}

func avatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=a3e635&color=18181b"
}

func (s *StoreUseCase) setUser(u *entity.User) {
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
	s.notifier.Notify(EventSessionUpdated)
}

// Login signs in with email and password. The session user is populated by
// the auth state listener before this returns.
func (s *StoreUseCase) Login(ctx context.Context, email, password string) error {
	if _, err := s.auth.SignInWithPassword(ctx, email, password); err != nil {
		return err
	}
	return nil
}

// Signup creates the account and a client profile record. A failed profile
// write is logged; the account still works with fallback data.
func (s *StoreUseCase) Signup(ctx context.Context, input entity.SignupInput) error {
	authUser, err := s.auth.SignUp(ctx, input)
	if err != nil {
		return err
	}

	profile := entity.Profile{
		ID:       authUser.ID,
		FullName: input.Name,
		Role:     entity.RoleClient,
		Phone:    input.Phone,
	}
	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		logger.Warn("Failed to create profile for %s: %v", authUser.ID, err)
		return nil
	}

	// The listener ran before the profile existed; map again with it.
	s.setUser(s.mapUser(ctx, authUser))
	return nil
}

// SessionToken is the bearer token callers present to reach
// session-protected routes.
func (s *StoreUseCase) SessionToken(ctx context.Context) (string, error) {
	token, err := s.auth.IDToken(ctx)
	if err != nil {
		return "", errors.Unavailable("Failed to read session token", err)
	}
	return token, nil
}

// VerifySession resolves a bearer id token to the session user. The token
// must verify and belong to whoever is signed in.
func (s *StoreUseCase) VerifySession(ctx context.Context, idToken string) (*entity.User, error) {
	uid, err := s.auth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, errors.Unauthorized("Invalid or expired token", err)
	}

	user := s.CurrentUser()
	if user == nil || user.ID != uid {
		return nil, errors.Unauthorized("Token does not match the active session", nil)
	}
	return user, nil
}

// Logout always forgets the local user, even if the provider call fails.
func (s *StoreUseCase) Logout(ctx context.Context) error {
	err := s.auth.SignOut(ctx)
	s.setUser(nil)
	if err != nil {
		return errors.Unavailable("Failed to sign out", err)
	}
	return nil
}

// UpdateUserProfile patches the session user, then writes the auth metadata
// and the profile record. The two writes are independent; if only one
// succeeds the backend records disagree and the error says which failed.
func (s *StoreUseCase) UpdateUserProfile(ctx context.Context, name, phone string) error {
	s.mu.Lock()
	if s.user == nil || s.user.ID == "" {
		s.mu.Unlock()
		return errors.Unauthorized("No active session", nil)
	}
	s.user.Name = name
	s.user.Phone = phone
	uid := s.user.ID
	s.setSyncLocked(entity.KindProfile, uid, entity.SyncPending)
	s.mu.Unlock()
	s.notifier.Notify(EventSessionUpdated)

	var errs []error
	if err := s.auth.UpdateUserMetadata(ctx, uid, name, phone); err != nil {
		errs = append(errs, err)
	}
	if err := s.profileRepo.UpdateDetails(ctx, uid, name, phone); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		s.setSync(entity.KindProfile, uid, entity.SyncFailed)
		return errors.Unavailable("Failed to update profile", stderrors.Join(errs...))
	}
	s.setSync(entity.KindProfile, uid, entity.SyncConfirmed)
	return nil
}

// UpdateUserRole changes another account's role. Only admins may call it.
func (s *StoreUseCase) UpdateUserRole(ctx context.Context, userID string, role entity.Role) error {
	current := s.CurrentUser()
	if current == nil || current.Role != entity.RoleAdmin {
		return errors.Forbidden("Admin privileges required", nil)
	}
	if !role.Valid() {
		return errors.BadRequest("Invalid role", nil)
	}

	if err := s.profileRepo.UpdateRole(ctx, userID, role); err != nil {
		return errors.Unavailable("Failed to update role", err)
	}
	logger.Info("User %s promoted to %s", userID, role)

	if userID == current.ID {
		s.mu.Lock()
		if s.user != nil && s.user.ID == userID {
			s.user.Role = role
		}
		s.mu.Unlock()
		s.notifier.Notify(EventSessionUpdated)
	}
	return nil
}
