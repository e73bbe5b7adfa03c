package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/relaycrm/crm-system/internal/core/domain"
	"github.com/relaycrm/crm-system/internal/core/ports"
)

type stubUserRepo struct {
	users    map[uint]*domain.User
	profiles map[uint]*domain.UserProfile
	nextID   uint
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users:    make(map[uint]*domain.User),
		profiles: make(map[uint]*domain.UserProfile),
	}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) usernameTaken(username string, except uint) bool {
	for id, u := range r.users {
		if id != except && u.Username == username {
			return true
		}
	}
	return false
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	if r.usernameTaken(user.Username, 0) {
		return domain.ErrUserExists
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	if err := user.Validate(); err != nil {
		return err
	}
	if r.usernameTaken(user.Username, user.ID) {
		return domain.ErrUserExists
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uint) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *stubUserRepo) GetOrCreateProfile(_ context.Context, userID uint) (*domain.UserProfile, error) {
	if p, ok := r.profiles[userID]; ok {
		clone := *p
		return &clone, nil
	}
	p := &domain.UserProfile{ID: uint(len(r.profiles) + 1), UserID: userID}
	r.profiles[userID] = p
	clone := *p
	return &clone, nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, p *domain.UserProfile) error {
	if _, ok := r.profiles[p.UserID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *p
	r.profiles[p.UserID] = &clone
	return nil
}

type stubDenylist struct {
	revoked map[string]time.Duration
}

func (d *stubDenylist) Revoke(_ context.Context, id string, ttl time.Duration) error {
	if d.revoked == nil {
		d.revoked = make(map[string]time.Duration)
	}
	d.revoked[id] = ttl
	return nil
}

func (d *stubDenylist) IsRevoked(_ context.Context, id string) (bool, error) {
	_, ok := d.revoked[id]
	return ok, nil
}

func seedUser(t *testing.T, repo *stubUserRepo, username, password string, active bool) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := &domain.User{Username: username, FirstName: "Carol", PasswordHash: string(hash), IsActive: active}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	seeded := seedUser(t, repo, "carol", "s3cret", true)
	svc := NewAuthService(repo, &stubDenylist{}, "secret", time.Hour)

	token, user, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Username != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.Username != "carol" {
		t.Fatalf("expected username claim carol, got %q", claims.Username)
	}
	if claims.Subject != "1" || seeded.ID != 1 {
		t.Fatalf("expected subject 1, got %q", claims.Subject)
	}
	if claims.ID == "" {
		t.Fatalf("expected token id")
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "dave", "goodpass", true)
	svc := NewAuthService(repo, &stubDenylist{}, "secret", time.Hour)

	if _, _, err := svc.Login(context.Background(), "dave", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), &stubDenylist{}, "secret", time.Hour)

	if _, _, err := svc.Login(context.Background(), "ghost", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_EmptyFields(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), &stubDenylist{}, "secret", time.Hour)

	if _, _, err := svc.Login(context.Background(), "", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "erin", "pass1234", false)
	svc := NewAuthService(repo, &stubDenylist{}, "secret", time.Hour)

	if _, _, err := svc.Login(context.Background(), "erin", "pass1234"); err != domain.ErrInactiveUser {
		t.Fatalf("expected ErrInactiveUser, got %v", err)
	}
}

func TestAuthService_Logout_RevokesUntilExpiry(t *testing.T) {
	deny := &stubDenylist{}
	svc := NewAuthService(newStubUserRepo(), deny, "secret", time.Hour)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	err := svc.Logout(context.Background(), ports.TokenClaims{TokenID: "jti-1", ExpiresAt: now.Add(30 * time.Minute)})
	if err != nil {
		t.Fatalf("logout: %v", err)
	}
	if ttl := deny.revoked["jti-1"]; ttl != 30*time.Minute {
		t.Fatalf("expected 30m ttl, got %v", ttl)
	}
}

func TestAuthService_Logout_ExpiredTokenIsNoop(t *testing.T) {
	deny := &stubDenylist{}
	svc := NewAuthService(newStubUserRepo(), deny, "secret", time.Hour)

	err := svc.Logout(context.Background(), ports.TokenClaims{TokenID: "old", ExpiresAt: time.Now().Add(-time.Minute)})
	if err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(deny.revoked) != 0 {
		t.Fatalf("expired token should not be stored")
	}
}
