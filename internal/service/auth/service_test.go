package auth

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"log/slog"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/repository"
	"github.com/taskdeck/taskdeck/pkg/config"
	jwtpkg "github.com/taskdeck/taskdeck/pkg/jwt"
)

type stubUserRepository struct {
	byEmail map[string]*domain.User
	nextID  int64
}

func newStubUserRepository() *stubUserRepository {
	return &stubUserRepository{byEmail: make(map[string]*domain.User), nextID: 1}
}

func (s *stubUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	if _, ok := s.byEmail[user.Email]; ok {
		return repository.ErrConflict
	}
	user.ID = s.nextID
	s.nextID++
	user.CreatedAt = time.Now().UTC()
	stored := *user
	s.byEmail[user.Email] = &stored
	return nil
}

func (s *stubUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if user, ok := s.byEmail[email]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubUserRepository) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	for _, user := range s.byEmail {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *stubUserRepository) DeleteUser(ctx context.Context, id int64) error {
	for email, user := range s.byEmail {
		if user.ID == id {
			delete(s.byEmail, email)
			return nil
		}
	}
	return repository.ErrNotFound
}

func newTestService(users repository.UserRepository) Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.APIConfig{JWTSecret: "service-test-secret", TokenTTL: time.Hour}
	return New(users, log, cfg)
}

func TestSignupDuplicateEmail(t *testing.T) {
	repo := newStubUserRepository()
	svc := newTestService(repo)

	first, _, err := svc.Signup(context.Background(), "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if first.ID == 0 {
		t.Fatal("expected store-assigned id")
	}
	if !first.IsActive {
		t.Fatal("new accounts must be active")
	}

	if _, _, err := svc.Signup(context.Background(), "alice@example.com", "password456"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if len(repo.byEmail) != 1 {
		t.Fatalf("expected exactly one stored user, got %d", len(repo.byEmail))
	}
}

func TestSignupValidation(t *testing.T) {
	svc := newTestService(newStubUserRepository())

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "password123"},
		{"bad email", "not-an-email", "password123"},
		{"short password", "alice@example.com", "short"},
		{"oversized password", "alice@example.com", string(make([]byte, 80))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := svc.Signup(context.Background(), tc.email, tc.password); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestLoginOutcomeIndistinguishability(t *testing.T) {
	repo := newStubUserRepository()
	svc := newTestService(repo)

	if _, _, err := svc.Signup(context.Background(), "alice@example.com", "password123"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	user, token, err := svc.Login(context.Background(), "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("login with correct password failed: %v", err)
	}
	if user.Email != "alice@example.com" || token == "" {
		t.Fatalf("unexpected login result: %+v token=%q", user, token)
	}

	_, _, wrongPassErr := svc.Login(context.Background(), "alice@example.com", "wrongpassword")
	_, _, unknownErr := svc.Login(context.Background(), "nobody@example.com", "password123")
	if !errors.Is(wrongPassErr, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassErr)
	}
	if !errors.Is(unknownErr, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownErr)
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	repo := newStubUserRepository()
	svc := newTestService(repo)

	if _, _, err := svc.Signup(context.Background(), "alice@example.com", "password123"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	repo.byEmail["alice@example.com"].IsActive = false

	if _, _, err := svc.Login(context.Background(), "alice@example.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("inactive account: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthorize(t *testing.T) {
	repo := newStubUserRepository()
	svc := newTestService(repo)

	created, token, err := svc.Signup(context.Background(), "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	resolved, err := svc.Authorize(context.Background(), token)
	if err != nil {
		t.Fatalf("authorize failed: %v", err)
	}
	if resolved.ID != created.ID {
		t.Fatalf("resolved user %d, want %d", resolved.ID, created.ID)
	}
}

func TestAuthorizeFailuresCollapse(t *testing.T) {
	repo := newStubUserRepository()
	svc := newTestService(repo)

	_, token, err := svc.Signup(context.Background(), "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	expired, err := jwtpkg.GenerateToken("alice@example.com", "service-test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("generate expired token: %v", err)
	}
	foreign, err := jwtpkg.GenerateToken("alice@example.com", "some-other-secret", time.Hour)
	if err != nil {
		t.Fatalf("generate foreign token: %v", err)
	}
	ghost, err := jwtpkg.GenerateToken("ghost@example.com", "service-test-secret", time.Hour)
	if err != nil {
		t.Fatalf("generate ghost token: %v", err)
	}

	cases := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"malformed token", "not.a.token"},
		{"expired token", expired},
		{"wrong signature", foreign},
		{"subject without account", ghost},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Authorize(context.Background(), tc.token); !errors.Is(err, ErrUnauthorized) {
				t.Fatalf("expected ErrUnauthorized, got %v", err)
			}
		})
	}

	// a valid token stops authorizing once the account is gone
	if err := svc.DeleteAccount(context.Background(), 1); err != nil {
		t.Fatalf("delete account: %v", err)
	}
	if _, err := svc.Authorize(context.Background(), token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("deleted subject: expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthorizeInactiveAccount(t *testing.T) {
	repo := newStubUserRepository()
	svc := newTestService(repo)

	_, token, err := svc.Signup(context.Background(), "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	repo.byEmail["alice@example.com"].IsActive = false

	if _, err := svc.Authorize(context.Background(), token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("inactive subject: expected ErrUnauthorized, got %v", err)
	}
}
