package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/models"
	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/repositories"
)

type memoryUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: map[uuid.UUID]*models.User{}}
}

func (m *memoryUsers) Create(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.Prepare()
	for _, existing := range m.users {
		if existing.Email == u.Email || existing.Username == u.Username {
			return repositories.ErrDuplicateUser
		}
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memoryUsers) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memoryUsers) FindUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

type memoryBlacklist struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func (b *memoryBlacklist) Blacklist(_ context.Context, jti string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.revoked == nil {
		b.revoked = map[string]time.Duration{}
	}
	b.revoked[jti] = ttl
	return nil
}

func (b *memoryBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.revoked[jti]
	return ok, nil
}

func validInput() RegisterInput {
	return RegisterInput{
		Username:    "alice_01",
		Email:       " Alice@Example.com ",
		CountryCode: "+91",
		Phone:       "98765-43210",
		Password:    "hunter#22",
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegisterInput)
		want   string
	}{
		{"missing field", func(in *RegisterInput) { in.Phone = "" }, "All fields are required"},
		{"short username", func(in *RegisterInput) { in.Username = "ab" }, "Username must be 3-50 characters"},
		{"bad email", func(in *RegisterInput) { in.Email = "alice@local" }, "valid email address"},
		{"bad country code", func(in *RegisterInput) { in.CountryCode = "91" }, "Invalid country code format"},
		{"nine digit phone", func(in *RegisterInput) { in.Phone = "987654321" }, "exactly 10 digits"},
		{"weak password", func(in *RegisterInput) { in.Password = "password123" }, "include @ or #"},
		{"short password", func(in *RegisterInput) { in.Password = "a@b" }, "at least 8 characters"},
		{"username checked first", func(in *RegisterInput) { in.Username = "!"; in.Password = "x" }, "Username"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(newMemoryUsers(), nil, []byte("secret"), time.Hour)
			in := validInput()
			tt.mutate(&in)

			_, err := svc.Register(context.Background(), in)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Register() error = %v, want ValidationError", err)
			}
			if !strings.Contains(verr.Message, tt.want) {
				t.Errorf("message = %q, want containing %q", verr.Message, tt.want)
			}
		})
	}
}

func TestRegisterLoginMe(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newMemoryUsers(), nil, []byte("secret"), time.Hour)

	user, err := svc.Register(ctx, validInput())
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if user.Email != "alice@example.com" || user.PhoneNumber != "9876543210" {
		t.Errorf("Register() stored %+v", user)
	}
	if user.PasswordHash == "" || user.PasswordHash == "hunter#22" {
		t.Error("password must be hashed")
	}

	if _, err := svc.Register(ctx, validInput()); !errors.Is(err, ErrEmailExists) {
		t.Errorf("second Register() error = %v, want ErrEmailExists", err)
	}

	other := validInput()
	other.Email = "other@example.com"
	if _, err := svc.Register(ctx, other); !errors.Is(err, ErrUserExists) {
		t.Errorf("Register() with a taken username error = %v, want ErrUserExists", err)
	}

	if _, err := svc.Login(ctx, "alice@example.com", "wrong#pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() wrong password error = %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "hunter#22"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() unknown user error = %v", err)
	}

	token, err := svc.Login(ctx, "ALICE@example.com", "hunter#22")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	claims, err := svc.VerifyToken(ctx, token)
	if err != nil {
		t.Fatalf("VerifyToken() error: %v", err)
	}

	profile, err := svc.Me(ctx, claims.UserID)
	if err != nil {
		t.Fatalf("Me() error: %v", err)
	}
	if profile.Username != "alice_01" || profile.Phone.CountryCode != "+91" {
		t.Errorf("Me() = %+v", profile)
	}

	if _, err := svc.Me(ctx, uuid.New()); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Me() unknown id error = %v", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	ctx := context.Background()
	blacklist := &memoryBlacklist{}
	svc := NewAuthService(newMemoryUsers(), blacklist, []byte("secret"), time.Hour)

	if _, err := svc.Register(ctx, validInput()); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	token, err := svc.Login(ctx, "alice@example.com", "hunter#22")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	claims, err := svc.VerifyToken(ctx, token)
	if err != nil {
		t.Fatalf("VerifyToken() error: %v", err)
	}

	if err := svc.Logout(ctx, claims); err != nil {
		t.Fatalf("Logout() error: %v", err)
	}
	if ttl := blacklist.revoked[claims.ID]; ttl <= 0 || ttl > time.Hour {
		t.Errorf("blacklist ttl = %v", ttl)
	}
	if _, err := svc.VerifyToken(ctx, token); !errors.Is(err, ErrTokenRevoked) {
		t.Errorf("VerifyToken() after logout error = %v, want ErrTokenRevoked", err)
	}
}

func TestLogoutWithoutBlacklist(t *testing.T) {
	svc := NewAuthService(newMemoryUsers(), nil, []byte("secret"), time.Hour)
	if err := svc.Logout(context.Background(), nil); err != nil {
		t.Errorf("Logout() error: %v", err)
	}
}
