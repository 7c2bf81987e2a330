package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/models"
	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/repositories"
	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/utils"
)

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrUserExists         = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrTokenRevoked       = errors.New("token has been revoked")
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// TokenBlacklist remembers revoked token IDs. It is optional; without it
// logout is client side only.
type TokenBlacklist interface {
	Blacklist(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// RegisterInput fields are declared in the order their rules are checked.
type RegisterInput struct {
	Username    string `json:"username" validate:"required,username"`
	Email       string `json:"email" validate:"required,emailaddr"`
	CountryCode string `json:"countryCode" validate:"required,countrycode"`
	Phone       string `json:"phone" validate:"required,phone10"`
	Password    string `json:"password" validate:"required,strongpassword"`
}

type AuthService struct {
	users     UserStore
	blacklist TokenBlacklist
	validate  *validator.Validate
	secret    []byte
	ttl       time.Duration
}

func NewAuthService(users UserStore, blacklist TokenBlacklist, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		blacklist: blacklist,
		validate:  NewValidator(),
		secret:    secret,
		ttl:       ttl,
	}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	// 1. Validate input
	if err := s.validate.Struct(in); err != nil {
		return nil, translateValidation(err)
	}

	user := &models.User{
		Username:         strings.TrimSpace(in.Username),
		Email:            utils.NormalizeEmail(in.Email),
		PhoneCountryCode: strings.TrimSpace(in.CountryCode),
		PhoneNumber:      utils.DigitsOnly(in.Phone),
	}

	// 2. Check if it already exists
	existing, err := s.users.FindUserByEmail(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	// 3. Hash password and save
	hash, err := utils.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateUser) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

// Login returns a signed access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindUserByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return "", fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}
	if err := utils.VerifyPassword(user.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}
	return utils.GenerateJWT(user.ID, s.ttl, s.secret)
}

// Logout revokes the token described by claims for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, claims *utils.Claims) error {
	if s.blacklist == nil || claims == nil || claims.ID == "" {
		return nil
	}
	return s.blacklist.Blacklist(ctx, claims.ID, claims.TTL())
}

func (s *AuthService) VerifyToken(ctx context.Context, token string) (*utils.Claims, error) {
	claims, err := utils.VerifyJWT(token, s.secret)
	if err != nil {
		return nil, err
	}
	if s.blacklist != nil && claims.ID != "" {
		revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			log.Printf("blacklist lookup failed: %v", err)
			return nil, fmt.Errorf("check token: %w", err)
		}
		if revoked {
			return nil, ErrTokenRevoked
		}
	}
	return claims, nil
}

func (s *AuthService) Me(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	user, err := s.users.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	profile := user.Profile()
	return &profile, nil
}
