package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fernandoludvig/finance-api/internal/config"
	"github.com/fernandoludvig/finance-api/internal/dto"
	"github.com/fernandoludvig/finance-api/internal/models"
	"github.com/fernandoludvig/finance-api/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const (
	stateTTL     = 10 * time.Minute
	statePurpose = "oauth_state"
)

// UserCreatedHook runs after a new account is stored. Failures are logged
// and never fail the sign-up.
type UserCreatedHook func(ctx context.Context, userID primitive.ObjectID) error

type AuthService struct {
	users         UserRepository
	cfg           *config.Config
	onUserCreated UserCreatedHook
	now           func() time.Time
}

func NewAuthService(users UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		users: users,
		cfg:   cfg,
		now:   time.Now,
	}
}

func (s *AuthService) OnUserCreated(hook UserCreatedHook) {
	s.onUserCreated = hook
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	for _, f := range []struct{ name, value string }{
		{"firstName", req.FirstName},
		{"lastName", req.LastName},
		{"email", req.Email},
		{"password", req.Password},
		{"favoriteColor", req.FavoriteColor},
		{"birthday", req.Birthday},
	} {
		if err := required(f.name, f.value); err != nil {
			return nil, err
		}
	}
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := validateBirthday(req.Birthday); err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user := models.User{
		Email:         req.Email,
		PasswordHash:  hash,
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		FavoriteColor: strings.TrimSpace(req.FavoriteColor),
		Birthday:      req.Birthday,
		PhoneNumber:   strings.TrimSpace(req.PhoneNumber),
		Provider:      models.ProviderLocal,
		Role:          models.RoleUser,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	s.userCreated(ctx, user.ID)

	token, err := s.IssueToken(&user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, UserID: user.ID.Hex()}, nil
}

// Login answers every credential failure with ErrInvalidCredentials so
// callers cannot tell unknown accounts from wrong passwords.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if req.Password == "" {
		return nil, invalid("password", "Password is required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, UserID: user.ID.Hex(), User: user}, nil
}

func (s *AuthService) Profile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, mapRepoErr(err, ErrUserNotFound, nil)
	}
	return user, nil
}

// TestToken issues a token for an existing user without a password check.
// Only routed outside production.
func (s *AuthService) TestToken(ctx context.Context, userID primitive.ObjectID) (*dto.AuthResponse, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, UserID: user.ID.Hex()}, nil
}

// SignInWithGoogle finds the account bound to the Google id, links an
// existing account with the same verified email, or creates a new one.
// Profiles without an email are rejected.
func (s *AuthService) SignInWithGoogle(ctx context.Context, info *GoogleUser) (*dto.AuthResponse, error) {
	if info == nil || info.ID == "" {
		return nil, errors.New("google profile has no id")
	}

	user, err := s.users.FindByGoogleID(ctx, info.ID)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrNotFound):
		user, err = s.linkOrCreateGoogleUser(ctx, info)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("failed to look up google user: %w", err)
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, UserID: user.ID.Hex(), User: user}, nil
}

func (s *AuthService) linkOrCreateGoogleUser(ctx context.Context, info *GoogleUser) (*models.User, error) {
	email := normalizeEmail(info.Email)
	if email == "" {
		return nil, invalid("email", "Google account has no email address")
	}
	now := s.now().UTC()

	existing, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		// Only a verified Google address proves ownership of the account.
		if !info.VerifiedEmail {
			return nil, ErrEmailTaken
		}
		existing.GoogleID = info.ID
		if existing.ProfilePicture == "" {
			existing.ProfilePicture = info.Picture
		}
		existing.UpdatedAt = now
		if err := s.users.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to link google account: %w", err)
		}
		slog.Info("google account linked", "user_id", existing.ID.Hex())
		return existing, nil
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	user := models.User{
		Email:          email,
		FirstName:      info.GivenName,
		LastName:       info.FamilyName,
		ProfilePicture: info.Picture,
		GoogleID:       info.ID,
		Provider:       models.ProviderGoogle,
		Role:           models.RoleUser,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if user.FirstName == "" {
		user.FirstName = info.Name
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create google user: %w", err)
	}
	s.userCreated(ctx, user.ID)
	return &user, nil
}

// IssueToken signs an HS256 token carrying sub, userId and email.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":    user.ID.Hex(),
		"userId": user.ID.Hex(),
		"email":  user.Email,
		"iat":    now.Unix(),
		"exp":    now.Add(s.cfg.JWTExpiresIn).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// NewOAuthState returns a short-lived signed nonce for the OAuth round trip.
func (s *AuthService) NewOAuthState() (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"nonce":   uuid.NewString(),
		"purpose": statePurpose,
		"iat":     now.Unix(),
		"exp":     now.Add(stateTTL).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.StateSecret()))
	if err != nil {
		return "", fmt.Errorf("failed to sign oauth state: %w", err)
	}
	return signed, nil
}

// VerifyOAuthState checks that state matches the cookie copy and carries a
// valid signature.
func (s *AuthService) VerifyOAuthState(state, cookie string) error {
	if state == "" || state != cookie {
		return ErrInvalidState
	}
	token, err := jwt.Parse(state, func(*jwt.Token) (any, error) {
		return []byte(s.cfg.StateSecret()), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return ErrInvalidState
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["purpose"] != statePurpose {
		return ErrInvalidState
	}
	return nil
}

func (s *AuthService) userCreated(ctx context.Context, userID primitive.ObjectID) {
	if s.onUserCreated == nil {
		return
	}
	if err := s.onUserCreated(ctx, userID); err != nil {
		slog.Warn("post-signup hook failed", "user_id", userID.Hex(), "error", err)
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
