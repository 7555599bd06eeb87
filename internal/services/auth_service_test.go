package services

import (
	"context"
	"testing"
	"time"

	"github.com/fernandoludvig/finance-api/internal/dto"
	"github.com/fernandoludvig/finance-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validRegistration() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		FirstName:     "Ana",
		LastName:      "Souza",
		Email:         "Ana@Example.com",
		Password:      "secret1",
		FavoriteColor: "blue",
		Birthday:      "1990-04-12",
	}
}

func parseClaims(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) { return []byte(testSecret), nil })
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

func TestRegister_IssuesTokenForNewUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.auth.Register(ctx, validRegistration())
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	claims := parseClaims(t, resp.Token)
	assert.Equal(t, resp.UserID, claims["userId"])
	assert.Equal(t, resp.UserID, claims["sub"])
	assert.Equal(t, "ana@example.com", claims["email"])

	id, err := primitive.ObjectIDFromHex(resp.UserID)
	require.NoError(t, err)
	user, err := f.auth.Profile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.ProviderLocal, user.Provider)
	assert.NotEqual(t, "secret1", user.PasswordHash)
}

func TestRegister_TokenExpiresAfterConfiguredLifetime(t *testing.T) {
	f := newFixture(t)
	issued := time.Now().Truncate(time.Second)
	f.auth.now = fixedClock(issued)

	resp, err := f.auth.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	claims := parseClaims(t, resp.Token)
	assert.Equal(t, float64(issued.Add(time.Hour).Unix()), claims["exp"])
	assert.Equal(t, float64(issued.Unix()), claims["iat"])
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, validRegistration())
	require.NoError(t, err)

	_, err = f.auth.Register(ctx, validRegistration())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.RegisterRequest)
		want   string
	}{
		{"missing first name", func(r *dto.RegisterRequest) { r.FirstName = " " }, "firstName is required"},
		{"missing favorite color", func(r *dto.RegisterRequest) { r.FavoriteColor = "" }, "favoriteColor is required"},
		{"bad email", func(r *dto.RegisterRequest) { r.Email = "ana@example" }, "Invalid email format"},
		{"short password", func(r *dto.RegisterRequest) { r.Password = "12345" }, "at least 6"},
		{"birthday format", func(r *dto.RegisterRequest) { r.Birthday = "12/04/1990" }, "YYYY-MM-DD"},
		{"impossible birthday", func(r *dto.RegisterRequest) { r.Birthday = "2023-02-30" }, "not a valid date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := validRegistration()
			tt.mutate(req)

			_, err := f.auth.Register(context.Background(), req)
			require.Error(t, err)
			assert.True(t, IsValidation(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRegister_RunsUserCreatedHook(t *testing.T) {
	f := newFixture(t)
	f.auth.OnUserCreated(f.categories.SeedDefaults)
	ctx := context.Background()

	resp, err := f.auth.Register(ctx, validRegistration())
	require.NoError(t, err)

	id, _ := primitive.ObjectIDFromHex(resp.UserID)
	categories, err := f.categories.List(ctx, models.CategoryFilter{UserID: id})
	require.NoError(t, err)
	assert.Len(t, categories, len(defaultCategories))
	for _, c := range categories {
		assert.True(t, c.IsDefault)
	}
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.auth.Register(ctx, validRegistration())
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		resp, err := f.auth.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "secret1"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		require.NotNil(t, resp.User)
		assert.Equal(t, "Ana", resp.User.FirstName)
	})

	t.Run("unknown email and wrong password look the same", func(t *testing.T) {
		_, errUnknown := f.auth.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
		_, errWrong := f.auth.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "wrong-pass"})
		assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
		assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
		assert.Equal(t, errUnknown.Error(), errWrong.Error())
	})

	t.Run("malformed email is a validation error", func(t *testing.T) {
		_, err := f.auth.Login(ctx, &dto.LoginRequest{Email: "not-an-email", Password: "x"})
		assert.True(t, IsValidation(err))
	})
}

func TestLogin_OAuthOnlyAccountHasNoPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.SignInWithGoogle(ctx, &GoogleUser{ID: "g-1", Email: "g@example.com", GivenName: "Gil"})
	require.NoError(t, err)

	_, err = f.auth.Login(ctx, &dto.LoginRequest{Email: "g@example.com", Password: "anything"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignInWithGoogle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	registered, err := f.auth.Register(ctx, validRegistration())
	require.NoError(t, err)

	t.Run("links an existing account by email", func(t *testing.T) {
		resp, err := f.auth.SignInWithGoogle(ctx, &GoogleUser{ID: "google-42", Email: "ANA@example.com", VerifiedEmail: true, Picture: "https://img"})
		require.NoError(t, err)
		assert.Equal(t, registered.UserID, resp.UserID)
		assert.Equal(t, "google-42", resp.User.GoogleID)
		assert.Equal(t, "https://img", resp.User.ProfilePicture)
	})

	t.Run("finds the linked account by google id", func(t *testing.T) {
		resp, err := f.auth.SignInWithGoogle(ctx, &GoogleUser{ID: "google-42", Email: "changed@example.com"})
		require.NoError(t, err)
		assert.Equal(t, registered.UserID, resp.UserID)
	})

	t.Run("creates a new account", func(t *testing.T) {
		resp, err := f.auth.SignInWithGoogle(ctx, &GoogleUser{ID: "google-7", Email: "new@example.com", GivenName: "Nia", FamilyName: "Lee"})
		require.NoError(t, err)
		assert.NotEqual(t, registered.UserID, resp.UserID)
		assert.Equal(t, models.ProviderGoogle, resp.User.Provider)
		assert.Equal(t, "Nia", resp.User.FirstName)
	})

	t.Run("rejects a profile without email", func(t *testing.T) {
		_, err := f.auth.SignInWithGoogle(ctx, &GoogleUser{ID: "google-8"})
		require.Error(t, err)
		assert.True(t, IsValidation(err))

		_, err = f.auth.SignInWithGoogle(ctx, &GoogleUser{ID: "google-9"})
		assert.True(t, IsValidation(err), "a second email-less profile gets the same answer")
	})

	t.Run("rejects a profile without id", func(t *testing.T) {
		_, err := f.auth.SignInWithGoogle(ctx, &GoogleUser{Email: "x@example.com"})
		assert.Error(t, err)
	})
}

func TestSignInWithGoogle_UnverifiedEmailDoesNotLink(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	registered, err := f.auth.Register(ctx, validRegistration())
	require.NoError(t, err)

	resp, err := f.auth.SignInWithGoogle(ctx, &GoogleUser{ID: "other-1", Email: "ana@example.com", VerifiedEmail: false})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Nil(t, resp)

	id, _ := primitive.ObjectIDFromHex(registered.UserID)
	user, err := f.auth.Profile(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, user.GoogleID, "the local account stays unlinked")
}

func TestOAuthState(t *testing.T) {
	f := newFixture(t)

	state, err := f.auth.NewOAuthState()
	require.NoError(t, err)

	assert.NoError(t, f.auth.VerifyOAuthState(state, state))
	assert.ErrorIs(t, f.auth.VerifyOAuthState(state, ""), ErrInvalidState)
	assert.ErrorIs(t, f.auth.VerifyOAuthState("", ""), ErrInvalidState)

	session, err := f.auth.IssueToken(&models.User{ID: primitive.NewObjectID()})
	require.NoError(t, err)
	assert.ErrorIs(t, f.auth.VerifyOAuthState(session, session), ErrInvalidState, "a session token is not a state token")

	f.auth.now = fixedClock(time.Now().Add(-time.Hour))
	stale, err := f.auth.NewOAuthState()
	require.NoError(t, err)
	f.auth.now = time.Now
	assert.ErrorIs(t, f.auth.VerifyOAuthState(stale, stale), ErrInvalidState)
}

func TestTestToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.TestToken(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrUserNotFound)

	registered, err := f.auth.Register(ctx, validRegistration())
	require.NoError(t, err)
	id, _ := primitive.ObjectIDFromHex(registered.UserID)

	resp, err := f.auth.TestToken(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, parseClaims(t, resp.Token)["userId"])
}
