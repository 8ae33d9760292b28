package services

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/SAP-F-2025/school-portal-service/internal/models"
	"github.com/SAP-F-2025/school-portal-service/internal/validator"
)

func newAuthService(repo *mockRepository) AuthService {
	return NewAuthService(repo, testLogger(), validator.New(), "test-secret", time.Hour)
}

func seedAccount(repo *mockRepository, username, password string, status models.UserStatus) *models.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &models.User{
		ID:           repo.id(),
		Username:     username,
		PasswordHash: string(hash),
		FullName:     "Test User",
		Role:         models.RoleTeacher,
		Status:       status,
	}
	repo.users[user.ID] = user
	return user
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials issue verifiable token", func(t *testing.T) {
		repo := newMockRepository()
		user := seedAccount(repo, "gv001", "password123", models.UserActive)
		svc := newAuthService(repo)

		resp, err := svc.Login(ctx, &LoginRequest{Username: "gv001", Password: "password123"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Token == "" {
			t.Fatal("expected a token")
		}
		if resp.ExpiresAt.Before(time.Now()) {
			t.Error("token should not be pre-expired")
		}

		principal, err := svc.VerifyToken(resp.Token)
		if err != nil {
			t.Fatalf("token should verify: %v", err)
		}
		if principal.UserID != user.ID || principal.Role != models.RoleTeacher {
			t.Errorf("unexpected principal: %+v", principal)
		}

		claims := &jwt.RegisteredClaims{}
		if _, err := jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		}); err != nil {
			t.Fatalf("failed to parse token claims: %v", err)
		}
		if claims.Subject != strconv.FormatUint(uint64(user.ID), 10) {
			t.Errorf("token subject should be the user id, got %q", claims.Subject)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := newMockRepository()
		seedAccount(repo, "gv001", "password123", models.UserActive)
		svc := newAuthService(repo)

		_, err := svc.Login(ctx, &LoginRequest{Username: "gv001", Password: "wrong-pass"})
		if !errors.Is(err, ErrUnauthorized) {
			t.Errorf("expected ErrUnauthorized, got: %v", err)
		}
	})

	t.Run("unknown username reports same error as bad password", func(t *testing.T) {
		repo := newMockRepository()
		seedAccount(repo, "gv001", "password123", models.UserActive)
		svc := newAuthService(repo)

		_, badUser := svc.Login(ctx, &LoginRequest{Username: "nobody", Password: "password123"})
		_, badPass := svc.Login(ctx, &LoginRequest{Username: "gv001", Password: "wrong-pass"})
		if !errors.Is(badUser, ErrInvalidCredentials) || !errors.Is(badPass, ErrInvalidCredentials) {
			t.Error("both failures should collapse to ErrInvalidCredentials")
		}
	})

	t.Run("locked account", func(t *testing.T) {
		repo := newMockRepository()
		seedAccount(repo, "gv001", "password123", models.UserLocked)
		svc := newAuthService(repo)

		_, err := svc.Login(ctx, &LoginRequest{Username: "gv001", Password: "password123"})
		if !errors.Is(err, ErrAccountLocked) {
			t.Errorf("expected ErrAccountLocked, got: %v", err)
		}
	})
}

func TestAuthService_VerifyToken(t *testing.T) {
	repo := newMockRepository()
	svc := newAuthService(repo)

	t.Run("garbage token", func(t *testing.T) {
		if _, err := svc.VerifyToken("not.a.token"); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("expected ErrUnauthorized, got: %v", err)
		}
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		ctx := context.Background()
		otherRepo := newMockRepository()
		seedAccount(otherRepo, "gv001", "password123", models.UserActive)
		other := NewAuthService(otherRepo, testLogger(), validator.New(), "different-secret", time.Hour)

		resp, err := other.Login(ctx, &LoginRequest{Username: "gv001", Password: "password123"})
		if err != nil {
			t.Fatalf("setup login failed: %v", err)
		}
		if _, err := svc.VerifyToken(resp.Token); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("expected ErrUnauthorized, got: %v", err)
		}
	})
}
