package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/shipsy/shipsy-api/internal/core/domain"
	"github.com/shipsy/shipsy-api/internal/core/ports"
)

func newAuthService(users *stubUserRepo, store *stubTokenStore) *AuthService {
	tokens := NewTokenService("access-secret", "refresh-secret", 15*time.Minute, time.Hour)
	return NewAuthService(users, tokens, store, zerolog.Nop())
}

func TestAuthService_RegisterHashesPassword(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users, newStubTokenStore())

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "user@example.com",
		Password: "Passw0rd1",
		Name:     "Jane Owner",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if user.PasswordHash == "Passw0rd1" {
		t.Fatalf("password stored in plaintext")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Passw0rd1")) != nil {
		t.Fatalf("stored hash does not match the password")
	}

	// The JSON representation must never leak the hash.
	raw, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("marshal user: %v", err)
	}
	if strings.Contains(string(raw), user.PasswordHash) || strings.Contains(string(raw), "password") {
		t.Fatalf("serialized user leaks password material: %s", raw)
	}
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users, newStubTokenStore())

	input := ports.RegisterInput{Email: "user@example.com", Password: "Passw0rd1", Name: "Jane"}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_LoginSuccessAndUniformFailure(t *testing.T) {
	users := newStubUserRepo()
	store := newStubTokenStore()
	svc := newAuthService(users, store)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Email: "user@example.com", Password: "Passw0rd1", Name: "Jane",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	pair, user, err := svc.Login(context.Background(), "user@example.com", "Passw0rd1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected token pair, got %+v", pair)
	}
	if user.Email != "user@example.com" {
		t.Fatalf("unexpected user %+v", user)
	}
	if len(store.hashes) != 1 {
		t.Fatalf("expected refresh token registered in store, got %d entries", len(store.hashes))
	}

	// Wrong password and unknown email return the very same error.
	_, _, errWrongPass := svc.Login(context.Background(), "user@example.com", "nope")
	_, _, errNoUser := svc.Login(context.Background(), "ghost@example.com", "Passw0rd1")
	if !errors.Is(errWrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrongPass)
	}
	if !errors.Is(errNoUser, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", errNoUser)
	}
	if errWrongPass.Error() != errNoUser.Error() {
		t.Fatalf("failure messages differ: %q vs %q", errWrongPass, errNoUser)
	}
}

func TestAuthService_RefreshRotatesToken(t *testing.T) {
	users := newStubUserRepo()
	store := newStubTokenStore()
	svc := newAuthService(users, store)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Email: "user@example.com", Password: "Passw0rd1", Name: "Jane",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	pair, _, err := svc.Login(context.Background(), "user@example.com", "Passw0rd1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	next, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if next.RefreshToken == pair.RefreshToken {
		t.Fatalf("refresh token was not rotated")
	}

	// Replaying the rotated-out token must fail uniformly.
	if _, err := svc.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken on replay, got %v", err)
	}
	// The new token keeps working.
	if _, err := svc.Refresh(context.Background(), next.RefreshToken); err != nil {
		t.Fatalf("refresh with rotated token: %v", err)
	}
}

func TestAuthService_LogoutRevokesSession(t *testing.T) {
	users := newStubUserRepo()
	store := newStubTokenStore()
	svc := newAuthService(users, store)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Email: "user@example.com", Password: "Passw0rd1", Name: "Jane",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	pair, _, err := svc.Login(context.Background(), "user@example.com", "Passw0rd1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(context.Background(), pair.RefreshToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after logout, got %v", err)
	}

	// Logging out with garbage is not an error.
	if err := svc.Logout(context.Background(), "not-a-token"); err != nil {
		t.Fatalf("logout with invalid token: %v", err)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users, newStubTokenStore())

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email: "user@example.com", Password: "Passw0rd1", Name: "Jane",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.ChangePassword(context.Background(), user.ID, "wrong", "NewPass99"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong current password, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), user.ID, "Passw0rd1", "NewPass99"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "user@example.com", "NewPass99"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "user@example.com", "Passw0rd1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password still accepted: %v", err)
	}
}

func TestAuthService_UpdateProfile(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users, newStubTokenStore())

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email: "user@example.com", Password: "Passw0rd1", Name: "Jane", Phone: "+10000000000",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	name := "Jane Q. Owner"
	updated, err := svc.UpdateProfile(context.Background(), user.ID, ports.UpdateProfileInput{Name: &name})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Name != name {
		t.Fatalf("expected name %q, got %q", name, updated.Name)
	}
	if updated.Phone != "+10000000000" {
		t.Fatalf("omitted phone was modified: %q", updated.Phone)
	}
}
