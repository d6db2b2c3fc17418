package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/shipsy/shipsy-api/internal/core/domain"
	"github.com/shipsy/shipsy-api/internal/core/ports"
)

// stubAuthService returns canned values and records what it was called with.
type stubAuthService struct {
	user *domain.User
	pair *ports.TokenPair
	err  error

	loggedOut  []string
	registered *ports.RegisterInput
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	s.registered = &input
	return s.user, s.err
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.TokenPair, *domain.User, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	return s.pair, s.user, nil
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.pair, nil
}

func (s *stubAuthService) Logout(ctx context.Context, refreshToken string) error {
	s.loggedOut = append(s.loggedOut, refreshToken)
	return nil
}

func (s *stubAuthService) Me(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubAuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, input ports.UpdateProfileInput) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubAuthService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	return s.err
}

// fixedIssuer only supplies the TTLs the handler needs for cookie lifetimes.
type fixedIssuer struct{}

func (fixedIssuer) IssuePair(uuid.UUID, string) (*ports.TokenPair, error) { return nil, nil }
func (fixedIssuer) AccessTTL() time.Duration                              { return 15 * time.Minute }
func (fixedIssuer) RefreshTTL() time.Duration                             { return 7 * 24 * time.Hour }

func (fixedIssuer) VerifyAccess(string) (*ports.AccessClaims, error) {
	return nil, domain.ErrInvalidToken
}

func (fixedIssuer) VerifyRefresh(string) (*ports.RefreshClaims, error) {
	return nil, domain.ErrInvalidToken
}

func (fixedIssuer) Decode(string) (*ports.AccessClaims, time.Time, error) {
	return nil, time.Time{}, domain.ErrInvalidToken
}

func testUser() *domain.User {
	return &domain.User{
		ID:           uuid.New(),
		Email:        "ana@example.com",
		Name:         "Ana",
		PasswordHash: "$2a$12$secret",
	}
}

func testPair() *ports.TokenPair {
	return &ports.TokenPair{
		AccessToken:    "access-jwt",
		RefreshToken:   "refresh-jwt",
		ExpiresIn:      900,
		RefreshTokenID: "jti-1",
	}
}

func newAuthContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func cookieByName(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	res := rec.Result()
	for _, ck := range res.Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func TestRegisterReturnsCreatedWithoutHash(t *testing.T) {
	service := &stubAuthService{user: testUser()}
	h := NewAuthHandler(service, fixedIssuer{}, false)

	c, rec := newAuthContext(t, http.MethodPost, "/api/auth/register",
		`{"email":"ana@example.com","password":"secretpass","name":"Ana"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if !env.Success {
		t.Fatal("expected success envelope")
	}
	if strings.Contains(rec.Body.String(), "secret") {
		t.Fatal("response leaked the password hash")
	}
	if service.registered.Email != "ana@example.com" {
		t.Fatalf("service received %+v", service.registered)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{user: testUser()}, fixedIssuer{}, false)

	c, _ := newAuthContext(t, http.MethodPost, "/api/auth/register",
		`{"email":"ana@example.com","password":"short","name":"Ana"}`)
	err := h.Register(c)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("err = %T (%v), want *ValidationError", err, err)
	}
	if len(vErr.Fields) != 1 || vErr.Fields[0].Field != "password" {
		t.Fatalf("fields = %+v", vErr.Fields)
	}
}

func TestLoginSetsAuthCookies(t *testing.T) {
	service := &stubAuthService{user: testUser(), pair: testPair()}
	h := NewAuthHandler(service, fixedIssuer{}, false)

	c, rec := newAuthContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"ana@example.com","password":"secretpass"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}

	access := cookieByName(rec, AccessTokenCookie)
	if access == nil || access.Value != "access-jwt" {
		t.Fatalf("access cookie = %+v", access)
	}
	if !access.HttpOnly || access.Path != "/" {
		t.Fatalf("access cookie attributes wrong: %+v", access)
	}

	refresh := cookieByName(rec, RefreshTokenCookie)
	if refresh == nil || refresh.Value != "refresh-jwt" {
		t.Fatalf("refresh cookie = %+v", refresh)
	}
	if refresh.Path != refreshCookiePath {
		t.Fatalf("refresh cookie path = %q, want %q", refresh.Path, refreshCookiePath)
	}

	env := decodeEnvelope(t, rec)
	data, _ := json.Marshal(env.Data)
	var session sessionResponse
	_ = json.Unmarshal(data, &session)
	if session.AccessToken != "access-jwt" || session.ExpiresIn != 900 {
		t.Fatalf("session = %+v", session)
	}
}

func TestLoginFailurePropagatesError(t *testing.T) {
	service := &stubAuthService{err: domain.ErrInvalidCredentials}
	h := NewAuthHandler(service, fixedIssuer{}, false)

	c, rec := newAuthContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"ana@example.com","password":"wrongpass"}`)
	err := h.Login(c)
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if cookieByName(rec, AccessTokenCookie) != nil {
		t.Fatal("no cookies should be set on failed login")
	}
}

func TestRefreshRequiresCookie(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{pair: testPair()}, fixedIssuer{}, false)

	c, _ := newAuthContext(t, http.MethodPost, "/api/auth/refresh", "")
	err := h.Refresh(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("err = %v, want 401", err)
	}
}

func TestRefreshRotatesCookies(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{pair: testPair()}, fixedIssuer{}, false)

	c, rec := newAuthContext(t, http.MethodPost, "/api/auth/refresh", "")
	c.Request().AddCookie(&http.Cookie{Name: RefreshTokenCookie, Value: "old-refresh"})

	if err := h.Refresh(c); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	refresh := cookieByName(rec, RefreshTokenCookie)
	if refresh == nil || refresh.Value != "refresh-jwt" {
		t.Fatalf("refresh cookie not rotated: %+v", refresh)
	}
}

func TestRefreshFailureClearsCookies(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{err: domain.ErrInvalidToken}, fixedIssuer{}, false)

	c, rec := newAuthContext(t, http.MethodPost, "/api/auth/refresh", "")
	c.Request().AddCookie(&http.Cookie{Name: RefreshTokenCookie, Value: "replayed"})

	if err := h.Refresh(c); err != domain.ErrInvalidToken {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
	access := cookieByName(rec, AccessTokenCookie)
	if access == nil || access.MaxAge >= 0 {
		t.Fatalf("access cookie should be expired, got %+v", access)
	}
}

func TestLogoutAlwaysSucceeds(t *testing.T) {
	service := &stubAuthService{}
	h := NewAuthHandler(service, fixedIssuer{}, false)

	c, rec := newAuthContext(t, http.MethodPost, "/api/auth/logout", "")
	c.Request().AddCookie(&http.Cookie{Name: RefreshTokenCookie, Value: "some-refresh"})

	if err := h.Logout(c); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(service.loggedOut) != 1 || service.loggedOut[0] != "some-refresh" {
		t.Fatalf("revocations = %v", service.loggedOut)
	}

	// Without a cookie the endpoint still answers 200.
	c2, rec2 := newAuthContext(t, http.MethodPost, "/api/auth/logout", "")
	if err := h.Logout(c2); err != nil {
		t.Fatalf("logout without cookie: %v", err)
	}
	if rec2.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec2.Code)
	}
}

func TestMeRequiresClaims(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{user: testUser()}, fixedIssuer{}, false)

	c, _ := newAuthContext(t, http.MethodGet, "/api/auth/me", "")
	err := h.Me(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("err = %v, want 401 without middleware claims", err)
	}

	c2, rec2 := newAuthContext(t, http.MethodGet, "/api/auth/me", "")
	c2.Set("user_id", uuid.New())
	if err := h.Me(c2); err != nil {
		t.Fatalf("me: %v", err)
	}
	if rec2.Code != http.StatusOK {
		t.Fatalf("status = %d", rec2.Code)
	}
}
