package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func resolveTenant(t *testing.T, m *TenantMiddleware, headers map[string]string) (int, string) {
	t.Helper()

	var got string
	handler := m.Resolve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetTenantID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec.Code, got
}

func signTenantToken(t *testing.T, secret, tenantID string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"tenant_id": tenantID,
		"exp":       time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestTenantMiddleware_HeaderMode(t *testing.T) {
	m := NewTenantMiddleware("")

	code, tenant := resolveTenant(t, m, map[string]string{"X-Tenant-ID": "t-1"})
	if code != http.StatusOK {
		t.Fatalf("code = %d, want 200", code)
	}
	if tenant != "t-1" {
		t.Errorf("tenant = %q, want t-1", tenant)
	}
}

func TestTenantMiddleware_HeaderMode_MissingHeader(t *testing.T) {
	m := NewTenantMiddleware("")

	code, _ := resolveTenant(t, m, nil)
	if code != http.StatusUnauthorized {
		t.Errorf("code = %d, want 401", code)
	}
}

func TestTenantMiddleware_JWTMode(t *testing.T) {
	m := NewTenantMiddleware("secret")
	token := signTenantToken(t, "secret", "t-42")

	code, tenant := resolveTenant(t, m, map[string]string{"Authorization": "Bearer " + token})
	if code != http.StatusOK {
		t.Fatalf("code = %d, want 200", code)
	}
	if tenant != "t-42" {
		t.Errorf("tenant = %q, want t-42", tenant)
	}
}

func TestTenantMiddleware_JWTMode_IgnoresPlainHeader(t *testing.T) {
	m := NewTenantMiddleware("secret")

	code, _ := resolveTenant(t, m, map[string]string{"X-Tenant-ID": "t-1"})
	if code != http.StatusUnauthorized {
		t.Errorf("code = %d, want 401 when a secret is configured", code)
	}
}

func TestTenantMiddleware_JWTMode_WrongSecret(t *testing.T) {
	m := NewTenantMiddleware("secret")
	token := signTenantToken(t, "other-secret", "t-42")

	code, _ := resolveTenant(t, m, map[string]string{"Authorization": "Bearer " + token})
	if code != http.StatusUnauthorized {
		t.Errorf("code = %d, want 401 for a bad signature", code)
	}
}

func TestTenantMiddleware_JWTMode_ExpiredToken(t *testing.T) {
	m := NewTenantMiddleware("secret")
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"tenant_id": "t-42",
		"exp":       time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	code, _ := resolveTenant(t, m, map[string]string{"Authorization": "Bearer " + signed})
	if code != http.StatusUnauthorized {
		t.Errorf("code = %d, want 401 for an expired token", code)
	}
}

func TestTenantMiddleware_JWTMode_MissingClaim(t *testing.T) {
	m := NewTenantMiddleware("secret")
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	code, _ := resolveTenant(t, m, map[string]string{"Authorization": "Bearer " + signed})
	if code != http.StatusUnauthorized {
		t.Errorf("code = %d, want 401 without a tenant_id claim", code)
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"Basic abc", ""},
		{"abc", ""},
		{"", ""},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			r.Header.Set("Authorization", tt.header)
		}
		if got := extractBearerToken(r); got != tt.want {
			t.Errorf("extractBearerToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
