package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Context keys
type contextKey string

const tenantContextKey contextKey = "tenant_id"

// tenantHeader is the plain header accepted when no signing secret is
// configured (dev mode).
const tenantHeader = "X-Tenant-ID"

// TenantMiddleware resolves the tenant identifier the gateway attached to the
// request. With a secret configured it verifies an HS256 token carrying a
// tenant_id claim; the core trusts the gateway for everything else.
type TenantMiddleware struct {
	secret []byte
}

// NewTenantMiddleware creates a new TenantMiddleware
func NewTenantMiddleware(secret string) *TenantMiddleware {
	var key []byte
	if secret != "" {
		key = []byte(secret)
	}
	return &TenantMiddleware{secret: key}
}

// Resolve extracts and validates the tenant, then stores it on the request
// context. A request without a resolvable tenant is rejected before it
// reaches the pipeline.
func (m *TenantMiddleware) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := m.tenantFrom(r)
		if err != nil || tenantID == "" {
			writeError(w, http.StatusUnauthorized, "missing or invalid tenant")
			return
		}

		ctx := context.WithValue(r.Context(), tenantContextKey, tenantID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *TenantMiddleware) tenantFrom(r *http.Request) (string, error) {
	if m.secret == nil {
		return strings.TrimSpace(r.Header.Get(tenantHeader)), nil
	}

	token := extractBearerToken(r)
	if token == "" {
		return "", jwt.ErrTokenMalformed
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !parsed.Valid {
		return "", jwt.ErrTokenUnverifiable
	}

	tenantID, _ := claims["tenant_id"].(string)
	return tenantID, nil
}

// GetTenantID retrieves the tenant from the request context
func GetTenantID(ctx context.Context) string {
	tenantID, _ := ctx.Value(tenantContextKey).(string)
	return tenantID
}

// extractBearerToken pulls the token from the Authorization header
func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
