// Package visitor identifies anonymous browsers with a signed cookie.
//
// The cookie holds an HS256 JWT whose subject is the visitor id. Requests
// without a valid token are assigned a fresh id and a new cookie.
package visitor

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/httpx"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/requestmeta"
)

const (
	// CookieName is the visitor cookie.
	CookieName = "galaxy_visitor"
	// TTL is how long a visitor token stays valid.
	TTL = 365 * 24 * time.Hour

	issuer = "cozy.galaxy"
)

type contextKey struct{}

// Issuer signs and verifies visitor tokens.
type Issuer struct {
	key   []byte
	now   func() time.Time
	newID func() string
}

// NewIssuer builds an issuer. An empty key selects a random per-process key,
// so visitors are forgotten on restart.
func NewIssuer(key string) (*Issuer, error) {
	secret := []byte(strings.TrimSpace(key))
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generate visitor key: %w", err)
		}
	}
	if len(secret) < 16 {
		return nil, errors.New("visitor key must be at least 16 bytes")
	}
	return &Issuer{key: secret, now: time.Now, newID: uuid.NewString}, nil
}

// Sign returns a token for visitorID.
func (i *Issuer) Sign(visitorID string) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   visitorID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
	})
	signed, err := token.SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("sign visitor token: %w", err)
	}
	return signed, nil
}

// Verify returns the visitor id carried by a valid token.
func (i *Issuer) Verify(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return i.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return "", fmt.Errorf("verify visitor token: %w", err)
	}
	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return "", errors.New("visitor token has no subject")
	}
	return subject, nil
}

// Middleware resolves the visitor for every request, minting one when the
// cookie is missing or invalid.
func (i *Issuer) Middleware() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id, ok := i.fromCookie(r); ok {
				next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
				return
			}
			id := i.newID()
			token, err := i.Sign(id)
			if err == nil {
				http.SetCookie(w, &http.Cookie{
					Name:     CookieName,
					Value:    token,
					Path:     "/",
					MaxAge:   int(TTL / time.Second),
					HttpOnly: true,
					Secure:   requestmeta.IsHTTPS(r),
					SameSite: http.SameSiteLaxMode,
				})
			}
			next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
		})
	}
}

func (i *Issuer) fromCookie(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || strings.TrimSpace(cookie.Value) == "" {
		return "", false
	}
	id, err := i.Verify(strings.TrimSpace(cookie.Value))
	if err != nil {
		return "", false
	}
	return id, true
}

// HasCookie reports whether r carries a visitor cookie, valid or not.
func HasCookie(r *http.Request) bool {
	if r == nil {
		return false
	}
	cookie, err := r.Cookie(CookieName)
	return err == nil && strings.TrimSpace(cookie.Value) != ""
}

// WithID stores a visitor id on ctx.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the visitor id stored on ctx.
func FromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(contextKey{}).(string)
	return id, ok && id != ""
}

// ID returns the request's visitor id, or "".
func ID(r *http.Request) string {
	if r == nil {
		return ""
	}
	id, _ := FromContext(r.Context())
	return id
}
