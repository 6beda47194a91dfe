package chi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/bridgeyou/search/internal/logger"
)

// exemptPaths are routes that never look at the session (health, metrics).
var exemptPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// Claims are the Supabase session claims the search API reads.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Session identifies the caller of a request.
type Session struct {
	UserID string
	Role   string
}

type sessionKey struct{}

// SessionFromContext returns the verified session, if any.
func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}

// SessionVerifier validates Supabase access tokens signed with the project
// JWT secret (HS256).
type SessionVerifier struct {
	secret   []byte
	audience string
}

// NewSessionVerifier creates a verifier. An empty secret disables
// verification: every request is treated as anonymous.
func NewSessionVerifier(secret, audience string) *SessionVerifier {
	return &SessionVerifier{secret: []byte(secret), audience: audience}
}

// Enabled reports whether a secret is configured.
func (v *SessionVerifier) Enabled() bool { return len(v.secret) > 0 }

// Verify parses and validates a token.
func (v *SessionVerifier) Verify(token string) (Session, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Session{}, errors.New("session expired")
		}
		return Session{}, fmt.Errorf("invalid session token: %w", err)
	}
	if claims.Subject == "" {
		return Session{}, errors.New("session token has no subject")
	}

	return Session{UserID: claims.Subject, Role: claims.Role}, nil
}

// SessionMiddleware attaches the verified session to the request context.
// No Authorization header means anonymous; a header that fails
// verification is rejected with 401.
func SessionMiddleware(v *SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !v.Enabled() {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" {
				next.ServeHTTP(w, r)
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(auth, bearerPrefix) {
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "authorization header must use Bearer scheme")
				return
			}

			session, err := v.Verify(strings.TrimSpace(auth[len(bearerPrefix):]))
			if err != nil {
				logger.FromContext(r.Context()).Info("Rejected session token", zap.Error(err))
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey{}, session)
			ctx = logger.With(ctx, zap.String("user_id", session.UserID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
