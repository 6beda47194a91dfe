package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func validClaims() Claims {
	return Claims{
		Role: "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Audience:  jwt.ClaimStrings{"authenticated"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

// sessionProbe records the session seen by the wrapped handler.
type sessionProbe struct {
	session Session
	ok      bool
	called  bool
}

func (p *sessionProbe) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.called = true
		p.session, p.ok = SessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func serveWithSession(t *testing.T, v *SessionVerifier, path, authHeader string) (*httptest.ResponseRecorder, *sessionProbe) {
	t.Helper()
	probe := &sessionProbe{}
	handler := SessionMiddleware(v)(probe.handler())

	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr, probe
}

func TestSessionMiddleware_Disabled_PassThrough(t *testing.T) {
	rr, probe := serveWithSession(t, NewSessionVerifier("", "authenticated"), "/api/v1/search", "Bearer garbage")

	if rr.Code != http.StatusOK {
		t.Errorf("got %d, want %d", rr.Code, http.StatusOK)
	}
	if probe.ok {
		t.Error("disabled verifier must not produce a session")
	}
}

func TestSessionMiddleware_NoHeader_Anonymous(t *testing.T) {
	rr, probe := serveWithSession(t, NewSessionVerifier(testSecret, "authenticated"), "/api/v1/search", "")

	if rr.Code != http.StatusOK {
		t.Errorf("got %d, want %d", rr.Code, http.StatusOK)
	}
	if !probe.called || probe.ok {
		t.Errorf("expected anonymous pass-through, got %+v", probe)
	}
}

func TestSessionMiddleware_ValidToken(t *testing.T) {
	tok := signToken(t, testSecret, validClaims())
	rr, probe := serveWithSession(t, NewSessionVerifier(testSecret, "authenticated"), "/api/v1/search", "Bearer "+tok)

	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusOK)
	}
	if !probe.ok || probe.session.UserID != "user-1" || probe.session.Role != "authenticated" {
		t.Errorf("unexpected session: %+v", probe.session)
	}
}

func TestSessionMiddleware_Rejections(t *testing.T) {
	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	wrongAud := validClaims()
	wrongAud.Audience = jwt.ClaimStrings{"anon"}

	noSub := validClaims()
	noSub.Subject = ""

	noExp := validClaims()
	noExp.ExpiresAt = nil

	tests := []struct {
		name   string
		header string
	}{
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"garbage", "Bearer not-a-jwt"},
		{"wrong secret", "Bearer " + signToken(t, "another-secret", validClaims())},
		{"expired", "Bearer " + signToken(t, testSecret, expired)},
		{"wrong audience", "Bearer " + signToken(t, testSecret, wrongAud)},
		{"no subject", "Bearer " + signToken(t, testSecret, noSub)},
		{"no expiry", "Bearer " + signToken(t, testSecret, noExp)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr, probe := serveWithSession(t, NewSessionVerifier(testSecret, "authenticated"), "/api/v1/search", tc.header)

			if rr.Code != http.StatusUnauthorized {
				t.Errorf("got %d, want %d", rr.Code, http.StatusUnauthorized)
			}
			if probe.called {
				t.Error("handler must not run for a rejected token")
			}
			var errResp errorResponse
			if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
				t.Fatalf("decode error response: %v", err)
			}
			if errResp.Code != codeUnauthorized {
				t.Errorf("code = %q", errResp.Code)
			}
		})
	}
}

func TestSessionMiddleware_RejectsNoneAlgorithm(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, validClaims()).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	rr, _ := serveWithSession(t, NewSessionVerifier(testSecret, "authenticated"), "/api/v1/search", "Bearer "+tok)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("got %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestSessionMiddleware_ExemptPaths(t *testing.T) {
	for _, path := range []string{"/health", "/metrics"} {
		rr, _ := serveWithSession(t, NewSessionVerifier(testSecret, "authenticated"), path, "Bearer invalid")
		if rr.Code != http.StatusOK {
			t.Errorf("%s: got %d, want %d", path, rr.Code, http.StatusOK)
		}
	}
}
