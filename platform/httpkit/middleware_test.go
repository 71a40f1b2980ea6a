package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type testJWTConfig struct {
	accessSecret string
}

func (c testJWTConfig) GetJWTAccessSecret() string { return c.accessSecret }

func signAccessToken(t *testing.T, secret, tokenType string, sub string, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  sub,
		"type": tokenType,
		"exp":  expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func newAuthTestRouter(cfg testJWTConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/protected", AuthRequired(cfg), func(c *gin.Context) {
		id := MustGetIdentity(c)
		if id == nil {
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": id.UserID().String()})
	})
	return engine
}

func TestAuthRequiredAcceptsValidToken(t *testing.T) {
	cfg := testJWTConfig{accessSecret: "test-secret"}
	engine := newAuthTestRouter(cfg)

	userID := uuid.New()
	token := signAccessToken(t, cfg.accessSecret, "access", userID.String(), time.Now().Add(time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}
}

func TestAuthRequiredRejects(t *testing.T) {
	cfg := testJWTConfig{accessSecret: "test-secret"}
	engine := newAuthTestRouter(cfg)
	userID := uuid.New().String()

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Token abc"},
		{"garbage token", "Bearer not-a-jwt"},
		{"wrong secret", "Bearer " + signAccessToken(t, "other-secret", "access", userID, time.Now().Add(time.Hour))},
		{"expired", "Bearer " + signAccessToken(t, cfg.accessSecret, "access", userID, time.Now().Add(-time.Hour))},
		{"refresh token type", "Bearer " + signAccessToken(t, cfg.accessSecret, "refresh", userID, time.Now().Add(time.Hour))},
		{"non-uuid subject", "Bearer " + signAccessToken(t, cfg.accessSecret, "access", "not-a-uuid", time.Now().Add(time.Hour))},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
			}
		})
	}
}
