package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestIssueWSTicket(t *testing.T) {
	t.Parallel()
	db := setupHandlerTestDB(t)
	s := newTestServer(t, db, newTestRedis(t))
	app := fiber.New()

	app.Post("/api/ws/ticket", func(c *fiber.Ctx) error {
		c.Locals("userID", uint(7))
		return s.IssueWSTicket(c)
	})

	resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/api/ws/ticket", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var out struct {
		Ticket    string `json:"ticket"`
		ExpiresIn int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Ticket == "" {
		t.Fatal("expected a ticket")
	}
	if out.ExpiresIn != int(wsTicketTTL.Seconds()) {
		t.Errorf("expected %d second ttl, got %d", int(wsTicketTTL.Seconds()), out.ExpiresIn)
	}

	stored, err := s.redis.Get(context.Background(), "ws_ticket:"+out.Ticket).Result()
	if err != nil {
		t.Fatalf("ticket not stored: %v", err)
	}
	if stored != "7" {
		t.Errorf("expected ticket bound to user 7, got %q", stored)
	}
}

func TestIssueWSTicket_NoTicketStore(t *testing.T) {
	t.Parallel()
	db := setupHandlerTestDB(t)
	s := newTestServer(t, db, nil)
	app := fiber.New()

	app.Post("/api/ws/ticket", func(c *fiber.Ctx) error {
		c.Locals("userID", uint(7))
		return s.IssueWSTicket(c)
	})

	resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/api/ws/ticket", nil))
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", resp.StatusCode)
	}
}

func TestAuthRequired_TicketIsSingleUse(t *testing.T) {
	t.Parallel()
	db := setupHandlerTestDB(t)
	s := newTestServer(t, db, newTestRedis(t))
	app := fiber.New()

	app.Get("/protected", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"userID": c.Locals("userID")})
	})

	if err := s.redis.Set(context.Background(), "ws_ticket:abc123", "7", time.Minute).Err(); err != nil {
		t.Fatalf("seed ticket: %v", err)
	}

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/protected?ticket=abc123", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first use: expected 200, got %d", resp.StatusCode)
	}
	var out struct {
		UserID uint `json:"userID"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.UserID != 7 {
		t.Errorf("expected user 7, got %d", out.UserID)
	}

	// Second use is spent; without a JWT fallback the request is rejected.
	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/protected?ticket=abc123", nil))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("second use: expected 401, got %d", resp.StatusCode)
	}
}

func signTestJWT(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestAuthRequired_JWT(t *testing.T) {
	t.Parallel()
	db := setupHandlerTestDB(t)
	s := newTestServer(t, db, nil)
	app := fiber.New()

	app.Get("/protected", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	validClaims := func() jwt.MapClaims {
		return jwt.MapClaims{
			"iss": jwtIssuer,
			"aud": jwtAudience,
			"sub": "7",
			"exp": time.Now().Add(time.Hour).Unix(),
		}
	}

	request := func(token string) *http.Response {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, _ := app.Test(req)
		return resp
	}

	t.Run("valid token", func(t *testing.T) {
		resp := request(signTestJWT(t, s.config.JWTSecret, validClaims()))
		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200, got %d", resp.StatusCode)
		}
	})

	t.Run("no token", func(t *testing.T) {
		resp := request("")
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", resp.StatusCode)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		resp := request(signTestJWT(t, "some-other-secret", validClaims()))
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", resp.StatusCode)
		}
	})

	t.Run("wrong issuer", func(t *testing.T) {
		claims := validClaims()
		claims["iss"] = "someone-else"
		resp := request(signTestJWT(t, s.config.JWTSecret, claims))
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", resp.StatusCode)
		}
	})

	t.Run("wrong audience", func(t *testing.T) {
		claims := validClaims()
		claims["aud"] = "other-client"
		resp := request(signTestJWT(t, s.config.JWTSecret, claims))
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", resp.StatusCode)
		}
	})

	t.Run("expired", func(t *testing.T) {
		claims := validClaims()
		claims["exp"] = time.Now().Add(-time.Hour).Unix()
		resp := request(signTestJWT(t, s.config.JWTSecret, claims))
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", resp.StatusCode)
		}
	})

	t.Run("revoked jti", func(t *testing.T) {
		dbR := setupHandlerTestDB(t)
		sr := newTestServer(t, dbR, newTestRedis(t))
		appR := fiber.New()
		appR.Get("/protected", sr.AuthRequired(), func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})

		claims := validClaims()
		claims["jti"] = "revoked-token-id"
		if err := sr.redis.Set(context.Background(), "blacklist:revoked-token-id", "1", time.Hour).Err(); err != nil {
			t.Fatalf("seed blacklist: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signTestJWT(t, sr.config.JWTSecret, claims))
		resp, _ := appR.Test(req)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", resp.StatusCode)
		}
	})
}
