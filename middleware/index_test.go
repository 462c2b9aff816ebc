package middleware

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"seatmap_manager/helper"
	"seatmap_manager/model"
)

func newApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", Protected(), func(c *fiber.Ctx) error {
		return c.SendString(helper.SeatHolder(c, ""))
	})
	app.Get("/optional", OptionalJWT(), func(c *fiber.Ctx) error {
		return c.SendString(helper.SeatHolder(c, "guest-abc"))
	})
	return app
}

func TestProtected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	valid, err := helper.GenerateAccessToken(model.TokenClaim{AccountId: 12, Username: "btc"}, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	expired, _ := helper.GenerateAccessToken(model.TokenClaim{AccountId: 12}, -time.Hour)

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{name: "missing", status: 401},
		{name: "garbage", header: "Bearer nope", status: 401},
		{name: "expired", header: "Bearer " + expired, status: 401},
		{name: "valid", header: "Bearer " + valid, status: 200, body: "USER_12"},
	}
	app := newApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if tt.body != "" {
				body, _ := io.ReadAll(resp.Body)
				if string(body) != tt.body {
					t.Errorf("body = %q, want %q", body, tt.body)
				}
			}
		})
	}
}

func TestOptionalJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/optional", nil))
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != 200 || string(body) != "guest-abc" {
		t.Errorf("guest: status %d body %q", resp.StatusCode, body)
	}

	req := httptest.NewRequest("GET", "/optional", nil)
	req.Header.Set("Authorization", "Bearer broken")
	resp, _ = app.Test(req)
	body, _ = io.ReadAll(resp.Body)
	if resp.StatusCode != 200 || string(body) != "guest-abc" {
		t.Errorf("bad token: status %d body %q", resp.StatusCode, body)
	}
}
