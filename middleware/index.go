package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"seatmap_manager/helper"
	"seatmap_manager/utils"
)

func bearer(c *fiber.Ctx) string {
	token := c.Cookies("access_token")
	if token == "" {
		auth := c.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			token = strings.TrimPrefix(auth, "Bearer ")
		}
	}
	return token
}

func parse(token string) (*jwt.Token, error) {
	return jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return helper.JwtSecret(), nil
	})
}

// Protected chặn route chỉnh sửa sơ đồ khi không có token hợp lệ.
func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearer(c)
		if token == "" {
			return utils.ErrorResponse(c, 401, "Missing token", errors.New("no token"))
		}

		jwtToken, err := parse(token)
		if err != nil || !jwtToken.Valid {
			return utils.ErrorResponse(c, 401, "Invalid token", err)
		}

		c.Locals("user", jwtToken)
		return c.Next()
	}
}

// OptionalJWT cho phép khách xem sơ đồ và giữ ghế; có token hợp lệ thì gắn vào Locals.
func OptionalJWT() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearer(c)
		if token == "" {
			c.Locals("user", nil)
			return c.Next()
		}

		jwtToken, err := parse(token)
		if err != nil || !jwtToken.Valid {
			c.Locals("user", nil)
			return c.Next()
		}

		c.Locals("user", jwtToken)
		return c.Next()
	}
}
