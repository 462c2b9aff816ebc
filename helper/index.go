package helper

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"seatmap_manager/config"
	"seatmap_manager/model"
)

func JwtSecret() []byte {
	return []byte(config.Config("JWT_SECRET"))
}

// GenerateAccessToken ký token HS256 cho tài khoản ban tổ chức.
func GenerateAccessToken(tokenClaim model.TokenClaim, ttl time.Duration) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = tokenClaim.Username
	claims["accountId"] = tokenClaim.AccountId
	claims["exp"] = time.Now().Add(ttl).Unix()

	return token.SignedString(JwtSecret())
}

// GetInfoAccountFromToken đọc claim do middleware đặt vào Locals("user").
func GetInfoAccountFromToken(c *fiber.Ctx) (model.TokenClaim, bool) {
	var claim model.TokenClaim
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return claim, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return claim, false
	}
	if v, ok := claims["accountId"].(float64); ok {
		claim.AccountId = uint(v)
	}
	if v, ok := claims["username"].(string); ok {
		claim.Username = v
	}
	return claim, claim.AccountId != 0
}

// SeatHolder xác định ai giữ ghế: tài khoản đăng nhập, mã phiên khách gửi lên,
// hoặc một mã khách mới.
func SeatHolder(c *fiber.Ctx, requested string) string {
	if claim, ok := GetInfoAccountFromToken(c); ok {
		return fmt.Sprintf("USER_%d", claim.AccountId)
	}
	if requested != "" {
		return requested
	}
	return "GUEST_" + uuid.New().String()
}
