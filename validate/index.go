package validate

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"seatmap_manager/constants"
	"seatmap_manager/utils"
)

var validate = validator.New()

// GetById đọc tham số đường dẫn key (số dương) vào Locals("inputId").
func GetById(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if key == "" {
			return c.Next()
		}
		id, err := parseId(c, key)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
		}

		c.Locals("inputId", id)
		return c.Next()
	}
}

func parseId(c *fiber.Ctx, key string) (uint, error) {
	value, err := strconv.ParseUint(c.Params(key), 10, 32)
	if err != nil || value == 0 {
		return 0, errors.New("params invalid")
	}
	return uint(value), nil
}

// body đọc JSON vào T, kiểm tra tag validate rồi chạy thêm check (nếu có).
// Kết quả nằm ở Locals(key); idKey khác rỗng thì id đường dẫn nằm ở Locals("inputId").
func body[T any](key, idKey string, check func(c *fiber.Ctx, input *T) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if idKey != "" {
			id, err := parseId(c, idKey)
			if err != nil {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
			}
			c.Locals("inputId", id)
		}

		var input T
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, fmt.Sprintf("Không thể phân tích yêu cầu: %s", err.Error()), err)
		}

		if err := validate.Struct(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
		}
		if check != nil {
			if err := check(c, &input); err != nil {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
			}
		}

		c.Locals(key, input)
		return c.Next()
	}
}
