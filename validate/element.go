package validate

import (
	"github.com/gofiber/fiber/v2"

	"seatmap_manager/model"
)

func CreateSeatMapElement() fiber.Handler {
	return body("inputMapElement", "", func(c *fiber.Ctx, input *model.MapElementInput) error {
		if input.Display == nil {
			visible := model.ElementVisible
			input.Display = &visible
		}
		return nil
	})
}
