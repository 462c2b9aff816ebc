package validate

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"seatmap_manager/geometry"
	"seatmap_manager/model"
)

func CreateSeatMap() fiber.Handler {
	return body("inputCreateSeatMap", "", func(c *fiber.Ctx, input *model.CreateSeatMapInput) error {
		vb, err := geometry.ParseViewBox(input.ViewBox)
		if err != nil {
			return err
		}
		// lưu dạng chuẩn "minX minY width height"
		input.ViewBox = vb.String()
		return nil
	})
}

func UpdateSeatMap(key string) fiber.Handler {
	return body("inputUpdateSeatMap", key, func(c *fiber.Ctx, input *model.UpdateSeatMapInput) error {
		if input.Name == nil && input.Status == nil && input.ViewBox == nil {
			return errors.New("nothing to update")
		}
		if input.ViewBox != nil {
			vb, err := geometry.ParseViewBox(*input.ViewBox)
			if err != nil {
				return err
			}
			s := vb.String()
			input.ViewBox = &s
		}
		return nil
	})
}

// UpdateStatus dùng chung cho status của seat map và display của element.
func UpdateStatus(key string) fiber.Handler {
	return body[model.UpdateStatusInput]("inputUpdateStatus", key, nil)
}
