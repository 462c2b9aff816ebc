package validate

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"seatmap_manager/model"
)

var errStageTicketType = errors.New("stage section cannot carry a ticket type")

func CreateSection() fiber.Handler {
	return body("inputCreateSection", "", func(c *fiber.Ctx, input *model.CreateSectionInput) error {
		input.Name = strings.TrimSpace(input.Name)
		if input.Name == "" {
			return errors.New("name is required")
		}
		if input.IsStage && input.TicketTypeId != nil {
			return errStageTicketType
		}
		return nil
	})
}

func UpdateSection(key string) fiber.Handler {
	return body("inputUpdateSection", key, func(c *fiber.Ctx, input *model.UpdateSectionInput) error {
		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return errors.New("name is required")
			}
			input.Name = &name
		}
		if input.TicketTypeId != nil && input.ClearTicketType {
			return errors.New("ticketTypeId and clearTicketType are exclusive")
		}
		if input.IsStage != nil && *input.IsStage && input.TicketTypeId != nil {
			return errStageTicketType
		}
		if input.Attribute != nil {
			return validate.Struct(input.Attribute)
		}
		return nil
	})
}

func CreateSectionAttribute() fiber.Handler {
	return body("inputSectionAttribute", "", func(c *fiber.Ctx, input *model.SectionAttributeInput) error {
		if input.SectionId == 0 {
			return errors.New("sectionId is required")
		}
		if input.ScaleX == 0 {
			input.ScaleX = 1
		}
		if input.ScaleY == 0 {
			input.ScaleY = 1
		}
		return nil
	})
}
