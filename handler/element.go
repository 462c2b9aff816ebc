package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"

	"seatmap_manager/constants"
	"seatmap_manager/database"
	"seatmap_manager/model"
	"seatmap_manager/utils"
)

func CreateSeatMapElement(c *fiber.Ctx) error {
	db := database.DB
	input, ok := c.Locals("inputMapElement").(model.MapElementInput)
	if !ok {
		return parseLocalsError(c)
	}

	var section model.Section
	if err := db.Select("id").First(&section, input.SectionId).Error; err != nil {
		return notFoundOr500(c, err, constants.SECTION_NOT_FOUND)
	}

	var element model.MapElement
	copier.Copy(&element, &input)
	element.Display = *input.Display
	if err := db.Create(&element).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Tạo phần tử thất bại", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, element)
}

// UpdateElementDisplay: display=0 là xoá mềm; element ẩn lâu ngày bị dọn định kỳ.
func UpdateElementDisplay(c *fiber.Ctx) error {
	db := database.DB
	id, ok := localsId(c)
	input, ok2 := c.Locals("inputUpdateStatus").(model.UpdateStatusInput)
	if !ok || !ok2 {
		return parseLocalsError(c)
	}

	var element model.MapElement
	if err := db.First(&element, id).Error; err != nil {
		return notFoundOr500(c, err, constants.ELEMENT_NOT_FOUND)
	}
	if err := db.Model(&element).Update("display", *input.Status).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cập nhật phần tử thất bại", err)
	}
	element.Display = *input.Status
	return utils.SuccessResponse(c, fiber.StatusOK, element)
}
