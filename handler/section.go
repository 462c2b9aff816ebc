package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"seatmap_manager/constants"
	"seatmap_manager/database"
	"seatmap_manager/model"
	"seatmap_manager/utils"
)

var errTicketTypeBound = errors.New("ticket type already bound")

// ticketTypeHolder tìm khu vực đang hoạt động khác trong cùng sơ đồ đã giữ loại vé.
func ticketTypeHolder(tx *gorm.DB, seatMapId, ticketTypeId, exclude uint) (*model.Section, error) {
	var holder model.Section
	err := tx.
		Where("seat_map_id = ? AND ticket_type_id = ? AND status = ? AND id <> ?",
			seatMapId, ticketTypeId, model.SectionActive, exclude).
		First(&holder).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &holder, nil
}

func ticketConflict(c *fiber.Ctx, holder *model.Section) error {
	return utils.ErrorResponse(c, fiber.StatusConflict, constants.TICKET_TYPE_ALREADY_BOUND,
		fmt.Errorf("%w to section %d (%s)", errTicketTypeBound, holder.ID, holder.Name))
}

func CreateSection(c *fiber.Ctx) error {
	db := database.DB
	input, ok := c.Locals("inputCreateSection").(model.CreateSectionInput)
	if !ok {
		return parseLocalsError(c)
	}

	var seatMap model.SeatMap
	if err := db.Select("id").First(&seatMap, input.SeatMapId).Error; err != nil {
		return notFoundOr500(c, err, constants.SEAT_MAP_NOT_FOUND)
	}

	tx := db.Begin()
	if input.TicketTypeId != nil {
		holder, err := ticketTypeHolder(tx, input.SeatMapId, *input.TicketTypeId, 0)
		if err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.DATABASE_ERROR, err)
		}
		if holder != nil {
			tx.Rollback()
			return ticketConflict(c, holder)
		}
	}

	section := model.Section{
		SeatMapId:       input.SeatMapId,
		Name:            input.Name,
		IsStage:         input.IsStage,
		IsSalable:       input.IsSalable && !input.IsStage,
		IsReservingSeat: input.IsReservingSeat,
		Message:         input.Message,
		TicketTypeId:    input.TicketTypeId,
		Status:          model.SectionActive,
	}
	if input.Status != nil {
		section.Status = *input.Status
	}
	if err := tx.Create(&section).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Tạo khu vực thất bại", err)
	}
	tx.Commit()

	return utils.SuccessResponse(c, fiber.StatusCreated, section)
}

// UpdateSection cập nhật từng phần, kể cả thuộc tính hình học; status=0 là xoá mềm.
func UpdateSection(c *fiber.Ctx) error {
	db := database.DB
	id, ok := localsId(c)
	input, ok2 := c.Locals("inputUpdateSection").(model.UpdateSectionInput)
	if !ok || !ok2 {
		return parseLocalsError(c)
	}

	tx := db.Begin()
	var section model.Section
	if err := tx.First(&section, id).Error; err != nil {
		tx.Rollback()
		return notFoundOr500(c, err, constants.SECTION_NOT_FOUND)
	}

	isStage := section.IsStage
	if input.IsStage != nil {
		isStage = *input.IsStage
	}
	if isStage && !section.IsStage {
		var seatCount int64
		tx.Model(&model.Seat{}).Where("section_id = ?", id).Count(&seatCount)
		if seatCount > 0 {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.STAGE_HAS_NO_SEAT, errors.New("section has seats"))
		}
	}

	updates := sectionUpdates(input, isStage)
	if input.TicketTypeId != nil {
		if isStage {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.STAGE_HAS_NO_SEAT, errors.New("stage section cannot carry a ticket type"))
		}
		holder, err := ticketTypeHolder(tx, section.SeatMapId, *input.TicketTypeId, id)
		if err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.DATABASE_ERROR, err)
		}
		if holder != nil {
			tx.Rollback()
			return ticketConflict(c, holder)
		}
	}

	if len(updates) > 0 {
		if err := tx.Model(&section).Updates(updates).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cập nhật khu vực thất bại", err)
		}
	}
	if input.Attribute != nil {
		if _, err := upsertAttribute(tx, id, *input.Attribute); err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cập nhật thuộc tính khu vực thất bại", err)
		}
	}
	tx.Commit()

	if err := db.Preload("Attribute").First(&section, id).Error; err != nil {
		return notFoundOr500(c, err, constants.SECTION_NOT_FOUND)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, section)
}

// sectionUpdates đổi input thành map cột cho gorm; chỉ các trường được gửi lên.
func sectionUpdates(input model.UpdateSectionInput, isStage bool) map[string]any {
	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.IsStage != nil {
		updates["is_stage"] = *input.IsStage
	}
	if input.IsSalable != nil {
		updates["is_salable"] = *input.IsSalable && !isStage
	} else if isStage && input.IsStage != nil {
		updates["is_salable"] = false
	}
	if input.IsReservingSeat != nil {
		updates["is_reserving_seat"] = *input.IsReservingSeat
	}
	if input.Message != nil {
		updates["message"] = *input.Message
	}
	if input.TicketTypeId != nil {
		updates["ticket_type_id"] = *input.TicketTypeId
	}
	if input.ClearTicketType || (isStage && input.IsStage != nil) {
		updates["ticket_type_id"] = nil
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	return updates
}

// upsertAttribute giữ đúng một thuộc tính cho mỗi khu vực.
func upsertAttribute(tx *gorm.DB, sectionId uint, in model.SectionAttributeInput) (*model.SectionAttribute, error) {
	var attr model.SectionAttribute
	if err := tx.Where("section_id = ?", sectionId).FirstOrInit(&attr).Error; err != nil {
		return nil, err
	}
	attr.SectionId = sectionId
	attr.X, attr.Y = in.X, in.Y
	attr.Width, attr.Height = in.Width, in.Height
	attr.ScaleX, attr.ScaleY = in.ScaleX, in.ScaleY
	if attr.ScaleX == 0 {
		attr.ScaleX = 1
	}
	if attr.ScaleY == 0 {
		attr.ScaleY = 1
	}
	attr.Rotate = in.Rotate
	attr.Fill = in.Fill
	if err := tx.Save(&attr).Error; err != nil {
		return nil, err
	}
	return &attr, nil
}

func CreateSectionAttribute(c *fiber.Ctx) error {
	db := database.DB
	input, ok := c.Locals("inputSectionAttribute").(model.SectionAttributeInput)
	if !ok {
		return parseLocalsError(c)
	}

	var section model.Section
	if err := db.Select("id").First(&section, input.SectionId).Error; err != nil {
		return notFoundOr500(c, err, constants.SECTION_NOT_FOUND)
	}
	attr, err := upsertAttribute(db, section.ID, input)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lưu thuộc tính khu vực thất bại", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, attr)
}
