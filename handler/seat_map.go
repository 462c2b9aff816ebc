package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"

	"seatmap_manager/config"
	"seatmap_manager/constants"
	"seatmap_manager/database"
	"seatmap_manager/helper"
	"seatmap_manager/model"
	"seatmap_manager/queue"
	"seatmap_manager/utils"
)

func CreateSeatMap(c *fiber.Ctx) error {
	db := database.DB
	input, ok := c.Locals("inputCreateSeatMap").(model.CreateSeatMapInput)
	if !ok {
		return parseLocalsError(c)
	}

	var seatMap model.SeatMap
	copier.Copy(&seatMap, &input)
	seatMap.Status = model.SeatMapActive
	if input.Status != nil {
		seatMap.Status = *input.Status
	}
	seatMap.Slug = helper.GenerateUniqueSeatMapSlug(db, input.Name, input.ShowingId)

	if err := db.Create(&seatMap).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Tạo sơ đồ ghế thất bại", err)
	}
	seatMap.Sections = []model.Section{}

	queue.Emit(queue.SeatMapEvent{Type: queue.SeatMapSaved, SeatMapId: seatMap.ID, ShowingId: seatMap.ShowingId})
	return utils.SuccessResponse(c, fiber.StatusCreated, seatMap)
}

func UpdateSeatMap(c *fiber.Ctx) error {
	db := database.DB
	id, ok := localsId(c)
	input, ok2 := c.Locals("inputUpdateSeatMap").(model.UpdateSeatMapInput)
	if !ok || !ok2 {
		return parseLocalsError(c)
	}

	var seatMap model.SeatMap
	if err := db.First(&seatMap, id).Error; err != nil {
		return notFoundOr500(c, err, constants.SEAT_MAP_NOT_FOUND)
	}

	updates := map[string]any{}
	if input.Name != nil && *input.Name != seatMap.Name {
		updates["name"] = *input.Name
		updates["slug"] = helper.GenerateUniqueSeatMapSlug(db, *input.Name, seatMap.ShowingId)
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.ViewBox != nil {
		updates["view_box"] = *input.ViewBox
	}
	if len(updates) > 0 {
		if err := db.Model(&seatMap).Updates(updates).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cập nhật sơ đồ ghế thất bại", err)
		}
	}

	if err := withLayout(db).First(&seatMap, id).Error; err != nil {
		return notFoundOr500(c, err, constants.SEAT_MAP_NOT_FOUND)
	}
	queue.Emit(queue.SeatMapEvent{Type: queue.SeatMapSaved, SeatMapId: seatMap.ID, ShowingId: seatMap.ShowingId})
	return utils.SuccessResponse(c, fiber.StatusOK, seatMap)
}

// GetSeatMapsByShowingId trả mảng rỗng (không phải lỗi) khi suất chiếu chưa có sơ đồ.
func GetSeatMapsByShowingId(c *fiber.Ctx) error {
	showingId, ok := localsId(c)
	if !ok {
		return parseLocalsError(c)
	}

	seatMaps := []model.SeatMap{}
	if err := activeOnly(c, withLayout(database.DB)).
		Where("showing_id = ?", showingId).
		Order("id ASC").
		Find(&seatMaps).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.DATABASE_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, seatMaps)
}

func GetSeatMapById(c *fiber.Ctx) error {
	id, ok := localsId(c)
	if !ok {
		return parseLocalsError(c)
	}

	var seatMap model.SeatMap
	if err := activeOnly(c, withLayout(database.DB)).
		First(&seatMap, id).Error; err != nil {
		return notFoundOr500(c, err, constants.SEAT_MAP_NOT_FOUND)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, seatMap)
}

// UpdateSeatMapStatus: status=0 là xoá mềm sơ đồ.
func UpdateSeatMapStatus(c *fiber.Ctx) error {
	db := database.DB
	id, ok := localsId(c)
	input, ok2 := c.Locals("inputUpdateStatus").(model.UpdateStatusInput)
	if !ok || !ok2 {
		return parseLocalsError(c)
	}

	var seatMap model.SeatMap
	if err := db.First(&seatMap, id).Error; err != nil {
		return notFoundOr500(c, err, constants.SEAT_MAP_NOT_FOUND)
	}
	if err := db.Model(&seatMap).Update("status", *input.Status).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cập nhật trạng thái sơ đồ thất bại", err)
	}
	seatMap.Status = model.SeatMapStatus(*input.Status)
	return utils.SuccessResponse(c, fiber.StatusOK, seatMap)
}

// GetSeatMapQR trả ảnh PNG mã QR dẫn tới trang chọn ghế của sơ đồ.
func GetSeatMapQR(c *fiber.Ctx) error {
	id, ok := localsId(c)
	if !ok {
		return parseLocalsError(c)
	}

	var seatMap model.SeatMap
	if err := database.DB.Select("id", "slug").First(&seatMap, id).Error; err != nil {
		return notFoundOr500(c, err, constants.SEAT_MAP_NOT_FOUND)
	}
	size := c.QueryInt("size", 256)
	if size < 64 || size > 1024 {
		size = 256
	}
	png, err := utils.GenerateQRCode(utils.ViewerURL(config.Default("VIEWER_BASE_URL", "http://localhost:5173"), seatMap.Slug), size)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Tạo mã QR thất bại", err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
