package handler

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"seatmap_manager/constants"
	"seatmap_manager/database"
	"seatmap_manager/helper"
	"seatmap_manager/model"
	"seatmap_manager/queue"
	"seatmap_manager/seatgrid"
	"seatmap_manager/utils"
)

// buildSeats sinh lưới ghế theo hàng rồi cột, cùng quy ước mã ghế với trình soạn thảo.
func buildSeats(input model.CreateSeatsBatchInput) []model.Seat {
	spec := seatgrid.Spec{
		Rows: input.Rows, Cols: input.Cols,
		StartRow: input.StartRow, StartCol: input.StartCol,
		CodePrefix: input.CodePrefix,
	}.Normalize()
	status := input.Status
	if status == "" {
		status = model.SeatAvailable
	}
	cells := seatgrid.Generate(spec)
	seats := make([]model.Seat, 0, len(cells))
	for _, cell := range cells {
		seats = append(seats, model.Seat{
			SectionId: input.SectionId,
			Code:      cell.Code,
			RowIndex:  cell.RowIndex,
			ColIndex:  cell.ColIndex,
			Status:    status,
			IsSalable: input.IsSalable,
			Price:     input.Price,
		})
	}
	return seats
}

// overlapping trả các vị trí trong next đã có ghế trong existing.
func overlapping(existing, next []model.Seat) []string {
	taken := make(map[[2]int]bool, len(existing))
	for _, s := range existing {
		taken[[2]int{s.RowIndex, s.ColIndex}] = true
	}
	var codes []string
	for _, s := range next {
		if taken[[2]int{s.RowIndex, s.ColIndex}] {
			codes = append(codes, s.Code)
		}
	}
	return codes
}

// CreateSeatsBatch: overwrite=true thay toàn bộ lưới ghế của khu vực.
func CreateSeatsBatch(c *fiber.Ctx) error {
	db := database.DB
	input, ok := c.Locals("inputCreateSeatsBatch").(model.CreateSeatsBatchInput)
	if !ok {
		return parseLocalsError(c)
	}

	var section model.Section
	if err := db.First(&section, input.SectionId).Error; err != nil {
		return notFoundOr500(c, err, constants.SECTION_NOT_FOUND)
	}
	if section.IsStage {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.STAGE_HAS_NO_SEAT, fmt.Errorf("section %d is a stage", section.ID))
	}

	seats := buildSeats(input)
	tx := db.Begin()
	if input.Overwrite {
		if err := tx.Where("section_id = ?", section.ID).Delete(&model.Seat{}).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Xoá lưới ghế cũ thất bại", err)
		}
	} else {
		var existing []model.Seat
		if err := tx.Where("section_id = ?", section.ID).Find(&existing).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.DATABASE_ERROR, err)
		}
		if codes := overlapping(existing, seats); len(codes) > 0 {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusConflict, "Vị trí ghế đã tồn tại", fmt.Errorf("seats already exist: %v", codes))
		}
	}
	if err := tx.CreateInBatches(&seats, 500).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Tạo ghế thất bại", err)
	}
	tx.Commit()

	helper.PublishSeatChange(section.SeatMapId, seats)
	queue.Emit(queue.SeatMapEvent{Type: queue.SeatsGenerated, SeatMapId: section.SeatMapId, SectionId: section.ID, SeatIds: seatIds(seats)})
	return utils.SuccessResponse(c, fiber.StatusCreated, seats)
}

func seatIds(seats []model.Seat) []uint {
	ids := make([]uint, 0, len(seats))
	for _, s := range seats {
		ids = append(ids, s.ID)
	}
	return ids
}

// publishBySeatMap nhóm ghế theo sơ đồ rồi phát cho người xem.
func publishBySeatMap(db *gorm.DB, seats []model.Seat) {
	bySection := map[uint][]model.Seat{}
	for _, s := range seats {
		bySection[s.SectionId] = append(bySection[s.SectionId], s)
	}
	for sectionId, group := range bySection {
		seatMapId, err := seatMapOfSection(db, sectionId)
		if err != nil {
			continue
		}
		helper.PublishSeatChange(seatMapId, group)
		queue.Emit(queue.SeatMapEvent{Type: queue.SeatsChanged, SeatMapId: seatMapId, SectionId: sectionId, SeatIds: seatIds(group), Status: string(group[0].Status)})
	}
}

// UpdateSeatStatus đặt trạng thái cho nhiều ghế (ví dụ UNAVAILABLE để xoá mềm).
func UpdateSeatStatus(c *fiber.Ctx) error {
	db := database.DB
	input, ok := c.Locals("inputUpdateSeatStatus").(model.UpdateSeatStatusInput)
	if !ok {
		return parseLocalsError(c)
	}

	updates := map[string]any{"status": input.Status}
	if input.Status != model.SeatLocked {
		updates["locked_by"] = ""
		updates["locked_until"] = nil
	}
	if err := db.Model(&model.Seat{}).Where("id IN ?", input.SeatIds).Updates(updates).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cập nhật trạng thái ghế thất bại", err)
	}

	var seats []model.Seat
	if err := db.Where("id IN ?", input.SeatIds).Find(&seats).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.DATABASE_ERROR, err)
	}
	publishBySeatMap(db, seats)
	return utils.SuccessResponse(c, fiber.StatusOK, seats)
}

// LockSeats giữ các ghế AVAILABLE cho người gọi tới khi hết hạn. Chỉ cần một
// ghế không còn trống là cả yêu cầu bị từ chối.
func LockSeats(c *fiber.Ctx) error {
	db := database.DB
	input, ok := c.Locals("inputLockSeats").(model.LockSeatsInput)
	if !ok {
		return parseLocalsError(c)
	}

	heldBy := helper.SeatHolder(c, input.HeldBy)
	until := time.Now().Add(helper.SeatLockTTL())

	tx := db.Begin()
	var seats []model.Seat
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", input.SeatIds).
		Find(&seats).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.DATABASE_ERROR, err)
	}
	if len(seats) != len(input.SeatIds) {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy ghế", fmt.Errorf("found %d of %d seats", len(seats), len(input.SeatIds)))
	}
	for _, s := range seats {
		if s.Status != model.SeatAvailable || !s.IsSalable {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.SEAT_NOT_AVAILABLE, fmt.Errorf("seat %s is %s", s.Code, s.Status))
		}
	}
	if err := tx.Model(&model.Seat{}).
		Where("id IN ?", input.SeatIds).
		Updates(map[string]any{
			"status":       model.SeatLocked,
			"locked_by":    heldBy,
			"locked_until": until,
		}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể giữ ghế", err)
	}
	tx.Commit()

	for i := range seats {
		seats[i].Status, seats[i].LockedBy, seats[i].LockedUntil = model.SeatLocked, heldBy, &until
	}
	publishBySeatMap(db, seats)
	return utils.SuccessResponse(c, fiber.StatusOK, model.SeatLockResult{
		HeldBy:    heldBy,
		ExpiresAt: until,
		Seats:     seats,
	})
}

func ReleaseSeats(c *fiber.Ctx) error {
	db := database.DB
	input, ok := c.Locals("inputReleaseSeats").(model.ReleaseSeatsInput)
	if !ok {
		return parseLocalsError(c)
	}
	heldBy := helper.SeatHolder(c, input.HeldBy)

	tx := db.Begin()
	var seats []model.Seat
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ? AND status = ? AND locked_by = ?", input.SeatIds, model.SeatLocked, heldBy).
		Find(&seats).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.DATABASE_ERROR, err)
	}
	if len(seats) != len(input.SeatIds) {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.SEAT_NOT_HELD_BY_YOU, fmt.Errorf("heldBy %s holds %d of %d seats", heldBy, len(seats), len(input.SeatIds)))
	}
	if err := tx.Model(&model.Seat{}).
		Where("id IN ?", input.SeatIds).
		Updates(map[string]any{
			"status":       model.SeatAvailable,
			"locked_by":    "",
			"locked_until": nil,
		}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể trả ghế", err)
	}
	tx.Commit()

	for i := range seats {
		seats[i].Status, seats[i].LockedBy, seats[i].LockedUntil = model.SeatAvailable, "", nil
	}
	publishBySeatMap(db, seats)
	return utils.SuccessResponse(c, fiber.StatusOK, seats)
}
