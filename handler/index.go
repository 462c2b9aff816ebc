package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"seatmap_manager/constants"
	"seatmap_manager/helper"
	"seatmap_manager/model"
	"seatmap_manager/utils"
)

var errLocals = errors.New("PARSE DATA TO LOCALS FAIL")

func localsId(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals("inputId").(uint)
	return id, ok && id != 0
}

func parseLocalsError(c *fiber.Ctx) error {
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errLocals)
}

// withLayout nạp khu vực còn hoạt động kèm thuộc tính, ghế (theo hàng/cột) và
// các element đang hiển thị.
func withLayout(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Sections", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("status = ?", model.SectionActive).Order("id ASC")
		}).
		Preload("Sections.Attribute").
		Preload("Sections.Seats", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("row_index ASC, col_index ASC")
		}).
		Preload("Sections.Elements", "display = ?", model.ElementVisible)
}

// activeOnly lọc sơ đồ đang hoạt động; ?all=1 của người đã đăng nhập (trình
// soạn thảo) thấy cả sơ đồ chưa kích hoạt.
func activeOnly(c *fiber.Ctx, db *gorm.DB) *gorm.DB {
	if c.QueryBool("all") {
		if _, ok := helper.GetInfoAccountFromToken(c); ok {
			return db
		}
	}
	return db.Where("status = ?", model.SeatMapActive)
}

func seatMapOfSection(db *gorm.DB, sectionId uint) (uint, error) {
	var section model.Section
	if err := db.Select("id", "seat_map_id").First(&section, sectionId).Error; err != nil {
		return 0, err
	}
	return section.SeatMapId, nil
}

func notFoundOr500(c *fiber.Ctx, err error, notFound string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, notFound, err)
	}
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.DATABASE_ERROR, err)
}
