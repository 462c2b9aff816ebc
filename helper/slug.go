package helper

import (
	"fmt"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"seatmap_manager/model"
)

// SeatMapSlug là slug gốc của sơ đồ: tên sơ đồ kèm mã suất chiếu.
func SeatMapSlug(name string, showingId uint) string {
	base := slug.Make(name)
	if base == "" {
		base = "so-do"
	}
	return fmt.Sprintf("%s-%d", base, showingId)
}

func GenerateUniqueSeatMapSlug(tx *gorm.DB, name string, showingId uint) string {
	base := SeatMapSlug(name, showingId)
	result := base
	i := 1

	for {
		var count int64
		tx.Model(&model.SeatMap{}).
			Where("slug = ?", result).
			Count(&count)

		if count == 0 {
			break
		}
		result = fmt.Sprintf("%s-%d", base, i)
		i++
	}

	return result
}
