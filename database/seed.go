package database

import (
	"log"

	"gorm.io/gorm"

	"seatmap_manager/model"
	"seatmap_manager/seatgrid"
)

// DemoSeatMap dựng sơ đồ mẫu: một sân khấu phía trên và hai khu vực có ghế.
func DemoSeatMap(showingId uint) model.SeatMap {
	price := 100000.0
	section := func(name string, x float64, spec seatgrid.Spec) model.Section {
		s := model.Section{
			Name:      name,
			IsSalable: true,
			Status:    model.SectionActive,
			Attribute: &model.SectionAttribute{X: x, Y: 250, Width: 400, Height: 300, ScaleX: 1, ScaleY: 1, Fill: "#1677FF"},
		}
		for _, cell := range seatgrid.Generate(spec.Normalize()) {
			s.Seats = append(s.Seats, model.Seat{
				Code:      cell.Code,
				RowIndex:  cell.RowIndex,
				ColIndex:  cell.ColIndex,
				Status:    model.SeatAvailable,
				IsSalable: true,
				Price:     &price,
			})
		}
		return s
	}
	return model.SeatMap{
		Name:      "Sơ đồ mẫu",
		Slug:      "so-do-mau",
		Status:    model.SeatMapActive,
		ViewBox:   "0 0 1200 800",
		ShowingId: showingId,
		Sections: []model.Section{
			{
				Name:      "Sân khấu",
				Status:    model.SectionActive,
				IsStage:   true,
				Attribute: &model.SectionAttribute{X: 400, Y: 50, Width: 400, Height: 120, ScaleX: 1, ScaleY: 1, Fill: "#E53935"},
				Elements: []model.MapElement{{
					Type: model.ElementTypeRect, X: 400, Y: 50, Width: 400, Height: 120,
					Fill: "#E53935", Data: model.ElementStageArea, Display: model.ElementVisible,
				}},
			},
			section("Khu vực 1", 100, seatgrid.Spec{Rows: 5, Cols: 8}),
			section("Khu vực 2", 700, seatgrid.Spec{Rows: 5, Cols: 8, CodePrefix: "F"}),
		},
	}
}

func SeedData(db *gorm.DB, showingId uint) {
	var count int64
	if err := db.Model(&model.SeatMap{}).Where("showing_id = ?", showingId).Count(&count).Error; err != nil {
		log.Println("failed to check demo seat map:", err)
		return
	}
	if count > 0 {
		return
	}
	demo := DemoSeatMap(showingId)
	if err := db.Create(&demo).Error; err != nil {
		log.Println("failed to seed demo seat map:", err)
		return
	}
	log.Printf("Đã tạo sơ đồ mẫu %d cho suất chiếu %d", demo.ID, showingId)
}
