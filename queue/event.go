// Package queue gửi sự kiện thay đổi sơ đồ ghế lên RabbitMQ cho các dịch vụ khác
// (đồng bộ vé, thống kê) mà không cần đọc cơ sở dữ liệu chính.
package queue

import "time"

const (
	SeatMapSaved   = "seatmap.saved"
	SeatsGenerated = "seatmap.seats.generated"
	SeatsChanged   = "seatmap.seats.changed"
)

type SeatMapEvent struct {
	Type      string    `json:"type"`
	SeatMapId uint      `json:"seatMapId"`
	ShowingId uint      `json:"showingId"`
	SectionId uint      `json:"sectionId,omitempty"`
	SeatIds   []uint    `json:"seatIds,omitempty"`
	Status    string    `json:"status,omitempty"`
	At        time.Time `json:"at"`
}
