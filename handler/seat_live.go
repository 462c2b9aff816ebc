package handler

import (
	"context"
	"log"
	"strconv"

	"github.com/gofiber/contrib/websocket"
	"gorm.io/gorm"

	"seatmap_manager/database"
	"seatmap_manager/helper"
	"seatmap_manager/model"
)

// seatsOfSeatMap lấy toàn bộ ghế của các khu vực đang hoạt động trong sơ đồ.
func seatsOfSeatMap(db *gorm.DB, seatMapId uint) ([]model.Seat, error) {
	var seats []model.Seat
	err := db.
		Joins("JOIN sections ON sections.id = seats.section_id").
		Where("sections.seat_map_id = ? AND sections.status = ?", seatMapId, model.SectionActive).
		Order("seats.section_id, seats.row_index, seats.col_index").
		Find(&seats).Error
	return seats, err
}

// SeatMapLive gửi trạng thái ghế hiện tại rồi chuyển tiếp mọi thay đổi từ kênh
// redis của sơ đồ tới người xem cho tới khi kết nối đóng.
func SeatMapLive(c *websocket.Conn) {
	id64, err := strconv.ParseUint(c.Params("seatMapId"), 10, 32)
	if err != nil {
		log.Printf("seatMapId không hợp lệ: %s", c.Params("seatMapId"))
		c.Close()
		return
	}
	seatMapId := uint(id64)
	defer c.Close()

	seats, err := seatsOfSeatMap(database.DB, seatMapId)
	if err != nil {
		log.Printf("Lỗi tải ghế sơ đồ %d: %v", seatMapId, err)
		return
	}
	if err := c.WriteJSON(helper.SeatChange{SeatMapId: seatMapId, Seats: seats}); err != nil {
		return
	}

	pubsub := helper.Redis().Subscribe(context.Background(), helper.SeatChannel(seatMapId))
	defer pubsub.Close()

	// client không gửi gì; đọc chỉ để biết khi nào kết nối đóng
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	channel := pubsub.Channel()
	for {
		select {
		case <-closed:
			return
		case msg, ok := <-channel:
			if !ok {
				return
			}
			if err := c.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				log.Printf("Lỗi gửi thay đổi ghế sơ đồ %d: %v", seatMapId, err)
				return
			}
		}
	}
}
