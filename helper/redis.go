package helper

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"

	"seatmap_manager/config"
	"seatmap_manager/model"
)

var (
	redisOnce   sync.Once
	redisClient *redis.Client
)

// Redis trả về client dùng chung; handler gọi song song nên chỉ tạo một lần.
func Redis() *redis.Client {
	redisOnce.Do(func() {
		redisClient = redis.NewClient(&redis.Options{Addr: config.Default("REDIS_ADDR", "localhost:6379")})
	})
	return redisClient
}

func SeatChannel(seatMapId uint) string {
	return fmt.Sprintf("seatmap:%d", seatMapId)
}

// SeatChange là thông điệp gửi tới người xem khi trạng thái ghế đổi.
type SeatChange struct {
	SeatMapId uint         `json:"seatMapId"`
	Seats     []model.Seat `json:"seats"`
}

// PublishSeatChange phát các ghế vừa đổi lên kênh redis của sơ đồ.
func PublishSeatChange(seatMapId uint, seats []model.Seat) {
	if len(seats) == 0 {
		return
	}
	payload, err := json.Marshal(SeatChange{SeatMapId: seatMapId, Seats: seats})
	if err != nil {
		log.Printf("Lỗi mã hoá thay đổi ghế: %v", err)
		return
	}
	if err := Redis().Publish(context.Background(), SeatChannel(seatMapId), payload).Err(); err != nil {
		log.Printf("Lỗi phát thay đổi ghế sơ đồ %d: %v", seatMapId, err)
	}
}
