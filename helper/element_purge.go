package helper

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"seatmap_manager/database"
	"seatmap_manager/model"
)

var purgeScheduler *cron.Cron

// ElementRetention là thời gian giữ element đã ẩn trước khi xoá hẳn.
const ElementRetention = 30 * 24 * time.Hour

// PurgeHiddenElements xoá element display=0 không đổi từ trước cutoff.
func PurgeHiddenElements(db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.
		Where("display = ? AND updated_at < ?", model.ElementHidden, cutoff).
		Delete(&model.MapElement{})
	return result.RowsAffected, result.Error
}

func purgeHiddenElementsJob() {
	n, err := PurgeHiddenElements(database.DB, time.Now().Add(-ElementRetention))
	if err != nil {
		log.Printf("Lỗi dọn element đã ẩn: %v", err)
		return
	}
	if n > 0 {
		log.Printf("Đã xoá %d element đã ẩn", n)
	}
}

func StartElementPurgeScheduler() {
	purgeScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	// 03:00 mỗi ngày
	_, err := purgeScheduler.AddFunc("0 3 * * *", purgeHiddenElementsJob)
	if err != nil {
		log.Printf("Lỗi khởi tạo scheduler: %v", err)
		return
	}

	purgeScheduler.Start()
	log.Println("Scheduler dọn element đã khởi động (03:00 hằng ngày)")
}

func StopElementPurgeScheduler() {
	if purgeScheduler != nil {
		purgeScheduler.Stop()
		log.Println("Scheduler dọn element đã dừng")
	}
}
