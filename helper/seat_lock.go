package helper

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"

	"seatmap_manager/config"
	"seatmap_manager/database"
	"seatmap_manager/model"
)

var seatLockScheduler gocron.Scheduler

// SeatLockTTL là thời gian giữ ghế trước khi tự trả về AVAILABLE.
func SeatLockTTL() time.Duration {
	return config.Duration("SEAT_LOCK_TTL", 10*time.Minute)
}

// ExpireSeatLocks trả các ghế LOCKED đã hết hạn về AVAILABLE và báo cho người xem.
func ExpireSeatLocks(db *gorm.DB, now time.Time) (map[uint][]model.Seat, error) {
	var expired []model.Seat
	if err := db.
		Where("status = ? AND locked_until < ?", model.SeatLocked, now).
		Find(&expired).Error; err != nil {
		return nil, err
	}
	if len(expired) == 0 {
		return nil, nil
	}

	ids := make([]uint, 0, len(expired))
	for _, s := range expired {
		ids = append(ids, s.ID)
	}
	if err := db.Model(&model.Seat{}).
		Where("id IN ? AND status = ?", ids, model.SeatLocked).
		Updates(map[string]any{
			"status":       model.SeatAvailable,
			"locked_by":    "",
			"locked_until": nil,
		}).Error; err != nil {
		return nil, err
	}

	bySeatMap, err := groupBySeatMap(db, expired)
	if err != nil {
		return nil, err
	}
	return bySeatMap, nil
}

func groupBySeatMap(db *gorm.DB, seats []model.Seat) (map[uint][]model.Seat, error) {
	sectionIds := make([]uint, 0, len(seats))
	for _, s := range seats {
		sectionIds = append(sectionIds, s.SectionId)
	}
	var sections []model.Section
	if err := db.Select("id", "seat_map_id").Where("id IN ?", sectionIds).Find(&sections).Error; err != nil {
		return nil, err
	}
	seatMapOf := make(map[uint]uint, len(sections))
	for _, sec := range sections {
		seatMapOf[sec.ID] = sec.SeatMapId
	}
	out := make(map[uint][]model.Seat)
	for _, s := range seats {
		s.Status, s.LockedBy, s.LockedUntil = model.SeatAvailable, "", nil
		id := seatMapOf[s.SectionId]
		out[id] = append(out[id], s)
	}
	return out, nil
}

func expireSeatLocksJob() {
	changed, err := ExpireSeatLocks(database.DB, time.Now())
	if err != nil {
		log.Printf("Lỗi trả ghế hết hạn giữ: %v", err)
		return
	}
	for seatMapId, seats := range changed {
		log.Printf("Đã trả %d ghế hết hạn giữ của sơ đồ %d", len(seats), seatMapId)
		PublishSeatChange(seatMapId, seats)
	}
}

func StartSeatLockScheduler() {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.FixedZone("ICT", 7*3600)),
	)
	if err != nil {
		log.Fatal(err)
	}

	seatLockScheduler = s

	_, err = s.NewJob(
		gocron.DurationJob(30*time.Second),
		gocron.NewTask(expireSeatLocksJob),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("Scheduler trả ghế hết hạn đã khởi động (mỗi 30 giây)")
}

func StopSeatLockScheduler() {
	if seatLockScheduler != nil {
		if err := seatLockScheduler.Shutdown(); err != nil {
			log.Printf("Lỗi dừng scheduler trả ghế: %v", err)
		}
	}
}
