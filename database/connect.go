package database

import (
	"fmt"
	"log"
	"strconv"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"seatmap_manager/config"
	"seatmap_manager/model"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	p := config.Config("DB_PORT")
	port, err := strconv.ParseUint(p, 10, 32)

	if err != nil {
		panic("failed to parse database port")
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable", config.Config("DB_HOST"), port, config.Config("DB_USER"), config.Config("DB_PASSWORD"), config.Config("DB_NAME"))
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		panic("failed to connect database")
	}

	log.Println("Connection Opened to Database")
	if err := DB.AutoMigrate(
		&model.SeatMap{},
		&model.Section{},
		&model.SectionAttribute{},
		&model.Seat{},
		&model.MapElement{},
	); err != nil {
		panic(fmt.Sprintf("failed to migrate database: %v", err))
	}
	log.Println("Database Migrated")

	// sơ đồ mẫu cho môi trường dev
	if showing := config.Config("SEED_DEMO_SHOWING"); showing != "" {
		id, err := strconv.ParseUint(showing, 10, 32)
		if err != nil {
			log.Printf("SEED_DEMO_SHOWING=%q không hợp lệ", showing)
			return
		}
		SeedData(DB, uint(id))
	}
}
