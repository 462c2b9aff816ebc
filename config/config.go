package config

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var loadOnce sync.Once

// Config đọc biến từ .env (nếu có) rồi tới biến môi trường của tiến trình.
func Config(key string) string {
	loadOnce.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("Không tìm thấy file .env, dùng biến môi trường")
		}
	})
	return os.Getenv(key)
}

func Default(key, fallback string) string {
	if v := Config(key); v != "" {
		return v
	}
	return fallback
}

// Duration nhận "10m", "90s" hoặc số giây.
func Duration(key string, fallback time.Duration) time.Duration {
	v := Config(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	log.Printf("Giá trị %s=%q không hợp lệ, dùng mặc định %s", key, v, fallback)
	return fallback
}
