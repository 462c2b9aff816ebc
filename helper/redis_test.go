package helper

import (
	"sync"
	"testing"

	"github.com/redis/go-redis/v9"
)

func TestRedisSharedClient(t *testing.T) {
	const n = 32
	clients := make([]*redis.Client, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			clients[i] = Redis()
		}(i)
	}
	wg.Wait()
	for i, c := range clients {
		if c == nil || c != clients[0] {
			t.Fatalf("client %d = %p, want %p", i, c, clients[0])
		}
	}
}

func TestSeatChannel(t *testing.T) {
	if got := SeatChannel(900); got != "seatmap:900" {
		t.Errorf("SeatChannel(900) = %q", got)
	}
}
