package application

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/reservation"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/seat"
)

// TestBenchmark_FullDay は 60 席 × 1日分の予約を並行に作成し、処理性能を記録する
func TestBenchmark_FullDay(t *testing.T) {
	if testing.Short() {
		t.Skip("大規模ベンチマークテストはshortモードではスキップ")
	}

	env := setupScenarioEnv(t)
	ctx := context.Background()

	t.Run("60席×24枠の並行予約", func(t *testing.T) {
		const seats, hours = 60, 24

		var (
			wg      sync.WaitGroup
			success atomic.Int32
		)
		start := time.Now()
		for s := int64(1); s <= seats; s++ {
			wg.Add(1)
			go func(seatID int64) {
				defer wg.Done()
				// 境界が接すると衝突するため、各枠は59分にする
				for h := 0; h < hours; h++ {
					_, err := env.reservations.CreateReservation(ctx, CreateReservationInput{
						ClientID: seatID, SeatID: seatID, Start: at(h, 0), End: at(h, 59),
					})
					if err == nil {
						success.Add(1)
					}
				}
			}(s)
		}
		wg.Wait()
		reserveDuration := time.Since(start)

		assert.Equal(t, int32(seats*hours), success.Load())

		start = time.Now()
		found, err := env.reservations.FindReservations(ctx, reservation.NewFilter().WithStatus(reservation.StatusPending))
		require.NoError(t, err)
		findDuration := time.Since(start)
		assert.Len(t, found, seats*hours)

		t.Log("=================================================")
		t.Logf("予約作成 (%d件): %v (%.0f 予約/秒)", seats*hours, reserveDuration, float64(seats*hours)/reserveDuration.Seconds())
		t.Logf("予約検索: %v", findDuration)
		t.Log("=================================================")
	})

	t.Run("競合予約は1件のみ成功", func(t *testing.T) {
		const competing = 100
		var (
			wg       sync.WaitGroup
			success  atomic.Int32
			conflict atomic.Int32
		)
		for i := 0; i < competing; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := env.reservations.CreateReservation(ctx, CreateReservationInput{
					ClientID: 1, SeatID: 1, Start: day.Add(24 * time.Hour), End: day.Add(25 * time.Hour),
				})
				switch {
				case err == nil:
					success.Add(1)
				case errors.Is(err, reservation.ErrSeatUnavailable):
					conflict.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), success.Load())
		assert.Equal(t, int32(competing-1), conflict.Load())
	})
}

func BenchmarkCreateReservation(b *testing.B) {
	env := setupScenarioEnv(b)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// 座席ごとに1時間ずつずらして衝突させない
		seatID := int64(i%60) + 1
		startAt := day.Add(time.Duration(i/60) * time.Hour)
		_, err := env.reservations.CreateReservation(ctx, CreateReservationInput{
			ClientID: 1, SeatID: seatID, Start: startAt, End: startAt.Add(59 * time.Minute),
		})
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSeatQueries(b *testing.B) {
	env := setupScenarioEnv(b)
	ctx := context.Background()
	free := seat.StatusFree

	b.Run("CountFree", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			env.seats.CountFree(ctx)
		}
	})

	b.Run("ListSeats", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			env.seats.ListSeats(ctx, &free)
		}
	})

	b.Run("QuotePrices", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, err := env.reservations.QuotePrices(ctx, 1, at(10, 0), at(12, 0)); err != nil {
				b.Fatal(err)
			}
		}
	})
}
