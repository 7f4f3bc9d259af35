package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assist-by/aurora/internal/domain"
)

// 테스트용 Bar 생성
func makeBar(t *testing.T, symbol string, timestamp time.Time, close float64) domain.Bar {
	t.Helper()
	bar, err := domain.NewBar(symbol, timestamp, close, close+0.5, close-0.5, close, 1000)
	require.NoError(t, err)
	return bar
}

func TestStore_MergeAndSort(t *testing.T) {
	s := NewStore(24 * time.Hour)
	baseTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// 순서가 섞인 첫 배치
	s.Store("EURUSD", []domain.Bar{
		makeBar(t, "EURUSD", baseTime.Add(2*time.Minute), 1.2),
		makeBar(t, "EURUSD", baseTime, 1.0),
		makeBar(t, "EURUSD", baseTime.Add(1*time.Minute), 1.1),
	})

	// 겹치는 타임스탬프를 포함한 두 번째 배치
	s.Store("EURUSD", []domain.Bar{
		makeBar(t, "EURUSD", baseTime.Add(1*time.Minute), 2.1), // 교체되어야 함
		makeBar(t, "EURUSD", baseTime.Add(3*time.Minute), 1.3),
	})

	bars, ok := s.Query("EURUSD", 0)
	require.True(t, ok)
	require.Len(t, bars, 4)

	// 타임스탬프 오름차순, 중복 없음
	for i := 1; i < len(bars); i++ {
		assert.True(t, bars[i].Timestamp.After(bars[i-1].Timestamp),
			"인덱스 %d의 타임스탬프가 엄격한 오름차순이 아닙니다", i)
	}

	// 나중에 저장한 값이 이김 (last-write-wins)
	assert.Equal(t, 2.1, bars[1].Close)
}

func TestStore_IdempotentMerge(t *testing.T) {
	s := NewStore(24 * time.Hour)
	baseTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	bar := makeBar(t, "EURUSD", baseTime, 1.0)
	s.Store("EURUSD", []domain.Bar{bar})
	s.Store("EURUSD", []domain.Bar{bar})

	bars, ok := s.Query("EURUSD", 0)
	require.True(t, ok)
	assert.Len(t, bars, 1)
}

func TestStore_EmptyBatchIsNoOp(t *testing.T) {
	s := NewStore(24 * time.Hour)

	s.Store("EURUSD", nil)

	assert.False(t, s.HasData("EURUSD"))
	assert.Equal(t, 0, s.Stats().SymbolCount)
}

func TestStore_QueryReturnsCopy(t *testing.T) {
	s := NewStore(24 * time.Hour)
	baseTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	s.Store("EURUSD", []domain.Bar{
		makeBar(t, "EURUSD", baseTime, 1.0),
		makeBar(t, "EURUSD", baseTime.Add(time.Minute), 1.1),
	})

	bars, ok := s.Query("EURUSD", 0)
	require.True(t, ok)

	// 반환된 복사본을 변경해도 저장소 내부 상태는 바뀌지 않아야 함
	bars[0].Close = 999.0

	again, ok := s.Query("EURUSD", 0)
	require.True(t, ok)
	assert.Equal(t, 1.0, again[0].Close)
}

func TestStore_QueryMaxCount(t *testing.T) {
	s := NewStore(24 * time.Hour)
	baseTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var batch []domain.Bar
	for i := 0; i < 10; i++ {
		batch = append(batch, makeBar(t, "EURUSD", baseTime.Add(time.Duration(i)*time.Minute), float64(i)))
	}
	s.Store("EURUSD", batch)

	// 가장 최근 3개
	bars, ok := s.Query("EURUSD", 3)
	require.True(t, ok)
	require.Len(t, bars, 3)
	assert.Equal(t, 7.0, bars[0].Close)
	assert.Equal(t, 9.0, bars[2].Close)

	// 보유량보다 큰 요청은 전체 반환
	bars, ok = s.Query("EURUSD", 100)
	require.True(t, ok)
	assert.Len(t, bars, 10)
}

func TestStore_QueryUnknownSymbol(t *testing.T) {
	s := NewStore(24 * time.Hour)

	_, ok := s.Query("UNKNOWN", 10)
	assert.False(t, ok)

	_, ok = s.QueryRange("UNKNOWN", time.Now().Add(-time.Hour), time.Now())
	assert.False(t, ok)

	_, ok = s.LatestPrice("UNKNOWN")
	assert.False(t, ok)

	_, ok = s.LatestBar("UNKNOWN")
	assert.False(t, ok)

	_, ok = s.Age("UNKNOWN")
	assert.False(t, ok)
}

func TestStore_QueryRangeInclusiveBounds(t *testing.T) {
	s := NewStore(24 * time.Hour)
	baseTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var batch []domain.Bar
	for i := 0; i < 5; i++ {
		batch = append(batch, makeBar(t, "EURUSD", baseTime.Add(time.Duration(i)*time.Minute), float64(i)))
	}
	s.Store("EURUSD", batch)

	// 양 끝 경계가 포함되어야 함
	bars, ok := s.QueryRange("EURUSD", baseTime.Add(time.Minute), baseTime.Add(3*time.Minute))
	require.True(t, ok)
	require.Len(t, bars, 3)
	assert.Equal(t, 1.0, bars[0].Close)
	assert.Equal(t, 3.0, bars[2].Close)

	// 구간에 데이터가 없으면 부재로 처리
	_, ok = s.QueryRange("EURUSD", baseTime.Add(time.Hour), baseTime.Add(2*time.Hour))
	assert.False(t, ok)
}

func TestStore_LatestAccessors(t *testing.T) {
	s := NewStore(24 * time.Hour)
	recent := time.Now().Add(-30 * time.Second)

	s.Store("EURUSD", []domain.Bar{
		makeBar(t, "EURUSD", recent.Add(-time.Minute), 1.0),
		makeBar(t, "EURUSD", recent, 1.5),
	})

	price, ok := s.LatestPrice("EURUSD")
	require.True(t, ok)
	assert.Equal(t, 1.5, price)

	bar, ok := s.LatestBar("EURUSD")
	require.True(t, ok)
	assert.Equal(t, 1.5, bar.Close)

	age, ok := s.Age("EURUSD")
	require.True(t, ok)
	assert.InDelta(t, 30, age.Seconds(), 5)
}

func TestStore_EvictExpired(t *testing.T) {
	s := NewStore(24 * time.Hour)
	now := time.Now()

	s.Store("EURUSD", []domain.Bar{
		makeBar(t, "EURUSD", now.Add(-2*time.Hour), 1.0),
		makeBar(t, "EURUSD", now.Add(-30*time.Minute), 1.1),
	})
	s.Store("GBPUSD", []domain.Bar{
		makeBar(t, "GBPUSD", now.Add(-3*time.Hour), 1.3),
	})

	s.EvictExpired(time.Hour)

	// 1시간보다 오래된 Bar는 제거
	bars, ok := s.Query("EURUSD", 0)
	require.True(t, ok)
	require.Len(t, bars, 1)
	assert.Equal(t, 1.1, bars[0].Close)

	// Bar가 모두 만료된 심볼은 저장소에서 제거
	assert.False(t, s.HasData("GBPUSD"))

	stats := s.Stats()
	assert.Equal(t, 1, stats.SymbolCount)
	_, exists := stats.Symbols["GBPUSD"]
	assert.False(t, exists)
}

func TestStore_AutoSweepOnStore(t *testing.T) {
	// 정리 간격 0이면 매 저장마다 만료 데이터를 정리
	s := NewStore(time.Hour, WithSweepInterval(0))
	now := time.Now()

	s.Store("EURUSD", []domain.Bar{
		makeBar(t, "EURUSD", now.Add(-2*time.Hour), 1.0),
		makeBar(t, "EURUSD", now, 1.1),
	})

	bars, ok := s.Query("EURUSD", 0)
	require.True(t, ok)
	require.Len(t, bars, 1)
	assert.Equal(t, 1.1, bars[0].Close)
}

func TestStore_ClearOperations(t *testing.T) {
	s := NewStore(24 * time.Hour)
	baseTime := time.Now()

	s.Store("EURUSD", []domain.Bar{makeBar(t, "EURUSD", baseTime, 1.0)})
	s.Store("GBPUSD", []domain.Bar{makeBar(t, "GBPUSD", baseTime, 1.3)})

	assert.True(t, s.ClearSymbol("EURUSD"))
	assert.False(t, s.ClearSymbol("EURUSD"))
	assert.False(t, s.HasData("EURUSD"))
	assert.True(t, s.HasData("GBPUSD"))

	s.ClearAll()
	assert.Equal(t, 0, s.Stats().SymbolCount)
}

func TestStore_Stats(t *testing.T) {
	s := NewStore(24 * time.Hour)
	baseTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	s.Store("EURUSD", []domain.Bar{
		makeBar(t, "EURUSD", baseTime, 1.0),
		makeBar(t, "EURUSD", baseTime.Add(time.Minute), 1.1),
	})

	stats := s.Stats()
	assert.Equal(t, 1, stats.SymbolCount)
	assert.Equal(t, 2, stats.TotalBars)

	detail := stats.Symbols["EURUSD"]
	assert.Equal(t, 2, detail.Bars)
	assert.Equal(t, baseTime, detail.Oldest)
	assert.Equal(t, baseTime.Add(time.Minute), detail.Newest)
	assert.Equal(t, 1.1, detail.LatestPrice)
}

func TestStore_ConcurrentWriters(t *testing.T) {
	s := NewStore(24 * time.Hour)
	baseTime := time.Now()

	const writers = 8
	const barsPerWriter = 20

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			symbol := fmt.Sprintf("SYM%d", w)
			for i := 0; i < barsPerWriter; i++ {
				bar := domain.Bar{
					Symbol:    symbol,
					Timestamp: baseTime.Add(time.Duration(i) * time.Minute),
					Open:      1.0, High: 1.5, Low: 0.5, Close: 1.0, Volume: 100,
				}
				s.Store(symbol, []domain.Bar{bar})
			}
		}(w)
	}
	wg.Wait()

	stats := s.Stats()
	require.Equal(t, writers, stats.SymbolCount)
	for w := 0; w < writers; w++ {
		symbol := fmt.Sprintf("SYM%d", w)
		assert.Equal(t, barsPerWriter, stats.Symbols[symbol].Bars, "%s의 Bar 개수가 다릅니다", symbol)
	}
}
