package store

import (
	"log"
	"sort"
	"sync"
	"time"

	"github.com/assist-by/aurora/internal/domain"
)

// DefaultSweepInterval은 자동 정리 사이의 최소 간격입니다
const DefaultSweepInterval = time.Hour

// Store는 심볼별 시계열 데이터의 단일 소유자입니다
// 하나의 뮤텍스로 전체 맵을 보호하며, 모든 조회는 독립적인 복사본을
// 반환하므로 호출자가 내부 시퀀스에 대한 참조를 가질 수 없습니다
type Store struct {
	mu     sync.Mutex
	series map[string]domain.BarList

	retention     time.Duration // 자동 정리에 사용하는 보존 기간
	sweepInterval time.Duration // 자동 정리 최소 간격
	lastSweep     time.Time
}

// Option은 Store 생성 옵션을 정의합니다
type Option func(*Store)

// WithSweepInterval은 자동 정리 최소 간격을 설정합니다
func WithSweepInterval(interval time.Duration) Option {
	return func(s *Store) {
		s.sweepInterval = interval
	}
}

// NewStore는 새로운 시계열 저장소를 생성합니다
// retention은 Store 호출 시 자동으로 수행되는 정리의 보존 기간입니다
func NewStore(retention time.Duration, opts ...Option) *Store {
	s := &Store{
		series:        make(map[string]domain.BarList),
		retention:     retention,
		sweepInterval: DefaultSweepInterval,
		lastSweep:     time.Now(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Store는 심볼의 기존 시퀀스에 bars를 병합합니다
// 타임스탬프가 같은 Bar는 나중에 들어온 값으로 교체되고 (last-write-wins)
// 병합 후 타임스탬프 오름차순으로 재정렬됩니다.
// 빈 배치는 에러 없이 무시됩니다.
func (s *Store) Store(symbol string, bars []domain.Bar) {
	if len(bars) == 0 {
		log.Printf("%s 심볼에 빈 데이터 저장 시도, 무시합니다", symbol)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.series[symbol]

	// 타임스탬프를 키로 병합, 들어온 값이 기존 값을 덮어씀
	merged := make(map[int64]domain.Bar, len(existing)+len(bars))
	for _, b := range existing {
		merged[b.Timestamp.UnixNano()] = b
	}
	for _, b := range bars {
		merged[b.Timestamp.UnixNano()] = b
	}

	combined := make(domain.BarList, 0, len(merged))
	for _, b := range merged {
		combined = append(combined, b)
	}
	sort.Slice(combined, func(i, j int) bool {
		return combined[i].Timestamp.Before(combined[j].Timestamp)
	})

	s.series[symbol] = combined

	// 마지막 정리 후 충분한 시간이 지났으면 만료 데이터 정리
	if time.Since(s.lastSweep) >= s.sweepInterval {
		s.evictExpiredLocked(s.retention)
	}
}

// Query는 가장 최근 maxCount개의 Bar를 복사본으로 반환합니다
// maxCount가 0 이하이거나 보유량보다 크면 전체를 반환합니다.
// 심볼에 데이터가 없으면 (nil, false)를 반환합니다.
func (s *Store) Query(symbol string, maxCount int) (domain.BarList, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bars, ok := s.series[symbol]
	if !ok || len(bars) == 0 {
		return nil, false
	}

	if maxCount <= 0 || maxCount >= len(bars) {
		return bars.Copy(), true
	}
	return bars[len(bars)-maxCount:].Copy(), true
}

// QueryRange는 [start, end] 구간 (양 끝 포함)의 Bar를 복사본으로 반환합니다
// 구간에 해당하는 데이터가 없으면 (nil, false)를 반환합니다
func (s *Store) QueryRange(symbol string, start, end time.Time) (domain.BarList, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bars, ok := s.series[symbol]
	if !ok || len(bars) == 0 {
		return nil, false
	}

	var filtered domain.BarList
	for _, b := range bars {
		if !b.Timestamp.Before(start) && !b.Timestamp.After(end) {
			filtered = append(filtered, b)
		}
	}

	if len(filtered) == 0 {
		return nil, false
	}
	return filtered, true
}

// LatestPrice는 가장 최근 Bar의 종가를 반환합니다
func (s *Store) LatestPrice(symbol string) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bars, ok := s.series[symbol]
	if !ok || len(bars) == 0 {
		return 0, false
	}
	return bars[len(bars)-1].Close, true
}

// LatestBar는 가장 최근 Bar를 반환합니다
func (s *Store) LatestBar(symbol string) (domain.Bar, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bars, ok := s.series[symbol]
	if !ok || len(bars) == 0 {
		return domain.Bar{}, false
	}
	return bars[len(bars)-1], true
}

// Age는 가장 최근 저장된 타임스탬프 이후 경과한 시간을 반환합니다
func (s *Store) Age(symbol string) (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bars, ok := s.series[symbol]
	if !ok || len(bars) == 0 {
		return 0, false
	}
	return time.Since(bars[len(bars)-1].Timestamp), true
}

// HasData는 심볼에 데이터가 있는지 확인합니다
func (s *Store) HasData(symbol string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	bars, ok := s.series[symbol]
	return ok && len(bars) > 0
}

// EvictExpired는 모든 심볼에서 now-retentionWindow보다 오래된 Bar를 제거합니다
// Bar가 하나도 남지 않은 심볼은 저장소에서 완전히 제거됩니다
func (s *Store) EvictExpired(retentionWindow time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictExpiredLocked(retentionWindow)
}

// evictExpiredLocked는 잠금을 보유한 상태에서 만료 데이터를 정리합니다
func (s *Store) evictExpiredLocked(retentionWindow time.Duration) {
	cutoff := time.Now().Add(-retentionWindow)

	for symbol, bars := range s.series {
		// 시퀀스는 정렬되어 있으므로 첫 유효 인덱스만 찾으면 됩니다
		idx := sort.Search(len(bars), func(i int) bool {
			return !bars[i].Timestamp.Before(cutoff)
		})

		if idx == len(bars) {
			delete(s.series, symbol)
			log.Printf("%s 심볼의 데이터가 모두 만료되어 제거했습니다", symbol)
			continue
		}

		if idx > 0 {
			s.series[symbol] = bars[idx:].Copy()
			log.Printf("%s 심볼의 만료 데이터 %d개 정리, %d개 유지", symbol, idx, len(bars)-idx)
		}
	}

	s.lastSweep = time.Now()
}

// ClearSymbol은 특정 심볼의 데이터를 모두 제거합니다
// 심볼이 존재했으면 true를 반환합니다
func (s *Store) ClearSymbol(symbol string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.series[symbol]; !ok {
		return false
	}
	delete(s.series, symbol)
	return true
}

// ClearAll은 모든 심볼의 데이터를 제거합니다
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.series = make(map[string]domain.BarList)
}

// SymbolStats는 심볼별 저장 현황을 담습니다
type SymbolStats struct {
	Bars        int       // 저장된 Bar 개수
	Oldest      time.Time // 가장 오래된 타임스탬프
	Newest      time.Time // 가장 최근 타임스탬프
	LatestPrice float64   // 가장 최근 종가
}

// Stats는 저장소 전체의 진단용 통계를 담습니다
type Stats struct {
	SymbolCount int                    // 심볼 개수
	TotalBars   int                    // 전체 Bar 개수
	Symbols     map[string]SymbolStats // 심볼별 상세
	LastSweep   time.Time              // 마지막 정리 시각
}

// Stats는 현재 저장 현황의 스냅샷을 반환합니다
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := Stats{
		SymbolCount: len(s.series),
		Symbols:     make(map[string]SymbolStats, len(s.series)),
		LastSweep:   s.lastSweep,
	}

	for symbol, bars := range s.series {
		stats.TotalBars += len(bars)
		if len(bars) == 0 {
			continue
		}
		stats.Symbols[symbol] = SymbolStats{
			Bars:        len(bars),
			Oldest:      bars[0].Timestamp,
			Newest:      bars[len(bars)-1].Timestamp,
			LatestPrice: bars[len(bars)-1].Close,
		}
	}

	return stats
}
