package market

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/assist-by/aurora/internal/analysis/indicator"
	"github.com/assist-by/aurora/internal/analysis/signal"
	"github.com/assist-by/aurora/internal/config"
	"github.com/assist-by/aurora/internal/domain"
	"github.com/assist-by/aurora/internal/metrics"
	"github.com/assist-by/aurora/internal/notification"
	"github.com/assist-by/aurora/internal/store"
)

// Fetcher는 심볼의 검증된 Bar를 조회하는 수집 협력자를 정의합니다
type Fetcher interface {
	FetchBars(ctx context.Context, symbol string) ([]domain.Bar, error)
}

// RetryConfig는 재시도 설정을 정의합니다
type RetryConfig struct {
	MaxRetries int           // 최대 재시도 횟수
	BaseDelay  time.Duration // 기본 대기 시간
	MaxDelay   time.Duration // 최대 대기 시간
	Factor     float64       // 대기 시간 증가 계수
}

// Collector는 시장 데이터 수집과 시그널 평가 사이클을 구현합니다
type Collector struct {
	fetcher  Fetcher
	store    *store.Store
	detector *signal.Detector
	notifier notification.Notifier
	config   *config.Config

	retry RetryConfig

	// 심볼별 마지막 알림 시각, 같은 크로스오버의 중복 알림을 방지
	lastAlerted map[string]time.Time

	mu sync.Mutex
}

// CollectorOption은 수집기의 옵션을 정의합니다
type CollectorOption func(*Collector)

// WithRetryConfig는 재시도 설정을 지정합니다
func WithRetryConfig(retry RetryConfig) CollectorOption {
	return func(c *Collector) {
		c.retry = retry
	}
}

// NewCollector는 새로운 데이터 수집기를 생성합니다
func NewCollector(fetcher Fetcher, store *store.Store, detector *signal.Detector,
	notifier notification.Notifier, cfg *config.Config, opts ...CollectorOption) *Collector {
	c := &Collector{
		fetcher:     fetcher,
		store:       store,
		detector:    detector,
		notifier:    notifier,
		config:      cfg,
		lastAlerted: make(map[string]time.Time),
		retry: RetryConfig{
			MaxRetries: 3,
			BaseDelay:  1 * time.Second,
			MaxDelay:   60 * time.Second,
			Factor:     2.0,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Collect는 한 번의 평가 사이클을 수행합니다:
// 수집 → 저장 → 윈도우 조회 → 크로스오버 감지 → 알림
func (c *Collector) Collect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var failed int

	for _, symbol := range c.config.App.Symbols {
		err := c.withRetry(ctx, fmt.Sprintf("%s 데이터 수집", symbol), func() error {
			return c.collectSymbol(ctx, symbol)
		})
		if err != nil {
			failed++
			log.Printf("%s 심볼 수집 실패: %v", symbol, err)
			if c.notifier != nil {
				if nerr := c.notifier.SendError(fmt.Errorf("%s 수집 실패: %w", symbol, err)); nerr != nil {
					log.Printf("에러 알림 전송 실패: %v", nerr)
				}
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d개 심볼의 수집에 실패했습니다", failed)
	}
	return nil
}

// collectSymbol은 단일 심볼에 대한 수집과 평가를 수행합니다
func (c *Collector) collectSymbol(ctx context.Context, symbol string) error {
	bars, err := c.fetcher.FetchBars(ctx, symbol)
	if err != nil {
		metrics.FetchErrorsTotal.WithLabelValues(symbol).Inc()
		return err
	}

	if len(bars) == 0 {
		log.Printf("%s 심볼에서 새 데이터가 없습니다", symbol)
		return nil
	}

	c.store.Store(symbol, bars)
	metrics.BarsIngestedTotal.WithLabelValues(symbol).Add(float64(len(bars)))
	log.Printf("%s 심볼의 데이터 %d개 수집 완료", symbol, len(bars))

	window, ok := c.store.Query(symbol, c.config.App.CandleLimit)
	if !ok {
		return nil
	}

	signals, err := c.detector.Detect(symbol, toPriceData(window))
	if err != nil {
		var insufficient *signal.InsufficientDataError
		if errors.As(err, &insufficient) {
			// 데이터가 더 쌓이면 자동으로 해소되므로 실패로 보지 않습니다
			log.Printf("%s 시그널 평가 보류: %v", symbol, err)
			return nil
		}
		return fmt.Errorf("시그널 감지 실패: %w", err)
	}

	for _, s := range signals {
		// 이미 알림을 보낸 크로스오버는 건너뜁니다
		if !s.Timestamp.After(c.lastAlerted[symbol]) {
			continue
		}

		metrics.SignalsTotal.WithLabelValues(symbol, s.Type.String()).Inc()
		log.Printf("%s 시그널 감지: %s @ %.5f (신뢰도 %.2f)", symbol, s.Type, s.Price, s.Confidence)

		if c.notifier != nil {
			if err := c.notifier.SendSignal(s); err != nil {
				log.Printf("시그널 알림 전송 실패 (%s): %v", symbol, err)
				continue
			}
		}
		c.lastAlerted[symbol] = s.Timestamp
	}

	return nil
}

// toPriceData는 BarList를 지표 계산용 PriceData로 변환합니다
func toPriceData(bars domain.BarList) []indicator.PriceData {
	prices := make([]indicator.PriceData, len(bars))
	for i, b := range bars {
		prices[i] = indicator.PriceData{
			Time:   b.Timestamp,
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		}
	}
	return prices
}

// withRetry는 재시도 로직을 구현한 래퍼 함수입니다
// 재시도 가능한 에러에 대해 지수 백오프와 지터를 적용합니다
func (c *Collector) withRetry(ctx context.Context, operation string, fn func() error) error {
	var lastErr error
	delay := c.retry.BaseDelay

	for attempt := 0; attempt <= c.retry.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := fn(); err != nil {
			lastErr = err

			if !IsRetryableError(err) {
				log.Printf("%s 실패 (재시도 불필요): %v", operation, err)
				return err
			}

			if attempt < c.retry.MaxRetries {
				wait := withJitter(delay)
				log.Printf("%s 실패 (시도 %d/%d), %v 후 재시도: %v",
					operation, attempt+1, c.retry.MaxRetries+1, wait.Round(time.Millisecond), err)

				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(wait):
				}

				delay = time.Duration(float64(delay) * c.retry.Factor)
				if delay > c.retry.MaxDelay {
					delay = c.retry.MaxDelay
				}
			}
			continue
		}

		return nil
	}

	return fmt.Errorf("%s: 최대 재시도 횟수 초과: %w", operation, lastErr)
}

// withJitter는 대기 시간에 ±20% 지터를 더합니다
func withJitter(d time.Duration) time.Duration {
	jitter := float64(d) * 0.2 * (rand.Float64() - 0.5)
	return d + time.Duration(jitter)
}
