package domain

import (
	"fmt"
	"time"
)

// Bar는 하나의 OHLCV 관측값을 표현합니다
type Bar struct {
	Symbol    string    // 심볼 (예: EURUSD)
	Timestamp time.Time // 관측 시각
	Open      float64   // 시가
	High      float64   // 고가
	Low       float64   // 저가
	Close     float64   // 종가
	Volume    float64   // 거래량
}

// NewBar는 검증된 Bar를 생성합니다
// 가격이 0 이하이거나 고가/저가가 시가/종가와 모순되면 ValidationError를 반환합니다
func NewBar(symbol string, timestamp time.Time, open, high, low, close, volume float64) (Bar, error) {
	b := Bar{
		Symbol:    symbol,
		Timestamp: timestamp,
		Open:      open,
		High:      high,
		Low:       low,
		Close:     close,
		Volume:    volume,
	}

	if err := b.Validate(); err != nil {
		return Bar{}, err
	}

	return b, nil
}

// Validate는 Bar의 불변 조건을 검증합니다
func (b Bar) Validate() error {
	if b.Symbol == "" {
		return &ValidationError{
			Field: "Symbol",
			Err:   fmt.Errorf("심볼이 비어있습니다"),
		}
	}

	if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
		return &ValidationError{
			Field: "Price",
			Err:   fmt.Errorf("모든 가격은 0보다 커야 합니다: O=%g H=%g L=%g C=%g", b.Open, b.High, b.Low, b.Close),
		}
	}

	if b.High < max(b.Open, b.Close) || b.Low > min(b.Open, b.Close) {
		return &ValidationError{
			Field: "HighLow",
			Err:   fmt.Errorf("고가/저가가 시가/종가와 모순됩니다: O=%g H=%g L=%g C=%g", b.Open, b.High, b.Low, b.Close),
		}
	}

	if b.Volume < 0 {
		return &ValidationError{
			Field: "Volume",
			Err:   fmt.Errorf("거래량은 음수일 수 없습니다: %g", b.Volume),
		}
	}

	return nil
}

// TypicalPrice는 대표 가격 (H+L+C)/3 을 반환합니다
func (b Bar) TypicalPrice() float64 {
	return (b.High + b.Low + b.Close) / 3
}

// BarList는 시간순으로 정렬된 Bar 목록입니다
type BarList []Bar

// GetLastBar는 가장 최근 Bar를 반환합니다
func (bl BarList) GetLastBar() (Bar, bool) {
	if len(bl) == 0 {
		return Bar{}, false
	}
	return bl[len(bl)-1], true
}

// GetPriceAtIndex는 특정 인덱스의 종가를 반환합니다
func (bl BarList) GetPriceAtIndex(index int) (float64, bool) {
	if index < 0 || index >= len(bl) {
		return 0, false
	}
	return bl[index].Close, true
}

// Copy는 목록의 독립적인 복사본을 반환합니다
func (bl BarList) Copy() BarList {
	if bl == nil {
		return nil
	}
	out := make(BarList, len(bl))
	copy(out, bl)
	return out
}

// ValidationError는 입력값 검증 에러를 정의합니다
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("유효하지 않은 %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
