package domain

import "time"

// SignalType은 트레이딩 시그널 유형을 정의합니다
type SignalType int

const (
	NoSignal SignalType = iota
	Buy
	Sell
)

// String은 SignalType의 문자열 표현을 반환합니다
func (s SignalType) String() string {
	switch s {
	case NoSignal:
		return "NoSignal"
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "Unknown"
	}
}

// Signal은 ZLMA/EMA 크로스오버에서 생성된 시그널 정보를 담습니다
// 생성 이후에는 변경되지 않으며 알림 계층에서 소비 후 폐기됩니다
type Signal struct {
	Type       SignalType // 시그널 유형 (BUY, SELL)
	Symbol     string     // 심볼 (예: EURUSD)
	Price      float64    // 크로스오버 발생 Bar의 종가
	Timestamp  time.Time  // 크로스오버 발생 시각
	ZLMAValue  float64    // 크로스오버 시점의 ZLMA 값
	EMAValue   float64    // 크로스오버 시점의 EMA 값
	Confidence float64    // 신뢰도 (0.0 ~ 1.0)
}

// IsValid는 시그널이 유효한지 확인합니다
func (s Signal) IsValid() bool {
	return s.Type != NoSignal && s.Symbol != "" && s.Price > 0 &&
		s.Confidence >= 0.0 && s.Confidence <= 1.0
}

// IsBuy는 시그널이 매수 시그널인지 확인합니다
func (s Signal) IsBuy() bool {
	return s.Type == Buy
}

// IsSell은 시그널이 매도 시그널인지 확인합니다
func (s Signal) IsSell() bool {
	return s.Type == Sell
}
