package signal

import (
	"fmt"
	"math"
	"time"

	"github.com/assist-by/aurora/internal/analysis/indicator"
	"github.com/assist-by/aurora/internal/domain"
)

// Detect는 주어진 데이터로부터 ZLMA/EMA 크로스오버 시그널을 감지합니다
// 크로스오버가 발생한 순서대로 시그널을 반환하며,
// 크로스오버가 없으면 빈 목록을 반환합니다 (에러 아님)
func (d *Detector) Detect(symbol string, prices []indicator.PriceData) ([]domain.Signal, error) {
	if len(prices) == 0 {
		return nil, &indicator.ValidationError{
			Field: "prices",
			Err:   fmt.Errorf("가격 데이터가 비어있습니다"),
		}
	}

	if len(prices) < d.emaLength {
		return nil, &InsufficientDataError{Required: d.emaLength, Got: len(prices)}
	}

	// 지표 계산
	ema, err := indicator.EMA(prices, indicator.EMAOption{Length: d.emaLength})
	if err != nil {
		return nil, fmt.Errorf("EMA 계산 실패: %w", err)
	}

	zlma, err := indicator.ZLMA(prices, indicator.EMAOption{Length: d.emaLength})
	if err != nil {
		return nil, fmt.Errorf("ZLMA 계산 실패: %w", err)
	}

	var signals []domain.Signal

	for i := 1; i < len(prices); i++ {
		// 네 값 중 하나라도 미정의면 건너뜀
		if !zlma[i-1].Valid || !ema[i-1].Valid || !zlma[i].Valid || !ema[i].Valid {
			continue
		}

		cross := checkCross(zlma[i].Value, ema[i].Value, zlma[i-1].Value, ema[i-1].Value)
		if cross == 0 {
			continue
		}

		signalType := domain.Buy
		if cross == -1 {
			signalType = domain.Sell
		}

		// 타임스탬프가 없는 시리즈는 현재 시각 사용
		timestamp := prices[i].Time
		if timestamp.IsZero() {
			timestamp = time.Now().UTC()
		}

		signals = append(signals, domain.Signal{
			Type:      signalType,
			Symbol:    symbol,
			Price:     prices[i].Close,
			Timestamp: timestamp,
			ZLMAValue: zlma[i].Value,
			EMAValue:  ema[i].Value,
			Confidence: calculateConfidence(
				zlma[i].Value, ema[i].Value,
				zlma[i-1].Value, ema[i-1].Value,
			),
		})
	}

	return signals, nil
}

// checkCross는 ZLMA와 EMA의 크로스를 확인합니다
// 반환값: 1 (상향돌파), -1 (하향돌파), 0 (크로스 없음)
// 이전 값에만 등호를 허용하는 비대칭 조건이라서
// 동일값이 이어지다가 처음으로 엄격한 부등호가 성립하는 시점에
// 정확히 한 번 시그널이 발생합니다
func checkCross(currentZLMA, currentEMA, prevZLMA, prevEMA float64) int {
	if prevZLMA <= prevEMA && currentZLMA > currentEMA {
		return 1 // 상향돌파
	}
	if prevZLMA >= prevEMA && currentZLMA < currentEMA {
		return -1 // 하향돌파
	}
	return 0 // 크로스 없음
}

// calculateConfidence는 크로스오버 강도에 기반한 신뢰도를 계산합니다
// 크로스오버 후 ZLMA와 EMA의 간격이 클수록,
// 이전 구간 대비 간격 변화가 결정적일수록 신뢰도가 높아집니다
func calculateConfidence(currentZLMA, currentEMA, prevZLMA, prevEMA float64) float64 {
	// 크로스오버 후 간격 (평균 가격 대비 비율)
	currentSeparation := math.Abs(currentZLMA - currentEMA)
	avgPrice := (currentZLMA + currentEMA) / 2
	separationPct := 0.0
	if avgPrice > 0 {
		separationPct = currentSeparation / avgPrice
	}

	// 크로스오버 직전 간격
	prevSeparation := math.Abs(prevZLMA - prevEMA)
	prevAvgPrice := (prevZLMA + prevEMA) / 2
	prevSeparationPct := 0.0
	if prevAvgPrice > 0 {
		prevSeparationPct = prevSeparation / prevAvgPrice
	}

	// 기본 신뢰도 0.5에서 시작
	confidence := 0.5

	// 현재 간격에 따라 가산 (최대 +0.3)
	// 외환 스프레드 규모에 맞춰 100을 곱해 스케일 조정
	confidence += math.Min(separationPct*100, 0.3)

	// 크로스오버가 결정적이면 가산 (최대 +0.2)
	if prevSeparationPct > 0 {
		decisiveness := separationPct / prevSeparationPct
		confidence += math.Min(decisiveness*0.1, 0.2)
	}

	// [0.0, 1.0] 범위로 제한
	return math.Min(math.Max(confidence, 0.0), 1.0)
}
