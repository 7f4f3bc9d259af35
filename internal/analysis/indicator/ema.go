package indicator

import "fmt"

// EMAOption은 EMA 계산에 필요한 옵션을 정의합니다
type EMAOption struct {
	Length int // 기간
}

// ValidateEMAOption은 EMA 옵션을 검증합니다
func ValidateEMAOption(opt EMAOption) error {
	if opt.Length < 1 {
		return &ValidationError{
			Field: "Length",
			Err:   fmt.Errorf("기간은 1 이상이어야 합니다: %d", opt.Length),
		}
	}
	return nil
}

// EMA는 지수이동평균을 계산합니다
// 첫 번째 값은 첫 종가로 시드하고 이후는 표준 재귀식을 따릅니다:
// ema[i] = alpha*close[i] + (1-alpha)*ema[i-1], alpha = 2/(length+1)
func EMA(prices []PriceData, opt EMAOption) ([]Result, error) {
	if err := ValidateEMAOption(opt); err != nil {
		return nil, err
	}

	if len(prices) == 0 {
		return nil, &ValidationError{
			Field: "prices",
			Err:   fmt.Errorf("가격 데이터가 비어있습니다"),
		}
	}

	alpha := 2.0 / float64(opt.Length+1)

	results := make([]Result, len(prices))
	results[0] = Result{
		Value:     prices[0].Close,
		Timestamp: prices[0].Time,
		Valid:     true,
	}

	for i := 1; i < len(prices); i++ {
		ema := alpha*prices[i].Close + (1-alpha)*results[i-1].Value
		results[i] = Result{
			Value:     ema,
			Timestamp: prices[i].Time,
			Valid:     true,
		}
	}

	return results, nil
}
