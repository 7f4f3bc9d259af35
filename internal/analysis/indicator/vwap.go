package indicator

import "fmt"

// VWAP는 세션 기준 거래량 가중 평균 가격을 계산합니다
// 누적 (대표가격 × 거래량)을 누적 거래량으로 나눈 값이며,
// 타임스탬프의 달력 날짜가 바뀌는 시점마다 누적 합계를 초기화합니다.
// 세션 누적 거래량이 0인 동안에는 값을 정의하지 않되 (Valid=false)
// 누적 합계 자체는 초기화하지 않습니다.
func VWAP(prices []PriceData) ([]Result, error) {
	if len(prices) == 0 {
		return nil, &ValidationError{
			Field: "prices",
			Err:   fmt.Errorf("가격 데이터가 비어있습니다"),
		}
	}

	results := make([]Result, len(prices))

	var cumPriceVolume, cumVolume float64
	var sessionYear, sessionDay int

	for i, p := range prices {
		year, _, _ := p.Time.Date()
		day := p.Time.YearDay()

		// 달력 날짜가 바뀌면 새 세션 시작
		// 타임스탬프가 없는 입력 (영값 시간)은 전체가 하나의 세션이 됩니다
		if i == 0 || year != sessionYear || day != sessionDay {
			cumPriceVolume = 0
			cumVolume = 0
			sessionYear = year
			sessionDay = day
		}

		typicalPrice := (p.High + p.Low + p.Close) / 3
		cumPriceVolume += typicalPrice * p.Volume
		cumVolume += p.Volume

		if cumVolume > 0 {
			results[i] = Result{
				Value:     cumPriceVolume / cumVolume,
				Timestamp: p.Time,
				Valid:     true,
			}
		} else {
			// 0으로 나누는 대신 미정의 값으로 표시
			results[i] = Result{Timestamp: p.Time, Valid: false}
		}
	}

	return results, nil
}
