package indicator

import (
	"errors"
	"math"
	"testing"
	"time"
)

// 테스트용 가격 데이터 생성
func makePrices(baseTime time.Time, closes []float64) []PriceData {
	prices := make([]PriceData, len(closes))
	for i, c := range closes {
		prices[i] = PriceData{
			Time:   baseTime.Add(time.Minute * time.Duration(i)),
			Open:   c,
			High:   c + 0.5,
			Low:    c - 0.5,
			Close:  c,
			Volume: 1000,
		}
	}
	return prices
}

func TestEMA(t *testing.T) {
	baseTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("폐쇄형 수식 검증", func(t *testing.T) {
		// length=3 (alpha=0.5)에 대한 손계산 기대값
		prices := makePrices(baseTime, []float64{10, 11, 12, 11, 10})
		expected := []float64{10.0, 10.5, 11.25, 11.125, 10.5625}

		results, err := EMA(prices, EMAOption{Length: 3})
		if err != nil {
			t.Fatalf("EMA 계산 중 에러 발생: %v", err)
		}

		if len(results) != len(expected) {
			t.Fatalf("결과 개수가 다릅니다: %d != %d", len(results), len(expected))
		}

		for i, want := range expected {
			if !results[i].Valid {
				t.Errorf("인덱스 %d의 EMA가 미정의 상태입니다", i)
			}
			if math.Abs(results[i].Value-want) > 1e-4 {
				t.Errorf("인덱스 %d의 EMA = %v, 기대값 %v", i, results[i].Value, want)
			}
		}
	})

	t.Run("첫 값은 첫 종가로 시드", func(t *testing.T) {
		prices := makePrices(baseTime, []float64{42.5})

		results, err := EMA(prices, EMAOption{Length: 15})
		if err != nil {
			t.Fatalf("EMA 계산 중 에러 발생: %v", err)
		}
		if results[0].Value != 42.5 {
			t.Errorf("첫 EMA = %v, 기대값 42.5", results[0].Value)
		}
	})

	t.Run("잘못된 기간 거부", func(t *testing.T) {
		prices := makePrices(baseTime, []float64{10, 11})

		for _, length := range []int{0, -1} {
			_, err := EMA(prices, EMAOption{Length: length})
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Errorf("기간 %d에 대해 ValidationError가 발생해야 합니다, got %v", length, err)
			}
		}
	})

	t.Run("빈 입력 거부", func(t *testing.T) {
		_, err := EMA(nil, EMAOption{Length: 3})
		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Errorf("빈 입력에 대해 ValidationError가 발생해야 합니다, got %v", err)
		}
	})
}

func TestVWAP(t *testing.T) {
	t.Run("세션 경계에서 누적 초기화", func(t *testing.T) {
		// 1일차 2개, 2일차 2개
		day1 := time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC)
		day2 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

		prices := []PriceData{
			{Time: day1, High: 11, Low: 9, Close: 10, Open: 10, Volume: 100},
			{Time: day1.Add(time.Hour), High: 13, Low: 11, Close: 12, Open: 11, Volume: 200},
			{Time: day2, High: 21, Low: 19, Close: 20, Open: 20, Volume: 100},
			{Time: day2.Add(time.Hour), High: 23, Low: 21, Close: 22, Open: 21, Volume: 300},
		}

		results, err := VWAP(prices)
		if err != nil {
			t.Fatalf("VWAP 계산 중 에러 발생: %v", err)
		}

		// 2일차 첫 Bar의 VWAP는 1일차와 섞이지 않고 해당 Bar의 대표가격과 같아야 함
		wantDay2First := (21.0 + 19.0 + 20.0) / 3
		if math.Abs(results[2].Value-wantDay2First) > 1e-9 {
			t.Errorf("2일차 첫 VWAP = %v, 기대값 %v", results[2].Value, wantDay2First)
		}

		// 1일차 두 번째 Bar는 1일차 내 누적값
		tp1 := (11.0 + 9.0 + 10.0) / 3
		tp2 := (13.0 + 11.0 + 12.0) / 3
		wantDay1Second := (tp1*100 + tp2*200) / 300
		if math.Abs(results[1].Value-wantDay1Second) > 1e-9 {
			t.Errorf("1일차 두 번째 VWAP = %v, 기대값 %v", results[1].Value, wantDay1Second)
		}
	})

	t.Run("누적 거래량 0 구간은 미정의", func(t *testing.T) {
		baseTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

		prices := []PriceData{
			{Time: baseTime, High: 11, Low: 9, Close: 10, Open: 10, Volume: 0},
			{Time: baseTime.Add(time.Minute), High: 12, Low: 10, Close: 11, Open: 10, Volume: 0},
			{Time: baseTime.Add(2 * time.Minute), High: 13, Low: 11, Close: 12, Open: 11, Volume: 500},
			{Time: baseTime.Add(3 * time.Minute), High: 15, Low: 13, Close: 14, Open: 12, Volume: 500},
		}

		results, err := VWAP(prices)
		if err != nil {
			t.Fatalf("VWAP 계산 중 에러 발생: %v", err)
		}

		if results[0].Valid || results[1].Valid {
			t.Error("거래량이 누적되기 전의 VWAP는 미정의여야 합니다")
		}

		// 거래량이 누적된 시점부터 값이 정의되고, 앞선 0 거래량 Bar는
		// 누적 합계에 영향을 주지 않음
		tp3 := (13.0 + 11.0 + 12.0) / 3
		if !results[2].Valid || math.Abs(results[2].Value-tp3) > 1e-9 {
			t.Errorf("세 번째 VWAP = %+v, 기대값 %v", results[2], tp3)
		}

		tp4 := (15.0 + 13.0 + 14.0) / 3
		want4 := (tp3*500 + tp4*500) / 1000
		if !results[3].Valid || math.Abs(results[3].Value-want4) > 1e-9 {
			t.Errorf("네 번째 VWAP = %+v, 기대값 %v", results[3], want4)
		}
	})

	t.Run("타임스탬프 없는 입력은 단일 세션", func(t *testing.T) {
		prices := []PriceData{
			{High: 11, Low: 9, Close: 10, Open: 10, Volume: 100},
			{High: 13, Low: 11, Close: 12, Open: 11, Volume: 100},
		}

		results, err := VWAP(prices)
		if err != nil {
			t.Fatalf("VWAP 계산 중 에러 발생: %v", err)
		}

		tp1 := (11.0 + 9.0 + 10.0) / 3
		tp2 := (13.0 + 11.0 + 12.0) / 3
		want := (tp1 + tp2) / 2
		if math.Abs(results[1].Value-want) > 1e-9 {
			t.Errorf("두 번째 VWAP = %v, 기대값 %v (세션이 분리되면 안 됩니다)", results[1].Value, want)
		}
	})

	t.Run("빈 입력 거부", func(t *testing.T) {
		_, err := VWAP(nil)
		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Errorf("빈 입력에 대해 ValidationError가 발생해야 합니다, got %v", err)
		}
	})
}

func TestZLMA(t *testing.T) {
	baseTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("계단형 가격 변화에 EMA보다 빠르게 수렴", func(t *testing.T) {
		// 100에서 110으로의 계단형 변화
		closes := make([]float64, 30)
		for i := 0; i < 20; i++ {
			closes[i] = 100
		}
		for i := 20; i < 30; i++ {
			closes[i] = 110
		}
		prices := makePrices(baseTime, closes)

		opt := EMAOption{Length: 10}
		ema, err := EMA(prices, opt)
		if err != nil {
			t.Fatalf("EMA 계산 중 에러 발생: %v", err)
		}
		zlma, err := ZLMA(prices, opt)
		if err != nil {
			t.Fatalf("ZLMA 계산 중 에러 발생: %v", err)
		}

		// 계단 이후 각 시점에서 ZLMA가 새 가격에 더 가까워야 함
		for i := 21; i < 30; i++ {
			emaDist := math.Abs(110 - ema[i].Value)
			zlmaDist := math.Abs(110 - zlma[i].Value)
			if zlmaDist >= emaDist {
				t.Errorf("인덱스 %d: ZLMA 거리 %v >= EMA 거리 %v", i, zlmaDist, emaDist)
			}
		}
	})

	t.Run("잘못된 기간 거부", func(t *testing.T) {
		prices := makePrices(baseTime, []float64{10, 11})

		_, err := ZLMA(prices, EMAOption{Length: 0})
		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Errorf("ValidationError가 발생해야 합니다, got %v", err)
		}
	})
}
