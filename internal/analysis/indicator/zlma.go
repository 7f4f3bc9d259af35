package indicator

// ZLMA는 제로-랙 이동평균을 계산합니다
// zlma = ema(close + (close - ema(close, length)), length)
// 즉 먼저 일반 EMA를 구해 랙(지연)을 측정하고, 그 랙을 종가에 더해
// 보정한 시리즈에 동일한 기간으로 EMA를 한 번 더 적용합니다.
func ZLMA(prices []PriceData, opt EMAOption) ([]Result, error) {
	emaResults, err := EMA(prices, opt)
	if err != nil {
		return nil, err
	}

	// 랙 보정 시리즈: close + (close - ema)
	adjusted := make([]PriceData, len(prices))
	for i, p := range prices {
		adjusted[i] = p
		adjusted[i].Close = p.Close + (p.Close - emaResults[i].Value)
	}

	return EMA(adjusted, opt)
}
