package signal

import "fmt"

// DetectorConfig는 시그널 감지기 설정을 정의합니다
type DetectorConfig struct {
	EMALength int // EMA/ZLMA 기간 (기본값: 15)
}

// Detector는 ZLMA/EMA 크로스오버 시그널 감지기를 정의합니다
// 내부 상태가 없는 순수 계산이므로 서로 다른 입력에 대해
// 동시에 호출해도 안전합니다
type Detector struct {
	emaLength int
}

// NewDetector는 새로운 시그널 감지기를 생성합니다
// 기간이 1 미만이면 에러를 반환합니다
func NewDetector(config DetectorConfig) (*Detector, error) {
	if config.EMALength < 1 {
		return nil, fmt.Errorf("EMA 기간은 1 이상이어야 합니다: %d", config.EMALength)
	}

	return &Detector{
		emaLength: config.EMALength,
	}, nil
}

// InsufficientDataError는 지표 계산에 필요한 기간보다
// 가용 데이터가 적을 때 발생하는 에러입니다
// 입력 자체는 유효하지만 시간적으로 아직 불완전한 상태를 나타냅니다
type InsufficientDataError struct {
	Required int // 필요한 데이터 개수
	Got      int // 현재 데이터 개수
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("데이터가 부족합니다. 필요: %d, 현재: %d", e.Required, e.Got)
}
