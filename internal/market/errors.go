package market

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// APIError는 시장 데이터 API가 반환한 에러를 정의합니다
type APIError struct {
	StatusCode int    // HTTP 상태 코드
	Message    string // API가 반환한 에러 메시지
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API 에러 (상태 코드: %d): %s", e.StatusCode, e.Message)
}

// IsRetryableError는 재시도로 해소될 가능성이 있는 에러인지 확인합니다
// 요율 제한, 서버 측 오류, 일시적 네트워크 오류가 해당합니다
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// 호출자가 취소한 요청은 재시도하지 않습니다
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429 || apiErr.StatusCode >= 500
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	// DNS 실패, 연결 거부 등 전송 계층 오류
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
