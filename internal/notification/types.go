package notification

import (
	"fmt"

	"github.com/assist-by/aurora/internal/domain"
)

// 임베드 색상 상수
const (
	ColorSuccess = 0x00FF00 // 녹색
	ColorError   = 0xFF0000 // 빨간색
	ColorInfo    = 0x0000FF // 파란색
)

// Channel은 지원하는 알림 채널을 닫힌 집합으로 정의합니다
type Channel int

const (
	ChannelConsole Channel = iota
	ChannelDiscord
)

// String은 Channel의 문자열 표현을 반환합니다
func (c Channel) String() string {
	switch c {
	case ChannelConsole:
		return "console"
	case ChannelDiscord:
		return "discord"
	default:
		return "unknown"
	}
}

// ParseChannel은 설정 문자열을 Channel로 변환합니다
func ParseChannel(s string) (Channel, error) {
	switch s {
	case "console":
		return ChannelConsole, nil
	case "discord":
		return ChannelDiscord, nil
	default:
		return 0, fmt.Errorf("지원하지 않는 알림 채널: %s", s)
	}
}

// Notifier는 알림 전송 인터페이스를 정의합니다
// 구현체는 전달받은 Signal을 변경해서는 안 됩니다
type Notifier interface {
	// SendSignal은 트레이딩 시그널 알림을 전송합니다
	SendSignal(signal domain.Signal) error

	// SendError는 에러 알림을 전송합니다
	SendError(err error) error

	// SendInfo는 일반 정보 알림을 전송합니다
	SendInfo(message string) error
}
