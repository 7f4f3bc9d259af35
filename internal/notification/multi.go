package notification

import (
	"errors"

	"github.com/assist-by/aurora/internal/domain"
)

// MultiNotifier는 여러 채널로 알림을 팬아웃합니다
// 하나 이상의 채널이 성공하면 전송은 성공으로 간주합니다
type MultiNotifier struct {
	notifiers []Notifier
}

// NewMultiNotifier는 새로운 다중 채널 알리미를 생성합니다
func NewMultiNotifier(notifiers ...Notifier) *MultiNotifier {
	return &MultiNotifier{notifiers: notifiers}
}

// SendSignal은 모든 채널로 시그널 알림을 전송합니다
func (m *MultiNotifier) SendSignal(signal domain.Signal) error {
	return m.fanout(func(n Notifier) error {
		return n.SendSignal(signal)
	})
}

// SendError는 모든 채널로 에러 알림을 전송합니다
func (m *MultiNotifier) SendError(err error) error {
	return m.fanout(func(n Notifier) error {
		return n.SendError(err)
	})
}

// SendInfo는 모든 채널로 일반 정보 알림을 전송합니다
func (m *MultiNotifier) SendInfo(message string) error {
	return m.fanout(func(n Notifier) error {
		return n.SendInfo(message)
	})
}

func (m *MultiNotifier) fanout(send func(Notifier) error) error {
	if len(m.notifiers) == 0 {
		return errors.New("등록된 알림 채널이 없습니다")
	}

	var errs []error
	for _, n := range m.notifiers {
		if err := send(n); err != nil {
			errs = append(errs, err)
		}
	}

	// 하나라도 성공했으면 성공으로 처리
	if len(errs) < len(m.notifiers) {
		return nil
	}
	return errors.Join(errs...)
}
