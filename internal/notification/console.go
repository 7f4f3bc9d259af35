package notification

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/assist-by/aurora/internal/domain"
)

// ConsoleNotifier는 표준 출력으로 알림을 전송합니다
type ConsoleNotifier struct {
	out io.Writer
}

// NewConsoleNotifier는 새로운 콘솔 알리미를 생성합니다
func NewConsoleNotifier() *ConsoleNotifier {
	return &ConsoleNotifier{out: os.Stdout}
}

// SendSignal은 시그널을 콘솔에 출력합니다
func (n *ConsoleNotifier) SendSignal(signal domain.Signal) error {
	emoji := "📈"
	if signal.IsSell() {
		emoji = "📉"
	}

	_, err := fmt.Fprintf(n.out, `
🔔 FOREX ALERT 🔔
Symbol: %s
Signal: %s %s
Price: $%.5f
Time: %s
ZLMA: %.5f | EMA: %.5f
Confidence: %.2f
%s
`,
		displaySymbol(signal.Symbol),
		signal.Type, emoji,
		signal.Price,
		signal.Timestamp.UTC().Format("2006-01-02 15:04:05 UTC"),
		signal.ZLMAValue, signal.EMAValue,
		signal.Confidence,
		strings.Repeat("=", 40),
	)
	return err
}

// SendError는 에러를 로그로 출력합니다
func (n *ConsoleNotifier) SendError(err error) error {
	log.Printf("에러 발생: %v", err)
	return nil
}

// SendInfo는 일반 정보를 콘솔에 출력합니다
func (n *ConsoleNotifier) SendInfo(message string) error {
	_, err := fmt.Fprintln(n.out, message)
	return err
}

// displaySymbol은 심볼을 표시용으로 변환합니다 (예: EURUSD -> EUR/USD)
func displaySymbol(symbol string) string {
	s := strings.TrimSuffix(symbol, "=X")
	if !strings.Contains(s, "/") && len(s) == 6 {
		return s[:3] + "/" + s[3:]
	}
	return s
}
