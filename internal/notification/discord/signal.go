package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/assist-by/aurora/internal/domain"
	"github.com/assist-by/aurora/internal/notification"
)

// SendSignal은 크로스오버 시그널 알림을 Discord로 전송합니다
func (c *Client) SendSignal(s domain.Signal) error {
	var emoji string
	var color int

	switch s.Type {
	case domain.Buy:
		emoji = "📈"
		color = notification.ColorSuccess
	case domain.Sell:
		emoji = "📉"
		color = notification.ColorError
	default:
		emoji = "⚠️"
		color = notification.ColorInfo
	}

	// 기술적 지표 값
	technicalValues := fmt.Sprintf("```\n[ZLMA]: %.5f\n[EMA]: %.5f\n[간격]: %.5f```",
		s.ZLMAValue,
		s.EMAValue,
		s.ZLMAValue-s.EMAValue)

	embed := NewEmbed().
		SetTitle(fmt.Sprintf("%s %s %s", emoji, s.Type, s.Symbol)).
		SetDescription(fmt.Sprintf(`**시간**: %s
**가격**: $%.5f
**신뢰도**: %s %.0f%%`,
			s.Timestamp.UTC().Format("2006-01-02 15:04:05 UTC"),
			s.Price,
			confidenceBar(s.Confidence),
			s.Confidence*100,
		)).
		SetColor(color).
		SetFooter("Aurora Forex Alerts 🔔").
		SetTimestamp(s.Timestamp)

	embed.AddField("기술적 지표", technicalValues, false)

	return c.sendToWebhook(c.signalWebhook, WebhookMessage{
		Embeds: []Embed{*embed},
	})
}

// SendError는 에러 알림을 전송합니다
func (c *Client) SendError(err error) error {
	embed := NewEmbed().
		SetTitle("에러 발생").
		SetDescription(fmt.Sprintf("```%v```", err)).
		SetColor(notification.ColorError).
		SetFooter("Aurora Forex Alerts 🔔").
		SetTimestamp(time.Now())

	return c.sendToWebhook(c.errorWebhook, WebhookMessage{
		Embeds: []Embed{*embed},
	})
}

// SendInfo는 일반 정보 알림을 전송합니다
func (c *Client) SendInfo(message string) error {
	embed := NewEmbed().
		SetDescription(message).
		SetColor(notification.ColorInfo).
		SetFooter("Aurora Forex Alerts 🔔").
		SetTimestamp(time.Now())

	return c.sendToWebhook(c.infoWebhook, WebhookMessage{
		Embeds: []Embed{*embed},
	})
}

// confidenceBar는 신뢰도를 10칸 막대로 표현합니다
func confidenceBar(confidence float64) string {
	filled := int(confidence * 10)
	if filled > 10 {
		filled = 10
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}
