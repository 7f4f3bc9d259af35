package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/assist-by/aurora/internal/notification"
)

type Config struct {
	// 애플리케이션 설정
	App struct {
		Symbols        []string      `envconfig:"SYMBOLS" default:"EURUSD,GBPUSD"`
		FetchInterval  time.Duration `envconfig:"FETCH_INTERVAL" default:"1m"`
		CandleLimit    int           `envconfig:"CANDLE_LIMIT" default:"100"`
		EMALength      int           `envconfig:"EMA_LENGTH" default:"15"`
		RetentionHours int           `envconfig:"RETENTION_HOURS" default:"24"`
	}

	// 시장 데이터 API 설정
	Market struct {
		BaseURL  string        `envconfig:"MARKET_BASE_URL" default:"https://query1.finance.yahoo.com"`
		Interval string        `envconfig:"MARKET_INTERVAL" default:"1m"`
		Range    string        `envconfig:"MARKET_RANGE" default:"1d"`
		Timeout  time.Duration `envconfig:"MARKET_TIMEOUT" default:"10s"`
	}

	// 알림 설정
	Notification struct {
		Channels []string `envconfig:"NOTIFICATION_CHANNELS" default:"console"`
	}

	// 디스코드 웹훅 설정 (discord 채널 사용 시 필수)
	Discord struct {
		SignalWebhook string `envconfig:"DISCORD_SIGNAL_WEBHOOK"`
		ErrorWebhook  string `envconfig:"DISCORD_ERROR_WEBHOOK"`
		InfoWebhook   string `envconfig:"DISCORD_INFO_WEBHOOK"`
	}

	// 메트릭 설정
	Metrics struct {
		Enabled bool   `envconfig:"METRICS_ENABLED" default:"true"`
		Addr    string `envconfig:"METRICS_ADDR" default:":9090"`
	}
}

// Retention은 보존 기간을 time.Duration으로 반환합니다
func (c *Config) Retention() time.Duration {
	return time.Duration(c.App.RetentionHours) * time.Hour
}

// Channels는 설정된 알림 채널을 닫힌 집합으로 변환합니다
func (c *Config) Channels() ([]notification.Channel, error) {
	channels := make([]notification.Channel, 0, len(c.Notification.Channels))
	for _, name := range c.Notification.Channels {
		ch, err := notification.ParseChannel(name)
		if err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}
	return channels, nil
}

// ValidateConfig는 설정이 유효한지 확인합니다.
func ValidateConfig(cfg *Config) error {
	if len(cfg.App.Symbols) == 0 {
		return fmt.Errorf("모니터링할 심볼이 1개 이상 필요합니다")
	}

	if cfg.App.EMALength < 1 {
		return fmt.Errorf("EMA_LENGTH는 1 이상이어야 합니다: %d", cfg.App.EMALength)
	}

	if cfg.App.RetentionHours < 1 {
		return fmt.Errorf("RETENTION_HOURS는 1 이상이어야 합니다: %d", cfg.App.RetentionHours)
	}

	if cfg.App.FetchInterval < 10*time.Second {
		return fmt.Errorf("FETCH_INTERVAL은 10초 이상이어야 합니다")
	}

	if cfg.App.CandleLimit < cfg.App.EMALength {
		return fmt.Errorf("CANDLE_LIMIT은 EMA_LENGTH 이상이어야 합니다: %d < %d",
			cfg.App.CandleLimit, cfg.App.EMALength)
	}

	channels, err := cfg.Channels()
	if err != nil {
		return err
	}
	for _, ch := range channels {
		if ch == notification.ChannelDiscord && cfg.Discord.SignalWebhook == "" {
			return fmt.Errorf("discord 채널 사용 시 DISCORD_SIGNAL_WEBHOOK이 필요합니다")
		}
	}

	return nil
}

// LoadConfig는 환경변수에서 설정을 로드합니다.
func LoadConfig() (*Config, error) {
	// .env 파일은 선택 사항입니다
	_ = godotenv.Load()

	var cfg Config
	// 환경변수를 구조체로 파싱
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("환경변수 처리 실패: %w", err)
	}

	// 설정값 검증
	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("설정값 검증 실패: %w", err)
	}

	return &cfg, nil
}
