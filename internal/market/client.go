package market

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bitly/go-simplejson"

	"github.com/assist-by/aurora/internal/domain"
)

// Client는 야후 파이낸스 차트 API 클라이언트를 구현합니다
type Client struct {
	baseURL    string
	interval   string // 캔들 간격 (예: 1m, 5m, 1h)
	dataRange  string // 조회 범위 (예: 1d, 5d)
	httpClient *http.Client
}

// ClientOption은 클라이언트 생성 옵션을 정의합니다
type ClientOption func(*Client)

// WithTimeout은 HTTP 클라이언트의 타임아웃을 설정합니다
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithBaseURL은 기본 URL을 설정합니다
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithInterval은 캔들 간격과 조회 범위를 설정합니다
func WithInterval(interval, dataRange string) ClientOption {
	return func(c *Client) {
		c.interval = interval
		c.dataRange = dataRange
	}
}

// NewClient는 새로운 야후 파이낸스 API 클라이언트를 생성합니다
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    "https://query1.finance.yahoo.com",
		interval:   "1m",
		dataRange:  "1d",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FormatForexSymbol은 외환 심볼을 야후 파이낸스 형식으로 변환합니다
// (예: EURUSD -> EURUSD=X)
func FormatForexSymbol(symbol string) string {
	if !strings.HasSuffix(symbol, "=X") {
		return symbol + "=X"
	}
	return symbol
}

// FetchBars는 심볼의 최근 OHLCV 데이터를 조회합니다
// 검증에 실패한 Bar는 저장소에 도달하기 전에 버려집니다
func (c *Client) FetchBars(ctx context.Context, symbol string) ([]domain.Bar, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, url.PathEscape(FormatForexSymbol(symbol)))

	params := url.Values{}
	params.Set("interval", c.interval)
	params.Set("range", c.dataRange)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("요청 생성 실패: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (aurora-alerter)")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("요청 실행 실패: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("응답 읽기 실패: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	return c.parseChartResponse(symbol, body)
}

// parseChartResponse는 차트 API 응답을 Bar 목록으로 변환합니다
// 응답 구조: chart.result[0].timestamp[] 와
// chart.result[0].indicators.quote[0].{open,high,low,close,volume}[]
func (c *Client) parseChartResponse(symbol string, body []byte) ([]domain.Bar, error) {
	js, err := simplejson.NewJson(body)
	if err != nil {
		return nil, fmt.Errorf("JSON 파싱 실패: %w", err)
	}

	chart := js.Get("chart")

	// API 레벨 에러 확인
	if desc, err := chart.Get("error").Get("description").String(); err == nil && desc != "" {
		return nil, &APIError{
			StatusCode: http.StatusOK,
			Message:    desc,
		}
	}

	result := chart.Get("result").GetIndex(0)

	timestamps, err := result.Get("timestamp").Array()
	if err != nil || len(timestamps) == 0 {
		// 데이터가 없는 것은 에러가 아닙니다 (장 마감 등)
		return nil, nil
	}

	quote := result.Get("indicators").Get("quote").GetIndex(0)

	bars := make([]domain.Bar, 0, len(timestamps))
	dropped := 0

	for i := range timestamps {
		ts, err := result.Get("timestamp").GetIndex(i).Int64()
		if err != nil {
			dropped++
			continue
		}

		// 거래가 없던 구간은 null로 내려오므로 건너뜁니다
		open, errO := quote.Get("open").GetIndex(i).Float64()
		high, errH := quote.Get("high").GetIndex(i).Float64()
		low, errL := quote.Get("low").GetIndex(i).Float64()
		closePrice, errC := quote.Get("close").GetIndex(i).Float64()
		if errO != nil || errH != nil || errL != nil || errC != nil {
			dropped++
			continue
		}

		// 외환 데이터는 거래량이 null 또는 0인 경우가 많습니다
		volume, err := quote.Get("volume").GetIndex(i).Float64()
		if err != nil {
			volume = 0
		}

		bar, err := domain.NewBar(symbol, time.Unix(ts, 0).UTC(), open, high, low, closePrice, volume)
		if err != nil {
			var validationErr *domain.ValidationError
			if errors.As(err, &validationErr) {
				dropped++
				continue
			}
			return nil, err
		}

		bars = append(bars, bar)
	}

	if dropped > 0 {
		log.Printf("%s 심볼에서 불완전하거나 유효하지 않은 데이터 %d개를 버렸습니다", symbol, dropped)
	}

	return bars, nil
}
