package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// BarsIngestedTotal은 저장소에 수집된 Bar의 개수입니다
	BarsIngestedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "aurora_bars_ingested_total", Help: "저장소에 수집된 Bar 개수"},
		[]string{"symbol"},
	)

	// SignalsTotal은 감지된 크로스오버 시그널의 개수입니다
	SignalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "aurora_signals_total", Help: "감지된 크로스오버 시그널 개수"},
		[]string{"symbol", "direction"},
	)

	// FetchErrorsTotal은 시장 데이터 조회 실패 횟수입니다
	FetchErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "aurora_fetch_errors_total", Help: "시장 데이터 조회 실패 횟수"},
		[]string{"symbol"},
	)
)

func init() {
	prometheus.MustRegister(BarsIngestedTotal, SignalsTotal, FetchErrorsTotal)
}

// Serve는 /metrics 엔드포인트를 제공하는 HTTP 서버를 시작합니다
func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
