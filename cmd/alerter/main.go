package main

import (
	"context"
	"flag"
	"log"
	"os"
	osSignal "os/signal"
	"syscall"
	"time"

	"github.com/assist-by/aurora/internal/analysis/signal"
	"github.com/assist-by/aurora/internal/config"
	"github.com/assist-by/aurora/internal/domain"
	"github.com/assist-by/aurora/internal/market"
	"github.com/assist-by/aurora/internal/metrics"
	"github.com/assist-by/aurora/internal/notification"
	"github.com/assist-by/aurora/internal/notification/discord"
	"github.com/assist-by/aurora/internal/scheduler"
	"github.com/assist-by/aurora/internal/store"
)

// CollectorTask는 데이터 수집 작업을 정의합니다
type CollectorTask struct {
	collector *market.Collector
}

// Execute는 데이터 수집 작업을 실행합니다
func (t *CollectorTask) Execute(ctx context.Context) error {
	return t.collector.Collect(ctx)
}

func main() {
	// 명령줄 플래그 정의
	testSignalFlag := flag.Bool("testsignal", false, "테스트 시그널 알림 전송 후 종료")
	flag.Parse()

	// 컨텍스트 생성
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 로그 설정
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("외환 알림 봇 시작...")

	// 설정 로드
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("설정 로드 실패: %v", err)
	}

	// 알림 채널 구성
	channels, err := cfg.Channels()
	if err != nil {
		log.Fatalf("알림 채널 구성 실패: %v", err)
	}

	var notifiers []notification.Notifier
	for _, ch := range channels {
		switch ch {
		case notification.ChannelConsole:
			notifiers = append(notifiers, notification.NewConsoleNotifier())
		case notification.ChannelDiscord:
			notifiers = append(notifiers, discord.NewClient(
				cfg.Discord.SignalWebhook,
				cfg.Discord.ErrorWebhook,
				cfg.Discord.InfoWebhook,
				discord.WithTimeout(10*time.Second),
			))
		}
	}
	notifier := notification.NewMultiNotifier(notifiers...)

	// 테스트 모드: 시그널 알림 전송 후 종료
	if *testSignalFlag {
		testSignal := domain.Signal{
			Type:       domain.Buy,
			Symbol:     "EURUSD",
			Price:      1.08542,
			Timestamp:  time.Now().UTC(),
			ZLMAValue:  1.08551,
			EMAValue:   1.08538,
			Confidence: 0.82,
		}

		if err := notifier.SendSignal(testSignal); err != nil {
			log.Fatalf("테스트 시그널 전송 실패: %v", err)
		}

		log.Println("테스트 시그널 전송 완료. 프로그램을 종료합니다.")
		os.Exit(0)
	}

	// 시작 알림 전송
	if err := notifier.SendInfo("🚀 외환 알림 봇이 시작되었습니다."); err != nil {
		log.Printf("시작 알림 전송 실패: %v", err)
	}

	// 시장 데이터 클라이언트 생성
	marketClient := market.NewClient(
		market.WithBaseURL(cfg.Market.BaseURL),
		market.WithInterval(cfg.Market.Interval, cfg.Market.Range),
		market.WithTimeout(cfg.Market.Timeout),
	)

	// 시계열 저장소 생성
	timeSeriesStore := store.NewStore(cfg.Retention())

	// 시그널 감지기 생성
	detector, err := signal.NewDetector(signal.DetectorConfig{
		EMALength: cfg.App.EMALength,
	})
	if err != nil {
		log.Fatalf("시그널 감지기 생성 실패: %v", err)
	}

	// 데이터 수집기 생성
	collector := market.NewCollector(
		marketClient,
		timeSeriesStore,
		detector,
		notifier,
		cfg,
		market.WithRetryConfig(market.RetryConfig{
			MaxRetries: 3,
			BaseDelay:  1 * time.Second,
			MaxDelay:   60 * time.Second,
			Factor:     2.0,
		}),
	)

	// 메트릭 서버 시작
	if cfg.Metrics.Enabled {
		metricsServer := metrics.Serve(cfg.Metrics.Addr)
		defer metricsServer.Close()
		log.Printf("메트릭 서버 시작: %s/metrics", cfg.Metrics.Addr)
	}

	// 수집 작업과 스케줄러 생성
	task := &CollectorTask{collector: collector}
	sched := scheduler.NewScheduler(cfg.App.FetchInterval, task)

	// 종료 시그널 처리
	sigChan := make(chan os.Signal, 1)
	osSignal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// 스케줄러 시작
	go func() {
		if err := sched.Start(ctx); err != nil {
			log.Printf("스케줄러 실행 중 에러 발생: %v", err)
			if err := notifier.SendError(err); err != nil {
				log.Printf("에러 알림 전송 실패: %v", err)
			}
		}
	}()

	// 시그널 대기
	sig := <-sigChan
	log.Printf("시스템 종료 신호 수신: %v", sig)

	// 스케줄러 중지
	sched.Stop()

	// 저장소 현황 로깅
	stats := timeSeriesStore.Stats()
	log.Printf("저장소 현황: 심볼 %d개, Bar %d개", stats.SymbolCount, stats.TotalBars)

	// 종료 알림 전송
	if err := notifier.SendInfo("👋 외환 알림 봇이 정상적으로 종료되었습니다."); err != nil {
		log.Printf("종료 알림 전송 실패: %v", err)
	}

	log.Println("프로그램을 종료합니다.")
}
