package scheduler

import (
	"context"
	"log"
	"time"
)

// Task는 스케줄러가 실행할 작업을 정의하는 인터페이스입니다
type Task interface {
	Execute(ctx context.Context) error
}

// Scheduler는 정해진 간격으로 작업을 실행하는 스케줄러입니다
// 시작 직후 한 번 실행하고, 이후에는 간격 경계에 맞춰 실행합니다
type Scheduler struct {
	interval time.Duration
	task     Task
	stopCh   chan struct{}
}

// NewScheduler는 새로운 스케줄러를 생성합니다
func NewScheduler(interval time.Duration, task Task) *Scheduler {
	return &Scheduler{
		interval: interval,
		task:     task,
		stopCh:   make(chan struct{}),
	}
}

// Start는 스케줄러를 시작합니다
func (s *Scheduler) Start(ctx context.Context) error {
	// 첫 실행은 대기 없이 바로 수행
	if err := s.task.Execute(ctx); err != nil {
		log.Printf("작업 실행 실패: %v", err)
	}

	timer := time.NewTimer(s.nextWait())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-s.stopCh:
			return nil

		case <-timer.C:
			if err := s.task.Execute(ctx); err != nil {
				// 에러가 발생해도 다음 주기에 다시 실행
				log.Printf("작업 실행 실패: %v", err)
			}

			timer.Reset(s.nextWait())
		}
	}
}

// nextWait는 다음 간격 경계까지의 대기 시간을 계산합니다
func (s *Scheduler) nextWait() time.Duration {
	now := time.Now()
	nextRun := now.Truncate(s.interval).Add(s.interval)
	wait := nextRun.Sub(now)

	log.Printf("다음 실행까지 %v 대기 (다음 실행: %s)",
		wait.Round(time.Second), nextRun.Format("15:04:05"))

	return wait
}

// Stop은 스케줄러를 중지합니다
func (s *Scheduler) Stop() {
	close(s.stopCh)
}
