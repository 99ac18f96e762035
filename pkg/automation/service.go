// Package automation runs the processing pipeline unattended on a schedule.
package automation

import (
	"context"
	"log"
	"time"
)

// RunFunc executes one scheduled run.
type RunFunc func(ctx context.Context) error

// Service triggers runs according to a schedule until stopped.
type Service struct {
	schedule *Schedule
	run      RunFunc

	stop chan struct{}
	done chan struct{}
}

// NewService creates a scheduler around the given run function.
func NewService(schedule *Schedule, run RunFunc) *Service {
	return &Service{
		schedule: schedule,
		run:      run,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins the scheduling loop.
func (s *Service) Start() {
	go s.loop()
}

// Stop stops the loop and waits for it to exit. A run already in flight
// finishes first.
func (s *Service) Stop() {
	close(s.stop)
	<-s.done
}

func (s *Service) loop() {
	defer close(s.done)

	for {
		next := s.schedule.Next(time.Now())
		log.Printf("automation: next run at %s", next.Format(time.RFC3339))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-timer.C:
			if err := s.run(context.Background()); err != nil {
				log.Printf("automation: run failed: %v", err)
			}
		case <-s.stop:
			timer.Stop()
			return
		}
	}
}
