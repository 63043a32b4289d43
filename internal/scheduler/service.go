package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/visibi/brand-monitor/internal/config"
)

// Runner performs one scheduled monitoring run
type Runner interface {
	RunScheduled() error
}

// Service handles scheduling of monitoring runs
type Service struct {
	config  *config.Config
	runner  Runner
	cron    *cron.Cron
	started bool
}

// NewService creates a new scheduler service
func NewService(cfg *config.Config, runner Runner) *Service {
	return &Service{
		config: cfg,
		runner: runner,
		cron:   cron.New(cron.WithSeconds()),
	}
}

// Expression returns the cron expression for a report schedule. ok is false
// when the schedule disables scheduled runs.
func Expression(schedule string) (expr string, ok bool, err error) {
	switch schedule {
	case "daily":
		// Run daily at 9 AM UTC
		return "0 0 9 * * *", true, nil
	case "weekly":
		// Run weekly on Monday at 9 AM UTC
		return "0 0 9 * * MON", true, nil
	case "", "off":
		return "", false, nil
	default:
		return "", false, fmt.Errorf("unknown report schedule %q", schedule)
	}
}

// Start begins the scheduled monitoring. Nothing is scheduled when the
// schedule is off or no brands are monitored.
func (s *Service) Start() error {
	cronExpression, ok, err := Expression(s.config.ReportSchedule)
	if err != nil {
		return err
	}
	if !ok {
		logrus.Info("Scheduled reports disabled")
		return nil
	}
	if len(s.config.MonitoredBrands) == 0 {
		logrus.Warnf("REPORT_SCHEDULE is %s but MONITORED_BRANDS is empty, scheduler not started", s.config.ReportSchedule)
		return nil
	}

	_, err = s.cron.AddFunc(cronExpression, s.run)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.started = true
	logrus.Infof("Scheduler started with %s schedule for %d brands", s.config.ReportSchedule, len(s.config.MonitoredBrands))
	return nil
}

func (s *Service) run() {
	logrus.Info("Starting scheduled monitoring run")
	if err := s.runner.RunScheduled(); err != nil {
		logrus.Errorf("Scheduled monitoring run failed: %v", err)
	}
}

// Running reports whether a schedule is active
func (s *Service) Running() bool {
	return s.started
}

// Stop stops the scheduler
func (s *Service) Stop() {
	if s.started {
		<-s.cron.Stop().Done()
		s.started = false
		logrus.Info("Scheduler stopped")
	}
}
