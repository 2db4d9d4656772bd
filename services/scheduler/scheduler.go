// Package scheduler runs the app's periodic jobs.
package scheduler

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/school"
	"github.com/vidyasetu/backend/core/subscription"
)

const jobTimeout = 4 * time.Minute

type Scheduler struct {
	cron    *cron.Cron
	schools *school.Service
	logger  core.Logger
	days    int
}

// New schedules the subscription reminder on conf.SubscriptionReminderCron, evaluated in IST.
func New(conf *core.Config, schools *school.Service, logger core.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(cron.WithLocation(core.IST), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		schools: schools,
		logger:  logger,
		days:    conf.SubscriptionReminderDays,
	}
	_, err := s.cron.AddFunc(conf.SubscriptionReminderCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		if _, err := s.RemindExpiring(ctx, core.TodayIST()); err != nil {
			s.logger.Error("subscription reminder failed", err)
		}
	})
	if err != nil {
		return nil, errors.Wrapf(err, "scheduling subscription reminder %q", conf.SubscriptionReminderCron)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// RemindExpiring logs every active school whose subscription ends within the reminder window.
func (s *Scheduler) RemindExpiring(ctx context.Context, today core.Date) ([]school.School, error) {
	schools, err := s.schools.QueryAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying schools")
	}
	expiring := subscription.ExpiringWithin(schools, today, s.days)
	for _, sch := range expiring {
		s.logger.Warn("school subscription expiring soon", map[string]interface{}{
			"school_id":   sch.ID,
			"school_code": sch.Code,
			"ends_on":     sch.SubscriptionEnd.String(),
		})
	}
	return expiring, nil
}
