// Package sweeper runs the scheduled housekeeping jobs of the admin
// service.
package sweeper

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/shafe/handcraft/admin/internal/service"
	"github.com/shafe/handcraft/internal/log"
)

// Subscriptions lapse at most a day after their expiry; the sweep runs
// every midnight.
const subscriptionSchedule = "0 0 * * *"

type Sweeper struct {
	cron    *cron.Cron
	service service.AdminService
}

func NewSweeper(c context.Context, adminService service.AdminService) (*Sweeper, error) {
	sweeper := &Sweeper{cron: cron.New(), service: adminService}

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Sweeper").
		Logger()

	_, err := sweeper.cron.AddFunc(subscriptionSchedule, func() {
		logger := logger.With().Str(log.KeyProcess, "expiring lapsed subscriptions").Logger()
		jobCtx, cancel := context.WithTimeout(logger.WithContext(context.Background()), time.Minute)
		defer cancel()
		if _, err := sweeper.service.ExpireLapsedSubscriptions(jobCtx, time.Now()); err != nil {
			logger.Error().Err(err).Msg("failed expiring lapsed subscriptions")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed scheduling subscription sweep with error=%w", err)
	}
	return sweeper, nil
}

func (s *Sweeper) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for a running job to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}
