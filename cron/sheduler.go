package cron

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"stockorder.GO/core/logger"
)

// StartCron schedules every registered job and starts the scheduler. A panicking
// job is recovered and a run still in progress makes the next one skip.
func StartCron() (*cron.Cron, error) {
	cl := cron.PrintfLogger(zap.NewStdLog(logger.L().Named("cron")))
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	for name, j := range Jobs() {
		job := j
		if _, err := c.AddFunc(job.Schedule, func() { runLogged(job) }); err != nil {
			return nil, fmt.Errorf("cron: schedule job %s: %w", name, err)
		}
		logger.L().Info("cron job scheduled", zap.String("job", name), zap.String("schedule", job.Schedule))
	}
	c.Start()
	return c, nil
}

func runLogged(j Job) {
	start := time.Now()
	j.Run()
	logger.L().Debug("cron job finished", zap.String("job", j.Name), zap.Duration("took", time.Since(start)))
}
