// File: internal/jobs/session_expiry.go
package jobs

import (
	"context"
	"fmt"
	"time"

	"customer_support_backend/internal/config"
	"customer_support_backend/internal/session"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SessionExpiryJob periodically removes expired sessions from storage.
// Expired sessions are already rejected at resolution time, so the purge is
// purely a storage hygiene concern.
type SessionExpiryJob struct {
	sessionService session.Service
	logger         *zap.Logger
	cfg            *config.Config
	cronScheduler  *cron.Cron
}

// NewSessionExpiryJob creates a new SessionExpiryJob.
func NewSessionExpiryJob(
	sessionService session.Service,
	logger *zap.Logger,
	cfg *config.Config,
) *SessionExpiryJob {
	scheduler := cron.New(cron.WithLogger(NewCronLogger(logger.Named("cron"))))

	return &SessionExpiryJob{
		sessionService: sessionService,
		logger:         logger.Named("SessionExpiryJob"),
		cfg:            cfg,
		cronScheduler:  scheduler,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *SessionExpiryJob) SetupAndStart() error {
	jobSpec := j.cfg.SessionPurgeJobSchedule
	if jobSpec == "" {
		j.logger.Warn("Session purge job schedule not defined (SESSION_PURGE_JOB_SCHEDULE). Job will not run.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule session purge job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Session purge job scheduled", zap.String("spec", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

func (j *SessionExpiryJob) runJob() {
	j.logger.Info("Starting session purge job run...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	purgedCount, err := j.sessionService.PurgeExpired(ctx)
	if err != nil {
		j.logger.Error("Session purge job run failed", zap.Error(err))
	} else {
		j.logger.Info("Session purge job run completed", zap.Int64("sessions_purged", purgedCount))
	}
}

// Stop gracefully stops the cron scheduler.
func (j *SessionExpiryJob) Stop() {
	if j.cronScheduler != nil {
		j.logger.Info("Stopping session purge job scheduler...")
		stopCtx := j.cronScheduler.Stop()
		select {
		case <-stopCtx.Done():
			j.logger.Info("Session purge job scheduler stopped gracefully.")
		case <-time.After(10 * time.Second):
			j.logger.Warn("Session purge job scheduler stop timed out.")
		}
	}
}

// --- Cron Logger Adapter ---

type cronLogger struct {
	zl *zap.Logger
}

// NewCronLogger adapts a zap.Logger to the cron.Logger interface.
func NewCronLogger(zl *zap.Logger) cron.Logger {
	return &cronLogger{zl: zl}
}

func (cl *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	cl.zl.Info(msg, cl.parseKeysAndValues(keysAndValues...)...)
}

func (cl *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	fields = append(fields, zap.Error(err))
	cl.zl.Error(msg, fields...)
}

func (cl *cronLogger) parseKeysAndValues(keysAndValues ...interface{}) []zap.Field {
	var fields []zap.Field
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), keysAndValues[i+1]))
		} else {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), "MISSING_VALUE"))
		}
	}
	return fields
}
