package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rayroman1160/agencyos/pkg/email"
)

// DefaultCooldown is the minimum gap between two notifications for the same
// task unless the caller overrides it.
const DefaultCooldown = 24 * time.Hour

// SweepReport summarizes one sweep run.
type SweepReport struct {
	Notified          int `json:"notified"`
	SkippedNoAssignee int `json:"skipped_no_assignee"`
	SkippedCooldown   int `json:"skipped_cooldown"`
	Failed            int `json:"failed"`
}

// OverdueSweep scans open tasks past their due date and notifies assignees,
// at most once per cooldown window per task. It is a batch job: cron (or
// equivalent) invokes it, there is no event trigger for overdue-ness.
type OverdueSweep struct {
	tasks    TaskStore
	users    UserStore
	notifier email.Notifier
	log      *logrus.Logger

	// DryRun reports what would be sent without dispatching or stamping.
	DryRun bool
}

// NewOverdueSweep creates a sweep over the given collaborators.
func NewOverdueSweep(tasks TaskStore, users UserStore, notifier email.Notifier, log *logrus.Logger) *OverdueSweep {
	return &OverdueSweep{
		tasks:    tasks,
		users:    users,
		notifier: notifier,
		log:      log,
	}
}

// Run executes one sweep at the given instant. Candidates are processed
// independently: one task's failure is counted and the loop moves on. The
// returned error covers only the candidate query itself; everything after
// that lands in the report.
func (s *OverdueSweep) Run(ctx context.Context, now time.Time, cooldown time.Duration) (*SweepReport, error) {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	cutoff := now.Add(-cooldown)

	candidates, err := s.tasks.ListOverdue(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("query overdue tasks: %w", err)
	}

	report := &SweepReport{}
	for _, task := range candidates {
		logger := s.log.WithFields(logrus.Fields{"task": task.ID, "title": task.Title})

		if !task.AssigneeID.Valid {
			report.SkippedNoAssignee++
			continue
		}

		assignee, err := s.users.GetByID(ctx, task.AssigneeID.UUID)
		if err != nil {
			// A missing assignee means nobody to notify, not a failure.
			logger.WithError(err).Warn("could not resolve assignee")
			report.SkippedNoAssignee++
			continue
		}
		if assignee.Email == "" {
			report.SkippedNoAssignee++
			continue
		}

		// Already notified within the cooldown window.
		if task.LastNotificationSentAt.Valid && !task.LastNotificationSentAt.Time.Before(cutoff) {
			report.SkippedCooldown++
			continue
		}

		subject, body, err := email.RenderOverdue(task.Title, task.DueDate)
		if err != nil {
			logger.WithError(err).Error("render notification")
			report.Failed++
			continue
		}

		if s.DryRun {
			logger.WithField("to", assignee.Email).Info("dry run: would send overdue notification")
			report.Notified++
			continue
		}

		if err := s.notifier.Send(ctx, assignee.Email, subject, body); err != nil {
			// No stamp on failure: the task stays eligible next run.
			logger.WithError(err).Error("send notification")
			report.Failed++
			continue
		}

		if err := s.tasks.SetLastNotified(ctx, task.ID, now); err != nil {
			// The message went out but the stamp did not stick; the next run
			// may send a duplicate, which beats dropping it.
			logger.WithError(err).Error("stamp notification time")
			report.Failed++
			continue
		}

		logger.WithField("to", assignee.Email).Info("sent overdue notification")
		report.Notified++
	}

	return report, nil
}
