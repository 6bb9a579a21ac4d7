package service

import (
	"context"
	"time"

	"github.com/corebank/finance-service/internal/repository"
	"github.com/sirupsen/logrus"
)

// ReminderSender delivers repayment reminders. Implemented by the SMTP
// sender in utils/email.
type ReminderSender interface {
	SendRepaymentReminder(to, username string, dueDate time.Time, amount float64, currency string, overdue bool) error
}

// ReminderJob scans due scheduled repayments and emails loan owners. It is
// wired into cron and never mutates stored records.
type ReminderJob struct {
	store  repository.Store
	sender ReminderSender
	log    *logrus.Logger
}

// NewReminderJob initializes a new reminder job
func NewReminderJob(store repository.Store, sender ReminderSender, log *logrus.Logger) *ReminderJob {
	return &ReminderJob{store: store, sender: sender, log: log}
}

// Run implements cron.Job.
func (j *ReminderJob) Run() {
	now := time.Now()
	due, err := j.store.DueScheduledRepayments(context.Background(), now)
	if err != nil {
		j.log.Errorf("Reminder sweep failed: %v", err)
		return
	}

	sent := 0
	for _, d := range due {
		overdue := d.Repayment.DueDate.Before(now.Truncate(24 * time.Hour))
		err := j.sender.SendRepaymentReminder(d.Email, d.Username, d.Repayment.DueDate,
			d.Repayment.OutstandingAmount, d.Repayment.CurrencyCode, overdue)
		if err != nil {
			// One failed address must not abort the sweep.
			j.log.WithField("repayment_id", d.Repayment.ID).Errorf("Failed to send reminder: %v", err)
			continue
		}
		sent++
	}
	j.log.WithFields(logrus.Fields{"due": len(due), "sent": sent}).Info("Repayment reminder sweep finished")
}
