package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/corebank/finance-service/internal/config"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendRepaymentReminder sends a scheduled-repayment reminder email
func (s *Sender) SendRepaymentReminder(to, username string, dueDate time.Time, amount float64, currency string, overdue bool) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	if overdue {
		e.Subject = "Overdue Loan Repayment Notification"
	} else {
		e.Subject = "Upcoming Loan Repayment Reminder"
	}

	body := fmt.Sprintf("Dear %s,\n\n", username)
	if overdue {
		body += fmt.Sprintf(
			"Your scheduled repayment of %.2f %s was due on %s and is now overdue.\n"+
				"Please make the payment as soon as possible.\n",
			amount, currency, dueDate.Format("2006-01-02"),
		)
	} else {
		body += fmt.Sprintf(
			"This is a reminder that your scheduled repayment of %.2f %s is due on %s.\n"+
				"Please ensure sufficient funds are available.\n",
			amount, currency, dueDate.Format("2006-01-02"),
		)
	}
	body += "\nBest regards,\nFinance Service"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
