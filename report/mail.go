package report

import (
	"bytes"
	"errors"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"hei-calculator/config"
	"hei-calculator/domain"
)

// ErrMailNotConfigured is returned by Send when no SMTP host is set.
var ErrMailNotConfigured = errors.New("smtp host is not configured")

const attachmentName = "hei-projection.pdf"

// Mailer sends PDF projection reports over SMTP.
type Mailer struct {
	cfg config.MailConfig
	log *logrus.Logger
}

func NewMailer(cfg config.MailConfig, log *logrus.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log}
}

// Send mails the projection summary to one recipient with pdf attached.
func (m *Mailer) Send(to string, proj domain.Projection, pdf []byte) error {
	if m.cfg.SMTPHost == "" {
		return ErrMailNotConfigured
	}

	e, err := m.buildMessage(to, proj, pdf)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%s", m.cfg.SMTPHost, m.cfg.SMTPPort)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		m.log.Errorf("Failed to send projection report to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.log.Infof("Projection report sent to %s", to)
	return nil
}

func (m *Mailer) buildMessage(to string, proj domain.Projection, pdf []byte) (*email.Email, error) {
	p := newPrinter()
	final := proj.Final()

	e := email.NewEmail()
	e.From = m.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("HEI projection: %d-year settlement %s", proj.HorizonYears, money(p, final.SettlementValue))

	body := fmt.Sprintf("Hello,\n\nAttached is your Home Equity Investment projection for a home valued at %s.\n\n",
		money(p, proj.Terms.HomeValue))
	body += fmt.Sprintf("After %d years the home is projected at %s and the settlement at %s (%s controls).\n",
		proj.HorizonYears, money(p, final.HomeValue), money(p, final.SettlementValue), final.Controlling())
	body += "\nThis projection is an estimate, not an offer.\n"
	e.Text = []byte(body)

	if len(pdf) > 0 {
		if _, err := e.Attach(bytes.NewReader(pdf), attachmentName, "application/pdf"); err != nil {
			return nil, fmt.Errorf("failed to attach report: %w", err)
		}
	}
	return e, nil
}
