package notifications

import "github.com/Rathore23/auth-microservice/domain"

// SMSSender delivers a text message
type SMSSender interface {
	Send(to, body string) error
}

// MailSender delivers an email
type MailSender interface {
	Send(to, subject, body string) error
}

// Gateway implements domain.NotificationService over an SMS and a mail channel
type Gateway struct {
	sms  SMSSender
	mail MailSender
}

// NewGateway composes the delivery channels
func NewGateway(sms SMSSender, mail MailSender) domain.NotificationService {
	return &Gateway{sms: sms, mail: mail}
}

// SendSMS implements domain.NotificationService
func (g *Gateway) SendSMS(to, message string) error {
	return g.sms.Send(to, message)
}

// SendEmail implements domain.NotificationService
func (g *Gateway) SendEmail(to, subject, body string) error {
	return g.mail.Send(to, subject, body)
}
