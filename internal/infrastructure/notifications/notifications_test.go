package notifications

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type captured struct {
	addr string
	auth smtp.Auth
	from string
	to   []string
	msg  string
}

func newCapturingMailer(host string, err error) (*SMTPMailer, *captured) {
	m := NewSMTPMailer(host, "587", "noreply@example.com", "pw", "", zap.NewNop())
	c := &captured{}
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		c.addr, c.auth, c.from, c.to, c.msg = addr, a, from, to, string(msg)
		return err
	}
	return m, c
}

func TestSMTPMailer_Send(t *testing.T) {
	m, c := newCapturingMailer("smtp.example.com", nil)

	require.NoError(t, m.Send("a@x.com", "Email Verification", "Hello Alice"))
	assert.Equal(t, "smtp.example.com:587", c.addr)
	assert.NotNil(t, c.auth)
	assert.Equal(t, "noreply@example.com", c.from)
	assert.Equal(t, []string{"a@x.com"}, c.to)
	assert.True(t, strings.HasPrefix(c.msg, "From: noreply@example.com\r\nTo: a@x.com\r\nSubject: Email Verification\r\n"))
	assert.True(t, strings.HasSuffix(c.msg, "\r\n\r\nHello Alice\r\n"))
}

func TestSMTPMailer_Disabled(t *testing.T) {
	m, c := newCapturingMailer("", errors.New("must not be called"))
	require.NoError(t, m.Send("a@x.com", "Reset Password", "link"))
	assert.Empty(t, c.addr)
}

func TestSMTPMailer_Failure(t *testing.T) {
	m, _ := newCapturingMailer("smtp.example.com", errors.New("421 service not available"))
	err := m.Send("a@x.com", "s", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "421")
}

func TestTwilioSMS_DisabledWithoutSender(t *testing.T) {
	s := NewTwilioSMS("AC123", "token", "", zap.NewNop())
	assert.NoError(t, s.Send("+15550001", "OTP is 1234."))
}

type recorder struct {
	calls []string
	err   error
}

func (r *recorder) Send(to, body string) error {
	r.calls = append(r.calls, to+"|"+body)
	return r.err
}

type mailRecorder struct{ calls []string }

func (r *mailRecorder) Send(to, subject, body string) error {
	r.calls = append(r.calls, to+"|"+subject)
	return nil
}

func TestGateway_RoutesByChannel(t *testing.T) {
	sms := &recorder{err: errors.New("twilio 400")}
	mail := &mailRecorder{}
	g := NewGateway(sms, mail)

	assert.Error(t, g.SendSMS("+15550001", "OTP is 1234."))
	assert.NoError(t, g.SendEmail("a@x.com", "Email Verification", "body"))

	assert.Equal(t, []string{"+15550001|OTP is 1234."}, sms.calls)
	assert.Equal(t, []string{"a@x.com|Email Verification"}, mail.calls)
}
