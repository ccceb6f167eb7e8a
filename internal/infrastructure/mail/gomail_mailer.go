package mail

import (
	"context"
	"fmt"
	"io"

	gomail "gopkg.in/gomail.v2"

	"github.com/almacen-pro/almacen-api/internal/application/ports"
	"github.com/almacen-pro/almacen-api/pkg/logger"
)

var _ ports.Mailer = (*GomailMailer)(nil)

// Config parámetros SMTP del correo saliente.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// GomailMailer implementa ports.Mailer sobre SMTP con gomail.
// SendFunc es el envío real; se puede sustituir en tests.
type GomailMailer struct {
	cfg      Config
	log      *logger.Logger
	SendFunc func(m ...*gomail.Message) error
}

// NewGomailMailer construye el mailer.
func NewGomailMailer(cfg Config, log *logger.Logger) *GomailMailer {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	return &GomailMailer{cfg: cfg, log: log, SendFunc: dialer.DialAndSend}
}

// Send arma y envía el correo. Los adjuntos binarios (PDF de orden) van como
// attachment MIME vía copy func, sin tocar disco.
func (s *GomailMailer) Send(ctx context.Context, msg ports.Message) error {
	if s.cfg.Host == "" {
		return fmt.Errorf("mail: SMTP no configurado")
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)
	for _, att := range msg.Attachments {
		content := att.Content
		m.Attach(att.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		}))
	}
	if err := s.SendFunc(m); err != nil {
		return fmt.Errorf("mail: enviar a %v: %w", msg.To, err)
	}
	s.log.Debug().Strs("to", msg.To).Str("subject", msg.Subject).Msg("correo enviado")
	return nil
}
