package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/romasdental/clinic-portal/internal/config"
	"github.com/romasdental/clinic-portal/internal/model"
)

type Service interface {
	SendBookingNotice(ctx context.Context, event model.BookingEvent) error
	SendCustom(ctx context.Context, to string, subject string, content string) error
}

// Dialer delivers composed messages.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPService mails the clinic inbox through an SMTP relay.
type SMTPService struct {
	dialer Dialer
	from   string
	to     string
	clinic string
}

func NewSMTPService(cfg config.SMTPConfig, clinic string) *SMTPService {
	return NewService(gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password), cfg.From, cfg.To, clinic)
}

func NewService(dialer Dialer, from, to, clinic string) *SMTPService {
	return &SMTPService{dialer: dialer, from: from, to: to, clinic: clinic}
}

// SendBookingNotice mails the clinic a copy of a booking event.
func (s *SMTPService) SendBookingNotice(ctx context.Context, event model.BookingEvent) error {
	if event.Booking == nil {
		return fmt.Errorf("booking event %s has no booking", event.Type)
	}
	return s.SendCustom(ctx, s.to, Subject(s.clinic, event), Body(event))
}

func (s *SMTPService) SendCustom(ctx context.Context, to string, subject string, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", content)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func Subject(clinic string, event model.BookingEvent) string {
	b := event.Booking
	switch event.Type {
	case model.BookingEventCreated:
		return fmt.Sprintf("[%s] New booking #%d", clinic, b.BookingNumber)
	case model.BookingEventStatusChanged:
		return fmt.Sprintf("[%s] Booking #%d is now %s", clinic, b.BookingNumber, b.Status)
	case model.BookingEventDeleted:
		return fmt.Sprintf("[%s] Booking #%d deleted", clinic, b.BookingNumber)
	default:
		return fmt.Sprintf("[%s] Booking #%d", clinic, b.BookingNumber)
	}
}

// Body prefers the message already composed for the event.
func Body(event model.BookingEvent) string {
	if event.Message != "" {
		return event.Message
	}
	b := event.Booking
	return fmt.Sprintf("Booking ID: #%d\nName: %s\nMobile: %s\nService: %s\nDate: %s\nTime: %s\nStatus: %s",
		b.BookingNumber, b.Name, b.Mobile, b.Service, b.Date, b.Time, b.Status)
}
