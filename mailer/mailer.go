package mailer

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"tourly/config"
	"tourly/models"
)

// Mailer delivers transactional mail through the configured SMTP relay.
type Mailer struct {
	dialer *gomail.Dialer
	from   string

	// operator receives a copy of every booking request.
	operator string
}

func New(cfg config.Config) *Mailer {
	return &Mailer{
		dialer:   gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:     cfg.EmailFrom,
		operator: cfg.OperatorEmail,
	}
}

func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		log.Printf("Could not send email to %s: %v", to, err)
		return err
	}
	return nil
}

// SendBookingRequested notifies the requester and the operator about a new
// booking. Failures are logged by Send; callers run this off the request path.
func (m *Mailer) SendBookingRequested(b models.Booking, postTitle string) {
	body := BookingRequestedBody(b, postTitle)
	if err := m.Send(b.Email, "Booking received: "+postTitle, body); err == nil {
		log.Printf("Booking confirmation sent to %s", b.Email)
	}
	if m.operator != "" {
		m.Send(m.operator, "New booking request: "+postTitle, body)
	}
}

func (m *Mailer) SendBookingApproved(b models.Booking, postTitle string) {
	body := fmt.Sprintf(
		"Hi %s,\n\nYour booking for %q on %s has been approved. See you there!\n",
		b.Name, postTitle, b.Date.Format("Jan 2, 2006"))
	m.Send(b.Email, "Booking approved: "+postTitle, body)
}

func (m *Mailer) SendPasswordReset(to, resetLink string) error {
	body := fmt.Sprintf(
		"You requested a password reset.\n\nOpen the link below to choose a new password:\n%s\n\nThe link expires in one hour. If you did not request this, ignore this email.\n",
		resetLink)
	return m.Send(to, "Password Reset", body)
}

// BookingRequestedBody renders the plain-text confirmation for a booking.
func BookingRequestedBody(b models.Booking, postTitle string) string {
	return fmt.Sprintf(
		"Hi %s,\n\nWe received your booking request for %q.\n\nDate: %s\nTravelers: %d\nSite: %s\nStatus: %s\n\nWe will email you again once the booking is reviewed.\n",
		b.Name, postTitle, b.Date.Format("Jan 2, 2006"), b.Travelers, b.TripSite, b.Status)
}
