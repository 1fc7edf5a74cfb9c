package mailer

import (
	"gopkg.in/gomail.v2"
)

// Mailer sends plain-text notifications to listing owners over SMTP.
type Mailer struct {
	host     string
	port     int
	from     string
	password string
}

func New(host string, port int, from, password string) *Mailer {
	return &Mailer{host: host, port: port, from: from, password: password}
}

func (m *Mailer) SendListingCreated(toEmail, listingTitle string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "New Listing Created")
	msg.SetBody("text/plain", "Your listing '"+listingTitle+"' has been created successfully.")

	dialer := gomail.NewDialer(m.host, m.port, m.from, m.password)
	return dialer.DialAndSend(msg)
}
