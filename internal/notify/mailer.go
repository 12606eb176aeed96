package notify

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/curequeue/curequeue-server/internal/config"
)

// Mailer renders the per-scenario templates and delivers them over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.SMTPUser,
	}
}

func (m *Mailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	return m.dialer.DialAndSend(msg)
}

func (m *Mailer) Confirmation(to, patientName, doctorName, timeIST string, waitingTime int) error {
	body := fmt.Sprintf(
		`<p>Dear %s,</p>
<p>Your appointment has been successfully booked.</p>
<p><strong>Doctor:</strong> %s</p>
<p><strong>Appointment Time (IST):</strong> %s</p>
<p><strong>Estimated Waiting Time:</strong> %d minutes</p>
<p>Thank you for using CureQueue!</p>`,
		patientName, doctorName, timeIST, waitingTime,
	)
	return m.send(to, "Appointment Confirmation", body)
}

func (m *Mailer) CancelledByDoctor(to, patientName, doctorName, date, time string) error {
	body := fmt.Sprintf(
		`<p>Hello %s,</p>
<p>We regret to inform you that your appointment with Dr. %s on %s at %s has been cancelled by the doctor.</p>
<p>If needed, please book a new appointment at your convenience.</p>
<p>Thank you for using CureQueue.</p>
<p>Best regards,<br/>CureQueue Team</p>`,
		patientName, doctorName, date, time,
	)
	return m.send(to, "Your Appointment Has Been Cancelled", body)
}

func (m *Mailer) CancelledByPatient(to, patientName, doctorName, date, time string) error {
	body := fmt.Sprintf(
		`<p>Hello %s,</p>
<p>This is to confirm that your appointment with Dr. %s on %s at %s has been successfully cancelled as per your request.</p>
<p>If you wish, you can book a new appointment anytime through CureQueue.</p>
<p>Thank you,<br/>CureQueue Team</p>`,
		patientName, doctorName, date, time,
	)
	return m.send(to, "Your Appointment Has Been Successfully Cancelled", body)
}

func (m *Mailer) WaitingTimeUpdated(to, patientName, doctorName, statusLabel string, waitingTime int) error {
	body := fmt.Sprintf(
		`<p>Dear %s,</p>
<p>Your appointment with Dr. %s has been updated.</p>
<p><strong>Status:</strong> %s</p>
<p><strong>Estimated Wait Time:</strong> %d minutes</p>
<p>Thank you for using CureQueue.</p>`,
		patientName, doctorName, statusLabel, waitingTime,
	)
	return m.send(to, "Your Appointment Has Been Updated", body)
}
