package notify

import (
	"log"

	domain "github.com/curequeue/curequeue-server/internal/domain/appointment"
)

// Dispatcher queues notifications and delivers them on a worker goroutine.
// Delivery failures are logged and dropped; the booking or update that
// produced the notification has already landed and stays the source of truth.
type Dispatcher struct {
	mailer *Mailer
	queue  chan func() error
}

func NewDispatcher(mailer *Mailer) *Dispatcher {
	d := &Dispatcher{
		mailer: mailer,
		queue:  make(chan func() error, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for send := range d.queue {
		if err := send(); err != nil {
			log.Println("notify error:", err)
		}
	}
}

func (d *Dispatcher) enqueue(send func() error) {
	select {
	case d.queue <- send:
	default:
		// Full queue means mail is dropped, never that the API blocks.
		log.Println("notify queue full, dropping notification")
	}
}

func (d *Dispatcher) AppointmentConfirmed(n domain.Confirmation) {
	d.enqueue(func() error {
		return d.mailer.Confirmation(n.To, n.PatientName, n.DoctorName, n.TimeIST, n.WaitingTime)
	})
}

func (d *Dispatcher) CancelledByDoctor(n domain.Cancellation) {
	d.enqueue(func() error {
		return d.mailer.CancelledByDoctor(n.To, n.PatientName, n.DoctorName, n.Date, n.Time)
	})
}

func (d *Dispatcher) CancelledByPatient(n domain.Cancellation) {
	d.enqueue(func() error {
		return d.mailer.CancelledByPatient(n.To, n.PatientName, n.DoctorName, n.Date, n.Time)
	})
}

func (d *Dispatcher) WaitingTimeUpdated(n domain.WaitUpdate) {
	d.enqueue(func() error {
		return d.mailer.WaitingTimeUpdated(n.To, n.PatientName, n.DoctorName, n.StatusLabel, n.WaitingTime)
	})
}

// Compile-time check
var _ domain.Notifier = (*Dispatcher)(nil)
