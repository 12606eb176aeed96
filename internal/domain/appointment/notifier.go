package appointment

// Notification payloads. The scheduler only builds these and hands them to
// the Notifier; delivery is fire-and-forget and never fails an operation.

type Confirmation struct {
	To          string
	PatientName string
	DoctorName  string
	TimeIST     string
	WaitingTime int
}

type Cancellation struct {
	To          string
	PatientName string
	DoctorName  string
	Date        string
	Time        string
}

type WaitUpdate struct {
	To          string
	PatientName string
	DoctorName  string
	StatusLabel string
	WaitingTime int
}

type Notifier interface {
	AppointmentConfirmed(n Confirmation)
	CancelledByDoctor(n Cancellation)
	CancelledByPatient(n Cancellation)
	WaitingTimeUpdated(n WaitUpdate)
}
