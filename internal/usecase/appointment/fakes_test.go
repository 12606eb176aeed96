package appointment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	domain "github.com/curequeue/curequeue-server/internal/domain/appointment"
	"github.com/curequeue/curequeue-server/internal/models"
)

var errNotFound = errors.New("record not found")

// fakeRepo is an in-memory domain.Repository. It hands out copies and writes
// them back on update, like the real store does.
type fakeRepo struct {
	mu           sync.Mutex
	users        map[string]models.User
	appointments map[string]models.Appointment
	updates      int
	nextID       int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:        make(map[string]models.User),
		appointments: make(map[string]models.Appointment),
	}
}

func (f *fakeRepo) addUser(id, name, email, role string) {
	f.users[id] = models.User{
		Base:  models.Base{ID: id},
		Name:  name,
		Email: email,
		Role:  role,
	}
}

func (f *fakeRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, errNotFound
	}
	return &u, nil
}

func (f *fakeRepo) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ap, ok := f.appointments[id]
	if !ok {
		return nil, errNotFound
	}
	return &ap, nil
}

func (f *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if ap.ID == "" {
		f.nextID++
		ap.ID = fmt.Sprintf("ap-%d", f.nextID)
	}
	f.appointments[ap.ID] = *ap
	return nil
}

func (f *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.appointments[ap.ID]; !ok {
		return errNotFound
	}
	f.appointments[ap.ID] = *ap
	f.updates++
	return nil
}

func (f *fakeRepo) HighestToken(ctx context.Context, doctorID, date string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	highest := 0
	for _, ap := range f.appointments {
		if ap.DoctorID == doctorID && ap.Date == date && ap.Token > highest {
			highest = ap.Token
		}
	}
	return highest, nil
}

func (f *fakeRepo) CountActive(ctx context.Context, doctorID, date string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var count int64
	for _, ap := range f.appointments {
		if ap.DoctorID == doctorID && ap.Date == date && domain.IsActive(domain.Status(ap.Status)) {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) ListActivePartition(ctx context.Context, doctorID, date string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.DoctorID == doctorID && ap.Date == date && domain.IsActive(domain.Status(ap.Status)) {
			out = append(out, ap)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Token != out[j].Token {
			return out[i].Token < out[j].Token
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (f *fakeRepo) WithPartitionLock(ctx context.Context, doctorID, date string, fn func(domain.Repository) error) error {
	return fn(f)
}

func (f *fakeRepo) ListForPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.PatientID == patientID {
			out = append(out, ap)
		}
	}
	sortByDateTime(out)
	return out, nil
}

func (f *fakeRepo) ListForDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.DoctorID == doctorID {
			out = append(out, ap)
		}
	}
	sortByDateTime(out)
	return out, nil
}

func (f *fakeRepo) ListAll(ctx context.Context) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.Appointment, 0, len(f.appointments))
	for _, ap := range f.appointments {
		out = append(out, ap)
	}
	sortByDateTime(out)
	return out, nil
}

func sortByDateTime(aps []models.Appointment) {
	sort.Slice(aps, func(i, j int) bool {
		if aps[i].Date != aps[j].Date {
			return aps[i].Date < aps[j].Date
		}
		return aps[i].Time < aps[j].Time
	})
}

var _ domain.Repository = (*fakeRepo)(nil)

// fakeNotifier records everything the scheduler asks it to send.
type fakeNotifier struct {
	confirmations      []domain.Confirmation
	doctorCancels      []domain.Cancellation
	patientCancels     []domain.Cancellation
	waitingTimeUpdates []domain.WaitUpdate
}

func (f *fakeNotifier) AppointmentConfirmed(n domain.Confirmation) {
	f.confirmations = append(f.confirmations, n)
}

func (f *fakeNotifier) CancelledByDoctor(n domain.Cancellation) {
	f.doctorCancels = append(f.doctorCancels, n)
}

func (f *fakeNotifier) CancelledByPatient(n domain.Cancellation) {
	f.patientCancels = append(f.patientCancels, n)
}

func (f *fakeNotifier) WaitingTimeUpdated(n domain.WaitUpdate) {
	f.waitingTimeUpdates = append(f.waitingTimeUpdates, n)
}

var _ domain.Notifier = (*fakeNotifier)(nil)
