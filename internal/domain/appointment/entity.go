package appointment

import (
	"github.com/curequeue/curequeue-server/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	return nil
}

func Complete(ap *models.Appointment) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	return nil
}

// ServiceMinutes is the fixed per-patient service-time heuristic used for
// waiting-time estimates.
const ServiceMinutes = 5

// EstimateWait converts a queue position (0-based) into minutes.
func EstimateWait(position int) int {
	return position * ServiceMinutes
}
