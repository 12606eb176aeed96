package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/curequeue/curequeue-server/internal/domain/appointment"
	"github.com/curequeue/curequeue-server/internal/httperr"
	"github.com/curequeue/curequeue-server/internal/httpresp"
	"github.com/curequeue/curequeue-server/internal/middleware"
	ucAppointment "github.com/curequeue/curequeue-server/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	book           *ucAppointment.BookAppointment
	cancel         *ucAppointment.CancelAppointment
	complete       *ucAppointment.CompleteAppointment
	setWaitingTime *ucAppointment.SetWaitingTime
	list           *ucAppointment.ListAppointments
}

func NewAppointmentHandler(
	book *ucAppointment.BookAppointment,
	cancel *ucAppointment.CancelAppointment,
	complete *ucAppointment.CompleteAppointment,
	setWaitingTime *ucAppointment.SetWaitingTime,
	list *ucAppointment.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		book:           book,
		cancel:         cancel,
		complete:       complete,
		setWaitingTime: setWaitingTime,
		list:           list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookAppointmentRequest struct {
	DoctorID   string `json:"doctor_id" binding:"required"`
	FacilityID string `json:"facility_id"`
	Date       string `json:"date" binding:"required"`
	Reason     string `json:"reason"`
}

type SetWaitingTimeRequest struct {
	WaitingTime *int `json:"waiting_time" binding:"required"`
}

// ======================================================
// HELPERS
// ======================================================

func actorFrom(c *gin.Context) domain.Actor {
	return domain.Actor{
		ID:   c.GetString(middleware.ContextUserID),
		Role: c.GetString(middleware.ContextUserRole),
	}
}

// writeSchedulingError maps business codes to HTTP statuses. Anything else is
// an infrastructure failure surfaced as an opaque 500.
func writeSchedulingError(c *gin.Context, err error) {
	switch code := httperr.BusinessCode(err); code {
	case "invalid_doctor":
		httperr.BadRequest(c, code, "Invalid doctor selected.")
	case "invalid_date":
		httperr.BadRequest(c, code, "Invalid date format. Use YYYY-MM-DD.")
	case "past_date":
		httperr.BadRequest(c, code, "Cannot book appointments for past dates.")
	case "invalid_state":
		httperr.BadRequest(c, code, "Appointment is already completed or cancelled.")
	case "invalid_waiting_time":
		httperr.BadRequest(c, code, "Waiting time cannot be negative.")
	case "token_conflict":
		httperr.BadRequest(c, code, "Booking conflicted with another request, please retry.")
	case "forbidden":
		httperr.Forbidden(c, code, "You don't have permission to perform this action.")
	case "not_found":
		httperr.NotFound(c, code, "Appointment not found.")
	default:
		httperr.Internal(c, "server_error", "Server error.")
	}
}

// ======================================================
// BOOK
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	actor := actorFrom(c)

	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Doctor and date are required.")
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), ucAppointment.BookAppointmentInput{
		PatientID:  actor.ID,
		DoctorID:   req.DoctorID,
		FacilityID: req.FacilityID,
		Date:       req.Date,
		Reason:     req.Reason,
	})
	if err != nil {
		writeSchedulingError(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"appointment":          ap,
		"appointment_time_ist": ap.Time,
		"waiting_time":         ap.WaitingTime,
	})
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	actor := actorFrom(c)

	appts, err := h.list.ForPatient(c.Request.Context(), actor.ID)
	if err != nil {
		httperr.Internal(c, "server_error", "Server error.")
		return
	}
	httpresp.List(c, appts)
}

func (h *AppointmentHandler) ListForDoctor(c *gin.Context) {
	actor := actorFrom(c)

	appts, err := h.list.ForDoctor(c.Request.Context(), actor.ID)
	if err != nil {
		httperr.Internal(c, "server_error", "Server error.")
		return
	}
	httpresp.List(c, appts)
}

func (h *AppointmentHandler) ListAll(c *gin.Context) {
	appts, err := h.list.All(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "server_error", "Server error.")
		return
	}
	httpresp.List(c, appts)
}

// ======================================================
// CANCEL / COMPLETE
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	ap, err := h.cancel.Execute(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		writeSchedulingError(c, err)
		return
	}
	httpresp.OK(c, gin.H{"appointment": ap})
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	ap, err := h.complete.Execute(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		writeSchedulingError(c, err)
		return
	}
	httpresp.OK(c, gin.H{"appointment": ap})
}

// ======================================================
// WAITING TIME (admin)
// ======================================================

func (h *AppointmentHandler) SetWaitingTime(c *gin.Context) {
	var req SetWaitingTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Waiting time is required.")
		return
	}

	ap, err := h.setWaitingTime.Execute(
		c.Request.Context(),
		actorFrom(c),
		c.Param("id"),
		*req.WaitingTime,
	)
	if err != nil {
		writeSchedulingError(c, err)
		return
	}
	httpresp.OK(c, gin.H{"appointment": ap})
}
