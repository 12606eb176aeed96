package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/curequeue/curequeue-server/internal/cache"
	domain "github.com/curequeue/curequeue-server/internal/domain/appointment"
	"github.com/curequeue/curequeue-server/internal/httperr"
	"github.com/curequeue/curequeue-server/internal/httpresp"
	"github.com/curequeue/curequeue-server/internal/middleware"
	"github.com/curequeue/curequeue-server/internal/models"
	"github.com/curequeue/curequeue-server/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

// QueueHandler serves the per-facility live queue board. Reads go through the
// redis cache because waiting-room displays poll these endpoints constantly.
type QueueHandler struct {
	db    *gorm.DB
	cache *cache.QueueCache
	clock timezone.Clock
}

func NewQueueHandler(db *gorm.DB, qc *cache.QueueCache, clock timezone.Clock) *QueueHandler {
	return &QueueHandler{db: db, cache: qc, clock: clock}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateQueueRequest struct {
	NowServing int     `json:"now_serving"`
	ETAMinutes int     `json:"eta_minutes"`
	Emergency  bool    `json:"emergency"`
	DoctorID   *string `json:"doctor_id"`
}

// ======================================================
// READ (public)
// ======================================================

func (h *QueueHandler) Get(c *gin.Context) {
	facilityID := c.Param("facilityId")

	if q, ok := h.cache.Get(c.Request.Context(), facilityID); ok {
		httpresp.OK(c, gin.H{"queue": q})
		return
	}

	var q models.FacilityQueue
	if err := h.db.Where("facility_id = ?", facilityID).First(&q).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httpresp.OK(c, gin.H{"queue": nil})
			return
		}
		httperr.Internal(c, "server_error", "Server error.")
		return
	}

	h.cache.Set(c.Request.Context(), &q)
	httpresp.OK(c, gin.H{"queue": &q})
}

// ======================================================
// UPSERT (admin / doctor)
// ======================================================

func (h *QueueHandler) Update(c *gin.Context) {
	facilityID := c.Param("facilityId")

	var req UpdateQueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid queue payload.")
		return
	}

	var facility models.Facility
	if err := h.db.First(&facility, "id = ?", facilityID).Error; err != nil {
		httperr.NotFound(c, "facility_not_found", "Facility not found.")
		return
	}

	q := models.FacilityQueue{
		FacilityID: facilityID,
		DoctorID:   req.DoctorID,
		NowServing: req.NowServing,
		ETAMinutes: req.ETAMinutes,
		Emergency:  req.Emergency,
	}

	err := h.db.
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "facility_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"doctor_id", "now_serving", "eta_minutes", "emergency", "updated_at",
			}),
		}).
		Create(&q).Error
	if err != nil {
		httperr.Internal(c, "failed_to_update_queue", "Server error.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), facilityID)
	httpresp.OK(c, gin.H{"queue": &q})
}

// ======================================================
// PATIENT QUEUE STATUS
// ======================================================

// Status reports where the calling patient stands today: their active
// appointments plus the queue board of the facility they are visiting.
func (h *QueueHandler) Status(c *gin.Context) {
	patientID := c.GetString(middleware.ContextUserID)

	today, _ := timezone.Stamp(h.clock.Now())

	var appts []models.Appointment
	err := h.db.
		Preload("Doctor").
		Where(
			"patient_id = ? AND date = ? AND status IN ?",
			patientID, today,
			[]string{string(domain.StatusConfirmed), string(domain.StatusPending)},
		).
		Order("token ASC, time ASC").
		Find(&appts).Error
	if err != nil {
		httperr.Internal(c, "server_error", "Server error.")
		return
	}

	if len(appts) == 0 {
		httpresp.OK(c, gin.H{
			"in_queue": false,
			"message":  "No appointments for today",
		})
		return
	}

	entries := make([]gin.H, 0, len(appts))
	for i := range appts {
		entries = append(entries, gin.H{
			"id":           appts[i].ID,
			"doctor_name":  appts[i].Doctor.Name,
			"time":         appts[i].Time,
			"token":        appts[i].Token,
			"waiting_time": appts[i].WaitingTime,
			"status":       appts[i].Status,
		})
	}

	resp := gin.H{
		"in_queue":     true,
		"appointments": entries,
		"queue_status": nil,
	}

	if appts[0].FacilityID != nil {
		if q, ok := h.cache.Get(c.Request.Context(), *appts[0].FacilityID); ok {
			resp["queue_status"] = queueSnapshot(q)
		} else {
			var q models.FacilityQueue
			if err := h.db.Where("facility_id = ?", *appts[0].FacilityID).First(&q).Error; err == nil {
				h.cache.Set(c.Request.Context(), &q)
				resp["queue_status"] = queueSnapshot(&q)
			}
		}
	}

	httpresp.OK(c, resp)
}

func queueSnapshot(q *models.FacilityQueue) gin.H {
	return gin.H{
		"now_serving": q.NowServing,
		"eta_minutes": q.ETAMinutes,
		"emergency":   q.Emergency,
	}
}
