package handlers

import (
	"math/rand"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/curequeue/curequeue-server/internal/httperr"
	"github.com/curequeue/curequeue-server/internal/httpresp"
	"github.com/curequeue/curequeue-server/internal/middleware"
	"github.com/curequeue/curequeue-server/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type HomeVisitHandler struct {
	db *gorm.DB
}

func NewHomeVisitHandler(db *gorm.DB) *HomeVisitHandler {
	return &HomeVisitHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type RequestHomeVisitRequest struct {
	Address       string     `json:"address" binding:"required"`
	PreferredTime *time.Time `json:"preferred_time"`
	Notes         string     `json:"notes"`
}

type UpdateHomeVisitStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=new approved rejected completed"`
}

// ======================================================
// CREATE (patient)
// ======================================================

func (h *HomeVisitHandler) Create(c *gin.Context) {
	patientID := c.GetString(middleware.ContextUserID)

	var req RequestHomeVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Address is required.")
		return
	}

	// Rough dispatch estimate until a coordinator picks the request up.
	eta := 60 + rand.Intn(60)

	hv := models.HomeVisit{
		PatientID:     patientID,
		Address:       req.Address,
		PreferredTime: req.PreferredTime,
		Notes:         req.Notes,
		ETAMinutes:    eta,
		Status:        models.HomeVisitNew,
	}

	if err := h.db.Create(&hv).Error; err != nil {
		httperr.Internal(c, "failed_to_create_home_visit", "Server error.")
		return
	}

	httpresp.Created(c, gin.H{"request": hv})
}

// ======================================================
// LIST (admin)
// ======================================================

func (h *HomeVisitHandler) List(c *gin.Context) {
	var visits []models.HomeVisit
	if err := h.db.Order("created_at DESC").Find(&visits).Error; err != nil {
		httperr.Internal(c, "server_error", "Server error.")
		return
	}
	httpresp.OK(c, gin.H{"requests": visits})
}

// ======================================================
// STATUS (admin)
// ======================================================

func (h *HomeVisitHandler) UpdateStatus(c *gin.Context) {
	var req UpdateHomeVisitStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_status", "Status must be one of new, approved, rejected, completed.")
		return
	}

	var hv models.HomeVisit
	if err := h.db.First(&hv, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "home_visit_not_found", "Home visit request not found.")
		return
	}

	hv.Status = req.Status
	if err := h.db.Save(&hv).Error; err != nil {
		httperr.Internal(c, "failed_to_update_home_visit", "Server error.")
		return
	}

	httpresp.OK(c, gin.H{"request": hv})
}
