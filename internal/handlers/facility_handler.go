package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/curequeue/curequeue-server/internal/httperr"
	"github.com/curequeue/curequeue-server/internal/httpresp"
	"github.com/curequeue/curequeue-server/internal/models"
)

// FacilityHandler exposes the read side of the hospital directory so the
// booking and queue screens can resolve facility names. Directory
// administration happens elsewhere.
type FacilityHandler struct {
	db *gorm.DB
}

func NewFacilityHandler(db *gorm.DB) *FacilityHandler {
	return &FacilityHandler{db: db}
}

func (h *FacilityHandler) List(c *gin.Context) {
	var facilities []models.Facility

	q := h.db.Order("name ASC")
	if spec := c.Query("specialty"); spec != "" {
		q = q.Where("specialties::text LIKE ?", "%"+spec+"%")
	}

	if err := q.Find(&facilities).Error; err != nil {
		httperr.Internal(c, "server_error", "Server error.")
		return
	}
	httpresp.List(c, facilities)
}

func (h *FacilityHandler) Get(c *gin.Context) {
	var facility models.Facility
	if err := h.db.First(&facility, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "facility_not_found", "Facility not found.")
			return
		}
		httperr.Internal(c, "server_error", "Server error.")
		return
	}
	httpresp.OK(c, gin.H{"facility": facility})
}

// ListDoctors returns users with the doctor role for the booking form.
func (h *FacilityHandler) ListDoctors(c *gin.Context) {
	var doctors []models.User

	q := h.db.Where("role = ?", models.RoleDoctor).Order("name ASC")
	if spec := c.Query("speciality"); spec != "" {
		q = q.Where("speciality = ?", spec)
	}

	if err := q.Find(&doctors).Error; err != nil {
		httperr.Internal(c, "server_error", "Server error.")
		return
	}
	httpresp.List(c, doctors)
}
