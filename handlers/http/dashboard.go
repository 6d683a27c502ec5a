package httpHandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rent-server/auth"
	"rent-server/entities"
	"rent-server/usecases"
)

// DashboardHandler serves the home screen: alerts, activity feed and the
// header profile.
type DashboardHandler struct {
	useCase *usecases.RentalUseCase
}

func NewDashboardHandler(useCase *usecases.RentalUseCase) *DashboardHandler {
	return &DashboardHandler{useCase: useCase}
}

// GetNotifications handles GET /api/v1/dashboard/notifications
func (h *DashboardHandler) GetNotifications(c *gin.Context) {
	alerts, err := h.useCase.Notifications(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  alerts,
		"count": len(alerts),
	})
}

// GetActivities handles GET /api/v1/activities
func (h *DashboardHandler) GetActivities(c *gin.Context) {
	activities, err := h.useCase.ListActivities(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  activities,
		"count": len(activities),
	})
}

// CreateActivity handles POST /api/v1/activities
func (h *DashboardHandler) CreateActivity(c *gin.Context) {
	var activity entities.Activity
	if !bindJSON(c, &activity) {
		return
	}
	activity.ID = ""
	if err := h.useCase.CreateActivity(c.Request.Context(), auth.UserID(c), &activity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": activity})
}

// GetProfile handles GET /api/v1/profile
func (h *DashboardHandler) GetProfile(c *gin.Context) {
	profile, err := h.useCase.GetProfile(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": profile})
}

// UpdateProfile handles PUT /api/v1/profile
func (h *DashboardHandler) UpdateProfile(c *gin.Context) {
	var patch entities.UserProfile
	if !bindJSON(c, &patch) {
		return
	}
	profile, err := h.useCase.UpdateProfile(c.Request.Context(), auth.UserID(c), &patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": profile})
}
