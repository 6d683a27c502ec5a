package httpHandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rent-server/auth"
	"rent-server/entities"
	"rent-server/usecases"
)

type PropertyHandler struct {
	useCase *usecases.RentalUseCase
}

func NewPropertyHandler(useCase *usecases.RentalUseCase) *PropertyHandler {
	return &PropertyHandler{useCase: useCase}
}

// GetAllProperties handles GET /api/v1/properties
func (h *PropertyHandler) GetAllProperties(c *gin.Context) {
	properties, err := h.useCase.ListProperties(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  properties,
		"count": len(properties),
	})
}

// CreateProperty handles POST /api/v1/properties
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	var property entities.Property
	if !bindJSON(c, &property) {
		return
	}
	property.ID = ""
	property.Rooms = nil
	if err := h.useCase.CreateProperty(c.Request.Context(), auth.UserID(c), &property); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Property created successfully",
		"data":    property,
	})
}

// UpdateProperty handles PUT /api/v1/properties/:id
func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	var patch entities.Property
	if !bindJSON(c, &patch) {
		return
	}
	property, err := h.useCase.UpdateProperty(c.Request.Context(), auth.UserID(c), c.Param("id"), &patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Property updated successfully",
		"data":    property,
	})
}

// DeleteProperty handles DELETE /api/v1/properties/:id
func (h *PropertyHandler) DeleteProperty(c *gin.Context) {
	if err := h.useCase.DeleteProperty(c.Request.Context(), auth.UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Property deleted successfully"})
}

// AddRoom handles POST /api/v1/properties/:id/rooms
func (h *PropertyHandler) AddRoom(c *gin.Context) {
	var room entities.Room
	if !bindJSON(c, &room) {
		return
	}
	room.ID = ""
	if err := h.useCase.AddRoom(c.Request.Context(), auth.UserID(c), c.Param("id"), &room); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Room added successfully",
		"data":    room,
	})
}

// UpdateRoom handles PUT /api/v1/properties/:id/rooms/:room_id
func (h *PropertyHandler) UpdateRoom(c *gin.Context) {
	var patch entities.Room
	if !bindJSON(c, &patch) {
		return
	}
	room, err := h.useCase.UpdateRoom(c.Request.Context(), auth.UserID(c), c.Param("id"), c.Param("room_id"), &patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Room updated successfully",
		"data":    room,
	})
}

// DeleteRoom handles DELETE /api/v1/properties/:id/rooms/:room_id
func (h *PropertyHandler) DeleteRoom(c *gin.Context) {
	if err := h.useCase.DeleteRoom(c.Request.Context(), auth.UserID(c), c.Param("id"), c.Param("room_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Room deleted successfully"})
}

// GetLastCleaning handles GET /api/v1/properties/:id/last-cleaning
func (h *PropertyHandler) GetLastCleaning(c *gin.Context) {
	date, err := h.useCase.LastCleaning(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"property_id":   c.Param("id"),
		"last_cleaning": date,
	})
}
