package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rent-server/auth"
	"rent-server/confs"
	"rent-server/repositories"
)

// StoreHandler exposes the caller's backend settings and store statistics.
type StoreHandler struct {
	stores   repositories.Source
	settings *confs.Settings
	policy   repositories.BackendPolicy
}

func NewStoreHandler(stores repositories.Source, settings *confs.Settings, policy repositories.BackendPolicy) *StoreHandler {
	return &StoreHandler{stores: stores, settings: settings, policy: policy}
}

type backendRequest struct {
	URL string `json:"url" binding:"required"`
	Key string `json:"key"`
}

// GetStoreStats handles GET /api/v1/store/stats
func (h *StoreHandler) GetStoreStats(c *gin.Context) {
	userID := auth.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	store, err := h.stores.For(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"stats":  store.Stats(),
	})
}

// GetBackend handles GET /api/v1/settings/backend. The key is never echoed.
func (h *StoreHandler) GetBackend(c *gin.Context) {
	userID := auth.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	own, err := h.settings.LoadOwn(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"configured": !own.Empty(),
		"url":        own.URL,
		"has_key":    own.Key != "",
	})
}

// SetBackend handles PUT /api/v1/settings/backend
func (h *StoreHandler) SetBackend(c *gin.Context) {
	userID := auth.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	var req backendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	backend := confs.Backend{URL: req.URL, Key: req.Key}
	if err := h.policy.Check(backend); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, repositories.ErrForbidden) {
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	if _, _, err := repositories.OptionsFor(backend, confs.Database{}); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.settings.Set(userID, backend); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

// ClearBackend handles DELETE /api/v1/settings/backend
func (h *StoreHandler) ClearBackend(c *gin.Context) {
	userID := auth.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	if err := h.settings.Clear(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
