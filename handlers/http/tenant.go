package httpHandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rent-server/auth"
	"rent-server/entities"
	"rent-server/usecases"
)

type TenantHandler struct {
	useCase *usecases.RentalUseCase
}

func NewTenantHandler(useCase *usecases.RentalUseCase) *TenantHandler {
	return &TenantHandler{useCase: useCase}
}

// GetAllTenants handles GET /api/v1/tenants?q=&status=
func (h *TenantHandler) GetAllTenants(c *gin.Context) {
	tenants, err := h.useCase.ListTenants(c.Request.Context(), auth.UserID(c), c.Query("q"), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  tenants,
		"count": len(tenants),
	})
}

// GetTenant handles GET /api/v1/tenants/:id
func (h *TenantHandler) GetTenant(c *gin.Context) {
	tenant, err := h.useCase.GetTenant(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": tenant})
}

// CreateTenant handles POST /api/v1/tenants
func (h *TenantHandler) CreateTenant(c *gin.Context) {
	var tenant entities.Tenant
	if !bindJSON(c, &tenant) {
		return
	}
	tenant.ID = ""
	if err := h.useCase.CreateTenant(c.Request.Context(), auth.UserID(c), &tenant); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Tenant created successfully",
		"data":    tenant,
	})
}

// UpdateTenant handles PUT /api/v1/tenants/:id
func (h *TenantHandler) UpdateTenant(c *gin.Context) {
	var patch entities.TenantPatch
	if !bindJSON(c, &patch) {
		return
	}
	tenant, err := h.useCase.UpdateTenant(c.Request.Context(), auth.UserID(c), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Tenant updated successfully",
		"data":    tenant,
	})
}

// DeleteTenant handles DELETE /api/v1/tenants/:id
func (h *TenantHandler) DeleteTenant(c *gin.Context) {
	if err := h.useCase.DeleteTenant(c.Request.Context(), auth.UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tenant deleted successfully"})
}
