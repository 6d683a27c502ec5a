package httpHandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rent-server/auth"
	"rent-server/entities"
	"rent-server/usecases"
)

type UtilityAccountHandler struct {
	useCase *usecases.RentalUseCase
}

func NewUtilityAccountHandler(useCase *usecases.RentalUseCase) *UtilityAccountHandler {
	return &UtilityAccountHandler{useCase: useCase}
}

// GetAllUtilityAccounts handles GET /api/v1/utility-accounts
func (h *UtilityAccountHandler) GetAllUtilityAccounts(c *gin.Context) {
	accounts, err := h.useCase.ListUtilityAccounts(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  accounts,
		"count": len(accounts),
	})
}

// CreateUtilityAccount handles POST /api/v1/utility-accounts
func (h *UtilityAccountHandler) CreateUtilityAccount(c *gin.Context) {
	var account entities.UtilityAccount
	if !bindJSON(c, &account) {
		return
	}
	account.ID = ""
	if err := h.useCase.CreateUtilityAccount(c.Request.Context(), auth.UserID(c), &account); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Utility account created successfully",
		"data":    account,
	})
}

// UpdateUtilityAccount handles PUT /api/v1/utility-accounts/:id
func (h *UtilityAccountHandler) UpdateUtilityAccount(c *gin.Context) {
	var patch entities.UtilityAccount
	if !bindJSON(c, &patch) {
		return
	}
	account, err := h.useCase.UpdateUtilityAccount(c.Request.Context(), auth.UserID(c), c.Param("id"), &patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Utility account updated successfully",
		"data":    account,
	})
}

// DeleteUtilityAccount handles DELETE /api/v1/utility-accounts/:id
func (h *UtilityAccountHandler) DeleteUtilityAccount(c *gin.Context) {
	if err := h.useCase.DeleteUtilityAccount(c.Request.Context(), auth.UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Utility account deleted successfully"})
}

// GetUtilityStatus handles GET /api/v1/utility-accounts/:id/status
func (h *UtilityAccountHandler) GetUtilityStatus(c *gin.Context) {
	status, err := h.useCase.UtilityAccountStatus(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": status})
}
