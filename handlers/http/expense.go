package httpHandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rent-server/auth"
	"rent-server/entities"
	"rent-server/usecases"
)

type ExpenseHandler struct {
	useCase *usecases.RentalUseCase
}

func NewExpenseHandler(useCase *usecases.RentalUseCase) *ExpenseHandler {
	return &ExpenseHandler{useCase: useCase}
}

// GetAllExpenses handles GET /api/v1/expenses
func (h *ExpenseHandler) GetAllExpenses(c *gin.Context) {
	expenses, err := h.useCase.ListExpenses(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  expenses,
		"count": len(expenses),
	})
}

// CreateExpense handles POST /api/v1/expenses
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var expense entities.Expense
	if !bindJSON(c, &expense) {
		return
	}
	expense.ID = ""
	if err := h.useCase.CreateExpense(c.Request.Context(), auth.UserID(c), &expense); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Expense created successfully",
		"data":    expense,
	})
}

// UpdateExpense handles PUT /api/v1/expenses/:id
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	var patch entities.ExpensePatch
	if !bindJSON(c, &patch) {
		return
	}
	expense, err := h.useCase.UpdateExpense(c.Request.Context(), auth.UserID(c), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Expense updated successfully",
		"data":    expense,
	})
}

// DeleteExpense handles DELETE /api/v1/expenses/:id
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	if err := h.useCase.DeleteExpense(c.Request.Context(), auth.UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}

// GetFinanceSummary handles GET /api/v1/finance/summary?month=YYYY-MM
func (h *ExpenseHandler) GetFinanceSummary(c *gin.Context) {
	summary, err := h.useCase.FinanceSummary(c.Request.Context(), auth.UserID(c), c.Query("month"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": summary})
}

// GetFinanceMonths handles GET /api/v1/finance/months
func (h *ExpenseHandler) GetFinanceMonths(c *gin.Context) {
	months := h.useCase.FinanceMonths()
	c.JSON(http.StatusOK, gin.H{
		"data":  months,
		"count": len(months),
	})
}
