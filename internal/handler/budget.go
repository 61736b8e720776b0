package handler

import (
	"net/http"
	"strings"

	"github.com/capstonec242/Tabungin-API/internal/catalog"
	"github.com/capstonec242/Tabungin-API/internal/models"
	"github.com/capstonec242/Tabungin-API/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BudgetHandler serves spending budgets: one ceiling per reduction category
// on a saving.
type BudgetHandler struct {
	DB *gorm.DB
}

func NewBudgetHandler(db *gorm.DB) *BudgetHandler {
	return &BudgetHandler{DB: db}
}

func (h *BudgetHandler) savingByIDs(userID, savingID uint) (*models.Saving, error) {
	var saving models.Saving
	if err := h.DB.Where("id = ? AND user_id = ?", savingID, userID).First(&saving).Error; err != nil {
		return nil, err
	}
	return &saving, nil
}

type addBudgetReq struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// AddBudget creates a budget for one reduction category.
func (h *BudgetHandler) AddBudget(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		util.Error(c, http.StatusBadRequest, "User ID is required.")
		return
	}
	savingID, ok := parseIDParam(c, "savingId")
	if !ok {
		util.Error(c, http.StatusBadRequest, "Saving ID is required.")
		return
	}

	var req addBudgetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request payload.")
		return
	}

	req.Category = strings.TrimSpace(req.Category)
	if req.Category == "" || req.Amount <= 0 {
		util.Error(c, http.StatusBadRequest, "Category and amount are required.")
		return
	}
	if !catalog.IsReduction(req.Category) {
		util.Error(c, http.StatusBadRequest,
			"Invalid category. Allowed categories are: "+catalog.Join(catalog.ReductionCategories)+".")
		return
	}

	saving, err := h.savingByIDs(userID, savingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Saving not found.")
		} else {
			util.Error(c, http.StatusInternalServerError, "Error adding budget!")
		}
		return
	}

	var count int64
	if err := h.DB.Model(&models.Budget{}).
		Where("saving_id = ? AND category = ?", saving.ID, req.Category).
		Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Error adding budget!")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusBadRequest, "Budget for this category already exists.")
		return
	}

	budget := models.Budget{
		SavingID:   saving.ID,
		Category:   req.Category,
		AmountCent: util.ToCent(req.Amount),
	}
	if err := h.DB.Create(&budget).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Error adding budget!")
		return
	}

	util.Success(c, http.StatusCreated, "Budget added successfully.", budgetResp(&budget))
}

type updateBudgetReq struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// UpdateBudget merges the supplied fields over an existing budget.
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		util.Error(c, http.StatusBadRequest, "User ID is required.")
		return
	}
	savingID, ok := parseIDParam(c, "savingId")
	if !ok {
		util.Error(c, http.StatusBadRequest, "Saving ID is required.")
		return
	}
	budgetID, ok := parseIDParam(c, "budgetId")
	if !ok {
		util.Error(c, http.StatusBadRequest, "Budget ID is required.")
		return
	}

	var req updateBudgetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request payload.")
		return
	}

	req.Category = strings.TrimSpace(req.Category)
	if req.Category != "" && !catalog.IsReduction(req.Category) {
		util.Error(c, http.StatusBadRequest,
			"Invalid category. Allowed categories are: "+catalog.Join(catalog.ReductionCategories)+".")
		return
	}

	saving, err := h.savingByIDs(userID, savingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Saving not found.")
		} else {
			util.Error(c, http.StatusInternalServerError, "Error updating budget!")
		}
		return
	}

	var budget models.Budget
	if err := h.DB.Where("id = ? AND saving_id = ?", budgetID, saving.ID).
		First(&budget).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Budget not found.")
		} else {
			util.Error(c, http.StatusInternalServerError, "Error updating budget!")
		}
		return
	}

	if req.Category != "" {
		budget.Category = req.Category
	}
	if req.Amount > 0 {
		budget.AmountCent = util.ToCent(req.Amount)
	}

	if err := h.DB.Save(&budget).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Error updating budget!")
		return
	}

	util.Success(c, http.StatusOK, "Budget updated successfully.", budgetResp(&budget))
}

// DeleteBudget removes one budget after an existence check.
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		util.Error(c, http.StatusBadRequest, "User ID is required.")
		return
	}
	savingID, ok := parseIDParam(c, "savingId")
	if !ok {
		util.Error(c, http.StatusBadRequest, "Saving ID is required.")
		return
	}
	budgetID, ok := parseIDParam(c, "budgetId")
	if !ok {
		util.Error(c, http.StatusBadRequest, "Budget ID is required.")
		return
	}

	saving, err := h.savingByIDs(userID, savingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Saving not found.")
		} else {
			util.Error(c, http.StatusInternalServerError, "Error deleting budget!")
		}
		return
	}

	var budget models.Budget
	if err := h.DB.Where("id = ? AND saving_id = ?", budgetID, saving.ID).
		First(&budget).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Budget not found.")
		} else {
			util.Error(c, http.StatusInternalServerError, "Error deleting budget!")
		}
		return
	}

	if err := h.DB.Delete(&budget).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Error deleting budget!")
		return
	}

	util.Success(c, http.StatusOK, "Budget deleted successfully.", gin.H{
		"budgetId": budget.ID,
		"savingId": saving.ID,
	})
}
