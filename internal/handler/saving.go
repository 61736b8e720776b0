package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/capstonec242/Tabungin-API/internal/catalog"
	"github.com/capstonec242/Tabungin-API/internal/models"
	"github.com/capstonec242/Tabungin-API/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SavingHandler serves the ledger: balance reads, additions, reductions and
// transaction maintenance.
type SavingHandler struct {
	DB *gorm.DB
}

func NewSavingHandler(db *gorm.DB) *SavingHandler {
	return &SavingHandler{DB: db}
}

// errInsufficientSaving aborts the reduce transaction when the guarded
// decrement matches no row.
var errInsufficientSaving = errors.New("insufficient saving amount")

func (h *SavingHandler) savingByUser(userID uint) (*models.Saving, error) {
	var saving models.Saving
	if err := h.DB.Where("user_id = ?", userID).First(&saving).Error; err != nil {
		return nil, err
	}
	return &saving, nil
}

// GetSavings returns the balance, both transaction lists with their totals,
// and the budgets configured on the saving.
func (h *SavingHandler) GetSavings(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		util.Error(c, http.StatusBadRequest, "User ID is required.")
		return
	}

	saving, err := h.savingByUser(userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "No savings found!")
		} else {
			util.Error(c, http.StatusInternalServerError, "Error fetching savings!")
		}
		return
	}

	var transactions []models.Transaction
	if err := h.DB.Where("saving_id = ?", saving.ID).
		Order("created_at ASC, id ASC").
		Find(&transactions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Error fetching savings!")
		return
	}

	additions := make([]gin.H, 0)
	reductions := make([]gin.H, 0)
	var totalAdditionCent, totalReductionCent int64
	for i := range transactions {
		t := &transactions[i]
		if t.Kind == models.KindAddition {
			additions = append(additions, transactionResp(t))
			totalAdditionCent += t.AmountCent
		} else {
			reductions = append(reductions, transactionResp(t))
			totalReductionCent += t.AmountCent
		}
	}

	var budgets []models.Budget
	if err := h.DB.Where("saving_id = ?", saving.ID).
		Order("id ASC").
		Find(&budgets).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Error fetching savings!")
		return
	}
	budgetItems := make([]gin.H, 0, len(budgets))
	for i := range budgets {
		budgetItems = append(budgetItems, budgetResp(&budgets[i]))
	}

	util.Success(c, http.StatusOK, "Savings fetched successfully.", gin.H{
		"id":              saving.ID,
		"userId":          userID,
		"amount":          util.FromCent(saving.AmountCent),
		"totalAdditions":  util.FromCent(totalAdditionCent),
		"totalReductions": util.FromCent(totalReductionCent),
		"additions":       additions,
		"reductions":      reductions,
		"budgets":         budgetItems,
	})
}

type mutateSavingReq struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
}

func (h *SavingHandler) bindMutateReq(c *gin.Context) (*mutateSavingReq, bool) {
	var req mutateSavingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request payload.")
		return nil, false
	}

	req.Description = strings.TrimSpace(req.Description)
	req.Category = strings.TrimSpace(req.Category)

	if req.Amount <= 0 || req.Description == "" || req.Category == "" {
		util.Error(c, http.StatusBadRequest, "Amount, description, and category are required.")
		return nil, false
	}
	if err := util.ValidateAmount(req.Amount); err != nil {
		util.Error(c, http.StatusBadRequest, "Amount must be a positive number.")
		return nil, false
	}
	return &req, true
}

// AddSavings increases the balance and appends one addition transaction.
// The balance write is a single atomic increment inside the transaction,
// so concurrent additions cannot lose updates.
func (h *SavingHandler) AddSavings(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		util.Error(c, http.StatusBadRequest, "User ID is required.")
		return
	}

	req, ok := h.bindMutateReq(c)
	if !ok {
		return
	}

	if !catalog.IsAddition(req.Category) {
		util.Error(c, http.StatusBadRequest,
			"Invalid category. Allowed categories are: "+catalog.Join(catalog.AdditionCategories)+".")
		return
	}

	saving, err := h.savingByUser(userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Saving not found.")
		} else {
			util.Error(c, http.StatusInternalServerError, "Error adding savings!")
		}
		return
	}

	cent := util.ToCent(req.Amount)
	trx := models.Transaction{
		SavingID:    saving.ID,
		Kind:        models.KindAddition,
		AmountCent:  cent,
		Description: req.Description,
		Category:    req.Category,
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Saving{}).Where("id = ?", saving.ID).
			Update("amount_cent", gorm.Expr("amount_cent + ?", cent)).Error; err != nil {
			return err
		}
		return tx.Create(&trx).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Error adding savings!")
		return
	}

	if err := h.DB.First(saving, saving.ID).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Error adding savings!")
		return
	}

	util.Success(c, http.StatusOK, "Addition success!", gin.H{
		"id":            saving.ID,
		"userId":        userID,
		"updatedAmount": util.FromCent(saving.AmountCent),
		"transaction":   transactionResp(&trx),
	})
}

// ReduceSavings decreases the balance and appends one reduction transaction.
// The decrement is guarded, so the balance can never go negative and a race
// between two reductions cannot overdraw the saving.
func (h *SavingHandler) ReduceSavings(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		util.Error(c, http.StatusBadRequest, "User ID is required.")
		return
	}

	req, ok := h.bindMutateReq(c)
	if !ok {
		return
	}

	if !catalog.IsReduction(req.Category) {
		util.Error(c, http.StatusBadRequest,
			"Invalid category. Allowed categories are: "+catalog.Join(catalog.ReductionCategories)+".")
		return
	}

	saving, err := h.savingByUser(userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Saving not found.")
		} else {
			util.Error(c, http.StatusInternalServerError, "Error reducing savings!")
		}
		return
	}

	cent := util.ToCent(req.Amount)
	trx := models.Transaction{
		SavingID:    saving.ID,
		Kind:        models.KindReduction,
		AmountCent:  cent,
		Description: req.Description,
		Category:    req.Category,
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Saving{}).
			Where("id = ? AND amount_cent >= ?", saving.ID, cent).
			Update("amount_cent", gorm.Expr("amount_cent - ?", cent))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errInsufficientSaving
		}
		return tx.Create(&trx).Error
	})
	if errors.Is(err, errInsufficientSaving) {
		util.Error(c, http.StatusBadRequest, "Insufficient saving amount to reduce.")
		return
	}
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Error reducing savings!")
		return
	}

	if err := h.DB.First(saving, saving.ID).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Error reducing savings!")
		return
	}

	util.Success(c, http.StatusOK, "Reduction success!", gin.H{
		"id":            saving.ID,
		"userId":        userID,
		"updatedAmount": util.FromCent(saving.AmountCent),
		"transaction":   transactionResp(&trx),
	})
}
