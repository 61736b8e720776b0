package handler

import (
	"net/http"

	"github.com/capstonec242/Tabungin-API/internal/catalog"
	"github.com/capstonec242/Tabungin-API/internal/models"
	"github.com/capstonec242/Tabungin-API/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// savingByIDs resolves a saving addressed as /:userId/:savingId, making sure
// the saving actually belongs to that user.
func (h *SavingHandler) savingByIDs(userID, savingID uint) (*models.Saving, error) {
	var saving models.Saving
	if err := h.DB.Where("id = ? AND user_id = ?", savingID, userID).First(&saving).Error; err != nil {
		return nil, err
	}
	return &saving, nil
}

// GetCategory returns the transaction history filtered by one category,
// split into additions and reductions.
func (h *SavingHandler) GetCategory(c *gin.Context) {
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

	category := c.Param("category")
	if category == "" {
		util.Error(c, http.StatusBadRequest, "Category is required.")
		return
	}
	if !catalog.IsValid(category) {
		util.Error(c, http.StatusBadRequest,
			"Invalid category. Allowed categories are: "+catalog.Join(catalog.All())+".")
		return
	}

	if _, err := h.savingByIDs(userID, savingID); err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Saving not found.")
		} else {
			util.Error(c, http.StatusInternalServerError, "Error fetching history by category!")
		}
		return
	}

	var transactions []models.Transaction
	if err := h.DB.Where("saving_id = ? AND category = ?", savingID, category).
		Order("created_at ASC, id ASC").
		Find(&transactions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Error fetching history by category!")
		return
	}

	additions := make([]gin.H, 0)
	reductions := make([]gin.H, 0)
	for i := range transactions {
		t := &transactions[i]
		if t.Kind == models.KindAddition {
			additions = append(additions, transactionResp(t))
		} else {
			reductions = append(reductions, transactionResp(t))
		}
	}

	util.Success(c, http.StatusOK, "History for category: "+category, gin.H{
		"additions":  additions,
		"reductions": reductions,
	})
}

type updateTransactionReq struct {
	Amount      *float64 `json:"amount"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
}

// UpdateTransaction edits a transaction's amount, description or category.
// The kind comes straight off the stored row. An amount change re-derives
// the balance by removing the old signed contribution and applying the new
// one in a single atomic adjustment.
func (h *SavingHandler) UpdateTransaction(c *gin.Context) {
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
	transactionID, ok := parseIDParam(c, "transactionId")
	if !ok {
		util.Error(c, http.StatusBadRequest, "Transaction ID is required.")
		return
	}

	var req updateTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request payload.")
		return
	}

	// edits are validated against the combined whitelist only; the
	// kind-specific list is not re-checked
	if req.Category != nil && !catalog.IsValid(*req.Category) {
		util.Error(c, http.StatusBadRequest,
			"Invalid category. Allowed categories are: "+catalog.Join(catalog.All())+".")
		return
	}
	if req.Amount != nil {
		if err := util.ValidateAmount(*req.Amount); err != nil {
			util.Error(c, http.StatusBadRequest, "Amount must be a positive number.")
			return
		}
	}

	saving, err := h.savingByIDs(userID, savingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Saving not found.")
		} else {
			util.Error(c, http.StatusInternalServerError, "Error updating transaction!")
		}
		return
	}

	var trx models.Transaction
	if err := h.DB.Where("id = ? AND saving_id = ?", transactionID, saving.ID).
		First(&trx).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Transaction not found.")
		} else {
			util.Error(c, http.StatusInternalServerError, "Error updating transaction!")
		}
		return
	}

	originalCent := trx.AmountCent
	if req.Amount != nil {
		trx.AmountCent = util.ToCent(*req.Amount)
	}
	if req.Description != nil {
		trx.Description = *req.Description
	}
	if req.Category != nil {
		trx.Category = *req.Category
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&trx).Error; err != nil {
			return err
		}
		if req.Amount == nil {
			return nil
		}
		// addition: balance - old + new; reduction: balance + old - new
		delta := trx.AmountCent - originalCent
		if trx.Kind == models.KindReduction {
			delta = -delta
		}
		return tx.Model(&models.Saving{}).Where("id = ?", saving.ID).
			Update("amount_cent", gorm.Expr("amount_cent + ?", delta)).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Error updating transaction!")
		return
	}

	if err := h.DB.First(saving, saving.ID).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Error updating transaction!")
		return
	}

	util.Success(c, http.StatusOK, "Transaction updated successfully in "+trx.Kind+".", gin.H{
		"transactionId": trx.ID,
		"transaction":   transactionResp(&trx),
		"updatedAmount": util.FromCent(saving.AmountCent),
	})
}

// DeleteTransaction removes a transaction and reverses its signed
// contribution from the balance.
func (h *SavingHandler) DeleteTransaction(c *gin.Context) {
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
	transactionID, ok := parseIDParam(c, "transactionId")
	if !ok {
		util.Error(c, http.StatusBadRequest, "Transaction ID is required.")
		return
	}

	saving, err := h.savingByIDs(userID, savingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Saving not found.")
		} else {
			util.Error(c, http.StatusInternalServerError, "Error deleting transaction!")
		}
		return
	}

	var trx models.Transaction
	if err := h.DB.Where("id = ? AND saving_id = ?", transactionID, saving.ID).
		First(&trx).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Transaction not found.")
		} else {
			util.Error(c, http.StatusInternalServerError, "Error deleting transaction!")
		}
		return
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&trx).Error; err != nil {
			return err
		}
		// deleting an addition subtracts its amount, a reduction adds it back
		delta := -trx.AmountCent
		if trx.Kind == models.KindReduction {
			delta = trx.AmountCent
		}
		return tx.Model(&models.Saving{}).Where("id = ?", saving.ID).
			Update("amount_cent", gorm.Expr("amount_cent + ?", delta)).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Error deleting transaction!")
		return
	}

	if err := h.DB.First(saving, saving.ID).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Error deleting transaction!")
		return
	}

	util.Success(c, http.StatusOK, "Transaction deleted successfully from '"+trx.Kind+"'.", gin.H{
		"updatedAmount": util.FromCent(saving.AmountCent),
	})
}
