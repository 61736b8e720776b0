package handler

import (
	"net/http"
	"strings"

	"github.com/capstonec242/Tabungin-API/internal/models"
	"github.com/capstonec242/Tabungin-API/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GoalHandler serves savings goals. Goal status is a snapshot: it is
// computed from the balance when the goal is created or updated, and is not
// refreshed when the balance moves.
type GoalHandler struct {
	DB *gorm.DB
}

func NewGoalHandler(db *gorm.DB) *GoalHandler {
	return &GoalHandler{DB: db}
}

func goalStatus(balanceCent, targetCent int64) string {
	if balanceCent >= targetCent {
		return models.GoalCompleted
	}
	return models.GoalOnProgress
}

func (h *GoalHandler) savingByIDs(userID, savingID uint) (*models.Saving, error) {
	var saving models.Saving
	if err := h.DB.Where("id = ? AND user_id = ?", savingID, userID).First(&saving).Error; err != nil {
		return nil, err
	}
	return &saving, nil
}

type addGoalReq struct {
	Title        string  `json:"title"`
	TargetAmount float64 `json:"targetAmount"`
}

// AddGoal creates a goal; its status reflects the balance at creation time.
func (h *GoalHandler) AddGoal(c *gin.Context) {
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

	var req addGoalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request payload.")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || req.TargetAmount <= 0 {
		util.Error(c, http.StatusBadRequest, "title or targetAmount are required.")
		return
	}

	saving, err := h.savingByIDs(userID, savingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Saving not found.")
		} else {
			util.Error(c, http.StatusInternalServerError, "Error adding goal!")
		}
		return
	}

	targetCent := util.ToCent(req.TargetAmount)
	goal := models.Goal{
		SavingID:         saving.ID,
		Title:            req.Title,
		TargetAmountCent: targetCent,
		Status:           goalStatus(saving.AmountCent, targetCent),
	}

	if err := h.DB.Create(&goal).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Error adding goal!")
		return
	}

	util.Success(c, http.StatusCreated, "Goal added successfully.", goalResp(&goal))
}

// GetGoals returns all goals of a saving together with the current balance.
func (h *GoalHandler) GetGoals(c *gin.Context) {
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

	saving, err := h.savingByIDs(userID, savingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Saving not found.")
		} else {
			util.Error(c, http.StatusInternalServerError, "Error fetching saving with goals!")
		}
		return
	}

	var goals []models.Goal
	if err := h.DB.Where("saving_id = ?", saving.ID).
		Order("id ASC").
		Find(&goals).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Error fetching saving with goals!")
		return
	}

	if len(goals) == 0 {
		util.Error(c, http.StatusNotFound, "No goals found.")
		return
	}

	items := make([]gin.H, 0, len(goals))
	for i := range goals {
		items = append(items, goalResp(&goals[i]))
	}

	util.Success(c, http.StatusOK, "Goals fetched successfully.", gin.H{
		"id":     saving.ID,
		"userId": userID,
		"amount": util.FromCent(saving.AmountCent),
		"goals":  items,
	})
}

type updateGoalReq struct {
	Title        string  `json:"title"`
	TargetAmount float64 `json:"targetAmount"`
}

// UpdateGoal merges the supplied fields over the existing goal and
// recomputes the status against the current balance.
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
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
	goalID, ok := parseIDParam(c, "goalId")
	if !ok {
		util.Error(c, http.StatusBadRequest, "Goal ID is required.")
		return
	}

	var req updateGoalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request payload.")
		return
	}

	saving, err := h.savingByIDs(userID, savingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Saving not found.")
		} else {
			util.Error(c, http.StatusInternalServerError, "Error updating goal!")
		}
		return
	}

	var goal models.Goal
	if err := h.DB.Where("id = ? AND saving_id = ?", goalID, saving.ID).
		First(&goal).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Goal not found.")
		} else {
			util.Error(c, http.StatusInternalServerError, "Error updating goal!")
		}
		return
	}

	if title := strings.TrimSpace(req.Title); title != "" {
		goal.Title = title
	}
	if req.TargetAmount > 0 {
		goal.TargetAmountCent = util.ToCent(req.TargetAmount)
	}
	goal.Status = goalStatus(saving.AmountCent, goal.TargetAmountCent)

	if err := h.DB.Save(&goal).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Error updating goal!")
		return
	}

	util.Success(c, http.StatusOK, "Goal updated successfully.", gin.H{
		"id":           goal.ID,
		"savingId":     saving.ID,
		"title":        goal.Title,
		"targetAmount": util.FromCent(goal.TargetAmountCent),
		"status":       goal.Status,
		"amount":       util.FromCent(saving.AmountCent),
	})
}

// DeleteGoal removes one goal after an existence check.
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
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
	goalID, ok := parseIDParam(c, "goalId")
	if !ok {
		util.Error(c, http.StatusBadRequest, "Goal ID is required.")
		return
	}

	saving, err := h.savingByIDs(userID, savingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Saving not found.")
		} else {
			util.Error(c, http.StatusInternalServerError, "Error deleting goal!")
		}
		return
	}

	var goal models.Goal
	if err := h.DB.Where("id = ? AND saving_id = ?", goalID, saving.ID).
		First(&goal).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Goal not found.")
		} else {
			util.Error(c, http.StatusInternalServerError, "Error deleting goal!")
		}
		return
	}

	if err := h.DB.Delete(&goal).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Error deleting goal!")
		return
	}

	util.Success(c, http.StatusOK, "Goal deleted successfully.", gin.H{
		"goalId":   goal.ID,
		"savingId": saving.ID,
	})
}
