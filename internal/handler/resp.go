package handler

import (
	"github.com/capstonec242/Tabungin-API/internal/models"
	"github.com/capstonec242/Tabungin-API/internal/util"

	"github.com/gin-gonic/gin"
)

// Response shaping shared by the handlers. Amounts go out as plain numbers
// (cents divided by 100), password hashes never leave the server.

func userResp(u *models.User) gin.H {
	return gin.H{
		"id":        u.ID,
		"username":  u.Username,
		"email":     u.Email,
		"photoUrl":  u.PhotoURL,
		"createdAt": u.CreatedAt,
		"updatedAt": u.UpdatedAt,
	}
}

func savingResp(s *models.Saving) gin.H {
	return gin.H{
		"id":        s.ID,
		"userId":    s.UserID,
		"amount":    util.FromCent(s.AmountCent),
		"createdAt": s.CreatedAt,
		"updatedAt": s.UpdatedAt,
	}
}

func transactionResp(t *models.Transaction) gin.H {
	return gin.H{
		"id":          t.ID,
		"amount":      util.FromCent(t.AmountCent),
		"description": t.Description,
		"category":    t.Category,
		"createdAt":   t.CreatedAt,
		"updatedAt":   t.UpdatedAt,
	}
}

func goalResp(g *models.Goal) gin.H {
	return gin.H{
		"id":           g.ID,
		"title":        g.Title,
		"targetAmount": util.FromCent(g.TargetAmountCent),
		"status":       g.Status,
	}
}

func budgetResp(b *models.Budget) gin.H {
	return gin.H{
		"id":       b.ID,
		"category": b.Category,
		"amount":   util.FromCent(b.AmountCent),
	}
}
