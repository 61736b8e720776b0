package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/capstonec242/Tabungin-API/internal/middleware"
	"github.com/capstonec242/Tabungin-API/internal/models"
	"github.com/capstonec242/Tabungin-API/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler writes the current user's transaction history as CSV or XLSX.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

func (h *ExportHandler) userTransactions(c *gin.Context) ([]models.Transaction, bool) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, "Unauthorized: Token is required.")
		return nil, false
	}

	var saving models.Saving
	if err := h.DB.Where("user_id = ?", user.ID).First(&saving).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "No savings found!")
		} else {
			util.Error(c, http.StatusInternalServerError, "Error exporting transactions!")
		}
		return nil, false
	}

	var transactions []models.Transaction
	if err := h.DB.Where("saving_id = ?", saving.ID).
		Order("created_at DESC, id DESC").
		Find(&transactions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Error exporting transactions!")
		return nil, false
	}
	return transactions, true
}

func formatAmount(cent int64) string {
	return strconv.FormatFloat(util.FromCent(cent), 'f', 2, 64)
}

// ExportCSV streams the transaction history as a CSV attachment.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	transactions, ok := h.userTransactions(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"Type", "Category", "Amount", "Description", "Date"})

	for _, t := range transactions {
		writer.Write([]string{
			t.Kind,
			t.Category,
			formatAmount(t.AmountCent),
			t.Description,
			t.CreatedAt.Format("2006-01-02"),
		})
	}
}

// ExportXLSX streams the transaction history as an XLSX attachment.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	transactions, ok := h.userTransactions(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	sheetName := "Transactions"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Error exporting transactions!")
		return
	}
	f.SetActiveSheet(index)

	headers := []string{"Type", "Category", "Amount", "Description", "Date"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx, t := range transactions {
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), t.Kind)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), t.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), formatAmount(t.AmountCent))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), t.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), t.CreatedAt.Format("2006-01-02"))
	}

	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "B", 15)
	f.SetColWidth(sheetName, "C", "C", 12)
	f.SetColWidth(sheetName, "D", "D", 30)
	f.SetColWidth(sheetName, "E", "E", 12)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, "Error exporting transactions!")
	}
}
