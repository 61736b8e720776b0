package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestAddBudget(t *testing.T) {
	e := newEnv(t)
	a := e.newAccount(t, "budi", "budi@example.com")

	budgetPath := fmt.Sprintf("/api/savings/%d/%d/budget", a.UserID, a.SavingID)

	w := e.do(t, http.MethodPost, budgetPath, a.Token, gin.H{"category": "Food", "amount": 300})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := dataOf(t, w)
	if data["category"] != "Food" {
		t.Errorf("expected category Food, got %v", data["category"])
	}
	if data["amount"].(float64) != 300 {
		t.Errorf("expected amount 300, got %v", data["amount"])
	}

	t.Run("duplicate category", func(t *testing.T) {
		w := e.do(t, http.MethodPost, budgetPath, a.Token, gin.H{"category": "Food", "amount": 100})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("addition category rejected", func(t *testing.T) {
		w := e.do(t, http.MethodPost, budgetPath, a.Token, gin.H{"category": "Salary", "amount": 100})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("listed on getSavings", func(t *testing.T) {
		w := e.do(t, http.MethodGet, fmt.Sprintf("/api/savings/%d", a.UserID), a.Token, nil)
		budgets := dataOf(t, w)["budgets"].([]any)
		if len(budgets) != 1 {
			t.Fatalf("expected 1 budget, got %d", len(budgets))
		}
	})
}

func TestUpdateAndDeleteBudget(t *testing.T) {
	e := newEnv(t)
	a := e.newAccount(t, "budi", "budi@example.com")

	w := e.do(t, http.MethodPost,
		fmt.Sprintf("/api/savings/%d/%d/budget", a.UserID, a.SavingID), a.Token,
		gin.H{"category": "Food", "amount": 300})
	budgetID := int(dataOf(t, w)["id"].(float64))
	itemPath := fmt.Sprintf("/api/savings/%d/%d/budget/%d", a.UserID, a.SavingID, budgetID)

	t.Run("amount-only update keeps category", func(t *testing.T) {
		w := e.do(t, http.MethodPut, itemPath, a.Token, gin.H{"amount": 450})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		data := dataOf(t, w)
		if data["amount"].(float64) != 450 {
			t.Errorf("expected amount 450, got %v", data["amount"])
		}
		if data["category"] != "Food" {
			t.Errorf("expected category kept, got %v", data["category"])
		}
	})

	t.Run("invalid category rejected", func(t *testing.T) {
		w := e.do(t, http.MethodPut, itemPath, a.Token, gin.H{"category": "Salary"})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("delete then 404", func(t *testing.T) {
		w := e.do(t, http.MethodDelete, itemPath, a.Token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		w = e.do(t, http.MethodDelete, itemPath, a.Token, nil)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}
