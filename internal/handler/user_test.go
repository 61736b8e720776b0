package handler_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/capstonec242/Tabungin-API/internal/models"

	"github.com/gin-gonic/gin"
)

func TestGetUser(t *testing.T) {
	e := newEnv(t)
	a := e.newAccount(t, "budi", "budi@example.com")

	w := e.do(t, http.MethodGet, fmt.Sprintf("/api/users/%d", a.UserID), a.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := dataOf(t, w)["username"]; got != "budi" {
		t.Errorf("expected username budi, got %v", got)
	}

	w = e.do(t, http.MethodGet, "/api/users/9999", a.Token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown user, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateUser(t *testing.T) {
	e := newEnv(t)
	a := e.newAccount(t, "budi", "budi@example.com")

	t.Run("requires at least one field", func(t *testing.T) {
		w := e.do(t, http.MethodPut, fmt.Sprintf("/api/users/%d", a.UserID), a.Token, gin.H{})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("username change", func(t *testing.T) {
		w := e.do(t, http.MethodPut, fmt.Sprintf("/api/users/%d", a.UserID), a.Token,
			gin.H{"username": "budi2"})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if got := dataOf(t, w)["username"]; got != "budi2" {
			t.Errorf("expected username budi2, got %v", got)
		}
	})

	t.Run("password change rejects wrong current password", func(t *testing.T) {
		w := e.do(t, http.MethodPut, fmt.Sprintf("/api/users/%d", a.UserID), a.Token,
			gin.H{"password": "wrong", "newPassword": "Fresh456"})
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("password change", func(t *testing.T) {
		w := e.do(t, http.MethodPut, fmt.Sprintf("/api/users/%d", a.UserID), a.Token,
			gin.H{"password": "Secret123", "newPassword": "Fresh456"})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		// old password stops working, the new one logs in
		resp := e.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
			"email": "budi@example.com", "password": "Secret123",
		})
		if resp.Code != http.StatusUnauthorized {
			t.Errorf("old password must be rejected, got %d", resp.Code)
		}
		e.login(t, "budi@example.com", "Fresh456")
	})
}

func TestUpdatePhoto(t *testing.T) {
	e := newEnv(t)
	a := e.newAccount(t, "budi", "budi@example.com")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("photo", "me.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	fw.Write([]byte("not-really-a-png"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPut,
		fmt.Sprintf("/api/users/%d/photo", a.UserID), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+a.Token)
	w := httptest.NewRecorder()
	e.r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	photoURL, _ := dataOf(t, w)["photoUrl"].(string)
	if !strings.HasPrefix(photoURL, "/uploads/profile-photos/") {
		t.Errorf("unexpected photo url %q", photoURL)
	}
	if !strings.HasSuffix(photoURL, ".png") {
		t.Errorf("expected original extension kept, got %q", photoURL)
	}

	// the URL is persisted on the profile
	resp := e.do(t, http.MethodGet, fmt.Sprintf("/api/users/%d", a.UserID), a.Token, nil)
	if got := dataOf(t, resp)["photoUrl"]; got != photoURL {
		t.Errorf("expected photoUrl %q on profile, got %v", photoURL, got)
	}
}

func TestUpdatePhotoMissingFile(t *testing.T) {
	e := newEnv(t)
	a := e.newAccount(t, "budi", "budi@example.com")

	w := e.do(t, http.MethodPut, fmt.Sprintf("/api/users/%d/photo", a.UserID), a.Token, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

// The identity check runs before anything is deleted: a mismatched caller
// gets a 403 and the target account is left fully intact.
func TestDeleteUserRejectsMismatchBeforeDeleting(t *testing.T) {
	e := newEnv(t)
	attacker := e.newAccount(t, "eve", "eve@example.com")
	victim := e.newAccount(t, "budi", "budi@example.com")
	e.addSavings(t, victim, 500, "paycheck", "Salary")

	w := e.do(t, http.MethodDelete,
		fmt.Sprintf("/api/users/%d", victim.UserID), attacker.Token, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}

	// nothing was touched
	if got := e.balance(t, victim); got != 500 {
		t.Errorf("victim balance must be intact, got %v", got)
	}
	var txCount int64
	e.db.Model(&models.Transaction{}).Count(&txCount)
	if txCount != 1 {
		t.Errorf("expected 1 transaction intact, got %d", txCount)
	}
}

func TestDeleteUserCascades(t *testing.T) {
	e := newEnv(t)
	other := e.newAccount(t, "siti", "siti@example.com")
	a := e.newAccount(t, "budi", "budi@example.com")

	e.addSavings(t, a, 500, "paycheck", "Salary")
	e.reduceSavings(t, a, 120, "lunch", "Food")
	e.addGoal(t, a, "Vacation", 1000)
	e.do(t, http.MethodPost,
		fmt.Sprintf("/api/savings/%d/%d/budget", a.UserID, a.SavingID), a.Token,
		gin.H{"category": "Food", "amount": 300})

	w := e.do(t, http.MethodDelete, fmt.Sprintf("/api/users/%d", a.UserID), a.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// the whole subtree is gone
	var savings, transactions, goals, budgets int64
	e.db.Model(&models.Saving{}).Where("user_id = ?", a.UserID).Count(&savings)
	e.db.Model(&models.Transaction{}).Where("saving_id = ?", a.SavingID).Count(&transactions)
	e.db.Model(&models.Goal{}).Where("saving_id = ?", a.SavingID).Count(&goals)
	e.db.Model(&models.Budget{}).Where("saving_id = ?", a.SavingID).Count(&budgets)
	for name, count := range map[string]int64{
		"savings": savings, "transactions": transactions, "goals": goals, "budgets": budgets,
	} {
		if count != 0 {
			t.Errorf("expected 0 %s after cascade, got %d", name, count)
		}
	}

	// a lookup through another account confirms the records are unreachable
	w = e.do(t, http.MethodGet, fmt.Sprintf("/api/savings/%d", a.UserID), other.Token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for deleted user's savings, got %d", w.Code)
	}
	w = e.do(t, http.MethodGet, fmt.Sprintf("/api/users/%d", a.UserID), other.Token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for deleted user, got %d", w.Code)
	}

	// the other account is untouched
	if got := e.balance(t, other); got != 0 {
		t.Errorf("unrelated account must be untouched, got %v", got)
	}
}
