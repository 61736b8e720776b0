package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/capstonec242/Tabungin-API/internal/middleware"
	"github.com/capstonec242/Tabungin-API/internal/models"
	"github.com/capstonec242/Tabungin-API/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserHandler serves the user directory: profile reads, updates, photo
// upload and the cascading account delete.
type UserHandler struct {
	DB         *gorm.DB
	BcryptCost int
	UploadDir  string
}

func NewUserHandler(db *gorm.DB, bcryptCost int, uploadDir string) *UserHandler {
	return &UserHandler{
		DB:         db,
		BcryptCost: bcryptCost,
		UploadDir:  uploadDir,
	}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// GetMe returns the authenticated user.
func GetMe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, "Unauthorized: Token is required.")
		return
	}

	util.Success(c, http.StatusOK, "User fetched successfully.", gin.H{
		"user": userResp(user),
	})
}

// GetUser fetches one user profile by id.
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		util.Error(c, http.StatusBadRequest, "User ID is required.")
		return
	}

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "User not found.")
		} else {
			util.Error(c, http.StatusInternalServerError, "Error fetching user!")
		}
		return
	}

	util.Success(c, http.StatusOK, "User fetched successfully.", userResp(&user))
}

type updateUserReq struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	NewPassword string `json:"newPassword"`
}

// UpdateUser updates the username and/or password. A password change
// requires the current password and is only applied after it verifies.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		util.Error(c, http.StatusBadRequest, "User ID is required.")
		return
	}

	var req updateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request payload.")
		return
	}

	if req.Username == "" && req.Password == "" && req.NewPassword == "" {
		util.Error(c, http.StatusBadRequest, "At least one field (username, password, newPassword) is required to update.")
		return
	}

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "User not found.")
		} else {
			util.Error(c, http.StatusInternalServerError, "Error updating user!")
		}
		return
	}

	if req.Username != "" {
		user.Username = req.Username
	}

	if req.Password != "" && req.NewPassword != "" {
		if !util.CheckPassword(req.Password, user.PasswordHash) {
			util.Error(c, http.StatusForbidden, "Current password is incorrect.")
			return
		}
		hash, err := util.HashPassword(req.NewPassword, h.BcryptCost)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, "Error updating user!")
			return
		}
		user.PasswordHash = hash
	}

	if err := h.DB.Save(&user).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Error updating user!")
		return
	}

	util.Success(c, http.StatusOK, "User updated successfully.", userResp(&user))
}

// UpdatePhoto stores the uploaded profile photo under the upload dir and
// saves its URL on the profile.
func (h *UserHandler) UpdatePhoto(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		util.Error(c, http.StatusBadRequest, "User ID is required.")
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		util.Error(c, http.StatusBadRequest, "Photo file is required.")
		return
	}

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "User not found.")
		} else {
			util.Error(c, http.StatusInternalServerError, "Error updating photo!")
		}
		return
	}

	// timestamp + uuid keeps filenames unique, the original extension is kept
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.New().String(), filepath.Ext(file.Filename))
	relPath := filepath.Join("profile-photos", strconv.FormatUint(uint64(userID), 10), name)
	dst := filepath.Join(h.UploadDir, relPath)

	if err := c.SaveUploadedFile(file, dst); err != nil {
		util.Error(c, http.StatusInternalServerError, "Error updating photo!")
		return
	}

	photoURL := "/uploads/" + filepath.ToSlash(relPath)
	if err := h.DB.Model(&user).Update("photo_url", photoURL).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Error updating photo!")
		return
	}

	util.Success(c, http.StatusOK, "Profile photo updated successfully.", gin.H{
		"photoUrl": photoURL,
	})
}

// DeleteUser removes a user and its entire savings subtree. The caller must
// be the target user; the check runs before anything is deleted, and the
// cascade itself is a single transaction.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		util.Error(c, http.StatusBadRequest, "User ID is required.")
		return
	}

	current := middleware.CurrentUser(c)
	if current == nil || current.ID != userID {
		util.Error(c, http.StatusForbidden, "Cannot delete user: Authenticated user does not match the target user ID.")
		return
	}

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "User not found.")
		} else {
			util.Error(c, http.StatusInternalServerError, "Error deleting user!")
		}
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var saving models.Saving
		if err := tx.Where("user_id = ?", userID).First(&saving).Error; err == nil {
			if err := tx.Where("saving_id = ?", saving.ID).Delete(&models.Transaction{}).Error; err != nil {
				return err
			}
			if err := tx.Where("saving_id = ?", saving.ID).Delete(&models.Goal{}).Error; err != nil {
				return err
			}
			if err := tx.Where("saving_id = ?", saving.ID).Delete(&models.Budget{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&saving).Error; err != nil {
				return err
			}
		} else if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.AuditLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Error deleting user!")
		return
	}

	util.Success(c, http.StatusOK, "User deleted successfully.", nil)
}
