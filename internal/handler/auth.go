package handler

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/esrickpics/ProyectoSSAPI/internal/models"
	"github.com/esrickpics/ProyectoSSAPI/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler serves operator registration and login.
type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret string
	Issuer    string
	TokenTTL  time.Duration
}

func NewAuthHandler(db *gorm.DB, jwtSecret, issuer string, ttlHours int) *AuthHandler {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &AuthHandler{
		DB:        db,
		JWTSecret: jwtSecret,
		Issuer:    issuer,
		TokenTTL:  time.Duration(ttlHours) * time.Hour,
	}
}

type registerReq struct {
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	DisplayName     string `json:"display_name" binding:"max=64"`
}

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "parámetros no válidos")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if !usernameRe.MatchString(req.Username) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "el usuario debe tener 3-20 letras, números o guiones bajos")
		return
	}

	if !isStrongPassword(req.Password) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "la contraseña debe tener 8-32 caracteres con mayúsculas, minúsculas y números")
		return
	}

	if req.Password != req.ConfirmPassword {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "las contraseñas no coinciden")
		return
	}

	var count int64
	if err := h.DB.Model(&models.User{}).
		Where("LOWER(username) = LOWER(?)", req.Username).
		Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "error al consultar el usuario")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "el nombre de usuario ya existe")
		return
	}

	const bcryptCost = 12
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "error al proteger la contraseña")
		return
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		DisplayName:  req.DisplayName,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "error al crear el usuario")
		return
	}

	util.Success(c, util.Response{
		"user": gin.H{
			"id":           user.ID,
			"username":     user.Username,
			"display_name": user.DisplayName,
		},
	})
}

func isStrongPassword(pwd string) bool {
	if len(pwd) < 8 || len(pwd) > 32 {
		return false
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range pwd {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "parámetros no válidos")
		return
	}

	var user models.User
	if err := h.DB.Where("LOWER(username) = LOWER(?)", strings.TrimSpace(req.Username)).
		First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "usuario o contraseña incorrectos")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "error al consultar el usuario")
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "usuario o contraseña incorrectos")
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, h.Issuer, user.ID, h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "error al generar la sesión")
		return
	}

	now := time.Now()
	user.LastLoginAt = &now
	user.LastLoginIP = c.ClientIP()
	_ = h.DB.Model(&user).Updates(map[string]interface{}{
		"last_login_at": user.LastLoginAt,
		"last_login_ip": user.LastLoginIP,
	}).Error

	util.Success(c, util.Response{
		"token": token,
		"user": gin.H{
			"id":           user.ID,
			"username":     user.Username,
			"display_name": user.DisplayName,
		},
	})
}
