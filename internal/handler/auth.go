package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/leoroquedesan-droid/leo/internal/middleware"
	"github.com/leoroquedesan-droid/leo/internal/models"
	"github.com/leoroquedesan-droid/leo/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler issues operator session tokens. There is no signup route;
// operators come from the seeded accounts.
type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret string
	TokenTTL  time.Duration
}

func NewAuthHandler(db *gorm.DB, jwtSecret string, ttlHours int) *AuthHandler {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &AuthHandler{
		DB:        db,
		JWTSecret: jwtSecret,
		TokenTTL:  time.Duration(ttlHours) * time.Hour,
	}
}

type loginReq struct {
	Name     string `json:"nome" binding:"required"`
	Password string `json:"senha" binding:"required"`
}

// Login checks the operator credentials and returns a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Informe nome e senha.")
		return
	}

	var op models.Operator
	if err := h.DB.Where("name = ?", req.Name).First(&op).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// same message as a wrong password, no account probing
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Usuário ou senha incorretos!")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Falha ao consultar operador.")
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(req.Password)); err != nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Usuário ou senha incorretos!")
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, op.ID, h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Falha ao gerar sessão.")
		return
	}

	util.Success(c, util.Response{
		"token":    token,
		"operador": op.Name,
	})
}

// currentOperator pulls the operator the auth middleware resolved. Handlers
// only use it to confirm the request went through the middleware.
func currentOperator(c *gin.Context) (*models.Operator, bool) {
	v, ok := c.Get(middleware.CurrentOperatorKey)
	if !ok {
		return nil, false
	}
	op, ok := v.(*models.Operator)
	if !ok || op == nil {
		return nil, false
	}
	return op, true
}
