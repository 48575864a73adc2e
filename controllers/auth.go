package controllers

import (
	"net/http"
	"time"

	dbpkg "avalia/db"
	"avalia/models"
	"avalia/tools"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		RespondError(c, "email e password são obrigatórios", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		RespondError(c, "usuário ou senha inválidos", http.StatusUnauthorized)
		return
	}

	// valida senha (mesma regra usada no CreateUser)
	if user.Password != encodePassword(user.Email, req.Password) {
		RespondError(c, "usuário ou senha inválidos", http.StatusUnauthorized)
		return
	}

	if user.Status == models.USER_STATUS_PENDING {
		RespondError(c, "usuário pendente de ativação", http.StatusForbidden)
		return
	}
	if user.Status == models.USER_STATUS_BLOCKED {
		RespondError(c, "usuário bloqueado", http.StatusForbidden)
		return
	}

	signed, err := signHS256JWT(getJWTSecret(), map[string]any{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	})
	if err != nil {
		RespondError(c, "erro ao assinar token", http.StatusInternalServerError)
		return
	}

	user.Password = ""
	RespondSuccess(c, LoginResponse{Token: signed, User: user})
}

func encodePassword(email, password string) string {
	encoded := tools.EncryptTextSHA512(password)
	encoded = email + ":" + encoded
	return tools.EncryptTextSHA512(encoded)
}
