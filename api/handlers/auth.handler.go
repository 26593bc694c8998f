package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/bmoutsourcing/payslip-api/internal/dbrepo"
	"github.com/bmoutsourcing/payslip-api/internal/models"
	"github.com/bmoutsourcing/payslip-api/internal/utils"
)

type AuthHandler struct {
	DB        *dbrepo.UserRepo
	JWTConfig models.JWTConfig
	infoLog   *log.Logger
	errorLog  *log.Logger
}

func NewAuthHandler(db *dbrepo.UserRepo, JWTConfig models.JWTConfig, infoLog *log.Logger, errorLog *log.Logger) *AuthHandler {
	return &AuthHandler{
		DB:        db,
		JWTConfig: JWTConfig,
		infoLog:   infoLog,
		errorLog:  errorLog,
	}
}

func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := utils.ReadJSON(w, r, &req); err != nil {
		h.errorLog.Println("ERROR_01_Signin:", err)
		utils.BadRequest(w, err)
		return
	}

	user, err := h.DB.GetUserByUsername(r.Context(), req.Username)
	if err != nil || !utils.CheckPassword(req.Password, user.Password) {
		h.errorLog.Println("ERROR_02_Signin: invalid credentials")
		utils.BadRequest(w, errors.New("invalid username or password"))
		return
	}

	if user.Status != "active" {
		h.errorLog.Println("ERROR_03_Signin: inactive user", user.Username)
		utils.BadRequest(w, errors.New("account is inactive"))
		return
	}

	token, err := utils.GenerateJWT(models.JWT{
		ID:        user.ID,
		Name:      user.Username,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}, h.JWTConfig)
	if err != nil {
		h.errorLog.Println("ERROR_04_Signin: failed to generate JWT", err)
		utils.ServerError(w, err)
		return
	}

	if err := h.DB.UpdateLastLogin(r.Context(), user.ID); err != nil {
		// signin still succeeds; the stamp is informational
		h.errorLog.Println("ERROR_05_Signin: failed to update last login", err)
	}

	user.Password = ""

	resp := struct {
		Error bool         `json:"error"`
		Token string       `json:"token"`
		User  *models.User `json:"user"`
	}{
		Error: false,
		Token: token,
		User:  user,
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}
