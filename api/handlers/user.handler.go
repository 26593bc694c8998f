package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/bmoutsourcing/payslip-api/internal/dbrepo"
	"github.com/bmoutsourcing/payslip-api/internal/models"
	"github.com/bmoutsourcing/payslip-api/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
)

type UserHandler struct {
	DB       *dbrepo.UserRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewUserHandler(db *dbrepo.UserRepo, infoLog *log.Logger, errorLog *log.Logger) *UserHandler {
	return &UserHandler{
		DB:       db,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

type userRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password"`
	Role     string `json:"role" validate:"required,oneof=admin staff"`
	Status   string `json:"status" validate:"required,oneof=active inactive"`
}

func (u *UserHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := utils.ReadJSON(w, r, &req); err != nil {
		u.errorLog.Println("ERROR_01_AddUser:", err)
		utils.BadRequest(w, err)
		return
	}

	if fields := utils.ValidateStruct(req); fields != nil {
		u.errorLog.Println("ERROR_02_AddUser: invalid input")
		utils.FieldErrors(w, fields)
		return
	}
	if len(req.Password) < 6 {
		utils.FieldErrors(w, map[string]string{"password": "Must be at least 6 characters"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		u.errorLog.Println("ERROR_03_AddUser:", err)
		utils.ServerError(w, err)
		return
	}

	user := &models.User{
		Username: req.Username,
		Password: hash,
		Role:     req.Role,
		Status:   req.Status,
	}

	if err := u.DB.CreateUser(r.Context(), user); err != nil {
		u.errorLog.Println("ERROR_04_AddUser:", err)
		utils.BadRequest(w, err)
		return
	}

	var resp struct {
		Error   bool         `json:"error"`
		Status  string       `json:"status"`
		Message string       `json:"message"`
		User    *models.User `json:"user"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "User created successfully"
	resp.User = user

	utils.WriteJSON(w, http.StatusCreated, resp)
}

func (u *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		u.errorLog.Println("ERROR_01_GetUser: invalid id")
		utils.BadRequest(w, errors.New("invalid user id"))
		return
	}

	user, err := u.DB.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.NotFound(w, errors.New("User not found"))
			return
		}
		u.errorLog.Println("ERROR_02_GetUser:", err)
		utils.ServerError(w, err)
		return
	}

	var resp struct {
		Error   bool         `json:"error"`
		Status  string       `json:"status"`
		Message string       `json:"message"`
		User    *models.User `json:"user"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "User fetched successfully"
	resp.User = user

	utils.WriteJSON(w, http.StatusOK, resp)
}

func (u *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		u.errorLog.Println("ERROR_01_UpdateUser: invalid id")
		utils.BadRequest(w, errors.New("invalid user id"))
		return
	}

	var req userRequest
	if err := utils.ReadJSON(w, r, &req); err != nil {
		u.errorLog.Println("ERROR_02_UpdateUser:", err)
		utils.BadRequest(w, err)
		return
	}

	if fields := utils.ValidateStruct(req); fields != nil {
		u.errorLog.Println("ERROR_03_UpdateUser: invalid input")
		utils.FieldErrors(w, fields)
		return
	}

	// blank password keeps the current hash
	hash := ""
	if strings.TrimSpace(req.Password) != "" {
		if len(req.Password) < 6 {
			utils.FieldErrors(w, map[string]string{"password": "Must be at least 6 characters"})
			return
		}
		hash, err = utils.HashPassword(req.Password)
		if err != nil {
			u.errorLog.Println("ERROR_04_UpdateUser:", err)
			utils.ServerError(w, err)
			return
		}
	}

	user := &models.User{
		ID:       id,
		Username: req.Username,
		Password: hash,
		Role:     req.Role,
		Status:   req.Status,
	}

	if err := u.DB.UpdateUser(r.Context(), user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.NotFound(w, errors.New("User not found"))
			return
		}
		u.errorLog.Println("ERROR_05_UpdateUser:", err)
		utils.BadRequest(w, err)
		return
	}

	var resp struct {
		Error   bool         `json:"error"`
		Status  string       `json:"status"`
		Message string       `json:"message"`
		User    *models.User `json:"user"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "User updated successfully"
	resp.User = user

	utils.WriteJSON(w, http.StatusOK, resp)
}

func (u *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		u.errorLog.Println("ERROR_01_DeleteUser: invalid id")
		utils.BadRequest(w, errors.New("invalid user id"))
		return
	}

	if err := u.DB.DeleteUser(r.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.NotFound(w, errors.New("User not found"))
			return
		}
		u.errorLog.Println("ERROR_02_DeleteUser:", err)
		utils.ServerError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, models.Response{
		Error:   false,
		Status:  "success",
		Message: "User deleted successfully",
	})
}

func (u *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := u.DB.ListUsers(r.Context())
	if err != nil {
		u.errorLog.Println("ERROR_01_ListUsers:", err)
		utils.ServerError(w, err)
		return
	}

	var resp struct {
		Error   bool           `json:"error"`
		Status  string         `json:"status"`
		Message string         `json:"message"`
		Users   []*models.User `json:"users"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "User list fetched successfully"
	resp.Users = users

	utils.WriteJSON(w, http.StatusOK, resp)
}
