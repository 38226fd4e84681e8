package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if req.Email == "" || req.Name == "" {
		respondError(w, http.StatusBadRequest, errors.New("email and name are required"))
		return
	}
	if len(req.Password) < 8 {
		respondError(w, http.StatusBadRequest, errors.New("password must be at least 8 characters"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()
	orm := a.store.ORM.WithContext(ctx)

	var existing userModel
	err = orm.Where("email = ?", req.Email).First(&existing).Error
	switch {
	case err == nil:
		respondError(w, http.StatusConflict, errors.New("email already registered"))
		return
	case !errors.Is(err, gorm.ErrRecordNotFound):
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	now := time.Now().UTC()
	model := userModel{
		ID:           uuid.New(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := orm.Create(&model).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"user": model.toAPI()})
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	var model userModel
	err := a.store.ORM.WithContext(ctx).Where("email = ?", req.Email).First(&model).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondError(w, http.StatusUnauthorized, errors.New("invalid email or password"))
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(model.PasswordHash), []byte(req.Password)) != nil {
		respondError(w, http.StatusUnauthorized, errors.New("invalid email or password"))
		return
	}

	user := model.toAPI()
	token, expiresAt, err := a.generateSessionToken(user, time.Now().UTC())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
		"user":       user,
	})
}
