package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"

	"github.com/studysets/studysets-api/models"
)

// UserSetResponse is the favorite record returned on creation.
type UserSetResponse struct {
	ID        string    `json:"id"`
	User      string    `json:"user"`
	Set       string    `json:"set"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserSetWithSetResponse is the list shape: the referenced set resolved
// inline with its image as a plain encoded string.
type UserSetWithSetResponse struct {
	ID  string            `json:"id"`
	Set InlineSetResponse `json:"set"`
}

// POST /usersets
func (h *DBHandler) CreateUserSet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		User string `json:"user"`
		Set  string `json:"set"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Log.Warnw("CreateUserSet: invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.User == "" || req.Set == "" {
		writeError(w, http.StatusBadRequest, "User and set are required")
		return
	}

	set, err := h.findSetByPublicID(req.Set)
	if err != nil {
		h.Log.Warnw("CreateUserSet: set not found", "set", req.Set)
		writeError(w, http.StatusNotFound, "Set not found")
		return
	}

	// Friendly pre-check for the common case; the unique index on
	// (user, set_id) is what actually closes the race.
	var existing models.UserSet
	if err := h.Where("user_id = ? AND set_id = ?", req.User, set.ID).First(&existing).Error; err == nil {
		writeError(w, http.StatusBadRequest, "Set already in user favorites")
		return
	}

	publicID, err := gonanoid.New()
	if err != nil {
		h.Log.Errorw("CreateUserSet: failed to generate id", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to add set to favorites")
		return
	}

	userSet := models.UserSet{
		PublicID: publicID,
		UserID:   req.User,
		SetID:    set.ID,
	}

	if err := h.Create(&userSet).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			writeError(w, http.StatusBadRequest, "Set already in user favorites")
			return
		}
		h.Log.Errorw("CreateUserSet: failed to create favorite", "user", req.User, "set", req.Set, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to add set to favorites")
		return
	}

	h.Log.Infow("CreateUserSet: added favorite", "user", req.User, "set", set.PublicID)
	writeJSON(w, http.StatusCreated, UserSetResponse{
		ID:        userSet.PublicID,
		User:      userSet.UserID,
		Set:       set.PublicID,
		CreatedAt: userSet.CreatedAt,
		UpdatedAt: userSet.UpdatedAt,
	})
}

// GET /usersets?user=
func (h *DBHandler) GetUserSets(w http.ResponseWriter, r *http.Request) {
	user := r.URL.Query().Get("user")
	if user == "" {
		writeError(w, http.StatusBadRequest, "user is required")
		return
	}

	var userSets []models.UserSet
	if err := h.Preload("Set").Where("user_id = ?", user).Find(&userSets).Error; err != nil {
		h.Log.Errorw("GetUserSets: failed to fetch favorites", "user", user, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to get user sets")
		return
	}

	responses := make([]UserSetWithSetResponse, 0, len(userSets))
	for _, userSet := range userSets {
		responses = append(responses, UserSetWithSetResponse{
			ID:  userSet.PublicID,
			Set: h.inlineSet(userSet.Set),
		})
	}

	writeJSON(w, http.StatusOK, responses)
}
