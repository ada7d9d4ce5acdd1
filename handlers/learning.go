package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/studysets/studysets-api/models"
)

// LearningResponse is the session record returned on creation.
type LearningResponse struct {
	ID           string    `json:"id"`
	User         string    `json:"user"`
	Set          string    `json:"set"`
	CardsTotal   int       `json:"cards_total"`
	CardsCorrect int       `json:"cards_correct"`
	CardsWrong   int       `json:"cards_wrong"`
	Score        float64   `json:"score"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// LearningWithSetResponse is the list shape with the set resolved inline.
type LearningWithSetResponse struct {
	ID           string            `json:"id"`
	User         string            `json:"user"`
	Set          InlineSetResponse `json:"set"`
	CardsTotal   int               `json:"cards_total"`
	CardsCorrect int               `json:"cards_correct"`
	CardsWrong   int               `json:"cards_wrong"`
	Score        float64           `json:"score"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// POST /learnings
func (h *DBHandler) CreateLearning(w http.ResponseWriter, r *http.Request) {
	var req struct {
		User       string `json:"user"`
		Set        string `json:"set"`
		CardsTotal int    `json:"cardsTotal"`
		Correct    int    `json:"correct"`
		Wrong      int    `json:"wrong"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Log.Warnw("CreateLearning: invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.User == "" || req.Set == "" {
		writeError(w, http.StatusBadRequest, "User and set are required")
		return
	}
	// A session over zero cards has no defined score.
	if req.CardsTotal <= 0 {
		writeError(w, http.StatusBadRequest, "cardsTotal must be greater than zero")
		return
	}

	set, err := h.findSetByPublicID(req.Set)
	if err != nil {
		h.Log.Warnw("CreateLearning: set not found", "set", req.Set)
		writeError(w, http.StatusNotFound, "Set not found")
		return
	}

	publicID, err := gonanoid.New()
	if err != nil {
		h.Log.Errorw("CreateLearning: failed to generate id", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create learning progress")
		return
	}

	learning := models.Learning{
		PublicID:     publicID,
		SetID:        set.ID,
		UserID:       req.User,
		CardsTotal:   req.CardsTotal,
		CardsCorrect: req.Correct,
		CardsWrong:   req.Wrong,
		// Computed once here and stored, never re-derived on read.
		Score: float64(req.Correct) / float64(req.CardsTotal) * 100,
	}

	if err := h.Create(&learning).Error; err != nil {
		h.Log.Errorw("CreateLearning: failed to create learning", "user", req.User, "set", req.Set, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create learning progress")
		return
	}

	h.Log.Infow("CreateLearning: recorded session", "user", req.User, "set", set.PublicID, "score", learning.Score)
	writeJSON(w, http.StatusCreated, LearningResponse{
		ID:           learning.PublicID,
		User:         learning.UserID,
		Set:          set.PublicID,
		CardsTotal:   learning.CardsTotal,
		CardsCorrect: learning.CardsCorrect,
		CardsWrong:   learning.CardsWrong,
		Score:        learning.Score,
		CreatedAt:    learning.CreatedAt,
		UpdatedAt:    learning.UpdatedAt,
	})
}

// GET /learnings?user=
func (h *DBHandler) GetLearnings(w http.ResponseWriter, r *http.Request) {
	user := r.URL.Query().Get("user")
	if user == "" {
		writeError(w, http.StatusBadRequest, "user is required")
		return
	}

	var learnings []models.Learning
	if err := h.Preload("Set").Where("user_id = ?", user).Find(&learnings).Error; err != nil {
		h.Log.Errorw("GetLearnings: failed to fetch learnings", "user", user, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to get learning progress")
		return
	}

	responses := make([]LearningWithSetResponse, 0, len(learnings))
	for _, learning := range learnings {
		responses = append(responses, LearningWithSetResponse{
			ID:           learning.PublicID,
			User:         learning.UserID,
			Set:          h.inlineSet(learning.Set),
			CardsTotal:   learning.CardsTotal,
			CardsCorrect: learning.CardsCorrect,
			CardsWrong:   learning.CardsWrong,
			Score:        learning.Score,
			CreatedAt:    learning.CreatedAt,
			UpdatedAt:    learning.UpdatedAt,
		})
	}

	writeJSON(w, http.StatusOK, responses)
}
