package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"

	"github.com/studysets/studysets-api/media"
	"github.com/studysets/studysets-api/models"
)

// CardResponse is the card record returned on creation: the set reference
// stays a plain id string and the image keeps the stored object shape.
type CardResponse struct {
	ID        string         `json:"id"`
	Set       string         `json:"set"`
	Question  string         `json:"question"`
	Answer    string         `json:"answer"`
	Image     *ImageResponse `json:"image"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// CardWithSetResponse is the list shape: image collapsed to a data-URL
// string, owning set resolved inline.
type CardWithSetResponse struct {
	ID        string            `json:"id"`
	Set       InlineSetResponse `json:"set"`
	Question  string            `json:"question"`
	Answer    string            `json:"answer"`
	Image     *string           `json:"image"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// LearnCardResponse strips a sampled card to what a study session needs.
type LearnCardResponse struct {
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Image    *string `json:"image"`
}

type createCardInput struct {
	Set      string
	Question string
	Answer   string
	// Image is a base64 or data-URL string when supplied in the body.
	Image string
	// File holds a binary upload from a multipart part.
	File models.Image
}

func readCreateCardInput(r *http.Request) (createCardInput, error) {
	var in createCardInput

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return in, fmt.Errorf("invalid multipart form: %w", err)
		}
		in.Set = r.FormValue("set")
		in.Question = r.FormValue("question")
		in.Answer = r.FormValue("answer")
		in.Image = r.FormValue("image")
		if file, header, err := r.FormFile("image"); err == nil {
			defer file.Close()
			data, readErr := io.ReadAll(file)
			if readErr != nil {
				return in, fmt.Errorf("read image: %w", readErr)
			}
			in.File = models.Image{
				Data:        data,
				ContentType: header.Header.Get("Content-Type"),
				Filename:    header.Filename,
			}
		}
		return in, nil
	}

	var body struct {
		Set      string `json:"set"`
		Question string `json:"question"`
		Answer   string `json:"answer"`
		Image    string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return in, fmt.Errorf("invalid request body: %w", err)
	}
	in.Set = body.Set
	in.Question = body.Question
	in.Answer = body.Answer
	in.Image = body.Image
	return in, nil
}

// POST /cards
func (h *DBHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	in, err := readCreateCardInput(r)
	if err != nil {
		h.Log.Warnw("CreateCard: bad request", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if in.Set == "" || in.Question == "" || in.Answer == "" {
		writeError(w, http.StatusBadRequest, "Set, question and answer are required")
		return
	}

	set, err := h.findSetByPublicID(in.Set)
	if err != nil {
		h.Log.Warnw("CreateCard: set not found", "set", in.Set)
		writeError(w, http.StatusNotFound, "Set not found")
		return
	}

	var image models.Image
	switch {
	case in.Image != "":
		data, decErr := media.Decode(in.Image)
		if decErr != nil {
			h.Log.Warnw("CreateCard: invalid image payload", "error", decErr)
			writeError(w, http.StatusBadRequest, "Invalid image payload")
			return
		}
		// Base64 uploads arrive without metadata; the client sends PNG.
		image = models.Image{
			Data:        data,
			ContentType: "image/png",
			Filename:    fmt.Sprintf("%d-card-image.png", time.Now().UnixMilli()),
		}
	case in.File.Present():
		image = in.File
	}

	publicID, err := gonanoid.New()
	if err != nil {
		h.Log.Errorw("CreateCard: failed to generate id", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create card")
		return
	}

	card := models.Card{
		PublicID: publicID,
		SetID:    set.ID,
		Question: in.Question,
		Answer:   in.Answer,
		Image:    image,
	}

	// Card insert and count increment commit together.
	err = h.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&card).Error; err != nil {
			return err
		}
		return tx.Model(&models.Set{}).
			Where("id = ?", set.ID).
			Update("card_count", gorm.Expr("card_count + ?", 1)).Error
	})
	if err != nil {
		h.Log.Errorw("CreateCard: failed to create card", "set", in.Set, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create card")
		return
	}

	h.Log.Infow("CreateCard: created card", "id", card.PublicID, "set", set.PublicID)
	writeJSON(w, http.StatusCreated, CardResponse{
		ID:        card.PublicID,
		Set:       set.PublicID,
		Question:  card.Question,
		Answer:    card.Answer,
		Image:     h.imageObject(card.Image, false),
		CreatedAt: card.CreatedAt,
		UpdatedAt: card.UpdatedAt,
	})
}

// GET /cards?setid=
func (h *DBHandler) GetCardsForSet(w http.ResponseWriter, r *http.Request) {
	setID := r.URL.Query().Get("setid")
	if setID == "" {
		writeError(w, http.StatusBadRequest, "setid is required")
		return
	}

	set, err := h.findSetByPublicID(setID)
	if err != nil {
		h.Log.Warnw("GetCardsForSet: set not found", "set", setID)
		writeError(w, http.StatusNotFound, "Set not found")
		return
	}

	var cards []models.Card
	if err := h.Where("set_id = ?", set.ID).Find(&cards).Error; err != nil {
		h.Log.Errorw("GetCardsForSet: failed to fetch cards", "set", setID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to get cards")
		return
	}

	inline := h.inlineSet(*set)
	responses := make([]CardWithSetResponse, 0, len(cards))
	for _, card := range cards {
		responses = append(responses, CardWithSetResponse{
			ID:        card.PublicID,
			Set:       inline,
			Question:  card.Question,
			Answer:    card.Answer,
			Image:     h.imageString(card.Image),
			CreatedAt: card.CreatedAt,
			UpdatedAt: card.UpdatedAt,
		})
	}

	writeJSON(w, http.StatusOK, responses)
}

// GET /cards/learn?setid=&limit=
//
// Uniform random sampling without replacement: every card of the set is
// equally likely, nothing is weighted by review history. This is not a
// spaced-repetition scheduler.
func (h *DBHandler) LearnCards(w http.ResponseWriter, r *http.Request) {
	setID := r.URL.Query().Get("setid")
	if setID == "" {
		writeError(w, http.StatusBadRequest, "setid is required")
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 0 {
		writeError(w, http.StatusBadRequest, "A numeric limit is required")
		return
	}

	set, err := h.findSetByPublicID(setID)
	if err != nil {
		h.Log.Warnw("LearnCards: set not found", "set", setID)
		writeError(w, http.StatusNotFound, "Set not found")
		return
	}

	var cards []models.Card
	if err := h.Where("set_id = ?", set.ID).Find(&cards).Error; err != nil {
		h.Log.Errorw("LearnCards: failed to fetch cards", "set", setID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to get learning cards")
		return
	}

	rand.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	if limit < len(cards) {
		cards = cards[:limit]
	}

	responses := make([]LearnCardResponse, 0, len(cards))
	for _, card := range cards {
		responses = append(responses, LearnCardResponse{
			Question: card.Question,
			Answer:   card.Answer,
			Image:    h.imageString(card.Image),
		})
	}

	writeJSON(w, http.StatusOK, responses)
}
