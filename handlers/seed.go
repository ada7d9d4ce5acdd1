package handlers

import (
	"net/http"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"

	"github.com/studysets/studysets-api/models"
	"github.com/studysets/studysets-api/seed"
)

// GET /init
//
// Destructive administrative reseed: wipes all four collections and reloads
// the static catalog. Not transactional; a partial failure leaves a mixed
// store and the endpoint must be re-run in full.
func (h *DBHandler) InitDatabase(w http.ResponseWriter, r *http.Request) {
	if !h.AllowSeed {
		h.Log.Warnw("InitDatabase: seeding disabled")
		writeError(w, http.StatusForbidden, "Seeding is disabled")
		return
	}

	wipe := h.Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, model := range []any{
		&models.Card{},
		&models.Set{},
		&models.UserSet{},
		&models.Learning{},
	} {
		if err := wipe.Delete(model).Error; err != nil {
			h.Log.Errorw("InitDatabase: failed to clear collection", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to initialize data")
			return
		}
	}

	// Re-key each catalog set to a generated id, remembering the mapping
	// for the card references.
	idMapping := make(map[string]uint, len(seed.Sets))
	createdSets := make([]models.Set, 0, len(seed.Sets))
	for _, seedSet := range seed.Sets {
		publicID, err := gonanoid.New()
		if err != nil {
			h.Log.Errorw("InitDatabase: failed to generate id", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to initialize data")
			return
		}
		set := models.Set{
			PublicID:    publicID,
			Title:       seedSet.Title,
			Description: seedSet.Description,
			Private:     seedSet.Private,
			Creator:     "system",
		}
		if err := h.Create(&set).Error; err != nil {
			h.Log.Errorw("InitDatabase: failed to create set", "title", seedSet.Title, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to initialize data")
			return
		}
		idMapping[seedSet.ID] = set.ID
		createdSets = append(createdSets, set)
	}

	seedCards := seed.Cards()
	cards := make([]models.Card, 0, len(seedCards))
	countBySet := make(map[uint]int, len(createdSets))
	for _, seedCard := range seedCards {
		publicID, err := gonanoid.New()
		if err != nil {
			h.Log.Errorw("InitDatabase: failed to generate id", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to initialize data")
			return
		}
		setID := idMapping[seedCard.SetID]
		cards = append(cards, models.Card{
			PublicID: publicID,
			SetID:    setID,
			Question: seedCard.Question,
			Answer:   seedCard.Answer,
		})
		countBySet[setID]++
	}

	if err := h.Create(&cards).Error; err != nil {
		h.Log.Errorw("InitDatabase: failed to create cards", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to initialize data")
		return
	}

	// A full reset is the one place the card count is derived rather than
	// incrementally maintained.
	for _, set := range createdSets {
		if err := h.Model(&models.Set{}).
			Where("id = ?", set.ID).
			Update("card_count", countBySet[set.ID]).Error; err != nil {
			h.Log.Errorw("InitDatabase: failed to update card count", "set", set.PublicID, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to initialize data")
			return
		}
	}

	h.Log.Infow("InitDatabase: database initialized", "sets", len(createdSets), "cards", len(cards))
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"sets":    len(createdSets),
		"cards":   len(cards),
	})
}
