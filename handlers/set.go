package handlers

import (
	"io"
	"net/http"
	"strconv"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"

	"github.com/studysets/studysets-api/models"
)

const maxUploadBytes = 32 << 20

// POST /sets
func (h *DBHandler) CreateSet(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.Log.Warnw("CreateSet: invalid multipart form", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	title := r.FormValue("title")
	description := r.FormValue("description")
	if title == "" || description == "" {
		writeError(w, http.StatusBadRequest, "Title and description are required")
		return
	}

	private := true
	if v := r.FormValue("private"); v != "" {
		p, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid private flag")
			return
		}
		private = p
	}

	creator := r.FormValue("creator")
	if creator == "" {
		creator = "anonymous"
	}

	var image models.Image
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		data, readErr := io.ReadAll(file)
		if readErr != nil {
			h.Log.Warnw("CreateSet: failed to read image", "error", readErr)
			writeError(w, http.StatusBadRequest, "Failed to read image")
			return
		}
		image = models.Image{
			Data:        data,
			ContentType: header.Header.Get("Content-Type"),
			Filename:    header.Filename,
		}
	}

	publicID, err := gonanoid.New()
	if err != nil {
		h.Log.Errorw("CreateSet: failed to generate id", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create set")
		return
	}

	set := models.Set{
		PublicID:    publicID,
		Title:       title,
		Description: description,
		Private:     private,
		Creator:     creator,
		Image:       image,
	}

	if err := h.Create(&set).Error; err != nil {
		h.Log.Errorw("CreateSet: failed to create set", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create set")
		return
	}

	h.Log.Infow("CreateSet: created set", "id", set.PublicID, "creator", creator)
	// The stored record goes back as-is; the rendered image url comes from
	// the list and get endpoints, not from creation.
	writeJSON(w, http.StatusCreated, h.setResponse(set, false))
}

// SetSummary is the projection returned by the public list: title,
// description, image and card count only.
type SetSummary struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Cards       int            `json:"cards"`
	Image       *ImageResponse `json:"image"`
}

// GET /sets
func (h *DBHandler) GetPublicSets(w http.ResponseWriter, r *http.Request) {
	var sets []models.Set
	if err := h.Where("private = ?", false).Find(&sets).Error; err != nil {
		h.Log.Errorw("GetPublicSets: failed to fetch sets", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to get sets")
		return
	}

	summaries := make([]SetSummary, 0, len(sets))
	for _, set := range sets {
		summaries = append(summaries, SetSummary{
			ID:          set.PublicID,
			Title:       set.Title,
			Description: set.Description,
			Cards:       set.CardCount,
			Image:       h.imageObject(set.Image, true),
		})
	}

	writeJSON(w, http.StatusOK, summaries)
}

// GET /sets/{setID}
func (h *DBHandler) GetSetByID(w http.ResponseWriter, r *http.Request) {
	setID := r.PathValue("setID")

	set, err := h.findSetByPublicID(setID)
	if err != nil {
		h.Log.Warnw("GetSetByID: set not found", "id", setID)
		writeError(w, http.StatusNotFound, "Set not found")
		return
	}

	writeJSON(w, http.StatusOK, h.setResponse(*set, true))
}

// DELETE /sets/{setID}
func (h *DBHandler) DeleteSetByID(w http.ResponseWriter, r *http.Request) {
	setID := r.PathValue("setID")

	set, err := h.findSetByPublicID(setID)
	if err != nil {
		h.Log.Warnw("DeleteSetByID: set not found", "id", setID)
		writeError(w, http.StatusNotFound, "Set not found")
		return
	}

	// The set and everything referencing it go in one transaction, so a
	// failure mid-cascade leaves no orphaned records behind.
	err = h.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("set_id = ?", set.ID).Delete(&models.UserSet{}).Error; err != nil {
			return err
		}
		if err := tx.Where("set_id = ?", set.ID).Delete(&models.Card{}).Error; err != nil {
			return err
		}
		if err := tx.Where("set_id = ?", set.ID).Delete(&models.Learning{}).Error; err != nil {
			return err
		}
		return tx.Delete(set).Error
	})
	if err != nil {
		h.Log.Errorw("DeleteSetByID: failed to delete set", "id", setID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete set")
		return
	}

	h.Log.Infow("DeleteSetByID: deleted set and dependents", "id", setID)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
