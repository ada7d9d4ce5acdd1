package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/studysets/studysets-api/media"
	"github.com/studysets/studysets-api/models"
)

type DBHandler struct {
	*gorm.DB
	Log *zap.SugaredLogger

	// AllowSeed gates the destructive /init reseed.
	AllowSeed bool
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ImageResponse is the richer image shape used by the set endpoints. Data
// marshals as base64; URL carries the rendered data URL where the endpoint
// pre-encodes it.
type ImageResponse struct {
	Data        []byte `json:"data"`
	ContentType string `json:"contentType"`
	Filename    string `json:"filename"`
	URL         string `json:"url,omitempty"`
}

// imageObject renders an image as the object shape, or nil for records
// without one. The codec is only invoked after the presence check.
func (h *DBHandler) imageObject(img models.Image, withURL bool) *ImageResponse {
	if !img.Present() {
		return nil
	}
	resp := &ImageResponse{
		Data:        img.Data,
		ContentType: img.ContentType,
		Filename:    img.Filename,
	}
	if withURL {
		url, err := media.Encode(img.Data, img.ContentType)
		if err != nil {
			h.Log.Errorw("failed to encode image", "filename", img.Filename, "error", err)
			return nil
		}
		resp.URL = url
	}
	return resp
}

// imageString collapses an image to a bare data-URL string, the shape the
// card and nested-set fields use. Nil means JSON null.
func (h *DBHandler) imageString(img models.Image) *string {
	if !img.Present() {
		return nil
	}
	url, err := media.Encode(img.Data, img.ContentType)
	if err != nil {
		h.Log.Errorw("failed to encode image", "filename", img.Filename, "error", err)
		return nil
	}
	return &url
}

// SetResponse is the full set record returned by the set endpoints.
type SetResponse struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Private     bool           `json:"private"`
	Creator     string         `json:"creator"`
	Cards       int            `json:"cards"`
	Image       *ImageResponse `json:"image"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func (h *DBHandler) setResponse(set models.Set, withImageURL bool) SetResponse {
	return SetResponse{
		ID:          set.PublicID,
		Title:       set.Title,
		Description: set.Description,
		Private:     set.Private,
		Creator:     set.Creator,
		Cards:       set.CardCount,
		Image:       h.imageObject(set.Image, withImageURL),
		CreatedAt:   set.CreatedAt,
		UpdatedAt:   set.UpdatedAt,
	}
}

// InlineSetResponse is the set shape nested inside card, favorite and
// learning responses: the image collapses to a plain encoded string there.
type InlineSetResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Private     bool      `json:"private"`
	Creator     string    `json:"creator"`
	Cards       int       `json:"cards"`
	Image       *string   `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (h *DBHandler) inlineSet(set models.Set) InlineSetResponse {
	return InlineSetResponse{
		ID:          set.PublicID,
		Title:       set.Title,
		Description: set.Description,
		Private:     set.Private,
		Creator:     set.Creator,
		Cards:       set.CardCount,
		Image:       h.imageString(set.Image),
		CreatedAt:   set.CreatedAt,
		UpdatedAt:   set.UpdatedAt,
	}
}

// findSetByPublicID resolves the exposed set identifier to the stored row.
func (h *DBHandler) findSetByPublicID(publicID string) (*models.Set, error) {
	var set models.Set
	if err := h.Where("public_id = ?", publicID).First(&set).Error; err != nil {
		return nil, err
	}
	return &set, nil
}
