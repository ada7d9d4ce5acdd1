package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studysets/studysets-api/media"
	"github.com/studysets/studysets-api/models"
)

func postCardJSON(t *testing.T, h *DBHandler, body map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/cards", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.CreateCard(rec, req)
	return rec
}

func TestCreateCardIncrementsCount(t *testing.T) {
	h := newTestHandler(t)
	set := createTestSet(t, h, "Counting", false)

	imageURL, err := media.Encode(pngBytes, "image/png")
	require.NoError(t, err)

	rec := postCardJSON(t, h, map[string]string{
		"set":      set.PublicID,
		"question": "What is the capital of France?",
		"answer":   "Paris",
		"image":    imageURL,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp CardResponse
	decodeBody(t, rec, &resp)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, set.PublicID, resp.Set)
	assert.Equal(t, "Paris", resp.Answer)
	require.NotNil(t, resp.Image)
	assert.Equal(t, pngBytes, resp.Image.Data)
	assert.Equal(t, "image/png", resp.Image.ContentType)

	var stored models.Set
	require.NoError(t, h.First(&stored, set.ID).Error)
	assert.Equal(t, 1, stored.CardCount)

	// A second creation moves the count by exactly one again.
	rec = postCardJSON(t, h, map[string]string{
		"set":      set.PublicID,
		"question": "What is the capital of Ghana?",
		"answer":   "Accra",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NoError(t, h.First(&stored, set.ID).Error)
	assert.Equal(t, 2, stored.CardCount)
}

func TestCreateCardValidation(t *testing.T) {
	h := newTestHandler(t)
	set := createTestSet(t, h, "Strict", false)

	rec := postCardJSON(t, h, map[string]string{"set": set.PublicID, "question": "No answer"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postCardJSON(t, h, map[string]string{"set": "missing", "question": "q", "answer": "a"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = postCardJSON(t, h, map[string]string{
		"set": set.PublicID, "question": "q", "answer": "a", "image": "%%% not base64 %%%",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCardsForSet(t *testing.T) {
	h := newTestHandler(t)

	set := createTestSet(t, h, "Listing", false)
	set.Image = models.Image{Data: pngBytes, ContentType: "image/png", Filename: "cover.png"}
	require.NoError(t, h.Save(&set).Error)

	card := createTestCard(t, h, set, "q1", "a1")
	card.Image = models.Image{Data: []byte("cardimg"), ContentType: "image/jpeg", Filename: "c.jpg"}
	require.NoError(t, h.Save(&card).Error)
	createTestCard(t, h, set, "q2", "a2")

	req := httptest.NewRequest(http.MethodGet, "/cards?setid="+set.PublicID, nil)
	rec := httptest.NewRecorder()
	h.GetCardsForSet(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []CardWithSetResponse
	decodeBody(t, rec, &resp)
	require.Len(t, resp, 2)

	byQuestion := map[string]CardWithSetResponse{}
	for _, c := range resp {
		byQuestion[c.Question] = c
	}

	withImage := byQuestion["q1"]
	require.NotNil(t, withImage.Image)
	cardURL, err := media.Encode([]byte("cardimg"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, cardURL, *withImage.Image)

	assert.Nil(t, byQuestion["q2"].Image)

	// The owning set rides along, its image collapsed to a string.
	setURL, err := media.Encode(pngBytes, "image/png")
	require.NoError(t, err)
	for _, c := range resp {
		assert.Equal(t, set.PublicID, c.Set.ID)
		require.NotNil(t, c.Set.Image)
		assert.Equal(t, setURL, *c.Set.Image)
	}
}

func TestGetCardsForSetValidation(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.GetCardsForSet(rec, httptest.NewRequest(http.MethodGet, "/cards", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.GetCardsForSet(rec, httptest.NewRequest(http.MethodGet, "/cards?setid=missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func learnRequest(t *testing.T, h *DBHandler, setID string, limit int) []LearnCardResponse {
	t.Helper()

	url := fmt.Sprintf("/cards/learn?setid=%s&limit=%d", setID, limit)
	rec := httptest.NewRecorder()
	h.LearnCards(rec, httptest.NewRequest(http.MethodGet, url, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []LearnCardResponse
	decodeBody(t, rec, &resp)
	return resp
}

func TestLearnCardsSampling(t *testing.T) {
	h := newTestHandler(t)
	set := createTestSet(t, h, "Sampling", false)

	questions := map[string]bool{}
	for i := 0; i < 5; i++ {
		q := fmt.Sprintf("question-%d", i)
		createTestCard(t, h, set, q, "answer")
		questions[q] = true
	}

	// limit below the population: exactly limit items, all members, no
	// duplicates.
	sample := learnRequest(t, h, set.PublicID, 3)
	require.Len(t, sample, 3)
	seen := map[string]bool{}
	for _, card := range sample {
		assert.True(t, questions[card.Question], "sampled card not in set: %s", card.Question)
		assert.False(t, seen[card.Question], "duplicate card in sample: %s", card.Question)
		seen[card.Question] = true
	}

	// limit above the population returns everything.
	assert.Len(t, learnRequest(t, h, set.PublicID, 50), 5)
}

func TestLearnCardsValidation(t *testing.T) {
	h := newTestHandler(t)
	set := createTestSet(t, h, "Sampling", false)

	rec := httptest.NewRecorder()
	h.LearnCards(rec, httptest.NewRequest(http.MethodGet, "/cards/learn?setid="+set.PublicID, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.LearnCards(rec, httptest.NewRequest(http.MethodGet, "/cards/learn?setid=missing&limit=2", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// The capitals walkthrough: three cards on a fresh public set, counts and
// samples line up.
func TestCapitalsScenario(t *testing.T) {
	h := newTestHandler(t)

	req := multipartSetRequest(t, map[string]string{
		"title":       "Capitals",
		"description": "European capitals",
		"private":     "false",
	}, nil)
	rec := httptest.NewRecorder()
	h.CreateSet(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created SetResponse
	decodeBody(t, rec, &created)

	answers := map[string]string{"France": "Paris", "Italy": "Rome", "Spain": "Madrid"}
	for country, capital := range answers {
		cardRec := postCardJSON(t, h, map[string]string{
			"set":      created.ID,
			"question": "Capital of " + country + "?",
			"answer":   capital,
		})
		require.Equal(t, http.StatusCreated, cardRec.Code)
	}

	listReq := httptest.NewRequest(http.MethodGet, "/cards?setid="+created.ID, nil)
	listRec := httptest.NewRecorder()
	h.GetCardsForSet(listRec, listReq)
	require.Equal(t, http.StatusOK, listRec.Code)
	var cards []CardWithSetResponse
	decodeBody(t, listRec, &cards)
	assert.Len(t, cards, 3)

	getReq := httptest.NewRequest(http.MethodGet, "/sets/"+created.ID, nil)
	getReq.SetPathValue("setID", created.ID)
	getRec := httptest.NewRecorder()
	h.GetSetByID(getRec, getReq)
	require.Equal(t, http.StatusOK, getRec.Code)
	var fetched SetResponse
	decodeBody(t, getRec, &fetched)
	assert.Equal(t, 3, fetched.Cards)

	assert.Len(t, learnRequest(t, h, created.ID, 2), 2)
	assert.Len(t, learnRequest(t, h, created.ID, 10), 3)
}
