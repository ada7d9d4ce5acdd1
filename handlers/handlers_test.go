package handlers

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"github.com/studysets/studysets-api/models"
)

// newTestHandler wires the handler onto an in-memory SQLite database
// (modernc driver) with the same migrations the server runs.
func newTestHandler(t *testing.T) *DBHandler {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	db, err := gorm.Open(dial, &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to open sqlite")

	err = db.AutoMigrate(&models.Set{}, &models.Card{}, &models.UserSet{}, &models.Learning{})
	require.NoError(t, err, "failed to automigrate")

	return &DBHandler{DB: db, Log: zap.NewNop().Sugar(), AllowSeed: true}
}

func createTestSet(t *testing.T, h *DBHandler, title string, private bool) models.Set {
	t.Helper()

	publicID, err := gonanoid.New()
	require.NoError(t, err)

	set := models.Set{
		PublicID:    publicID,
		Title:       title,
		Description: "description of " + title,
		Private:     private,
		Creator:     "tester",
	}
	require.NoError(t, h.Create(&set).Error)
	return set
}

func createTestCard(t *testing.T, h *DBHandler, set models.Set, question, answer string) models.Card {
	t.Helper()

	publicID, err := gonanoid.New()
	require.NoError(t, err)

	card := models.Card{
		PublicID: publicID,
		SetID:    set.ID,
		Question: question,
		Answer:   answer,
	}
	require.NoError(t, h.Create(&card).Error)
	return card
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}
