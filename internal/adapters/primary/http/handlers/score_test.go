package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model-deploy-service/internal/classifier"
	"model-deploy-service/internal/core/domain"
	"model-deploy-service/internal/core/services"
	"model-deploy-service/internal/testutil"
)

func setupScoreRouter(model *classifier.Model) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(services.NewScoringService(model))
	r := gin.New()
	api := r.Group("/api/v1")
	h.RegisterRoutes(api)
	return r
}

func postScore(t *testing.T, r *gin.Engine, data []string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(ScoreRequest{Data: data})
	require.NoError(t, err)

	req, _ := http.NewRequest("POST", "/api/v1/score", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestScore(t *testing.T) {
	r := setupScoreRouter(classifier.NewDemoModel())

	w := postScore(t, r, []string{
		testutil.EncodeBase64PNG(t, testutil.BandImage(64, 64, 0, 16)),
		testutil.EncodeBase64PNG(t, testutil.BandImage(64, 64, 16, 32)),
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var results []domain.ScoreResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "can", results[0].Label)
	assert.Equal(t, "carton", results[1].Label)
	assert.NotEmpty(t, results[0].Probability)
}

func TestScore_PartialFailure(t *testing.T) {
	r := setupScoreRouter(classifier.NewDemoModel())

	w := postScore(t, r, []string{
		"garbage-payload",
		testutil.EncodeBase64PNG(t, testutil.BandImage(64, 64, 0, 16)),
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var results []domain.ScoreResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.Len(t, results, 2)
	assert.True(t, results[0].Failed())
	assert.Empty(t, results[0].Probability)
	assert.False(t, results[1].Failed())
}

func TestScore_EmptyBatch(t *testing.T) {
	r := setupScoreRouter(classifier.NewDemoModel())

	w := postScore(t, r, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScore_InvalidBody(t *testing.T) {
	r := setupScoreRouter(classifier.NewDemoModel())

	req, _ := http.NewRequest("POST", "/api/v1/score", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScore_ModelNotLoaded(t *testing.T) {
	r := setupScoreRouter(nil)

	w := postScore(t, r, []string{"whatever"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
