package analyze

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vocalnotes/internal/note/model"
)

func postAnalyze(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze-note", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Analyze(rec, req)
	return rec
}

func TestAnalyzeMissingTranscription(t *testing.T) {
	h := NewHandler(NewExtractor(&stubClient{}))

	for _, body := range []string{`{}`, `{"transcription":""}`, `{"transcription":"  "}`} {
		rec := postAnalyze(t, h, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp model.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "transcription required", resp.Error)
	}
}

func TestAnalyzeAlwaysReturnsFourKeys(t *testing.T) {
	h := NewHandler(NewExtractor(&stubClient{reply: "not json at all"}))

	rec := postAnalyze(t, h, `{"transcription":"call the plumber"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var draft map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &draft))
	assert.Len(t, draft, 4)
	assert.Equal(t, "call the plumber", draft["title"])
	assert.Equal(t, "call the plumber", draft["content"])
	assert.Equal(t, model.CategoryIntervention, draft["category"])
	assert.Equal(t, model.PriorityNormal, draft["priority"])
}

func TestAnalyzeTransportFailureIs500(t *testing.T) {
	h := NewHandler(NewExtractor(&stubClient{err: errors.New("upstream unreachable")}))

	rec := postAnalyze(t, h, `{"transcription":"call the plumber"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
