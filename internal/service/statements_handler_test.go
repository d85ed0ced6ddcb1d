package service

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/CoderArchie/Membership-Manager/internal/domain"
	"github.com/CoderArchie/Membership-Manager/internal/store"
)

func testMux(t *testing.T) *http.ServeMux {
	t.Helper()
	handler := NewHandler(testAnalyzer(), store.NewMemoryStore(), 1<<20, zap.NewNop())
	mux := http.NewServeMux()
	handler.Register(mux)
	return mux
}

func multipartUpload(t *testing.T, fileName string, contents []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(contents)
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return &body, w.FormDataContentType()
}

func TestUploadStatement(t *testing.T) {
	mux := testMux(t)

	body, contentType := multipartUpload(t, "statement.csv", []byte(sampleCSV), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/statements", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		AnalysisID  string                    `json:"analysis_id"`
		Memberships []domain.MembershipRecord `json:"memberships"`
		Skipped     []domain.SkippedRow       `json:"skipped"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AnalysisID)
	assert.Len(t, resp.Memberships, 2)
	assert.Len(t, resp.Skipped, 1)

	// The persisted analysis is retrievable.
	req = httptest.NewRequest(http.MethodGet, "/api/analyses/"+resp.AnalysisID, nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var analysis store.Analysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &analysis))
	assert.Equal(t, "statement.csv", analysis.FileName)
	assert.Equal(t, domain.FormatCSV, analysis.Format)

	// Memberships across analyses are listable.
	req = httptest.NewRequest(http.MethodGet, "/api/memberships", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var memberships []domain.MembershipRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &memberships))
	assert.Len(t, memberships, 2)
}

func TestUploadStatementUnsupportedFormat(t *testing.T) {
	mux := testMux(t)

	body, contentType := multipartUpload(t, "image.png", []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/statements", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Code   string `json:"code"`
		Reason string `json:"reason"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "UNSUPPORTED_FORMAT", resp.Code)
}

func TestUploadStatementEmpty(t *testing.T) {
	mux := testMux(t)

	body, contentType := multipartUpload(t, "empty.csv", []byte("Date,Description,Amount\n"), map[string]string{"locale": "fr"})
	req := httptest.NewRequest(http.MethodPost, "/api/statements", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "EMPTY_STATEMENT", resp.Code)
}

func TestUploadStatementMissingFile(t *testing.T) {
	mux := testMux(t)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("locale", "fr"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/statements", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAnalysisNotFound(t *testing.T) {
	mux := testMux(t)

	req := httptest.NewRequest(http.MethodGet, "/api/analyses/missing", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
