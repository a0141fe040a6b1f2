// internal/handler/print_handler_test.go
package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"printer-service/internal/driver/csna2"
	"printer-service/internal/service"
)

type memorySink struct {
	bytes []byte
}

func (m *memorySink) WriteByte(b byte) error {
	m.bytes = append(m.bytes, b)
	return nil
}

type noopDelay struct{}

func (noopDelay) Delay(time.Duration) {}

func newTestRouter(t *testing.T) (*gin.Engine, *memorySink) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sink := &memorySink{}
	printService, err := service.NewPrintService(sink, noopDelay{}, csna2.DefaultConfig(), zap.NewNop())
	require.NoError(t, err)
	sink.bytes = nil

	h := NewPrintHandler(printService, zap.NewNop())
	router := gin.New()
	router.POST("/text", h.PrintText)
	router.POST("/barcode", h.PrintBarcode)
	router.POST("/image", h.PrintImage)
	router.POST("/feed", h.Feed)
	router.GET("/status", h.Status)
	return router, sink
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPrintTextEndpoint(t *testing.T) {
	router, sink := newTestRouter(t)

	w := postJSON(t, router, "/text", gin.H{"text": "hello", "emphasized": true})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(sink.bytes), "hello")
	// Emphasized mode register plus its dedicated fixup command.
	assert.Contains(t, string(sink.bytes), string([]byte{0x1B, 0x21, 0x08}))
	assert.Contains(t, string(sink.bytes), string([]byte{0x1B, 0x45, 0x01}))
}

func TestPrintTextRejectsEmptyBody(t *testing.T) {
	router, sink := newTestRouter(t)

	w := postJSON(t, router, "/text", gin.H{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, sink.bytes)
}

func TestPrintBarcodeEndpointValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	w := postJSON(t, router, "/barcode", gin.H{"system": "qr", "text": "123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, router, "/barcode", gin.H{"system": "code39", "text": "123", "width": 9})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, router, "/barcode", gin.H{"system": "code39", "text": "A1"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPrintImageEndpointRejectsGarbage(t *testing.T) {
	router, _ := newTestRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "junk.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("not an image"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFeedAndStatusEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	w := postJSON(t, router, "/feed", gin.H{"lines": 2})
	assert.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Usable        bool  `json:"usable"`
			MaxColumn     int   `json:"max_column"`
			JobsCompleted int64 `json:"jobs_completed"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Data.Usable)
	assert.Equal(t, 32, resp.Data.MaxColumn)
	assert.EqualValues(t, 1, resp.Data.JobsCompleted)
}
