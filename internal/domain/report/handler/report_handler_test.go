package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/felipedavolta/bolodebolo/internal/domain/report/service"
	"github.com/felipedavolta/bolodebolo/pkg/metrics"
)

const kioskText = `Relatório Gerencial
Data: 01/03/2024 - 00:00:00 à 05/03/2024 - 23:59:59
PRODUTOS VENDIDOS
101 BOLO AIPIM UNID 2 90,00

Totalizadores Gerais
Total Geral 90,00
Impresso em 06/03/2024
`

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := service.New(zap.NewNop(), metrics.New())
	h := NewReportHandler(svc, zap.NewNop())

	router := gin.New()
	h.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleParse(t *testing.T) {
	router := newTestRouter(t)

	t.Run("relatório válido", func(t *testing.T) {
		rec := postJSON(t, router, "/api/v1/reports/parse", gin.H{"text": kioskText})
		require.Equal(t, http.StatusOK, rec.Code)

		var envelope struct {
			Status string `json:"status"`
			Data   struct {
				Dialect string   `json:"dialect"`
				Lines   []string `json:"lines"`
				Output  string   `json:"output"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		assert.Equal(t, "success", envelope.Status)
		assert.Equal(t, "kiosk", envelope.Data.Dialect)
		assert.Equal(t, "2", envelope.Data.Lines[0])
		assert.NotEmpty(t, envelope.Data.Output)
	})

	t.Run("corpo texto puro", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/parse",
			bytes.NewReader([]byte(kioskText)))
		req.Header.Set("Content-Type", "text/plain")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("corpo sem campo text", func(t *testing.T) {
		rec := postJSON(t, router, "/api/v1/reports/parse", gin.H{"other": 1})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("formato desconhecido", func(t *testing.T) {
		rec := postJSON(t, router, "/api/v1/reports/parse", gin.H{"text": "nada a ver"})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestHandleExport(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/api/v1/reports/export", gin.H{"text": kioskText})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get("Content-Type"))
	require.True(t, rec.Body.Len() > 2)
	assert.Equal(t, "PK", rec.Body.String()[:2])
}
