// Package handler exposes report parsing over HTTP.
package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/felipedavolta/bolodebolo/internal/api/responses"
	"github.com/felipedavolta/bolodebolo/internal/domain/report/parser"
	"github.com/felipedavolta/bolodebolo/internal/domain/report/service"
)

// ReportHandler handles report parsing API requests.
type ReportHandler struct {
	service *service.Service
	log     *zap.Logger
}

func NewReportHandler(svc *service.Service, log *zap.Logger) *ReportHandler {
	return &ReportHandler{service: svc, log: log}
}

// RegisterRoutes mounts the report endpoints under group.
func (h *ReportHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/reports/parse", h.HandleParse)
	group.POST("/reports/export", h.HandleExport)
}

type parseRequest struct {
	Text string `json:"text" binding:"required"`
}

// reportText accepts either a JSON body {"text": ...} or a raw text body,
// so reports can be piped straight in with curl.
func reportText(c *gin.Context) (string, error) {
	if strings.HasPrefix(c.ContentType(), "application/json") {
		var req parseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return "", err
		}
		return req.Text, nil
	}
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

type parseResponse struct {
	Dialect      string        `json:"dialect"`
	Lines        []string      `json:"lines"`
	Output       string        `json:"output"`
	Stats        parser.Stats  `json:"stats"`
	Unrecognized []string      `json:"unrecognized,omitempty"`
}

// HandleParse parses a pasted report and returns the spreadsheet block
// plus the dashboard numbers.
func (h *ReportHandler) HandleParse(c *gin.Context) {
	text, err := reportText(c)
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Corpo inválido: campo text é obrigatório", err.Error())
		return
	}

	res, dialect, err := h.service.Parse(c.Request.Context(), text)
	if err != nil {
		h.writeParseError(c, err)
		return
	}

	responses.Success(c, parseResponse{
		Dialect:      dialect.String(),
		Lines:        res.Lines,
		Output:       res.Output(),
		Stats:        res.Stats,
		Unrecognized: res.Unrecognized,
	}, "Relatório processado com sucesso")
}

// HandleExport parses a pasted report and streams the result as an XLSX
// workbook.
func (h *ReportHandler) HandleExport(c *gin.Context) {
	text, err := reportText(c)
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Corpo inválido: campo text é obrigatório", err.Error())
		return
	}

	data, dialect, err := h.service.Export(c.Request.Context(), text)
	if err != nil {
		h.writeParseError(c, err)
		return
	}

	filename := fmt.Sprintf("relatorio-%s-%s.xlsx", dialect, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h *ReportHandler) writeParseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, parser.ErrEmptyInput):
		responses.Error(c, http.StatusBadRequest, "O relatório está vazio")
	case errors.Is(err, service.ErrUnrecognizedFormat):
		responses.Error(c, http.StatusUnprocessableEntity,
			"Formato de relatório não reconhecido. Verifique se o texto foi copiado por completo")
	case errors.Is(err, parser.ErrMissingTotals):
		responses.Error(c, http.StatusUnprocessableEntity,
			"Não foi possível encontrar os dados do relatório (Vendas ou Itens)")
	default:
		h.log.Error("erro interno ao processar relatório", zap.Error(err))
		responses.Error(c, http.StatusInternalServerError, "Erro ao processar relatório", err.Error())
	}
}
