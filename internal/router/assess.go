package router

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nomassess/internal/assess"
	"nomassess/internal/export"
	"nomassess/internal/inventory"
	"nomassess/internal/nomination"
	"nomassess/internal/sheet"
)

// AssessHandler 负责处理评估相关的 HTTP 请求。
type AssessHandler struct {
	assessor *assess.Assessor
	fetcher  *nomination.Fetcher
	logger   *zap.Logger
}

// NewAssessHandler 构建一个新的 AssessHandler。
func NewAssessHandler(assessor *assess.Assessor, fetcher *nomination.Fetcher, logger *zap.Logger) *AssessHandler {
	return &AssessHandler{assessor: assessor, fetcher: fetcher, logger: logger}
}

// RegisterRoutes 将评估路由注册到给定的路由组。
func (h *AssessHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.handleAssess)
	rg.POST("/preflight", h.handlePreflight)
}

type assessRequest struct {
	NominationURL string            `json:"nomination_url"`
	Rows          []map[string]any  `json:"rows"`
	Choices       map[string]string `json:"choices"`
}

func (h *AssessHandler) loadNominations(c *gin.Context, req assessRequest) (nomination.Table, bool) {
	switch {
	case len(req.Rows) > 0:
		tbl, err := nomination.FromRows(req.Rows)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return nomination.Table{}, false
		}
		return tbl, true
	case strings.TrimSpace(req.NominationURL) != "":
		tbl, err := h.fetcher.FetchSheet(c.Request.Context(), req.NominationURL)
		if err != nil {
			if errors.Is(err, sheet.ErrNotSheetURL) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Google Sheet URL format."})
			} else if errors.Is(err, nomination.ErrMissingKeyColumn) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			} else {
				c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			}
			return nomination.Table{}, false
		}
		return tbl, true
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "nomination_url or rows is required"})
		return nomination.Table{}, false
	}
}

func (h *AssessHandler) handleAssess(c *gin.Context) {
	var req assessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	noms, ok := h.loadNominations(c, req)
	if !ok {
		return
	}

	result, err := h.assessor.Run(c.Request.Context(), noms, req.Choices)
	if err != nil {
		h.writeAssessError(c, err)
		return
	}

	if c.Query("format") == "csv" {
		var buf bytes.Buffer
		if err := export.WriteCSV(&buf, result.Columns, result.Records); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		filename := fmt.Sprintf("assessment-%s.csv", result.RunID)
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, "text/csv", buf.Bytes())
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AssessHandler) handlePreflight(c *gin.Context) {
	var req assessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	noms, ok := h.loadNominations(c, req)
	if !ok {
		return
	}

	ambiguities, err := h.assessor.Preflight(noms)
	if err != nil {
		h.writeAssessError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ambiguities": ambiguities})
}

func (h *AssessHandler) writeAssessError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, assess.ErrChoiceNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, inventory.ErrSnapshotUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "master inventory not loaded"})
	default:
		if h.logger != nil {
			h.logger.Error("assess failed", zap.Error(err))
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
