package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"kairos/internal/engine"
	"kairos/internal/indicator"
	"kairos/internal/report"
	"kairos/internal/store/predictionlog"
)

type handlers struct {
	engine *engine.Engine
	logs   *predictionlog.Store
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "modelVersion": engine.ModelVersion})
}

func (h *handlers) predict(c *gin.Context) {
	var req engine.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	result, err := h.engine.PredictSignalPersistence(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *handlers) predictBatch(c *gin.Context) {
	var req engine.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	result, err := h.engine.PredictBatch(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *handlers) analyze(c *gin.Context) {
	symbol := c.Param("symbol")
	result, err := h.engine.AnalyzeTechnical(c.Request.Context(), symbol)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, indicator.ErrInsufficientData) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *handlers) chart(c *gin.Context) {
	symbol := c.Param("symbol")
	in, err := h.engine.ChartInput(c.Request.Context(), symbol)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := report.RenderHTML(c.Writer, in); err != nil {
		_ = c.Error(err)
	}
}

func (h *handlers) recentPredictions(c *gin.Context) {
	if h.logs == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "prediction log disabled"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	records, err := h.logs.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(records), "records": records})
}
