package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/clinic-slot-planner/internal/config"
	"github.com/suchimauz/clinic-slot-planner/internal/core/domain"
	"github.com/suchimauz/clinic-slot-planner/internal/core/ports/in"
	"github.com/suchimauz/clinic-slot-planner/internal/core/ports/out"
)

type SlotGeneratorController struct {
	useCase in.SlotGeneratorUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

func NewSlotGeneratorController(useCase in.SlotGeneratorUseCase, cfg *config.Config, logger out.LoggerPort) *SlotGeneratorController {
	return &SlotGeneratorController{
		useCase: useCase,
		cfg:     cfg,
		logger:  logger.WithModule("HttpController"),
	}
}

// NewRouter собирает gin с общими middleware и маршрутами контроллера
func NewRouter(controller *SlotGeneratorController) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(controller.logger))
	controller.RegisterRoutes(router)
	return router
}

func (c *SlotGeneratorController) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", c.health)

	api := router.Group("/api/v1")
	api.Use(basicAuth(c.cfg.Auth.BasicClients))
	{
		api.POST("/slots/preview", c.previewSlots)
		api.POST("/slots/availability", c.checkAvailability)
		api.POST("/slots", c.createSlots)
		api.POST("/slots/export", c.exportSlots)
		api.GET("/calendar/:year/:month", c.monthGrid)
		api.GET("/time/format", c.formatTime)
		api.GET("/time/parse", c.parseTime)
	}
}

func (c *SlotGeneratorController) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": c.cfg.App.Version,
	})
}

func (c *SlotGeneratorController) previewSlots(ctx *gin.Context) {
	var req domain.SlotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slots, err := c.useCase.PreviewSlots(ctx.Request.Context(), req)
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"slots": slots,
		"count": len(slots),
	})
}

func (c *SlotGeneratorController) checkAvailability(ctx *gin.Context) {
	var req domain.SlotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	availability, debugInfo, err := c.useCase.CheckAvailability(ctx.Request.Context(), req)
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	response := gin.H{
		"available":   availability.Available,
		"unavailable": availability.Unavailable,
	}
	if ctx.Query("debug") == "true" {
		response["debug"] = debugInfo
	}

	ctx.JSON(http.StatusOK, response)
}

func (c *SlotGeneratorController) createSlots(ctx *gin.Context) {
	var req domain.SlotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := c.useCase.CreateSlots(ctx.Request.Context(), req)
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, result)
}

func (c *SlotGeneratorController) exportSlots(ctx *gin.Context) {
	format := domain.ExportFormat(ctx.DefaultQuery("format", string(domain.ExportFormatXLSX)))

	var req domain.SlotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data, err := c.useCase.ExportSlots(ctx.Request.Context(), req, format)
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	filename := fmt.Sprintf("slots-%s.%s", req.Date, format)
	ctx.Header("Content-Description", "File Transfer")
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Data(http.StatusOK, format.ContentType(), data)
}

func (c *SlotGeneratorController) monthGrid(ctx *gin.Context) {
	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year format"})
		return
	}
	month, err := strconv.Atoi(ctx.Param("month"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month format"})
		return
	}

	cells, err := c.useCase.BuildMonthGrid(year, time.Month(month))
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"cells": cells})
}

func (c *SlotGeneratorController) formatTime(ctx *gin.Context) {
	time24h := ctx.Query("time")

	label, err := c.useCase.FormatTimeSlot(time24h)
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"time":  time24h,
		"label": label,
	})
}

func (c *SlotGeneratorController) parseTime(ctx *gin.Context) {
	label := ctx.Query("label")

	time24h, err := c.useCase.ParseTimeSlot12h(label)
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"time":  time24h,
		"label": label,
	})
}

// writeError: ошибки ввода 400, ошибки бэкенда 502, остальное 500
func (c *SlotGeneratorController) writeError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case domain.IsValidationError(err):
		status = http.StatusBadRequest
	case errors.Is(err, out.ErrBackendUnavailable), errors.Is(err, out.ErrBackendNotConfigured):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		_ = ctx.Error(err)
	}

	ctx.JSON(status, gin.H{"error": err.Error()})
}
