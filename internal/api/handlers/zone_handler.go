package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/andresuchdata/sellerpulse/backend-go/internal/domain"
	"github.com/andresuchdata/sellerpulse/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type ZoneHandler struct {
	service *service.ZoneService
}

func NewZoneHandler(service *service.ZoneService) *ZoneHandler {
	return &ZoneHandler{service: service}
}

func (h *ZoneHandler) parseFilter(c *gin.Context) domain.ZoneFilter {
	filter := domain.ZoneFilter{
		Page:     1,
		PageSize: 50,
	}

	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && page > 0 {
		filter.Page = page
	}

	if size, err := strconv.Atoi(c.DefaultQuery("page_size", "50")); err == nil && size > 0 {
		filter.PageSize = size
	}

	filter.AccountID = strings.TrimSpace(c.Query("account_id"))
	filter.MarketplaceID = strings.TrimSpace(c.Query("marketplace_id"))
	filter.ZoneDate = strings.TrimSpace(c.Query("zone_date"))
	filter.Brand = strings.TrimSpace(c.Query("brand"))

	if level, ok := domain.ParseLevel(c.DefaultQuery("level", string(domain.LevelAccount))); ok {
		filter.Level = level
	} else {
		filter.Level = domain.LevelAccount
	}

	if raw := strings.TrimSpace(c.Query("zone")); raw != "" {
		if zone, ok := domain.ParseZone(raw); ok {
			filter.Zone = zone
		}
	}

	if sortField := strings.TrimSpace(c.Query("sort_field")); sortField != "" {
		filter.SortField = strings.ToLower(sortField)
	}

	sortDir := strings.ToLower(strings.TrimSpace(c.Query("sort_direction")))
	if sortDir != "asc" {
		sortDir = "desc"
	}
	filter.SortDir = sortDir

	return filter
}

func (h *ZoneHandler) GetSummary(c *gin.Context) {
	filter := h.parseFilter(c)
	results, err := h.service.GetSummary(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch zone summary", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *ZoneHandler) GetItems(c *gin.Context) {
	filter := h.parseFilter(c)
	items, total, err := h.service.GetItems(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch zone items", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": total,
	})
}

func (h *ZoneHandler) GetAvailableDates(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))
	if limit <= 0 {
		limit = 30
	}

	accountID := strings.TrimSpace(c.Query("account_id"))
	marketplaceID := strings.TrimSpace(c.Query("marketplace_id"))
	if accountID == "" || marketplaceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "account_id and marketplace_id are required"})
		return
	}

	dates, err := h.service.GetAvailableDates(c.Request.Context(), accountID, marketplaceID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch available dates", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"dates": dates})
}

func (h *ZoneHandler) GetJobs(c *gin.Context) {
	accountID := strings.TrimSpace(c.Query("account_id"))
	if accountID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "account_id is required"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	jobs, err := h.service.GetRecentJobs(c.Request.Context(), accountID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch jobs", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

type runRequest struct {
	AccountID     string `json:"account_id" binding:"required"`
	MarketplaceID string `json:"marketplace_id" binding:"required"`
	FromDate      string `json:"from_date" binding:"required"`
	ToDate        string `json:"to_date" binding:"required"`
}

func (h *ZoneHandler) TriggerRun(c *gin.Context) {
	var req runRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	for _, d := range []string{req.FromDate, req.ToDate} {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dates must be YYYY-MM-DD"})
			return
		}
	}

	ok := h.service.RunComputation(c.Request.Context(), req.AccountID, req.MarketplaceID, req.FromDate, req.ToDate)
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
