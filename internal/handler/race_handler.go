package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/rally-api/internal/handler/dto"
	"github.com/yourusername/rally-api/internal/service"
)

// RaceHandler обрабатывает запросы, связанные с заездами
type RaceHandler struct {
	raceService *service.RaceService
}

// NewRaceHandler создает новый обработчик заездов
func NewRaceHandler(raceService *service.RaceService) *RaceHandler {
	return &RaceHandler{
		raceService: raceService,
	}
}

// StartRace проводит заезд по всем машинам с гонщиками
// POST /api/races
func (h *RaceHandler) StartRace(c *gin.Context) {
	run, err := h.raceService.StartRace(c.Request.Context())
	if err != nil {
		handleError(c, "RaceHandler", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewRaceRunResponse(run))
}

// ListRaces возвращает историю заездов, новые первыми
// GET /api/races?page=1&page_size=10
func (h *RaceHandler) ListRaces(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	races, total, err := h.raceService.ListRaces(page, pageSize)
	if err != nil {
		handleError(c, "RaceHandler", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedRaceResponse(races, total, page, pageSize))
}

// GetRace возвращает информацию о заезде
// GET /api/races/:id
func (h *RaceHandler) GetRace(c *gin.Context) {
	raceID := c.MustGet("raceID").(uint)

	race, err := h.raceService.GetRace(raceID)
	if err != nil {
		handleError(c, "RaceHandler", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRaceResponse(race))
}

// GetRaceResults возвращает таблицу результатов заезда
// GET /api/races/:id/results
func (h *RaceHandler) GetRaceResults(c *gin.Context) {
	raceID := c.MustGet("raceID").(uint)

	results, err := h.raceService.GetRaceResults(raceID)
	if err != nil {
		handleError(c, "RaceHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": dto.NewListRaceResultResponse(results)})
}
