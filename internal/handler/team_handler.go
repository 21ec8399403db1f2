package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/rally-api/internal/domain/entity"
	"github.com/yourusername/rally-api/internal/handler/dto"
	apperrors "github.com/yourusername/rally-api/internal/pkg/errors"
	"github.com/yourusername/rally-api/internal/service"
)

// TeamHandler обрабатывает запросы, связанные с командами, их машинами и гонщиками
type TeamHandler struct {
	teamService   *service.TeamService
	carService    *service.CarService
	memberService *service.MemberService
}

// NewTeamHandler создает новый обработчик команд
func NewTeamHandler(
	teamService *service.TeamService,
	carService *service.CarService,
	memberService *service.MemberService,
) *TeamHandler {
	return &TeamHandler{
		teamService:   teamService,
		carService:    carService,
		memberService: memberService,
	}
}

// CreateTeam регистрирует новую команду
// POST /api/teams
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	var req dto.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	budget := int64(entity.DefaultTeamBudget)
	if req.Budget != nil {
		budget = *req.Budget
	}

	team, err := h.teamService.CreateTeam(req.Name, budget)
	if err != nil {
		handleError(c, "TeamHandler", err)
		return
	}

	c.JSON(http.StatusCreated, team)
}

// ListTeams возвращает команды с текущими бюджетами
// GET /api/teams
func (h *TeamHandler) ListTeams(c *gin.Context) {
	teams, err := h.teamService.ListTeams()
	if err != nil {
		handleError(c, "TeamHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"teams": teams})
}

// GetRoster возвращает состав всех команд с назначенными машинами
// GET /api/teams/roster
func (h *TeamHandler) GetRoster(c *gin.Context) {
	roster, err := h.teamService.GetRoster()
	if err != nil {
		handleError(c, "TeamHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"roster": roster})
}

// AddCar добавляет машину в команду
// POST /api/teams/:id/cars
func (h *TeamHandler) AddCar(c *gin.Context) {
	teamID := c.MustGet("teamID").(uint)

	var req dto.AddCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	car, err := h.carService.AddCar(teamID, service.AddCarParams{
		Name:         req.Name,
		BaseSpeedKmh: req.BaseSpeedKmh,
		Handling:     req.Handling,
		Reliability:  req.Reliability,
		WeightKg:     req.WeightKg,
	})
	if err != nil {
		handleError(c, "TeamHandler", err)
		return
	}

	c.JSON(http.StatusCreated, car)
}

// ListCars возвращает машины команды
// GET /api/teams/:id/cars
func (h *TeamHandler) ListCars(c *gin.Context) {
	teamID := c.MustGet("teamID").(uint)

	cars, err := h.carService.ListTeamCars(teamID)
	if err != nil {
		handleError(c, "TeamHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cars": cars})
}

// AddMember добавляет гонщика в команду
// POST /api/teams/:id/members
func (h *TeamHandler) AddMember(c *gin.Context) {
	teamID := c.MustGet("teamID").(uint)

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.memberService.AddMember(teamID, req.Name)
	if err != nil {
		handleError(c, "TeamHandler", err)
		return
	}

	c.JSON(http.StatusCreated, member)
}

// ListMembers возвращает гонщиков команды
// GET /api/teams/:id/members
func (h *TeamHandler) ListMembers(c *gin.Context) {
	teamID := c.MustGet("teamID").(uint)

	members, err := h.memberService.ListTeamMembers(teamID)
	if err != nil {
		handleError(c, "TeamHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

// AssignCars переназначает машины гонщикам команды
// PUT /api/teams/:id/assignments
func (h *TeamHandler) AssignCars(c *gin.Context) {
	teamID := c.MustGet("teamID").(uint)

	var req dto.AssignCarsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assignments := make(map[uint]*uint, len(req.Assignments))
	for _, a := range req.Assignments {
		if _, dup := assignments[a.MemberID]; dup {
			handleError(c, "TeamHandler", fmt.Errorf("%w: member #%d listed more than once", apperrors.ErrValidation, a.MemberID))
			return
		}
		assignments[a.MemberID] = a.CarID
	}

	if err := h.memberService.AssignCars(teamID, assignments); err != nil {
		handleError(c, "TeamHandler", err)
		return
	}

	members, err := h.memberService.ListTeamMembers(teamID)
	if err != nil {
		handleError(c, "TeamHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}
