package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/rally-api/internal/domain/entity"
	apperrors "github.com/yourusername/rally-api/internal/pkg/errors"
	"github.com/yourusername/rally-api/internal/service"
	"github.com/yourusername/rally-api/internal/service/racesim"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestGinContext создает *gin.Context для тестов с JSON body
func newTestGinContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()

	var req *http.Request
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, path, bytes.NewReader(bodyBytes))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

// parseJSONResponse парсит JSON ответ из *httptest.ResponseRecorder
func parseJSONResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err, "Response body should be valid JSON: %s", w.Body.String())
	return resp
}

type teamHandlerFixture struct {
	handler    *TeamHandler
	teamRepo   *MockTeamRepo
	carRepo    *MockCarRepo
	memberRepo *MockMemberRepo
}

func newTeamHandlerFixture() *teamHandlerFixture {
	f := &teamHandlerFixture{
		teamRepo:   new(MockTeamRepo),
		carRepo:    new(MockCarRepo),
		memberRepo: new(MockMemberRepo),
	}
	f.handler = NewTeamHandler(
		service.NewTeamService(f.teamRepo),
		service.NewCarService(f.carRepo, f.teamRepo),
		service.NewMemberService(f.memberRepo, f.teamRepo, f.carRepo),
	)
	return f
}

func TestCreateTeam_DefaultBudget(t *testing.T) {
	f := newTeamHandlerFixture()
	f.teamRepo.On("Create", mock.MatchedBy(func(team *entity.Team) bool {
		return team.Name == "Red Arrows" && team.Budget == entity.DefaultTeamBudget
	})).Return(nil)

	c, w := newTestGinContext("POST", "/api/teams", map[string]string{"team_name": "Red Arrows"})
	f.handler.CreateTeam(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := parseJSONResponse(t, w)
	assert.Equal(t, "Red Arrows", resp["team_name"])
	f.teamRepo.AssertExpectations(t)
}

func TestCreateTeam_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       interface{}
		repoErr    error
		wantStatus int
	}{
		{"empty body", nil, nil, http.StatusBadRequest},
		{"missing name", map[string]interface{}{"budget": 5}, nil, http.StatusBadRequest},
		{"negative budget", map[string]interface{}{"team_name": "A", "budget": -5}, nil, http.StatusUnprocessableEntity},
		{"duplicate name", map[string]interface{}{"team_name": "A"}, apperrors.ErrConflict, http.StatusConflict},
		{"database failure", map[string]interface{}{"team_name": "A"}, errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTeamHandlerFixture()
			if tt.repoErr != nil {
				f.teamRepo.On("Create", mock.Anything).Return(tt.repoErr)
			}

			c, w := newTestGinContext("POST", "/api/teams", tt.body)
			f.handler.CreateTeam(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := parseJSONResponse(t, w)
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestAddCar_OutOfRange(t *testing.T) {
	f := newTeamHandlerFixture()
	f.teamRepo.On("GetByID", uint(1)).Return(&entity.Team{ID: 1}, nil)

	c, w := newTestGinContext("POST", "/api/teams/1/cars", map[string]interface{}{
		"car_name":       "Rocket",
		"base_speed_kmh": 450,
	})
	c.Set("teamID", uint(1))
	f.handler.AddCar(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	f.carRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAddCar_UnknownTeam(t *testing.T) {
	f := newTeamHandlerFixture()
	f.teamRepo.On("GetByID", uint(8)).Return(nil, apperrors.ErrNotFound)

	c, w := newTestGinContext("POST", "/api/teams/8/cars", map[string]interface{}{"car_name": "Rocket"})
	c.Set("teamID", uint(8))
	f.handler.AddCar(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAssignCars_DuplicateMemberInRequest(t *testing.T) {
	f := newTeamHandlerFixture()

	c, w := newTestGinContext("PUT", "/api/teams/1/assignments", map[string]interface{}{
		"assignments": []map[string]interface{}{
			{"member_id": 10, "car_id": 100},
			{"member_id": 10, "car_id": 101},
		},
	})
	c.Set("teamID", uint(1))
	f.handler.AssignCars(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	f.memberRepo.AssertNotCalled(t, "AssignCars", mock.Anything, mock.Anything)
}

func TestAssignCars_DuplicateCarRejected(t *testing.T) {
	f := newTeamHandlerFixture()
	f.teamRepo.On("GetByID", uint(1)).Return(&entity.Team{ID: 1}, nil)
	f.memberRepo.On("ListByTeam", uint(1)).Return([]entity.Member{{ID: 10, TeamID: 1}, {ID: 11, TeamID: 1}}, nil)
	f.carRepo.On("ListByTeam", uint(1)).Return([]entity.Car{{ID: 100, TeamID: 1}}, nil)

	c, w := newTestGinContext("PUT", "/api/teams/1/assignments", map[string]interface{}{
		"assignments": []map[string]interface{}{
			{"member_id": 10, "car_id": 100},
			{"member_id": 11, "car_id": 100},
		},
	})
	c.Set("teamID", uint(1))
	f.handler.AssignCars(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := parseJSONResponse(t, w)
	assert.Contains(t, resp["error"], "unique car")
	f.memberRepo.AssertNotCalled(t, "AssignCars", mock.Anything, mock.Anything)
}

func TestGetRoster(t *testing.T) {
	f := newTeamHandlerFixture()
	f.teamRepo.On("GetRoster").Return([]entity.RosterRow{{TeamName: "A", MemberName: "Ann"}}, nil)

	c, w := newTestGinContext("GET", "/api/teams/roster", nil)
	f.handler.GetRoster(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := parseJSONResponse(t, w)
	roster := resp["roster"].([]interface{})
	require.Len(t, roster, 1)
	_, hasCar := roster[0].(map[string]interface{})["car_name"]
	assert.False(t, hasCar)
}

func TestHandleError_Mapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{apperrors.ErrNotFound, http.StatusNotFound},
		{apperrors.ErrConflict, http.StatusConflict},
		{apperrors.ErrValidation, http.StatusUnprocessableEntity},
		{racesim.ErrDegenerateOutcome, http.StatusUnprocessableEntity},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		c, w := newTestGinContext("GET", "/", nil)
		handleError(c, "Test", tt.err)
		assert.Equal(t, tt.wantStatus, w.Code, tt.err.Error())
	}
}
