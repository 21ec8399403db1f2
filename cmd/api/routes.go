package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/rally-api/internal/handler"
	"github.com/yourusername/rally-api/internal/middleware"
)

// registerRoutes настраивает маршруты API
func registerRoutes(
	router *gin.Engine,
	teamHandler *handler.TeamHandler,
	raceHandler *handler.RaceHandler,
	wsHandler *handler.WSHandler,
	rateLimiter *middleware.RateLimiter,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Лента завершенных заездов
	router.GET("/ws/races", wsHandler.HandleConnection)

	api := router.Group("/api")
	api.Use(rateLimiter.LimitByIP(middleware.WriteRateLimitConfig()))
	{
		// Команды
		teams := api.Group("/teams")
		{
			teams.GET("", teamHandler.ListTeams)
			teams.POST("", teamHandler.CreateTeam)
			teams.GET("/roster", teamHandler.GetRoster)

			// Группа маршрутов, требующих teamID
			teamWithID := teams.Group("/:id")
			teamWithID.Use(middleware.ExtractUintParam("id", "teamID"))
			{
				teamWithID.GET("/cars", teamHandler.ListCars)
				teamWithID.POST("/cars", teamHandler.AddCar)
				teamWithID.GET("/members", teamHandler.ListMembers)
				teamWithID.POST("/members", teamHandler.AddMember)
				teamWithID.PUT("/assignments", teamHandler.AssignCars)
			}
		}

		// Заезды
		races := api.Group("/races")
		{
			races.GET("", raceHandler.ListRaces)
			races.POST("", rateLimiter.Limit(middleware.RaceStartRateLimitConfig()), raceHandler.StartRace)

			raceWithID := races.Group("/:id")
			raceWithID.Use(middleware.ExtractUintParam("id", "raceID"))
			{
				raceWithID.GET("", raceHandler.GetRace)
				raceWithID.GET("/results", raceHandler.GetRaceResults)
				raceWithID.GET("/results/export", raceHandler.ExportRaceResults)
			}
		}
	}
}
