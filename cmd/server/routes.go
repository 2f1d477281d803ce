package main

import (
	"github.com/gin-gonic/gin"

	"dragon-roster.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	authHandler       *handlers.AuthHandler
	personHandler     *handlers.PersonHandler
	teamHandler       *handlers.TeamHandler
	membershipHandler *handlers.MembershipHandler
	locationHandler   *handlers.LocationHandler
	trainingHandler   *handlers.TrainingHandler
	lineupHandler     *handlers.LineupHandler
	seatHandler       *handlers.LineupSeatHandler
	authMiddleware    gin.HandlerFunc
	idempotency       gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	v1.Use(d.authMiddleware)
	{
		v1.GET("/auth/me", d.authHandler.GetMe)

		person := v1.Group("/person")
		{
			person.GET("", d.personHandler.ListPersons)
			person.POST("", d.idempotency, d.personHandler.CreatePerson)
			person.GET("/:id", d.personHandler.GetPerson)
			person.PUT("/:id", d.personHandler.UpdatePerson(false))
			person.PATCH("/:id", d.personHandler.UpdatePerson(true))
			person.DELETE("/:id", d.personHandler.DeletePerson)
		}

		team := v1.Group("/team")
		{
			team.GET("", d.teamHandler.ListTeams)
			team.POST("", d.idempotency, d.teamHandler.CreateTeam)
			team.GET("/:id", d.teamHandler.GetTeam)
			team.PUT("/:id", d.teamHandler.UpdateTeam(false))
			team.PATCH("/:id", d.teamHandler.UpdateTeam(true))
			team.DELETE("/:id", d.teamHandler.DeleteTeam)
		}

		membership := v1.Group("/membership")
		{
			membership.GET("", d.membershipHandler.ListMemberships)
			membership.POST("", d.idempotency, d.membershipHandler.CreateMembership)
			membership.GET("/:id", d.membershipHandler.GetMembership)
			membership.PUT("/:id", d.membershipHandler.UpdateMembership(false))
			membership.PATCH("/:id", d.membershipHandler.UpdateMembership(true))
			membership.DELETE("/:id", d.membershipHandler.DeleteMembership)
		}

		location := v1.Group("/location")
		{
			location.GET("", d.locationHandler.ListLocations)
			location.POST("", d.idempotency, d.locationHandler.CreateLocation)
			location.GET("/:id", d.locationHandler.GetLocation)
			location.PUT("/:id", d.locationHandler.UpdateLocation(false))
			location.PATCH("/:id", d.locationHandler.UpdateLocation(true))
			location.DELETE("/:id", d.locationHandler.DeleteLocation)
		}

		training := v1.Group("/training")
		{
			training.GET("", d.trainingHandler.ListTrainings)
			training.POST("", d.idempotency, d.trainingHandler.CreateTraining)
			training.GET("/:id", d.trainingHandler.GetTraining)
			training.PUT("/:id", d.trainingHandler.UpdateTraining(false))
			training.PATCH("/:id", d.trainingHandler.UpdateTraining(true))
			training.DELETE("/:id", d.trainingHandler.DeleteTraining)
		}

		lineup := v1.Group("/lineup")
		{
			lineup.GET("", d.lineupHandler.ListLineups)
			lineup.POST("", d.idempotency, d.lineupHandler.CreateLineup)
			lineup.GET("/:id", d.lineupHandler.GetLineup)
			lineup.GET("/:id/seats", d.lineupHandler.GetLineupSeats)
			lineup.PUT("/:id", d.lineupHandler.UpdateLineup(false))
			lineup.PATCH("/:id", d.lineupHandler.UpdateLineup(true))
			lineup.DELETE("/:id", d.lineupHandler.DeleteLineup)
		}

		seats := v1.Group("/lineup-seat")
		{
			seats.GET("", d.seatHandler.ListSeats)
			seats.POST("", d.idempotency, d.seatHandler.CreateSeat)
			seats.POST("/swap", d.seatHandler.SwapSeats)
			seats.GET("/:id", d.seatHandler.GetSeat)
			seats.PUT("/:id", d.seatHandler.UpdateSeat(false))
			seats.PATCH("/:id", d.seatHandler.UpdateSeat(true))
			seats.POST("/:id/assign", d.seatHandler.AssignSeat)
			seats.DELETE("/:id", d.seatHandler.DeleteSeat)
		}
	}
}
