package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Dosada05/fantasy-league/handlers"
	"github.com/Dosada05/fantasy-league/middleware"
	"github.com/Dosada05/fantasy-league/models"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	teamHandler *handlers.TeamHandler,
	tournamentHandler *handlers.TournamentHandler,
	playerHandler *handlers.PlayerHandler,
	matchHandler *handlers.MatchHandler,
	leaderboardHandler *handlers.LeaderboardHandler,
	scheduleHandler *handlers.ScheduleHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	authenticate := middleware.Authenticate(jwtSecret)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Route("/tournaments", func(r chi.Router) {
		// Публичные маршруты для просмотра турниров
		r.Get("/", tournamentHandler.List)
		r.Get("/{tournamentID}", tournamentHandler.GetByID)
		r.Get("/{tournamentID}/franchises", tournamentHandler.ListFranchises)
		r.Get("/{tournamentID}/players", playerHandler.ListByTournament)
		r.Get("/{tournamentID}/matches", tournamentHandler.ListMatches)
		r.Get("/{tournamentID}/leaderboard", leaderboardHandler.GetLeaderboard)

		// Создание турниров и логотипы франшиз — только для админов
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(adminOnly)
			r.Post("/", tournamentHandler.Create)
			r.Post("/{tournamentID}/franchises/{franchiseID}/logo", tournamentHandler.UploadFranchiseLogo)
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Get("/{teamID}", teamHandler.GetTeamByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", teamHandler.CreateTeam)
			r.Patch("/{teamID}/roster", teamHandler.UpdateRoster)
			r.Get("/{teamID}/edit-window", teamHandler.CheckUpdateAbility)
		})
	})

	router.Route("/players", func(r chi.Router) {
		r.Get("/{playerID}", playerHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(adminOnly)
			r.Post("/", playerHandler.AddPlayer)
			r.Post("/{playerID}/photo", playerHandler.UploadPhoto)
			r.Put("/{playerID}/points", playerHandler.SetMatchPoints)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/{matchID}", matchHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(adminOnly)
			r.Post("/", matchHandler.RecordMatch)
		})
	})

	router.Route("/schedule", func(r chi.Router) {
		r.Get("/", scheduleHandler.ListUpcoming)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(adminOnly)
			r.Post("/", scheduleHandler.AddUpcomingMatch)
		})
	})

	router.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/me", authHandler.Me)
		r.Get("/me/tournaments", tournamentHandler.ListMine)
		r.Get("/me/created-tournaments", tournamentHandler.ListCreated)
	})
}
