package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/icedout/league-system/handlers"
	"github.com/icedout/league-system/middleware"
	"github.com/icedout/league-system/models"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	Pick      *handlers.PickHandler
	Schedule  *handlers.ScheduleHandler
	WebSocket *handlers.WebSocketHandler
}

func SetupRoutes(h Handlers, jwtSecret string) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Post("/auth/register", h.Auth.Register)
	router.Post("/auth/login", h.Auth.Login)

	// Справочные маршруты: без авторизации.
	router.Get("/week", h.Schedule.CurrentWeek)
	router.Get("/pools/{week}", h.Schedule.GetPool)
	router.Get("/picks/summary", h.Pick.WhoPicked)

	// Поверхность игроков: любой вошедший пользователь.
	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate([]byte(jwtSecret)))

		r.Post("/picks", h.Pick.SubmitPick)
		r.Post("/picks/backup", h.Pick.SubmitBackupPick)
		r.Post("/picks/vetoed", h.Pick.VetoedMaps)
		r.Get("/matches/next", h.Pick.NextMatch)
	})

	// Модераторская поверхность: расписание и управление неделей.
	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate([]byte(jwtSecret)))
		r.Use(middleware.Authorize(string(models.RoleModerator)))

		r.Post("/matches", h.Schedule.AddMatch)
		r.Post("/matches/reset", h.Schedule.Reset)
		r.Put("/week", h.Schedule.ChangeWeek)
	})

	// Живые уведомления: комнаты дивизионов и личные комнаты игроков.
	router.Get("/ws/tiers/{tier}", h.WebSocket.ServeTier)
	router.Get("/ws/users/{userID}", h.WebSocket.ServeUser)

	return router
}
