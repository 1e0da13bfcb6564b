package handler

import (
	"net/http"

	"github.com/fuelrank/fuelrank-api/internal/api/handler/router"
	"github.com/fuelrank/fuelrank-api/internal/usecases/authenticating"
	"github.com/fuelrank/fuelrank-api/internal/usecases/favoriting"
	"github.com/fuelrank/fuelrank-api/internal/usecases/gamification"
	"github.com/fuelrank/fuelrank-api/internal/usecases/moderating"
	"github.com/fuelrank/fuelrank-api/internal/usecases/ranking"
	"github.com/fuelrank/fuelrank-api/internal/usecases/refueling"
	"github.com/fuelrank/fuelrank-api/internal/usecases/reviewing"
	"github.com/fuelrank/fuelrank-api/internal/usecases/station"
	"github.com/fuelrank/fuelrank-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: MetricsHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: Register(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Stations(service station.StationService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/stations/:id",
			Method:  http.MethodGet,
			Handler: GetStation(service),
		},
		{
			Path:        "/v1/stations",
			Method:      http.MethodPost,
			Handler:     CreateStation(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/stations/:id/prices",
			Method:      http.MethodPost,
			Handler:     ReportPrice(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Ranking(service ranking.RankingService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/stations",
			Method:  http.MethodGet,
			Handler: GetRanking(service),
		},
	}
}

func Reviews(service reviewing.ReviewService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/stations/:id/reviews",
			Method:  http.MethodGet,
			Handler: ListStationReviews(service),
		},
		{
			Path:        "/v1/reviews",
			Method:      http.MethodPost,
			Handler:     CreateReview(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/complaints",
			Method:      http.MethodPost,
			Handler:     CreateComplaint(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Refuels(service refueling.RefuelService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/refuels",
			Method:      http.MethodPost,
			Handler:     CreateRefuel(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/refuels",
			Method:      http.MethodGet,
			Handler:     ListRefuels(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Favorites(store favoriting.FavoriteStore) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/favorites",
			Method:      http.MethodGet,
			Handler:     ListFavorites(store),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/favorites/:station_id",
			Method:      http.MethodPost,
			Handler:     ToggleFavorite(store),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Moderation(service moderating.ModerationService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/admin/stations/:id/seal",
			Method:      http.MethodPut,
			Handler:     UpdateSeal(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrModerator()},
		},
		{
			Path:        "/v1/admin/complaints",
			Method:      http.MethodGet,
			Handler:     ListPendingComplaints(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrModerator()},
		},
		{
			Path:        "/v1/admin/complaints/:id/approve",
			Method:      http.MethodPost,
			Handler:     ApproveComplaint(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrModerator()},
		},
		{
			Path:        "/v1/admin/complaints/:id/reject",
			Method:      http.MethodPost,
			Handler:     RejectComplaint(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrModerator()},
		},
		{
			Path:        "/v1/admin/users",
			Method:      http.MethodGet,
			Handler:     ListUsersByPoints(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Leaderboard(service gamification.LeaderboardService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/leaderboard",
			Method:  http.MethodGet,
			Handler: GetLeaderboard(service),
		},
		{
			Path:        "/v1/leaderboard/me",
			Method:      http.MethodGet,
			Handler:     GetMyLeaderboardEntry(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
