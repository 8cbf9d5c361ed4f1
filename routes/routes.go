package routes

import (
	"darklands/admin"
	"darklands/agenda"
	"darklands/auth"
	"darklands/export"
	"darklands/favorites"
	"darklands/middleware"
	"darklands/notices"
	"darklands/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/session", rl.Limit(auth.StartSession))
	router.POST("/api/auth/admin", rl.Limit(auth.AdminLogin))
}

func AddAgendaRoutes(router *httprouter.Router, h *agenda.Handler) {
	router.GET("/api/home", h.GetHome)
	router.GET("/api/agenda/dates", h.GetDates)
	router.GET("/api/agenda", middleware.OptionalAuth(h.GetAgenda))
	router.GET("/api/agenda/event/:eventid", middleware.OptionalAuth(h.GetEvent))
	router.GET("/api/myagenda", middleware.Authenticate(h.GetMyAgenda))
}

func AddFavoriteRoutes(router *httprouter.Router, h *favorites.Handler) {
	router.GET("/api/favorites", middleware.Authenticate(h.List))
	router.POST("/api/favorites/:eventid/toggle", middleware.Authenticate(h.Toggle))
}

func AddNoticeRoutes(router *httprouter.Router, hub *notices.Hub, center *notices.Center) {
	router.GET("/api/notices/ws", middleware.Authenticate(notices.WebSocketHandler(hub, center)))
}

func AddExportRoutes(router *httprouter.Router, h *export.Handler) {
	router.GET("/api/myagenda/export.ics", middleware.Authenticate(h.ICS))
	router.GET("/api/myagenda/export.pdf", middleware.Authenticate(h.PDF))
}

func AddAdminRoutes(router *httprouter.Router, h *admin.Handler, rl *ratelim.RateLimiter) {
	router.GET("/api/admin/events", middleware.RequireAdmin(h.GetEvents))
	router.POST("/api/admin/events", rl.Limit(middleware.RequireAdmin(h.ReplaceEvents)))
}
