package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /{$}", handler.Root)
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerAPIRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/players", handler.ListPlayers)
	mux.HandleFunc("GET /api/players/{playerID}/history", handler.GetPlayerHistory)
	mux.HandleFunc("GET /api/top-players", handler.ListTopPlayers)
	mux.HandleFunc("GET /api/stats", handler.GetStats)
	mux.HandleFunc("GET /api/team-optimizer", handler.OptimizeTeam)
	mux.HandleFunc("GET /api/optimal-squad", handler.BuildOptimalSquad)
	mux.HandleFunc("POST /api/refresh", handler.RefreshSnapshot)
}
