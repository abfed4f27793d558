package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerUserRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/users", handler.RegisterUser)
	mux.HandleFunc("GET /v1/users/{userID}", handler.GetUser)
	mux.HandleFunc("PUT /v1/users/{userID}/profile", handler.CompleteProfile)
	mux.HandleFunc("POST /v1/users/{userID}/solo", handler.JoinSolo)
	mux.HandleFunc("GET /v1/users/{userID}/matches", handler.ListUserMatches)
}

func registerInviteRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/invites", handler.CreateInvite)
	mux.HandleFunc("GET /v1/invites", handler.ListPendingInvites)
	mux.HandleFunc("POST /v1/invites/accept", handler.AcceptInvite)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("PUT /v1/matches/{matchID}/booking", handler.UpdateBooking)
	mux.HandleFunc("POST /v1/matches/{matchID}/score", handler.SubmitScore)
	mux.HandleFunc("POST /v1/matches/{matchID}/confirm", handler.ConfirmScore)
	mux.HandleFunc("POST /v1/matches/{matchID}/dispute", handler.DisputeScore)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/auto-pairing", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunAutoPairingJob)))
	mux.Handle("POST /v1/internal/jobs/fixtures", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunFixturesJob)))
	mux.Handle("POST /v1/internal/jobs/integrity", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunIntegrityJob)))
	mux.Handle("POST /v1/internal/matches/{matchID}/resolve-dispute", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ResolveDispute)))
}
