package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/pools", handler.ListPools)
	mux.HandleFunc("GET /v1/pools/{poolID}", handler.GetPoolDetail)
	mux.HandleFunc("GET /v1/pools/{poolID}/teams", handler.ListTeamsByPool)
	mux.HandleFunc("GET /v1/pools/{poolID}/divisionals", handler.ListDivisionalsByPool)
	mux.HandleFunc("GET /v1/pools/{poolID}/matchdays", handler.ListMatchdaysByPool)
	mux.HandleFunc("GET /v1/pools/{poolID}/matches", handler.ListMatchesByPool)
	mux.HandleFunc("GET /v1/pools/{poolID}/participants", handler.ListParticipantsByPool)
	mux.HandleFunc("GET /v1/pools/{poolID}/standings", handler.ListPoolStandings)
	mux.HandleFunc("GET /v1/pools/{poolID}/matches/{matchID}/predictions", handler.ListPredictionsByMatch)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier SessionVerifier) {
	registerAuthorizedPoolRoutes(mux, handler, verifier)
	registerAuthorizedScheduleRoutes(mux, handler, verifier)
	registerAuthorizedMembershipRoutes(mux, handler, verifier)
	registerAuthorizedPredictionRoutes(mux, handler, verifier)
}

func registerAuthorizedPoolRoutes(mux *http.ServeMux, handler *Handler, verifier SessionVerifier) {
	mux.Handle("POST /v1/pools", RequireSession(verifier, http.HandlerFunc(handler.CreatePool)))
	mux.Handle("PUT /v1/pools/{poolID}", RequireSession(verifier, http.HandlerFunc(handler.UpdatePool)))
	mux.Handle("DELETE /v1/pools/{poolID}", RequireSession(verifier, http.HandlerFunc(handler.DeletePool)))
}

func registerAuthorizedScheduleRoutes(mux *http.ServeMux, handler *Handler, verifier SessionVerifier) {
	mux.Handle("POST /v1/pools/{poolID}/teams", RequireSession(verifier, http.HandlerFunc(handler.CreateTeam)))
	mux.Handle("PUT /v1/pools/{poolID}/teams/{teamID}", RequireSession(verifier, http.HandlerFunc(handler.UpdateTeam)))
	mux.Handle("DELETE /v1/pools/{poolID}/teams/{teamID}", RequireSession(verifier, http.HandlerFunc(handler.DeleteTeam)))
	mux.Handle("POST /v1/pools/{poolID}/divisionals", RequireSession(verifier, http.HandlerFunc(handler.CreateDivisional)))
	mux.Handle("DELETE /v1/pools/{poolID}/divisionals/{divisionalID}", RequireSession(verifier, http.HandlerFunc(handler.DeleteDivisional)))
	mux.Handle("POST /v1/pools/{poolID}/matchdays", RequireSession(verifier, http.HandlerFunc(handler.CreateMatchday)))
	mux.Handle("DELETE /v1/pools/{poolID}/matchdays/{matchdayID}", RequireSession(verifier, http.HandlerFunc(handler.DeleteMatchday)))
	mux.Handle("POST /v1/pools/{poolID}/matches", RequireSession(verifier, http.HandlerFunc(handler.CreateMatch)))
	mux.Handle("PUT /v1/pools/{poolID}/matches/{matchID}", RequireSession(verifier, http.HandlerFunc(handler.UpdateMatch)))
	mux.Handle("DELETE /v1/pools/{poolID}/matches/{matchID}", RequireSession(verifier, http.HandlerFunc(handler.DeleteMatch)))
	mux.Handle("POST /v1/pools/{poolID}/matches/{matchID}/live", RequireSession(verifier, http.HandlerFunc(handler.MarkMatchLive)))
	mux.Handle("POST /v1/pools/{poolID}/matches/{matchID}/result", RequireSession(verifier, http.HandlerFunc(handler.PublishMatchResult)))
}

func registerAuthorizedMembershipRoutes(mux *http.ServeMux, handler *Handler, verifier SessionVerifier) {
	mux.Handle("POST /v1/pools/{poolID}/join-requests", RequireSession(verifier, http.HandlerFunc(handler.RequestJoin)))
	mux.Handle("GET /v1/pools/{poolID}/join-requests", RequireSession(verifier, http.HandlerFunc(handler.ListJoinRequests)))
	mux.Handle("POST /v1/pools/{poolID}/join-requests/{userID}/approve", RequireSession(verifier, http.HandlerFunc(handler.ApproveJoinRequest)))
	mux.Handle("POST /v1/pools/{poolID}/join-requests/{userID}/reject", RequireSession(verifier, http.HandlerFunc(handler.RejectJoinRequest)))
}

func registerAuthorizedPredictionRoutes(mux *http.ServeMux, handler *Handler, verifier SessionVerifier) {
	mux.Handle("GET /v1/pools/{poolID}/predictions/me", RequireSession(verifier, http.HandlerFunc(handler.ListMyPredictions)))
	mux.Handle("PUT /v1/pools/{poolID}/matches/{matchID}/prediction", RequireSession(verifier, http.HandlerFunc(handler.SaveMyPrediction)))
}
