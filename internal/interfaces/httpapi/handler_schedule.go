package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/penca-app/penca-api/internal/domain/divisional"
	"github.com/penca-app/penca-api/internal/domain/match"
	"github.com/penca-app/penca-api/internal/domain/matchday"
	"github.com/penca-app/penca-api/internal/domain/team"
	"github.com/penca-app/penca-api/internal/usecase"
)

type saveTeamRequest struct {
	Name         string `json:"name" validate:"required,max=120"`
	LogoURL      string `json:"logoUrl" validate:"omitempty,max=500"`
	DivisionalID string `json:"divisionalId" validate:"omitempty,max=64"`
}

type saveDivisionalRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

type saveMatchdayRequest struct {
	Number       int    `json:"number" validate:"required,gt=0"`
	DisplayName  string `json:"displayName" validate:"omitempty,max=120"`
	DivisionalID string `json:"divisionalId" validate:"omitempty,max=64"`
}

type saveMatchRequest struct {
	HomeTeamID   string `json:"homeTeamId" validate:"required"`
	AwayTeamID   string `json:"awayTeamId" validate:"required"`
	KickoffAt    string `json:"kickoffAt" validate:"required"`
	MatchdayID   string `json:"matchdayId" validate:"omitempty,max=64"`
	DivisionalID string `json:"divisionalId" validate:"omitempty,max=64"`
}

type teamDTO struct {
	ID           string `json:"id"`
	PoolID       string `json:"poolId"`
	Name         string `json:"name"`
	LogoURL      string `json:"logoUrl,omitempty"`
	DivisionalID string `json:"divisionalId,omitempty"`
}

type divisionalDTO struct {
	ID     string `json:"id"`
	PoolID string `json:"poolId"`
	Name   string `json:"name"`
}

type matchdayDTO struct {
	ID           string `json:"id"`
	PoolID       string `json:"poolId"`
	Number       int    `json:"number"`
	DisplayName  string `json:"displayName,omitempty"`
	DivisionalID string `json:"divisionalId,omitempty"`
}

type matchDTO struct {
	ID           string `json:"id"`
	PoolID       string `json:"poolId"`
	MatchdayID   string `json:"matchdayId,omitempty"`
	DivisionalID string `json:"divisionalId,omitempty"`
	HomeTeamID   string `json:"homeTeamId"`
	AwayTeamID   string `json:"awayTeamId"`
	KickoffAt    string `json:"kickoffAt"`
	Status       string `json:"status"`
	HomeScore    *int   `json:"homeScore,omitempty"`
	AwayScore    *int   `json:"awayScore,omitempty"`
	PublishedAt  string `json:"publishedAt,omitempty"`
}

func teamToDTO(ctx context.Context, v team.Team) teamDTO {
	ctx, span := startSpan(ctx, "httpapi.teamToDTO")
	defer span.End()

	return teamDTO{
		ID:           v.ID,
		PoolID:       v.PoolID,
		Name:         v.Name,
		LogoURL:      v.LogoURL,
		DivisionalID: v.DivisionalID,
	}
}

func divisionalToDTO(ctx context.Context, v divisional.Divisional) divisionalDTO {
	ctx, span := startSpan(ctx, "httpapi.divisionalToDTO")
	defer span.End()

	return divisionalDTO{
		ID:     v.ID,
		PoolID: v.PoolID,
		Name:   v.Name,
	}
}

func matchdayToDTO(ctx context.Context, v matchday.Matchday) matchdayDTO {
	ctx, span := startSpan(ctx, "httpapi.matchdayToDTO")
	defer span.End()

	return matchdayDTO{
		ID:           v.ID,
		PoolID:       v.PoolID,
		Number:       v.Number,
		DisplayName:  v.DisplayName,
		DivisionalID: v.DivisionalID,
	}
}

func matchToDTO(ctx context.Context, v match.Match) matchDTO {
	ctx, span := startSpan(ctx, "httpapi.matchToDTO")
	defer span.End()

	dto := matchDTO{
		ID:           v.ID,
		PoolID:       v.PoolID,
		MatchdayID:   v.MatchdayID,
		DivisionalID: v.DivisionalID,
		HomeTeamID:   v.HomeTeamID,
		AwayTeamID:   v.AwayTeamID,
		KickoffAt:    v.KickoffAt.UTC().Format(time.RFC3339),
		Status:       match.NormalizeStatus(v.Status),
		PublishedAt:  formatOptionalTime(v.PublishedAt),
	}

	// Scores are hidden while a match is still scheduled.
	if dto.Status != match.StatusScheduled {
		home, away := v.HomeScore, v.AwayScore
		dto.HomeScore = &home
		dto.AwayScore = &away
	}

	return dto
}

func (h *Handler) ListTeamsByPool(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamsByPool")
	defer span.End()

	poolID := r.PathValue("poolID")
	teams, err := h.scheduleService.ListTeams(ctx, poolID)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "pool_id", poolID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(ctx, t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	poolID := r.PathValue("poolID")
	var req saveTeamRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.scheduleService.CreateTeam(ctx, usecase.SaveTeamInput{
		ActorUserID:  principal.UserID,
		PoolID:       poolID,
		Name:         req.Name,
		LogoURL:      req.LogoURL,
		DivisionalID: req.DivisionalID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "pool_id", poolID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(ctx, created))
}

func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTeam")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	poolID := r.PathValue("poolID")
	teamID := r.PathValue("teamID")
	var req saveTeamRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.scheduleService.UpdateTeam(ctx, usecase.SaveTeamInput{
		ActorUserID:  principal.UserID,
		PoolID:       poolID,
		TeamID:       teamID,
		Name:         req.Name,
		LogoURL:      req.LogoURL,
		DivisionalID: req.DivisionalID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update team failed", "pool_id", poolID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(ctx, updated))
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTeam")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	poolID := r.PathValue("poolID")
	teamID := r.PathValue("teamID")
	if err := h.scheduleService.DeleteTeam(ctx, poolID, teamID, principal.UserID); err != nil {
		h.logger.WarnContext(ctx, "delete team failed", "pool_id", poolID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) ListDivisionalsByPool(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDivisionalsByPool")
	defer span.End()

	poolID := r.PathValue("poolID")
	divisionals, err := h.scheduleService.ListDivisionals(ctx, poolID)
	if err != nil {
		h.logger.WarnContext(ctx, "list divisionals failed", "pool_id", poolID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]divisionalDTO, 0, len(divisionals))
	for _, d := range divisionals {
		items = append(items, divisionalToDTO(ctx, d))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateDivisional(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateDivisional")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	poolID := r.PathValue("poolID")
	var req saveDivisionalRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.scheduleService.CreateDivisional(ctx, usecase.SaveDivisionalInput{
		ActorUserID: principal.UserID,
		PoolID:      poolID,
		Name:        req.Name,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create divisional failed", "pool_id", poolID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, divisionalToDTO(ctx, created))
}

func (h *Handler) DeleteDivisional(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteDivisional")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	poolID := r.PathValue("poolID")
	divisionalID := r.PathValue("divisionalID")
	if err := h.scheduleService.DeleteDivisional(ctx, poolID, divisionalID, principal.UserID); err != nil {
		h.logger.WarnContext(ctx, "delete divisional failed", "pool_id", poolID, "divisional_id", divisionalID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) ListMatchdaysByPool(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchdaysByPool")
	defer span.End()

	poolID := r.PathValue("poolID")
	matchdays, err := h.scheduleService.ListMatchdays(ctx, poolID)
	if err != nil {
		h.logger.WarnContext(ctx, "list matchdays failed", "pool_id", poolID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchdayDTO, 0, len(matchdays))
	for _, m := range matchdays {
		items = append(items, matchdayToDTO(ctx, m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateMatchday(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatchday")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	poolID := r.PathValue("poolID")
	var req saveMatchdayRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.scheduleService.CreateMatchday(ctx, usecase.SaveMatchdayInput{
		ActorUserID:  principal.UserID,
		PoolID:       poolID,
		Number:       req.Number,
		DisplayName:  req.DisplayName,
		DivisionalID: req.DivisionalID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create matchday failed", "pool_id", poolID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchdayToDTO(ctx, created))
}

func (h *Handler) DeleteMatchday(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMatchday")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	poolID := r.PathValue("poolID")
	matchdayID := r.PathValue("matchdayID")
	if err := h.scheduleService.DeleteMatchday(ctx, poolID, matchdayID, principal.UserID); err != nil {
		h.logger.WarnContext(ctx, "delete matchday failed", "pool_id", poolID, "matchday_id", matchdayID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) ListMatchesByPool(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchesByPool")
	defer span.End()

	poolID := r.PathValue("poolID")
	matches, err := h.scheduleService.ListMatches(ctx, poolID)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "pool_id", poolID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(ctx, m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	poolID := r.PathValue("poolID")
	var req saveMatchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	kickoffAt, err := parseKickoff(req.KickoffAt)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.scheduleService.CreateMatch(ctx, usecase.SaveMatchInput{
		ActorUserID:  principal.UserID,
		PoolID:       poolID,
		HomeTeamID:   req.HomeTeamID,
		AwayTeamID:   req.AwayTeamID,
		KickoffAt:    kickoffAt,
		MatchdayID:   req.MatchdayID,
		DivisionalID: req.DivisionalID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed", "pool_id", poolID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(ctx, created))
}

func (h *Handler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatch")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	poolID := r.PathValue("poolID")
	matchID := r.PathValue("matchID")
	var req saveMatchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	kickoffAt, err := parseKickoff(req.KickoffAt)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.scheduleService.UpdateMatch(ctx, usecase.SaveMatchInput{
		ActorUserID:  principal.UserID,
		PoolID:       poolID,
		MatchID:      matchID,
		HomeTeamID:   req.HomeTeamID,
		AwayTeamID:   req.AwayTeamID,
		KickoffAt:    kickoffAt,
		MatchdayID:   req.MatchdayID,
		DivisionalID: req.DivisionalID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update match failed", "pool_id", poolID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(ctx, updated))
}

func (h *Handler) MarkMatchLive(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MarkMatchLive")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	poolID := r.PathValue("poolID")
	matchID := r.PathValue("matchID")
	updated, err := h.scheduleService.MarkMatchLive(ctx, poolID, matchID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "mark match live failed", "pool_id", poolID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(ctx, updated))
}

func (h *Handler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMatch")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	poolID := r.PathValue("poolID")
	matchID := r.PathValue("matchID")
	if err := h.scheduleService.DeleteMatch(ctx, poolID, matchID, principal.UserID); err != nil {
		h.logger.WarnContext(ctx, "delete match failed", "pool_id", poolID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}
