package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/penca-app/penca-api/internal/domain/pool"
	"github.com/penca-app/penca-api/internal/usecase"
)

type createPoolRequest struct {
	Name             string `json:"name" validate:"required,max=120"`
	Description      string `json:"description" validate:"max=500"`
	ExactScorePoints int    `json:"exactScorePoints" validate:"gte=0"`
	DifferencePoints int    `json:"differencePoints" validate:"gte=0"`
	WinnerPoints     int    `json:"winnerPoints" validate:"gte=0"`
}

type updatePoolRequest struct {
	Name             string `json:"name" validate:"omitempty,max=120"`
	Description      string `json:"description" validate:"max=500"`
	Status           string `json:"status" validate:"omitempty,max=20"`
	ExactScorePoints int    `json:"exactScorePoints" validate:"gte=0"`
	DifferencePoints int    `json:"differencePoints" validate:"gte=0"`
	WinnerPoints     int    `json:"winnerPoints" validate:"gte=0"`
}

type scoringRulesDTO struct {
	ExactScorePoints int `json:"exactScorePoints"`
	DifferencePoints int `json:"differencePoints"`
	WinnerPoints     int `json:"winnerPoints"`
}

type poolDTO struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	OwnerUserID  string          `json:"ownerUserId"`
	Status       string          `json:"status"`
	Rules        scoringRulesDTO `json:"rules"`
	CreatedAtUTC string          `json:"createdAtUtc"`
	UpdatedAtUTC string          `json:"updatedAtUtc"`
}

type poolDetailDTO struct {
	Pool        poolDTO         `json:"pool"`
	Teams       []teamDTO       `json:"teams"`
	Divisionals []divisionalDTO `json:"divisionals"`
	Matchdays   []matchdayDTO   `json:"matchdays"`
	Matches     []matchDTO      `json:"matches"`
}

func poolToDTO(ctx context.Context, v pool.Pool) poolDTO {
	ctx, span := startSpan(ctx, "httpapi.poolToDTO")
	defer span.End()

	return poolDTO{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		OwnerUserID: v.OwnerUserID,
		Status:      v.Status,
		Rules: scoringRulesDTO{
			ExactScorePoints: v.Rules.ExactScorePoints,
			DifferencePoints: v.Rules.DifferencePoints,
			WinnerPoints:     v.Rules.WinnerPoints,
		},
		CreatedAtUTC: v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAtUTC: v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func poolDetailToDTO(ctx context.Context, v usecase.PoolDetail) poolDetailDTO {
	ctx, span := startSpan(ctx, "httpapi.poolDetailToDTO")
	defer span.End()

	teams := make([]teamDTO, 0, len(v.Teams))
	for _, t := range v.Teams {
		teams = append(teams, teamToDTO(ctx, t))
	}
	divisionals := make([]divisionalDTO, 0, len(v.Divisionals))
	for _, d := range v.Divisionals {
		divisionals = append(divisionals, divisionalToDTO(ctx, d))
	}
	matchdays := make([]matchdayDTO, 0, len(v.Matchdays))
	for _, m := range v.Matchdays {
		matchdays = append(matchdays, matchdayToDTO(ctx, m))
	}
	matches := make([]matchDTO, 0, len(v.Matches))
	for _, m := range v.Matches {
		matches = append(matches, matchToDTO(ctx, m))
	}

	return poolDetailDTO{
		Pool:        poolToDTO(ctx, v.Pool),
		Teams:       teams,
		Divisionals: divisionals,
		Matchdays:   matchdays,
		Matches:     matches,
	}
}

func (h *Handler) ListPools(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPools")
	defer span.End()

	pools, err := h.poolService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list pools failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]poolDTO, 0, len(pools))
	for _, p := range pools {
		items = append(items, poolToDTO(ctx, p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPoolDetail(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPoolDetail")
	defer span.End()

	poolID := r.PathValue("poolID")
	detail, err := h.poolService.GetDetail(ctx, poolID)
	if err != nil {
		h.logger.WarnContext(ctx, "get pool detail failed", "pool_id", poolID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, poolDetailToDTO(ctx, detail))
}

func (h *Handler) CreatePool(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePool")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createPoolRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.poolService.Create(ctx, usecase.CreatePoolInput{
		OwnerUserID:      principal.UserID,
		Name:             req.Name,
		Description:      req.Description,
		ExactScorePoints: req.ExactScorePoints,
		DifferencePoints: req.DifferencePoints,
		WinnerPoints:     req.WinnerPoints,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create pool failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, poolToDTO(ctx, created))
}

func (h *Handler) UpdatePool(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePool")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	poolID := r.PathValue("poolID")
	var req updatePoolRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.poolService.Update(ctx, usecase.UpdatePoolInput{
		ActorUserID:      principal.UserID,
		PoolID:           poolID,
		Name:             req.Name,
		Description:      req.Description,
		Status:           req.Status,
		ExactScorePoints: req.ExactScorePoints,
		DifferencePoints: req.DifferencePoints,
		WinnerPoints:     req.WinnerPoints,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update pool failed", "pool_id", poolID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, poolToDTO(ctx, updated))
}

func (h *Handler) DeletePool(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePool")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	poolID := r.PathValue("poolID")
	if err := h.poolService.Delete(ctx, poolID, principal.UserID); err != nil {
		h.logger.WarnContext(ctx, "delete pool failed", "pool_id", poolID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}
