package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/penca-app/penca-api/internal/domain/prediction"
	"github.com/penca-app/penca-api/internal/usecase"
)

type savePredictionRequest struct {
	HomeScore *int `json:"homeScore" validate:"required,gte=0"`
	AwayScore *int `json:"awayScore" validate:"required,gte=0"`
}

type predictionDTO struct {
	PoolID         string `json:"poolId"`
	UserID         string `json:"userId"`
	MatchID        string `json:"matchId"`
	HomeScore      int    `json:"homeScore"`
	AwayScore      int    `json:"awayScore"`
	PredictedAtUTC string `json:"predictedAtUtc"`
}

func predictionToDTO(ctx context.Context, v prediction.Prediction) predictionDTO {
	ctx, span := startSpan(ctx, "httpapi.predictionToDTO")
	defer span.End()

	return predictionDTO{
		PoolID:         v.PoolID,
		UserID:         v.UserID,
		MatchID:        v.MatchID,
		HomeScore:      v.HomeScore,
		AwayScore:      v.AwayScore,
		PredictedAtUTC: v.PredictedAt.UTC().Format(time.RFC3339),
	}
}

func (h *Handler) SaveMyPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveMyPrediction")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	poolID := r.PathValue("poolID")
	matchID := r.PathValue("matchID")
	var req savePredictionRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	saved, err := h.predictionService.Save(ctx, usecase.SavePredictionInput{
		ActorUserID: principal.UserID,
		PoolID:      poolID,
		MatchID:     matchID,
		HomeScore:   *req.HomeScore,
		AwayScore:   *req.AwayScore,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save prediction failed", "pool_id", poolID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, predictionToDTO(ctx, saved))
}

func (h *Handler) ListMyPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyPredictions")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	poolID := r.PathValue("poolID")
	predictions, err := h.predictionService.ListMine(ctx, poolID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list my predictions failed", "pool_id", poolID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]predictionDTO, 0, len(predictions))
	for _, p := range predictions {
		items = append(items, predictionToDTO(ctx, p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListPredictionsByMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPredictionsByMatch")
	defer span.End()

	poolID := r.PathValue("poolID")
	matchID := r.PathValue("matchID")
	predictions, err := h.predictionService.ListByMatch(ctx, poolID, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list match predictions failed", "pool_id", poolID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]predictionDTO, 0, len(predictions))
	for _, p := range predictions {
		items = append(items, predictionToDTO(ctx, p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
