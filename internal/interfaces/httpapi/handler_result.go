package httpapi

import (
	"context"
	"net/http"

	"github.com/penca-app/penca-api/internal/usecase"
)

type publishResultRequest struct {
	HomeScore *int `json:"homeScore" validate:"required,gte=0"`
	AwayScore *int `json:"awayScore" validate:"required,gte=0"`
	Force     bool `json:"force"`
}

type publishResultDTO struct {
	Match           matchDTO `json:"match"`
	PredictionCount int      `json:"predictionCount"`
	AwardedCount    int      `json:"awardedCount"`
	SkippedCount    int      `json:"skippedCount"`
	FailedCount     int      `json:"failedCount"`
	PointsAwarded   int      `json:"pointsAwarded"`
}

func publishResultToDTO(ctx context.Context, v usecase.PublishResultOutput) publishResultDTO {
	ctx, span := startSpan(ctx, "httpapi.publishResultToDTO")
	defer span.End()

	return publishResultDTO{
		Match:           matchToDTO(ctx, v.Match),
		PredictionCount: v.PredictionCount,
		AwardedCount:    v.AwardedCount,
		SkippedCount:    v.SkippedCount,
		FailedCount:     v.FailedCount,
		PointsAwarded:   v.PointsAwarded,
	}
}

func (h *Handler) PublishMatchResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PublishMatchResult")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	poolID := r.PathValue("poolID")
	matchID := r.PathValue("matchID")
	var req publishResultRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.publicationService.PublishResult(ctx, usecase.PublishResultInput{
		ActorUserID: principal.UserID,
		PoolID:      poolID,
		MatchID:     matchID,
		HomeScore:   *req.HomeScore,
		AwayScore:   *req.AwayScore,
		Force:       req.Force,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "publish result failed", "pool_id", poolID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "match result published",
		"pool_id", poolID,
		"match_id", matchID,
		"predictions", result.PredictionCount,
		"awarded", result.AwardedCount,
		"failed", result.FailedCount,
	)
	writeSuccess(ctx, w, http.StatusOK, publishResultToDTO(ctx, result))
}
