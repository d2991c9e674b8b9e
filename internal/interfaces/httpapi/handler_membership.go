package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/penca-app/penca-api/internal/domain/joinrequest"
	"github.com/penca-app/penca-api/internal/domain/participant"
)

type joinRequestDTO struct {
	PoolID         string `json:"poolId"`
	UserID         string `json:"userId"`
	DisplayName    string `json:"displayName,omitempty"`
	Username       string `json:"username,omitempty"`
	RequestedAtUTC string `json:"requestedAtUtc"`
}

type participantDTO struct {
	PoolID      string `json:"poolId"`
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName,omitempty"`
	Username    string `json:"username,omitempty"`
	Points      int    `json:"points"`
	JoinedAtUTC string `json:"joinedAtUtc"`
}

type standingDTO struct {
	participantDTO
	Rank int `json:"rank"`
}

func joinRequestToDTO(ctx context.Context, v joinrequest.JoinRequest) joinRequestDTO {
	ctx, span := startSpan(ctx, "httpapi.joinRequestToDTO")
	defer span.End()

	return joinRequestDTO{
		PoolID:         v.PoolID,
		UserID:         v.UserID,
		DisplayName:    v.DisplayName,
		Username:       v.Username,
		RequestedAtUTC: v.RequestedAt.UTC().Format(time.RFC3339),
	}
}

func participantToDTO(ctx context.Context, v participant.Participant) participantDTO {
	ctx, span := startSpan(ctx, "httpapi.participantToDTO")
	defer span.End()

	return participantDTO{
		PoolID:      v.PoolID,
		UserID:      v.UserID,
		DisplayName: v.DisplayName,
		Username:    v.Username,
		Points:      v.Points,
		JoinedAtUTC: v.JoinedAt.UTC().Format(time.RFC3339),
	}
}

func standingToDTO(ctx context.Context, v participant.Standing) standingDTO {
	ctx, span := startSpan(ctx, "httpapi.standingToDTO")
	defer span.End()

	return standingDTO{
		participantDTO: participantToDTO(ctx, v.Participant),
		Rank:           v.Rank,
	}
}

func (h *Handler) RequestJoin(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RequestJoin")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	poolID := r.PathValue("poolID")
	created, err := h.membershipService.RequestJoin(ctx, poolID, principal)
	if err != nil {
		h.logger.WarnContext(ctx, "request join failed", "pool_id", poolID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, joinRequestToDTO(ctx, created))
}

func (h *Handler) ListJoinRequests(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListJoinRequests")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	poolID := r.PathValue("poolID")
	requests, err := h.membershipService.ListJoinRequests(ctx, poolID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list join requests failed", "pool_id", poolID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]joinRequestDTO, 0, len(requests))
	for _, req := range requests {
		items = append(items, joinRequestToDTO(ctx, req))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ApproveJoinRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ApproveJoinRequest")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	poolID := r.PathValue("poolID")
	userID := r.PathValue("userID")
	approved, err := h.membershipService.Approve(ctx, poolID, userID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "approve join request failed", "pool_id", poolID, "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, participantToDTO(ctx, approved))
}

func (h *Handler) RejectJoinRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RejectJoinRequest")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	poolID := r.PathValue("poolID")
	userID := r.PathValue("userID")
	if err := h.membershipService.Reject(ctx, poolID, userID, principal.UserID); err != nil {
		h.logger.WarnContext(ctx, "reject join request failed", "pool_id", poolID, "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "rejected"})
}

func (h *Handler) ListParticipantsByPool(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListParticipantsByPool")
	defer span.End()

	poolID := r.PathValue("poolID")
	participants, err := h.membershipService.ListParticipants(ctx, poolID)
	if err != nil {
		h.logger.WarnContext(ctx, "list participants failed", "pool_id", poolID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]participantDTO, 0, len(participants))
	for _, p := range participants {
		items = append(items, participantToDTO(ctx, p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListPoolStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPoolStandings")
	defer span.End()

	poolID := r.PathValue("poolID")
	standings, err := h.membershipService.Standings(ctx, poolID)
	if err != nil {
		h.logger.WarnContext(ctx, "list standings failed", "pool_id", poolID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]standingDTO, 0, len(standings))
	for _, s := range standings {
		items = append(items, standingToDTO(ctx, s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
