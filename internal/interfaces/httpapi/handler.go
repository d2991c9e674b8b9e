package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/penca-app/penca-api/internal/domain/identity"
	"github.com/penca-app/penca-api/internal/platform/logging"
	"github.com/penca-app/penca-api/internal/usecase"
)

type Handler struct {
	poolService        *usecase.PoolService
	scheduleService    *usecase.ScheduleService
	membershipService  *usecase.MembershipService
	predictionService  *usecase.PredictionService
	publicationService *usecase.PublicationService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	poolService *usecase.PoolService,
	scheduleService *usecase.ScheduleService,
	membershipService *usecase.MembershipService,
	predictionService *usecase.PredictionService,
	publicationService *usecase.PublicationService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		poolService:        poolService,
		scheduleService:    scheduleService,
		membershipService:  membershipService,
		predictionService:  predictionService,
		publicationService: publicationService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.decodeRequest")
	defer span.End()

	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(payload); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func requirePrincipal(ctx context.Context) (identity.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return identity.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	return principal, nil
}

func parseKickoff(raw string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: kickoff_at must be RFC3339: %v", usecase.ErrInvalidInput, err)
	}
	return parsed.UTC(), nil
}

func formatOptionalTime(v *time.Time) string {
	if v == nil || v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}
