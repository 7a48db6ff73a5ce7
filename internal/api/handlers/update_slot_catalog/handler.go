package update_slot_catalog

import (
	"errors"
	"net/http"

	"github.com/m04kA/BBQ-ReservationService/internal/api/handlers"
	"github.com/m04kA/BBQ-ReservationService/internal/api/middleware"
	catalogService "github.com/m04kA/BBQ-ReservationService/internal/service/catalog"
	"github.com/m04kA/BBQ-ReservationService/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "잘못된 요청 형식입니다"
	msgInvalidCatalog     = "시간대 구성이 올바르지 않습니다"
	msgUnauthorized       = "인증이 필요합니다"
	msgAccessDenied       = "접근 권한이 없습니다"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/time-slots
// Полная замена каталога; доступно только оператору
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	if !actor.IsOperator() {
		h.logger.Warn("PUT /time-slots - Access denied for actor=%d", actor.ID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	var req models.UpdateCatalogRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /time-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.Update(r.Context(), req.ToDomain()); err != nil {
		switch {
		case errors.Is(err, catalogService.ErrInvalidCatalog):
			h.logger.Warn("PUT /time-slots - Invalid catalog: %v", err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidCatalog)

		default:
			h.logger.Error("PUT /time-slots - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	slots, err := h.service.GetAll(r.Context())
	if err != nil {
		h.logger.Error("PUT /time-slots - Failed to read back catalog: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /time-slots - Catalog replaced by operator=%d, %d slots", actor.ID, len(slots))
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainCatalog(slots))
}
