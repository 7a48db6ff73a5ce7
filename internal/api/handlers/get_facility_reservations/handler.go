package get_facility_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/BBQ-ReservationService/internal/api/handlers"
	"github.com/m04kA/BBQ-ReservationService/internal/api/middleware"
	reservationsService "github.com/m04kA/BBQ-ReservationService/internal/service/reservations"
)

const (
	msgInvalidFacilityID = "잘못된 시설 식별자입니다"
	msgInvalidFilter     = "잘못된 검색 조건입니다"
	msgUnauthorized      = "인증이 필요합니다"
	msgAccessDenied      = "접근 권한이 없습니다"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/facilities/{facilityId}/reservations
// Query: siteId, startDate, endDate, status, includeInactive
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	facilityID, err := strconv.ParseInt(vars["facilityId"], 10, 64)
	if err != nil || facilityID <= 0 {
		h.logger.Warn("GET /facilities/{id}/reservations - Invalid facility id: %s", vars["facilityId"])
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	req, err := parseQuery(facilityID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /facilities/%d/reservations - Invalid query: %v", facilityID, err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.GetFacilityReservations(r.Context(), req, actor)
	if err != nil {
		switch {
		case errors.Is(err, reservationsService.ErrAccessDenied):
			h.logger.Warn("GET /facilities/%d/reservations - Access denied for actor=%d", facilityID, actor.ID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, reservationsService.ErrInvalidInput):
			h.logger.Warn("GET /facilities/%d/reservations - Invalid input: %v", facilityID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /facilities/%d/reservations - Failed: %v", facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
