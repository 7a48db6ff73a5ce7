package transition_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/BBQ-ReservationService/internal/api/handlers"
	"github.com/m04kA/BBQ-ReservationService/internal/api/middleware"
	reservationsService "github.com/m04kA/BBQ-ReservationService/internal/service/reservations"
	"github.com/m04kA/BBQ-ReservationService/internal/service/reservations/models"
)

const (
	msgInvalidReservationID = "잘못된 예약 식별자입니다"
	msgInvalidRequestBody   = "잘못된 요청 형식입니다"
	msgUnauthorized         = "인증이 필요합니다"
	msgReservationNotFound  = "예약을 찾을 수 없습니다"
	msgAccessDenied         = "접근 권한이 없습니다"
	msgInvalidTransition    = "현재 상태에서 처리할 수 없는 요청입니다"
	msgDeadlinePassed       = "취소 가능 기한이 지났습니다"
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

// Handle PATCH /api/v1/reservations/{reservationId}/transition
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil || reservationID <= 0 {
		h.logger.Warn("PATCH /reservations/{id}/transition - Invalid reservation id: %s", vars["reservationId"])
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req models.TransitionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/%d/transition - Invalid request body: %v", reservationID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Transition(r.Context(), reservationID, actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, reservationsService.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/%d/transition - Not found", reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, reservationsService.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/%d/transition - Access denied for actor=%d", reservationID, actor.ID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, reservationsService.ErrInvalidTransition):
			h.logger.Warn("PATCH /reservations/%d/transition - Invalid transition: action=%s", reservationID, req.Action)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, reservationsService.ErrCancellationDeadlinePassed):
			h.logger.Warn("PATCH /reservations/%d/transition - Cancellation deadline passed", reservationID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgDeadlinePassed)

		case errors.Is(err, reservationsService.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/%d/transition - Invalid input: %v", reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /reservations/%d/transition - Failed: %v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/%d/transition - Applied action=%s, status=%s",
		reservationID, req.Action, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
