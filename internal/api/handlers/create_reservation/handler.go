package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/BBQ-ReservationService/internal/api/handlers"
	"github.com/m04kA/BBQ-ReservationService/internal/api/middleware"
	createReservation "github.com/m04kA/BBQ-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "잘못된 요청 형식입니다"
	msgInvalidDate        = "예약 날짜 형식이 올바르지 않습니다 (YYYY-MM-DD)"
	msgUnauthorized       = "인증이 필요합니다"
	msgFacilityNotFound   = "시설을 찾을 수 없습니다"
	msgSiteNotFound       = "사이트를 찾을 수 없습니다"
	msgUnknownTimeSlot    = "존재하지 않는 시간대입니다"
	msgSlotConflict       = "이미 예약된 시간대입니다"
	msgOutsideWindow      = "예약 가능한 기간이 아닙니다"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse date %q: %v", req.ReservationDate, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSlotConflict):
			h.logger.Warn("POST /reservations - Slot conflict: site_id=%d, date=%s", req.SiteID, req.ReservationDate)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createReservation.ErrFacilityNotFound):
			h.logger.Warn("POST /reservations - Facility not found: facility_id=%d", req.FacilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, createReservation.ErrSiteNotFound):
			h.logger.Warn("POST /reservations - Site not found: site_id=%d", req.SiteID)
			handlers.RespondNotFound(w, msgSiteNotFound)

		case errors.Is(err, createReservation.ErrUnknownTimeSlot):
			h.logger.Warn("POST /reservations - Unknown time slot: slots=%v", req.TimeSlots)
			handlers.RespondBadRequest(w, msgUnknownTimeSlot)

		case errors.Is(err, createReservation.ErrOutsideBookingWindow):
			h.logger.Warn("POST /reservations - Outside booking window: date=%s, %v", req.ReservationDate, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgOutsideWindow)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: site_id=%d, error=%v", req.SiteID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, site_id=%d, amount=%d",
		result.ID, result.SiteID, result.TotalAmount)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
