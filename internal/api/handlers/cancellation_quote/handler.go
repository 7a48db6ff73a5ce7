package cancellation_quote

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/BBQ-ReservationService/internal/api/handlers"
	"github.com/m04kA/BBQ-ReservationService/internal/api/middleware"
	cancellationQuote "github.com/m04kA/BBQ-ReservationService/internal/usecase/cancellation_quote"
)

const (
	msgInvalidReservationID = "잘못된 예약 식별자입니다"
	msgUnauthorized         = "인증이 필요합니다"
	msgReservationNotFound  = "예약을 찾을 수 없습니다"
	msgAccessDenied         = "접근 권한이 없습니다"
	msgNotCancellable       = "이미 취소된 예약입니다"
)

// CancellationQuoteResponse HTTP response model
type CancellationQuoteResponse struct {
	ReservationID  int64   `json:"reservationId"`
	Allowed        bool    `json:"allowed"`
	Reason         string  `json:"reason,omitempty"`
	OriginalAmount int64   `json:"originalAmount"`
	FeeRate        float64 `json:"feeRate"`
	FeeAmount      int64   `json:"feeAmount"`
	RefundAmount   int64   `json:"refundAmount"`
}

type Handler struct {
	useCase CancellationQuoteUseCase
	logger  Logger
}

func NewHandler(useCase CancellationQuoteUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations/{reservationId}/cancellation-quote
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil || reservationID <= 0 {
		h.logger.Warn("GET /reservations/{id}/cancellation-quote - Invalid reservation id: %s", vars["reservationId"])
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancellationQuote.Request{
		ReservationID: reservationID,
		Actor:         actor,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancellationQuote.ErrReservationNotFound):
			h.logger.Warn("GET /reservations/%d/cancellation-quote - Not found", reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, cancellationQuote.ErrAccessDenied):
			h.logger.Warn("GET /reservations/%d/cancellation-quote - Access denied for actor=%d", reservationID, actor.ID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, cancellationQuote.ErrNotCancellable):
			h.logger.Warn("GET /reservations/%d/cancellation-quote - Not cancellable", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgNotCancellable)

		default:
			h.logger.Error("GET /reservations/%d/cancellation-quote - Failed: %v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &CancellationQuoteResponse{
		ReservationID:  result.ReservationID,
		Allowed:        result.Allowed,
		Reason:         result.Reason,
		OriginalAmount: result.OriginalAmount,
		FeeRate:        result.FeeRate,
		FeeAmount:      result.FeeAmount,
		RefundAmount:   result.RefundAmount,
	})
}
