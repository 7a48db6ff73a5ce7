package quote_reservation

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/BBQ-ReservationService/internal/api/handlers"
	"github.com/m04kA/BBQ-ReservationService/internal/domain"
	quoteReservation "github.com/m04kA/BBQ-ReservationService/internal/usecase/quote_reservation"
)

const (
	msgInvalidFacilityID = "잘못된 시설 식별자입니다"
	msgInvalidDate       = "날짜 형식이 올바르지 않습니다 (YYYY-MM-DD)"
	msgInvalidSlots      = "잘못된 시간대 목록입니다"
	msgFacilityNotFound  = "시설을 찾을 수 없습니다"
)

// QuoteResponse HTTP response model
type QuoteResponse struct {
	FacilityID  int64  `json:"facilityId"`
	Date        string `json:"date"`
	SlotCount   int    `json:"slotCount"`
	UnitPrice   int64  `json:"unitPrice"`
	IsWeekend   bool   `json:"isWeekend"`
	TotalAmount int64  `json:"totalAmount"`
}

type Handler struct {
	useCase QuoteReservationUseCase
	logger  Logger
}

func NewHandler(useCase QuoteReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/facilities/{facilityId}/quote?date=YYYY-MM-DD&slots=1,2
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	facilityID, err := strconv.ParseInt(vars["facilityId"], 10, 64)
	if err != nil || facilityID <= 0 {
		h.logger.Warn("GET /facilities/{id}/quote - Invalid facility id: %s", vars["facilityId"])
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /facilities/%d/quote - Invalid date: %s", facilityID, r.URL.Query().Get("date"))
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	slots, err := parseSlotIDs(r.URL.Query().Get("slots"))
	if err != nil {
		h.logger.Warn("GET /facilities/%d/quote - Invalid slots: %s", facilityID, r.URL.Query().Get("slots"))
		handlers.RespondBadRequest(w, msgInvalidSlots)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &quoteReservation.Request{
		FacilityID: facilityID,
		Date:       date,
		TimeSlots:  slots,
	})
	if err != nil {
		switch {
		case errors.Is(err, quoteReservation.ErrFacilityNotFound):
			h.logger.Warn("GET /facilities/%d/quote - Facility not found", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, quoteReservation.ErrInvalidInput):
			h.logger.Warn("GET /facilities/%d/quote - Invalid input: %v", facilityID, err)
			handlers.RespondBadRequest(w, msgInvalidSlots)

		default:
			h.logger.Error("GET /facilities/%d/quote - Failed: %v", facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &QuoteResponse{
		FacilityID:  result.FacilityID,
		Date:        result.Date.Format(domain.DateFormat),
		SlotCount:   result.SlotCount,
		UnitPrice:   result.UnitPrice,
		IsWeekend:   result.IsWeekend,
		TotalAmount: result.TotalAmount,
	})
}

// parseSlotIDs разбирает список ID слотов через запятую.
// Пустой параметр дает пустой список (стоимость будет нулевой)
func parseSlotIDs(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	slots := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		slots = append(slots, id)
	}
	return slots, nil
}
