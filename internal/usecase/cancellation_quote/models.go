package cancellation_quote

import (
	"github.com/m04kA/BBQ-ReservationService/internal/domain"
)

// Request модель запроса расчета условий отмены
type Request struct {
	ReservationID int64        // ID бронирования
	Actor         domain.Actor // Инициатор запроса
}

// Response модель ответа с условиями отмены.
// Расчет консультативный и действителен на момент запроса: чем позже
// фактическая отмена, тем выше может оказаться штраф
type Response struct {
	ReservationID int64  // ID бронирования
	Allowed       bool   // Возможна ли отмена сейчас
	Reason        string // Причина отказа, если отмена невозможна

	OriginalAmount int64   // Исходная стоимость бронирования
	FeeRate        float64 // Ставка штрафа (0.0 - 1.0)
	FeeAmount      int64   // Сумма штрафа
	RefundAmount   int64   // Сумма к возврату
}
