package models

import (
	"errors"
	"time"

	"github.com/m04kA/BBQ-ReservationService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")

	// ErrInvalidAction возвращается при некорректном действии перехода
	ErrInvalidAction = errors.New("invalid transition action")
)

// Request модели

// TransitionRequest запрос на переход статуса бронирования
type TransitionRequest struct {
	Action             string  `json:"action"` // approve | reject | cancel | mark_refunded
	AdminMemo          *string `json:"adminMemo,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// GetUserReservationsRequest запрос истории бронирований пользователя
type GetUserReservationsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetFacilityReservationsRequest запрос бронирований объекта с фильтрацией
type GetFacilityReservationsRequest struct {
	FacilityID      int64      `json:"facilityId"`
	SiteID          *int64     `json:"siteId,omitempty"`          // Фильтр по месту (опционально)
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetFacilityReservationsRequest) ToDomainFilter() (domain.FacilityReservationsFilter, error) {
	filter := domain.FacilityReservationsFilter{
		FacilityID:      r.FacilityID,
		SiteID:          r.SiteID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// CustomerResponse данные инициатора бронирования
type CustomerResponse struct {
	UserID     *int64  `json:"userId,omitempty"`
	GuestName  *string `json:"guestName,omitempty"`
	GuestPhone *string `json:"guestPhone,omitempty"`
	GuestEmail *string `json:"guestEmail,omitempty"`
	IsGuest    bool    `json:"isGuest"`
}

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID              int64    `json:"id"`
	FacilityID      int64    `json:"facilityId"`
	SiteID          int64    `json:"siteId"`
	ReservationDate string   `json:"reservationDate"` // "2025-10-15"
	TimeSlots       []int64  `json:"timeSlots"`
	SlotLabels      []string `json:"slotLabels"`
	TotalAmount     int64    `json:"totalAmount"`
	Status          string   `json:"status"`
	PaymentStatus   string   `json:"paymentStatus"`

	Customer        CustomerResponse `json:"customer"`
	SpecialRequests *string          `json:"specialRequests,omitempty"`
	AdminMemo       *string          `json:"adminMemo,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:              r.ID,
		FacilityID:      r.FacilityID,
		SiteID:          r.SiteID,
		ReservationDate: r.ReservationDate.Format(domain.DateFormat),
		TimeSlots:       r.TimeSlots,
		SlotLabels:      r.SlotLabels,
		TotalAmount:     r.TotalAmount,
		Status:          string(r.Status),
		PaymentStatus:   string(r.PaymentStatus),
		Customer: CustomerResponse{
			UserID:     r.Customer.UserID,
			GuestName:  r.Customer.GuestName,
			GuestPhone: r.Customer.GuestPhone,
			GuestEmail: r.Customer.GuestEmail,
			IsGuest:    r.Customer.IsGuest(),
		},
		SpecialRequests:    r.SpecialRequests,
		AdminMemo:          r.AdminMemo,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	if r.CancelledAt != nil {
		cancelledAt := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}
	for _, r := range reservations {
		resp.Reservations = append(resp.Reservations, *FromDomainReservation(r))
	}
	return resp
}

// ToDomainReservationStatus конвертирует строку в domain статус
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	switch domain.ReservationStatus(status) {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCancelled:
		return domain.ReservationStatus(status), nil
	default:
		return "", ErrInvalidStatus
	}
}

// ToDomainTransitionAction конвертирует строку в domain действие
func ToDomainTransitionAction(action string) (domain.TransitionAction, error) {
	switch domain.TransitionAction(action) {
	case domain.ActionApprove, domain.ActionReject, domain.ActionCancel, domain.ActionMarkRefunded:
		return domain.TransitionAction(action), nil
	default:
		return "", ErrInvalidAction
	}
}
