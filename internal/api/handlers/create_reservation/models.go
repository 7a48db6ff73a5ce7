package create_reservation

import (
	"time"

	"github.com/m04kA/BBQ-ReservationService/internal/domain"
	createReservation "github.com/m04kA/BBQ-ReservationService/internal/usecase/create_reservation"
)

// GuestInfo данные гостя для бронирования без аккаунта
type GuestInfo struct {
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Email *string `json:"email,omitempty"`
}

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	FacilityID      int64      `json:"facilityId"`
	SiteID          int64      `json:"siteId"`
	ReservationDate string     `json:"reservationDate"` // "2025-10-15"
	TimeSlots       []int64    `json:"timeSlots"`
	Guest           *GuestInfo `json:"guest,omitempty"`
	SpecialRequests *string    `json:"specialRequests,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64    `json:"id"`
	FacilityID      int64    `json:"facilityId"`
	SiteID          int64    `json:"siteId"`
	ReservationDate string   `json:"reservationDate"`
	TimeSlots       []int64  `json:"timeSlots"`
	SlotLabels      []string `json:"slotLabels"`
	TotalAmount     int64    `json:"totalAmount"`
	Status          string   `json:"status"`
	PaymentStatus   string   `json:"paymentStatus"`
	UserID          *int64   `json:"userId,omitempty"`
	GuestName       *string  `json:"guestName,omitempty"`
	GuestPhone      *string  `json:"guestPhone,omitempty"`
	GuestEmail      *string  `json:"guestEmail,omitempty"`
	SpecialRequests *string  `json:"specialRequests,omitempty"`
	CreatedAt       string   `json:"createdAt"`
	UpdatedAt       string   `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Гостевые данные в теле имеют приоритет (бронирование, заведённое
// оператором по телефону); иначе бронирование привязывается к актору
func (r *CreateReservationRequest) ToUseCaseRequest(actor domain.Actor) (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.ReservationDate)
	if err != nil {
		return nil, err
	}

	req := &createReservation.Request{
		FacilityID:      r.FacilityID,
		SiteID:          r.SiteID,
		Date:            date,
		TimeSlots:       r.TimeSlots,
		SpecialRequests: r.SpecialRequests,
	}

	if r.Guest != nil {
		req.GuestName = &r.Guest.Name
		req.GuestPhone = &r.Guest.Phone
		req.GuestEmail = r.Guest.Email
	} else {
		userID := actor.ID
		req.UserID = &userID
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:              resp.ID,
		FacilityID:      resp.FacilityID,
		SiteID:          resp.SiteID,
		ReservationDate: resp.ReservationDate.Format(domain.DateFormat),
		TimeSlots:       resp.TimeSlots,
		SlotLabels:      resp.SlotLabels,
		TotalAmount:     resp.TotalAmount,
		Status:          resp.Status,
		PaymentStatus:   resp.PaymentStatus,
		UserID:          resp.UserID,
		GuestName:       resp.GuestName,
		GuestPhone:      resp.GuestPhone,
		GuestEmail:      resp.GuestEmail,
		SpecialRequests: resp.SpecialRequests,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
