package create_reservation

import (
	"time"
)

// Request модель запроса на создание бронирования
type Request struct {
	FacilityID int64     // ID объекта
	SiteID     int64     // ID места
	Date       time.Time // Дата бронирования (без времени)
	TimeSlots  []int64   // ID запрошенных слотов каталога

	// Инициатор: либо зарегистрированный пользователь, либо гость
	UserID     *int64
	GuestName  *string
	GuestPhone *string
	GuestEmail *string

	SpecialRequests *string // Пожелания клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64     // ID созданного бронирования
	FacilityID      int64     // ID объекта
	SiteID          int64     // ID места
	ReservationDate time.Time // Дата бронирования
	TimeSlots       []int64   // Занятые слоты
	SlotLabels      []string  // Снимок меток слотов на момент создания
	TotalAmount     int64     // Зафиксированная стоимость
	Status          string    // Статус бронирования
	PaymentStatus   string    // Статус оплаты

	UserID     *int64
	GuestName  *string
	GuestPhone *string
	GuestEmail *string

	SpecialRequests *string

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
