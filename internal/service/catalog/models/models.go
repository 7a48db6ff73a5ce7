package models

import (
	"github.com/m04kA/BBQ-ReservationService/internal/domain"
)

// Request модели

// TimeSlotInput описание одного слота в запросе на обновление каталога
type TimeSlotInput struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Time      string `json:"time"` // "HH:MM-HH:MM"
	SortOrder int    `json:"sortOrder"`
}

// UpdateCatalogRequest запрос на полную замену каталога слотов
type UpdateCatalogRequest struct {
	Slots []TimeSlotInput `json:"slots"`
}

// ToDomain конвертирует запрос в доменные слоты
func (r *UpdateCatalogRequest) ToDomain() []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0, len(r.Slots))
	for _, s := range r.Slots {
		slots = append(slots, domain.TimeSlot{
			ID:        s.ID,
			Name:      s.Name,
			Time:      s.Time,
			SortOrder: s.SortOrder,
		})
	}
	return slots
}

// Response модели

// TimeSlotResponse ответ с данными одного слота
type TimeSlotResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Time      string `json:"time"`
	SortOrder int    `json:"sortOrder"`
}

// CatalogResponse ответ с полным каталогом слотов
type CatalogResponse struct {
	Slots []TimeSlotResponse `json:"slots"`
}

// FromDomainCatalog конвертирует доменные слоты в DTO
func FromDomainCatalog(slots []domain.TimeSlot) *CatalogResponse {
	resp := &CatalogResponse{
		Slots: make([]TimeSlotResponse, 0, len(slots)),
	}
	for _, s := range slots {
		resp.Slots = append(resp.Slots, TimeSlotResponse{
			ID:        s.ID,
			Name:      s.Name,
			Time:      s.Time,
			SortOrder: s.SortOrder,
		})
	}
	return resp
}
