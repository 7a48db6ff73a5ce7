package get_availability

import (
	"github.com/m04kA/BBQ-ReservationService/internal/domain"
	getAvailability "github.com/m04kA/BBQ-ReservationService/internal/usecase/get_availability"
)

// SlotAvailabilityResponse доступность одного слота на одном месте
type SlotAvailabilityResponse struct {
	SlotID    int64  `json:"slotId"`
	Name      string `json:"name"`
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// SiteAvailabilityResponse доступность всех слотов одного места
type SiteAvailabilityResponse struct {
	SiteID     int64                      `json:"siteId"`
	SiteNumber int                        `json:"siteNumber"`
	SiteName   string                     `json:"siteName"`
	Slots      []SlotAvailabilityResponse `json:"slots"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	FacilityID int64                      `json:"facilityId"`
	Date       string                     `json:"date"`
	Sites      []SiteAvailabilityResponse `json:"sites"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		FacilityID: resp.FacilityID,
		Date:       resp.Date.Format(domain.DateFormat),
		Sites:      make([]SiteAvailabilityResponse, 0, len(resp.Sites)),
	}

	for _, site := range resp.Sites {
		siteResp := SiteAvailabilityResponse{
			SiteID:     site.SiteID,
			SiteNumber: site.SiteNumber,
			SiteName:   site.SiteName,
			Slots:      make([]SlotAvailabilityResponse, 0, len(site.Slots)),
		}
		for _, slot := range site.Slots {
			siteResp.Slots = append(siteResp.Slots, SlotAvailabilityResponse{
				SlotID:    slot.SlotID,
				Name:      slot.Name,
				Time:      slot.Time,
				Available: slot.Available,
			})
		}
		out.Sites = append(out.Sites, siteResp)
	}

	return out
}
