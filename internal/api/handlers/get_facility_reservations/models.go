package get_facility_reservations

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/BBQ-ReservationService/internal/domain"
	"github.com/m04kA/BBQ-ReservationService/internal/service/reservations/models"
)

// parseQuery собирает фильтр бронирований объекта из query-параметров:
// siteId, startDate, endDate, status, includeInactive
func parseQuery(facilityID int64, query url.Values) (*models.GetFacilityReservationsRequest, error) {
	req := &models.GetFacilityReservationsRequest{FacilityID: facilityID}

	if raw := query.Get("siteId"); raw != "" {
		siteID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || siteID <= 0 {
			return nil, fmt.Errorf("invalid siteId: %q", raw)
		}
		req.SiteID = &siteID
	}

	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate: %q", raw)
		}
		req.StartDate = &startDate
	}

	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate: %q", raw)
		}
		req.EndDate = &endDate
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("endDate is before startDate")
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	if raw := query.Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive: %q", raw)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
