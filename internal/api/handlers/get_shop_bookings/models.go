package get_shop_bookings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
	"github.com/m04kA/SMC-CarwashBooking/internal/service/bookings/models"
)

// ShopBookingsQuery необработанные query параметры
type ShopBookingsQuery struct {
	Status          string
	Date            string // конкретный день, перекрывает период
	StartDate       string
	EndDate         string
	IncludeInactive string
}

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(shopID, userID int64, q ShopBookingsQuery) (*models.GetShopBookingsRequest, error) {
	req := &models.GetShopBookingsRequest{
		UserID: userID,
		ShopID: shopID,
	}

	if q.Status != "" {
		status := q.Status
		req.Status = &status
	}

	if q.Date != "" {
		date, err := time.Parse(domain.DateFormat, q.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
		req.StartDate = &date
		req.EndDate = &date
	} else {
		start, err := parseOptionalDate(q.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid start_date: %w", err)
		}
		end, err := parseOptionalDate(q.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid end_date: %w", err)
		}
		req.StartDate = start
		req.EndDate = end
	}

	if q.IncludeInactive != "" {
		includeInactive, err := strconv.ParseBool(q.IncludeInactive)
		if err != nil {
			return nil, fmt.Errorf("invalid include_inactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}

func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	date, err := time.Parse(domain.DateFormat, value)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
