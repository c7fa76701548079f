package get_shop_bookings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToServiceRequest(t *testing.T) {
	t.Run("single date sets both bounds", func(t *testing.T) {
		req, err := ToServiceRequest(3, 7, ShopBookingsQuery{Date: "2025-10-15", StartDate: "2025-01-01"})
		require.NoError(t, err)
		require.NotNil(t, req.StartDate)
		require.NotNil(t, req.EndDate)
		assert.Equal(t, "2025-10-15", req.StartDate.Format("2006-01-02"))
		assert.Equal(t, *req.StartDate, *req.EndDate)
	})

	t.Run("period and flags", func(t *testing.T) {
		req, err := ToServiceRequest(3, 7, ShopBookingsQuery{
			Status:          "done",
			StartDate:       "2025-10-01",
			IncludeInactive: "true",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), req.ShopID)
		assert.Equal(t, int64(7), req.UserID)
		require.NotNil(t, req.Status)
		assert.Equal(t, "done", *req.Status)
		assert.NotNil(t, req.StartDate)
		assert.Nil(t, req.EndDate)
		assert.True(t, req.IncludeInactive)
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := ToServiceRequest(3, 7, ShopBookingsQuery{Date: "15.10.2025"})
		assert.Error(t, err)

		_, err = ToServiceRequest(3, 7, ShopBookingsQuery{EndDate: "tomorrow"})
		assert.Error(t, err)

		_, err = ToServiceRequest(3, 7, ShopBookingsQuery{IncludeInactive: "maybe"})
		assert.Error(t, err)
	})
}
