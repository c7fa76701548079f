package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBookingStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want BookingStatus
	}{
		{"Pending", StatusPending},
		{"confirmed", StatusConfirmed},
		{"On Going", StatusInProgress},
		{"ongoing", StatusInProgress},
		{"in progress", StatusInProgress},
		{"IN_PROGRESS", StatusInProgress},
		{"Halfway", StatusInProgress},
		{"  in   progress ", StatusInProgress},
		{"Done", StatusCompleted},
		{"completed", StatusCompleted},
		{"Declined", StatusDeclined},
		{"canceled", StatusCancelled},
		{"Cancelled", StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseBookingStatus(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBookingStatus_Invalid(t *testing.T) {
	for _, raw := range []string{"", "Foo", "paid", "in-progress"} {
		_, err := ParseBookingStatus(raw)
		assert.ErrorIs(t, err, ErrInvalidStatus, raw)
	}
}

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, StatusInProgress, NormalizeStatus("On Going"))
	assert.Equal(t, BookingStatus("archived"), NormalizeStatus("archived"))
}

func TestCheckTransition_Strict(t *testing.T) {
	allowed := [][2]BookingStatus{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusDeclined},
		{StatusPending, StatusCancelled},
		{StatusConfirmed, StatusInProgress},
		{StatusConfirmed, StatusCompleted},
		{StatusConfirmed, StatusCancelled},
		{StatusInProgress, StatusCompleted},
		{StatusInProgress, StatusCancelled},
		{StatusCompleted, StatusCompleted},
		{StatusCancelled, StatusCancelled},
	}
	for _, pair := range allowed {
		assert.NoError(t, CheckTransition(pair[0], pair[1], true), "%s -> %s", pair[0], pair[1])
	}

	denied := [][2]BookingStatus{
		{StatusPending, StatusInProgress},
		{StatusPending, StatusCompleted},
		{StatusCompleted, StatusPending},
		{StatusCancelled, StatusConfirmed},
		{StatusDeclined, StatusConfirmed},
		{StatusInProgress, StatusPending},
	}
	for _, pair := range denied {
		assert.ErrorIs(t, CheckTransition(pair[0], pair[1], true), ErrInvalidTransition, "%s -> %s", pair[0], pair[1])
	}
}

func TestCheckTransition_Permissive(t *testing.T) {
	assert.NoError(t, CheckTransition(StatusCompleted, StatusPending, false))
	assert.NoError(t, CheckTransition(StatusCancelled, StatusInProgress, false))
	assert.ErrorIs(t, CheckTransition(StatusPending, BookingStatus("Foo"), false), ErrInvalidStatus)
}

func TestBookingStatus_Predicates(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusDeclined.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())

	assert.True(t, StatusConfirmed.NotifiesCustomer())
	assert.True(t, StatusDeclined.NotifiesCustomer())
	assert.False(t, StatusCompleted.NotifiesCustomer())
}
