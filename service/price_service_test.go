package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gf-server/models"
)

func TestPriceSubmission_Validate(t *testing.T) {
	tests := []struct {
		name    string
		sub     PriceSubmission
		wantErr bool
	}{
		{"valid", PriceSubmission{Prices: []models.LivePrice{{Name: "Monthly", Price: 30}}, JoiningFees: 10}, false},
		{"no prices", PriceSubmission{}, true},
		{"unnamed price", PriceSubmission{Prices: []models.LivePrice{{Price: 30}}}, true},
		{"zero price", PriceSubmission{Prices: []models.LivePrice{{Name: "Monthly", Price: 0}}}, true},
		{"negative joining fee", PriceSubmission{Prices: []models.LivePrice{{Name: "Monthly", Price: 30}}, JoiningFees: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sub.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPrice)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPriceService_SubmitAndGet(t *testing.T) {
	_, prices := newTestServices(t, &fakePlaces{})

	_, err := prices.GetPrices("gym1")
	assert.ErrorIs(t, err, ErrPriceNotFound)

	_, err = prices.SubmitPrices(" ", PriceSubmission{Prices: []models.LivePrice{{Name: "Monthly", Price: 30}}})
	assert.ErrorIs(t, err, ErrInvalidPrice)

	entry, err := prices.SubmitPrices("gym1", PriceSubmission{Prices: []models.LivePrice{{Name: "Monthly", Price: 30}}, JoiningFees: 5})
	require.NoError(t, err)
	assert.Equal(t, 5.0, entry.JoiningFees)

	got, err := prices.GetPrices("gym1")
	require.NoError(t, err)
	assert.Equal(t, *entry, *got)
}
