package services

import (
	"testing"

	"github.com/danehillard/dhp/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfferingServiceRoundTripsPrices(t *testing.T) {
	service := NewOfferingService(OfferingServiceConfig{DB: newTestDB(t)})

	priced := &models.Service{
		Title:       "Portrait session",
		Description: "One hour on location",
		Price:       decimal.NewNullDecimal(decimal.RequireFromString("175.499")),
	}

	unpriced := &models.Service{
		Title:       "Event coverage",
		Description: "Contact for a quote",
	}

	require.NoError(t, service.Create(priced))
	require.NoError(t, service.Create(unpriced))

	all, err := service.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 2)

	assert.Equal(t, "Portrait session", all[0].Title)
	require.True(t, all[0].Price.Valid)
	assert.Equal(t, "175.50", all[0].Price.Decimal.StringFixed(2))
	assert.Equal(t, "$175.50", all[0].DisplayPrice())

	assert.False(t, all[1].Price.Valid)
	assert.Equal(t, "", all[1].DisplayPrice())
}
