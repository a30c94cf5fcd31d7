package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrientationOf(t *testing.T) {
	assert.Equal(t, OrientationLandscape, OrientationOf(1200, 800))
	assert.Equal(t, OrientationPortrait, OrientationOf(800, 1200))
	assert.Equal(t, OrientationSquare, OrientationOf(500, 500))
	assert.Equal(t, "portrait", OrientationPortrait.String())
}

func TestPhotographSlots(t *testing.T) {
	p := &Photograph{}

	assert.False(t, p.HasAllDerivatives())
	assert.False(t, p.Slot(DerivativeSquare).Generated())

	require.True(t, p.SetSlot(DerivativeSquare, "photographs/a/square-x.jpg", 150, 150))
	require.True(t, p.SetSlot(DerivativeSmall, "photographs/a/small-x.jpg", 320, 213))
	require.True(t, p.SetSlot(DerivativeMedium, "photographs/a/medium-x.jpg", 800, 533))
	require.True(t, p.SetSlot(DerivativeLarge, "photographs/a/large-x.jpg", 1200, 800))
	assert.False(t, p.SetSlot("poster", "nope", 1, 1))

	slot := p.Slot(DerivativeSmall)
	require.True(t, slot.Generated())
	assert.Equal(t, 320, *slot.Width)
	assert.Equal(t, 213, *slot.Height)

	assert.True(t, p.HasAllDerivatives())
	assert.Len(t, p.DerivativeKeys(), 4)
	assert.Equal(t, DerivativeSlot{}, p.Slot("poster"))
}

func TestServiceDisplayPrice(t *testing.T) {
	s := Service{Title: "Portrait session"}
	assert.Equal(t, "", s.DisplayPrice())

	s.Price = decimal.NewNullDecimal(decimal.RequireFromString("150.5"))
	assert.Equal(t, "$150.50", s.DisplayPrice())
}
