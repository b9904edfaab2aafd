package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParameter_ChoiceList(t *testing.T) {
	tests := []struct {
		name     string
		choices  string
		expected []string
	}{
		{name: "empty", choices: "", expected: nil},
		{name: "blank", choices: "   ", expected: nil},
		{name: "single", choices: "red", expected: []string{"red"}},
		{name: "ordered", choices: "red,green,blue", expected: []string{"red", "green", "blue"}},
		{name: "whitespace trimmed", choices: " red , green ", expected: []string{"red", "green"}},
		{name: "empty segments dropped", choices: "red,,blue,", expected: []string{"red", "blue"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Parameter{Choices: tt.choices}.ChoiceList())
		})
	}
}

func TestParameter_PriceDelta(t *testing.T) {
	delta, err := Parameter{PriceEffect: "-12.5"}.PriceDelta()
	require.NoError(t, err)
	assert.Equal(t, -12.5, delta)

	delta, err = Parameter{}.PriceDelta()
	require.NoError(t, err)
	assert.Zero(t, delta)

	_, err = Parameter{PriceEffect: "abc"}.PriceDelta()
	assert.Error(t, err)
}

func TestOfferSnapshot_HasZipCode(t *testing.T) {
	offer := OfferSnapshot{ZipCodes: []string{"75001", "75002"}}
	assert.True(t, offer.HasZipCode("75001"))
	assert.False(t, offer.HasZipCode("75003"))
	assert.False(t, OfferSnapshot{}.HasZipCode("75001"))
}

func TestPartner_MediaURL(t *testing.T) {
	p := Partner{Logo: "l.png", MarketplaceCover: "m.png", CompanyCover: "c.png"}
	assert.Equal(t, "l.png", p.MediaURL(SlotLogo))
	assert.Equal(t, "m.png", p.MediaURL(SlotMarketplaceCover))
	assert.Equal(t, "c.png", p.MediaURL(SlotCompanyCover))
	assert.Empty(t, p.MediaURL("banner"))
}
