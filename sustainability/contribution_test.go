package sustainability_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewear/api-go/models"
	"github.com/rewear/api-go/sustainability"
)

func TestParseContributionDefaults(t *testing.T) {
	c, err := sustainability.ParseContribution(nil, "", "")
	require.NoError(t, err)

	assert.Equal(t, 50, c.EcoPoints)
	assert.True(t, c.WaterSaved.Equal(decimal.RequireFromString("2.5")))
	assert.True(t, c.CarbonReduced.Equal(decimal.RequireFromString("1.2")))
}

func TestParseContributionExplicitValues(t *testing.T) {
	ep := 75
	c, err := sustainability.ParseContribution(&ep, "3.75", "0.50")
	require.NoError(t, err)

	assert.Equal(t, 75, c.EcoPoints)
	assert.True(t, c.WaterSaved.Equal(decimal.RequireFromString("3.75")))
	assert.True(t, c.CarbonReduced.Equal(decimal.RequireFromString("0.50")))
}

func TestParseContributionRejectsMalformedValues(t *testing.T) {
	tests := []struct {
		name          string
		ecoPoints     *int
		waterSaved    string
		carbonReduced string
	}{
		{name: "non-numeric water", waterSaved: "lots"},
		{name: "non-numeric carbon", carbonReduced: "2,5"},
		{name: "negative water", waterSaved: "-1.5"},
		{name: "negative carbon", carbonReduced: "-0.1"},
		{name: "negative eco points", ecoPoints: intPtr(-10)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := sustainability.ParseContribution(tc.ecoPoints, tc.waterSaved, tc.carbonReduced)
			require.Error(t, err)
			assert.ErrorIs(t, err, sustainability.ErrInvalidContribution)
		})
	}
}

func intPtr(v int) *int { return &v }

func TestSeedCatalogIdempotent(t *testing.T) {
	db := newTestDB(t)

	// Two independent initializations both observing an empty catalog.
	require.NoError(t, sustainability.NewService(db).SeedCatalog())
	require.NoError(t, sustainability.NewService(db).SeedCatalog())

	var badges []models.Badge
	require.NoError(t, db.Find(&badges).Error)
	assert.Len(t, badges, 6)

	seen := make(map[string]bool)
	for _, b := range badges {
		assert.False(t, seen[b.Name], "duplicate badge %q", b.Name)
		seen[b.Name] = true
	}
}
