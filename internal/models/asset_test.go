// internal/models/asset_test.go
package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssetMint(t *testing.T) {
	asset := &Asset{
		AssetID:     "villa-0042",
		AssetType:   AssetTypeRealEstate,
		TotalSupply: 1000,
		IsActive:    true,
	}

	// Partial mint succeeds
	err := asset.Mint(400)
	assert.NoError(t, err)
	assert.Equal(t, uint64(400), asset.CirculatingSupply)
	assert.Equal(t, uint64(600), asset.RemainingSupply())

	// Minting past the cap fails and leaves supply untouched
	err = asset.Mint(700)
	assert.ErrorIs(t, err, ErrSupplyExceeded)
	assert.Equal(t, uint64(400), asset.CirculatingSupply)

	// Minting exactly the remainder succeeds
	err = asset.Mint(600)
	assert.NoError(t, err)
	assert.Equal(t, uint64(1000), asset.CirculatingSupply)
	assert.Equal(t, uint64(0), asset.RemainingSupply())

	// Fully minted: even one more unit is rejected
	err = asset.Mint(1)
	assert.ErrorIs(t, err, ErrSupplyExceeded)
}

func TestAssetMintZeroAmount(t *testing.T) {
	asset := &Asset{TotalSupply: 10, IsActive: true}

	err := asset.Mint(0)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), asset.CirculatingSupply)
}

func TestAssetMintInactive(t *testing.T) {
	asset := &Asset{TotalSupply: 1000, IsActive: false}

	err := asset.Mint(1)
	assert.ErrorIs(t, err, ErrAssetInactive)
	assert.Equal(t, uint64(0), asset.CirculatingSupply)
}

func TestAssetMintNoOverflow(t *testing.T) {
	// Headroom comparison must not wrap around on huge amounts.
	asset := &Asset{
		TotalSupply:       math.MaxUint64,
		CirculatingSupply: math.MaxUint64 - 5,
		IsActive:          true,
	}

	err := asset.Mint(6)
	assert.ErrorIs(t, err, ErrSupplyExceeded)

	err = asset.Mint(5)
	assert.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), asset.CirculatingSupply)
}

func TestAssetDeactivate(t *testing.T) {
	asset := &Asset{TotalSupply: 100, IsActive: true}
	assert.NoError(t, asset.Mint(40))

	asset.Deactivate()
	assert.False(t, asset.IsActive)

	// Deactivation blocks further minting only
	err := asset.Mint(10)
	assert.ErrorIs(t, err, ErrAssetInactive)
	assert.Equal(t, uint64(40), asset.CirculatingSupply)
}

func TestAssetEstimatedValue(t *testing.T) {
	// Valuation below the supply still prices fractional positions
	asset := &Asset{Valuation: 500, TotalSupply: 1000}
	assert.Equal(t, uint64(125), asset.EstimatedValue(250))
	assert.Equal(t, uint64(0), asset.EstimatedValue(0))
	assert.Equal(t, uint64(500), asset.EstimatedValue(1000))

	asset = &Asset{Valuation: 1_000_000, TotalSupply: 100}
	assert.Equal(t, uint64(250_000), asset.EstimatedValue(25))

	// No supply, no value
	asset = &Asset{Valuation: 100, TotalSupply: 0}
	assert.Equal(t, uint64(0), asset.EstimatedValue(10))
}

func TestAssetEstimatedValueLargeValuation(t *testing.T) {
	// Product would overflow; the per-unit order takes over instead of
	// wrapping around
	asset := &Asset{Valuation: math.MaxUint64, TotalSupply: 4}
	assert.Equal(t, uint64(math.MaxUint64)/4*2, asset.EstimatedValue(2))
}

func TestValidAssetType(t *testing.T) {
	assert.True(t, ValidAssetType(AssetTypeRealEstate))
	assert.True(t, ValidAssetType(AssetTypeArt))
	assert.True(t, ValidAssetType(AssetTypeMusic))
	assert.True(t, ValidAssetType(AssetTypeGaming))
	assert.False(t, ValidAssetType(AssetType("bond")))
	assert.False(t, ValidAssetType(AssetType("")))
}
