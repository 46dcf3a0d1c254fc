// internal/models/listing_test.go
package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func activeListing(price, amount uint64) *Listing {
	return &Listing{
		Price:    price,
		Amount:   amount,
		IsActive: true,
		Status:   ListingStatusActive,
	}
}

func TestListingTotalPrice(t *testing.T) {
	listing := activeListing(10, 50)

	total, err := listing.TotalPrice(20)
	assert.NoError(t, err)
	assert.Equal(t, uint64(200), total)

	// Free listing: any amount totals zero
	free := activeListing(0, 50)
	total, err = free.TotalPrice(math.MaxUint64)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), total)
}

func TestListingTotalPriceOverflow(t *testing.T) {
	listing := activeListing(math.MaxUint64/2+1, 100)

	_, err := listing.TotalPrice(2)
	assert.ErrorIs(t, err, ErrPriceOverflow)

	// One unit still fits
	total, err := listing.TotalPrice(1)
	assert.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64/2+1), total)
}

func TestListingFillPartial(t *testing.T) {
	listing := activeListing(10, 50)

	err := listing.Fill(20)
	assert.NoError(t, err)
	assert.Equal(t, uint64(30), listing.Amount)
	assert.True(t, listing.IsActive)
	assert.Equal(t, ListingStatusActive, listing.Status)
}

func TestListingFillDepletionCloses(t *testing.T) {
	listing := activeListing(10, 50)

	assert.NoError(t, listing.Fill(20))
	assert.NoError(t, listing.Fill(30))

	// Depleted listings close permanently
	assert.Equal(t, uint64(0), listing.Amount)
	assert.False(t, listing.IsActive)
	assert.Equal(t, ListingStatusClosed, listing.Status)

	// Every later fill is rejected, zero amounts included
	err := listing.Fill(1)
	assert.ErrorIs(t, err, ErrListingInactive)
	err = listing.Fill(0)
	assert.ErrorIs(t, err, ErrListingInactive)
}

func TestListingFillInsufficientAmount(t *testing.T) {
	listing := activeListing(10, 50)

	err := listing.Fill(51)
	assert.ErrorIs(t, err, ErrInsufficientListingAmount)

	// Failed fill leaves the listing untouched
	assert.Equal(t, uint64(50), listing.Amount)
	assert.True(t, listing.IsActive)
}

func TestListingFillZeroAmount(t *testing.T) {
	listing := activeListing(10, 50)

	// Zero-amount fill on an open listing is a no-op
	err := listing.Fill(0)
	assert.NoError(t, err)
	assert.Equal(t, uint64(50), listing.Amount)
	assert.True(t, listing.IsActive)
}
