// internal/services/settlement_test.go
package services

import (
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/fractora/fractora-backend/internal/ledger"
	"github.com/fractora/fractora-backend/internal/models"
)

// mapPayments is a PaymentMover over plain in-memory accounts.
type mapPayments struct {
	balances map[uuid.UUID]uint64
}

func (m *mapPayments) MovePayment(from, to uuid.UUID, amount uint64) error {
	if m.balances[from] < amount {
		return ErrInsufficientFunds
	}
	m.balances[from] -= amount
	m.balances[to] += amount
	return nil
}

type paymentCall struct {
	from, to uuid.UUID
	amount   uint64
}

type tokenCall struct {
	asset, from, to, authority uuid.UUID
	amount                     uint64
}

type fakeMovers struct {
	log          []string
	payments     []paymentCall
	tokens       []tokenCall
	paymentError error
	tokenError   error
}

func (f *fakeMovers) MovePayment(from, to uuid.UUID, amount uint64) error {
	f.log = append(f.log, "payment")
	if f.paymentError != nil {
		return f.paymentError
	}
	f.payments = append(f.payments, paymentCall{from, to, amount})
	return nil
}

func (f *fakeMovers) Transfer(asset, from, to uuid.UUID, amount uint64, authority uuid.UUID) error {
	f.log = append(f.log, "tokens")
	if f.tokenError != nil {
		return f.tokenError
	}
	f.tokens = append(f.tokens, tokenCall{asset, from, to, authority, amount})
	return nil
}

func testListing(price, amount uint64) *models.Listing {
	return &models.Listing{
		SellerID: uuid.New(),
		AssetRef: uuid.New(),
		Price:    price,
		Amount:   amount,
		IsActive: true,
		Status:   models.ListingStatusActive,
	}
}

func TestSettlementExecute(t *testing.T) {
	movers := &fakeMovers{}
	engine := NewSettlement(movers, movers)
	listing := testListing(10, 50)
	buyer := uuid.New()

	total, err := engine.Execute(listing, buyer, 20)
	assert.NoError(t, err)
	assert.Equal(t, uint64(200), total)

	// Currency leg runs before the token leg
	assert.Equal(t, []string{"payment", "tokens"}, movers.log)

	// Buyer pays seller the full price
	assert.Len(t, movers.payments, 1)
	assert.Equal(t, buyer, movers.payments[0].from)
	assert.Equal(t, listing.SellerID, movers.payments[0].to)
	assert.Equal(t, uint64(200), movers.payments[0].amount)

	// Seller's tokens move to the buyer under the seller's authority
	assert.Len(t, movers.tokens, 1)
	assert.Equal(t, listing.AssetRef, movers.tokens[0].asset)
	assert.Equal(t, listing.SellerID, movers.tokens[0].from)
	assert.Equal(t, buyer, movers.tokens[0].to)
	assert.Equal(t, listing.SellerID, movers.tokens[0].authority)
	assert.Equal(t, uint64(20), movers.tokens[0].amount)

	assert.Equal(t, uint64(30), listing.Amount)
	assert.True(t, listing.IsActive)
}

func TestSettlementDepletesAndCloses(t *testing.T) {
	movers := &fakeMovers{}
	engine := NewSettlement(movers, movers)
	listing := testListing(10, 50)
	buyer := uuid.New()

	_, err := engine.Execute(listing, buyer, 20)
	assert.NoError(t, err)

	total, err := engine.Execute(listing, buyer, 30)
	assert.NoError(t, err)
	assert.Equal(t, uint64(300), total)
	assert.Equal(t, uint64(0), listing.Amount)
	assert.False(t, listing.IsActive)
	assert.Equal(t, models.ListingStatusClosed, listing.Status)

	// Closed listings reject every purchase
	_, err = engine.Execute(listing, buyer, 1)
	assert.ErrorIs(t, err, models.ErrListingInactive)
}

func TestSettlementInactiveListing(t *testing.T) {
	movers := &fakeMovers{}
	engine := NewSettlement(movers, movers)
	listing := testListing(10, 50)
	listing.IsActive = false

	_, err := engine.Execute(listing, uuid.New(), 10)
	assert.ErrorIs(t, err, models.ErrListingInactive)

	// Neither leg ran
	assert.Empty(t, movers.log)
}

func TestSettlementInsufficientAmount(t *testing.T) {
	movers := &fakeMovers{}
	engine := NewSettlement(movers, movers)
	listing := testListing(10, 50)

	_, err := engine.Execute(listing, uuid.New(), 51)
	assert.ErrorIs(t, err, models.ErrInsufficientListingAmount)
	assert.Empty(t, movers.log)
	assert.Equal(t, uint64(50), listing.Amount)
}

func TestSettlementPriceOverflow(t *testing.T) {
	movers := &fakeMovers{}
	engine := NewSettlement(movers, movers)
	listing := testListing(math.MaxUint64/2+1, math.MaxUint64)

	_, err := engine.Execute(listing, uuid.New(), 2)
	assert.ErrorIs(t, err, models.ErrPriceOverflow)
	assert.Empty(t, movers.log)
}

func TestSettlementAgainstLedger(t *testing.T) {
	tokens := ledger.NewMemoryLedger()
	payments := &mapPayments{balances: make(map[uuid.UUID]uint64)}
	engine := NewSettlement(payments, tokens)

	listing := testListing(10, 50)
	buyer := uuid.New()

	assert.NoError(t, tokens.Mint(listing.AssetRef, listing.SellerID, 50))
	payments.balances[buyer] = 1000

	total, err := engine.Execute(listing, buyer, 20)
	assert.NoError(t, err)
	assert.Equal(t, uint64(200), total)

	assert.Equal(t, uint64(800), payments.balances[buyer])
	assert.Equal(t, uint64(200), payments.balances[listing.SellerID])

	buyerTokens, _ := tokens.Balance(listing.AssetRef, buyer)
	sellerTokens, _ := tokens.Balance(listing.AssetRef, listing.SellerID)
	assert.Equal(t, uint64(20), buyerTokens)
	assert.Equal(t, uint64(30), sellerTokens)

	// Broke buyers cannot settle, and the listing does not move
	broke := uuid.New()
	_, err = engine.Execute(listing, broke, 10)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, uint64(30), listing.Amount)
}

func TestSettlementPaymentLegFailure(t *testing.T) {
	movers := &fakeMovers{paymentError: errors.New("account frozen")}
	engine := NewSettlement(movers, movers)
	listing := testListing(10, 50)

	_, err := engine.Execute(listing, uuid.New(), 20)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "payment leg failed")

	// Token leg never ran, listing untouched
	assert.Equal(t, []string{"payment"}, movers.log)
	assert.Equal(t, uint64(50), listing.Amount)
	assert.True(t, listing.IsActive)
}

func TestSettlementTokenLegFailure(t *testing.T) {
	movers := &fakeMovers{tokenError: errors.New("insufficient token balance")}
	engine := NewSettlement(movers, movers)
	listing := testListing(10, 50)

	_, err := engine.Execute(listing, uuid.New(), 20)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "token leg failed")

	// Both legs attempted, but the listing is exactly as before
	assert.Equal(t, []string{"payment", "tokens"}, movers.log)
	assert.Equal(t, uint64(50), listing.Amount)
	assert.True(t, listing.IsActive)
	assert.Equal(t, models.ListingStatusActive, listing.Status)
}
