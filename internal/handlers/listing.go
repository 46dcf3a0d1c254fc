// internal/handlers/listing.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fractora/fractora-backend/internal/i18n"
	"github.com/fractora/fractora-backend/internal/ledger"
	"github.com/fractora/fractora-backend/internal/models"
	"github.com/fractora/fractora-backend/internal/services"
	"github.com/fractora/fractora-backend/internal/utils"
)

type ListingHandler struct {
	listingService *services.ListingService
}

func NewListingHandler(listingService *services.ListingService) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
	}
}

// GET /listings
func (h *ListingHandler) GetListings(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	searchParams := services.ListingSearchParams{
		PaginationParams: params,
		ActiveOnly:       true,
	}

	if c.Query("include_closed") == "true" {
		searchParams.ActiveOnly = false
	}

	if sellerIDStr := c.Query("seller_id"); sellerIDStr != "" {
		if sellerID, err := uuid.Parse(sellerIDStr); err == nil {
			searchParams.SellerID = &sellerID
		}
	}

	if assetRefStr := c.Query("asset_id"); assetRefStr != "" {
		if assetRef, err := uuid.Parse(assetRefStr); err == nil {
			searchParams.AssetRef = &assetRef
		}
	}

	listings, total, err := h.listingService.SearchListings(searchParams)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(listings, total, params)
	utils.PaginatedResponse(c, result)
}

// POST /listings
func (h *ListingHandler) CreateListing(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	sellerID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	listing, err := h.listingService.CreateListing(sellerID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyListingCreated),
		"listing": listing,
	})
}

// GET /listings/:id
func (h *ListingHandler) GetListing(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid listing ID", nil)
		return
	}

	listing, err := h.listingService.GetListing(id)
	if err != nil {
		utils.NotFoundResponse(c, i18n.KeyListingNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"listing": listing,
	})
}

// POST /listings/:id/purchase
func (h *ListingHandler) Purchase(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid listing ID", nil)
		return
	}

	buyerID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	transaction, err := h.listingService.Purchase(listingID, buyerID, &req)
	if err != nil {
		respondPurchaseError(c, lang, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":     i18n.T(lang, i18n.KeyListingPurchaseSuccess),
		"transaction": transaction,
	})
}

// GET /listings/mine
func (h *ListingHandler) GetMyListings(c *gin.Context) {
	sellerID, ok := requireUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	listings, total, err := h.listingService.GetSellerListings(sellerID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(listings, total, params)
	utils.PaginatedResponse(c, result)
}

func respondPurchaseError(c *gin.Context, lang string, err error) {
	switch {
	case errors.Is(err, models.ErrListingInactive):
		utils.UnprocessableResponse(c, i18n.T(lang, i18n.KeyListingInactive))
	case errors.Is(err, models.ErrInsufficientListingAmount):
		utils.UnprocessableResponse(c, i18n.T(lang, i18n.KeyListingInsufficientAmount))
	case errors.Is(err, models.ErrPriceOverflow):
		utils.UnprocessableResponse(c, i18n.T(lang, i18n.KeyPaymentInvalidAmount))
	case errors.Is(err, services.ErrInsufficientFunds):
		utils.UnprocessableResponse(c, i18n.T(lang, i18n.KeyPaymentInsufficientFunds))
	case errors.Is(err, ledger.ErrInsufficientBalance):
		utils.UnprocessableResponse(c, i18n.T(lang, i18n.KeyTokenInsufficientBalance))
	default:
		utils.BadRequestResponse(c, err.Error(), nil)
	}
}
