// internal/handlers/asset.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fractora/fractora-backend/internal/i18n"
	"github.com/fractora/fractora-backend/internal/models"
	"github.com/fractora/fractora-backend/internal/services"
	"github.com/fractora/fractora-backend/internal/utils"
)

type AssetHandler struct {
	assetService      *services.AssetService
	provenanceService *services.ProvenanceService
	storageService    *services.StorageService
}

func NewAssetHandler(assetService *services.AssetService, provenanceService *services.ProvenanceService, storageService *services.StorageService) *AssetHandler {
	return &AssetHandler{
		assetService:      assetService,
		provenanceService: provenanceService,
		storageService:    storageService,
	}
}

// GET /assets
func (h *AssetHandler) GetAssets(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	searchParams := services.AssetSearchParams{
		PaginationParams: params,
	}

	if assetType := c.Query("asset_type"); assetType != "" {
		t := models.AssetType(assetType)
		searchParams.AssetType = &t
	}

	if ownerIDStr := c.Query("owner_id"); ownerIDStr != "" {
		if ownerID, err := uuid.Parse(ownerIDStr); err == nil {
			searchParams.OwnerID = &ownerID
		}
	}

	if c.Query("active_only") == "true" {
		searchParams.ActiveOnly = true
	}

	assets, total, err := h.assetService.SearchAssets(searchParams)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(assets, total, params)
	utils.PaginatedResponse(c, result)
}

// POST /assets
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	ownerID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.InitializeAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	asset, err := h.assetService.InitializeAsset(ownerID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAssetCreated),
		"asset":   asset,
	})
}

// GET /assets/:id
func (h *AssetHandler) GetAsset(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid asset ID", nil)
		return
	}

	asset, err := h.assetService.GetAsset(id)
	if err != nil {
		utils.NotFoundResponse(c, i18n.KeyAssetNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"asset": asset,
	})
}

// POST /assets/:id/mint
func (h *AssetHandler) MintTokens(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid asset ID", nil)
		return
	}

	actorID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.MintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	asset, err := h.assetService.MintAssetTokens(assetID, actorID, &req)
	if err != nil {
		respondAssetError(c, lang, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAssetMintSuccess),
		"asset":   asset,
	})
}

// POST /assets/:id/transfer
func (h *AssetHandler) TransferTokens(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid asset ID", nil)
		return
	}

	actorID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.TransferTokensRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if err := h.assetService.TransferAssetTokens(assetID, actorID, &req); err != nil {
		respondAssetError(c, lang, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyTokenTransferSuccess),
	})
}

// POST /assets/:id/deactivate
func (h *AssetHandler) DeactivateAsset(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid asset ID", nil)
		return
	}

	actorID, ok := requireUserID(c)
	if !ok {
		return
	}

	asset, err := h.assetService.DeactivateAsset(assetID, actorID)
	if err != nil {
		respondAssetError(c, lang, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAssetDeactivated),
		"asset":   asset,
	})
}

// GET /assets/mine
func (h *AssetHandler) GetMyAssets(c *gin.Context) {
	ownerID, ok := requireUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	assets, total, err := h.assetService.GetOwnerAssets(ownerID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(assets, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /assets/:id/statistics
func (h *AssetHandler) GetAssetStatistics(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid asset ID", nil)
		return
	}

	stats, err := h.assetService.GetAssetStatistics(assetID)
	if err != nil {
		utils.NotFoundResponse(c, i18n.KeyAssetNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"statistics": stats,
	})
}

// GET /assets/:id/provenance
func (h *AssetHandler) GetAssetProvenance(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid asset ID", nil)
		return
	}

	records, err := h.provenanceService.GetAssetProvenance(assetID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"provenance": records,
	})
}

// GET /assets/:id/provenance/verify
func (h *AssetHandler) VerifyAssetProvenance(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid asset ID", nil)
		return
	}

	valid, err := h.provenanceService.VerifyChain(assetID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"asset_id": assetID,
		"valid":    valid,
	})
}

// POST /assets/upload
func (h *AssetHandler) UploadMedia(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	if _, ok := requireUserID(c); !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		utils.BadRequestResponse(c, "No files uploaded", nil)
		return
	}

	var uploadedFiles []map[string]interface{}
	options := h.storageService.AssetMediaUploadOptions()

	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			continue
		}

		result, err := h.storageService.UploadFile(file, fileHeader, options)
		file.Close()

		if err != nil {
			continue
		}

		uploadedFiles = append(uploadedFiles, map[string]interface{}{
			"url":       result.URL,
			"key":       result.Key,
			"size":      result.Size,
			"mime_type": result.MimeType,
			"filename":  fileHeader.Filename,
		})
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFileUploadSuccess),
		"files":   uploadedFiles,
	})
}

func requireUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return uuid.Nil, false
	}

	return userID, true
}

func respondAssetError(c *gin.Context, lang string, err error) {
	switch {
	case errors.Is(err, services.ErrNotAuthorized):
		utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyAccessDenied))
	case errors.Is(err, models.ErrAssetInactive):
		utils.UnprocessableResponse(c, i18n.T(lang, i18n.KeyAssetInactive))
	case errors.Is(err, models.ErrSupplyExceeded):
		utils.UnprocessableResponse(c, i18n.T(lang, i18n.KeyAssetSupplyExceeded))
	default:
		utils.BadRequestResponse(c, err.Error(), nil)
	}
}
