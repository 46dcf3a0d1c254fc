// internal/handlers/portfolio.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fractora/fractora-backend/internal/i18n"
	"github.com/fractora/fractora-backend/internal/ledger"
	"github.com/fractora/fractora-backend/internal/services"
	"github.com/fractora/fractora-backend/internal/utils"
)

type PortfolioHandler struct {
	tokens       *ledger.GormLedger
	assetService *services.AssetService
}

func NewPortfolioHandler(tokens *ledger.GormLedger, assetService *services.AssetService) *PortfolioHandler {
	return &PortfolioHandler{
		tokens:       tokens,
		assetService: assetService,
	}
}

// GET /portfolio
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	holdings, err := h.tokens.Holdings(userID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	positions := make([]gin.H, 0, len(holdings))
	var totalValue uint64
	for _, holding := range holdings {
		position := gin.H{
			"asset_id": holding.AssetRef,
			"amount":   holding.Amount,
		}

		if asset, err := h.assetService.GetAsset(holding.AssetRef); err == nil {
			position["asset"] = asset
			value := asset.EstimatedValue(holding.Amount)
			position["estimated_value"] = value
			totalValue += value
		}

		positions = append(positions, position)
	}

	utils.SuccessResponse(c, gin.H{
		"positions":             positions,
		"total_estimated_value": totalValue,
	})
}

// GET /portfolio/assets/:id
func (h *PortfolioHandler) GetAssetBalance(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid asset ID", nil)
		return
	}

	balance, err := h.tokens.Balance(assetID, userID)
	if err != nil {
		utils.NotFoundResponse(c, i18n.KeyAssetNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"asset_id": assetID,
		"balance":  balance,
	})
}
