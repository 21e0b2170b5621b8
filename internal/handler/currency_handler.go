package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"focusbot/internal/service"
)

// CurrencyHandler handles currency conversion endpoints.
type CurrencyHandler struct {
	currencyService service.CurrencyService
}

// NewCurrencyHandler creates a new CurrencyHandler.
func NewCurrencyHandler(currencyService service.CurrencyService) *CurrencyHandler {
	return &CurrencyHandler{currencyService: currencyService}
}

// List handles GET /api/v1/currencies
// @Summary List offered currencies
// @Tags currency
// @Produce json
// @Success 200 {object} Response{data=[]string} "Currency codes"
// @Router /currencies [get]
func (h *CurrencyHandler) List(c *gin.Context) {
	RespondOK(c, h.currencyService.Currencies())
}

// Convert handles POST /api/v1/currencies/convert
// @Summary Convert an amount between currencies
// @Description Looks up the live rate for the source currency and converts the amount
// @Tags currency
// @Accept json
// @Produce json
// @Param request body ConvertRequest true "Conversion request"
// @Success 200 {object} Response{data=domain.Conversion} "Conversion result"
// @Failure 400 {object} ErrorResponseBody "Invalid codes, same currency, or negative amount"
// @Failure 422 {object} ErrorResponseBody "Currency not supported"
// @Failure 502 {object} ErrorResponseBody "Rate lookup failed"
// @Router /currencies/convert [post]
func (h *CurrencyHandler) Convert(c *gin.Context) {
	var req ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	conv, err := h.currencyService.Convert(c.Request.Context(), service.ConvertInput{
		From:   req.From,
		To:     req.To,
		Amount: req.Amount,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, conv)
}
