package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/personal_ledger/internal/core/ports/services"
	"github.com/SscSPs/personal_ledger/internal/dto"
	"github.com/SscSPs/personal_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// rateHandler handles HTTP requests related to the exchange rate table.
type rateHandler struct {
	currencyService portssvc.CurrencySvcFacade
}

// newRateHandler creates a new rateHandler.
func newRateHandler(cs portssvc.CurrencySvcFacade) *rateHandler {
	return &rateHandler{
		currencyService: cs,
	}
}

// registerRateRoutes registers routes related to exchange rates.
func registerRateRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade) {
	h := newRateHandler(currencyService)

	rates := rg.Group("/rates")
	{
		rates.GET("", h.getRates)
		rates.POST("/refresh", h.refreshRates)
		rates.GET("/convert", h.convert)
	}
}

// getRates godoc
// @Summary Current rate table
// @Description Returns the rates in effect, relative to the base currency. The table is empty until a refresh succeeds.
// @Tags rates
// @Produce  json
// @Success 200 {object} dto.RateTableResponse
// @Router /rates [get]
func (h *rateHandler) getRates(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToRateTableResponse(h.currencyService.Rates()))
}

// refreshRates godoc
// @Summary Refresh exchange rates
// @Description Fetches a new table from the provider. On failure the previous table stays in effect and is returned with the error.
// @Tags rates
// @Produce  json
// @Success 200 {object} dto.RefreshRatesResponse
// @Failure 502 {object} dto.RefreshRatesResponse "Provider unreachable or returned unusable data"
// @Router /rates/refresh [post]
func (h *rateHandler) refreshRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	table, err := h.currencyService.Refresh(c.Request.Context())
	if err != nil {
		logger.Warn("Exchange rate refresh failed, keeping previous table", slog.String("error", err.Error()))
		c.JSON(statusFor(err), dto.RefreshRatesResponse{
			Refreshed: false,
			Error:     err.Error(),
			Table:     dto.ToRateTableResponse(table),
		})
		return
	}

	c.JSON(http.StatusOK, dto.RefreshRatesResponse{
		Refreshed: true,
		Table:     dto.ToRateTableResponse(table),
	})
}

// convert godoc
// @Summary Convert an amount
// @Description Converts an amount between two currencies at the current rates. Unknown codes use a rate of 1.
// @Tags rates
// @Produce  json
// @Param   amount query string true "Amount to convert"
// @Param   from query string true "Source currency code"
// @Param   to query string true "Target currency code"
// @Success 200 {object} dto.ConvertResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Router /rates/convert [get]
func (h *rateHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConvertRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind query for Convert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a number"})
		return
	}

	c.JSON(http.StatusOK, dto.ConvertResponse{
		Amount:    amount,
		From:      req.From,
		To:        req.To,
		Converted: h.currencyService.Convert(amount, req.From, req.To),
	})
}
