package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/personal_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/personal_ledger/internal/core/ports/services"
	"github.com/SscSPs/personal_ledger/internal/dto"
	"github.com/SscSPs/personal_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to ledger transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	converter          portssvc.CurrencyConverterSvc
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionSvcFacade, conv portssvc.CurrencyConverterSvc) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
		converter:          conv,
	}
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade, conv portssvc.CurrencyConverterSvc) {
	h := newTransactionHandler(transactionService, conv)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:transactionID", h.getTransaction)
		transactions.PUT("/:transactionID", h.replaceTransaction)
		transactions.DELETE("/:transactionID", h.deleteTransaction)
	}
}

// registerCategoryRoutes registers the suggested category lookup.
func registerCategoryRoutes(rg *gin.RouterGroup) {
	rg.GET("/categories", listCategories)
}

// parseKindQuery reads the optional ?kind= filter. A nil kind means both partitions.
func parseKindQuery(c *gin.Context) (*domain.TransactionKind, error) {
	raw, ok := c.GetQuery("kind")
	if !ok || raw == "" {
		return nil, nil
	}
	kind, err := domain.ParseTransactionKind(raw)
	if err != nil {
		return nil, err
	}
	return &kind, nil
}

// createTransaction godoc
// @Summary Add a transaction
// @Description Records an income or expense. The kind decides which partition stores it.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 500 {object} map[string]string "Failed to save transaction"
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to add transaction",
		slog.String("kind", req.Kind),
		slog.String("category", req.Category),
		slog.String("currency", req.CurrencyCode),
	)

	txn, err := h.transactionService.AddTransaction(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to save transaction")
		return
	}

	logger.Info("Transaction added", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn, h.converter))
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists transactions newest first, optionally filtered by kind. Each carries its amount converted to the base currency.
// @Tags transactions
// @Produce  json
// @Param   kind query string false "income or expense"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid kind"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	kind, err := parseKindQuery(c)
	if err != nil {
		logger.Warn("Invalid kind filter", slog.String("kind", c.Query("kind")))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txns, err := h.transactionService.ListTransactions(c.Request.Context(), kind)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(txns, h.converter))
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Tags transactions
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to get transaction"
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	transactionID := c.Param("transactionID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("transaction_id", transactionID))

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), transactionID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to get transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn, h.converter))
}

// replaceTransaction godoc
// @Summary Replace a transaction
// @Description Replaces every field of a transaction. Changing the kind moves the record and assigns it a new ID.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Param   transaction body dto.CreateTransactionRequest true "Replacement details"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to replace transaction"
// @Router /transactions/{transactionID} [put]
func (h *transactionHandler) replaceTransaction(c *gin.Context) {
	transactionID := c.Param("transactionID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("transaction_id", transactionID))

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReplaceTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.transactionService.ReplaceTransaction(c.Request.Context(), transactionID, req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to replace transaction")
		return
	}

	if txn.TransactionID != transactionID {
		logger.Info("Transaction moved to another partition", slog.String("new_transaction_id", txn.TransactionID), slog.String("kind", string(txn.Kind)))
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn, h.converter))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Deleting an unknown ID is not an error; the response reports whether anything was removed.
// @Tags transactions
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.DeleteTransactionResponse
// @Failure 500 {object} map[string]string "Failed to delete transaction"
// @Router /transactions/{transactionID} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	transactionID := c.Param("transactionID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("transaction_id", transactionID))

	deleted, err := h.transactionService.DeleteTransaction(c.Request.Context(), transactionID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to delete transaction")
		return
	}

	logger.Info("Delete transaction request handled", slog.Bool("deleted", deleted))
	c.JSON(http.StatusOK, dto.DeleteTransactionResponse{TransactionID: transactionID, Deleted: deleted})
}

// listCategories godoc
// @Summary Suggested categories
// @Description Returns the category labels offered for a kind. Categories remain free-form.
// @Tags transactions
// @Produce  json
// @Param   kind query string true "income or expense"
// @Success 200 {object} dto.CategoriesResponse
// @Failure 400 {object} map[string]string "Missing or invalid kind"
// @Router /categories [get]
func listCategories(c *gin.Context) {
	kind, err := domain.ParseTransactionKind(c.Query("kind"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.CategoriesResponse{Kind: string(kind), Categories: domain.SuggestedCategories(kind)})
}
