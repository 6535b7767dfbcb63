package handlers

import (
	"encoding/csv"
	"log/slog"
	"net/http"

	"github.com/SscSPs/personal_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/personal_ledger/internal/core/ports/services"
	"github.com/SscSPs/personal_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

const exportFilename = "transactions.csv"

// exportHandler streams the ledger as a flat table.
type exportHandler struct {
	exporter portssvc.TransactionExporterSvc
}

func registerExportRoutes(rg *gin.RouterGroup, exporter portssvc.TransactionExporterSvc) {
	h := &exportHandler{exporter: exporter}
	rg.GET("/export/"+exportFilename, h.exportTransactions)
}

// exportTransactions godoc
// @Summary Export transactions as CSV
// @Description Income rows first, then expense rows, with the header id,date,type,category,description,amount,currency
// @Tags export
// @Produce  text/csv
// @Success 200 {string} string "CSV document"
// @Failure 500 {object} map[string]string "Failed to export transactions"
// @Router /export/transactions.csv [get]
func (h *exportHandler) exportTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rows, err := h.exporter.ExportRows(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to export transactions")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	if err := w.Write(domain.ExportHeader); err != nil {
		logger.Error("Failed to write export header", slog.String("error", err.Error()))
		return
	}
	for _, row := range rows {
		if err := w.Write(row.Record()); err != nil {
			logger.Error("Failed to write export row", slog.String("error", err.Error()), slog.String("transaction_id", row.ID))
			return
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		logger.Error("Failed to flush export", slog.String("error", err.Error()))
		return
	}

	logger.Info("Exported transactions", slog.Int("row_count", len(rows)))
}
