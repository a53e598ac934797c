package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openfmis/ipsas_ledger/internal/core/domain"
	portsrepo "github.com/openfmis/ipsas_ledger/internal/core/ports/repositories"
	portssvc "github.com/openfmis/ipsas_ledger/internal/core/ports/services"
	"github.com/openfmis/ipsas_ledger/internal/dto"
	"github.com/openfmis/ipsas_ledger/internal/middleware"
	"github.com/openfmis/ipsas_ledger/internal/utils/pagination"
)

// glHandler handles HTTP requests for the transaction lifecycle.
type glHandler struct {
	glService portssvc.GLSvcFacade
}

// registerGLRoutes registers the GL transaction routes.
func registerGLRoutes(rg *gin.RouterGroup, glService portssvc.GLSvcFacade) {
	h := &glHandler{glService: glService}

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createJournalEntry)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:id", h.getTransaction)
		transactions.POST("/:id/approve", h.approveTransaction)
		transactions.POST("/:id/post", h.postTransaction)
		transactions.POST("/:id/reverse", h.reverseTransaction)
	}
}

func (h *glHandler) createJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateJournalEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.glService.CreateJournalEntry(c.Request.Context(), req, actorID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToGLTransactionResponse(txn))
}

func (h *glHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	txn, err := h.glService.GetTransactionByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGLTransactionResponse(txn))
}

func (h *glHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var q dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&q); err != nil {
		logger.Warn("Invalid transaction list parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	filter := portsrepo.TransactionFilter{
		EntityID:     q.EntityID,
		FundID:       q.FundID,
		Status:       domain.TransactionStatus(q.Status),
		SourceModule: q.SourceModule,
		FiscalYear:   q.FiscalYear,
		Period:       q.Period,
	}
	params := pagination.Normalize(q.Page, q.Limit, q.SortBy, q.SortOrder)

	txns, pageInfo, err := h.glService.ListTransactions(c.Request.Context(), filter, params)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(dto.ToGLTransactionResponses(txns), pageInfo))
}

func (h *glHandler) approveTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.glService.ApproveTransaction(c.Request.Context(), c.Param("id"), actorID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGLTransactionResponse(txn))
}

func (h *glHandler) postTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.glService.PostTransaction(c.Request.Context(), c.Param("id"), actorID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGLTransactionResponse(txn))
}

func (h *glHandler) reverseTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ReverseTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReverseTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "A reversal reason is required"})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reversal, err := h.glService.ReverseTransaction(c.Request.Context(), c.Param("id"), req.Reason, actorID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToGLTransactionResponse(reversal))
}
