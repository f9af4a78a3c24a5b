package handlers

import (
	"net/http"

	portssvc "github.com/centbook/centbook_backend/internal/core/ports/services"
	"github.com/centbook/centbook_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// TransactionHandler handles the ledger endpoints. All balance mutation in the
// API goes through these routes.
type TransactionHandler struct {
	ledgerService   portssvc.LedgerSvcFacade
	documentService portssvc.DocumentSvcFacade
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ls portssvc.LedgerSvcFacade, ds portssvc.DocumentSvcFacade) *TransactionHandler {
	return &TransactionHandler{ledgerService: ls, documentService: ds}
}

// registerTransactionRoutes sets up the routes for transaction management.
func registerTransactionRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, documentService portssvc.DocumentSvcFacade) {
	h := NewTransactionHandler(ledgerService, documentService)
	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.CreateTransaction)
		transactions.GET("", h.ListTransactions)
		transactions.GET("/:id", h.GetTransaction)
		transactions.PUT("/:id", h.UpdateTransaction)
		transactions.DELETE("/:id", h.DeleteTransaction)

		transactions.GET("/:id/documents", h.ListTransactionDocuments)
		transactions.POST("/:id/documents/:docID", h.AttachDocument)
		transactions.DELETE("/:id/documents/:docID", h.DetachDocument)
	}
}

// CreateTransaction godoc
// @Summary Record a transaction
// @Description Records an EXPENSE, INCOME, or TRANSFER and applies its balance effect atomically. Pending transactions touch no balances until booked.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Referenced account or category not found"
// @Security BearerAuth
// @Router /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	ownerID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	txn, err := h.ledgerService.CreateTransaction(c.Request.Context(), ownerID, req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// ListTransactions godoc
// @Summary List transactions
// @Description Lists transactions newest first with keyset pagination, optionally filtered to a single account.
// @Tags transactions
// @Produce json
// @Param limit query int false "Page size, default 20"
// @Param nextToken query string false "Opaque cursor from a previous page"
// @Param accountID query string false "Restrict to transactions touching this account"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	ownerID, ok := mustUserID(c)
	if !ok {
		return
	}
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	page, err := h.ledgerService.ListTransactions(c.Request.Context(), ownerID, params)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetTransaction godoc
// @Summary Get transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Transaction belongs to another user"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	ownerID, ok := mustUserID(c)
	if !ok {
		return
	}
	txn, err := h.ledgerService.GetTransactionByID(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// UpdateTransaction godoc
// @Summary Update transaction
// @Description Patches a transaction and reconciles balances in one step: the old booked effect is reversed and the new effect applied atomically.
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param transaction body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	ownerID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	txn, err := h.ledgerService.UpdateTransaction(c.Request.Context(), ownerID, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// DeleteTransaction godoc
// @Summary Delete transaction
// @Description Deletes a transaction and reverses its booked balance effect. Pending transactions vanish without touching balances.
// @Tags transactions
// @Param id path string true "Transaction ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	ownerID, ok := mustUserID(c)
	if !ok {
		return
	}
	if err := h.ledgerService.DeleteTransaction(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListTransactionDocuments godoc
// @Summary List documents attached to a transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {array} dto.DocumentResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id}/documents [get]
func (h *TransactionHandler) ListTransactionDocuments(c *gin.Context) {
	ownerID, ok := mustUserID(c)
	if !ok {
		return
	}
	docs, err := h.documentService.ListTransactionDocuments(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListDocumentResponse(docs))
}

// AttachDocument godoc
// @Summary Attach a document to a transaction
// @Tags transactions
// @Param id path string true "Transaction ID"
// @Param docID path string true "Document ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Document already attached"
// @Security BearerAuth
// @Router /transactions/{id}/documents/{docID} [post]
func (h *TransactionHandler) AttachDocument(c *gin.Context) {
	ownerID, ok := mustUserID(c)
	if !ok {
		return
	}
	if err := h.documentService.AttachToTransaction(c.Request.Context(), ownerID, c.Param("docID"), c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DetachDocument godoc
// @Summary Detach a document from a transaction
// @Tags transactions
// @Param id path string true "Transaction ID"
// @Param docID path string true "Document ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id}/documents/{docID} [delete]
func (h *TransactionHandler) DetachDocument(c *gin.Context) {
	ownerID, ok := mustUserID(c)
	if !ok {
		return
	}
	if err := h.documentService.DetachFromTransaction(c.Request.Context(), ownerID, c.Param("docID"), c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
