package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/faroukh/office_mgmt_app/internal/core/ports/services"
	"github.com/faroukh/office_mgmt_app/internal/dto"
	"github.com/faroukh/office_mgmt_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests for office transactions, their
// checklists, documents and distributions.
type transactionHandler struct {
	txnService portssvc.TransactionSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{txnService: ts}
}

func registerTransactionRoutes(rg *gin.RouterGroup, txnService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(txnService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:id", h.getTransaction)
		transactions.PUT("/:id", h.updateTransaction)
		transactions.POST("/:id/start-processing", h.startProcessing)
		transactions.POST("/:id/request-documents", h.requestDocuments)
		transactions.POST("/:id/complete", h.complete)
		transactions.GET("/:id/checklist", h.getChecklist)
		transactions.GET("/:id/documents", h.listDocuments)
	}

	rg.POST("/distributions", h.distribute)
	rg.POST("/documents", h.attachDocument)
	rg.POST("/documents/:id/stamp", h.stampDocument)
	rg.GET("/dashboard/stats", h.dashboardStats)
}

// createTransaction godoc
// @Summary Open a new transaction
// @Description Creates a case file with a generated short code and seeds its document checklist
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Short code collision"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	txn, err := h.txnService.CreateTransaction(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create transaction")
		return
	}

	logger.Info("Transaction created", slog.String("short_code", txn.ShortCode))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestingUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	txn, err := h.txnService.GetTransactionByID(c.Request.Context(), c.Param("id"), requestingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists transactions scoped by the caller's view capabilities
// @Tags transactions
// @Produce  json
// @Param   status query string false "Filter by status"
// @Param   is_active query bool false "Exclude completed and cancelled"
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.TransactionResponse
// @Failure 403 {object} map[string]string "No view capability"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	requestingUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	txns, err := h.txnService.ListTransactions(c.Request.Context(), params, requestingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
}

// updateTransaction godoc
// @Summary Update transaction metadata
// @Description Updates mutable fields; short code and status are untouchable here
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Param   transaction body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	txn, err := h.txnService.UpdateTransaction(c.Request.Context(), c.Param("id"), req, requestingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// startProcessing godoc
// @Summary Move a transaction to processing
// @Description Allowed for the assignee or a superuser, from under_review only
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Not under review"
// @Failure 403 {object} map[string]string "Not the assignee"
// @Security BearerAuth
// @Router /transactions/{id}/start-processing [post]
func (h *transactionHandler) startProcessing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestingUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	txn, err := h.txnService.StartProcessing(c.Request.Context(), c.Param("id"), requestingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to start processing")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// requestDocuments godoc
// @Summary Flag a transaction as awaiting documents
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 403 {object} map[string]string "Not the assignee"
// @Security BearerAuth
// @Router /transactions/{id}/request-documents [post]
func (h *transactionHandler) requestDocuments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestingUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	txn, err := h.txnService.RequestDocuments(c.Request.Context(), c.Param("id"), requestingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to request documents")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// complete godoc
// @Summary Mark a transaction completed
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 403 {object} map[string]string "Not the assignee"
// @Security BearerAuth
// @Router /transactions/{id}/complete [post]
func (h *transactionHandler) complete(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestingUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	txn, err := h.txnService.Complete(c.Request.Context(), c.Param("id"), requestingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to complete transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// distribute godoc
// @Summary Hand a transaction to an assignee
// @Description Records the hand-off, forces the status to under_review and notifies the assignee
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   distribution body dto.DistributeRequest true "Distribution details"
// @Success 201 {object} dto.DistributionResponse
// @Failure 400 {object} map[string]string "Unknown assignee"
// @Failure 403 {object} map[string]string "Missing assign capability"
// @Security BearerAuth
// @Router /distributions [post]
func (h *transactionHandler) distribute(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.DistributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Distribute", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	assignerUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	dist, err := h.txnService.Distribute(c.Request.Context(), req, assignerUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to distribute transaction")
		return
	}

	logger.Info("Transaction distributed",
		slog.String("transaction_id", dist.TransactionID),
		slog.String("assigned_to", dist.AssignedToID))
	c.JSON(http.StatusCreated, dto.ToDistributionResponse(dist))
}

// getChecklist godoc
// @Summary Get a transaction's required-document checklist
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {array} dto.ChecklistSlotResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id}/checklist [get]
func (h *transactionHandler) getChecklist(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestingUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	slots, err := h.txnService.GetChecklist(c.Request.Context(), c.Param("id"), requestingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve checklist")
		return
	}

	responses := make([]dto.ChecklistSlotResponse, len(slots))
	for i := range slots {
		responses[i] = dto.ToChecklistSlotResponse(&slots[i])
	}
	c.JSON(http.StatusOK, responses)
}

// attachDocument godoc
// @Summary Record an uploaded document
// @Description Attaches a stored file to a transaction, optionally filling a checklist slot
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   document body dto.AttachDocumentRequest true "Document details"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string "Slot already filled"
// @Security BearerAuth
// @Router /documents [post]
func (h *transactionHandler) attachDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AttachDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	uploaderUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	doc, err := h.txnService.AttachDocument(c.Request.Context(), req, uploaderUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to attach document")
		return
	}
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(doc))
}

// listDocuments godoc
// @Summary List a transaction's documents
// @Tags documents
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {array} dto.DocumentResponse
// @Security BearerAuth
// @Router /transactions/{id}/documents [get]
func (h *transactionHandler) listDocuments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestingUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	docs, err := h.txnService.ListDocuments(c.Request.Context(), c.Param("id"), requestingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list documents")
		return
	}

	responses := make([]dto.DocumentResponse, len(docs))
	for i := range docs {
		responses[i] = dto.ToDocumentResponse(&docs[i])
	}
	c.JSON(http.StatusOK, responses)
}

// stampDocument godoc
// @Summary Record the stamped variant of a document
// @Tags documents
// @Accept  json
// @Param   id path string true "Document ID"
// @Param   stamp body object true "Stamped file path"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Document not found"
// @Security BearerAuth
// @Router /documents/{id}/stamp [post]
func (h *transactionHandler) stampDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req struct {
		StampedFilePath string `json:"stampedFilePath" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.txnService.StampDocument(c.Request.Context(), c.Param("id"), req.StampedFilePath, requestingUserID); err != nil {
		respondServiceError(c, logger, err, "Failed to stamp document")
		return
	}
	c.Status(http.StatusNoContent)
}

// dashboardStats godoc
// @Summary Dashboard headline counts
// @Description Aggregates transaction and task counts by status
// @Tags dashboard
// @Produce  json
// @Success 200 {object} dto.DashboardStats
// @Security BearerAuth
// @Router /dashboard/stats [get]
func (h *transactionHandler) dashboardStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestingUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	stats, err := h.txnService.GetDashboardStats(c.Request.Context(), requestingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute dashboard stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
