package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/faroukh/office_mgmt_app/internal/core/ports/services"
	"github.com/faroukh/office_mgmt_app/internal/dto"
	"github.com/faroukh/office_mgmt_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// clientHandler handles HTTP requests for clients and the transaction
// taxonomy.
type clientHandler struct {
	clientService portssvc.ClientSvcFacade
}

func newClientHandler(cs portssvc.ClientSvcFacade) *clientHandler {
	return &clientHandler{clientService: cs}
}

func registerClientRoutes(rg *gin.RouterGroup, clientService portssvc.ClientSvcFacade) {
	h := newClientHandler(clientService)

	clients := rg.Group("/clients")
	{
		clients.POST("", h.createClient)
		clients.GET("", h.listClients)
		clients.GET("/:id", h.getClient)
		clients.PUT("/:id", h.updateClient)
	}

	categories := rg.Group("/categories")
	{
		categories.POST("", h.createMainCategory)
		categories.GET("", h.listMainCategories)
		categories.POST("/sub", h.createSubCategory)
		categories.GET("/sub", h.listSubCategories)
	}

	authorities := rg.Group("/authorities")
	{
		authorities.POST("", h.createAuthority)
		authorities.GET("", h.listAuthorities)
	}
}

// createClient godoc
// @Summary Register a client
// @Tags clients
// @Accept  json
// @Produce  json
// @Param   client body dto.CreateClientRequest true "Client details"
// @Success 201 {object} dto.ClientResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Client code already exists"
// @Security BearerAuth
// @Router /clients [post]
func (h *clientHandler) createClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateClient", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create client")
		return
	}

	logger.Info("Client created", slog.String("client_code", client.ClientCode))
	c.JSON(http.StatusCreated, dto.ToClientResponse(client))
}

// getClient godoc
// @Summary Get a client by ID
// @Tags clients
// @Produce  json
// @Param   id path string true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 404 {object} map[string]string "Client not found"
// @Security BearerAuth
// @Router /clients/{id} [get]
func (h *clientHandler) getClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	client, err := h.clientService.GetClientByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve client")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// listClients godoc
// @Summary List clients
// @Tags clients
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.ClientResponse
// @Security BearerAuth
// @Router /clients [get]
func (h *clientHandler) listClients(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params struct {
		Limit  int `form:"limit"`
		Offset int `form:"offset"`
	}
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	clients, err := h.clientService.ListClients(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list clients")
		return
	}

	responses := make([]dto.ClientResponse, len(clients))
	for i := range clients {
		responses[i] = dto.ToClientResponse(&clients[i])
	}
	c.JSON(http.StatusOK, responses)
}

// updateClient godoc
// @Summary Update a client
// @Tags clients
// @Accept  json
// @Produce  json
// @Param   id path string true "Client ID"
// @Param   client body dto.UpdateClientRequest true "Fields to update"
// @Success 200 {object} dto.ClientResponse
// @Failure 404 {object} map[string]string "Client not found"
// @Security BearerAuth
// @Router /clients/{id} [put]
func (h *clientHandler) updateClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), c.Param("id"), req, requestingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update client")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// createMainCategory godoc
// @Summary Create a main transaction category
// @Tags categories
// @Accept  json
// @Produce  json
// @Param   category body dto.CreateCategoryRequest true "Category details"
// @Success 201 {object} domain.TransactionMainCategory
// @Security BearerAuth
// @Router /categories [post]
func (h *clientHandler) createMainCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	cat, err := h.clientService.CreateMainCategory(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create category")
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// listMainCategories godoc
// @Summary List main transaction categories
// @Tags categories
// @Produce  json
// @Success 200 {array} domain.TransactionMainCategory
// @Security BearerAuth
// @Router /categories [get]
func (h *clientHandler) listMainCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	cats, err := h.clientService.ListMainCategories(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list categories")
		return
	}
	c.JSON(http.StatusOK, cats)
}

// createSubCategory godoc
// @Summary Create a transaction sub-category
// @Tags categories
// @Accept  json
// @Produce  json
// @Param   subCategory body dto.CreateSubCategoryRequest true "Sub-category details"
// @Success 201 {object} domain.TransactionSubCategory
// @Security BearerAuth
// @Router /categories/sub [post]
func (h *clientHandler) createSubCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	sub, err := h.clientService.CreateSubCategory(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create sub-category")
		return
	}
	c.JSON(http.StatusCreated, sub)
}

// listSubCategories godoc
// @Summary List transaction sub-categories
// @Tags categories
// @Produce  json
// @Param   main_category_id query string false "Filter by main category"
// @Success 200 {array} domain.TransactionSubCategory
// @Security BearerAuth
// @Router /categories/sub [get]
func (h *clientHandler) listSubCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var mainCategoryID *string
	if v := c.Query("main_category_id"); v != "" {
		mainCategoryID = &v
	}

	subs, err := h.clientService.ListSubCategories(c.Request.Context(), mainCategoryID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list sub-categories")
		return
	}
	c.JSON(http.StatusOK, subs)
}

// createAuthority godoc
// @Summary Create a competent authority
// @Tags authorities
// @Accept  json
// @Produce  json
// @Param   authority body dto.CreateCategoryRequest true "Authority details"
// @Success 201 {object} domain.CompetentAuthority
// @Security BearerAuth
// @Router /authorities [post]
func (h *clientHandler) createAuthority(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	auth, err := h.clientService.CreateAuthority(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create authority")
		return
	}
	c.JSON(http.StatusCreated, auth)
}

// listAuthorities godoc
// @Summary List competent authorities
// @Tags authorities
// @Produce  json
// @Success 200 {array} domain.CompetentAuthority
// @Security BearerAuth
// @Router /authorities [get]
func (h *clientHandler) listAuthorities(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	auths, err := h.clientService.ListAuthorities(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list authorities")
		return
	}
	c.JSON(http.StatusOK, auths)
}
