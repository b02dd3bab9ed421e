package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/faroukh/office_mgmt_app/internal/core/ports/services"
	"github.com/faroukh/office_mgmt_app/internal/dto"
	"github.com/faroukh/office_mgmt_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests for users, roles and departments.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{userService: us}
}

func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	users := rg.Group("/users")
	{
		users.POST("", h.createUser)
		users.GET("", h.listUsers)
		users.GET("/me", h.getCurrentUser)
		users.GET("/:id", h.getUser)
		users.PUT("/:id", h.updateUser)
		users.DELETE("/:id", h.deactivateUser)
	}

	roles := rg.Group("/roles")
	{
		roles.POST("", h.createRole)
		roles.GET("", h.listRoles)
		roles.GET("/:id", h.getRole)
		roles.PUT("/:id/capabilities", h.setRoleCapabilities)
	}

	rg.GET("/capabilities", h.listCapabilities)

	departments := rg.Group("/departments")
	{
		departments.POST("", h.createDepartment)
		departments.GET("", h.listDepartments)
	}
}

// createUser godoc
// @Summary Create a new user
// @Description Registers a new user account; superuser only
// @Tags users
// @Accept  json
// @Produce  json
// @Param   user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Username already taken"
// @Security BearerAuth
// @Router /users [post]
func (h *userHandler) createUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateUser", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create user")
		return
	}

	logger.Info("User created", slog.String("new_user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// getCurrentUser godoc
// @Summary Get the authenticated user
// @Tags users
// @Produce  json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /users/me [get]
func (h *userHandler) getCurrentUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// getUser godoc
// @Summary Get a user by ID
// @Tags users
// @Produce  json
// @Param   id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("id")

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// listUsers godoc
// @Summary List active users
// @Tags users
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.UserResponse
// @Security BearerAuth
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params struct {
		Limit  int `form:"limit"`
		Offset int `form:"offset"`
	}
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponses(users))
}

// updateUser godoc
// @Summary Update a user
// @Description Updates profile fields; self or superuser only
// @Tags users
// @Accept  json
// @Produce  json
// @Param   id path string true "User ID"
// @Param   user body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *userHandler) updateUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	targetUserID := c.Param("id")

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateUser", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), targetUserID, req, requestingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// deactivateUser godoc
// @Summary Deactivate a user
// @Description Soft-deletes a user account; superuser only
// @Tags users
// @Param   id path string true "User ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *userHandler) deactivateUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	targetUserID := c.Param("id")

	requestingUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.userService.DeactivateUser(c.Request.Context(), targetUserID, requestingUserID); err != nil {
		respondServiceError(c, logger, err, "Failed to deactivate user")
		return
	}

	logger.Info("User deactivated", slog.String("target_user_id", targetUserID))
	c.Status(http.StatusNoContent)
}

// createRole godoc
// @Summary Create a role
// @Tags roles
// @Accept  json
// @Produce  json
// @Param   role body dto.CreateRoleRequest true "Role details"
// @Success 201 {object} dto.RoleResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /roles [post]
func (h *userHandler) createRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	role, err := h.userService.CreateRole(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create role")
		return
	}
	c.JSON(http.StatusCreated, dto.ToRoleResponse(role))
}

// getRole godoc
// @Summary Get a role by ID
// @Tags roles
// @Produce  json
// @Param   id path string true "Role ID"
// @Success 200 {object} dto.RoleResponse
// @Failure 404 {object} map[string]string "Role not found"
// @Security BearerAuth
// @Router /roles/{id} [get]
func (h *userHandler) getRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	role, err := h.userService.GetRoleByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve role")
		return
	}
	c.JSON(http.StatusOK, dto.ToRoleResponse(role))
}

// listRoles godoc
// @Summary List roles
// @Tags roles
// @Produce  json
// @Success 200 {array} dto.RoleResponse
// @Security BearerAuth
// @Router /roles [get]
func (h *userHandler) listRoles(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	roles, err := h.userService.ListRoles(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list roles")
		return
	}

	responses := make([]dto.RoleResponse, len(roles))
	for i := range roles {
		responses[i] = dto.ToRoleResponse(&roles[i])
	}
	c.JSON(http.StatusOK, responses)
}

// setRoleCapabilities godoc
// @Summary Replace a role's capability grants
// @Tags roles
// @Accept  json
// @Param   id path string true "Role ID"
// @Param   capabilities body object true "Capability codes"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /roles/{id}/capabilities [put]
func (h *userHandler) setRoleCapabilities(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req struct {
		Capabilities []string `json:"capabilities" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.userService.SetRoleCapabilities(c.Request.Context(), c.Param("id"), req.Capabilities, requestingUserID); err != nil {
		respondServiceError(c, logger, err, "Failed to set role capabilities")
		return
	}
	c.Status(http.StatusNoContent)
}

// listCapabilities godoc
// @Summary List the capability catalogue
// @Tags roles
// @Produce  json
// @Success 200 {array} domain.Capability
// @Security BearerAuth
// @Router /capabilities [get]
func (h *userHandler) listCapabilities(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caps, err := h.userService.ListCapabilities(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list capabilities")
		return
	}
	c.JSON(http.StatusOK, caps)
}

// createDepartment godoc
// @Summary Create a department
// @Tags departments
// @Accept  json
// @Produce  json
// @Param   department body dto.CreateDepartmentRequest true "Department details"
// @Success 201 {object} domain.Department
// @Security BearerAuth
// @Router /departments [post]
func (h *userHandler) createDepartment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	dept, err := h.userService.CreateDepartment(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create department")
		return
	}
	c.JSON(http.StatusCreated, dept)
}

// listDepartments godoc
// @Summary List departments
// @Tags departments
// @Produce  json
// @Success 200 {array} domain.Department
// @Security BearerAuth
// @Router /departments [get]
func (h *userHandler) listDepartments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	depts, err := h.userService.ListDepartments(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list departments")
		return
	}
	c.JSON(http.StatusOK, depts)
}
