package handlers

import (
	"log/slog"
	"net/http"

	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	portssvc "github.com/faroukh/office_mgmt_app/internal/core/ports/services"
	"github.com/faroukh/office_mgmt_app/internal/dto"
	"github.com/faroukh/office_mgmt_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// chatHandler serves chat rooms, messages, read receipts and presence.
type chatHandler struct {
	chatService portssvc.ChatSvcFacade
}

func newChatHandler(cs portssvc.ChatSvcFacade) *chatHandler {
	return &chatHandler{chatService: cs}
}

func registerChatRoutes(rg *gin.RouterGroup, chatService portssvc.ChatSvcFacade) {
	h := newChatHandler(chatService)

	rooms := rg.Group("/chat/rooms")
	{
		rooms.POST("", h.createRoom)
		rooms.GET("", h.listRooms)
		rooms.GET("/:id", h.getRoom)
		rooms.POST("/:id/participants", h.addParticipants)
		rooms.POST("/:id/leave", h.leaveRoom)
		rooms.POST("/:id/messages", h.sendMessage)
		rooms.GET("/:id/messages", h.listMessages)
		rooms.POST("/:id/messages/read", h.markMessagesRead)
		rooms.POST("/:id/messages/read-all", h.markAllMessagesRead)
		rooms.GET("/:id/unread", h.countUnread)
	}

	rg.POST("/presence", h.updatePresence)
	rg.GET("/presence/:id", h.getPresence)
}

// createRoom godoc
// @Summary Create a chat room
// @Description The creator is always a participant; private rooms hold exactly two members
// @Tags chat
// @Accept  json
// @Produce  json
// @Param   room body dto.CreateRoomRequest true "Room details"
// @Success 201 {object} dto.RoomResponse
// @Failure 400 {object} map[string]string "Invalid participant set"
// @Security BearerAuth
// @Router /chat/rooms [post]
func (h *chatHandler) createRoom(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateRoom", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	room, err := h.chatService.CreateRoom(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create chat room")
		return
	}
	c.JSON(http.StatusCreated, dto.ToRoomResponse(room))
}

// getRoom godoc
// @Summary Get a chat room with its participants
// @Tags chat
// @Produce  json
// @Param   id path string true "Room ID"
// @Success 200 {object} dto.RoomResponse
// @Failure 403 {object} map[string]string "Not a participant"
// @Failure 404 {object} map[string]string "Room not found"
// @Security BearerAuth
// @Router /chat/rooms/{id} [get]
func (h *chatHandler) getRoom(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestingUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	room, err := h.chatService.GetRoomByID(c.Request.Context(), c.Param("id"), requestingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve chat room")
		return
	}
	c.JSON(http.StatusOK, dto.ToRoomResponse(room))
}

// listRooms godoc
// @Summary List the caller's chat rooms
// @Tags chat
// @Produce  json
// @Param   room_type query string false "Filter by room type"
// @Success 200 {array} dto.RoomResponse
// @Security BearerAuth
// @Router /chat/rooms [get]
func (h *chatHandler) listRooms(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestingUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var roomType *domain.RoomType
	if rt := c.Query("room_type"); rt != "" {
		t := domain.RoomType(rt)
		roomType = &t
	}

	rooms, err := h.chatService.ListRooms(c.Request.Context(), requestingUserID, roomType)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list chat rooms")
		return
	}
	c.JSON(http.StatusOK, dto.ToRoomResponses(rooms))
}

// addParticipants godoc
// @Summary Add participants to a group room
// @Tags chat
// @Accept  json
// @Param   id path string true "Room ID"
// @Param   participants body object true "User IDs to add"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Private rooms cannot grow"
// @Failure 403 {object} map[string]string "Not a participant"
// @Security BearerAuth
// @Router /chat/rooms/{id}/participants [post]
func (h *chatHandler) addParticipants(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req struct {
		UserIDs []string `json:"userIds" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.chatService.AddParticipants(c.Request.Context(), c.Param("id"), req.UserIDs, requestingUserID); err != nil {
		respondServiceError(c, logger, err, "Failed to add participants")
		return
	}
	c.Status(http.StatusNoContent)
}

// leaveRoom godoc
// @Summary Leave a chat room
// @Tags chat
// @Param   id path string true "Room ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Not a participant of this room"
// @Security BearerAuth
// @Router /chat/rooms/{id}/leave [post]
func (h *chatHandler) leaveRoom(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestingUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.chatService.LeaveRoom(c.Request.Context(), c.Param("id"), requestingUserID); err != nil {
		respondServiceError(c, logger, err, "Failed to leave room")
		return
	}
	c.Status(http.StatusNoContent)
}

// sendMessage godoc
// @Summary Send a message to a room
// @Description Persists the message, seeds unread statuses and fans out over the realtime channel
// @Tags chat
// @Accept  json
// @Produce  json
// @Param   id path string true "Room ID"
// @Param   message body dto.SendMessageRequest true "Message content"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} map[string]string "Not a participant or room closed"
// @Security BearerAuth
// @Router /chat/rooms/{id}/messages [post]
func (h *chatHandler) sendMessage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SendMessage", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	senderUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	msg, err := h.chatService.SendMessage(c.Request.Context(), c.Param("id"), req, senderUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to send message")
		return
	}
	c.JSON(http.StatusCreated, dto.ToMessageResponse(msg))
}

// listMessages godoc
// @Summary List messages in a room
// @Description Oldest first, token-paginated
// @Tags chat
// @Produce  json
// @Param   id path string true "Room ID"
// @Param   limit query int false "Page size" default(50)
// @Param   next_token query string false "Opaque pagination token"
// @Success 200 {object} dto.ListMessagesResponse
// @Failure 403 {object} map[string]string "Not a participant"
// @Security BearerAuth
// @Router /chat/rooms/{id}/messages [get]
func (h *chatHandler) listMessages(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListMessagesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	requestingUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	resp, err := h.chatService.ListMessages(c.Request.Context(), c.Param("id"), params, requestingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list messages")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// markMessagesRead godoc
// @Summary Mark specific messages as read
// @Tags chat
// @Accept  json
// @Param   id path string true "Room ID"
// @Param   read body dto.MarkReadRequest true "Message IDs"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Not a participant"
// @Security BearerAuth
// @Router /chat/rooms/{id}/messages/read [post]
func (h *chatHandler) markMessagesRead(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.chatService.MarkMessagesRead(c.Request.Context(), c.Param("id"), req.MessageIDs, requestingUserID); err != nil {
		respondServiceError(c, logger, err, "Failed to mark messages read")
		return
	}
	c.Status(http.StatusNoContent)
}

// markAllMessagesRead godoc
// @Summary Mark every message in a room as read
// @Tags chat
// @Param   id path string true "Room ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Not a participant"
// @Security BearerAuth
// @Router /chat/rooms/{id}/messages/read-all [post]
func (h *chatHandler) markAllMessagesRead(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestingUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.chatService.MarkAllMessagesRead(c.Request.Context(), c.Param("id"), requestingUserID); err != nil {
		respondServiceError(c, logger, err, "Failed to mark messages read")
		return
	}
	c.Status(http.StatusNoContent)
}

// countUnread godoc
// @Summary Count the caller's unread messages in a room
// @Tags chat
// @Produce  json
// @Param   id path string true "Room ID"
// @Success 200 {object} map[string]int
// @Failure 403 {object} map[string]string "Not a participant"
// @Security BearerAuth
// @Router /chat/rooms/{id}/unread [get]
func (h *chatHandler) countUnread(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestingUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	count, err := h.chatService.CountUnread(c.Request.Context(), c.Param("id"), requestingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to count unread messages")
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}

// updatePresence godoc
// @Summary Update the caller's presence
// @Tags chat
// @Accept  json
// @Param   presence body dto.UpdatePresenceRequest true "Presence state"
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /presence [post]
func (h *chatHandler) updatePresence(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdatePresenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.chatService.UpdatePresence(c.Request.Context(), req, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to update presence")
		return
	}
	c.Status(http.StatusNoContent)
}

// getPresence godoc
// @Summary Get a user's presence
// @Description A user who never reported presence is returned as offline
// @Tags chat
// @Produce  json
// @Param   id path string true "User ID"
// @Success 200 {object} dto.PresenceResponse
// @Security BearerAuth
// @Router /presence/{id} [get]
func (h *chatHandler) getPresence(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	presence, err := h.chatService.GetPresence(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve presence")
		return
	}
	c.JSON(http.StatusOK, dto.ToPresenceResponse(presence))
}
