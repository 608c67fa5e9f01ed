package controllers

import (
	"github.com/gin-gonic/gin"

	"grocery-shop/libs"
	"grocery-shop/models"
)

type AssistantController struct {
	assistant *libs.AssistantClient
}

func NewAssistantController(assistant *libs.AssistantClient) *AssistantController {
	return &AssistantController{assistant: assistant}
}

// @Summary Shopping assistant chat
// @Description Send a message to the shopping assistant and get a reply
// @Tags Assistant
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.AssistantChatRequest true "Message and history"
// @Success 200 {object} models.Response
// @Failure 503 {object} models.ErrorResponse
// @Router /assistant/chat [post]
func (ctrl *AssistantController) Chat(c *gin.Context) {
	if !ctrl.assistant.Enabled() {
		c.JSON(503, gin.H{"success": false, "message": "Shopping assistant is not available"})
		return
	}

	var req models.AssistantChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	history := make([]libs.ChatMessage, 0, len(req.History))
	for _, m := range req.History {
		history = append(history, libs.ChatMessage{Role: m.Role, Content: m.Content})
	}

	reply, err := ctrl.assistant.Chat(c.Request.Context(), req.Message, history)
	if err != nil {
		c.JSON(502, gin.H{"success": false, "message": "Assistant request failed"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Reply generated", "data": gin.H{"reply": reply}})
}
