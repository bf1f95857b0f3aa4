package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sinfini-marketing/sinfini-web-be/internal/core/auth"
	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/models"
	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/services"
)

// FAQ encodings of GET /chatbot/settings
const (
	FAQEncodingText       = "text"
	FAQEncodingStructured = "structured"
)

type ChatbotHandler struct {
	chatbotService *services.ChatbotService
	faqEncoding    string
}

// NewChatbotHandler creates the chatbot handler. With FAQEncodingText the
// settings endpoint returns faqs as a JSON-encoded string.
func NewChatbotHandler(chatbotService *services.ChatbotService, faqEncoding string) *ChatbotHandler {
	if faqEncoding != FAQEncodingStructured {
		faqEncoding = FAQEncodingText
	}
	return &ChatbotHandler{
		chatbotService: chatbotService,
		faqEncoding:    faqEncoding,
	}
}

// GetSettings godoc
// @Summary Get chatbot settings
// @Description Greeting and FAQ list. faqs is a JSON-encoded string unless the server runs with structured encoding.
// @Tags Chatbot
// @Produce json
// @Success 200 {object} models.ChatbotSettingsResponse
// @Failure 500 {object} map[string]interface{}
// @Router /api/chatbot/settings [get]
func (h *ChatbotHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.chatbotService.GetSettings(c.UserContext())
	if err != nil {
		return respondError(c, err, "fetch chatbot settings")
	}
	return h.writeSettings(c, settings)
}

// UpdateSettings godoc
// @Summary Replace chatbot settings
// @Description Replaces greeting and the whole FAQ list. faqs may be an array or a JSON-encoded string.
// @Tags Chatbot
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param settings body models.ChatbotSettingsRequest true "Greeting and FAQs"
// @Success 200 {object} models.ChatbotSettingsResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/chatbot/settings [put]
func (h *ChatbotHandler) UpdateSettings(c *fiber.Ctx) error {
	var req models.ChatbotSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	settings, err := h.chatbotService.SaveSettings(c.UserContext(), auth.ActorFrom(c), &req)
	if err != nil {
		return respondError(c, err, "update chatbot settings")
	}
	return h.writeSettings(c, settings)
}

func (h *ChatbotHandler) writeSettings(c *fiber.Ctx, settings *models.ChatbotSettings) error {
	resp := models.ChatbotSettingsResponse{
		Greeting:  settings.Greeting,
		UpdatedAt: settings.UpdatedAt,
	}

	faqs := settings.FAQList()
	if h.faqEncoding == FAQEncodingStructured {
		resp.FAQs = faqs
	} else {
		encoded, err := faqs.EncodeText()
		if err != nil {
			return respondError(c, err, "encode chatbot settings")
		}
		resp.FAQs = encoded
	}
	return c.JSON(resp)
}

// SendMessage godoc
// @Summary Ask the chatbot
// @Description Answers from the FAQ keywords; unmatched messages get the fallback reply
// @Tags Chatbot
// @Accept json
// @Produce json
// @Param message body models.ChatMessageRequest true "Visitor message"
// @Success 200 {object} models.ChatMessageResponse
// @Failure 400 {object} map[string]interface{}
// @Router /api/chatbot/message [post]
func (h *ChatbotHandler) SendMessage(c *fiber.Ctx) error {
	var req models.ChatMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	reply, err := h.chatbotService.Reply(c.UserContext(), req.Message, c.IP())
	if err != nil {
		return respondError(c, err, "process chatbot message")
	}
	return c.JSON(models.ChatMessageResponse{Response: reply})
}

// ListLogs godoc
// @Summary List chatbot exchanges
// @Tags Chatbot
// @Produce json
// @Security BearerAuth
// @Param outcome query string false "resolved or fallback"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(50)
// @Success 200 {object} models.ChatLogListResponse
// @Failure 400 {object} map[string]interface{}
// @Router /api/chatbot/logs [get]
func (h *ChatbotHandler) ListLogs(c *fiber.Ctx) error {
	logs, err := h.chatbotService.ListLogs(c.UserContext(), models.ChatLogFilter{
		Outcome:  c.Query("outcome"),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 50),
	})
	if err != nil {
		return respondError(c, err, "fetch chat logs")
	}
	return c.JSON(logs)
}
