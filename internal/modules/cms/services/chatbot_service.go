package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sinfini-marketing/sinfini-web-be/internal/core/audit"
	"github.com/sinfini-marketing/sinfini-web-be/internal/core/chatbot"
	"github.com/sinfini-marketing/sinfini-web-be/internal/core/llm"
	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/models"
	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/repositories"
	"github.com/sinfini-marketing/sinfini-web-be/internal/shared/utils"
)

const (
	entityChatbotSettings = "chatbot_settings"
	maxLoggedMessage      = 2000
)

type ChatbotService struct {
	chatbotRepo  repositories.ChatbotRepo
	matcher      *chatbot.Matcher
	llmService   *llm.Service
	auditService *audit.Service
	companyName  string
}

// NewChatbotService wires the matcher and the optional LLM fallback; a nil
// llmService disables the LLM.
func NewChatbotService(chatbotRepo repositories.ChatbotRepo, matcher *chatbot.Matcher, llmService *llm.Service, auditService *audit.Service, companyName string) *ChatbotService {
	return &ChatbotService{
		chatbotRepo:  chatbotRepo,
		matcher:      matcher,
		llmService:   llmService,
		auditService: auditService,
		companyName:  companyName,
	}
}

// GetSettings returns the saved settings, or the default greeting with an
// empty FAQ list before the first save
func (s *ChatbotService) GetSettings(ctx context.Context) (*models.ChatbotSettings, error) {
	settings, err := s.chatbotRepo.GetSettings(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.ChatbotSettings{
			ID:       models.SettingsRowID,
			Greeting: chatbot.DefaultGreeting,
			FAQs:     datatypes.NewJSONType(chatbot.FAQList{}),
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load chatbot settings: %w", err)
	}
	return settings, nil
}

// SaveSettings replaces greeting and FAQs wholesale. Saving the same
// payload twice leaves the same state.
func (s *ChatbotService) SaveSettings(ctx context.Context, actor audit.Actor, req *models.ChatbotSettingsRequest) (*models.ChatbotSettings, error) {
	greeting := strings.TrimSpace(req.Greeting)
	if greeting == "" {
		greeting = chatbot.DefaultGreeting
	}

	before, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	settings := &models.ChatbotSettings{
		Greeting: greeting,
		FAQs:     datatypes.NewJSONType(req.FAQs.Normalized()),
	}
	if err := s.chatbotRepo.SaveSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save chatbot settings: %w", err)
	}

	s.auditService.Record(ctx, actor, audit.ActionUpdate, entityChatbotSettings, idString(models.SettingsRowID), settingsSnapshot(before), settingsSnapshot(settings))
	return settings, nil
}

// Reply answers a visitor message from the FAQs. When nothing matches and
// the LLM is enabled its answer is used; LLM errors fall back to the static
// reply. Every exchange is logged.
func (s *ChatbotService) Reply(ctx context.Context, message, ipAddress string) (string, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return "", err
	}
	faqs := settings.FAQList()

	entry := &models.ChatLog{
		Message:   truncateRunes(message, maxLoggedMessage),
		IPAddress: ipAddress,
	}

	if match, ok := s.matcher.Match(message, faqs); ok {
		entry.Response = match.Entry.Answer
		entry.Outcome = models.OutcomeResolved
		entry.Source = models.SourceFAQ
		entry.MatchedQuestion = match.Entry.Question
		entry.Score = match.Score
	} else {
		entry.Response = s.matcher.Fallback()
		entry.Outcome = models.OutcomeFallback
		entry.Source = models.SourceStatic
		if answer, ok := s.askLLM(ctx, settings.Greeting, faqs, message); ok {
			entry.Response = answer
			entry.Source = models.SourceLLM
		}
	}

	if err := s.chatbotRepo.CreateLog(ctx, entry); err != nil {
		utils.LogWarn("Failed to record chat log", map[string]interface{}{"error": err.Error()})
	}
	return entry.Response, nil
}

func (s *ChatbotService) askLLM(ctx context.Context, greeting string, faqs chatbot.FAQList, message string) (string, bool) {
	if s.llmService == nil || strings.TrimSpace(message) == "" {
		return "", false
	}

	prompt := llm.BuildSupportPrompt(s.companyName, greeting, faqs)
	answer, err := s.llmService.GenerateResponse(ctx, prompt, message)
	if err != nil {
		utils.LogWarn("LLM fallback failed", map[string]interface{}{
			"provider": s.llmService.GetProviderName(),
			"error":    err.Error(),
		})
		return "", false
	}
	answer = strings.TrimSpace(answer)
	return answer, answer != ""
}

// ListLogs returns chat logs newest first
func (s *ChatbotService) ListLogs(ctx context.Context, filter models.ChatLogFilter) (*models.ChatLogListResponse, error) {
	if filter.Outcome != "" && filter.Outcome != models.OutcomeResolved && filter.Outcome != models.OutcomeFallback {
		return nil, validation("outcome must be resolved or fallback")
	}

	page := models.Pagination{Page: filter.Page, PageSize: filter.PageSize}.Normalize(50)
	filter.Page, filter.PageSize = page.Page, page.PageSize

	logs, total, err := s.chatbotRepo.ListLogs(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat logs: %w", err)
	}

	return &models.ChatLogListResponse{
		Logs:       logs,
		Total:      total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages(total),
	}, nil
}

// PurgeLogs deletes chat logs older than days
func (s *ChatbotService) PurgeLogs(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, validation("retention days must be positive")
	}
	return s.chatbotRepo.DeleteLogsBefore(ctx, time.Now().AddDate(0, 0, -days))
}

func settingsSnapshot(s *models.ChatbotSettings) map[string]interface{} {
	return map[string]interface{}{
		"greeting": s.Greeting,
		"faqs":     s.FAQList(),
	}
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
