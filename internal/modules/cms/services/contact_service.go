package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/sinfini-marketing/sinfini-web-be/internal/core/audit"
	"github.com/sinfini-marketing/sinfini-web-be/internal/core/email"
	"github.com/sinfini-marketing/sinfini-web-be/internal/core/jobs"
	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/models"
	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/repositories"
	"github.com/sinfini-marketing/sinfini-web-be/internal/shared/utils"
)

const entityContactMessage = "contact_message"

type ContactService struct {
	contactRepo  repositories.ContactRepo
	jobService   *jobs.Service
	auditService *audit.Service
}

// NewContactService creates the contact service. A nil jobService disables
// admin notifications.
func NewContactService(contactRepo repositories.ContactRepo, jobService *jobs.Service, auditService *audit.Service) *ContactService {
	return &ContactService{
		contactRepo:  contactRepo,
		jobService:   jobService,
		auditService: auditService,
	}
}

// Submit stores a contact form message and queues the admin notification.
// Queueing failures are logged, never returned.
func (s *ContactService) Submit(ctx context.Context, req *models.ContactRequest, ipAddress string) (*models.ContactMessage, error) {
	msg := &models.ContactMessage{
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Subject:   strings.TrimSpace(req.Subject),
		Message:   strings.TrimSpace(req.Message),
		IPAddress: ipAddress,
	}
	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		return nil, validation("name, email and message are required")
	}
	if _, err := mail.ParseAddress(msg.Email); err != nil {
		return nil, validation("email is invalid")
	}

	if err := s.contactRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to store contact message: %w", err)
	}

	if s.jobService != nil {
		_, err := s.jobService.EnqueueNotification(ctx, jobs.TypeContactNotification, email.ContactNotification{
			Reference: msg.Reference.String(),
			Name:      msg.Name,
			Email:     msg.Email,
			Phone:     msg.Phone,
			Subject:   msg.Subject,
			Message:   msg.Message,
		})
		if err != nil {
			utils.LogError("Failed to queue contact notification", err, map[string]interface{}{
				"reference": msg.Reference.String(),
			})
		}
	}

	return msg, nil
}

// ListMessages returns contact messages newest first
func (s *ContactService) ListMessages(ctx context.Context, page models.Pagination) (*models.ContactMessageListResponse, error) {
	page = page.Normalize(20)
	messages, total, err := s.contactRepo.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}

	return &models.ContactMessageListResponse{
		Messages:   messages,
		Total:      total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages(total),
	}, nil
}

// DeleteMessage removes a contact message
func (s *ContactService) DeleteMessage(ctx context.Context, actor audit.Actor, id uint) error {
	msg, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		return translate(err, entityContactMessage)
	}
	if err := s.contactRepo.Delete(ctx, id); err != nil {
		return translate(err, entityContactMessage)
	}

	s.auditService.Record(ctx, actor, audit.ActionDelete, entityContactMessage, idString(id), msg, nil)
	return nil
}

// ContactNotificationHandler delivers queued contact notifications by email
func ContactNotificationHandler(mailer *email.Service) jobs.JobHandler {
	return jobs.HandlerFunc{
		Type: jobs.TypeContactNotification,
		Fn: func(ctx context.Context, job *jobs.Job) error {
			var payload email.ContactNotification
			if err := jobs.DecodePayload(job, &payload); err != nil {
				return err
			}
			return mailer.NotifyContact(ctx, payload)
		},
	}
}
