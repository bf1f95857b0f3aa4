package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sinfini-marketing/sinfini-web-be/internal/core/audit"
	"github.com/sinfini-marketing/sinfini-web-be/internal/core/export"
	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/services"
)

// AdminHandler serves the dashboard, exports and the audit trail
type AdminHandler struct {
	dashboardService *services.DashboardService
	exportService    *services.ExportService
	auditService     *audit.Service
}

func NewAdminHandler(dashboardService *services.DashboardService, exportService *services.ExportService, auditService *audit.Service) *AdminHandler {
	return &AdminHandler{
		dashboardService: dashboardService,
		exportService:    exportService,
		auditService:     auditService,
	}
}

// GetStats godoc
// @Summary Dashboard statistics
// @Description Content counts and daily chatbot activity over a period (last 14 days by default)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param period query string false "today, yesterday, last_7_days, last_14_days, last_30_days or this_month"
// @Success 200 {object} models.DashboardStats
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/dashboard/stats [get]
func (h *AdminHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.dashboardService.GetStats(c.UserContext(), c.Query("period"))
	if err != nil {
		return respondError(c, err, "fetch dashboard stats")
	}
	return c.JSON(stats)
}

// ExportProducts godoc
// @Summary Export the product catalog
// @Tags Admin
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param format query string false "pdf or excel" default(excel)
// @Success 200 {file} binary
// @Failure 400 {object} map[string]interface{}
// @Router /api/admin/export/products [get]
func (h *AdminHandler) ExportProducts(c *fiber.Ctx) error {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	doc, err := h.exportService.ExportProducts(c.UserContext(), format)
	if err != nil {
		return respondError(c, err, "export products")
	}
	return sendDocument(c, doc)
}

// ExportContactMessages godoc
// @Summary Export contact messages
// @Tags Admin
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param format query string false "pdf or excel" default(excel)
// @Success 200 {file} binary
// @Failure 400 {object} map[string]interface{}
// @Router /api/admin/export/contact-messages [get]
func (h *AdminHandler) ExportContactMessages(c *fiber.Ctx) error {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	doc, err := h.exportService.ExportContactMessages(c.UserContext(), format)
	if err != nil {
		return respondError(c, err, "export contact messages")
	}
	return sendDocument(c, doc)
}

func sendDocument(c *fiber.Ctx, doc *export.Document) error {
	c.Set(fiber.HeaderContentType, doc.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, doc.Filename))
	return c.Send(doc.Body)
}

// GetAuditLogs godoc
// @Summary List audit logs
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param actor query string false "Username"
// @Param action query string false "create, update, delete, login or logout"
// @Param entity query string false "Entity type, e.g. product"
// @Param entity_id query string false "Entity ID"
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(50)
// @Success 200 {object} audit.AuditLogResponse
// @Failure 400 {object} map[string]interface{}
// @Router /api/admin/audit-logs [get]
func (h *AdminHandler) GetAuditLogs(c *fiber.Ctx) error {
	filter := audit.AuditFilter{
		Actor:    c.Query("actor"),
		Action:   c.Query("action"),
		Entity:   c.Query("entity"),
		EntityID: c.Query("entity_id"),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 50),
	}

	if raw := c.Query("start_date"); raw != "" {
		start, err := time.ParseInLocation(time.DateOnly, raw, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "start_date must be YYYY-MM-DD"})
		}
		filter.StartDate = &start
	}
	if raw := c.Query("end_date"); raw != "" {
		end, err := time.ParseInLocation(time.DateOnly, raw, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "end_date must be YYYY-MM-DD"})
		}
		end = end.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}

	resp, err := h.auditService.GetLogs(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err, "fetch audit logs")
	}
	return c.JSON(resp)
}
