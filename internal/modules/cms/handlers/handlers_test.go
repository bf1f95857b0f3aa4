package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sinfini-marketing/sinfini-web-be/internal/core/analytics"
	"github.com/sinfini-marketing/sinfini-web-be/internal/core/audit"
	"github.com/sinfini-marketing/sinfini-web-be/internal/core/auth"
	"github.com/sinfini-marketing/sinfini-web-be/internal/core/chatbot"
	"github.com/sinfini-marketing/sinfini-web-be/internal/core/export"
	"github.com/sinfini-marketing/sinfini-web-be/internal/core/jobs"
	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/models"
	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/repositories"
	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/services"
	"github.com/sinfini-marketing/sinfini-web-be/internal/shared/database"
)

type testEnv struct {
	app   *fiber.App
	token string
}

func newTestEnv(t *testing.T, faqEncoding string) *testEnv {
	t.Helper()
	db, err := database.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&auth.User{},
		&audit.AuditLog{},
		&jobs.Job{},
		&models.Product{},
		&models.BlogPost{},
		&models.GalleryItem{},
		&models.ChatbotSettings{},
		&models.ChatLog{},
		&models.ContactMessage{},
	))

	ctx := context.Background()
	authService := auth.NewService(db, "test-secret", 1)
	_, err = authService.EnsureAdmin(ctx, "admin", "s3cret")
	require.NoError(t, err)
	login, err := authService.Login(ctx, &auth.LoginRequest{Username: "admin", Password: "s3cret"})
	require.NoError(t, err)

	auditService := audit.NewService(db)
	productRepo := repositories.NewProductRepo(db)
	contactRepo := repositories.NewContactRepo(db)
	chatbotService := services.NewChatbotService(repositories.NewChatbotRepo(db),
		chatbot.NewMatcher("Please contact us."), nil, auditService, "Sinfini")

	h := &Handlers{
		Products: NewProductHandler(services.NewProductService(productRepo, auditService, "https://sinfini.example")),
		Blog:     NewBlogHandler(services.NewBlogService(repositories.NewBlogRepo(db), auditService)),
		Gallery:  NewGalleryHandler(services.NewGalleryService(repositories.NewGalleryRepo(db), auditService)),
		Chatbot:  NewChatbotHandler(chatbotService, faqEncoding),
		Contact:  NewContactHandler(services.NewContactService(contactRepo, jobs.NewService(db), auditService)),
		Admin: NewAdminHandler(
			services.NewDashboardService(analytics.NewAggregator(db)),
			services.NewExportService(productRepo, contactRepo, export.NewService()),
			auditService,
		),
	}

	app := fiber.New()
	app.Get("/health", NewHealthHandler(db).GetHealth)
	h.RegisterRoutes(app.Group("/api"), auth.AuthMiddleware(authService), RateLimit{Max: 3, Expiration: time.Minute})

	return &testEnv{app: app, token: login.AccessToken}
}

func (e *testEnv) do(t *testing.T, method, path, body string, authed bool) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decode(t *testing.T, raw []byte, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v), string(raw))
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, FAQEncodingText)

	resp, raw := env.do(t, http.MethodGet, "/health", "", false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok","service":"sinfini-web-be","database":"ok"}`, string(raw))
}

func TestProducts_CRUDFlow(t *testing.T) {
	env := newTestEnv(t, FAQEncodingText)

	resp, _ := env.do(t, http.MethodPost, "/api/products", `{"name":"Cotton Yarn","category":"Yarn"}`, false)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, raw := env.do(t, http.MethodPost, "/api/products", `{"name":"Cotton Yarn"}`, true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "name and category are required")

	resp, raw = env.do(t, http.MethodPost, "/api/products", `{"name":"Cotton Yarn","category":"Yarn","description":"Ne 30/1"}`, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.Product
	decode(t, raw, &created)

	path := fmt.Sprintf("/api/products/%d", created.ID)
	resp, raw = env.do(t, http.MethodPut, path, `{"category":"Yarns"}`, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Product
	decode(t, raw, &updated)
	assert.Equal(t, "Cotton Yarn", updated.Name)
	assert.Equal(t, "Yarns", updated.Category)
	assert.Equal(t, "Ne 30/1", updated.Description)

	resp, raw = env.do(t, http.MethodGet, "/api/products?category=yarns", "", false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []models.Product
	decode(t, raw, &list)
	assert.Len(t, list, 1)

	resp, raw = env.do(t, http.MethodGet, path+"/qr", "", false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(string(raw), "\x89PNG"))

	resp, _ = env.do(t, http.MethodDelete, path, "", true)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = env.do(t, http.MethodGet, path, "", false)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Product not found"}`, string(raw))

	resp, _ = env.do(t, http.MethodDelete, path, "", true)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = env.do(t, http.MethodGet, "/api/products/abc", "", false)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProducts_CreateFromForm(t *testing.T) {
	env := newTestEnv(t, FAQEncodingText)

	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader("name=Towel&category=Home+Textiles"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+env.token)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestBlog_NotFoundMessage(t *testing.T) {
	env := newTestEnv(t, FAQEncodingText)

	resp, raw := env.do(t, http.MethodGet, "/api/blog/42", "", false)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Blog post not found"}`, string(raw))

	resp, raw = env.do(t, http.MethodPost, "/api/blog", `{"title":"Fair","content":"Heimtextil"}`, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var post models.BlogPost
	decode(t, raw, &post)
	assert.Equal(t, models.DefaultAuthor, post.Author)
}

func TestGallery_InfersVideo(t *testing.T) {
	env := newTestEnv(t, FAQEncodingText)

	resp, raw := env.do(t, http.MethodPost, "/api/gallery", `{"media_url":"https://cdn.example/loom.mp4","title":"Looms"}`, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var item models.GalleryItem
	decode(t, raw, &item)
	assert.Equal(t, models.MediaTypeVideo, item.MediaType)

	resp, _ = env.do(t, http.MethodGet, "/api/gallery?media_type=audio", "", false)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

const faqsBody = `{"greeting":"Welcome!","faqs":[
	{"question":"Shipping","answer":"We ship worldwide","keywords":["ship","delivery"]},
	{"question":"Pricing","answer":"Contact sales","keywords":["price","cost"]}
]}`

func TestChatbot_SettingsTextEncoding(t *testing.T) {
	env := newTestEnv(t, FAQEncodingText)

	resp, raw := env.do(t, http.MethodGet, "/api/chatbot/settings", "", false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var before struct {
		Greeting string `json:"greeting"`
		FAQs     string `json:"faqs"`
	}
	decode(t, raw, &before)
	assert.Equal(t, chatbot.DefaultGreeting, before.Greeting)
	assert.Equal(t, "[]", before.FAQs)

	resp, _ = env.do(t, http.MethodPut, "/api/chatbot/settings", faqsBody, false)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = env.do(t, http.MethodPut, "/api/chatbot/settings", faqsBody, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, raw = env.do(t, http.MethodGet, "/api/chatbot/settings", "", false)
	var after struct {
		Greeting string `json:"greeting"`
		FAQs     string `json:"faqs"`
	}
	decode(t, raw, &after)
	assert.Equal(t, "Welcome!", after.Greeting)

	var faqs chatbot.FAQList
	decode(t, []byte(after.FAQs), &faqs)
	require.Len(t, faqs, 2)
	assert.Equal(t, []string{"ship", "delivery"}, faqs[0].Keywords)

	// the encoded string is accepted back on write
	body, err := json.Marshal(map[string]string{"greeting": "Welcome!", "faqs": after.FAQs})
	require.NoError(t, err)
	resp, _ = env.do(t, http.MethodPut, "/api/chatbot/settings", string(body), true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, raw = env.do(t, http.MethodGet, "/api/chatbot/settings", "", false)
	var again struct {
		FAQs string `json:"faqs"`
	}
	decode(t, raw, &again)
	assert.JSONEq(t, after.FAQs, again.FAQs)
}

func TestChatbot_StructuredEncodingAndMessages(t *testing.T) {
	env := newTestEnv(t, FAQEncodingStructured)

	resp, _ := env.do(t, http.MethodPut, "/api/chatbot/settings", faqsBody, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, raw := env.do(t, http.MethodGet, "/api/chatbot/settings", "", false)
	var settings struct {
		FAQs chatbot.FAQList `json:"faqs"`
	}
	decode(t, raw, &settings)
	assert.Len(t, settings.FAQs, 2)

	resp, raw = env.do(t, http.MethodPost, "/api/chatbot/message", `{"message":"What is your delivery time?"}`, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"response":"We ship worldwide"}`, string(raw))

	_, raw = env.do(t, http.MethodPost, "/api/chatbot/message", `{"message":"hello"}`, false)
	assert.JSONEq(t, `{"response":"Please contact us."}`, string(raw))

	resp, raw = env.do(t, http.MethodGet, "/api/chatbot/logs?outcome=fallback", "", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var logs models.ChatLogListResponse
	decode(t, raw, &logs)
	assert.Equal(t, int64(1), logs.Total)
	assert.Equal(t, "hello", logs.Logs[0].Message)
}

func TestChatbot_MessageRateLimited(t *testing.T) {
	env := newTestEnv(t, FAQEncodingText)

	for i := 0; i < 3; i++ {
		resp, _ := env.do(t, http.MethodPost, "/api/chatbot/message", `{"message":"hi"}`, false)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	resp, _ := env.do(t, http.MethodPost, "/api/chatbot/message", `{"message":"hi"}`, false)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestContact_SubmitAndAdmin(t *testing.T) {
	env := newTestEnv(t, FAQEncodingText)

	resp, raw := env.do(t, http.MethodPost, "/api/contact", `{"name":"Ana","email":"bad"}`, false)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, raw = env.do(t, http.MethodPost, "/api/contact", `{"name":"Ana","email":"ana@example.com","message":"Quote for towels"}`, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ack models.ContactResponse
	decode(t, raw, &ack)
	assert.Equal(t, "Message sent successfully", ack.Message)
	assert.NotEmpty(t, ack.Reference)

	resp, raw = env.do(t, http.MethodGet, "/api/contact/messages", "", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page models.ContactMessageListResponse
	decode(t, raw, &page)
	require.Len(t, page.Messages, 1)

	resp, _ = env.do(t, http.MethodDelete, fmt.Sprintf("/api/contact/messages/%d", page.Messages[0].ID), "", true)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdmin_StatsExportAndAudit(t *testing.T) {
	env := newTestEnv(t, FAQEncodingText)

	resp, _ := env.do(t, http.MethodGet, "/api/dashboard/stats", "", false)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	env.do(t, http.MethodPost, "/api/products", `{"name":"Towel","category":"Home Textiles"}`, true)

	resp, raw := env.do(t, http.MethodGet, "/api/dashboard/stats", "", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats models.DashboardStats
	decode(t, raw, &stats)
	assert.Equal(t, int64(1), stats.Products)
	require.NotNil(t, stats.ChatActivity)
	assert.Equal(t, "line", stats.ChatActivity.Type)
	assert.Len(t, stats.ChatActivity.Labels, 14)

	resp, raw = env.do(t, http.MethodGet, "/api/dashboard/stats?period=last_7_days", "", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, raw, &stats)
	assert.Len(t, stats.ChatActivity.Labels, 7)

	resp, raw = env.do(t, http.MethodGet, "/api/dashboard/stats?period=forever", "", true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "period must be one of today, yesterday")

	resp, raw = env.do(t, http.MethodGet, "/api/admin/export/products?format=pdf", "", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment; filename=\"product-catalog-")
	assert.True(t, strings.HasPrefix(string(raw), "%PDF"))

	resp, _ = env.do(t, http.MethodGet, "/api/admin/export/contact-messages?format=csv", "", true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, raw = env.do(t, http.MethodGet, "/api/admin/audit-logs?entity=product", "", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var logs audit.AuditLogResponse
	decode(t, raw, &logs)
	assert.Equal(t, int64(1), logs.TotalCount)
	assert.Equal(t, "admin", logs.Logs[0].Actor)

	resp, _ = env.do(t, http.MethodGet, "/api/admin/audit-logs?start_date=yesterday", "", true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
