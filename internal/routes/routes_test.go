package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/site-backend/internal/audit"
	"github.com/BruksfildServices01/site-backend/internal/auth"
	"github.com/BruksfildServices01/site-backend/internal/domain"
	"github.com/BruksfildServices01/site-backend/internal/handlers"
	"github.com/BruksfildServices01/site-backend/internal/httpresp"
	"github.com/BruksfildServices01/site-backend/internal/logging"
	"github.com/BruksfildServices01/site-backend/internal/media"
	"github.com/BruksfildServices01/site-backend/internal/models"
	"github.com/BruksfildServices01/site-backend/internal/notify"
	"github.com/BruksfildServices01/site-backend/internal/storage"
	"github.com/BruksfildServices01/site-backend/internal/testutil"
	ucAppointment "github.com/BruksfildServices01/site-backend/internal/usecase/appointment"
	ucAuth "github.com/BruksfildServices01/site-backend/internal/usecase/auth"
	ucContact "github.com/BruksfildServices01/site-backend/internal/usecase/contact"
	ucTestimonial "github.com/BruksfildServices01/site-backend/internal/usecase/testimonial"
	ucUser "github.com/BruksfildServices01/site-backend/internal/usecase/user"
	"github.com/BruksfildServices01/site-backend/internal/validators"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type noAuditLogs struct{}

func (noAuditLogs) List(ctx context.Context, f audit.Filter) (domain.Page[models.AuditLog], error) {
	return domain.NewPage([]models.AuditLog{}, 0, domain.ListFilter{Page: f.Page, Limit: f.Limit}.Normalize()), nil
}

type outbox struct {
	mu   sync.Mutex
	sent []notify.Message
}

func (o *outbox) SendNow(ctx context.Context, msg notify.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sent = append(o.sent, msg)
	return nil
}

type env struct {
	r          *gin.Engine
	adminToken string
	userToken  string
	mail       *outbox
}

func setup(t *testing.T) *env {
	t.Helper()

	users := testutil.NewMemUserRepo()
	contacts := testutil.NewMemRepo[models.Contact]()
	appointments := testutil.NewMemAppointmentRepo(contacts)
	testimonials := testutil.NewMemRepo[models.Testimonial]()
	recorder := &testutil.Audit{}
	log := logging.Discard()

	store, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:3001/uploads")
	if err != nil {
		t.Fatalf("storage: %v", err)
	}
	uploader := media.NewUploader(media.NewProcessor(64, 80), store)

	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	authSvc := ucAuth.NewService(users, auth.NewHasher(bcrypt.MinCost), tokens, recorder)

	ctx := context.Background()
	if _, _, err := authSvc.CreateAdmin(ctx, validators.RegisterInput{
		FirstName: "Admin", LastName: "Vilo", Email: "admin@example.com", Password: "admin-pass",
	}); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	adminSess, err := authSvc.Login(ctx, validators.LoginInput{Email: "admin@example.com", Password: "admin-pass"})
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	userSess, err := authSvc.Register(ctx, validators.RegisterInput{
		FirstName: "Nadia", LastName: "Benali", Email: "nadia@example.com", Password: "user-pass",
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	mail := &outbox{}
	r := gin.New()
	RegisterRoutes(r, Handlers{
		Health:      handlers.NewHealthHandler(nil),
		Auth:        handlers.NewAuthHandler(authSvc),
		User:        handlers.NewUserHandler(ucUser.NewService(users, uploader, log)),
		Contact:     handlers.NewContactHandler(ucContact.NewService(contacts, notify.Nop{}, recorder)),
		Appointment: handlers.NewAppointmentHandler(ucAppointment.NewService(appointments, notify.Nop{}, recorder)),
		Testimonial: handlers.NewTestimonialHandler(ucTestimonial.NewService(testimonials, uploader, recorder, log)),
		AuditLogs:   handlers.NewAuditLogsHandler(noAuditLogs{}),
		Email:       handlers.NewEmailHandler(mail, recorder),
	}, Options{
		Gate:           auth.NewGate(tokens, users),
		MaxUploadBytes: 5 << 20,
	})

	return &env{r: r, adminToken: adminSess.Token, userToken: userSess.Token, mail: mail}
}

type response struct {
	Success    bool                 `json:"success"`
	Code       string               `json:"code"`
	Message    string               `json:"message"`
	Data       json.RawMessage      `json:"data"`
	Errors     []domain.FieldError  `json:"errors"`
	Pagination *httpresp.Pagination `json:"pagination"`
}

func (e *env) do(t *testing.T, method, path, token string, body any) (int, response, string) {
	t.Helper()

	var rd *bytes.Reader
	switch b := body.(type) {
	case nil:
		rd = bytes.NewReader(nil)
	case string:
		rd = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		rd = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return e.serve(t, req)
}

func (e *env) serve(t *testing.T, req *http.Request) (int, response, string) {
	t.Helper()
	w := httptest.NewRecorder()
	e.r.ServeHTTP(w, req)

	var res response
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
			t.Fatalf("%s %s: body is not json: %s", req.Method, req.URL.Path, w.Body.String())
		}
	}
	return w.Code, res, w.Body.String()
}

func dataID(t *testing.T, res response) uint {
	t.Helper()
	var v struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(res.Data, &v); err != nil || v.ID == 0 {
		t.Fatalf("no id in %s", res.Data)
	}
	return v.ID
}

func dataField(t *testing.T, res response, field string) any {
	t.Helper()
	var v map[string]any
	if err := json.Unmarshal(res.Data, &v); err != nil {
		t.Fatalf("data is not an object: %s", res.Data)
	}
	return v[field]
}

var contactBody = map[string]string{
	"name":    "Jo Li",
	"email":   " Jo@X.com ",
	"service": "consulting",
	"message": "Need help with onboarding",
}

func TestHealth(t *testing.T) {
	e := setup(t)
	if code, res, _ := e.do(t, http.MethodGet, "/api/health", "", nil); code != http.StatusOK || !res.Success {
		t.Fatalf("health: %d", code)
	}
}

func TestCreateContact(t *testing.T) {
	e := setup(t)

	code, res, _ := e.do(t, http.MethodPost, "/api/contacts", "", contactBody)
	if code != http.StatusCreated || !res.Success {
		t.Fatalf("expected 201, got %d", code)
	}
	if dataField(t, res, "status") != "new" || dataField(t, res, "email") != "jo@x.com" {
		t.Fatalf("unexpected contact %s", res.Data)
	}
	if dataID(t, res) == 0 {
		t.Fatalf("missing id")
	}

	bad := map[string]string{"name": "J", "email": "nope", "service": "x", "message": "short"}
	code, res, _ = e.do(t, http.MethodPost, "/api/contacts", "", bad)
	if code != http.StatusBadRequest || res.Code != "validation_failed" {
		t.Fatalf("expected validation failure, got %d %s", code, res.Code)
	}
	fields := map[string]bool{}
	for _, f := range res.Errors {
		fields[f.Field] = true
	}
	for _, want := range []string{"name", "email", "message"} {
		if !fields[want] {
			t.Fatalf("missing error for %s in %+v", want, res.Errors)
		}
	}
}

func TestAdminEndpointsRequireAdmin(t *testing.T) {
	e := setup(t)

	paths := []string{"/api/contacts", "/api/appointments", "/api/admin/contacts", "/api/admin/appointments", "/api/admin/audit-logs"}
	for _, p := range paths {
		if code, _, _ := e.do(t, http.MethodGet, p, "", nil); code != http.StatusUnauthorized {
			t.Fatalf("%s without token: expected 401, got %d", p, code)
		}
		if code, _, _ := e.do(t, http.MethodGet, p, e.userToken, nil); code != http.StatusForbidden {
			t.Fatalf("%s as user: expected 403, got %d", p, code)
		}
		if code, _, _ := e.do(t, http.MethodGet, p, e.adminToken, nil); code != http.StatusOK {
			t.Fatalf("%s as admin: expected 200, got %d", p, code)
		}
	}
}

func TestContactModeration(t *testing.T) {
	e := setup(t)
	_, res, _ := e.do(t, http.MethodPost, "/api/contacts", "", contactBody)
	id := dataID(t, res)
	path := "/api/contacts/" + itoa(id)

	code, res, _ := e.do(t, http.MethodPut, path, e.adminToken, map[string]string{"status": "archived"})
	if code != http.StatusBadRequest || res.Errors[0].Field != "status" {
		t.Fatalf("archived: expected 400 on status, got %d %+v", code, res.Errors)
	}

	code, res, _ = e.do(t, http.MethodPut, path, e.adminToken, map[string]string{"status": "traité"})
	if code != http.StatusOK || dataField(t, res, "status") != "processed" {
		t.Fatalf("alias status: got %d %s", code, res.Data)
	}

	code, res, _ = e.do(t, http.MethodGet, "/api/contacts?status=processed", e.adminToken, nil)
	if code != http.StatusOK || res.Pagination == nil || res.Pagination.Total != 1 {
		t.Fatalf("filtered list: %d %+v", code, res.Pagination)
	}
	if code, _, _ := e.do(t, http.MethodGet, "/api/contacts?status=bogus", e.adminToken, nil); code != http.StatusBadRequest {
		t.Fatalf("unknown status filter: expected 400, got %d", code)
	}

	if code, _, _ := e.do(t, http.MethodDelete, path, e.adminToken, nil); code != http.StatusOK {
		t.Fatalf("delete: %d", code)
	}
	if code, _, _ := e.do(t, http.MethodDelete, path, e.adminToken, nil); code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", code)
	}
	if code, _, _ := e.do(t, http.MethodDelete, "/api/contacts/999", e.adminToken, nil); code != http.StatusNotFound {
		t.Fatalf("missing id: expected 404, got %d", code)
	}
	if code, _, _ := e.do(t, http.MethodGet, "/api/contacts/abc", e.adminToken, nil); code != http.StatusBadRequest {
		t.Fatalf("bad id: expected 400, got %d", code)
	}
}

func TestAdminStatusAliases(t *testing.T) {
	e := setup(t)

	_, res, _ := e.do(t, http.MethodPost, "/api/contacts", "", contactBody)
	contactPath := "/api/admin/contacts/" + itoa(dataID(t, res))

	_, res, _ = e.do(t, http.MethodPost, "/api/appointments", "", map[string]string{
		"client_name":  "Ana Souza",
		"client_email": "ana@example.com",
		"date":         "2026-11-03",
		"time":         "14:30",
		"service":      "audit",
	})
	appointmentPath := "/api/admin/appointments/" + itoa(dataID(t, res))

	if code, _, _ := e.do(t, http.MethodPut, contactPath, e.userToken, map[string]string{"status": "closed"}); code != http.StatusForbidden {
		t.Fatalf("contact alias as user: expected 403, got %d", code)
	}
	code, res, _ := e.do(t, http.MethodPut, contactPath, e.adminToken, map[string]string{"status": "fermé"})
	if code != http.StatusOK || dataField(t, res, "status") != "closed" {
		t.Fatalf("contact alias: %d %s", code, res.Data)
	}
	code, res, _ = e.do(t, http.MethodPut, appointmentPath, e.adminToken, map[string]string{"status": "confirmed"})
	if code != http.StatusOK || dataField(t, res, "status") != "confirmed" {
		t.Fatalf("appointment alias: %d %s", code, res.Data)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	e := setup(t)

	code1, _, body1 := e.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "nadia@example.com", "password": "wrong"})
	code2, _, body2 := e.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ghost@example.com", "password": "wrong"})
	if code1 != http.StatusUnauthorized || code2 != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", code1, code2)
	}
	if body1 != body2 {
		t.Fatalf("bodies differ:\n%s\n%s", body1, body2)
	}

	code, res, _ := e.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "NADIA@example.com", "password": "user-pass"})
	if code != http.StatusOK || dataField(t, res, "token") == "" {
		t.Fatalf("login: %d %s", code, res.Data)
	}
}

func TestRegisterAndMe(t *testing.T) {
	e := setup(t)
	body := map[string]string{"firstName": "Sam", "lastName": "Roux", "email": "sam@example.com", "password": "secret1"}

	code, res, raw := e.do(t, http.MethodPost, "/api/auth/register", "", body)
	if code != http.StatusCreated {
		t.Fatalf("register: %d %s", code, raw)
	}
	if strings.Contains(raw, "passwordHash") || strings.Contains(raw, "$2a$") {
		t.Fatalf("password hash leaked: %s", raw)
	}
	token, _ := dataField(t, res, "token").(string)

	code, res, _ = e.do(t, http.MethodGet, "/api/auth/me", token, nil)
	if code != http.StatusOK || dataField(t, res, "email") != "sam@example.com" || dataField(t, res, "role") != "user" {
		t.Fatalf("me: %d %s", code, res.Data)
	}

	code, res, _ = e.do(t, http.MethodPost, "/api/auth/register", "", body)
	if code != http.StatusBadRequest || res.Code != "email_already_exists" {
		t.Fatalf("duplicate: %d %s", code, res.Code)
	}
}

func TestTestimonialRating(t *testing.T) {
	e := setup(t)
	body := map[string]any{
		"nom":        "Claire Martin",
		"post":       "CEO",
		"entreprise": "Acme",
		"content":    "Great assistance every single week",
		"rating":     4.5,
	}

	code, res, _ := e.do(t, http.MethodPost, "/api/testimonials", "", body)
	if code != http.StatusBadRequest || len(res.Errors) != 1 || res.Errors[0].Field != "rating" {
		t.Fatalf("4.5: expected a single rating error, got %d %+v", code, res.Errors)
	}

	body["rating"] = 4
	code, res, _ = e.do(t, http.MethodPost, "/api/testimonials", "", body)
	if code != http.StatusCreated {
		t.Fatalf("4: expected 201, got %d", code)
	}
	if dataField(t, res, "name") != "Claire Martin" || dataField(t, res, "company") != "Acme" || dataField(t, res, "status") != "pending" {
		t.Fatalf("aliases not resolved: %s", res.Data)
	}
}

func TestTestimonialModerationFlow(t *testing.T) {
	e := setup(t)
	body := map[string]any{"name": "Claire", "role": "CEO", "company": "Acme", "comment": "Great assistance every week", "rating": 5}
	_, res, _ := e.do(t, http.MethodPost, "/api/testimonials", e.userToken, body)
	id := itoa(dataID(t, res))

	if _, res, _ := e.do(t, http.MethodGet, "/api/testimonials", "", nil); res.Pagination.Total != 0 {
		t.Fatalf("pending testimonial is public")
	}
	if code, _, _ := e.do(t, http.MethodGet, "/api/testimonials/"+id, "", nil); code != http.StatusNotFound {
		t.Fatalf("pending testimonial readable anonymously: %d", code)
	}

	for i := 0; i < 2; i++ {
		code, res, _ := e.do(t, http.MethodPut, "/api/testimonials/"+id+"/approve", e.adminToken, map[string]bool{"approved": true})
		if code != http.StatusOK || dataField(t, res, "status") != "approved" {
			t.Fatalf("approve #%d: %d %s", i+1, code, res.Data)
		}
	}
	if code, _, _ := e.do(t, http.MethodPut, "/api/testimonials/"+id+"/approve", e.adminToken, map[string]string{}); code != http.StatusBadRequest {
		t.Fatalf("approve without flag: expected 400, got %d", code)
	}
	if code, _, _ := e.do(t, http.MethodPut, "/api/testimonials/"+id+"/publish", e.userToken, map[string]bool{"published": true}); code != http.StatusForbidden {
		t.Fatalf("publish as user: expected 403, got %d", code)
	}
	if code, _, _ := e.do(t, http.MethodPut, "/api/testimonials/"+id+"/publish", e.adminToken, map[string]bool{"published": true}); code != http.StatusOK {
		t.Fatalf("publish: %d", code)
	}

	if _, res, _ := e.do(t, http.MethodGet, "/api/testimonials", "", nil); res.Pagination.Total != 1 {
		t.Fatalf("published testimonial should be listed")
	}
	if code, res, _ := e.do(t, http.MethodGet, "/api/testimonials?status=bogus", "", nil); code != http.StatusOK || res.Pagination.Total != 1 {
		t.Fatalf("public list with unknown status: expected 200 with the public entry, got %d", code)
	}
	if code, _, _ := e.do(t, http.MethodGet, "/api/testimonials?status=bogus", e.adminToken, nil); code != http.StatusBadRequest {
		t.Fatalf("admin list with unknown status: expected 400, got %d", code)
	}

	if code, _, _ := e.do(t, http.MethodDelete, "/api/testimonials/"+id, e.userToken, nil); code != http.StatusOK {
		t.Fatalf("owner delete: %d", code)
	}
}

func TestTestimonialMultipartWithPhoto(t *testing.T) {
	e := setup(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range map[string]string{
		"name": "Claire", "role": "CEO", "company": "Acme",
		"comment": "Great assistance every week", "rating": "5",
	} {
		_ = mw.WriteField(k, v)
	}
	fw, _ := mw.CreateFormFile("photo", "me.png")
	_ = png.Encode(fw, image.NewRGBA(image.Rect(0, 0, 20, 20)))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/testimonials", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	code, res, raw := e.serve(t, req)
	if code != http.StatusCreated {
		t.Fatalf("multipart create: %d %s", code, raw)
	}
	photo, _ := dataField(t, res, "photo").(string)
	if !strings.HasPrefix(photo, "http://localhost:3001/uploads/testimonials/") || !strings.HasSuffix(photo, ".webp") {
		t.Fatalf("unexpected photo url %q", photo)
	}
}

func TestAppointmentLifecycle(t *testing.T) {
	e := setup(t)
	body := map[string]string{
		"client_name":  "Ana Souza",
		"client_email": "ana@example.com",
		"date":         "2026-11-03",
		"time":         "14:30",
		"service":      "audit",
		"message":      "Please call me before the meeting",
	}

	code, res, _ := e.do(t, http.MethodPost, "/api/appointments", e.userToken, body)
	if code != http.StatusCreated || dataField(t, res, "status") != "pending" {
		t.Fatalf("create: %d %s", code, res.Data)
	}
	path := "/api/appointments/" + itoa(dataID(t, res))

	_, res, _ = e.do(t, http.MethodGet, "/api/contacts", e.adminToken, nil)
	if res.Pagination.Total != 1 {
		t.Fatalf("companion contact missing")
	}

	_, res, _ = e.do(t, http.MethodGet, "/api/appointments/mine", e.userToken, nil)
	if res.Pagination.Total != 1 {
		t.Fatalf("own appointment not listed")
	}

	if code, _, _ := e.do(t, http.MethodPut, path, e.adminToken, map[string]string{"status": "confirmed"}); code != http.StatusOK {
		t.Fatalf("confirm: %d", code)
	}
	code, res, _ = e.do(t, http.MethodDelete, path, e.adminToken, nil)
	if code != http.StatusBadRequest || res.Code != "appointment_confirmed" {
		t.Fatalf("delete confirmed: expected 400 appointment_confirmed, got %d %s", code, res.Code)
	}
	if code, _, _ := e.do(t, http.MethodPut, path, e.adminToken, map[string]string{"status": "annulé"}); code != http.StatusOK {
		t.Fatalf("cancel: %d", code)
	}
	if code, _, _ := e.do(t, http.MethodDelete, path, e.adminToken, nil); code != http.StatusOK {
		t.Fatalf("delete cancelled: %d", code)
	}
}

func TestAppointmentValidation(t *testing.T) {
	e := setup(t)
	body := map[string]string{
		"client_name":  "Ana",
		"client_email": "ana@example.com",
		"date":         "03/11/2026",
		"time":         "25:00",
		"service":      "audit",
	}
	code, res, _ := e.do(t, http.MethodPost, "/api/appointments", "", body)
	if code != http.StatusBadRequest || len(res.Errors) != 2 {
		t.Fatalf("expected date and time errors, got %d %+v", code, res.Errors)
	}
}

func TestProfileAndAvatar(t *testing.T) {
	e := setup(t)

	code, res, _ := e.do(t, http.MethodPut, "/api/users/profile", e.userToken, map[string]string{"phone": "0612345678"})
	if code != http.StatusOK || dataField(t, res, "phone") != "0612345678" {
		t.Fatalf("profile update: %d %s", code, res.Data)
	}
	if code, _, _ := e.do(t, http.MethodPut, "/api/users/profile", e.userToken, map[string]string{"phone": "06-12"}); code != http.StatusBadRequest {
		t.Fatalf("bad phone: expected 400, got %d", code)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("avatar", "me.png")
	_ = png.Encode(fw, image.NewRGBA(image.Rect(0, 0, 10, 10)))
	_ = mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/api/users/avatar", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+e.userToken)

	code, res, raw := e.serve(t, req)
	if code != http.StatusOK {
		t.Fatalf("avatar: %d %s", code, raw)
	}
	if avatar, _ := dataField(t, res, "avatar").(string); !strings.Contains(avatar, "/uploads/avatars/") {
		t.Fatalf("unexpected avatar %q", avatar)
	}

	code, res, _ = e.do(t, http.MethodDelete, "/api/users/avatar", e.userToken, nil)
	if code != http.StatusOK || dataField(t, res, "avatar") != nil {
		t.Fatalf("avatar delete: %d %s", code, res.Data)
	}
}

func TestAdminSendEmail(t *testing.T) {
	e := setup(t)
	body := map[string]any{
		"to":   "client@example.com",
		"name": "Client",
		"type": "appointment-confirmation",
		"data": map[string]string{"date": "2026-11-03", "time": "14:30"},
	}
	if code, _, raw := e.do(t, http.MethodPost, "/api/admin/send-email", e.adminToken, body); code != http.StatusOK {
		t.Fatalf("send-email: %d %s", code, raw)
	}
	if len(e.mail.sent) != 1 || e.mail.sent[0].Template != "appointment-confirmation" {
		t.Fatalf("unexpected outbox %+v", e.mail.sent)
	}

	body["type"] = "newsletter"
	if code, _, _ := e.do(t, http.MethodPost, "/api/admin/send-email", e.adminToken, body); code != http.StatusBadRequest {
		t.Fatalf("unknown template: expected 400, got %d", code)
	}
}

func TestMalformedJSON(t *testing.T) {
	e := setup(t)
	code, res, _ := e.do(t, http.MethodPost, "/api/contacts", "", "{not json")
	if code != http.StatusBadRequest || res.Code != "validation_failed" {
		t.Fatalf("expected 400 validation_failed, got %d %s", code, res.Code)
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
