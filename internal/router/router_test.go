package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"itemshare/app/admin"
	"itemshare/app/item"
	"itemshare/domain"
	"itemshare/internal/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret   = "router-secret"
	testPassword = "letmein"
	testImage    = "data:image/png;base64,iVBORw0KGgo="
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func newTestApp(t *testing.T, health func(context.Context) error) *fiber.App {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	validator := item.NewValidator([]string{"Tools", "Books", "Garden"}, 1024)
	store := item.NewStore(item.NewMemoryBlobStore(), validator, item.WithBaseline(domain.Baseline()))
	catalog := item.NewCatalog(store)

	return New(Dependencies{
		Catalog:    catalog,
		Intake:     item.NewIntake(store, validator, nil, "itemshare"),
		Moderation: item.NewModeration(store, nil, "itemshare"),
		Requests:   item.NewRequests(catalog, item.LogNotifier{}, validator),
		Validator:  validator,
		Login:      admin.NewLoginHandler(string(hash), testSecret),
		Authorizer: auth.NewJWTAuthorizer(testSecret),
		Health:     health,
	})
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	return send(t, app, req)
}

func send(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]any) {
	t.Helper()

	res, err := app.Test(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&decoded))
	return res.StatusCode, decoded
}

func login(t *testing.T, app *fiber.App) string {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, "/api/v1/admin/login", map[string]string{"password": testPassword}, "")
	require.Equal(t, http.StatusOK, status)
	return body["token"].(string)
}

func titles(body map[string]any) []string {
	var out []string
	for _, raw := range body["items"].([]any) {
		out = append(out, raw.(map[string]any)["title"].(string))
	}
	return out
}

func TestCatalogRoutes(t *testing.T) {
	app := newTestApp(t, nil)

	status, body := doJSON(t, app, http.MethodGet, "/api/v1/items", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 6, body["totalItems"])

	status, body = doJSON(t, app, http.MethodGet, "/api/v1/items?search=drill&category=all", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"Electric Drill"}, titles(body))

	status, body = doJSON(t, app, http.MethodGet, "/api/v1/items/1", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Electric Drill", body["item"].(map[string]any)["title"])

	status, body = doJSON(t, app, http.MethodGet, "/api/v1/items/missing", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "item.show.not_found", body["code"])

	status, body = doJSON(t, app, http.MethodGet, "/api/v1/categories", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body["categories"], "Tools")
	assert.Equal(t, []any{"Tools", "Books", "Garden"}, body["allowed"])
}

func TestSubmitModerateFlow(t *testing.T) {
	app := newTestApp(t, nil)

	status, body := doJSON(t, app, http.MethodPost, "/api/v1/items", map[string]string{
		"title":       "Hedge Trimmer",
		"description": "Electric, 50cm blade",
		"category":    "Garden",
		"owner":       "Ana",
		"image":       testImage,
	}, "")
	require.Equal(t, http.StatusOK, status)
	created := body["item"].(map[string]any)
	id := created["id"].(string)
	assert.Equal(t, "pending", created["status"])

	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/items/"+id, nil, "")
	assert.Equal(t, http.StatusNotFound, status)

	status, body = doJSON(t, app, http.MethodGet, "/api/v1/admin/items/pending", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "admin.gate.missing_token", body["code"])

	token := login(t, app)

	status, body = doJSON(t, app, http.MethodGet, "/api/v1/admin/items/pending", nil, token)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"Hedge Trimmer"}, titles(body))

	status, body = doJSON(t, app, http.MethodPost, "/api/v1/admin/items/"+id+"/approve", nil, token)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "approved", body["item"].(map[string]any)["status"])

	status, body = doJSON(t, app, http.MethodPost, "/api/v1/admin/items/"+id+"/approve", nil, token)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "item.approve.invalid_transition", body["code"])

	status, body = doJSON(t, app, http.MethodGet, "/api/v1/items?category=Garden", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"Garden Rake", "Hedge Trimmer"}, titles(body))
}

func TestRejectFlow(t *testing.T) {
	app := newTestApp(t, nil)
	token := login(t, app)

	_, body := doJSON(t, app, http.MethodPost, "/api/v1/items", map[string]string{
		"title":       "Old Novel",
		"description": "Paperback",
		"category":    "Books",
		"owner":       "Luis",
		"image":       "https://example.com/novel.jpg",
	}, "")
	id := body["item"].(map[string]any)["id"].(string)

	status, _ := doJSON(t, app, http.MethodPost, "/api/v1/admin/items/"+id+"/reject", nil, token)
	require.Equal(t, http.StatusOK, status)

	status, body = doJSON(t, app, http.MethodPost, "/api/v1/admin/items/"+id+"/reject", nil, token)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "item.reject.not_found", body["code"])
}

func TestSubmitValidationError(t *testing.T) {
	app := newTestApp(t, nil)

	status, body := doJSON(t, app, http.MethodPost, "/api/v1/items", map[string]string{
		"title":    "  ",
		"category": "Weapons",
		"image":    testImage,
	}, "")

	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "item.create.validation_failed", body["code"])

	var fields []string
	for _, raw := range body["details"].([]any) {
		fields = append(fields, raw.(map[string]any)["field"].(string))
	}
	assert.Equal(t, []string{"title", "description", "category", "owner"}, fields)
}

func multipartRequest(t *testing.T, image []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for field, value := range map[string]string{
		"title":       "Garden Hose",
		"description": "25m",
		"category":    "Garden",
		"owner":       "Ana",
	} {
		require.NoError(t, writer.WriteField(field, value))
	}
	part, err := writer.CreateFormFile("image", "hose.png")
	require.NoError(t, err)
	_, err = part.Write(image)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/items", &buf)
	req.Header.Set(fiber.HeaderContentType, writer.FormDataContentType())
	return req
}

func TestSubmitMultipartUpload(t *testing.T) {
	app := newTestApp(t, nil)

	status, body := send(t, app, multipartRequest(t, pngHeader))
	require.Equal(t, http.StatusOK, status)

	created := body["item"].(map[string]any)
	assert.True(t, strings.HasPrefix(created["image"].(string), "data:image/png;base64,"))
	assert.Equal(t, "Garden Hose", created["title"])
}

func TestSubmitMultipartRejectsNonImage(t *testing.T) {
	app := newTestApp(t, nil)

	status, body := send(t, app, multipartRequest(t, []byte("plain text, not a picture")))
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "item.create.validation_failed", body["code"])
}

func TestBorrowRequestRoute(t *testing.T) {
	app := newTestApp(t, nil)

	status, body := doJSON(t, app, http.MethodPost, "/api/v1/items/1/requests", map[string]string{
		"name":    "Mario",
		"email":   "mario@example.com",
		"message": "Saturday?",
	}, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "1", body["itemId"])

	status, body = doJSON(t, app, http.MethodPost, "/api/v1/items/1/requests", map[string]string{
		"name":    "Mario",
		"email":   "mario",
		"message": "Saturday?",
	}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "item.request.validation_failed", body["code"])
}

func TestHealthRoute(t *testing.T) {
	status, body := doJSON(t, newTestApp(t, nil), http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])

	down := func(context.Context) error { return errors.New("unreachable") }
	status, body = doJSON(t, newTestApp(t, down), http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "health.store_unreachable", body["code"])
}

func TestLoginWrongPassword(t *testing.T) {
	status, body := doJSON(t, newTestApp(t, nil), http.MethodPost, "/api/v1/admin/login", map[string]string{"password": "nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "admin.login.invalid_credentials", body["code"])
}
