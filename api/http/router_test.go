package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/artem13815/jobreviews/api/http/handlers"
	"github.com/artem13815/jobreviews/pkg/auth"
	"github.com/artem13815/jobreviews/pkg/health"
	"github.com/artem13815/jobreviews/pkg/repository/memory"
	"github.com/artem13815/jobreviews/pkg/review"
	"github.com/artem13815/jobreviews/pkg/security/jwt"
)

type testServer struct {
	app   *fiber.App
	store *memory.Store
	codec *jwt.Codec
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()
	codec := jwt.NewCodec("test-secret", "job-reviews", 24*time.Hour)

	authUC := auth.NewAuthService(store.Users(), auth.NewBcryptHasher(bcrypt.MinCost), codec)
	reviewUC := review.NewService(store.Reviews())

	app := fiber.New()
	Register(app,
		handlers.NewAuthHandler(authUC, log),
		handlers.NewReviewHandler(reviewUC, log),
		handlers.NewHealthHandler(health.NewService(store), log),
		jwt.NewAuthMiddleware(codec, log),
	)
	return &testServer{app: app, store: store, codec: codec}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, map[string]any, string) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	return resp.StatusCode, out, string(raw)
}

func (s *testServer) signupAndLogin(t *testing.T, name, email, password string) string {
	t.Helper()
	status, _, _ := s.do(t, nethttp.MethodPost, "/api/auth/signup", "", fiber.Map{
		"username": name, "email": email, "password": password,
	})
	require.Equal(t, nethttp.StatusCreated, status)
	status, body, _ := s.do(t, nethttp.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": email, "password": password,
	})
	require.Equal(t, nethttp.StatusOK, status)
	return body["token"].(string)
}

func TestSignup(t *testing.T) {
	s := newTestServer(t)

	status, body, raw := s.do(t, nethttp.MethodPost, "/api/auth/signup", "", fiber.Map{
		"username": "Ana", "email": "ana@x.com", "password": "secret123",
	})
	assert.Equal(t, nethttp.StatusCreated, status)
	assert.Equal(t, "account created successfully", body["message"])
	assert.NotContains(t, raw, "token")
	assert.NotContains(t, raw, "$2a$")

	status, body, _ = s.do(t, nethttp.MethodPost, "/api/auth/signup", "", fiber.Map{
		"username": "ANA", "email": "other@x.com", "password": "x",
	})
	assert.Equal(t, nethttp.StatusBadRequest, status)
	assert.Equal(t, "user already exists", body["message"])

	status, body, _ = s.do(t, nethttp.MethodPost, "/api/auth/signup", "", fiber.Map{
		"username": "bob", "email": "bob@x.com",
	})
	assert.Equal(t, nethttp.StatusBadRequest, status)
	assert.Equal(t, "all fields are required", body["message"])
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	token := s.signupAndLogin(t, "Ana", "ana@x.com", "secret123")

	id, err := s.codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", id.Email)

	status, body, raw := s.do(t, nethttp.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "ANA@x.com", "password": "secret123",
	})
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "login successful", body["message"])
	user := body["user"].(map[string]any)
	assert.Equal(t, id.UserID.String(), user["id"])
	assert.Equal(t, "Ana", user["name"])
	assert.Equal(t, "ana@x.com", user["email"])
	assert.Len(t, user, 3)
	assert.NotContains(t, raw, "password")

	_, wrongPass, _ := s.do(t, nethttp.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "ana@x.com", "password": "wrong",
	})
	status, unknown, _ := s.do(t, nethttp.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "ghost@x.com", "password": "secret123",
	})
	assert.Equal(t, nethttp.StatusUnauthorized, status)
	assert.Equal(t, wrongPass["message"], unknown["message"])
	assert.Equal(t, "invalid email or password", unknown["message"])
}

func TestLogout(t *testing.T) {
	s := newTestServer(t)

	status, body, _ := s.do(t, nethttp.MethodPost, "/api/auth/logout", "", nil)
	assert.Equal(t, nethttp.StatusUnauthorized, status)
	assert.Equal(t, "access token required", body["message"])

	status, body, _ = s.do(t, nethttp.MethodPost, "/api/auth/logout", "not-a-token", nil)
	assert.Equal(t, nethttp.StatusForbidden, status)
	assert.Equal(t, "invalid or expired token", body["message"])

	token := s.signupAndLogin(t, "Ana", "ana@x.com", "secret123")
	status, _, _ = s.do(t, nethttp.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, nethttp.StatusOK, status)
}

func reviewBody(company, createdAt string) fiber.Map {
	return fiber.Map{
		"title":       "Review of " + company,
		"description": "Solid team",
		"company":     company,
		"location":    "Remote",
		"role":        "Intern",
		"createdAt":   createdAt,
	}
}

func TestCreateReview_RequiresToken(t *testing.T) {
	s := newTestServer(t)
	token := s.signupAndLogin(t, "Ana", "ana@x.com", "secret123")

	status, _, _ := s.do(t, nethttp.MethodPost, "/api/auth/review", "", reviewBody("Acme", "2024-01-01"))
	assert.Equal(t, nethttp.StatusUnauthorized, status)

	list, err := s.store.Reviews().ListByCompany(context.Background(), "Acme")
	require.NoError(t, err)
	assert.Empty(t, list, "rejected request must not write")

	status, _, _ = s.do(t, nethttp.MethodPost, "/api/auth/review", token+"x", reviewBody("Acme", "2024-01-01"))
	assert.Equal(t, nethttp.StatusForbidden, status)
}

func TestCreateReview(t *testing.T) {
	s := newTestServer(t)
	token := s.signupAndLogin(t, "Ana", "ana@x.com", "secret123")
	id, err := s.codec.Verify(token)
	require.NoError(t, err)

	status, body, raw := s.do(t, nethttp.MethodPost, "/api/auth/review", token, reviewBody("Acme", "2024-01-01"))
	require.Equal(t, nethttp.StatusCreated, status, raw)
	assert.Equal(t, "review created successfully", body["message"])
	rv := body["review"].(map[string]any)
	assert.Equal(t, id.UserID.String(), rv["userId"])
	assert.Equal(t, map[string]any{"id": id.UserID.String(), "name": "Ana"}, rv["user"])
	assert.NotContains(t, raw, "password")

	b := reviewBody("Acme", "2024-01-01")
	delete(b, "role")
	status, body, _ = s.do(t, nethttp.MethodPost, "/api/auth/review", token, b)
	assert.Equal(t, nethttp.StatusBadRequest, status)
	assert.Equal(t, "all fields are required", body["message"])
}

func TestListReviews(t *testing.T) {
	s := newTestServer(t)
	token := s.signupAndLogin(t, "Ana", "ana@x.com", "secret123")

	status, body, _ := s.do(t, nethttp.MethodGet, "/api/auth/reviews/Acme", "", nil)
	assert.Equal(t, nethttp.StatusNotFound, status)
	assert.Equal(t, false, body["success"])

	dates := []string{"2024-02-01", "2024-05-10T08:00:00Z", "2023-09-15"}
	for _, d := range dates {
		status, _, raw := s.do(t, nethttp.MethodPost, "/api/auth/review", token, reviewBody("Acme Corp", d))
		require.Equal(t, nethttp.StatusCreated, status, raw)
	}
	status, _, _ = s.do(t, nethttp.MethodPost, "/api/auth/review", token, reviewBody("Globex", "2024-01-01"))
	require.Equal(t, nethttp.StatusCreated, status)

	status, body, _ = s.do(t, nethttp.MethodGet, "/api/auth/reviews/acme%20corp", "", nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "acme corp", body["company"])
	assert.EqualValues(t, 3, body["reviewCount"])

	reviews := body["reviews"].([]any)
	require.Len(t, reviews, 3)
	var got []string
	for _, r := range reviews {
		got = append(got, r.(map[string]any)["createdAt"].(string))
	}
	assert.True(t, strings.HasPrefix(got[0], "2024-05-10"))
	assert.True(t, strings.HasPrefix(got[1], "2024-02-01"))
	assert.True(t, strings.HasPrefix(got[2], "2023-09-15"))
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	status, body, _ := s.do(t, nethttp.MethodGet, "/api/auth/health", "", nil)
	assert.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "ok", body["status"])

	status, body, _ = s.do(t, nethttp.MethodGet, "/api/auth/ready", "", nil)
	assert.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "ready", body["status"])
}
