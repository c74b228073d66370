package wire

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"shop-backend/internal/data/entity"
	"shop-backend/internal/data/repository"
	"shop-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type memUsers struct {
	mu      sync.Mutex
	byEmail map[string]*entity.User
}

func (m *memUsers) Create(_ context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[user.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	m.byEmail[user.Email] = user
	return nil
}

func (m *memUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byEmail[email], nil
}

type memCategories struct {
	mu   sync.Mutex
	rows []*entity.Category
}

func (m *memCategories) Create(_ context.Context, c *entity.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, c)
	return nil
}

func (m *memCategories) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.rows {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (m *memCategories) FindAll(context.Context) ([]*entity.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*entity.Category(nil), m.rows...), nil
}

func (m *memCategories) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	c, err := m.FindByID(ctx, id)
	return c != nil, err
}

type memProducts struct {
	mu   sync.Mutex
	rows []*entity.Product
}

func (m *memProducts) Create(_ context.Context, p *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, p)
	return nil
}

func (m *memProducts) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.rows {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (m *memProducts) FindAll(_ context.Context, limit, offset int, _ *uuid.UUID) ([]*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if offset >= len(m.rows) {
		return nil, nil
	}
	end := min(offset+limit, len(m.rows))
	return append([]*entity.Product(nil), m.rows[offset:end]...), nil
}

func (m *memProducts) CountAll(context.Context, *uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.rows)), nil
}

func newTestApp(t *testing.T) *App {
	t.Helper()

	repo := &repository.Repository{
		User:     &memUsers{byEmail: map[string]*entity.User{}},
		Category: &memCategories{},
		Product:  &memProducts{},
	}
	config := &utils.Config{Security: utils.SecurityConfig{BcryptCost: bcrypt.MinCost, PasswordMinLength: 8}}

	return Wiring(repo, config, zap.NewNop())
}

type envelope struct {
	Status  bool               `json:"status"`
	Message string             `json:"message"`
	Data    json.RawMessage    `json:"data"`
	Errors  []utils.FieldError `json:"errors"`
}

func call(t *testing.T, h http.Handler, method, target, body string) (int, envelope) {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func TestRoutes(t *testing.T) {
	app := newTestApp(t)

	var routes []string
	err := chi.Walk(app.Router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, method+" "+strings.TrimSuffix(route, "/"))
		return nil
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"POST /api/register",
		"POST /api/login",
		"GET /api/users/{id}",
		"GET /api/categories",
		"POST /api/categories",
		"GET /api/products",
		"POST /api/products",
		"GET /api/products/{id}",
		"GET /health",
		"GET /metrics",
	}, routes)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `shop_http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func TestRegisterThenLogin(t *testing.T) {
	app := newTestApp(t)
	router := app.Router

	code, env := call(t, router, http.MethodPost, "/api/register",
		`{"email":"  TEST@example.com  ","password":"correct horse battery","password_confirmation":"correct horse battery","first_name":"Test","last_name":"User"}`)
	require.Equal(t, http.StatusCreated, code, env.Message)

	var registered struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &registered))
	assert.Equal(t, "test@example.com", registered.Email)

	code, _ = call(t, router, http.MethodPost, "/api/login",
		`{"email":"Test@Example.com ","password":"correct horse battery"}`)
	assert.Equal(t, http.StatusOK, code)

	code, env = call(t, router, http.MethodPost, "/api/login",
		`{"email":"test@example.com","password":"wrong password!!"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid email or password", env.Message)

	code, env = call(t, router, http.MethodPost, "/api/login",
		`{"email":"nobody@example.com","password":"correct horse battery"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid email or password", env.Message)

	code, env = call(t, router, http.MethodPost, "/api/register",
		`{"email":"test@EXAMPLE.com","password":"another long password","first_name":"Dup","last_name":"User"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Errors, utils.FieldError{Field: "email", Message: "Email has already been taken"})

	code, _ = call(t, router, http.MethodGet, "/api/users/"+registered.ID, "")
	assert.Equal(t, http.StatusOK, code)
}

func TestCatalogFlow(t *testing.T) {
	app := newTestApp(t)
	router := app.Router

	code, env := call(t, router, http.MethodPost, "/api/categories", `{"name":"Books"}`)
	require.Equal(t, http.StatusCreated, code, env.Message)

	var category struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &category))

	code, env = call(t, router, http.MethodPost, "/api/products",
		`{"name":"Sample","price":0,"quantity":0,"category_id":"`+category.ID+`"}`)
	require.Equal(t, http.StatusCreated, code, env.Message)

	code, env = call(t, router, http.MethodPost, "/api/products",
		`{"name":"Orphan","price":1,"quantity":1,"category_id":"`+uuid.NewString()+`"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Errors, utils.FieldError{Field: "category_id", Message: "Category must exist"})

	code, env = call(t, router, http.MethodGet, "/api/products?page=1&per_page=10", "")
	require.Equal(t, http.StatusOK, code)

	var page struct {
		Data       []json.RawMessage `json:"data"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.Data, 1)
	assert.Equal(t, int64(1), page.Pagination.Total)
}

func TestRegisterPasswordLimits(t *testing.T) {
	router := newTestApp(t).Router

	code, env := call(t, router, http.MethodPost, "/api/register",
		`{"email":"test@example.com","password":"password","first_name":"John","last_name":"Doe"}`)
	require.Equal(t, http.StatusCreated, code, env.Message)

	code, _ = call(t, router, http.MethodPost, "/api/login",
		`{"email":"TEST@example.com","password":"password"}`)
	assert.Equal(t, http.StatusOK, code)

	long := strings.Repeat("é", 40)
	code, env = call(t, router, http.MethodPost, "/api/register",
		`{"email":"long@example.com","password":"`+long+`","first_name":"Long","last_name":"Password"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, []utils.FieldError{{Field: "password", Message: "Password is too long (maximum is 72 bytes)"}}, env.Errors)
}

func TestCreateProductPriceOutOfRange(t *testing.T) {
	router := newTestApp(t).Router

	code, env := call(t, router, http.MethodPost, "/api/categories", `{"name":"Books"}`)
	require.Equal(t, http.StatusCreated, code, env.Message)
	var category struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &category))

	code, env = call(t, router, http.MethodPost, "/api/products",
		`{"name":"Pricey","price":1000000000000,"quantity":1,"category_id":"`+category.ID+`"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Errors, utils.FieldError{Field: "price", Message: "Price must be less than or equal to 9999999999.99"})

	code, env = call(t, router, http.MethodPost, "/api/products",
		`{"name":"Precise","price":10.999,"quantity":1,"category_id":"`+category.ID+`"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Errors, utils.FieldError{Field: "price", Message: "Price must have at most 2 decimal places"})
}
