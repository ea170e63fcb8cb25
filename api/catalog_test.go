package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mkolev/routecatalog/internal/domain"
	"github.com/mkolev/routecatalog/internal/service/catalog"
)

// MockUseCase is a mock implementation of catalog.UseCase.
type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) InsertUser(ctx context.Context, creds catalog.Credentials, body string) (string, error) {
	args := m.Called(ctx, creds, body)
	return args.String(0), args.Error(1)
}

func (m *MockUseCase) ListUsers(ctx context.Context, creds catalog.Credentials) (string, error) {
	args := m.Called(ctx, creds)
	return args.String(0), args.Error(1)
}

func (m *MockUseCase) InsertPair(ctx context.Context, creds catalog.Credentials, body string) (string, error) {
	args := m.Called(ctx, creds, body)
	return args.String(0), args.Error(1)
}

func (m *MockUseCase) ListPairs(ctx context.Context, creds catalog.Credentials) (string, error) {
	args := m.Called(ctx, creds)
	return args.String(0), args.Error(1)
}

func (m *MockUseCase) GetPair(ctx context.Context, creds catalog.Credentials, origin, destination string) (string, error) {
	args := m.Called(ctx, creds, origin, destination)
	return args.String(0), args.Error(1)
}

func (m *MockUseCase) FindPairs(ctx context.Context, creds catalog.Credentials, origin, destination string) (string, error) {
	args := m.Called(ctx, creds, origin, destination)
	return args.String(0), args.Error(1)
}

func (m *MockUseCase) GetFlights(ctx context.Context, creds catalog.Credentials, origin, destination string) (string, error) {
	args := m.Called(ctx, creds, origin, destination)
	return args.String(0), args.Error(1)
}

func (m *MockUseCase) GenerateFlights(ctx context.Context, creds catalog.Credentials) (int, error) {
	args := m.Called(ctx, creds)
	return args.Int(0), args.Error(1)
}

func (m *MockUseCase) Generate(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func newTestRouter(safe, unsafe catalog.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewCatalogHandler(safe, unsafe).Register(router)
	return router
}

func TestInsertUser_SafeRoute(t *testing.T) {
	safe, unsafe := &MockUseCase{}, &MockUseCase{}
	router := newTestRouter(safe, unsafe)

	body := `{"username":"alice","password":"pw","type":1}`
	creds := catalog.Credentials{Username: "bob", Password: "pw"}
	safe.On("InsertUser", mock.Anything, creds, body).Return(body, nil).Once()

	req := httptest.NewRequest("POST", "/config/users/safe", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth("bob", "pw")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, body, w.Body.String())

	safe.AssertExpectations(t)
	unsafe.AssertNotCalled(t, "InsertUser")
}

func TestInsertUser_UnsafeRoute(t *testing.T) {
	safe, unsafe := &MockUseCase{}, &MockUseCase{}
	router := newTestRouter(safe, unsafe)

	body := `{"username":"alice","password":"pw","type":1}`
	unsafe.On("InsertUser", mock.Anything, mock.Anything, body).Return(body, nil).Once()

	req := httptest.NewRequest("POST", "/config/users/unsafe", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth("bob", "pw")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	unsafe.AssertExpectations(t)
	safe.AssertNotCalled(t, "InsertUser")
}

func TestInsertUser_MissingAuthHeader(t *testing.T) {
	safe, unsafe := &MockUseCase{}, &MockUseCase{}
	router := newTestRouter(safe, unsafe)

	req := httptest.NewRequest("POST", "/config/users/safe", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	safe.AssertNotCalled(t, "InsertUser")
}

func TestInsertUser_WrongContentType(t *testing.T) {
	safe, unsafe := &MockUseCase{}, &MockUseCase{}
	router := newTestRouter(safe, unsafe)

	req := httptest.NewRequest("POST", "/config/users/safe", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "text/plain")
	req.SetBasicAuth("bob", "pw")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	safe.AssertNotCalled(t, "InsertUser")
}

func TestInsertPair_ConflictStatus(t *testing.T) {
	safe, unsafe := &MockUseCase{}, &MockUseCase{}
	router := newTestRouter(safe, unsafe)

	safe.On("InsertPair", mock.Anything, mock.Anything, mock.Anything).
		Return("", domain.Conflict("pair already exists")).Once()

	req := httptest.NewRequest("POST", "/config/pairs/safe", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth("bob", "pw")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "pair already exists")
}

func TestGetPair_FilterValidation(t *testing.T) {
	safe, unsafe := &MockUseCase{}, &MockUseCase{}
	router := newTestRouter(safe, unsafe)

	safe.On("GetPair", mock.Anything, mock.Anything, "SOF", "LON").
		Return(`{"origin":"SOF"}`, nil).Once()

	req := httptest.NewRequest("GET", "/config/pairs/safe/SOF-LON", nil)
	req.SetBasicAuth("alice", "pw")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Lowercase codes do not match the route pattern.
	req = httptest.NewRequest("GET", "/config/pairs/safe/sof-lon", nil)
	req.SetBasicAuth("alice", "pw")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	safe.AssertExpectations(t)
}

func TestGetPair_NotFoundStatus(t *testing.T) {
	safe, unsafe := &MockUseCase{}, &MockUseCase{}
	router := newTestRouter(safe, unsafe)

	safe.On("GetPair", mock.Anything, mock.Anything, "AAA", "BBB").
		Return("", domain.NotFound("pair not found")).Once()

	req := httptest.NewRequest("GET", "/config/pairs/safe/AAA-BBB", nil)
	req.SetBasicAuth("alice", "pw")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFindPairs_PassesRawFilterThrough(t *testing.T) {
	safe, unsafe := &MockUseCase{}, &MockUseCase{}
	router := newTestRouter(safe, unsafe)

	// The unsafe route forwards the decoded filter untouched, injected
	// tautology included.
	unsafe.On("FindPairs", mock.Anything, mock.Anything, "SOF", "LON' OR '1'='1").
		Return(`[]`, nil).Once()

	req := httptest.NewRequest("GET", "/config/pairs/unsafe/SOF-LON'%20OR%20'1'='1", nil)
	req.SetBasicAuth("alice", "pw")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	unsafe.AssertExpectations(t)
	safe.AssertNotCalled(t, "FindPairs")
}

func TestGetFlights_QueryFilters(t *testing.T) {
	safe, unsafe := &MockUseCase{}, &MockUseCase{}
	router := newTestRouter(safe, unsafe)

	safe.On("GetFlights", mock.Anything, catalog.Credentials{Username: "alice", Password: "pw"}, "SOF", "LON").
		Return(`[]`, nil).Once()

	req := httptest.NewRequest("GET", "/flights?origin=SOF&destination=LON", nil)
	req.SetBasicAuth("alice", "pw")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `[]`, w.Body.String())
	safe.AssertExpectations(t)
}

func TestGetFlights_UnauthorizedStatus(t *testing.T) {
	safe, unsafe := &MockUseCase{}, &MockUseCase{}
	router := newTestRouter(safe, unsafe)

	safe.On("GetFlights", mock.Anything, mock.Anything, "", "").
		Return("", domain.Unauthorized("invalid username or password")).Once()

	req := httptest.NewRequest("GET", "/flights", nil)
	req.SetBasicAuth("alice", "wrong")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGenerateFlights(t *testing.T) {
	safe, unsafe := &MockUseCase{}, &MockUseCase{}
	router := newTestRouter(safe, unsafe)

	safe.On("GenerateFlights", mock.Anything, mock.Anything).Return(5, nil).Once()

	req := httptest.NewRequest("POST", "/flights/generate", nil)
	req.SetBasicAuth("bob", "pw")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"generated":5}`, w.Body.String())
}
