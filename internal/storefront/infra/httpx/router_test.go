package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekoratoriai/storefront/internal/catalog"
	"github.com/dekoratoriai/storefront/internal/identity"
	"github.com/dekoratoriai/storefront/internal/listing"
	"github.com/dekoratoriai/storefront/internal/notify"
	"github.com/dekoratoriai/storefront/internal/pkg/cache"
	"github.com/dekoratoriai/storefront/internal/storage"
	"github.com/dekoratoriai/storefront/internal/storefront/infra/adapters/service"
	"github.com/dekoratoriai/storefront/internal/storefront/infra/httpx/middlewares"
)

const secret = "test-secret"

type fakeAppointments struct {
	err   error
	calls int
}

func (f *fakeAppointments) SendAppointment(_ context.Context, req notify.AppointmentRequest) (string, error) {
	f.calls++
	if err := req.Validate(); err != nil {
		return "", err
	}
	return "inq-1", f.err
}

func fixtureDocument(n int) *catalog.Document {
	doc := &catalog.Document{}
	for i := 0; i < n; i++ {
		material := "Poliuretanas"
		if i%2 == 0 {
			material = "Medis ir Poliuretanas"
		}
		doc.Products = append(doc.Products, catalog.RawProduct{
			Name:     fmt.Sprintf("Lubų apvadas 1.50.%03d", i),
			Category: "lubu-apvadai",
			Price:    json.RawMessage("100"),
			Material: &material,
			Details:  map[string]any{"Ilgis": "2000mm"},
			Reviews: []catalog.Review{
				{ReviewID: "r1", Rating: 4, Date: "2024-01-01"},
				{ReviewID: "r2", Rating: 2, Date: "2024-02-01"},
			},
		})
	}
	return doc
}

type testServer struct {
	t            *testing.T
	router       http.Handler
	auth         *identity.Middleware
	appointments *fakeAppointments
	cookie       *http.Cookie
	token        string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	reg := catalog.NewRegistry()
	require.NoError(t, reg.Register(catalog.Category{Key: "lubu-apvadai", Title: "Lubų apvadai"},
		catalog.LoaderFunc(func(context.Context) (*catalog.Document, error) { return fixtureDocument(25), nil })))

	views, err := listing.NewViews(16, 0)
	require.NoError(t, err)

	appointments := &fakeAppointments{}
	auth := identity.NewMiddleware(secret)
	h := NewHandler(
		catalog.New(reg, nil),
		views,
		service.NewSessionService(storage.NewMemory()),
		appointments,
		WithIdempotency(cache.NewMemoryCache("storefront"), time.Hour),
	)

	return &testServer{t: t, router: NewRouter(h, auth), auth: auth, appointments: appointments}
}

func (s *testServer) login(uid, email string) {
	token, err := s.auth.Issue(identity.Identity{UID: uid, Email: email}, time.Hour)
	require.NoError(s.t, err)
	s.token = token
}

func (s *testServer) do(method, path string, body any, headers ...string) (*httptest.ResponseRecorder, map[string]any) {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if s.cookie != nil {
		req.AddCookie(s.cookie)
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name == middlewares.SessionCookie {
			s.cookie = c
		}
	}

	// Array bodies are left for the caller to decode.
	var out map[string]any
	if rec.Header().Get("Content-Type") == "application/json" && bytes.HasPrefix(bytes.TrimSpace(rec.Body.Bytes()), []byte("{")) {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestListingAndLoadMore(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.do(http.MethodGet, "/api/produktai/lubu-apvadai?width=400", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 10, body["displayed"])
	assert.EqualValues(t, 25, body["total"])
	assert.Equal(t, "mobile", body["screen"])
	require.NotNil(t, s.cookie)

	first := body["products"].([]any)[0].(map[string]any)
	assert.Equal(t, "1.50.000", first["id"])
	assert.EqualValues(t, 50, first["unitPricePerMetre"])

	rec, body = s.do(http.MethodPost, "/api/produktai/lubu-apvadai/more", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 20, body["displayed"])

	rec, body = s.do(http.MethodGet, "/api/produktai/lubu-apvadai?material=medis", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 13, body["total"])
	assert.EqualValues(t, 10, body["displayed"])
}

func TestLoadMoreWithoutListing(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(http.MethodPost, "/api/produktai/lubu-apvadai/more", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, body := s.do(http.MethodGet, "/api/produktai/nera", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "category_not_found", body["error"])
}

func TestProductDetailAndQuote(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.do(http.MethodGet, "/api/produktai/lubu-apvadai/1.50.003?sort=lowest", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 3, body["averageRating"])
	reviews := body["reviews"].([]any)
	assert.Equal(t, "r2", reviews[0].(map[string]any)["reviewId"])

	rec, body = s.do(http.MethodGet, "/api/produktai/lubu-apvadai/1.50.003/quote?metres=4", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 200, body["total"])

	rec, _ = s.do(http.MethodGet, "/api/produktai/lubu-apvadai/1.50.003/quote?metres=3", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(http.MethodGet, "/api/produktai/lubu-apvadai/9.9.9", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func cartOf(body map[string]any) map[string]any {
	return body["cart"].(map[string]any)
}

func TestCartAndBusinessFlow(t *testing.T) {
	s := newTestServer(t)
	add := AddItemRequest{Category: "lubu-apvadai", Code: "1.50.001"}

	rec, body := s.do(http.MethodPost, "/api/cart/items", add)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["count"])
	assert.Equal(t, "standardCart", body["slot"])

	three := 3
	rec, body = s.do(http.MethodPatch, "/api/cart/items/1.50.001", UpdateQuantityRequest{Quantity: &three})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 300, body["total"])

	rec, body = s.do(http.MethodPost, "/api/business/mode/business", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "no_business_account", body["error"])

	rec, body = s.do(http.MethodPut, "/api/business/account", AccountRequest{Email: "a@b.lt", CompanyName: "UAB"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "no_identity", body["error"])

	s.login("u1", "jonas@imone.lt")

	rec, body = s.do(http.MethodPut, "/api/business/account", AccountRequest{Email: "kitas@imone.lt"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "email_mismatch", body["error"])

	rec, body = s.do(http.MethodPut, "/api/business/account", AccountRequest{Email: "jonas@imone.lt", CompanyName: "UAB Dekoras"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["business"].(map[string]any)["hasBusinessAccount"])

	rec, body = s.do(http.MethodPost, "/api/business/mode/business", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["business"].(map[string]any)["isBusinessMode"])
	assert.Equal(t, "businessCart", cartOf(body)["slot"])
	assert.EqualValues(t, 0, cartOf(body)["count"])

	rec, body = s.do(http.MethodPost, "/api/cart/items", add)
	require.Equal(t, http.StatusOK, rec.Code)
	item := body["items"].([]any)[0].(map[string]any)
	assert.EqualValues(t, 95, item["price"])
	assert.EqualValues(t, 5, item["businessDiscount"])

	rec, body = s.do(http.MethodPost, "/api/business/mode/standard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 3, cartOf(body)["count"], "standard cart is restored")

	rec, body = s.do(http.MethodDelete, "/api/business/account", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "standard", body["business"].(map[string]any)["currentMode"])

	rec, body = s.do(http.MethodDelete, "/api/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, body["count"])
}

func TestBadToken(t *testing.T) {
	s := newTestServer(t)
	s.token = "garbage"

	rec, _ := s.do(http.MethodGet, "/api/cart", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAppointmentEmail(t *testing.T) {
	valid := notify.AppointmentRequest{FirstName: "Jonas", LastName: "Jonaitis", Email: "a@b.com", Message: "hi"}

	t.Run("missing last name", func(t *testing.T) {
		s := newTestServer(t)
		rec, body := s.do(http.MethodPost, "/api/appointment-email",
			map[string]string{"firstName": "Jonas", "lastName": "", "email": "a@b.com", "message": "hi"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Missing required fields", body["message"])
		assert.Zero(t, s.appointments.calls)
	})

	t.Run("invalid body", func(t *testing.T) {
		s := newTestServer(t)
		req := httptest.NewRequest(http.MethodPost, "/api/appointment-email", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("relay failure", func(t *testing.T) {
		s := newTestServer(t)
		s.appointments.err = errors.New("dial tcp: connection refused")

		rec, body := s.do(http.MethodPost, "/api/appointment-email", valid, middlewares.HeaderXIdempotencyKey, "k1")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Failed to send emails", body["message"])
		assert.Equal(t, "dial tcp: connection refused", body["error"])

		s.appointments.err = nil
		rec, _ = s.do(http.MethodPost, "/api/appointment-email", valid, middlewares.HeaderXIdempotencyKey, "k1")
		assert.Equal(t, http.StatusOK, rec.Code, "failed key can be retried")
	})

	t.Run("success and duplicate", func(t *testing.T) {
		s := newTestServer(t)

		rec, body := s.do(http.MethodPost, "/api/appointment-email", valid, middlewares.HeaderXIdempotencyKey, "k2")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Emails sent successfully", body["message"])

		rec, _ = s.do(http.MethodPost, "/api/appointment-email", valid, middlewares.HeaderXIdempotencyKey, "k2")
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, 1, s.appointments.calls)
	})
}

func TestSetAccountRestoringBusinessModeSwapsCart(t *testing.T) {
	s := newTestServer(t)
	add := AddItemRequest{Category: "lubu-apvadai", Code: "1.50.001"}

	s.login("u1", "jonas@imone.lt")
	rec, _ := s.do(http.MethodPut, "/api/business/account", AccountRequest{Email: "jonas@imone.lt", CompanyName: "UAB Dekoras"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = s.do(http.MethodPost, "/api/business/mode/business", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = s.do(http.MethodPost, "/api/cart/items", add)
	require.Equal(t, http.StatusOK, rec.Code)

	// Same uid, new email: the stored account is discarded but the mode key stays.
	s.login("u1", "petras@imone.lt")
	rec, body := s.do(http.MethodGet, "/api/business", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["business"].(map[string]any)["isBusinessMode"])
	assert.Equal(t, "standardCart", cartOf(body)["slot"])

	rec, body = s.do(http.MethodPut, "/api/business/account", AccountRequest{Email: "petras@imone.lt", CompanyName: "UAB Dekoras"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["business"].(map[string]any)["isBusinessMode"])
	assert.Equal(t, "businessCart", cartOf(body)["slot"])
	assert.EqualValues(t, 1, cartOf(body)["count"])
}

func TestHealthzAndCategories(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.do(http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])

	rec, _ = s.do(http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cats []CategoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cats))
	require.Len(t, cats, 1)
	assert.Equal(t, "/produktai/lubu-apvadai", cats[0].URL)

	rec, body = s.do(http.MethodGet, "/api/landing", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, body["faq"])

	rec, _ = s.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "storefront_http_requests_total")
}
