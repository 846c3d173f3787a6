package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"booknook-backend/internal/auth"
	"booknook-backend/internal/models"
	"booknook-backend/internal/service"
	"booknook-backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(verifier *auth.Verifier) *gin.Engine {
	gin.SetMode(gin.TestMode)

	listings := store.NewMemoryListingStore()
	orders := store.NewMemoryOrderStore()

	handler := NewHandler(
		service.NewListingService(listings, nil),
		service.NewOrderService(orders, nil),
		service.NewAdminService(listings, orders),
		verifier,
	)

	router := gin.New()
	handler.SetupRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()

	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func listingBody() map[string]interface{} {
	return map[string]interface{}{
		"title":         "The Left Hand of Darkness",
		"author":        "Ursula K. Le Guin",
		"originalPrice": 500,
		"condition":     "Good",
		"category":      "Science Fiction",
		"sellerEmail":   "seller@example.com",
	}
}

func orderBody() map[string]interface{} {
	return map[string]interface{}{
		"items": []map[string]interface{}{
			{"id": "b1", "title": "Dune", "author": "Frank Herbert", "price": 100, "quantity": 2},
			{"id": "b2", "title": "Hyperion", "author": "Dan Simmons", "price": 50, "quantity": 1},
		},
		"shipping": map[string]interface{}{
			"fullName": "Ada Lovelace",
			"phone":    "+44 20 7946 0000",
			"email":    "ada@example.com",
			"address1": "12 St James's Square",
			"city":     "London",
			"state":    "Greater London",
			"postal":   "SW1Y 4JH",
			"country":  "United Kingdom",
		},
	}
}

func TestCreateListingEndpoint(t *testing.T) {
	router := newTestRouter(nil)

	w := doJSON(t, router, http.MethodPost, "/listings", listingBody())
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Listing models.Listing `json:"listing"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(140), resp.Listing.Price)
	assert.Equal(t, models.ListingStatusPending, resp.Listing.Status)
	assert.NotEmpty(t, resp.Listing.ID)
}

func TestCreateListingEndpointValidation(t *testing.T) {
	router := newTestRouter(nil)

	missing := listingBody()
	delete(missing, "sellerEmail")
	w := doJSON(t, router, http.MethodPost, "/listings", missing)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	invalidCondition := listingBody()
	invalidCondition["condition"] = "Mint"
	w = doJSON(t, router, http.MethodPost, "/listings", invalidCondition)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	invalidPrice := listingBody()
	invalidPrice["originalPrice"] = -10
	w = doJSON(t, router, http.MethodPost, "/listings", invalidPrice)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// rejected submissions are not inserted
	w = doJSON(t, router, http.MethodGet, "/listings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Listings []models.Listing `json:"listings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Listings)
}

func TestUpdateListingEndpoint(t *testing.T) {
	router := newTestRouter(nil)

	w := doJSON(t, router, http.MethodPost, "/listings", listingBody())
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Listing models.Listing `json:"listing"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, router, http.MethodPatch, "/listings/"+created.Listing.ID,
		map[string]interface{}{"status": "approved"})
	require.Equal(t, http.StatusOK, w.Code)

	var updated struct {
		Listing models.Listing `json:"listing"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, models.ListingStatusApproved, updated.Listing.Status)
	assert.Equal(t, created.Listing.Price, updated.Listing.Price)

	w = doJSON(t, router, http.MethodPatch, "/listings/nonexistent",
		map[string]interface{}{"status": "approved"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodPatch, "/listings/"+created.Listing.ID,
		map[string]interface{}{"price": -5})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPatch, "/listings/"+created.Listing.ID,
		map[string]interface{}{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderEndpoint(t *testing.T) {
	router := newTestRouter(nil)

	w := doJSON(t, router, http.MethodPost, "/orders", orderBody())
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Order models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(250), resp.Order.Total)
	assert.Equal(t, models.OrderStatusPending, resp.Order.Status)
}

func TestCreateOrderEndpointValidation(t *testing.T) {
	router := newTestRouter(nil)

	empty := orderBody()
	empty["items"] = []map[string]interface{}{}
	w := doJSON(t, router, http.MethodPost, "/orders", empty)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	missing := orderBody()
	missing["shipping"].(map[string]interface{})["postal"] = ""
	w = doJSON(t, router, http.MethodPost, "/orders", missing)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListOrdersEndpointFilter(t *testing.T) {
	router := newTestRouter(nil)

	w := doJSON(t, router, http.MethodPost, "/orders", orderBody())
	require.Equal(t, http.StatusCreated, w.Code)

	other := orderBody()
	other["shipping"].(map[string]interface{})["email"] = "grace@example.com"
	w = doJSON(t, router, http.MethodPost, "/orders", other)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/orders?email=ADA@example.com", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Orders []models.Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Orders, 1)
	assert.Equal(t, "ada@example.com", resp.Orders[0].Shipping.Email)
}

func TestAdminEndpoints(t *testing.T) {
	router := newTestRouter(nil)

	w := doJSON(t, router, http.MethodPost, "/listings", listingBody())
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, router, http.MethodPost, "/orders", orderBody())
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/admin/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ordersResp struct {
		Orders []models.Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ordersResp))
	assert.Len(t, ordersResp.Orders, 1)

	w = doJSON(t, router, http.MethodGet, "/admin/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var usersResp struct {
		Users []models.AdminUser `json:"users"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &usersResp))
	assert.Len(t, usersResp.Users, 2, "one seller, one buyer")

	w = doJSON(t, router, http.MethodGet, "/admin/stats/orders?days=7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var statsResp struct {
		Buckets []models.HistogramBucket `json:"buckets"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &statsResp))
	require.Len(t, statsResp.Buckets, 7)
	total := 0
	for _, bucket := range statsResp.Buckets {
		total += bucket.Count
	}
	assert.Equal(t, 1, total)
}

func TestAdminEndpointsRequireAdmin(t *testing.T) {
	verify := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("Authorization") {
		case "Bearer admin-token":
			fmt.Fprint(w, `{"userId":"u1","email":"admin@example.com","isAdmin":true}`)
		case "Bearer user-token":
			fmt.Fprint(w, `{"userId":"u2","email":"user@example.com","isAdmin":false}`)
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer verify.Close()

	router := newTestRouter(auth.NewVerifier(verify.URL, nil))

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "no token")

	req = httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code, "non-admin token")

	req = httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "admin token")
}
