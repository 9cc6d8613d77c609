package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricecart/pricecart/pkg/basket"
	"github.com/pricecart/pricecart/pkg/cache/inmemory"
	"github.com/pricecart/pricecart/pkg/config"
	"github.com/pricecart/pricecart/pkg/search"
	"github.com/pricecart/pricecart/pkg/session"
	"github.com/pricecart/pricecart/pkg/store"
	"github.com/pricecart/pricecart/pkg/types"
)

type fakeBackend struct {
	calls int
	err   error
}

func (f *fakeBackend) Search(_ context.Context, query string) (*types.SearchResultPayload, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &types.SearchResultPayload{
		Query: query,
		Key:   search.Normalize(query),
		Results: map[string][]types.ItemRow{
			"sainsburys":   {{Name: "Whole Milk 2L", Price: "£1.45"}},
			"homebargains": {},
			"morrisons":    {},
		},
	}, nil
}

func newTestRouter(t *testing.T, backend search.Backend) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, err := inmemory.NewCache(&inmemory.Config{})
	require.NoError(t, err)
	st := store.New(c)

	cfg := &config.AppConfig{}
	h := NewHandlers(cfg,
		search.New(st.Search, backend, nil),
		basket.New(context.Background(), st.Basket, nil),
		session.New(st),
	)

	router := gin.New()
	router.GET("/search", h.Search)
	router.GET("/search/last", h.LastSearch)
	router.GET("/basket", h.GetBasket)
	router.POST("/basket/items", h.AddBasketItem)
	router.PATCH("/basket/items/:id", h.UpdateBasketItem)
	router.DELETE("/basket/items/:id", h.RemoveBasketItem)
	router.DELETE("/basket", h.ClearBasket)
	router.POST("/logout", h.Logout)
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reqBody *strings.Reader
	if body == "" {
		reqBody = strings.NewReader("")
	} else {
		reqBody = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reqBody)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSearchEndpoint_CachesAcrossSpellings(t *testing.T) {
	backend := &fakeBackend{}
	router := newTestRouter(t, backend)

	w := doRequest(router, http.MethodGet, "/search?q=Milk%21%21", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/search?q=milk", "")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 1, backend.calls)

	var payload types.SearchResultPayload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "milk", payload.Key)
	assert.Len(t, payload.Results["sainsburys"], 1)
}

func TestSearchEndpoint_BlankQueryReturnsEmptyPayload(t *testing.T) {
	backend := &fakeBackend{}
	router := newTestRouter(t, backend)

	w := doRequest(router, http.MethodGet, "/search?q=++", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, backend.calls)

	var payload types.SearchResultPayload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "", payload.Key)
	assert.Len(t, payload.Results, 3)
}

func TestSearchEndpoint_BackendFailureIsBadGateway(t *testing.T) {
	backend := &fakeBackend{err: errors.New("down")}
	router := newTestRouter(t, backend)

	w := doRequest(router, http.MethodGet, "/search?q=milk", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestLastSearchEndpoint(t *testing.T) {
	backend := &fakeBackend{}
	router := newTestRouter(t, backend)

	w := doRequest(router, http.MethodGet, "/search/last", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	doRequest(router, http.MethodGet, "/search?q=Milk%21%21", "")

	w = doRequest(router, http.MethodGet, "/search/last", "")
	require.Equal(t, http.StatusOK, w.Code)

	var payload types.SearchResultPayload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "Milk!!", payload.Query, "last result keeps the original query text")
}

func TestBasketEndpoints_Lifecycle(t *testing.T) {
	router := newTestRouter(t, &fakeBackend{})

	// Price arrives as retailer free text and is parsed on the way in
	w := doRequest(router, http.MethodPost, "/basket/items",
		`{"title":"Whole Milk 2L","price":"£1.45","market":"sainsburys","quantity":2}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var items []types.BasketItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, 1.45, items[0].UnitPrice)
	assert.Equal(t, 2, items[0].Quantity)
	id := items[0].ID

	// Clamped quantity
	w = doRequest(router, http.MethodPatch, "/basket/items/"+url.PathEscape(id), `{"quantity":-5}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Equal(t, 1, items[0].Quantity)

	// Malformed price falls back to zero instead of rejecting the add
	w = doRequest(router, http.MethodPost, "/basket/items",
		`{"title":"Mystery Item","price":"free??","market":"morrisons"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, float64(0), items[1].UnitPrice)
	assert.Equal(t, 1, items[1].Quantity)

	w = doRequest(router, http.MethodDelete, "/basket/items/"+url.PathEscape(id), "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Mystery Item", items[0].Title)

	w = doRequest(router, http.MethodDelete, "/basket", "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(router, http.MethodGet, "/basket", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Empty(t, items)
}

func TestAddBasketItem_MissingTitleIsBadRequest(t *testing.T) {
	router := newTestRouter(t, &fakeBackend{})

	w := doRequest(router, http.MethodPost, "/basket/items", `{"market":"morrisons"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutEndpoint(t *testing.T) {
	router := newTestRouter(t, &fakeBackend{})

	doRequest(router, http.MethodPost, "/basket/items",
		`{"title":"Bread","price":"89p","market":"morrisons"}`)

	w := doRequest(router, http.MethodPost, "/logout", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}
