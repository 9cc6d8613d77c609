package pricefinder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricecart/pricecart/pkg/config"
	"github.com/pricecart/pricecart/pkg/types"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.SearchBackendConfig{URL: srv.URL}
	cfg.ConnectionPool.Timeout = 2000
	cfg.Hystrix.Timeout = 2000
	cfg.Hystrix.MaxConcurrentRequests = 10
	cfg.Hystrix.ErrorPercentThreshold = 100

	client, err := NewClient(cfg)
	require.NoError(t, err)
	return client
}

func TestSearch_DecodesPayload(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"query": "Semi-Skimmed Milk",
			"key": "semiskimmed milk",
			"results": {
				"sainsburys": [["Semi Skimmed Milk 2L", "£1.45"]],
				"homebargains": [],
				"morrisons": [["Milk 1 Pint", "89p"]]
			}
		}`))
	})

	payload, err := client.Search(context.Background(), "Semi-Skimmed Milk")
	require.NoError(t, err)

	assert.Equal(t, "Semi-Skimmed Milk", gotQuery)
	assert.Equal(t, "semiskimmed milk", payload.Key)
	assert.Equal(t,
		[]types.ItemRow{{Name: "Semi Skimmed Milk 2L", Price: "£1.45"}},
		payload.Results["sainsburys"])
	assert.Equal(t,
		[]types.ItemRow{{Name: "Milk 1 Pint", Price: "89p"}},
		payload.Results["morrisons"])
}

func TestSearch_NonOKStatusIsAnError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.Search(context.Background(), "milk")
	require.Error(t, err)
}

func TestSearch_MalformedBodyIsAnError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})

	_, err := client.Search(context.Background(), "milk")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode search response")
}

func TestNewClient_RequiresURL(t *testing.T) {
	_, err := NewClient(config.SearchBackendConfig{})
	assert.Error(t, err)
}
