package mpt

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "test-token", log.Default())
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, body)
}

func TestPriceListRetrieve(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/price-lists/PRC-1", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		writeJSON(w, `{"id":"PRC-1","currency":"USD","precision":2,"product":{"id":"PRD-1","name":"Acme"}}`)
	}))

	p, err := client.PriceLists().Retrieve(context.Background(), "PRC-1")
	require.NoError(t, err)
	assert.Equal(t, "PRC-1", p.ID)
	assert.Equal(t, "USD", p.Currency)
	assert.Equal(t, "PRD-1", p.ProductID)
}

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		status int
		kind   ErrorKind
	}{
		{http.StatusNotFound, KindNotFound},
		{http.StatusConflict, KindConflict},
		{http.StatusUnauthorized, KindAuth},
		{http.StatusForbidden, KindAuth},
		{http.StatusBadRequest, KindValidation},
		{http.StatusInternalServerError, KindTransient},
	}

	for _, tt := range tests {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			fmt.Fprint(w, `{"detail":"nope"}`)
		}))

		_, err := client.PriceLists().Retrieve(context.Background(), "PRC-X")
		require.Error(t, err, "status %d", tt.status)
		var remote *RemoteError
		require.ErrorAs(t, err, &remote, "status %d", tt.status)
		assert.Equal(t, tt.kind, remote.Kind, "status %d", tt.status)
		assert.Equal(t, tt.status, remote.Status)
		assert.Contains(t, remote.Message, "nope")
	}
}

func TestValidationFieldMap(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"title":"Validation failed","errors":{"unitPP":"must be positive"}}`)
	}))

	_, err := client.PriceLists().Create(context.Background(), map[string]any{})
	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.True(t, IsValidation(err))
	assert.Equal(t, "must be positive", remote.Fields["unitPP"])
	assert.Contains(t, remote.Error(), "unitPP")
}

func TestNetworkErrorIsTransient(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "token", log.Default())
	_, err := client.PriceLists().Retrieve(context.Background(), "PRC-1")
	assert.True(t, IsTransient(err), "got %v", err)
}

func TestItemListPagination(t *testing.T) {
	var offsets []string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/price-lists/PRC-1/items", r.URL.Path)
		offset := r.URL.Query().Get("offset")
		offsets = append(offsets, offset)

		page := map[string]any{
			"$meta": map[string]any{"pagination": map[string]int{"limit": 100, "offset": 0, "total": 150}},
		}
		if offset == "0" {
			items := make([]map[string]any, 100)
			for i := range items {
				items[i] = map[string]any{"id": fmt.Sprintf("PRI-%d", i)}
			}
			page["data"] = items
		} else {
			items := make([]map[string]any, 50)
			for i := range items {
				items[i] = map[string]any{"id": fmt.Sprintf("PRI-%d", 100+i)}
			}
			page["data"] = items
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(page)
	}))

	items, err := client.Items("PRC-1").List(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, items, 150)
	assert.Equal(t, []string{"0", "100"}, offsets)
	assert.Equal(t, "PRI-149", items[149].ID)
}

func TestItemUpdateSendsPayload(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/v1/price-lists/PRC-1/items/PRI-1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(w, `{"id":"PRI-1"}`)
	}))

	_, err := client.Items("PRC-1").Update(context.Background(), "PRI-1", map[string]any{"unitLP": 100})
	require.NoError(t, err)
	assert.Equal(t, float64(100), body["unitLP"])
}

func TestAccountsMe(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/accounts/me", r.URL.Path)
		writeJSON(w, `{"id":"ACC-1","name":"Ops Team","type":"operations"}`)
	}))

	me, err := client.Accounts().Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ACC-1", me.ID)
	assert.Equal(t, "operations", string(me.Type))
}
