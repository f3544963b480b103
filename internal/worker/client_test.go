package worker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"timebook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPForwardClient(t *testing.T) {
	type received struct {
		method string
		path   string
		body   models.TimeEntry
	}
	var got []received

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := received{method: r.Method, path: r.URL.Path}
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&rec.body)
		}
		got = append(got, rec)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(ts.Close)

	client := NewHTTPForwardClient(ts.URL+"/", nil)
	ctx := context.Background()
	entry := &models.TimeEntry{ID: 5, WorkOrderNumber: "WO-1", StartTime: "09:00"}

	require.NoError(t, client.CreateEntry(ctx, entry))
	require.NoError(t, client.UpdateEntry(ctx, entry))
	require.NoError(t, client.DeleteEntry(ctx, 5))

	require.Len(t, got, 3)
	assert.Equal(t, http.MethodPost, got[0].method)
	assert.Equal(t, "/api/time-entries", got[0].path)
	assert.Equal(t, "WO-1", got[0].body.WorkOrderNumber)
	assert.Equal(t, http.MethodPut, got[1].method)
	assert.Equal(t, "/api/time-entries/5", got[1].path)
	assert.Equal(t, http.MethodDelete, got[2].method)
	assert.Equal(t, "/api/time-entries/5", got[2].path)
}

func TestHTTPForwardClientNon2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	t.Cleanup(ts.Close)

	client := NewHTTPForwardClient(ts.URL, nil)
	err := client.DeleteEntry(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
