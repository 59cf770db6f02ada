package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/apiconsole/internal/types"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, StaticToken("tok"), Options{})
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNew_RejectsBadURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:5000", "ftp://host", "http://"} {
		_, err := New(raw, nil, Options{})
		assert.Error(t, err, raw)
	}
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	c, err := New("http://localhost:5000/", nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", c.BaseURL())
}

func TestListResources(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/api/apis", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("per_page"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))
		_, err := uuid.Parse(r.Header.Get("X-Request-ID"))
		assert.NoError(t, err)

		writeJSON(w, 200, map[string]any{
			"apis": []map[string]any{
				{"_id": "a1", "name": "Users", "endpoint": "https://x/users", "method": "GET", "status": "active",
					"created_at": "2024-03-01T10:00:00.123456"},
			},
			"pages": 3,
		})
	})

	page, err := c.ListResources(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "a1", page.Items[0].ID)
	assert.Equal(t, types.MethodGet, page.Items[0].Method)
	assert.False(t, page.Items[0].CreatedAt.IsZero())
}

func TestListResources_EmptyCollectionHasOnePage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, map[string]any{"apis": []any{}, "pages": 0})
	})

	page, err := c.ListResources(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.True(t, page.Empty())
	assert.NotNil(t, page.Items)
	assert.Equal(t, 1, page.TotalPages)
}

func TestListResources_ErrorMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 500, map[string]string{"error": "database unavailable"})
	})

	_, err := c.ListResources(context.Background(), 1, 10)
	require.Error(t, err)
	assert.Equal(t, "database unavailable", MessageOf(err))

	var be *Error
	require.ErrorAs(t, err, &be)
	assert.Equal(t, 500, be.StatusCode)
	assert.Contains(t, be.Error(), "HTTP 500")
}

func TestCreateResource_OmitsStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotContains(t, body, "status")
		assert.Equal(t, "Orders", body["name"])

		writeJSON(w, 201, map[string]any{
			"message": "created",
			"api":     map[string]any{"_id": "n1", "name": "Orders", "endpoint": "https://x/o", "method": "POST", "status": "active"},
		})
	})

	r, err := c.CreateResource(context.Background(), types.ResourceInput{
		Name: "Orders", Endpoint: "https://x/o", Method: types.MethodPost, Status: types.StatusInactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "n1", r.ID)
	assert.Equal(t, types.StatusActive, r.Status)
}

func TestUpdateResource_BareRecord(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PUT", r.Method)
		assert.Equal(t, "/api/apis/a1", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		var in types.ResourceInput
		require.NoError(t, json.Unmarshal(body, &in))
		writeJSON(w, 200, map[string]any{"_id": "a1", "name": in.Name, "endpoint": in.Endpoint, "method": in.Method, "status": in.Status})
	})

	r, err := c.UpdateResource(context.Background(), "a1", types.ResourceInput{
		Name: "Users", Endpoint: "https://x/u", Method: types.MethodPut, Status: types.StatusInactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "a1", r.ID)
	assert.Equal(t, types.StatusInactive, r.Status)
}

func TestUpdateResource_Conflict(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 409, map[string]string{"error": "Endpoint already exists"})
	})

	_, err := c.UpdateResource(context.Background(), "a1", types.ResourceInput{Name: "x"})
	assert.Equal(t, "Endpoint already exists", MessageOf(err))
}

func TestDeleteResource(t *testing.T) {
	var called bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, "DELETE", r.Method)
		assert.Equal(t, "/api/apis/a1", r.URL.Path)
		w.WriteHeader(204)
	})

	require.NoError(t, c.DeleteResource(context.Background(), "a1"))
	assert.True(t, called)
	assert.Error(t, c.DeleteResource(context.Background(), ""))
}

func TestFindResource_WalksPages(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "1":
			writeJSON(w, 200, map[string]any{"apis": []map[string]any{{"_id": "a1"}}, "pages": 2})
		default:
			writeJSON(w, 200, map[string]any{"apis": []map[string]any{{"_id": "b2", "name": "found"}}, "pages": 2})
		}
	})

	r, err := c.FindResource(context.Background(), "b2", 10)
	require.NoError(t, err)
	assert.Equal(t, "found", r.Name)

	_, err = c.FindResource(context.Background(), "zz", 10)
	assert.ErrorContains(t, err, "not found")
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(url, nil, Options{})
	require.NoError(t, err)
	_, err = c.ListResources(context.Background(), 1, 10)
	require.Error(t, err)
	assert.Empty(t, MessageOf(err))
}

func TestNoAuthorizationWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, 200, map[string]any{"apis": []any{}, "pages": 1})
	}))
	defer srv.Close()

	c, err := New(srv.URL, nil, Options{})
	require.NoError(t, err)
	_, err = c.ListResources(context.Background(), 1, 10)
	require.NoError(t, err)
}
