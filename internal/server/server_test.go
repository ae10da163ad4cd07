package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	eventbus "github.com/fernql/fernql/internal/eventbus"
	events "github.com/fernql/fernql/internal/events"
	model "github.com/fernql/fernql/internal/model"
	resolver "github.com/fernql/fernql/internal/resolver"
	store "github.com/fernql/fernql/internal/store"
)

func newTestHandler(t *testing.T, st store.Store, opts ...Option) *Handler {
	t.Helper()
	h, err := New(st, resolver.BuildSchema(), opts...)
	require.NoError(t, err)
	return h
}

func postQuery(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/graphql", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestServer_QueryRoundtrip(t *testing.T) {
	st := store.NewMemory()
	u, err := st.CreateUser(context.Background(), model.CreateUserInput{Name: "Alice", Balance: 10})
	require.NoError(t, err)
	h := newTestHandler(t, st)

	w := postQuery(t, h, `{"query":"{ user(id: \"`+u.ID+`\") { name } }"}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, map[string]any{"user": map[string]any{"name": "Alice"}}, body["data"])
	_, hasErrors := body["errors"]
	require.False(t, hasErrors)
	require.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestServer_DepthRejectionOmitsData(t *testing.T) {
	h := newTestHandler(t, store.NewMemory(), WithMaxDepth(2))

	w := postQuery(t, h, `{"query":"{ users { userSubscribedTo { posts { title } } } }"}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	_, hasData := body["data"]
	require.False(t, hasData, "rejected documents carry no data key")
	errs := body["errors"].([]any)
	require.NotEmpty(t, errs)
	msg := errs[0].(map[string]any)["message"].(string)
	require.Contains(t, msg, "exceeds maximum operation depth")
}

func TestServer_ExecutionErrorKeepsPartialData(t *testing.T) {
	h := newTestHandler(t, store.NewMemory())

	w := postQuery(t, h, `{"query":"{ users { name } memberType(id: gold) { discount } }"}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	data := body["data"].(map[string]any)
	require.Equal(t, []any{}, data["users"])
	require.Nil(t, data["memberType"])
	require.NotEmpty(t, body["errors"])
}

func TestServer_SyntaxError(t *testing.T) {
	h := newTestHandler(t, store.NewMemory())

	w := postQuery(t, h, `{"query":"{ users {"}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	_, hasData := body["data"]
	require.False(t, hasData)
	require.NotEmpty(t, body["errors"])
}

func TestServer_BatchedRequests(t *testing.T) {
	h := newTestHandler(t, store.NewMemory())

	w := postQuery(t, h, `[{"query":"{ users { name } }"},{"query":"{ memberTypes { id } }"}]`)
	require.Equal(t, http.StatusOK, w.Code)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 2)
	require.Equal(t, map[string]any{"users": []any{}}, out[0]["data"])
	require.Equal(t, map[string]any{"memberTypes": []any{
		map[string]any{"id": "basic"},
		map[string]any{"id": "business"},
	}}, out[1]["data"])
}

func TestServer_GETQuery(t *testing.T) {
	h := newTestHandler(t, store.NewMemory())

	params := url.Values{"query": {"{ memberTypes { id } }"}}
	req := httptest.NewRequest("GET", "/graphql?"+params.Encode(), nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, map[string]any{"memberTypes": []any{
		map[string]any{"id": "basic"},
		map[string]any{"id": "business"},
	}}, body["data"])
}

func TestServer_MethodNotAllowed(t *testing.T) {
	h := newTestHandler(t, store.NewMemory())

	req := httptest.NewRequest("PUT", "/graphql", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestServer_MaxBodyBytes(t *testing.T) {
	h := newTestHandler(t, store.NewMemory(), WithMaxBodyBytes(10))

	w := postQuery(t, h, `{"query":"{ users { name } }"}`)
	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestServer_CORSAndPreflight(t *testing.T) {
	h := newTestHandler(t, store.NewMemory(), WithCORS("*"))

	req := httptest.NewRequest("POST", "/graphql", bytes.NewBufferString(`{"query":"{ users { name } }"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	pre := httptest.NewRequest("OPTIONS", "/graphql", nil)
	pre.Header.Set("Origin", "http://example.com")
	pre.Header.Set("Access-Control-Request-Headers", "X-Test")
	pw := httptest.NewRecorder()
	h.ServeHTTP(pw, pre)
	require.Equal(t, http.StatusNoContent, pw.Code)
	require.Equal(t, "*", pw.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "X-Test", pw.Header().Get("Access-Control-Allow-Headers"))
}

func TestServer_GraphiQLPage(t *testing.T) {
	h := newTestHandler(t, store.NewMemory())

	req := httptest.NewRequest("GET", "/graphql", nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "text/html")
}

func TestServer_PublishesOperationEvents(t *testing.T) {
	eventbus.Use(eventbus.New())
	defer eventbus.Use(nil)

	var finishes []events.OperationFinish
	unsubscribe := eventbus.Subscribe(func(_ context.Context, e events.OperationFinish) {
		finishes = append(finishes, e)
	})
	defer unsubscribe()

	h := newTestHandler(t, store.NewMemory(), WithMaxDepth(1))
	postQuery(t, h, `{"query":"{ users { name } }"}`)

	require.Len(t, finishes, 1)
	require.True(t, finishes[0].Rejected)
	require.Equal(t, "query", finishes[0].OperationType)
}

func TestServer_IntrospectionQuery(t *testing.T) {
	h := newTestHandler(t, store.NewMemory())

	w := postQuery(t, h, `{"query":"{ __schema { queryType { name } } }"}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, map[string]any{
		"__schema": map[string]any{"queryType": map[string]any{"name": "Query"}},
	}, body["data"])
}

func TestServer_IntrospectionDisabled(t *testing.T) {
	h := newTestHandler(t, store.NewMemory(), WithIntrospection(false))

	w := postQuery(t, h, `{"query":"{ __schema { queryType { name } } }"}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	errs := body["errors"].([]any)
	require.NotEmpty(t, errs)
	msg := errs[0].(map[string]any)["message"].(string)
	require.Contains(t, msg, `Cannot query field "__schema"`)
}
