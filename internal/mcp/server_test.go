package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aki/qrlabel/internal/core/config"
	"github.com/aki/qrlabel/internal/core/sequence"
	"github.com/aki/qrlabel/internal/core/store"
)

type failingStore struct {
	*store.Memory
}

func (failingStore) SetLast(context.Context, string, int) error {
	return errors.New("disk full")
}

func setupTestServer(t *testing.T, st store.Store, httpConfig *config.HTTPConfig) *Server {
	t.Helper()

	server, err := NewServer(sequence.NewGenerator(st), st, "stdio", httpConfig)
	require.NoError(t, err)
	return server
}

func callTool(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

type decodedResult struct {
	Result   json.RawMessage    `json:"result"`
	Metadata ToolResultMetadata `json:"_metadata"`
}

func decode(t *testing.T, result *mcp.CallToolResult) decodedResult {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")

	var out decodedResult
	require.NoError(t, json.Unmarshal([]byte(text.Text), &out))
	return out
}

func TestNewServer_RequiresDependencies(t *testing.T) {
	_, err := NewServer(nil, store.NewMemory(), "stdio", nil)
	assert.Error(t, err)
}

func TestLabelGenerate(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	require.NoError(t, mem.SetLast(ctx, "X", 10))
	server := setupTestServer(t, mem, nil)

	t.Run("continues after issued numbers", func(t *testing.T) {
		result, err := server.handleLabelGenerate(ctx, callTool("label_generate", map[string]any{
			"base":  "X005",
			"count": float64(3),
		}))
		require.NoError(t, err)

		out := decode(t, result)
		var b sequence.Batch
		require.NoError(t, json.Unmarshal(out.Result, &b))
		assert.Equal(t, []string{"X011", "X012", "X013"}, b.Labels)
		assert.Equal(t, 14, b.NextNumber)
		assert.Equal(t, "label_generate", out.Metadata.ToolUsed)
		assert.Contains(t, out.Metadata.InferredParameters["base"], "X005")
		assert.NotEmpty(t, out.Metadata.SuggestedNextTools)

		last, _ := mem.GetLast(ctx, "X")
		assert.Equal(t, 13, last)
	})

	t.Run("count as string", func(t *testing.T) {
		result, err := server.handleLabelGenerate(ctx, callTool("label_generate", map[string]any{
			"base":  "Y1",
			"count": "2",
		}))
		require.NoError(t, err)

		var b sequence.Batch
		require.NoError(t, json.Unmarshal(decode(t, result).Result, &b))
		assert.Equal(t, []string{"Y1", "Y2"}, b.Labels)
	})

	t.Run("missing base", func(t *testing.T) {
		_, err := server.handleLabelGenerate(ctx, callTool("label_generate", map[string]any{"count": 1}))
		var withSuggestions *ErrorWithSuggestions
		require.ErrorAs(t, err, &withSuggestions)
	})

	t.Run("blank base", func(t *testing.T) {
		_, err := server.handleLabelGenerate(ctx, callTool("label_generate", map[string]any{"base": "  "}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "base article is empty")
	})
}

func TestLabelGenerate_PersistFailure(t *testing.T) {
	server := setupTestServer(t, failingStore{store.NewMemory()}, nil)

	result, err := server.handleLabelGenerate(context.Background(), callTool("label_generate", map[string]any{
		"base": "Z1",
	}))
	require.NoError(t, err)

	out := decode(t, result)
	require.Len(t, out.Metadata.Warnings, 1)
	assert.Contains(t, out.Metadata.Warnings[0], "disk full")

	var b sequence.Batch
	require.NoError(t, json.Unmarshal(out.Result, &b))
	assert.Equal(t, []string{"Z1"}, b.Labels)
}

func TestLabelExpand(t *testing.T) {
	mem := store.NewMemory()
	server := setupTestServer(t, mem, nil)

	result, err := server.handleLabelExpand(context.Background(), callTool("label_expand", map[string]any{
		"base":  "A08",
		"count": 3,
	}))
	require.NoError(t, err)

	var got struct {
		Labels []string `json:"labels"`
	}
	require.NoError(t, json.Unmarshal(decode(t, result).Result, &got))
	assert.Equal(t, []string{"A08", "A09", "A10"}, got.Labels)

	_, ok := mem.GetLast(context.Background(), "A")
	assert.False(t, ok, "expand never allocates")
}

func TestLabelPeek(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	require.NoError(t, mem.SetLast(ctx, "SKU", 41))
	server := setupTestServer(t, mem, nil)

	result, err := server.handleLabelPeek(ctx, callTool("label_peek", map[string]any{"article": "SKU007"}))
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"prefix":"SKU","next_number":42,"num_len":3,"next_article":"SKU042"}`,
		string(decode(t, result).Result))
}

func TestSequenceListResource(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	require.NoError(t, mem.SetLast(ctx, "SKU", 41))
	mem.Put("BOX", "0007")
	server := setupTestServer(t, mem, nil)

	var request mcp.ReadResourceRequest
	request.Params.URI = SequencesURI

	contents, err := server.handleSequenceListResource(ctx, request)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(*mcp.TextResourceContents)
	require.True(t, ok)
	assert.JSONEq(t, `[
		{"prefix":"BOX","raw":"0007"},
		{"prefix":"SKU","last":41,"raw":41}
	]`, text.Text)
}

func TestToolsAreListed(t *testing.T) {
	server := setupTestServer(t, store.NewMemory(), nil)

	resp := server.mcpServer.HandleMessage(context.Background(),
		json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	for _, name := range []string{"label_generate", "label_expand", "label_peek"} {
		assert.Contains(t, string(raw), name)
	}
}

func TestAuthMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("bearer", func(t *testing.T) {
		server := setupTestServer(t, store.NewMemory(), &config.HTTPConfig{
			Auth: config.AuthConfig{Type: "bearer", Bearer: "s3cret"},
		})
		h := server.authMiddleware(ok)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sse", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		req := httptest.NewRequest(http.MethodGet, "/sse", nil)
		req.Header.Set("Authorization", "Bearer s3cret")
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("basic", func(t *testing.T) {
		server := setupTestServer(t, store.NewMemory(), &config.HTTPConfig{
			Auth: config.AuthConfig{Type: "basic", Basic: config.BasicAuth{Username: "u", Password: "p"}},
		})
		h := server.authMiddleware(ok)

		req := httptest.NewRequest(http.MethodGet, "/sse", nil)
		req.SetBasicAuth("u", "wrong")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		req = httptest.NewRequest(http.MethodGet, "/sse", nil)
		req.SetBasicAuth("u", "p")
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("none", func(t *testing.T) {
		server := setupTestServer(t, store.NewMemory(), nil)
		rec := httptest.NewRecorder()
		server.authMiddleware(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sse", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestCORSPreflight(t *testing.T) {
	server := setupTestServer(t, store.NewMemory(), nil)

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/message", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
