package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/aptiz/internal/exam"
	"github.com/abhisek/aptiz/internal/exam/examtest"
	"github.com/abhisek/aptiz/internal/server"
)

func newTestServer(t *testing.T, h http.HandlerFunc) (*Client, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL), &calls
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}
}

func TestRequestContent_StaticTypesSkipNetwork(t *testing.T) {
	c, calls := newTestServer(t, respond(500, `{}`))

	for _, tt := range []exam.TestType{exam.Writing, exam.Speaking} {
		content, err := c.RequestContent(context.Background(), tt)
		require.NoError(t, err)
		assert.Equal(t, 3, content.ItemCount())
	}
	assert.Zero(t, atomic.LoadInt32(calls))
}

func TestRequestContent_SendsWireName(t *testing.T) {
	var got map[string]any
	c, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/generate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write(examtest.JSON(examtest.GrammarVocabulary()))
	})

	content, err := c.RequestContent(context.Background(), exam.GrammarVocabulary)
	require.NoError(t, err)
	assert.Equal(t, 25, content.ItemCount())
	assert.Equal(t, "Grammar & Vocabulary", got["testType"])
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
}

func TestRequestContent_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, err error)
	}{
		{
			name:    "400 is invalid test type",
			handler: respond(400, `{"error":"Unknown or unsupported test type: Reading"}`),
			check: func(t *testing.T, err error) {
				var invalid *exam.InvalidTestTypeError
				require.ErrorAs(t, err, &invalid)
			},
		},
		{
			name:    "500 carries server message",
			handler: respond(500, `{"error":"Failed to generate test content.","details":"quota"}`),
			check: func(t *testing.T, err error) {
				var gen *exam.GenerationFailedError
				require.ErrorAs(t, err, &gen)
				assert.Equal(t, "Failed to generate test content.", gen.Detail)
			},
		},
		{
			name:    "500 without error field uses fallback",
			handler: respond(500, `{}`),
			check: func(t *testing.T, err error) {
				var gen *exam.GenerationFailedError
				require.ErrorAs(t, err, &gen)
				assert.Equal(t, "Failed to generate test content from the server.", gen.Detail)
			},
		},
		{
			name:    "502 with html body",
			handler: respond(502, `<html>bad gateway</html>`),
			check: func(t *testing.T, err error) {
				var gen *exam.GenerationFailedError
				require.ErrorAs(t, err, &gen)
				assert.Equal(t, "An unknown network error occurred", gen.Detail)
			},
		},
		{
			name:    "200 with wrong shape is a schema violation",
			handler: respond(200, `{"questions":[]}`),
			check: func(t *testing.T, err error) {
				var schema *exam.SchemaViolationError
				require.ErrorAs(t, err, &schema)
				var gen *exam.GenerationFailedError
				assert.False(t, errors.As(err, &gen))
			},
		},
		{
			name:    "200 with 3 questions is not padded",
			handler: respond(200, string(examtest.JSON(&exam.ListeningContent{Task: shortListening()}))),
			check: func(t *testing.T, err error) {
				var schema *exam.SchemaViolationError
				require.ErrorAs(t, err, &schema)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, calls := newTestServer(t, tt.handler)
			_, err := c.RequestContent(context.Background(), exam.Listening)
			require.Error(t, err)
			tt.check(t, err)
			assert.EqualValues(t, 1, atomic.LoadInt32(calls), "no retries")
		})
	}
}

func shortListening() exam.ListeningTask {
	task := examtest.Listening().Task
	task.Questions = task.Questions[:3]
	return task
}

func TestRequestContent_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).RequestContent(context.Background(), exam.Reading)
	var gen *exam.GenerationFailedError
	require.ErrorAs(t, err, &gen)
}

func TestRequestContent_InvalidTypeLocal(t *testing.T) {
	c, calls := newTestServer(t, respond(200, `[]`))
	_, err := c.RequestContent(context.Background(), exam.TestType(99))
	var invalid *exam.InvalidTestTypeError
	require.ErrorAs(t, err, &invalid)
	assert.Zero(t, atomic.LoadInt32(calls))
}

func TestRequestContent_AgainstRealServer(t *testing.T) {
	gen := generatorFunc(func(ctx context.Context, tt exam.TestType) (exam.Content, error) {
		return examtest.Reading(), nil
	})
	cfg := server.DefaultConfig()
	cfg.RateLimit = 0
	srv := httptest.NewServer(server.New(gen, cfg, nil).Handler())
	t.Cleanup(srv.Close)

	content, err := New(srv.URL).RequestContent(context.Background(), exam.Reading)
	require.NoError(t, err)
	rc, ok := content.(*exam.ReadingContent)
	require.True(t, ok)
	assert.Equal(t, "Cities of Tomorrow", rc.Task.Title)
}

type generatorFunc func(ctx context.Context, tt exam.TestType) (exam.Content, error)

func (f generatorFunc) Generate(ctx context.Context, tt exam.TestType) (exam.Content, error) {
	return f(ctx, tt)
}

func TestCompatible(t *testing.T) {
	tests := []struct {
		client, server string
		want           bool
	}{
		{"v1.2.0", "v1.9.3", true},
		{"v1.2.0", "v2.0.0", false},
		{"(devel)", "v2.0.0", true},
		{"v1.0.0", "(devel)", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Compatible(tt.client, tt.server), "%s vs %s", tt.client, tt.server)
	}
}

func TestCheckServer(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/version", r.URL.Path)
		io.WriteString(w, `{"version":"v2.1.0"}`)
	})

	v, ok, err := c.CheckServer(context.Background(), "v1.4.0")
	require.NoError(t, err)
	assert.Equal(t, "v2.1.0", v)
	assert.False(t, ok)
}
