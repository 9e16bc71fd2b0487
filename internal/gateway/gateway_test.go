package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiReply(t *testing.T, payload any) string {
	t.Helper()
	inner, err := json.Marshal(payload)
	require.NoError(t, err)
	outer, err := json.Marshal(map[string]any{
		"candidates": []any{
			map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": string(inner)}}}},
		},
	})
	require.NoError(t, err)
	return string(outer)
}

func newServer(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGeminiClient("test-key", WithBaseURL(srv.URL), WithModel("test-model"))
}

func TestGeminiBreakDownRequestShape(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateRequest
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		fmt.Fprint(w, geminiReply(t, []Step{{"Open the laptop"}, {"Find the file"}, {"Write one line"}}))
	})

	steps, err := client.BreakDown(context.Background(), "write report")
	require.NoError(t, err)
	assert.Len(t, steps, 3)
	assert.Equal(t, "/models/test-model:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "application/json", gotBody.GenerationConfig.ResponseMimeType)
	assert.Equal(t, "ARRAY", gotBody.GenerationConfig.ResponseSchema.Type)
	require.Len(t, gotBody.Contents, 1)
	assert.Contains(t, gotBody.Contents[0].Parts[0].Text, `"write report"`)
}

func TestGeminiErrors(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
		want    error
	}{
		{
			name: "status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
				fmt.Fprint(w, `{"error":{"code":429,"message":"quota","status":"RESOURCE_EXHAUSTED"}}`)
			},
			want: ErrStatus,
		},
		{
			name: "envelope",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, `<html>`)
			},
			want: ErrDecode,
		},
		{
			name: "no candidates",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, `{"candidates":[]}`)
			},
			want: ErrDecode,
		},
		{
			name: "inner text",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":"not json"}]}}]}`)
			},
			want: ErrDecode,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newServer(t, tc.handler)
			_, err := client.BreakDown(context.Background(), "goal")
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestGeminiRequiresAPIKey(t *testing.T) {
	_, err := NewGeminiClient("  ").Organize(context.Background(), "text")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestGeminiTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewGeminiClient("k", WithBaseURL(url)).BreakDown(context.Background(), "goal")
	assert.ErrorIs(t, err, ErrTransport)
}

func TestAdapterRejectsOutOfRangeSteps(t *testing.T) {
	for _, n := range []int{0, 2, 6} {
		steps := make([]Step, n)
		for i := range steps {
			steps[i] = Step{Step: fmt.Sprintf("step %d", i)}
		}
		client := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, geminiReply(t, steps))
		})
		got := NewAdapter(client, time.Second, nil).BreakDownGoal(context.Background(), "goal")
		assert.Empty(t, got, "n=%d", n)
	}
}

func TestAdapterAcceptsValidSteps(t *testing.T) {
	want := []Step{{"a"}, {"b"}, {"c"}, {"d"}}
	client := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, geminiReply(t, want))
	})
	assert.Equal(t, want, NewAdapter(client, time.Second, nil).BreakDownGoal(context.Background(), "goal"))
}

func TestAdapterOrganizeContract(t *testing.T) {
	good := Thoughts{Summary: "You feel stretched thin.", KeyPoints: []string{"work", "sleep", "family"}}
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if strings.Contains(req.Contents[0].Parts[0].Text, `Text: "too short"`) {
			fmt.Fprint(w, geminiReply(t, Thoughts{Summary: "x", KeyPoints: []string{"one"}}))
			return
		}
		fmt.Fprint(w, geminiReply(t, good))
	})
	adapter := NewAdapter(client, time.Second, nil)

	got, ok := adapter.OrganizeThoughts(context.Background(), "everything at once")
	require.True(t, ok)
	assert.Equal(t, good, got)

	_, ok = adapter.OrganizeThoughts(context.Background(), "too short")
	assert.False(t, ok)
}

func TestAdapterTimeoutCollapsesToEmpty(t *testing.T) {
	release := make(chan struct{})
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	start := time.Now()
	got := NewAdapter(client, 50*time.Millisecond, nil).BreakDownGoal(context.Background(), "goal")
	assert.Empty(t, got)
	assert.Less(t, time.Since(start), 2*time.Second)
}

type stubClient struct {
	steps []Step
	err   error
}

func (s stubClient) BreakDown(context.Context, string) ([]Step, error) { return s.steps, s.err }
func (s stubClient) Organize(context.Context, string) (Thoughts, error) {
	return Thoughts{}, s.err
}

func TestAdapterSwallowsClientErrors(t *testing.T) {
	adapter := NewAdapter(stubClient{err: ErrTransport}, 0, nil)
	assert.Nil(t, adapter.BreakDownGoal(context.Background(), "goal"))
	_, ok := adapter.OrganizeThoughts(context.Background(), "text")
	assert.False(t, ok)
	assert.Nil(t, NewAdapter(nil, 0, nil).BreakDownGoal(context.Background(), "goal"))
}

func TestValidateStepsRejectsBlank(t *testing.T) {
	assert.ErrorIs(t, ValidateSteps([]Step{{"a"}, {" "}, {"c"}}), ErrSchema)
	assert.NoError(t, ValidateSteps([]Step{{"a"}, {"b"}, {"c"}}))
}
