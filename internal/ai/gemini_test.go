package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProvider(url string, timeout time.Duration) *GeminiProvider {
	return NewGeminiProvider(url, "test-key", "test-model", 0.4, timeout)
}

func TestGeminiCompleteSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "test-model")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"  4  "}]}}]}`))
	}))
	defer srv.Close()

	p := newProvider(srv.URL, 5*time.Second)
	out, err := p.Complete(context.Background(), "what is 2+2")
	require.NoError(t, err)
	assert.Equal(t, "4", out)
}

func TestGeminiCompleteUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"quota exhausted"}`))
	}))
	defer srv.Close()

	p := newProvider(srv.URL, 5*time.Second)
	_, err := p.Complete(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestGeminiCompleteMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	p := newProvider(srv.URL, 5*time.Second)
	_, err := p.Complete(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestGeminiCompleteEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	p := newProvider(srv.URL, 5*time.Second)
	_, err := p.Complete(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestGeminiCompleteTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	p := newProvider(srv.URL, 50*time.Millisecond)
	_, err := p.Complete(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestGeminiCompleteContextCancelled(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	p := newProvider(srv.URL, 5*time.Second)
	_, err := p.Complete(ctx, "hi")
	assert.ErrorIs(t, err, ErrUpstream)
}
