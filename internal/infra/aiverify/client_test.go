package aiverify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertFallback(t *testing.T, res Result) {
	t.Helper()
	assert.True(t, res.Fallback)
	assert.Equal(t, "unavailable", res.ModelVersion)
	assert.Equal(t, 0.5, res.ScoreHuman)
	assert.Equal(t, "review", res.Verdict)
	assert.Equal(t, []string{"AI service not reachable"}, res.Explanations)
}

func TestVerify_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/verify", r.URL.Path)

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		body, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "cat.png", header.Filename)
		assert.Equal(t, "png-bytes", string(body))

		json.NewEncoder(w).Encode(Result{
			ModelVersion: "baseline-0.0.1",
			ScoreHuman:   0.91,
			Verdict:      "pass",
			Explanations: []string{"texture entropy within human range"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second)
	res := client.Verify(context.Background(), "cat.png", []byte("png-bytes"))

	assert.False(t, res.Fallback)
	assert.Equal(t, "baseline-0.0.1", res.ModelVersion)
	assert.Equal(t, 0.91, res.ScoreHuman)
	assert.Equal(t, "pass", res.Verdict)
	assert.Equal(t, []string{"texture entropy within human range"}, res.Explanations)
}

func TestVerify_ServiceDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewClient(srv.URL, time.Second)
	res := client.Verify(context.Background(), "cat.png", []byte("x"))
	assertFallback(t, res)
}

func TestVerify_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model crashed", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	res := client.Verify(context.Background(), "cat.png", []byte("x"))
	assertFallback(t, res)
}

func TestVerify_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"score_human": "not-a-number"`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	res := client.Verify(context.Background(), "cat.png", []byte("x"))
	assertFallback(t, res)
}

func TestVerify_MissingVerdict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"model_version": "baseline-0.0.1"}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	res := client.Verify(context.Background(), "cat.png", []byte("x"))
	assertFallback(t, res)
}

func TestVerify_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 50*time.Millisecond)

	start := time.Now()
	res := client.Verify(context.Background(), "cat.png", []byte("x"))
	assert.Less(t, time.Since(start), 250*time.Millisecond, "timeout must cut the call short")
	assertFallback(t, res)
}

func TestNewClient_DefaultTimeout(t *testing.T) {
	client := NewClient("http://localhost:8000/", 0)
	assert.Equal(t, 15*time.Second, client.http.Timeout)
	assert.Equal(t, "http://localhost:8000", client.baseURL)
}
