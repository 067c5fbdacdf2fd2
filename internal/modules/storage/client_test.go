package storage

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_Upload(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/storage/v1/object/intloko/1700000000000-food-pot.jpg", r.URL.Path)
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))
		assert.Equal(t, "service-key", r.Header.Get("apikey"))
		assert.Equal(t, "true", r.Header.Get("x-upsert"))
		assert.Equal(t, "image/jpeg", r.Header.Get("Content-Type"))
		assert.Equal(t, int64(9), r.ContentLength)
		assert.Empty(t, r.TransferEncoding)

		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "jpegbytes", string(body))

		w.Write([]byte(`{"Key":"intloko/1700000000000-food-pot.jpg"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "service-key", time.Second, newTestLogger())
	got, err := c.Upload(context.Background(), "intloko", "1700000000000-food-pot.jpg", io.MultiReader(strings.NewReader("jpegbytes")), 9, "image/jpeg", true)
	require.NoError(t, err)
	assert.Equal(t, "1700000000000-food-pot.jpg", got)
}

func TestClient_Upload_ErrorMessageVerbatim(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"statusCode":"413","error":"Payload too large","message":"The object exceeded the maximum allowed size"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", time.Second, newTestLogger())
	_, err := c.Upload(context.Background(), "intloko", "a.jpg", strings.NewReader("x"), 1, "image/jpeg", true)
	require.Error(t, err)
	assert.Equal(t, "The object exceeded the maximum allowed size", err.Error())
}

func TestClient_Upload_PlainTextError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream unavailable\n"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", time.Second, newTestLogger())
	_, err := c.Upload(context.Background(), "intloko", "a.jpg", strings.NewReader("x"), 1, "", false)
	require.Error(t, err)
	assert.Equal(t, "upstream unavailable", err.Error())
}

func TestClient_PublicURL(t *testing.T) {
	t.Parallel()

	c := NewClient("https://abc.supabase.co", "k", time.Second, newTestLogger())
	assert.Equal(t,
		"https://abc.supabase.co/storage/v1/object/public/intloko/1700000000000-food-mama_s_pot.jpg",
		c.PublicURL("intloko", "1700000000000-food-mama_s_pot.jpg"),
	)
}
