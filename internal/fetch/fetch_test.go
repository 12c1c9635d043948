package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_LocalFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "words.csv"), []byte("\xef\xbb\xbfhanzi,pinyin\n"), 0o644))

	f := New(dir, "", time.Second)
	got, err := f.Text(context.Background(), "words.csv")
	require.NoError(t, err)
	assert.Equal(t, "hanzi,pinyin\n", got)

	_, err = f.Fetch(context.Background(), "missing.csv")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFetch_HTTPCacheBust(t *testing.T) {
	var gotQuery, gotCache string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("v")
		gotCache = r.Header.Get("Cache-Control")
		assert.Equal(t, "csv", r.URL.Query().Get("output"))
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("hanzi,pinyin\n水,shuǐ\n"))
	}))
	defer srv.Close()

	f := New("", "", time.Second)
	f.Now = func() time.Time { return time.UnixMilli(1700000000123) }

	got, err := f.Text(context.Background(), srv.URL+"/sheet?output=csv")
	require.NoError(t, err)
	assert.Equal(t, "hanzi,pinyin\n水,shuǐ\n", got)
	assert.Equal(t, "1700000000123", gotQuery)
	assert.Equal(t, "no-cache", gotCache)
}

func TestFetch_BaseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/dich.txt" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("1. 你好\n"))
	}))
	defer srv.Close()

	f := New("", srv.URL+"/data", time.Second)
	got, err := f.Text(context.Background(), "dich.txt")
	require.NoError(t, err)
	assert.Equal(t, "1. 你好\n", got)
}

func TestFetch_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New("", "", time.Second).Fetch(context.Background(), srv.URL+"/x.csv")
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
}

func TestFetch_HTML(t *testing.T) {
	page := `<html><head><title>Ngữ pháp</title></head><body><article><h1>Ngữ pháp</h1>` +
		strings.Repeat(`<p>PHẦN 1: Câu chữ 是. 我是学生 (Tôi là học sinh). Đây là một đoạn văn dài để trích xuất nội dung.</p>`, 5) +
		`</article></body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	got, err := New("", "", time.Second).Text(context.Background(), srv.URL+"/notes.html")
	require.NoError(t, err)
	assert.Contains(t, got, "我是学生 (Tôi là học sinh)")
	assert.NotContains(t, got, "<p>")
}

func TestFetch_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New("", "", time.Second).Fetch(ctx, srv.URL)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetch_TooLarge(t *testing.T) {
	t.Run("http without content length", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain")
			chunk := []byte(strings.Repeat("a", 64*1024))
			w.(http.Flusher).Flush()
			for written := 0; written <= MaxBodySize; written += len(chunk) {
				if _, err := w.Write(chunk); err != nil {
					return
				}
			}
		}))
		defer srv.Close()

		_, err := New("", "", 10*time.Second).Fetch(context.Background(), srv.URL+"/big.csv")
		assert.True(t, errors.Is(err, ErrTooLarge), "err = %v", err)
	})

	t.Run("local file", func(t *testing.T) {
		dir := t.TempDir()
		f, err := os.Create(filepath.Join(dir, "big.csv"))
		require.NoError(t, err)
		require.NoError(t, f.Truncate(MaxBodySize+1))
		require.NoError(t, f.Close())

		_, err = New(dir, "", time.Second).Fetch(context.Background(), "big.csv")
		assert.True(t, errors.Is(err, ErrTooLarge), "err = %v", err)
	})
}
