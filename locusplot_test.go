package locusplot

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestOpenFileOrURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("chr7\t1\t2\n"))
	}))
	defer server.Close()

	fileBytes, err := OpenFileOrURL(server.URL+"/peaks.bed", time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if string(fileBytes) != "chr7\t1\t2\n" {
		t.Error("Mismatch:", string(fileBytes))
	}
}

func TestOpenFileOrURLNonSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := OpenFileOrURL(server.URL, time.Second)
	if err == nil {
		t.Fatal("Expected an error for a 404 response")
	}

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Errorf("Expected a *FetchError, got %T", err)
	}
}

func TestOpenFileOrURLTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer server.Close()

	_, err := OpenFileOrURL(server.URL, 50*time.Millisecond)

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Errorf("Expected a *FetchError on timeout, got %v", err)
	}
}

func TestCacheFetch(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("payload"))
	}))
	defer server.Close()

	dir := t.TempDir()

	local, err := CacheFetch(server.URL+"/data.bed", dir, time.Second)
	if err != nil {
		t.Fatal(err)
	}

	fileBytes, err := os.ReadFile(local)
	if err != nil {
		t.Fatal(err)
	}
	if string(fileBytes) != "payload" {
		t.Error("Mismatch:", string(fileBytes))
	}

	// The second fetch must be served from the cache.
	again, err := CacheFetch(server.URL+"/data.bed", dir, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if again != local {
		t.Error("Cache path changed between calls")
	}
	if hits != 1 {
		t.Error("Expected 1 server hit, got", hits)
	}
}

func TestCacheFetchLocalPassthrough(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.bed")
	local, err := CacheFetch(path, "", time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if local != path {
		t.Error("Local paths should pass through unchanged, got", local)
	}
}

func TestDetermineDelimiter(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "delim")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	f.WriteString("chr7\t100\t200\tpeak_1\nchr7\t300\t400\tpeak_2\n")
	f.Seek(0, 0)

	if d := DetermineDelimiter(f); d != '\t' {
		t.Errorf("Expected tab, got %q", d)
	}
}
