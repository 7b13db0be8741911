package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTTPMediaFetcher_RetryLogic(t *testing.T) {
	payload := []byte("media-bytes")

	tests := []struct {
		name          string
		responses     []int // status codes returned in sequence
		expectFetches int
		expectError   bool
		errorContains string
	}{
		{
			name:          "success on first attempt",
			responses:     []int{200},
			expectFetches: 1,
		},
		{
			name:          "success after 5xx",
			responses:     []int{500, 200},
			expectFetches: 2,
		},
		{
			name:          "4xx fails without retry",
			responses:     []int{404},
			expectFetches: 1,
			expectError:   true,
			errorContains: "client error: status code 404",
		},
		{
			name:          "4xx after 5xx stops retrying",
			responses:     []int{500, 404},
			expectFetches: 2,
			expectError:   true,
			errorContains: "client error: status code 404",
		},
		{
			name:          "all 5xx exhausts attempts",
			responses:     []int{500, 502, 503},
			expectFetches: 3,
			expectError:   true,
			errorContains: "server error: status code 503",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requestCount := 0
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				statusCode := 500
				if requestCount < len(tt.responses) {
					statusCode = tt.responses[requestCount]
				}
				requestCount++

				if statusCode == 200 {
					w.Write(payload)
					return
				}
				w.WriteHeader(statusCode)
				fmt.Fprintf(w, "Error %d", statusCode)
			}))
			defer server.Close()

			fetcher := NewHTTPMediaFetcher(0)
			data, err := fetcher.FetchMedia(context.Background(), server.URL)

			if tt.expectError {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errorContains) {
					t.Errorf("Expected error containing %q, got %v", tt.errorContains, err)
				}
			} else {
				if err != nil {
					t.Fatalf("FetchMedia failed: %v", err)
				}
				if !bytes.Equal(data, payload) {
					t.Errorf("Expected payload %q, got %q", payload, data)
				}
			}
			if requestCount != tt.expectFetches {
				t.Errorf("Expected %d requests, got %d", tt.expectFetches, requestCount)
			}
		})
	}
}

func TestHTTPMediaFetcher_SizeLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(bytes.Repeat([]byte("x"), 100))
	}))
	defer server.Close()

	fetcher := NewHTTPMediaFetcher(50)
	if _, err := fetcher.FetchMedia(context.Background(), server.URL); err == nil {
		t.Fatal("Expected size limit error, got nil")
	}
}

func TestHTTPMediaFetcher_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500) // force a retry wait
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := NewHTTPMediaFetcher(0)
	if _, err := fetcher.FetchMedia(ctx, server.URL); err == nil {
		t.Fatal("Expected error for cancelled context, got nil")
	}
}
