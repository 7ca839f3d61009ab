package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoginAndFetchSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":    true,
			"activities": []Activity{{ActivityID: "1", ActivityName: "Run"}},
		})
	}))
	defer srv.Close()

	activities, err := NewClient(srv.URL).LoginAndFetch(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatalf("LoginAndFetch() failed: %v", err)
	}
	if len(activities) != 1 || activities[0].ActivityName != "Run" {
		t.Errorf("unexpected activities: %+v", activities)
	}
}

func TestLoginAndFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "bad credentials"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).LoginAndFetch(context.Background(), "alice", "wrong")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Message != "bad credentials" || apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("unexpected APIError: %+v", apiErr)
	}
}

func TestLoginAndFetchFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).LoginAndFetch(context.Background(), "alice", "secret")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Message != "Login failed." {
		t.Errorf("expected fallback message, got %q", apiErr.Message)
	}
}

func TestFetchDataStatusCodeIsTheSuccessSignal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// No success flag on this endpoint.
		json.NewEncoder(w).Encode(map[string]interface{}{
			"activities": []Activity{{ActivityID: "1"}},
		})
	}))
	defer srv.Close()

	activities, err := NewClient(srv.URL).FetchData(context.Background())
	if err != nil {
		t.Fatalf("FetchData() failed: %v", err)
	}
	if len(activities) != 1 {
		t.Errorf("unexpected activities: %+v", activities)
	}
}

func TestFetchDataTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := NewClient(srv.URL).FetchData(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Errorf("transport failure must not be an *APIError: %v", err)
	}
}
