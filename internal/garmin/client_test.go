package garmin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad login body: %v", err)
		}
		if req["username"] != "alice" || req["password"] != "secret" {
			t.Errorf("unexpected credentials: %v", req)
		}
		json.NewEncoder(w).Encode(map[string]string{"token": "tok-123"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if c.IsAuthenticated() {
		t.Error("client authenticated before login")
	}

	if err := c.Login(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	if !c.IsAuthenticated() {
		t.Error("client not authenticated after login")
	}

	c.Logout()
	if c.IsAuthenticated() {
		t.Error("client still authenticated after logout")
	}
}

func TestLoginBadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid password"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.Login(context.Background(), "alice", "wrong")

	if !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("expected ErrBadCredentials, got %v", err)
	}
	if c.IsAuthenticated() {
		t.Error("client authenticated after rejected login")
	}
}

func TestFetchActivitiesSendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			json.NewEncoder(w).Encode(map[string]string{"token": "tok-123"})
		case "/activities":
			if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
				t.Errorf("unexpected Authorization header: %q", got)
			}
			if r.URL.Query().Get("limit") != "25" {
				t.Errorf("unexpected limit: %s", r.URL.RawQuery)
			}
			json.NewEncoder(w).Encode([]Activity{{
				ActivityID:   42,
				ActivityName: "Evening Ride",
				StartTimeGMT: "2024-05-01 17:30:00",
				Distance:     21000,
				Duration:     3600,
			}})
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if err := c.Login(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("Login() failed: %v", err)
	}

	activities, err := c.FetchActivities(context.Background(), 0, 25)
	if err != nil {
		t.Fatalf("FetchActivities() failed: %v", err)
	}
	if len(activities) != 1 || activities[0].ActivityID != 42 {
		t.Errorf("unexpected activities: %+v", activities)
	}
}

func TestGetActivityDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/activities/42" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(Activity{
			ActivityID:   42,
			ActivityName: "Morning Run",
			Distance:     5000,
		})
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL).GetActivityDetails(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetActivityDetails() failed: %v", err)
	}
	if got.ActivityID != 42 || got.ActivityName != "Morning Run" || got.Distance != 5000 {
		t.Errorf("unexpected activity: %+v", got)
	}
}

func TestDownloadActivity(t *testing.T) {
	payload := []byte("raw-fit-bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/activities/42/download" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("format") != "fit" {
			t.Errorf("unexpected format: %s", r.URL.RawQuery)
		}
		w.Write(payload)
	}))
	defer srv.Close()

	data, err := NewClient(srv.URL).DownloadActivity(context.Background(), 42, "fit")
	if err != nil {
		t.Fatalf("DownloadActivity() failed: %v", err)
	}
	if string(data) != string(payload) {
		t.Errorf("unexpected payload: %q", data)
	}
}

func TestFetchActivitiesNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).FetchActivities(context.Background(), 0, 10); err == nil {
		t.Fatal("expected an error for non-OK status")
	}
}
