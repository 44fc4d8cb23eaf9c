package webex

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/user/cardcourier/internal/types"
)

func TestListSpaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Error("missing or invalid auth header")
		}
		if r.URL.Path != "/v1/rooms" {
			t.Errorf("expected path /v1/rooms, got %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("type") != "group" {
			t.Errorf("expected type=group, got %q", q.Get("type"))
		}
		if q.Get("sortBy") != "lastactivity" {
			t.Errorf("expected sortBy=lastactivity, got %q", q.Get("sortBy"))
		}
		if q.Get("max") != "20" {
			t.Errorf("expected max=20, got %q", q.Get("max"))
		}
		if !strings.HasPrefix(r.Header.Get("TrackingID"), "cardcourier_") {
			t.Errorf("expected TrackingID header, got %q", r.Header.Get("TrackingID"))
		}

		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{"id": "A", "title": "Team", "type": "group", "lastActivity": "2025-02-14T10:00:00.000Z", "isLocked": false},
				{"id": "B", "title": "Ops", "type": "group", "lastActivity": "2025-02-13T10:00:00.000Z"},
			},
		})
	}))
	defer server.Close()

	client := New(&Config{BaseURL: server.URL, Token: "test-token"})
	spaces, err := client.ListSpaces(context.Background(), SpaceQuery{Type: types.SpaceTypeGroup, Max: 20})
	if err != nil {
		t.Fatal(err)
	}
	if len(spaces) != 2 {
		t.Fatalf("expected 2 spaces, got %d", len(spaces))
	}
	if spaces[0].ID != "A" || spaces[0].Title != "Team" {
		t.Errorf("unexpected first space %+v", spaces[0])
	}
	if spaces[0].Type != types.SpaceTypeGroup {
		t.Errorf("expected group type, got %q", spaces[0].Type)
	}
}

func TestListSpacesBothTypes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.URL.Query()["type"]; ok {
			t.Errorf("expected no type parameter, got %q", r.URL.RawQuery)
		}
		if _, ok := r.URL.Query()["max"]; ok {
			t.Errorf("expected no max parameter, got %q", r.URL.RawQuery)
		}
		w.Write([]byte(`{"items":[]}`))
	}))
	defer server.Close()

	client := New(&Config{BaseURL: server.URL + "/", Token: "t"})
	spaces, err := client.ListSpaces(context.Background(), SpaceQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if spaces == nil || len(spaces) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", spaces)
	}
}

func TestListMessagesFiltersAttachments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("expected path /v1/messages, got %q", r.URL.Path)
		}
		if r.URL.Query().Get("roomId") != "A" {
			t.Errorf("expected roomId=A, got %q", r.URL.Query().Get("roomId"))
		}
		w.Write([]byte(`{"items":[
			{"id":"m1","created":"2025-02-14T10:00:00Z","personEmail":"a@example.com","attachments":[{"contentType":"application/vnd.microsoft.card.adaptive","content":{"type":"AdaptiveCard"}}]},
			{"id":"m2","created":"2025-02-14T10:01:00Z","personEmail":"b@example.com","text":"plain"},
			{"id":"m3","created":"2025-02-14T10:02:00Z","personEmail":"c@example.com","attachments":[]}
		]}`))
	}))
	defer server.Close()

	client := New(&Config{BaseURL: server.URL, Token: "t"})
	messages, err := client.ListMessages(context.Background(), "A")
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 1 {
		t.Fatalf("expected 1 message with attachments, got %d", len(messages))
	}
	if messages[0].ID != "m1" {
		t.Errorf("expected m1, got %s", messages[0].ID)
	}
}

func TestPostCardMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected Content-Type 'application/json', got %q", r.Header.Get("Content-Type"))
		}

		body, _ := io.ReadAll(r.Body)
		var reqBody map[string]any
		json.Unmarshal(body, &reqBody)
		if reqBody["roomId"] != "A" {
			t.Errorf("expected roomId A, got %v", reqBody["roomId"])
		}

		w.Write([]byte(`{"id":"new-message","roomId":"A"}`))
	}))
	defer server.Close()

	client := New(&Config{BaseURL: server.URL, Token: "t"})
	result, err := client.PostCardMessage(context.Background(), MessageRequest{
		RoomID:   "A",
		Markdown: "fallback",
		Attachments: []types.Attachment{
			{ContentType: AdaptiveCardContentType, Content: json.RawMessage(`{"type":"AdaptiveCard"}`)},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.StatusText != "OK" {
		t.Errorf("expected status text OK, got %q", result.StatusText)
	}
	if result.MessageID != "new-message" {
		t.Errorf("expected message id new-message, got %q", result.MessageID)
	}
}

func TestClientAuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"The request requires a valid access token set in the Authorization request header."}`))
	}))
	defer server.Close()

	client := New(&Config{BaseURL: server.URL, Token: "bad"})
	_, err := client.ListSpaces(context.Background(), SpaceQuery{})
	if err == nil {
		t.Fatal("expected error for 401 response")
	}

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %T: %v", err, err)
	}
	if authErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", authErr.StatusCode)
	}
	if authErr.StatusText != "Unauthorized" {
		t.Errorf("expected Unauthorized, got %q", authErr.StatusText)
	}
}

func TestClientAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"room not found"}`))
	}))
	defer server.Close()

	client := New(&Config{BaseURL: server.URL, Token: "t"})
	_, err := client.ListMessages(context.Background(), "missing")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", apiErr.StatusCode)
	}
	if !strings.Contains(apiErr.Body, "room not found") {
		t.Errorf("expected body to be kept, got %q", apiErr.Body)
	}
	if !strings.Contains(err.Error(), "404: Not Found") {
		t.Errorf("expected status in message, got %q", err.Error())
	}
}
