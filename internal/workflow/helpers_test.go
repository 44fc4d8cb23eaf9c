package workflow

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/user/cardcourier/internal/prompt"
	"github.com/user/cardcourier/internal/types"
)

// scriptedPrompt answers prompts in order and records what was asked.
type scriptedPrompt struct {
	answers  []string
	asked    []string
	offered  [][]types.Choice
	password string
}

func (s *scriptedPrompt) next(message string) (string, error) {
	s.asked = append(s.asked, message)
	if len(s.answers) == 0 {
		return "", fmt.Errorf("unexpected prompt %q", message)
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}

func (s *scriptedPrompt) Password(message string) (string, error) {
	s.asked = append(s.asked, message)
	return s.password, nil
}

func (s *scriptedPrompt) Input(message string) (string, error) {
	return s.next(message)
}

func (s *scriptedPrompt) Select(message string, choices []types.Choice) (string, error) {
	s.offered = append(s.offered, choices)
	answer, err := s.next(message)
	if err != nil {
		return "", err
	}
	for _, c := range choices {
		if !c.Separator && c.Value == answer {
			return answer, nil
		}
	}
	return "", fmt.Errorf("answer %q is not among the choices for %q", answer, message)
}

var _ prompt.Provider = (*scriptedPrompt)(nil)

// fakeAPI is an httptest server speaking the subset of the rooms and
// messages endpoints the workflows use.
type fakeAPI struct {
	*httptest.Server

	mu       sync.Mutex
	rooms    []map[string]any
	messages map[string][]map[string]any
	failRoom string
	posts    []map[string]any
	queries  []string
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{messages: map[string][]map[string]any{}}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeAPI) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.Header.Get("Authorization") != "Bearer test-token" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/v1/rooms":
		f.queries = append(f.queries, r.URL.RawQuery)
		json.NewEncoder(w).Encode(map[string]any{"items": f.rooms})
	case r.Method == http.MethodGet && r.URL.Path == "/v1/messages":
		roomID := r.URL.Query().Get("roomId")
		if roomID == f.failRoom {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		items := f.messages[roomID]
		if items == nil {
			items = []map[string]any{}
		}
		json.NewEncoder(w).Encode(map[string]any{"items": items})
	case r.Method == http.MethodPost && r.URL.Path == "/v1/messages":
		body, _ := io.ReadAll(r.Body)
		var post map[string]any
		json.Unmarshal(body, &post)
		f.posts = append(f.posts, post)
		w.Write([]byte(`{"id":"posted"}`))
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeAPI) postCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.posts)
}

func (f *fakeAPI) lastQuery() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queries) == 0 {
		return ""
	}
	return f.queries[len(f.queries)-1]
}

func names(choices []types.Choice) string {
	var parts []string
	for _, c := range choices {
		if c.Separator {
			parts = append(parts, "---")
			continue
		}
		parts = append(parts, c.Name)
	}
	return strings.Join(parts, ",")
}
