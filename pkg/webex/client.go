package webex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/user/cardcourier/internal/types"
)

// Client is a minimal Webex REST client authenticated with a bearer token.
// Every call is a single attempt; there is no retry or pagination.
type Client struct {
	config     *Config
	httpClient *http.Client
}

// New creates a client for the given configuration. An empty BaseURL
// falls back to DefaultBaseURL.
func New(config *Config) *Client {
	cfg := *config
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		config: &cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// ListSpaces returns the rooms the token's user belongs to, most recently
// active first unless q.SortBy says otherwise.
func (c *Client) ListSpaces(ctx context.Context, q SpaceQuery) ([]types.Space, error) {
	params := url.Values{}
	if q.Type != types.SpaceTypeAny {
		params.Set("type", string(q.Type))
	}
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = "lastactivity"
	}
	params.Set("sortBy", sortBy)
	if q.Max > 0 {
		params.Set("max", strconv.Itoa(q.Max))
	}

	var resp listResponse[types.Space]
	if _, err := c.do(ctx, http.MethodGet, "/v1/rooms", params, nil, &resp); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	if resp.Items == nil {
		return []types.Space{}, nil
	}
	return resp.Items, nil
}

// ListMessages returns the messages of a room that carry at least one
// attachment. Messages without attachments are dropped.
func (c *Client) ListMessages(ctx context.Context, roomID types.SpaceID) ([]types.Message, error) {
	params := url.Values{}
	params.Set("roomId", string(roomID))

	var resp listResponse[types.Message]
	if _, err := c.do(ctx, http.MethodGet, "/v1/messages", params, nil, &resp); err != nil {
		return nil, fmt.Errorf("list messages in room %s: %w", roomID, err)
	}

	messages := make([]types.Message, 0, len(resp.Items))
	for _, msg := range resp.Items {
		if msg.HasAttachments() {
			messages = append(messages, msg)
		}
	}
	return messages, nil
}

// PostCardMessage creates a message in req.RoomID and returns the upstream
// status.
func (c *Client) PostCardMessage(ctx context.Context, req MessageRequest) (*StatusResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	var created createdMessage
	resp, err := c.do(ctx, http.MethodPost, "/v1/messages", nil, body, &created)
	if err != nil {
		return nil, fmt.Errorf("post message to room %s: %w", req.RoomID, err)
	}
	return &StatusResult{
		StatusCode: resp.StatusCode,
		StatusText: statusText(resp),
		MessageID:  created.ID,
	}, nil
}

// do performs one authenticated request and decodes a 2xx JSON body into out.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body []byte, out any) (*http.Response, error) {
	u := c.config.BaseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	trackingID := types.NewTrackingID()
	req.Header.Set("Authorization", "Bearer "+c.config.Token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("TrackingID", string(trackingID))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	slog.Debug("webex request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"tracking_id", trackingID,
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp.StatusCode, statusText(resp), respBody)
	}

	if out != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return nil, fmt.Errorf("parsing response: %w", err)
		}
	}
	return resp, nil
}

// statusText returns the reason phrase the server sent, or the standard
// one for the code.
func statusText(resp *http.Response) string {
	if text := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)+" "); text != "" && text != resp.Status {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
