// Package cards finds adaptive card files on disk, loads them, and posts
// them into rooms.
package cards

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/user/cardcourier/internal/types"
)

// DefaultExtensions are the card file suffixes offered when none are configured.
var DefaultExtensions = []string{".json", ".txt"}

// InvalidCardError means the selected file is not a JSON document.
type InvalidCardError struct {
	Path string
	Err  error
}

func (e *InvalidCardError) Error() string {
	return fmt.Sprintf("%s does not contain valid JSON", e.Path)
}

func (e *InvalidCardError) Unwrap() error {
	return e.Err
}

// ListFiles returns the card files in dir whose extension is in exts,
// sorted by name. Matching is case-insensitive; a leading dot is optional.
func ListFiles(dir string, exts []string) ([]types.Choice, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	allowed := make(map[string]bool, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		allowed[ext] = true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &types.LocalIOError{Op: "list cards", Path: dir, Err: err}
	}

	choices := []types.Choice{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !allowed[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		choices = append(choices, types.Choice{
			Name:  name,
			Value: filepath.Join(dir, name),
		})
	}
	sort.Slice(choices, func(i, j int) bool { return choices[i].Name < choices[j].Name })
	return choices, nil
}

// LoadOption configures how card files are parsed.
type LoadOption func(*loadOptions)

type loadOptions struct {
	allowComments bool
}

// AllowComments accepts // and /* */ comments and trailing commas, which
// are stripped before the card is sent. Without it a card must be strict
// JSON.
func AllowComments() LoadOption {
	return func(o *loadOptions) { o.allowComments = true }
}

// Load reads a card file and checks that it is JSON.
func Load(path string, opts ...LoadOption) (json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &types.LocalIOError{Op: "read card", Path: path, Err: err}
	}
	return Parse(path, data, opts...)
}

// Parse validates raw card bytes read from path.
func Parse(path string, data []byte, opts ...LoadOption) (json.RawMessage, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.allowComments {
		data = jsonc.ToJSON(data)
	}

	var card any
	if err := json.Unmarshal(data, &card); err != nil {
		return nil, &InvalidCardError{Path: path, Err: err}
	}
	return json.RawMessage(data), nil
}
