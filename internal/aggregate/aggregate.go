// Package aggregate fans message lookups out across rooms and merges the
// results into one chronological list.
package aggregate

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/user/cardcourier/internal/types"
)

// Policy decides what a single failed room lookup does to the whole run.
type Policy int

const (
	// FailFast aborts on the first failure and discards partial results.
	FailFast Policy = iota
	// BestEffort skips failed rooms and merges whatever succeeded.
	BestEffort
)

func (p Policy) String() string {
	switch p {
	case FailFast:
		return "fail-fast"
	case BestEffort:
		return "best-effort"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy maps a config value to a Policy. The empty string is FailFast.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "fail-fast":
		return FailFast, nil
	case "best-effort":
		return BestEffort, nil
	default:
		return FailFast, fmt.Errorf("unknown fan-out policy %q (want fail-fast or best-effort)", s)
	}
}

// MessageLister fetches the attachment-bearing messages of one room.
type MessageLister interface {
	ListMessages(ctx context.Context, roomID types.SpaceID) ([]types.Message, error)
}

// Source is one room to read. A non-empty Title is stamped onto every
// message fetched from it.
type Source struct {
	ID    types.SpaceID
	Title string
}

// SourceError records a room that was skipped under BestEffort.
type SourceError struct {
	Source Source
	Err    error
}

func (e SourceError) Error() string {
	return fmt.Sprintf("room %s: %v", e.Source.ID, e.Err)
}

// Result is the merged output of Collect.
type Result struct {
	Messages []types.Message
	Failed   []SourceError
}

// Aggregator merges messages from many rooms.
type Aggregator struct {
	lister MessageLister
	policy Policy
}

// New creates an Aggregator reading through lister.
func New(lister MessageLister, policy Policy) *Aggregator {
	return &Aggregator{lister: lister, policy: policy}
}

// Collect issues one lookup per source concurrently and returns the merged
// messages sorted by creation time, oldest first. Ties keep source order,
// then the order the API returned them in.
func (a *Aggregator) Collect(ctx context.Context, sources []Source) (*Result, error) {
	result := &Result{Messages: []types.Message{}}
	if len(sources) == 0 {
		return result, nil
	}

	// Each goroutine owns one slot, so no locking is needed.
	perSource := make([][]types.Message, len(sources))
	failed := make([]*SourceError, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			messages, err := a.lister.ListMessages(gctx, src.ID)
			if err != nil {
				if a.policy == FailFast {
					return err
				}
				slog.Warn("skipping room", "room_id", string(src.ID), "title", src.Title, "error", err)
				failed[i] = &SourceError{Source: src, Err: err}
				return nil
			}
			if src.Title != "" {
				for j := range messages {
					messages[j].RoomTitle = src.Title
				}
			}
			perSource[i] = messages
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range sources {
		result.Messages = append(result.Messages, perSource[i]...)
		if failed[i] != nil {
			result.Failed = append(result.Failed, *failed[i])
		}
	}
	sort.SliceStable(result.Messages, func(i, j int) bool {
		return result.Messages[i].Created.Before(result.Messages[j].Created.Time)
	})
	return result, nil
}

// SourcesFromSpaces converts listed rooms into aggregation sources.
func SourcesFromSpaces(spaces []types.Space) []Source {
	sources := make([]Source, len(spaces))
	for i, s := range spaces {
		sources[i] = Source{ID: s.ID, Title: s.Title}
	}
	return sources
}
