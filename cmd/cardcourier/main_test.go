package main

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/user/cardcourier/internal/cards"
	"github.com/user/cardcourier/internal/workflow"
)

func TestReportError_InvalidCardOnce(t *testing.T) {
	var buf bytes.Buffer
	err := fmt.Errorf("send: %w", &cards.InvalidCardError{Path: "cards/broken.json", Err: errors.New("unexpected end of JSON input")})

	reportError(&buf, err)

	out := buf.String()
	if strings.Count(out, workflow.InvalidCardMessage) != 1 {
		t.Errorf("expected the message exactly once, got %q", out)
	}
	if strings.Contains(out, "does not contain valid JSON\n") || strings.Contains(out, "broken.json") {
		t.Errorf("expected error chain not to be printed, got %q", out)
	}
}

func TestReportError_Other(t *testing.T) {
	var buf bytes.Buffer
	reportError(&buf, errors.New("list rooms: 500: Internal Server Error"))

	if buf.String() != "list rooms: 500: Internal Server Error\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}
