package main

import (
	"testing"

	"github.com/user/cardcourier/internal/types"
)

func TestParseSpaceType(t *testing.T) {
	cases := map[string]types.SpaceType{
		"direct": types.SpaceTypeDirect,
		"group":  types.SpaceTypeGroup,
		"both":   types.SpaceTypeAny,
		"":       types.SpaceTypeAny,
	}
	for in, want := range cases {
		got, err := parseSpaceType(in)
		if err != nil {
			t.Errorf("parseSpaceType(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("parseSpaceType(%q) = %q, want %q", in, got, want)
		}
	}

	if _, err := parseSpaceType("channel"); err == nil {
		t.Error("expected error for unknown type")
	}
}
