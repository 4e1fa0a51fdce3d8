package model

import (
	"fmt"
	"strconv"
	"strings"
)

// WindowID is an X11 window handle. Its canonical text form is a 0x-prefixed
// hexadecimal number zero-padded to eight digits, e.g. "0x0220000a".
type WindowID uint32

// String renders the id in canonical form.
func (id WindowID) String() string {
	return fmt.Sprintf("0x%08x", uint32(id))
}

// MarshalText implements encoding.TextMarshaler so ids serialize in canonical
// form in both YAML and JSON output.
func (id WindowID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *WindowID) UnmarshalText(b []byte) error {
	parsed, err := ParseWindowID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParseWindowID parses a hexadecimal window id as printed by wmctrl, xprop or
// xdotool. The 0x prefix is optional and any number of leading zeros is
// accepted, so "0x2200007" and "0x02200007" yield the same id.
func ParseWindowID(s string) (WindowID, error) {
	s = strings.TrimSpace(s)
	hex := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if hex == "" {
		return 0, fmt.Errorf("invalid window id %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid window id %q: %w", s, err)
	}
	return WindowID(v), nil
}

// Window is one entry of the window inventory.
type Window struct {
	ID          WindowID `yaml:"id"          json:"id"`
	Desktop     int      `yaml:"desktop"     json:"desktop"`
	Type        string   `yaml:"type"        json:"type"`
	Application string   `yaml:"application" json:"application"`
	Host        string   `yaml:"host"        json:"host"`
	Name        string   `yaml:"name"        json:"name"`
}

// ApplicationOf returns the part of a type tag after its first dot, or the
// whole tag when it has none.
func ApplicationOf(typeTag string) string {
	if _, after, ok := strings.Cut(typeTag, "."); ok {
		return after
	}
	return typeTag
}

// NewWindow builds a Window with Application derived from typeTag.
func NewWindow(id WindowID, desktop int, typeTag, host, name string) Window {
	return Window{
		ID:          id,
		Desktop:     desktop,
		Type:        typeTag,
		Application: ApplicationOf(typeTag),
		Host:        host,
		Name:        name,
	}
}
