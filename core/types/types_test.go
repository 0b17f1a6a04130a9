package types

import (
	"testing"

	"github.com/shopspring/decimal"

	"studio-quote/internal/errors"
)

func TestParseEnumerations(t *testing.T) {
	tests := []struct {
		name  string
		parse func(string) (string, error)
		input string
		want  string
	}{
		{"service exact", wrap(ParseServiceType), "mixing", "mixing"},
		{"service case-insensitive", wrap(ParseServiceType), "BUNDLE", "bundle"},
		{"size camel case", wrap(ParseProjectSize), "epalbum", "epAlbum"},
		{"size stem mastering", wrap(ParseProjectSize), "stemMastering", "stemMastering"},
		{"add-on tv track", wrap(ParseAddOnKey), "TVTRACK", "tvTrack"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.parse(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func wrap[T ~string](fn func(string) (T, error)) func(string) (string, error) {
	return func(s string) (string, error) {
		v, err := fn(s)
		return string(v), err
	}
}

func TestParseUnknownIsInputError(t *testing.T) {
	if _, err := ParseServiceType("podcast"); !errors.IsType(err, errors.TypeInput) {
		t.Errorf("expected INPUT_ERROR, got %v", err)
	}
	if _, err := ParseProjectSize("boxset"); !errors.IsType(err, errors.TypeInput) {
		t.Errorf("expected INPUT_ERROR, got %v", err)
	}
	if _, err := ParseAddOnKey("vinyl"); !errors.IsType(err, errors.TypeInput) {
		t.Errorf("expected INPUT_ERROR, got %v", err)
	}
}

func TestPageValidity(t *testing.T) {
	for _, p := range Pages {
		if !p.IsValid() {
			t.Errorf("%s should be valid", p)
		}
	}
	if Page("checkout").IsValid() {
		t.Error("checkout is not part of the flow")
	}
}

func TestFormatAmount(t *testing.T) {
	if got := CurrencyUSD.FormatAmount(decimal.NewFromInt(2500)); got != "$2500" {
		t.Errorf("got %q", got)
	}
	if got := CurrencyUSD.FormatAmount(decimal.RequireFromString("12.5")); got != "$12.50" {
		t.Errorf("got %q", got)
	}
}
