package validation_test

import (
	"testing"

	"github.com/km-arc/go-ioc/framework/http/validation"
)

func TestValidate(t *testing.T) {
	rules := validation.Rules{
		"version": "required|name|max:32",
		"speed":   "required|numeric|gt:0",
		"type":    "required|in:x86,x64",
	}
	tests := []struct {
		name  string
		data  map[string]string
		fails map[string]string
	}{
		{"valid", map[string]string{"version": "Core i9", "speed": "3.8", "type": "x64"}, nil},
		{"in is case-insensitive", map[string]string{"version": "Ryzen7", "speed": "5.3", "type": "X86"}, nil},
		{"missing all", map[string]string{}, map[string]string{
			"version": "The version field is required.",
			"speed":   "The speed field is required.",
			"type":    "The type field is required.",
		}},
		{"bad speed", map[string]string{"version": "Ryzen7", "speed": "fast", "type": "x64"}, map[string]string{
			"speed": "The speed must be a number.",
		}},
		{"zero speed", map[string]string{"version": "Ryzen7", "speed": "0", "type": "x64"}, map[string]string{
			"speed": "The speed must be greater than 0.",
		}},
		{"unknown type", map[string]string{"version": "Ryzen7", "speed": "1", "type": "arm"}, map[string]string{
			"type": "The selected type is invalid.",
		}},
		{"bad version chars", map[string]string{"version": "<script>", "speed": "1", "type": "x64"}, map[string]string{
			"version": "The version may only contain letters, numbers, spaces, dots, dashes and underscores.",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validation.Validate(tt.data, rules)
			if errs.Has() != (len(tt.fails) > 0) {
				t.Fatalf("Has: got %v, bag %v", errs.Has(), errs.Bag)
			}
			if len(errs.Bag) != len(tt.fails) {
				t.Errorf("bag size: got %d want %d (%v)", len(errs.Bag), len(tt.fails), errs.Bag)
			}
			for field, msg := range tt.fails {
				if got := errs.First(field); got != msg {
					t.Errorf("%s: got %q want %q", field, got, msg)
				}
				if n := len(errs.Bag[field]); n != 1 {
					t.Errorf("%s: a field stops at its first failure, got %d messages", field, n)
				}
			}
		})
	}
}

func TestValidate_UnknownRulePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown rule")
		}
	}()
	validation.Validate(map[string]string{"a": "b"}, validation.Rules{"a": "shiny"})
}
