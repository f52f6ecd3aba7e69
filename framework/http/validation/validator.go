// Package validation checks flat string input against pipe-separated rules
// such as "required|numeric|gt:0".
package validation

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Errors is the error bag. JSON: {"errors": {"field": ["msg"]}}
type Errors struct {
	Bag map[string][]string `json:"errors"`
}

func (e *Errors) add(field, msg string) {
	if e.Bag == nil {
		e.Bag = make(map[string][]string)
	}
	e.Bag[field] = append(e.Bag[field], msg)
}

// Has reports whether any rule failed.
func (e *Errors) Has() bool { return len(e.Bag) > 0 }

// First returns the first error for a field.
func (e *Errors) First(field string) string {
	if msgs := e.Bag[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Rules maps a field to its pipe-separated rule string.
type Rules map[string]string

// A rule returns an error message, or "" when value passes.
type rule func(field, value, param string) string

var alphaDash = regexp.MustCompile(`^[a-zA-Z0-9 _.-]+$`)

var rules = map[string]rule{
	"required": func(field, value, _ string) string {
		if strings.TrimSpace(value) == "" {
			return fmt.Sprintf("The %s field is required.", field)
		}
		return ""
	},
	"numeric": func(field, value, _ string) string {
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fmt.Sprintf("The %s must be a number.", field)
		}
		return ""
	},
	"max": func(field, value, param string) string {
		n, _ := strconv.Atoi(param)
		if utf8.RuneCountInString(value) > n {
			return fmt.Sprintf("The %s may not be greater than %d characters.", field, n)
		}
		return ""
	},
	"in": func(field, value, param string) string {
		for _, a := range strings.Split(param, ",") {
			if strings.EqualFold(strings.TrimSpace(a), value) {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)
	},
	"gt": func(field, value, param string) string {
		f, _ := strconv.ParseFloat(value, 64)
		t, _ := strconv.ParseFloat(param, 64)
		if f <= t {
			return fmt.Sprintf("The %s must be greater than %s.", field, param)
		}
		return ""
	},
	"name": func(field, value, _ string) string {
		if !alphaDash.MatchString(value) {
			return fmt.Sprintf("The %s may only contain letters, numbers, spaces, dots, dashes and underscores.", field)
		}
		return ""
	},
}

// Validate checks data against rs. Fields are checked in name order and
// each field stops at its first failing rule. Unknown rule names panic.
func Validate(data map[string]string, rs Rules) *Errors {
	errs := &Errors{}
	fields := make([]string, 0, len(rs))
	for field := range rs {
		fields = append(fields, field)
	}
	slices.Sort(fields)

	for _, field := range fields {
		for _, spec := range strings.Split(rs[field], "|") {
			name, param, _ := strings.Cut(strings.TrimSpace(spec), ":")
			if name == "" {
				continue
			}
			check, ok := rules[name]
			if !ok {
				panic("validation: unknown rule " + strconv.Quote(name))
			}
			if msg := check(field, data[field], param); msg != "" {
				errs.add(field, msg)
				break
			}
		}
	}
	return errs
}
