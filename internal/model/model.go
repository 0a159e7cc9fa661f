// Package model defines the inventory entities and their closed value sets.
package model

import "strings"

// Entity is implemented by every stored record.
type Entity interface {
	GetID() string
	SetID(id string)
}

// Enum is implemented by the string types that only admit a fixed set of values.
type Enum interface {
	Valid() bool
	Values() []string
}

func oneOf[T ~string](v T, values ...T) bool {
	for _, candidate := range values {
		if v == candidate {
			return true
		}
	}
	return false
}

func names[T ~string](values ...T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
