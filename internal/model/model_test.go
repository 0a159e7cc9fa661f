package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestEnumsAcceptExactlyTheirValues(t *testing.T) {
	enums := map[string]func(string) Enum{
		"server_status": func(s string) Enum { return ServerStatus(s) },
		"host_type":     func(s string) Enum { return HostType(s) },
		"host_status":   func(s string) Enum { return HostStatus(s) },
		"ip_type":       func(s string) Enum { return IPType(s) },
		"allocation":    func(s string) Enum { return IPAllocation(s) },
		"entity_type":   func(s string) Enum { return EntityType(s) },
		"role":          func(s string) Enum { return AssignmentRole(s) },
	}

	for name, mk := range enums {
		t.Run(name, func(t *testing.T) {
			for _, v := range mk("").Values() {
				assert.True(t, mk(v).Valid(), v)
			}
			rapid.Check(t, func(rt *rapid.T) {
				s := rapid.String().Draw(rt, "value")
				e := mk(s)
				assert.Equal(rt, contains(e.Values(), s), e.Valid())
			})
		})
	}
}

func TestHostTypeUsesHyphenatedBareMetal(t *testing.T) {
	assert.True(t, HostType("bare-metal").Valid())
	assert.False(t, HostType("bare_metal").Valid())
	assert.False(t, HostType("VM").Valid())
}

func TestPageNormalize(t *testing.T) {
	assert.Equal(t, Page{Skip: 0, Limit: DefaultLimit}, Page{Skip: -3, Limit: 0}.Normalize())
	assert.Equal(t, Page{Skip: 5, Limit: 7}, Page{Skip: 5, Limit: 7}.Normalize())
	assert.Equal(t, DefaultPage(), Page{}.Normalize())
}

func TestStringPtr(t *testing.T) {
	assert.Nil(t, StringPtr(""))
	assert.Nil(t, StringPtr("  "))
	assert.Equal(t, "x", Deref(StringPtr("x")))
	assert.Equal(t, "", Deref(nil))
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
