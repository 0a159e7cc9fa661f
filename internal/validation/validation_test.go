package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/martinsuchenak/assetcompass/internal/model"
)

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *Error
	require.True(t, errors.As(err, &verr), "expected *validation.Error, got %v", err)
	return verr.Fields
}

func TestDecodeHost(t *testing.T) {
	body := `{"hostname":"web-01","server_id":"srv-1","type":"vm","status":"running","cpu":4,"memory_gb":16}`

	var h model.Host
	require.NoError(t, Decode(strings.NewReader(body), &h))
	assert.Equal(t, "web-01", h.Hostname)
	assert.Equal(t, model.HostVM, h.Type)
	assert.Equal(t, model.HostRunning, h.Status)
	assert.Equal(t, 4, h.CPU)
	assert.Equal(t, 16, h.MemoryGB)
	assert.Nil(t, h.OSID)
}

func TestDecodeZeroIntsArePresent(t *testing.T) {
	body := `{"hostname":"h","server_id":"s","type":"container","status":"stopped","cpu":0,"memory_gb":0}`
	var h model.Host
	assert.NoError(t, DecodeBytes([]byte(body), &h))
}

func TestDecodeMissingFields(t *testing.T) {
	var h model.Host
	err := DecodeBytes([]byte(`{"hostname":"h","type":"vm","status":"running","cpu":null}`), &h)

	fields := fieldErrors(t, err)
	assert.Equal(t, "is required", fields["server_id"])
	assert.Equal(t, "is required", fields["cpu"])
	assert.Equal(t, "is required", fields["memory_gb"])
	assert.NotContains(t, fields, "os_id")
}

func TestDecodeWrongPrimitiveType(t *testing.T) {
	var h model.Host
	err := DecodeBytes([]byte(`{"hostname":"h","server_id":"s","type":"vm","status":"running","cpu":"four","memory_gb":1}`), &h)
	assert.Equal(t, "must be an integer", fieldErrors(t, err)["cpu"])

	err = DecodeBytes([]byte(`{"hostname":"h","server_id":"s","type":"vm","status":"running","cpu":1.5,"memory_gb":1}`), &h)
	assert.Equal(t, "must be an integer", fieldErrors(t, err)["cpu"])

	var dc model.Datacenter
	err = DecodeBytes([]byte(`{"name":7,"location":"x"}`), &dc)
	assert.Equal(t, "must be a string", fieldErrors(t, err)["name"])
}

func TestDecodeEnumOutOfSet(t *testing.T) {
	var s model.Server
	err := DecodeBytes([]byte(`{"hostname":"h","datacenter_id":"dc","model":"m","serial_number":"sn","status":"broken"}`), &s)
	assert.Equal(t, "must be one of: online, offline, maintenance", fieldErrors(t, err)["status"])
}

func TestDecodeEmail(t *testing.T) {
	var p model.Person
	err := DecodeBytes([]byte(`{"name":"A","email":"not-an-email","role":"r","department":"d"}`), &p)
	assert.Equal(t, "must be a valid email address", fieldErrors(t, err)["email"])

	require.NoError(t, DecodeBytes([]byte(`{"name":"A","email":"a@example.com","role":"r","department":"d","phone":null}`), &p))
	assert.Nil(t, p.Phone)
}

func TestDecodeEOLDateIsFreeText(t *testing.T) {
	var os model.OperatingSystem
	require.NoError(t, DecodeBytes([]byte(`{"name":"Debian","version":"12","vendor":"Debian","eol_date":"2028-06-01"}`), &os))
	assert.Equal(t, "2028-06-01", model.Deref(os.EOLDate))

	require.NoError(t, DecodeBytes([]byte(`{"name":"Debian","version":"12","vendor":"Debian","eol_date":"June 2028"}`), &os))
	assert.Equal(t, "June 2028", model.Deref(os.EOLDate))
}

func TestDecodeEmptyStringsArePresent(t *testing.T) {
	var dc model.Datacenter
	require.NoError(t, DecodeBytes([]byte(`{"name":"","location":""}`), &dc))
	assert.Empty(t, dc.Name)

	err := DecodeBytes([]byte(`{"name":null,"location":""}`), &dc)
	assert.Equal(t, "is required", fieldErrors(t, err)["name"])

	var p model.Person
	err = DecodeBytes([]byte(`{"name":"","email":"","role":"","department":""}`), &p)
	fields := fieldErrors(t, err)
	assert.Equal(t, "must be a valid email address", fields["email"])
	assert.NotContains(t, fields, "name")

	var s model.Server
	err = DecodeBytes([]byte(`{"hostname":"","datacenter_id":"dc","model":"","serial_number":"","status":""}`), &s)
	assert.Contains(t, fieldErrors(t, err), "status")
}

func TestDecodeRejectsNonObjects(t *testing.T) {
	var dc model.Datacenter
	for _, body := range []string{"", "[]", `"x"`, "{", "null"} {
		err := DecodeBytes([]byte(body), &dc)
		var verr *Error
		assert.True(t, errors.As(err, &verr), "body %q", body)
	}
}

func TestAssignmentEntityTypeIsChecked(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		et := rapid.SampledFrom([]string{"datacenter", "server", "host", "ip", "person", "HOST", "os"}).Draw(rt, "entity_type")
		body := `{"person_id":"per-1","entity_type":"` + et + `","entity_id":"anything","role":"owner"}`

		var a model.Assignment
		err := DecodeBytes([]byte(body), &a)
		if model.EntityType(et).Valid() {
			assert.NoError(rt, err)
		} else {
			assert.Error(rt, err)
		}
	})
}

func TestErrorString(t *testing.T) {
	err := &Error{Message: "validation failed", Fields: map[string]string{"b": "is required", "a": "is required"}}
	assert.Equal(t, "validation failed: a is required; b is required", err.Error())
}
