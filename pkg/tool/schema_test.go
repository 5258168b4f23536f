package tool

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchema_EmptyFragmentFails(t *testing.T) {
	_, err := NewSchema(nil)
	assert.ErrorIs(t, err, ErrEmptySchema)

	_, err = NewSchema(Fragment{})
	assert.ErrorIs(t, err, ErrEmptySchema)
}

func TestNewSchema_SingleFragmentAllowedKeys(t *testing.T) {
	s, err := NewSchema(Fragment{
		"city":  {Type: "string", Description: "city name", Required: true},
		"units": {Type: "string", Description: "metric or imperial"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"city", "units"}, s.AllowedKeys())
	assert.Equal(t, []string{"city"}, s.Required())
}

func TestNewMultiSchema_EmptyListFails(t *testing.T) {
	_, err := NewMultiSchema(nil)
	assert.ErrorIs(t, err, ErrEmptySchema)

	_, err = NewMultiSchema([]Fragment{})
	assert.ErrorIs(t, err, ErrEmptySchema)

	_, err = NewMultiSchema([]Fragment{{"a": {Type: "string"}}, {}})
	assert.ErrorIs(t, err, ErrEmptySchema)
}

func TestNewMultiSchema_AllowedKeysUnion(t *testing.T) {
	s, err := NewMultiSchema([]Fragment{
		{"city": {Type: "string", Required: true}},
		{"lat": {Type: "number", Required: true}, "lon": {Type: "number", Required: true}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"city", "lat", "lon"}, s.AllowedKeys())
}

func TestParameterSchema_StringIsContentComplete(t *testing.T) {
	frag := Fragment{
		"text": {Type: "string", Description: "text to transform", Required: true},
	}
	s, err := NewSchema(frag)
	require.NoError(t, err)

	var decoded map[string]Field
	require.NoError(t, json.Unmarshal([]byte(s.String()), &decoded))
	assert.Equal(t, frag, Fragment(decoded))

	// Repeated serialization is stable.
	assert.Equal(t, s.String(), s.String())
}

func TestParameterSchema_StringMultiIsList(t *testing.T) {
	s, err := NewMultiSchema([]Fragment{
		{"city": {Type: "string", Required: true}},
		{"lat": {Type: "number", Required: true}},
	})
	require.NoError(t, err)

	var decoded []map[string]Field
	require.NoError(t, json.Unmarshal([]byte(s.String()), &decoded))
	assert.Len(t, decoded, 2)
}

func TestParameterSchema_Validate(t *testing.T) {
	s, err := NewSchema(Fragment{
		"city":  {Type: "string", Required: true},
		"units": {Type: "string"},
	})
	require.NoError(t, err)

	assert.NoError(t, s.Validate(map[string]any{"city": "Berlin"}))
	assert.NoError(t, s.Validate(map[string]any{"city": "Berlin", "units": "metric"}))

	err = s.Validate(map[string]any{"units": "metric"})
	assert.ErrorIs(t, err, ErrValidation)

	err = s.Validate(map[string]any{"city": "Berlin", "bogus": true})
	assert.ErrorIs(t, err, ErrValidation)

	err = s.Validate(map[string]any{"city": 42})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParameterSchema_ValidateMultiAcceptsAnyShape(t *testing.T) {
	s, err := NewMultiSchema([]Fragment{
		{"city": {Type: "string", Required: true}},
		{"lat": {Type: "number", Required: true}, "lon": {Type: "number", Required: true}},
	})
	require.NoError(t, err)

	assert.NoError(t, s.Validate(map[string]any{"city": "Berlin"}))
	assert.NoError(t, s.Validate(map[string]any{"lat": 52.5, "lon": 13.4}))
	assert.ErrorIs(t, s.Validate(map[string]any{"lat": 52.5}), ErrValidation)
}

func TestSchemaFromParams_NoParams(t *testing.T) {
	s, err := schemaFromParams(nil)
	require.NoError(t, err)

	assert.Empty(t, s.AllowedKeys())
	assert.Empty(t, s.Required())
	assert.NoError(t, s.Validate(nil))
	assert.ErrorIs(t, s.Validate(map[string]any{"extra": 1}), ErrValidation)
}
