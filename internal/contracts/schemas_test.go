package contracts

import (
	"strings"
	"testing"
	"testing/fstest"

	"joytop-admin-service/internal/core/domain"
	"joytop-admin-service/schemas"

	"github.com/stretchr/testify/require"
)

func TestEmbeddedSchemasCompile(t *testing.T) {
	v, err := NewPayloadValidator(schemas.SchemasFS)
	require.NoError(t, err)

	require.True(t, v.Has("districts", domain.OpCreate))
	require.True(t, v.Has("banners", domain.OpCreate))
	require.True(t, v.Has("properties", domain.OpPatch))
	require.False(t, v.Has("payments", domain.OpCreate))
}

func TestPayloadValidator_Validate(t *testing.T) {
	v, err := NewPayloadValidator(schemas.SchemasFS)
	require.NoError(t, err)

	tests := []struct {
		name      string
		resource  string
		op        string
		payload   domain.Payload
		wantError bool
	}{
		{
			name:     "valid district",
			resource: "districts",
			op:       domain.OpCreate,
			payload:  domain.Payload{Fields: map[string]any{"name": "Chilonzor", "city": 1}},
		},
		{
			name:      "district without city",
			resource:  "districts",
			op:        domain.OpCreate,
			payload:   domain.Payload{Fields: map[string]any{"name": "Chilonzor"}},
			wantError: true,
		},
		{
			name:      "empty patch",
			resource:  "districts",
			op:        domain.OpPatch,
			payload:   domain.Payload{Fields: map[string]any{}},
			wantError: true,
		},
		{
			name:     "banner with uploaded image",
			resource: "banners",
			op:       domain.OpCreate,
			payload: domain.Payload{
				Fields: map[string]any{"title": "Весна", "position": int64(1)},
				Files:  []domain.FileField{{FieldName: "image", FileName: "spring.png", Content: strings.NewReader("x")}},
			},
		},
		{
			name:      "banner link must be uri",
			resource:  "banners",
			op:        domain.OpPatch,
			payload:   domain.Payload{Fields: map[string]any{"link": "not a uri"}},
			wantError: true,
		},
		{
			name:      "unknown property status",
			resource:  "properties",
			op:        domain.OpPatch,
			payload:   domain.Payload{Fields: map[string]any{"status": "deleted"}},
			wantError: true,
		},
		{
			name:     "resource without schema",
			resource: "payments",
			op:       domain.OpCreate,
			payload:  domain.Payload{Fields: map[string]any{"anything": true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.resource, tt.op, tt.payload)
			if tt.wantError {
				require.ErrorIs(t, err, domain.ErrPayloadInvalid)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNewPayloadValidator_BrokenSchema(t *testing.T) {
	fsys := fstest.MapFS{
		"payloads/cities/create.json": {Data: []byte(`{"type": 42}`)},
	}
	_, err := NewPayloadValidator(fsys)
	require.Error(t, err)
}

func TestKeyFromPath(t *testing.T) {
	key, ok := keyFromPath("payloads/tariffs/update.json")
	require.True(t, ok)
	require.Equal(t, "tariffs/update", key)

	_, ok = keyFromPath("payloads/readme.json")
	require.False(t, ok)
}
