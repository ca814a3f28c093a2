package shared

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decodeTarget struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name        string
		requestBody string
		want        decodeTarget
		wantErr     error
		errContains string
	}{
		{
			name:        "valid json",
			requestBody: `{"name": "test", "age": 30}`,
			want:        decodeTarget{Name: "test", Age: 30},
		},
		{
			name:        "unknown fields are ignored",
			requestBody: `{"name": "test", "extra": true}`,
			want:        decodeTarget{Name: "test"},
		},
		{
			name:        "invalid json",
			requestBody: `{"name": "test", "age": 30,}`,
			errContains: "invalid character",
		},
		{
			name:        "wrong type",
			requestBody: `{"age": "thirty"}`,
			errContains: "cannot unmarshal",
		},
		{
			name:        "empty body",
			requestBody: "",
			wantErr:     ErrEmptyBody,
		},
		{
			name:        "trailing data",
			requestBody: `{"name": "a"} {"name": "b"}`,
			errContains: "unexpected data",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(tc.requestBody))

			var got decodeTarget
			err := DecodeJSON(req, &got)

			switch {
			case tc.wantErr != nil:
				assert.ErrorIs(t, err, tc.wantErr)
			case tc.errContains != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errContains)
			default:
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestDecodeJSONNoBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	var got decodeTarget
	assert.ErrorIs(t, DecodeJSON(req, &got), ErrEmptyBody)
}
