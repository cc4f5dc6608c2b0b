package spamcheck

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Text
		wantErr bool
	}{
		{"string", `"hello"`, "hello", false},
		{"escaped string", `"line\nnext é"`, "line\nnext é", false},
		{"int", `12345`, "12345", false},
		{"float", `1.5e3`, "1.5e3", false},
		{"bool", `true`, "true", false},
		{"null", `null`, "", false},
		{"object", `{"a": 1, "b": [1, 2]}`, `{"a":1,"b":[1,2]}`, false},
		{"array", `[ "x", 2 ]`, `["x",2]`, false},
		{"garbage", `nope`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var txt Text
			err := txt.UnmarshalJSON([]byte(tt.in))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, txt)
		})
	}
}

func TestRequest(t *testing.T) {
	t.Run("number text and default platform", func(t *testing.T) {
		var req Request
		require.NoError(t, json.Unmarshal([]byte(`{"text": 42}`), &req))
		require.NoError(t, req.Validate())
		assert.Equal(t, "42", req.Message())
		assert.Equal(t, DefaultPlatform, req.Platform)
		assert.Equal(t, `msg:"42", platform:email`, req.String())
	})

	t.Run("platform normalized", func(t *testing.T) {
		var req Request
		require.NoError(t, json.Unmarshal([]byte(`{"text": "hi", "platform": " SMS "}`), &req))
		require.NoError(t, req.Validate())
		assert.Equal(t, "sms", req.Platform)
	})

	t.Run("missing text", func(t *testing.T) {
		var req Request
		require.NoError(t, json.Unmarshal([]byte(`{"platform": "sms"}`), &req))
		require.Error(t, req.Validate())
		assert.Empty(t, req.Message())
	})

	t.Run("null text is present but empty", func(t *testing.T) {
		var req Request
		require.NoError(t, json.Unmarshal([]byte(`{"text": null}`), &req))
		// encoding/json leaves the pointer nil for null
		require.Error(t, req.Validate())
	})
}

func TestResponse(t *testing.T) {
	r := Response{Label: "spam", Prediction: "spam", Probability: 0.9, Fallback: true, Diagnostic: "model failed"}
	assert.True(t, r.IsSpam())
	assert.Equal(t, "spam: 0.900, fallback, model failed", r.String())

	r = Response{Label: "ham", Probability: 0.25}
	assert.False(t, r.IsSpam())
	assert.Equal(t, "ham: 0.250", r.String())

	data, err := json.Marshal(Response{Label: "ham", Prediction: "ham", Probability: 0.8})
	require.NoError(t, err)
	assert.JSONEq(t, `{"label":"ham","prediction":"ham","probability":0.8,"explanation":"","fallback":false}`, string(data))
}

func TestPages(t *testing.T) {
	assert.Equal(t, 1, Pages(0, 10))
	assert.Equal(t, 1, Pages(10, 10))
	assert.Equal(t, 2, Pages(11, 10))
	assert.Equal(t, 1, Pages(5, 0))
}
