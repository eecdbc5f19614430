package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		valid bool
		raw   string
	}{
		{"rfc3339", `"2024-04-17T10:00:00Z"`, true, "2024-04-17T10:00:00Z"},
		{"offset", `"2024-04-17T10:00:00+02:00"`, true, "2024-04-17T10:00:00+02:00"},
		{"unix millis", `1713348000000`, true, "1713348000000"},
		{"garbage string", `"yesterday-ish"`, false, "yesterday-ish"},
		{"null", `null`, false, ""},
		{"bool", `true`, false, "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.in), &ts))
			assert.Equal(t, tt.valid, ts.Valid)
			assert.Equal(t, tt.raw, ts.Raw)
		})
	}
}

func TestEventDecodeToleratesBadTimestamp(t *testing.T) {
	body := `{"id":"e1","type":"gift_sent","timestamp":"not a date","data":{"carrier":"UPS"}}`
	var e TouchpointEvent
	require.NoError(t, json.Unmarshal([]byte(body), &e))
	assert.Equal(t, EventGiftSent, e.Type)
	assert.False(t, e.Timestamp.Valid)
	assert.Equal(t, "UPS", e.Data["carrier"])

	out, err := json.Marshal(e)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"timestamp":"not a date"`)
}

func TestTimestampMarshalValid(t *testing.T) {
	ts := NewTimestamp(time.Date(2024, 4, 17, 9, 30, 0, 0, time.UTC))
	out, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2024-04-17T09:30:00Z"`, string(out))
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0.0, ClampScore(-5))
	assert.Equal(t, 100.0, ClampScore(140))
	assert.Equal(t, 42.5, ClampScore(42.5))
}

func TestDistributionTotal(t *testing.T) {
	d := EngagementDistribution{High: 2, Medium: 1, Low: 1, VeryLow: 1}
	assert.Equal(t, 5, d.Total())
}
