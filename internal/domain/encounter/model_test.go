package encounter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricValue_DecodeNumberAndString(t *testing.T) {
	var m Metrics
	err := json.Unmarshal([]byte(`{"LDL": 100.5, "HDL": 50, "Culture": "negative"}`), &m)
	require.NoError(t, err)

	require.NotNil(t, m["LDL"].Number)
	assert.Equal(t, 100.5, *m["LDL"].Number)
	require.NotNil(t, m["HDL"].Number)
	assert.Equal(t, 50.0, *m["HDL"].Number)
	require.NotNil(t, m["Culture"].Text)
	assert.Equal(t, "negative", *m["Culture"].Text)
}

func TestMetricValue_RejectsStructuredValues(t *testing.T) {
	var m Metrics
	err := json.Unmarshal([]byte(`{"panel": {"nested": true}}`), &m)
	require.Error(t, err)

	err = json.Unmarshal([]byte(`{"series": [1, 2, 3]}`), &m)
	require.Error(t, err)
}

func TestMetricValue_RoundTrip(t *testing.T) {
	in := Metrics{
		"LDL":     NumberMetric(100),
		"Culture": TextMetric("negative"),
	}
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out Metrics
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestMetricValue_String(t *testing.T) {
	assert.Equal(t, "100", NumberMetric(100).String())
	assert.Equal(t, "4.5", NumberMetric(4.5).String())
	assert.Equal(t, "negative", TextMetric("negative").String())
	assert.Equal(t, "", MetricValue{}.String())
}
