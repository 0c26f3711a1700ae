package observability

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveBatch(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObserveBatch("oils", "success", 20*time.Millisecond)
	m.ObserveBatch("oils", "success", 30*time.Millisecond)
	m.ObserveBatch("oils", "partial", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.batches.WithLabelValues("oils", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.batches.WithLabelValues("oils", "partial")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestMetrics_ObserveItemsSkipsZero(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObserveItems("industries", "added", 3)
	m.ObserveItems("industries", "deleted", 0)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.items.WithLabelValues("industries", "added")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.items))
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&buf, "debug", "json")
	require.NoError(t, err)

	logger.WithField("list", "oils").Debug("hello")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "oils", line["list"])
	assert.Equal(t, "hello", line["msg"])
}

func TestNewLogger_Rejects(t *testing.T) {
	_, err := NewLogger("loud", "json")
	assert.Error(t, err)

	_, err = NewLogger("info", "xml")
	assert.Error(t, err)
}
