package logging

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	loc := time.FixedZone("UTC+2", 2*60*60)
	log := New(&buf, "debug", loc)

	log.WithField("component", "test").Info("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "test", entry["component"])

	ts, err := time.Parse(time.RFC3339Nano, entry["ts"].(string))
	require.NoError(t, err)
	_, offset := ts.Zone()
	assert.Equal(t, 2*60*60, offset)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}

func TestNew_InvalidLevel(t *testing.T) {
	log := New(&bytes.Buffer{}, "loud", nil)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}
