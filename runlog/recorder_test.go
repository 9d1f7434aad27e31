package runlog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_StartAndFinish(t *testing.T) {
	dir := t.TempDir()
	recorder := NewRecorder(dir)
	recorder.now = func() time.Time {
		return time.Date(2025, time.December, 10, 12, 0, 0, 0, time.UTC)
	}

	record, err := recorder.Start("SN1 2JG", "2")
	require.NoError(t, err)
	assert.Equal(t, StatusStarted, record.Status)
	_, err = uuid.Parse(record.ID)
	require.NoError(t, err)

	record.UPRN = "10001235"
	record.Streams = 4
	require.NoError(t, recorder.Finish(record, nil))

	path := filepath.Join(dir, "lookup-"+record.ID+".json")
	payload, err := os.ReadFile(path)
	require.NoError(t, err)

	var stored LookupRecord
	require.NoError(t, json.Unmarshal(payload, &stored))
	assert.Equal(t, StatusCompleted, stored.Status)
	assert.Equal(t, "SN1 2JG", stored.Postcode)
	assert.Equal(t, "10001235", stored.UPRN)
	assert.Equal(t, 4, stored.Streams)
	assert.Empty(t, stored.Error)
}

func TestRecorder_FinishWithError(t *testing.T) {
	dir := t.TempDir()
	recorder := NewRecorder(dir)

	record, err := recorder.Start("ZZ9 9ZZ", "")
	require.NoError(t, err)

	require.NoError(t, recorder.Finish(record, assert.AnError))
	assert.Equal(t, StatusFailed, record.Status)
	assert.NotEmpty(t, record.Error)
}

func TestRecorder_RequiresDirectory(t *testing.T) {
	recorder := NewRecorder("")
	_, err := recorder.Start("SN1 2JG", "")
	assert.Error(t, err)
}
