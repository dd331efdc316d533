package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLocalTimeJSONFormat(t *testing.T) {
	ts := LocalTime(time.Date(2024, 5, 23, 14, 30, 5, 0, time.Local))

	b, err := json.Marshal(ts)
	require.NoError(t, err)
	require.Equal(t, `"2024-05-23 14:30:05"`, string(b))

	var back LocalTime
	require.NoError(t, json.Unmarshal(b, &back))
	require.True(t, ts.Time().Equal(back.Time()))
}

func TestLocalTimeScan(t *testing.T) {
	var ts LocalTime

	require.NoError(t, ts.Scan(time.Date(2024, 5, 23, 14, 30, 5, 0, time.Local)))
	require.Equal(t, 2024, ts.Time().Year())

	require.NoError(t, ts.Scan("2024-05-23 14:30:05"))
	require.Equal(t, 30, ts.Time().Minute())

	require.NoError(t, ts.Scan(nil))
	require.True(t, ts.IsZero())

	require.Error(t, ts.Scan(42))
}
