package timeapi

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTime_MarshalJSON_UnmarshallJson(t *testing.T) {
	var res Time
	location, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	now := time.Now().In(location)

	b, err := json.Marshal(now)
	require.NoError(t, err)

	require.NoError(t, json.Unmarshal(b, &res))
	assert.NotEqual(t, now.Format(time.RFC3339), res.String())
	assert.Equal(t, now.UTC().Format(time.RFC3339Nano), res.String())
}

func TestDate_MarshalJSON_UnmarshallJson(t *testing.T) {
	var res struct {
		Start Date `json:"start"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"start":"2024-01-31"}`), &res))
	assert.Equal(t, NewDate(2024, time.January, 31), res.Start)

	b, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"2024-01-31"}`, string(b))

	assert.Error(t, json.Unmarshal([]byte(`{"start":"31/01/2024"}`), &res))
}

func TestDateOf(t *testing.T) {
	algiers, err := time.LoadLocation("Africa/Algiers")
	require.NoError(t, err)

	// 23:30 UTC on the 31st is already the 1st in Algiers (UTC+1)
	instant := time.Date(2024, time.January, 31, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-31", DateOf(instant, time.UTC).String())
	assert.Equal(t, "2024-02-01", DateOf(instant, algiers).String())
	assert.Equal(t, "2024-01-31", DateOf(instant, nil).String())
}

func TestDateComparisons(t *testing.T) {
	d := NewDate(2024, time.January, 15)
	assert.True(t, d.Before(d.AddDays(1)))
	assert.True(t, d.After(d.AddDays(-1)))
	assert.True(t, d.Equal(Date(time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC))))
	assert.False(t, d.Before(d))
	assert.Equal(t, "2024-02-01", NewDate(2024, time.January, 31).AddDays(1).String())
	assert.True(t, Date{}.IsZero())
}
