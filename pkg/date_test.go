package pkg

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOf_UsesLocation(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	instant := time.Date(2024, 3, 9, 20, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-09", DateOf(instant).String())
	assert.Equal(t, "2024-03-10", DateOf(instant.In(tokyo)).String())
}

func TestDate_Arithmetic(t *testing.T) {
	d := NewDate(2024, 2, 28)
	assert.Equal(t, "2024-02-29", d.AddDays(1).String())
	assert.Equal(t, "2024-03-01", d.AddDays(2).String())
	assert.True(t, d.Before(d.AddDays(1)))
	assert.True(t, d.AddDays(1).After(d))
	assert.True(t, d.Equal(NewDate(2024, 2, 28)))
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		Date Date `json:"date"`
	}

	raw, err := json.Marshal(payload{Date: NewDate(2024, 1, 5)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-01-05"}`, string(raw))

	raw, err = json.Marshal(payload{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":null}`, string(raw))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2023-12-31"}`), &p))
	assert.Equal(t, NewDate(2023, 12, 31), p.Date)

	require.NoError(t, json.Unmarshal([]byte(`{"date":null}`), &p))
	assert.True(t, p.Date.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"date":"31/12/2023"}`), &p))
	assert.Error(t, json.Unmarshal([]byte(`{"date":20231231}`), &p))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, time.June, d.Month())

	_, err = ParseDate("2024-13-01")
	assert.Error(t, err)
}
