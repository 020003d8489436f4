package book

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	t.Run("marshal", func(t *testing.T) {
		d := NewDate(time.Date(2026, 8, 31, 15, 4, 5, 0, time.Local))
		b, err := json.Marshal(d)
		require.NoError(t, err)
		assert.Equal(t, `"2026-08-31"`, string(b))
	})

	t.Run("unmarshal", func(t *testing.T) {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(`"2026-08-31"`), &d))
		assert.Equal(t, 2026, d.Year())
		assert.Equal(t, time.August, d.Month())
		assert.Equal(t, 31, d.Day())
	})

	t.Run("unmarshal rejects garbage", func(t *testing.T) {
		var d Date
		assert.Error(t, json.Unmarshal([]byte(`"31/08/2026"`), &d))
	})

	t.Run("round trip", func(t *testing.T) {
		original := NewDate(time.Now())
		b, err := json.Marshal(original)
		require.NoError(t, err)
		var decoded Date
		require.NoError(t, json.Unmarshal(b, &decoded))
		assert.True(t, original.Equal(decoded.Time))
	})
}

func TestBookJSONShape(t *testing.T) {
	b := Book{
		ID:            1,
		Title:         "Dune",
		Author:        "Frank Herbert",
		ISBN:          "9780441013593",
		PublishedDate: NewDate(time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)),
	}

	raw, err := json.Marshal(b)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, float64(1), m["id"])
	assert.Equal(t, "Dune", m["title"])
	assert.Equal(t, "Frank Herbert", m["author"])
	assert.Equal(t, "9780441013593", m["isbn"])
	assert.Equal(t, "2026-08-31", m["publishedDate"])
}
