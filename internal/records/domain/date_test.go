package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("plain calendar date", func(t *testing.T) {
		d, err := ParseDate("2024-01-10")
		require.NoError(t, err)
		assert.Equal(t, Date("2024-01-10"), d)
	})

	t.Run("timestamp keeps date part", func(t *testing.T) {
		d, err := ParseDate("2024-01-10T00:00:00.000Z")
		require.NoError(t, err)
		assert.Equal(t, Date("2024-01-10"), d)
	})

	t.Run("empty is zero", func(t *testing.T) {
		d, err := ParseDate("  ")
		require.NoError(t, err)
		assert.True(t, d.IsZero())
	})

	t.Run("garbage fails", func(t *testing.T) {
		_, err := ParseDate("10/01/2024")
		assert.Error(t, err)
	})
}

func TestDate_AddDays(t *testing.T) {
	start := Date("2024-01-10")

	d, err := start.AddDays(5)
	require.NoError(t, err)
	assert.Equal(t, Date("2024-01-15"), d)

	d, err = start.AddDays(0)
	require.NoError(t, err)
	assert.Equal(t, start, d)

	d, err = Date("2024-02-27").AddDays(3)
	require.NoError(t, err)
	assert.Equal(t, Date("2024-03-01"), d, "leap year")

	_, err = Date("").AddDays(1)
	assert.Error(t, err)
}

func TestUniqueIDs(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, UniqueIDs([]string{"a", "b", "a", "", "c", "b"}))
	assert.Empty(t, UniqueIDs(nil))
}
