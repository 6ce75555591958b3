package constants

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateLayouts(t *testing.T) {
	t.Run("canonical layout is day first", func(t *testing.T) {
		d := time.Date(2020, time.January, 2, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, "02/01/2020", d.Format(DateLayout))
	})

	t.Run("alternative layouts", func(t *testing.T) {
		d := time.Date(2020, time.January, 2, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, "01/02/2020", d.Format(MonthFirstLayout))
		assert.Equal(t, "2020/01/02", d.Format(YearFirstLayout))
	})
}

func TestLockConstants(t *testing.T) {
	assert.Less(t, LockRetryInterval, DefaultLockTimeout)
	assert.Less(t, LockRetryInterval, time.Second, "should retry quickly")
}

func TestColumns(t *testing.T) {
	assert.Equal(t, WorkLogColumns-1, ColumnNotes)
	assert.LessOrEqual(t, DefaultMaxRetries, MaxRetriesLimit)
}
