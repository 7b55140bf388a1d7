package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"librarium-backend/internal/utils"
)

func TestDaysOverdue(t *testing.T) {
	due := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("Returned Early", func(t *testing.T) {
		assert.Equal(t, int32(0), utils.DaysOverdue(due.AddDate(0, 0, -3), due))
	})

	t.Run("Returned At Due Instant", func(t *testing.T) {
		assert.Equal(t, int32(0), utils.DaysOverdue(due, due))
	})

	t.Run("Partial Day Late", func(t *testing.T) {
		assert.Equal(t, int32(0), utils.DaysOverdue(due.Add(6*time.Hour), due))
	})

	t.Run("Five Days Late", func(t *testing.T) {
		assert.Equal(t, int32(5), utils.DaysOverdue(due.AddDate(0, 0, 5), due))
	})
}

func TestLateFee(t *testing.T) {
	due := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("On Time Is Free", func(t *testing.T) {
		assert.Equal(t, int32(0), utils.LateFee(due, due, 50))
	})

	t.Run("Five Days At Fifty Cents", func(t *testing.T) {
		assert.Equal(t, int32(250), utils.LateFee(due.AddDate(0, 0, 5), due, 50))
	})
}
