package postgres_test

import "time"

func sqlmockTime() time.Time {
	return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
}
