package cadence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIntervalLabel(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0m"},
		{time.Minute, "1m"},
		{5*time.Minute + 30*time.Second, "6m"},
		{10 * time.Minute, "10m"},
		{59*time.Minute + 40*time.Second, "1h"},
		{3 * time.Hour, "3h"},
		{23*time.Hour + 40*time.Minute, "1d"},
		{4 * day, "4d"},
		{29 * day, "29d"},
		{45 * day, "2mo"},
		{300 * day, "10mo"},
		{400 * day, "1y"},
		{3650 * day, "10y"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IntervalLabel(tt.d), "IntervalLabel(%s)", tt.d)
	}
}
