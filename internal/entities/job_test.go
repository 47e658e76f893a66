package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_NewJob_ActiveFlag(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)

	tests := []struct {
		name     string
		deadline *time.Time
		active   bool
	}{
		{"no deadline", nil, true},
		{"deadline in the past", &past, false},
		{"deadline in the future", &future, true},
		{"deadline equals creation time", &now, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			job := NewJob("Cook", "desc", "req", test.deadline, now)
			assert.Equal(t, test.active, job.IsActive)
		})
	}
}

func Test_Job_DeadlinePassed_IgnoresStoredFlag(t *testing.T) {
	created := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	deadline := created.Add(time.Hour)

	job := NewJob("Cook", "desc", "req", &deadline, created)
	assert.True(t, job.IsActive)

	assert.False(t, job.DeadlinePassed(created))
	assert.True(t, job.DeadlinePassed(deadline.Add(time.Second)))
	assert.True(t, job.IsActive)
}
