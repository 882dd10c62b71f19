package watch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerPeriodicCheck(t *testing.T) {
	s, err := NewScheduler()
	require.NoError(t, err)

	triggered := make(chan string, 8)
	id, err := s.SchedulePeriodicCheck(50*time.Millisecond, func(source string) {
		select {
		case triggered <- source:
		default:
		}
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	s.Start()
	defer func() { require.NoError(t, s.Stop(context.Background())) }()

	assert.Equal(t, SourceSchedule, waitTrigger(t, triggered))
}

func TestSchedulerRejectsNonPositiveInterval(t *testing.T) {
	s, err := NewScheduler()
	require.NoError(t, err)
	defer func() { _ = s.Stop(context.Background()) }()

	_, err = s.SchedulePeriodicCheck(0, func(string) {})
	require.Error(t, err)
}
