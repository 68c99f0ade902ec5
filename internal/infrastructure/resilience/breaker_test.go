package resilience

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failing() (interface{}, error) { return nil, errors.New("billing unreachable") }
func succeeding() (interface{}, error) { return "ok", nil }

func tripFast(settings Settings) Settings {
	settings.ReadyToTrip = func(counts Counts) bool {
		return counts.ConsecutiveFailures >= 2
	}
	return settings
}

func TestBreakerStaysClosedOnSuccess(t *testing.T) {
	b := New("entitlement-refresh", RemoteDefaults())

	for i := 0; i < 5; i++ {
		_, err := b.Execute(succeeding)
		require.NoError(t, err)
	}

	assert.Equal(t, StateClosed, b.State())
	counts := b.Counts()
	assert.Equal(t, uint32(5), counts.TotalSuccesses)
	assert.Equal(t, uint32(0), counts.TotalFailures)
}

func TestBreakerTripsOnConsecutiveFailures(t *testing.T) {
	// RemoteDefaults trips on the third consecutive failure
	b := New("entitlement-refresh", RemoteDefaults())

	for i := 0; i < 3; i++ {
		_, err := b.Execute(failing)
		assert.Error(t, err)
	}

	assert.Equal(t, StateOpen, b.State())

	// While open the call is rejected without reaching the service
	_, err := b.Execute(succeeding)
	assert.ErrorIs(t, err, ErrCircuitOpen)
}

func TestBreakerSuccessResetsFailureStreak(t *testing.T) {
	b := New("entitlement-refresh", RemoteDefaults())

	b.Execute(failing)
	b.Execute(failing)
	b.Execute(succeeding)
	b.Execute(failing)
	b.Execute(failing)

	// Never three in a row, so the breaker must still admit calls
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, uint32(2), b.Counts().ConsecutiveFailures)
}

func TestBreakerProbesAfterCoolDown(t *testing.T) {
	b := New("ad-bridge", tripFast(Settings{
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     20 * time.Millisecond,
	}))

	b.Execute(failing)
	b.Execute(failing)
	require.Equal(t, StateOpen, b.State())

	time.Sleep(30 * time.Millisecond)
	require.Equal(t, StateHalfOpen, b.State())

	// Enough successful probes close the breaker again
	for i := 0; i < 2; i++ {
		_, err := b.Execute(succeeding)
		require.NoError(t, err)
	}
	assert.Equal(t, StateClosed, b.State())
}

func TestBreakerFailedProbeReopens(t *testing.T) {
	b := New("ad-bridge", tripFast(Settings{
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     20 * time.Millisecond,
	}))

	b.Execute(failing)
	b.Execute(failing)
	require.Equal(t, StateOpen, b.State())

	time.Sleep(30 * time.Millisecond)
	require.Equal(t, StateHalfOpen, b.State())

	b.Execute(failing)
	assert.Equal(t, StateOpen, b.State())
}

func TestBreakerReportsTransitions(t *testing.T) {
	var transitions []string
	settings := tripFast(Settings{
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     10 * time.Millisecond,
	})
	settings.OnStateChange = func(name string, from, to State) {
		transitions = append(transitions, from.String()+"->"+to.String())
	}

	b := New("entitlement-refresh", settings)
	b.Execute(failing)
	b.Execute(failing)

	time.Sleep(20 * time.Millisecond)
	require.Equal(t, StateHalfOpen, b.State())

	assert.Contains(t, transitions, "closed->open")
	assert.Contains(t, transitions, "open->half-open")
}
