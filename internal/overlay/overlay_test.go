package overlay

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"amr-fleet-monitor/internal/model"
)

func TestComputeRates(t *testing.T) {
	testCases := []struct {
		name     string
		stats    model.FleetStats
		expected Rates
	}{
		{
			name:     "Empty fleet",
			stats:    model.FleetStats{},
			expected: Rates{},
		},
		{
			name:     "Empty fleet ignores other fields",
			stats:    model.FleetStats{Total: 0, Moving: 3, Error: 2, AverageBattery: 50},
			expected: Rates{},
		},
		{
			name:     "Seed fleet",
			stats:    model.FleetStats{Total: 5, Moving: 2, Error: 1},
			expected: Rates{Activation: 40, Error: 20},
		},
		{
			name:     "Rounds half up",
			stats:    model.FleetStats{Total: 8, Moving: 1, Error: 3},
			expected: Rates{Activation: 13, Error: 38},
		},
		{
			name:     "Rounds down",
			stats:    model.FleetStats{Total: 3, Moving: 1, Error: 2},
			expected: Rates{Activation: 33, Error: 67},
		},
		{
			name:     "Whole fleet moving",
			stats:    model.FleetStats{Total: 4, Moving: 4},
			expected: Rates{Activation: 100, Error: 0},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ComputeRates(tc.stats))
		})
	}
}

func TestLegend_CoversEveryStatus(t *testing.T) {
	var statuses []model.RobotStatus
	for _, entry := range Legend() {
		statuses = append(statuses, entry.Status)
		assert.NotEmpty(t, entry.Color)
	}
	assert.Equal(t, []model.RobotStatus{
		model.RobotStatusIdle,
		model.RobotStatusMoving,
		model.RobotStatusCharging,
		model.RobotStatusError,
	}, statuses)
}

func TestRender(t *testing.T) {
	out := ansi.Strip(Render(model.FleetStats{Total: 5, Idle: 1, Moving: 2, Charging: 1, Error: 1, AverageBattery: 58.8}))

	for _, want := range []string{"Idle", "Moving", "Charging", "Error", "Fleet metrics", "58.8%", "40%", "20%"} {
		assert.Contains(t, out, want)
	}
}

func TestRender_EmptyFleet(t *testing.T) {
	out := ansi.Strip(Render(model.FleetStats{}))
	assert.Contains(t, out, "Activation rate")
	assert.Contains(t, out, "0%")
}
