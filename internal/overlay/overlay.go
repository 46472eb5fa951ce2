// Package overlay renders the fleet status overlay: a status legend and a
// metrics panel derived from model.FleetStats.
package overlay

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"amr-fleet-monitor/internal/model"
)

// Rates are the percentages shown in the metrics panel.
type Rates struct {
	Activation int `json:"activation_rate"`
	Error      int `json:"error_rate"`
}

// ComputeRates derives the activation and error percentages. Both are 0 for
// an empty fleet.
func ComputeRates(stats model.FleetStats) Rates {
	if stats.Total == 0 {
		return Rates{}
	}
	return Rates{
		Activation: percent(stats.Moving, stats.Total),
		Error:      percent(stats.Error, stats.Total),
	}
}

func percent(part, total int64) int {
	return int(math.Round(100 * float64(part) / float64(total)))
}

// LegendEntry pairs a robot status with its display colour.
type LegendEntry struct {
	Status model.RobotStatus
	Label  string
	Color  lipgloss.Color
}

// Legend returns the status colours in display order.
func Legend() []LegendEntry {
	return []LegendEntry{
		{Status: model.RobotStatusIdle, Label: "Idle", Color: lipgloss.Color("245")},
		{Status: model.RobotStatusMoving, Label: "Moving", Color: lipgloss.Color("42")},
		{Status: model.RobotStatusCharging, Label: "Charging", Color: lipgloss.Color("33")},
		{Status: model.RobotStatusError, Label: "Error", Color: lipgloss.Color("196")},
	}
}

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
)

// Render draws the legend and metrics side by side.
func Render(stats model.FleetStats) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(renderLegend()),
		" ",
		panelStyle.Render(renderMetrics(stats)),
	)
}

func renderLegend() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Status"))
	for _, entry := range Legend() {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(entry.Color).Render("●"))
		b.WriteString(" ")
		b.WriteString(entry.Label)
	}
	return b.String()
}

func renderMetrics(stats model.FleetStats) string {
	rates := ComputeRates(stats)
	rows := []struct {
		label string
		value string
	}{
		{"Total robots", fmt.Sprintf("%d", stats.Total)},
		{"Moving", fmt.Sprintf("%d", stats.Moving)},
		{"Idle", fmt.Sprintf("%d", stats.Idle)},
		{"Charging", fmt.Sprintf("%d", stats.Charging)},
		{"Error", fmt.Sprintf("%d", stats.Error)},
		{"Avg battery", fmt.Sprintf("%.1f%%", stats.AverageBattery)},
		{"Activation rate", fmt.Sprintf("%d%%", rates.Activation)},
		{"Error rate", fmt.Sprintf("%d%%", rates.Error)},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Fleet metrics"))
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(row.label))
		b.WriteString(valueStyle.Render(row.value))
	}
	return b.String()
}
