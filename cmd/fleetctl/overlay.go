package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"amr-fleet-monitor/internal/model"
	"amr-fleet-monitor/internal/overlay"
)

func runOverlay(args []string, out io.Writer) error {
	var server string
	var timeout time.Duration

	flagSet := pflag.NewFlagSet("overlay", pflag.ContinueOnError)
	flagSet.StringVar(&server, "server", "http://localhost:5000", "base URL of fleetd")
	flagSet.DurationVar(&timeout, "timeout", 10*time.Second, "request timeout")
	if ok, err := parseFlags(flagSet, args, out); !ok {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	stats, err := fetchStats(ctx, http.DefaultClient, server)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, overlay.Render(stats))
	return err
}

// fetchStats reads GET /api/stats from a running fleetd.
func fetchStats(ctx context.Context, client *http.Client, server string) (model.FleetStats, error) {
	url := strings.TrimRight(server, "/") + "/api/stats"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return model.FleetStats{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return model.FleetStats{}, fmt.Errorf("failed to fetch stats: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		if body.Error != "" {
			return model.FleetStats{}, fmt.Errorf("fleetd returned %d: %s", resp.StatusCode, body.Error)
		}
		return model.FleetStats{}, fmt.Errorf("fleetd returned %d", resp.StatusCode)
	}

	var payload struct {
		Data model.FleetStats `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return model.FleetStats{}, fmt.Errorf("failed to decode stats: %w", err)
	}
	return payload.Data, nil
}
