package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
)

// ProbeDuration extracts the media duration in seconds using ffprobe.
func ProbeDuration(ctx context.Context, ffprobePath, filePath string) (float64, error) {
	if filePath == "" {
		return 0, fmt.Errorf("file path is required")
	}

	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	resolved, err := exec.LookPath(ffprobePath)
	if err != nil {
		return 0, fmt.Errorf("ffprobe not found: %w", err)
	}

	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		filePath,
	}

	cmd := exec.CommandContext(ctx, resolved, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	return parseProbeOutput(output)
}

// probeResult matches ffprobe JSON output structure
type probeResult struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

func parseProbeOutput(output []byte) (float64, error) {
	var probe probeResult
	if err := json.Unmarshal(output, &probe); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	if probe.Format.Duration == "" {
		return 0, fmt.Errorf("ffprobe reported no duration")
	}

	dur, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", probe.Format.Duration, err)
	}

	return dur, nil
}
