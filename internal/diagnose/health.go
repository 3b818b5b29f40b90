package diagnose

import (
	"sort"

	"depmap/internal/config"
)

// Issue levels
const (
	LevelWarning  = "warning"
	LevelCritical = "critical"
)

// Issue is one tracked metric past its threshold
type Issue struct {
	Metric    string  `json:"metric"`
	Value     float64 `json:"value"`
	Threshold float64 `json:"threshold"`
	Level     string  `json:"level"`
	Penalty   float64 `json:"penalty"`
}

// Score evaluates every tracked metric against its thresholds and
// returns the clamped 0-100 health score plus the issues found. All
// penalties are computed first and summed once, so metric order can
// never change the result. Metrics without a configured threshold are
// ignored.
func Score(metrics map[string]float64, cfg config.HealthConfig) (float64, []Issue) {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		if _, tracked := cfg.Metrics[name]; tracked {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var issues []Issue
	total := 0.0
	for _, name := range names {
		th := cfg.Metrics[name]
		value := metrics[name]

		var level string
		var penalty, threshold float64
		switch {
		case value > th.Critical:
			level, penalty, threshold = LevelCritical, th.Weight*30, th.Critical
		case value > th.Warning:
			level, penalty, threshold = LevelWarning, th.Weight*15, th.Warning
		default:
			continue
		}

		issues = append(issues, Issue{
			Metric:    name,
			Value:     value,
			Threshold: threshold,
			Level:     level,
			Penalty:   penalty,
		})
		total += penalty
	}

	score := 100 - total
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	// Worst issues first, ties on metric name.
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Penalty != issues[j].Penalty {
			return issues[i].Penalty > issues[j].Penalty
		}
		return issues[i].Metric < issues[j].Metric
	})
	return score, issues
}

// GradeFor maps a health score to its letter band
func GradeFor(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}
