package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/catchme/internal/achievement"
	"github.com/verte-zerg/catchme/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints the final session counters, the per-difficulty journal
// breakdown and the success-rate trend.
func RenderSummary(w io.Writer, final model.SessionStats, sums []model.DifficultySummary, trend []float64) error {
	if len(sums) == 0 && final.Attempts == 0 {
		_, err := fmt.Fprintln(w, "No attempts this session.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Attempts: %d\n", final.Attempts); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Catches: %d\n", final.Catches); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Success Rate: %d%%\n", final.SuccessRate()); err != nil {
		return err
	}
	if len(trend) > 1 {
		if _, err := fmt.Fprintf(w, "Trend: [%s]\n", Sparkline(trend)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	if len(sums) == 0 {
		return nil
	}

	headers := []string{"Difficulty", "Escapes", "Near Misses", "Catches", "Unlocks"}
	rows := make([][]string, 0, len(sums))
	for _, s := range sums {
		rows = append(rows, []string{
			s.Difficulty,
			fmt.Sprintf("%d", s.Relocations),
			fmt.Sprintf("%d", s.NearMisses),
			fmt.Sprintf("%d", s.Catches),
			fmt.Sprintf("%d", s.Unlocks),
		})
	}
	return writeTable(w, headers, rows, map[int]bool{1: true, 2: true, 3: true, 4: true})
}

// RenderAchievements prints the achievement catalog, marking unlocked entries.
func RenderAchievements(w io.Writer, defs []achievement.Definition, unlocked func(achievement.ID) bool) error {
	headers := []string{"", "ID", "Title", "Description"}
	rows := make([][]string, 0, len(defs))
	for _, d := range defs {
		mark := d.Icon
		if unlocked != nil && !unlocked(d.ID) {
			mark = "·"
		}
		rows = append(rows, []string{mark, d.ID.String(), d.Title, d.Description})
	}
	return writeTable(w, headers, rows, nil)
}

// RenderDifficulties prints the difficulty presets.
func RenderDifficulties(w io.Writer, profiles []model.DifficultyProfile) error {
	headers := []string{"Difficulty", "Move Distance", "Cooldown", "Trigger Distance"}
	rows := make([][]string, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, []string{
			p.Name,
			fmt.Sprintf("%.0f", p.MoveDistance),
			p.MoveSpeed.String(),
			fmt.Sprintf("%.0f", p.TriggerDistance),
		})
	}
	return writeTable(w, headers, rows, map[int]bool{1: true, 2: true, 3: true})
}

func writeTable(w io.Writer, headers []string, rows [][]string, rightAlign map[int]bool) error {
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}
