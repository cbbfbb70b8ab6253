package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/catchme/internal/model"
)

const (
	headerRows = 1
	footerRows = 2

	targetLabel = "Catch Me! 🏃"
)

// cellScale converts terminal cells to arena units.
type cellScale struct {
	width  float64
	height float64
}

// rect is a cell-space box; Y is relative to the arena's first row.
type rect struct {
	X, Y, W, H int
}

func (r rect) contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// layout describes the arena region of the terminal.
type layout struct {
	cols  int
	rows  int
	scale cellScale
}

func newLayout(width, height int, scale cellScale) layout {
	rows := height - headerRows - footerRows
	if rows < 0 {
		rows = 0
	}
	if width < 0 {
		width = 0
	}
	return layout{cols: width, rows: rows, scale: scale}
}

// bounds measures the arena in units. It is zero until the window size is known.
func (l layout) bounds() model.Bounds {
	if l.cols == 0 || l.rows == 0 {
		return model.Bounds{}
	}
	return model.Bounds{
		Width:  float64(l.cols) * l.scale.width,
		Height: float64(l.rows) * l.scale.height,
	}
}

// toArena maps a terminal cell to the centre of that cell in arena units.
func (l layout) toArena(x, y int) (model.Position, bool) {
	row := y - headerRows
	if x < 0 || x >= l.cols || row < 0 || row >= l.rows {
		return model.Position{}, false
	}
	return model.Position{
		X: (float64(x) + 0.5) * l.scale.width,
		Y: (float64(row) + 0.5) * l.scale.height,
	}, true
}

// targetRect returns the cells covered by the target label centred on p.
func (l layout) targetRect(p model.Position) rect {
	w := runewidth.StringWidth(targetLabel)
	col := int(p.X/l.scale.width) - w/2
	row := int(p.Y / l.scale.height)
	if col > l.cols-w {
		col = l.cols - w
	}
	if col < 0 {
		col = 0
	}
	if row > l.rows-1 {
		row = l.rows - 1
	}
	if row < 0 {
		row = 0
	}
	return rect{X: col, Y: row, W: w, H: 1}
}

// overTarget reports whether the terminal cell (x, y) is on the target.
func (l layout) overTarget(p model.Position, x, y int) bool {
	if l.rows == 0 {
		return false
	}
	return l.targetRect(p).contains(x, y-headerRows)
}

// canvas renders the arena rows with the styled target and an optional centred emoji.
func (l layout) canvas(target model.Position, styledTarget, emoji string) string {
	if l.rows == 0 || l.cols == 0 {
		return ""
	}
	tr := l.targetRect(target)
	emojiRow := -1
	if emoji != "" {
		emojiRow = l.rows / 2
		if emojiRow == tr.Y {
			emojiRow--
		}
	}
	blank := strings.Repeat(" ", l.cols)
	lines := make([]string, l.rows)
	for i := range lines {
		switch i {
		case tr.Y:
			lines[i] = padLine(tr.X, styledTarget, tr.W, l.cols)
		case emojiRow:
			w := runewidth.StringWidth(emoji)
			lines[i] = padLine((l.cols-w)/2, emoji, w, l.cols)
		default:
			lines[i] = blank
		}
	}
	return strings.Join(lines, "\n")
}

func padLine(col int, content string, contentWidth, total int) string {
	if col < 0 {
		col = 0
	}
	right := total - col - contentWidth
	if right < 0 {
		right = 0
	}
	return strings.Repeat(" ", col) + content + strings.Repeat(" ", right)
}
