package render

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/popover/pkg/frame"
	"github.com/matzehuels/popover/pkg/geom"
	"github.com/matzehuels/popover/pkg/placement"
)

type layer int

const (
	layerEmpty layer = iota
	layerBox
	layerScroll
	layerContainer
	layerTrigger
	layerContent
	layerArrow
)

var layerStyles = map[layer]lipgloss.Style{
	layerEmpty:     lipgloss.NewStyle(),
	layerBox:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	layerScroll:    lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
	layerContainer: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	layerTrigger:   lipgloss.NewStyle().Foreground(lipgloss.Color("36")),
	layerContent:   lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	layerArrow:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
}

type cell struct {
	r rune
	l layer
}

// Canvas maps a viewport region onto a grid of terminal cells.
type Canvas struct {
	Cols, Rows int
	// Origin is the viewport point drawn at the top-left cell.
	Origin geom.Point
	// CellWidth and CellHeight are viewport units per cell.
	CellWidth, CellHeight float64
}

// NewCanvas fits viewport into cols×rows cells.
func NewCanvas(viewport geom.Rect, cols, rows int) Canvas {
	cols, rows = max(cols, 1), max(rows, 1)
	return Canvas{
		Cols:       cols,
		Rows:       rows,
		Origin:     viewport.Origin(),
		CellWidth:  viewport.Width / float64(cols),
		CellHeight: viewport.Height / float64(rows),
	}
}

// Point returns the viewport point at the center of a cell.
func (c Canvas) Point(col, row int) geom.Point {
	return geom.Point{
		X: c.Origin.X + (float64(col)+0.5)*c.CellWidth,
		Y: c.Origin.Y + (float64(row)+0.5)*c.CellHeight,
	}
}

// Cell returns the cell containing p.
func (c Canvas) Cell(p geom.Point) (col, row int) {
	return int(math.Floor((p.X - c.Origin.X) / c.CellWidth)), int(math.Floor((p.Y - c.Origin.Y) / c.CellHeight))
}

// Draw renders the tree, trigger and, when open, the content and arrow.
func (c Canvas) Draw(tree *frame.Box, container *frame.Box, p Placed, open bool) string {
	grid := make([][]cell, c.Rows)
	for i := range grid {
		grid[i] = make([]cell, c.Cols)
		for j := range grid[i] {
			grid[i][j] = cell{' ', layerEmpty}
		}
	}

	if tree != nil {
		tree.Walk(func(b *frame.Box, _ int) {
			l := layerBox
			switch {
			case b == container:
				l = layerContainer
			case b.Overflows():
				l = layerScroll
			}
			c.border(grid, b.Rect, l, '┌', '┐', '└', '┘', '─', '│')
		})
	}

	c.fill(grid, p.Trigger, layerTrigger, '▓')

	if open {
		c.fill(grid, p.Content, layerContent, ' ')
		c.border(grid, p.Content, layerContent, '╭', '╮', '╰', '╯', '─', '│')
		if len(p.Arrow) == 3 {
			tip := p.Arrow[2]
			col, row := c.Cell(tip)
			c.set(grid, col, row, cell{arrowRune(p.Style.Arrow), layerArrow})
		}
	}

	var sb strings.Builder
	for i, line := range grid {
		writeRuns(&sb, line)
		if i < len(grid)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// span returns the inclusive cell range covered by r.
func (c Canvas) span(r geom.Rect) (c0, r0, c1, r1 int) {
	c0, r0 = c.Cell(r.Origin())
	c1 = int(math.Ceil((r.Right-c.Origin.X)/c.CellWidth)) - 1
	r1 = int(math.Ceil((r.Bottom-c.Origin.Y)/c.CellHeight)) - 1
	return c0, r0, max(c1, c0), max(r1, r0)
}

func (c Canvas) fill(grid [][]cell, r geom.Rect, l layer, ch rune) {
	c0, r0, c1, r1 := c.span(r)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			c.set(grid, col, row, cell{ch, l})
		}
	}
}

func (c Canvas) border(grid [][]cell, r geom.Rect, l layer, tl, tr, bl, br, h, v rune) {
	c0, r0, c1, r1 := c.span(r)
	for col := c0 + 1; col < c1; col++ {
		c.set(grid, col, r0, cell{h, l})
		c.set(grid, col, r1, cell{h, l})
	}
	for row := r0 + 1; row < r1; row++ {
		c.set(grid, c0, row, cell{v, l})
		c.set(grid, c1, row, cell{v, l})
	}
	c.set(grid, c0, r0, cell{tl, l})
	c.set(grid, c1, r0, cell{tr, l})
	c.set(grid, c0, r1, cell{bl, l})
	c.set(grid, c1, r1, cell{br, l})
}

func (c Canvas) set(grid [][]cell, col, row int, v cell) {
	if row < 0 || row >= len(grid) || col < 0 || col >= len(grid[row]) {
		return
	}
	grid[row][col] = v
}

func writeRuns(sb *strings.Builder, line []cell) {
	start := 0
	for i := 1; i <= len(line); i++ {
		if i < len(line) && line[i].l == line[start].l {
			continue
		}
		runes := make([]rune, 0, i-start)
		for _, c := range line[start:i] {
			runes = append(runes, c.r)
		}
		sb.WriteString(layerStyles[line[start].l].Render(string(runes)))
		start = i
	}
}

func arrowRune(a *placement.Arrow) rune {
	if a == nil {
		return ' '
	}
	switch a.Side {
	case placement.Bottom:
		return '▼'
	case placement.Top:
		return '▲'
	case placement.Left:
		return '◀'
	}
	return '▶'
}
