package renderer

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/sentencenav/internal/engine"
	"github.com/dshills/sentencenav/internal/renderer/backend"
)

// Document is what the renderer draws. *engine.Engine satisfies it.
type Document interface {
	LineCount() int
	Line(i int) string
	Selection() engine.Selection
}

// Status is the content of the bottom line.
type Status struct {
	Name     string
	Modified bool
	ReadOnly bool
	// Message is shown after the name; IsError draws it in the error style.
	Message string
	IsError bool
}

// Options configures a Renderer.
type Options struct {
	TabSize int
	Theme   Theme
}

// DefaultOptions returns a tab size of 4 and the default theme.
func DefaultOptions() Options {
	return Options{TabSize: 4, Theme: DefaultTheme()}
}

// Renderer draws documents on a backend. The zero scroll offset shows the
// top-left of the document.
type Renderer struct {
	mu      sync.Mutex
	backend backend.Backend
	opts    Options

	top  int // first document line shown
	left int // first display column shown
}

// New creates a renderer drawing on b.
func New(b backend.Backend, opts Options) *Renderer {
	if opts.TabSize < 1 {
		opts.TabSize = 4
	}
	return &Renderer{backend: b, opts: opts}
}

// SetOptions replaces the options. The next Render uses them.
func (r *Renderer) SetOptions(opts Options) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if opts.TabSize < 1 {
		opts.TabSize = 4
	}
	r.opts = opts
}

// ScrollOffset returns the first visible line and display column.
func (r *Renderer) ScrollOffset() (top, left int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.top, r.left
}

// Render draws doc and the status line and shows the result.
func (r *Renderer) Render(doc Document, status Status) {
	r.mu.Lock()
	defer r.mu.Unlock()

	width, height := r.backend.Size()
	r.backend.Clear()
	if width <= 0 || height <= 0 {
		r.backend.Show()
		return
	}

	rows := height - 1
	sel := doc.Selection()
	cur := sel.Head

	curCol := 0
	if cur.Line >= 0 && cur.Line < doc.LineCount() {
		curCol = r.displayColumn(doc.Line(cur.Line), cur.Column)
	}
	r.scrollTo(cur.Line, curCol, rows, width)

	start, end := sel.Start(), sel.End()
	for y := 0; y < rows; y++ {
		line := r.top + y
		if line >= doc.LineCount() {
			r.backend.SetContent(0, y, '~', nil, r.opts.Theme.Text.Dim(true))
			continue
		}
		lo, hi := -1, -1
		if !sel.IsEmpty() && line >= start.Line && line <= end.Line {
			lo, hi = 0, -1
			if line == start.Line {
				lo = start.Column
			}
			if line == end.Line {
				hi = end.Column
			}
		}
		r.drawLine(y, width, doc.Line(line), lo, hi)
	}

	r.drawStatus(height-1, width, status, cur)

	x, y := curCol-r.left, cur.Line-r.top
	if rows > 0 && x >= 0 && x < width && y >= 0 && y < rows {
		r.backend.ShowCursor(x, y)
	} else {
		r.backend.HideCursor()
	}
	r.backend.Show()
}

// scrollTo adjusts the offsets so that line and display column col are in
// the rows by width text area.
func (r *Renderer) scrollTo(line, col, rows, width int) {
	if rows > 0 {
		if line < r.top {
			r.top = line
		} else if line >= r.top+rows {
			r.top = line - rows + 1
		}
	}
	if r.top < 0 {
		r.top = 0
	}

	if col < r.left {
		r.left = col
	} else if col >= r.left+width {
		r.left = col - width + 1
	}
	if r.left < 0 {
		r.left = 0
	}
}

// displayColumn converts a rune column to a display column.
func (r *Renderer) displayColumn(line string, column int) int {
	col, runes := 0, 0
	state := -1
	rest := line
	for rest != "" && runes < column {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		col = r.advance(col, cluster, w)
		runes += len([]rune(cluster))
	}
	if runes < column {
		col += column - runes
	}
	return col
}

func (r *Renderer) advance(col int, cluster string, w int) int {
	if cluster == "\t" {
		return col + r.opts.TabSize - col%r.opts.TabSize
	}
	return col + w
}

// drawLine draws one document line. Rune columns in [lo, hi) are drawn in
// the selection style; hi < 0 extends the selection past the line end.
func (r *Renderer) drawLine(y, width int, line string, lo, hi int) {
	col, runeIdx := 0, 0
	state := -1
	rest := line
	for rest != "" {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		next := r.advance(col, cluster, w)

		style := r.opts.Theme.Text
		if lo >= 0 && runeIdx >= lo && (hi < 0 || runeIdx < hi) {
			style = r.opts.Theme.Selection
		}

		switch {
		case cluster == "\t":
			for c := col; c < next; c++ {
				r.put(c, y, width, ' ', nil, style)
			}
		case w == 0:
			// Control characters take no cell.
		case col < r.left:
			// A wide cluster cut by the left edge.
			for c := r.left; c < next; c++ {
				r.put(c, y, width, ' ', nil, style)
			}
		default:
			runes := []rune(cluster)
			r.put(col, y, width, runes[0], runes[1:], style)
		}

		col = next
		runeIdx += len([]rune(cluster))
		if col-r.left >= width {
			return
		}
	}

	if lo >= 0 && hi < 0 {
		r.put(col, y, width, ' ', nil, r.opts.Theme.Selection)
	}
}

func (r *Renderer) put(col, y, width int, primary rune, combining []rune, style tcell.Style) {
	x := col - r.left
	if x < 0 || x >= width {
		return
	}
	r.backend.SetContent(x, y, primary, combining, style)
}

func (r *Renderer) drawStatus(y, width int, s Status, cur engine.Point) {
	left := " " + s.Name
	if left == " " {
		left = " [No Name]"
	}
	if s.Modified {
		left += " [+]"
	}
	if s.ReadOnly {
		left += " [RO]"
	}
	right := fmt.Sprintf("Ln %d, Col %d ", cur.Line+1, cur.Column+1)

	for x := 0; x < width; x++ {
		r.backend.SetContent(x, y, ' ', nil, r.opts.Theme.Status)
	}
	x := r.text(0, y, width, left, r.opts.Theme.Status)
	if s.Message != "" {
		style := r.opts.Theme.Status
		if s.IsError {
			style = r.opts.Theme.Error
		}
		x = r.text(x+2, y, width, s.Message, style)
	}
	if rx := width - uniseg.StringWidth(right); rx > x {
		r.text(rx, y, width, right, r.opts.Theme.Status)
	}
}

// text draws s from x and returns the column after it.
func (r *Renderer) text(x, y, width int, s string, style tcell.Style) int {
	state := -1
	for s != "" && x < width {
		var cluster string
		var w int
		cluster, s, w, state = uniseg.FirstGraphemeClusterInString(s, state)
		if w == 0 {
			continue
		}
		if x+w > width {
			break
		}
		runes := []rune(cluster)
		r.backend.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
	return x
}
