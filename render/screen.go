package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"gridroute/canvas"
	"gridroute/scene"
)

var (
	canvasStyle = tcell.StyleDefault
	statusStyle = tcell.StyleDefault.Reverse(true)
)

// Viewer shows a canvas on a terminal screen. The arrow keys scroll when the
// canvas is larger than the screen; q, Esc or Ctrl-C quit.
type Viewer struct {
	screen tcell.Screen
	canvas *canvas.MatrixCanvas

	// Status is shown on the last screen row.
	Status string

	offX, offY int
}

// NewViewer creates a viewer for c on an initialized screen.
func NewViewer(screen tcell.Screen, c *canvas.MatrixCanvas) *Viewer {
	return &Viewer{screen: screen, canvas: c}
}

// Offset returns the canvas cell shown at the top-left of the screen.
func (v *Viewer) Offset() canvas.Point {
	return canvas.Point{X: v.offX, Y: v.offY}
}

// viewport returns the screen area available to the canvas.
func (v *Viewer) viewport() (width, height int) {
	width, height = v.screen.Size()
	if v.Status != "" && height > 0 {
		height--
	}
	return width, height
}

// Draw paints the visible part of the canvas and the status line.
func (v *Viewer) Draw() {
	v.screen.Clear()

	vw, vh := v.viewport()
	cw, ch := v.canvas.Size()
	for y := 0; y < vh && y+v.offY < ch; y++ {
		for x := 0; x < vw && x+v.offX < cw; x++ {
			r := v.canvas.Get(canvas.Point{X: x + v.offX, Y: y + v.offY})
			if r == ' ' || r == '\x00' {
				continue
			}
			v.screen.SetContent(x, y, r, nil, canvasStyle)
		}
	}

	if v.Status != "" {
		sw, sh := v.screen.Size()
		x := 0
		for _, r := range v.Status {
			if x >= sw {
				break
			}
			v.screen.SetContent(x, sh-1, r, nil, statusStyle)
			x += max(canvas.TextWidth(string(r)), 1)
		}
	}

	v.screen.Show()
}

// Scroll moves the viewport by (dx, dy), clamped to the canvas.
func (v *Viewer) Scroll(dx, dy int) {
	vw, vh := v.viewport()
	cw, ch := v.canvas.Size()
	v.offX = clamp(v.offX+dx, 0, max(cw-vw, 0))
	v.offY = clamp(v.offY+dy, 0, max(ch-vh, 0))
}

// Run draws the canvas and handles events until the user quits or the
// screen is finalized.
func (v *Viewer) Run() {
	v.Draw()
	for {
		switch ev := v.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			v.Scroll(0, 0)
			v.screen.Sync()
			v.Draw()
		case *tcell.EventKey:
			if !v.handleKey(ev) {
				return
			}
			v.Draw()
		}
	}
}

// handleKey applies a key press and reports whether the viewer keeps running.
func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		v.Scroll(0, -1)
	case tcell.KeyDown:
		v.Scroll(0, 1)
	case tcell.KeyLeft:
		v.Scroll(-1, 0)
	case tcell.KeyRight:
		v.Scroll(1, 0)
	case tcell.KeyRune:
		if ev.Rune() == 'q' {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// Show renders the scene and runs a viewer on the terminal until the user
// quits.
func Show(s *scene.Scene, routes []scene.Route, opts Options, status string) error {
	c, err := Draw(s, routes, opts)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	v := NewViewer(screen, c)
	v.Status = status
	v.Run()
	return nil
}
