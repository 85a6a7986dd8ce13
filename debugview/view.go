// Package debugview draws controller debug state in a terminal: a top-down
// map of the level with each pedestrian's body and look-ahead marker, and
// a status line per pedestrian. It only reads controller state.
package debugview

import (
	"fmt"
	"math"

	"github.com/automoto/pedsync/controller"
	"github.com/automoto/pedsync/shared/leveldata"
	"github.com/automoto/pedsync/shared/netconfig"
	"github.com/gdamore/tcell/v2"
)

var (
	styleWall   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleCurb   = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleMarker = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleText   = tcell.StyleDefault
	styleTitle  = tcell.StyleDefault.Bold(true)
)

var modeStyles = map[netconfig.Mode]tcell.Style{
	netconfig.ModeTracking:      tcell.StyleDefault.Foreground(tcell.ColorGreen),
	netconfig.ModeInsideVehicle: tcell.StyleDefault.Foreground(tcell.ColorYellow),
	netconfig.ModeCorrecting:    tcell.StyleDefault.Foreground(tcell.ColorBlue).Reverse(true),
}

// Row is one pedestrian in a frame.
type Row struct {
	State controller.DebugState
	Anim  string // formatted animation parameters, optional
}

// Frame is everything drawn in one refresh.
type Frame struct {
	Tick    uint64
	SimTime float64
	FeedOK  bool
	Rows    []Row
}

// View renders frames onto a tcell screen.
type View struct {
	screen tcell.Screen
	level  *leveldata.CollisionData
}

func New(screen tcell.Screen, level *leveldata.CollisionData) *View {
	return &View{screen: screen, level: level}
}

// Draw clears the screen and renders f.
func (v *View) Draw(f Frame) {
	v.screen.Clear()

	feed := "up"
	if !f.FeedOK {
		feed = "DOWN"
	}
	v.text(0, 0, styleTitle, fmt.Sprintf("pedsync  tick %d  feed t=%.1fs  feed %s  (q quits)", f.Tick, f.SimTime, feed))

	const mapTop = 2
	v.drawLevel(mapTop)
	for i, row := range f.Rows {
		v.drawMarkers(mapTop, i, row.State)
	}

	y := mapTop + v.mapDepth() + 1
	for i, row := range f.Rows {
		st := row.State
		line := fmt.Sprintf("%c %-6s %-14s dwell %4.1f  speed %5.3f  blend %5.3f  err %5.2f  vy %6.2f  yaw %5.1f  grounded %-5t",
			glyph(i), st.ID, st.Mode, st.Dwell, st.Speed, st.AnimationBlend, st.Error, st.VerticalVelocity, st.Yaw, st.Grounded)
		v.text(0, y, modeStyles[st.Mode], line)
		y++
		if row.Anim != "" {
			v.text(2, y, styleText, row.Anim)
			y++
		}
	}

	v.screen.Show()
}

func (v *View) mapDepth() int {
	if v.level == nil {
		return 0
	}
	return int(math.Ceil(v.level.Depth))
}

func (v *View) drawLevel(top int) {
	if v.level == nil {
		return
	}
	for _, g := range v.level.Ground {
		if g.Height > 0 {
			v.screen.SetContent(int(g.X), top+int(g.Z), '_', nil, styleCurb)
		}
	}
	for _, w := range v.level.Walls {
		v.screen.SetContent(int(w.X), top+int(w.Z), '#', nil, styleWall)
	}
}

func (v *View) drawMarkers(top, i int, st controller.DebugState) {
	if !v.inside(st.LookAhead.X(), st.LookAhead.Y()) || !v.inside(st.LastKnown.X(), st.LastKnown.Y()) {
		return
	}
	v.screen.SetContent(int(st.LookAhead.X()), top+int(st.LookAhead.Y()), '+', nil, styleMarker)
	v.screen.SetContent(int(st.LastKnown.X()), top+int(st.LastKnown.Y()), glyph(i), nil, modeStyles[st.Mode])
}

func (v *View) inside(x, z float64) bool {
	if v.level == nil {
		return false
	}
	return x >= 0 && z >= 0 && x < v.level.Width && z < v.level.Depth
}

func (v *View) text(x, y int, style tcell.Style, s string) {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// glyph labels the i-th pedestrian.
func glyph(i int) rune {
	const labels = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	return rune(labels[i%len(labels)])
}

// WatchKeys blocks on screen events and calls quit on q, Escape or Ctrl-C.
// It returns when the screen is finalized.
func (v *View) WatchKeys(quit func()) {
	for {
		switch ev := v.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				quit()
				return
			}
		case *tcell.EventResize:
			v.screen.Sync()
		}
	}
}
