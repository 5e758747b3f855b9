// Package replay drives the table from recorded or built-in input scripts,
// for headless runs.
package replay

import (
	"fmt"
	"os"
	"sort"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/cardpile/components"
	"github.com/pthm-cable/cardpile/sim"
)

// Row is one scripted input frame. Pointer coordinates are in screen space.
type Row struct {
	Frame     int64   `csv:"frame"`
	X         float32 `csv:"x"`
	Y         float32 `csv:"y"`
	PointerOK bool    `csv:"pointer_ok"`
	Press     bool    `csv:"press"`
	Release   bool    `csv:"release"`
	Spawn     bool    `csv:"spawn"`
	MoveX     float32 `csv:"move_x"`
	MoveY     float32 `csv:"move_y"`
}

// Script is an ordered list of input rows. Frames past the last row repeat
// the last pointer with no button edges and no movement.
type Script struct {
	rows []Row
}

// New builds a script from rows, ordering them by frame.
func New(rows []Row) *Script {
	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Frame < sorted[j].Frame
	})
	return &Script{rows: sorted}
}

// Load reads a CSV script from path.
func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening script: %w", err)
	}
	defer f.Close()

	var rows []Row
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("parsing script %s: %w", path, err)
	}
	return New(rows), nil
}

// Len returns the number of scripted frames, which is the last frame number plus one.
func (s *Script) Len() int64 {
	if len(s.rows) == 0 {
		return 0
	}
	return s.rows[len(s.rows)-1].Frame + 1
}

// Frame returns the input for a frame number. Frames with no row hold the
// pointer of the closest earlier row without button edges.
func (s *Script) Frame(n int64) sim.InputFrame {
	i := sort.Search(len(s.rows), func(i int) bool {
		return s.rows[i].Frame > n
	}) - 1
	if i < 0 {
		return sim.InputFrame{}
	}

	r := s.rows[i]
	in := sim.InputFrame{
		Pointer:   components.Vec2{X: r.X, Y: r.Y},
		PointerOK: r.PointerOK,
	}
	if r.Frame == n {
		in.Press = r.Press
		in.Release = r.Release
		in.Spawn = r.Spawn
		in.Move = components.Vec2{X: r.MoveX, Y: r.MoveY}
	}
	return in
}

// Demo is the built-in script: spawn a card under the pointer at the
// viewport center, drag it by (50, 50), release it and let it settle.
// cx and cy are the screen coordinates of the world origin.
func Demo(cx, cy float32) *Script {
	return DragAndDrop(cx, cy, 50, 50)
}

// DragAndDrop spawns a card at screen (cx, cy), grabs it, drags it by
// (dx, dy) over 30 frames, holds, releases and idles until it settles.
func DragAndDrop(cx, cy, dx, dy float32) *Script {
	rows := []Row{
		{Frame: 0, X: cx, Y: cy, PointerOK: true, Spawn: true},
		{Frame: 1, X: cx, Y: cy, PointerOK: true, Press: true},
	}
	const dragFrames = 30
	for i := int64(1); i <= dragFrames; i++ {
		t := float32(i) / dragFrames
		rows = append(rows, Row{
			Frame:     1 + i,
			X:         cx + dx*t,
			Y:         cy + dy*t,
			PointerOK: true,
		})
	}
	// Hold at the target, release, then idle until the card settles.
	rows = append(rows,
		Row{Frame: 1 + dragFrames + 60, X: cx + dx, Y: cy + dy, PointerOK: true, Release: true},
		Row{Frame: 1 + dragFrames + 240, X: cx + dx, Y: cy + dy, PointerOK: true},
	)
	return New(rows)
}
