// Package analyze reports on the shape and connectivity of generated
// dungeons. The generator itself never repairs disconnected rooms; this
// package only detects them.
package analyze

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"bsp-dungeon/internal/gamemap"
	"bsp-dungeon/internal/generate"
)

// Point is a grid cell.
type Point = generate.Point

// Report summarizes one dungeon.
type Report struct {
	Leaves      int
	Rooms       int
	Halls       int
	Depth       int
	FloorCells  int
	Regions     int // 4-connected floor components
	Largest     int // cells in the biggest component
	Unreachable int // rooms outside the biggest component
}

// Connected reports whether all floor forms a single region.
func (r Report) Connected() bool { return r.Regions <= 1 }

func (r Report) String() string {
	return fmt.Sprintf("leaves=%d rooms=%d halls=%d depth=%d floor=%d regions=%d unreachable=%d",
		r.Leaves, r.Rooms, r.Halls, r.Depth, r.FloorCells, r.Regions, r.Unreachable)
}

// Summarize builds a Report for d.
func Summarize(d *generate.Dungeon) Report {
	regions := Regions(d.Grid)
	r := Report{
		Leaves:      len(d.Root.Leaves()),
		Rooms:       len(d.Rooms()),
		Halls:       len(d.Halls()),
		Depth:       d.Root.Depth(),
		FloorCells:  d.Grid.FloorCount(),
		Regions:     len(regions),
		Unreachable: len(unreachable(d.Rooms(), regions)),
	}
	if len(regions) > 0 {
		r.Largest = len(largest(regions))
	}
	return r
}

// Regions returns the 4-connected floor components of g. Components are
// ordered by their first cell in x-then-y scan order.
func Regions(g *gamemap.Grid) [][]Point {
	var regions [][]Point
	visited := mapset.New[Point]()
	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			p := Point{X: x, Y: y}
			if !g.IsFloor(x, y) || visited.Has(p) {
				continue
			}
			regions = append(regions, flood(g, p, visited))
		}
	}
	return regions
}

// flood collects every floor cell reachable from start, marking them in
// visited.
func flood(g *gamemap.Grid, start Point, visited mapset.Set[Point]) []Point {
	var region []Point
	queue := []Point{start}
	visited.Put(start)
	dirs := []Point{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		region = append(region, cur)
		for _, d := range dirs {
			n := Point{X: cur.X + d.X, Y: cur.Y + d.Y}
			if !g.IsFloor(n.X, n.Y) || visited.Has(n) {
				continue
			}
			visited.Put(n)
			queue = append(queue, n)
		}
	}
	return region
}

// UnreachableRooms returns the rooms of d whose center lies outside the
// largest floor region.
func UnreachableRooms(d *generate.Dungeon) []gamemap.Rect {
	return unreachable(d.Rooms(), Regions(d.Grid))
}

func unreachable(rooms []gamemap.Rect, regions [][]Point) []gamemap.Rect {
	if len(regions) <= 1 {
		return nil
	}
	core := mapset.New[Point]()
	for _, p := range largest(regions) {
		core.Put(p)
	}
	var out []gamemap.Rect
	for _, r := range rooms {
		cx, cy := r.Center()
		if !core.Has(Point{X: cx, Y: cy}) {
			out = append(out, r)
		}
	}
	return out
}

func largest(regions [][]Point) []Point {
	best := regions[0]
	for _, r := range regions[1:] {
		if len(r) > len(best) {
			best = r
		}
	}
	return best
}
