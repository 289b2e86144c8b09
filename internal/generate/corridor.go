package generate

import (
	"math/rand"

	"bsp-dungeon/internal/gamemap"
)

// createHalls joins a room from each child of n with an L-shaped pair of
// straight segments, clipped to n.
func createHalls(n *Node, rng *rand.Rand) {
	lRoom := n.Left.room(rng)
	rRoom := n.Right.room(rng)
	if lRoom == nil || rRoom == nil {
		return
	}
	x1, y1 := lRoom.Center()
	x2, y2 := rRoom.Center()

	var segs [2]gamemap.Rect
	if rng.Intn(2) == 0 {
		segs = lShape(x1, y1, x2, y2, true)
	} else {
		segs = lShape(x1, y1, x2, y2, false)
	}
	for _, s := range segs {
		s = s.ClipTo(n.Rect)
		if s.Empty() {
			continue
		}
		n.Halls = append(n.Halls, s)
	}
}

// lShape returns the two segments of an L from (x1,y1) to (x2,y2). With
// horizontalFirst the run along x happens at y1 and the run along y at x2;
// otherwise the run along y happens at x1 and the run along x at y2. Both
// segments include their end cells, so they share the corner cell.
func lShape(x1, y1, x2, y2 int, horizontalFirst bool) [2]gamemap.Rect {
	if horizontalFirst {
		return [2]gamemap.Rect{spanX(x1, x2, y1), spanY(y1, y2, x2)}
	}
	return [2]gamemap.Rect{spanY(y1, y2, x1), spanX(x1, x2, y2)}
}

func spanX(x1, x2, y int) gamemap.Rect {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	return gamemap.Rect{X: x1, Y: y, W: x2 - x1 + 1, H: 1}
}

func spanY(y1, y2, x int) gamemap.Rect {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return gamemap.Rect{X: x, Y: y1, W: 1, H: y2 - y1 + 1}
}
