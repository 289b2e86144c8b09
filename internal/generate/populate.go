package generate

import (
	"math/rand"

	"bsp-dungeon/internal/gamemap"
)

// Point is a grid cell.
type Point struct {
	X, Y int
}

// Markers are points of interest placed on the finished floor. They are not
// written into the grid.
type Markers struct {
	Start    Point   // first room
	Exit     Point   // last room
	Treasure []Point // rooms in between
}

// Populate places the start in the first room, the exit in the last room and
// up to count treasures in the rooms between them, in tree order. No two
// markers share a cell unless a room is too crowded to avoid it.
func Populate(rooms []gamemap.Rect, count int, rng *rand.Rand) Markers {
	var m Markers
	if len(rooms) == 0 {
		return m
	}
	occupied := make(map[Point]bool)
	pick := func(room gamemap.Rect) Point {
		p := pickFreeInRoom(room, rng, occupied)
		occupied[p] = true
		return p
	}

	m.Start = pick(rooms[0])
	m.Exit = pick(rooms[len(rooms)-1])

	// Skip the start and exit rooms.
	if len(rooms) <= 2 {
		return m
	}
	placeable := rooms[1 : len(rooms)-1]
	for i := 0; i < count; i++ {
		room := placeable[rng.Intn(len(placeable))]
		m.Treasure = append(m.Treasure, pick(room))
	}
	return m
}

// pickFreeInRoom tries up to 20 times to find an unoccupied cell inside
// room, then settles for any cell.
func pickFreeInRoom(room gamemap.Rect, rng *rand.Rand, occupied map[Point]bool) Point {
	const maxAttempts = 20
	for i := 0; i < maxAttempts; i++ {
		p := randomInRoom(room, rng)
		if !occupied[p] {
			return p
		}
	}
	return randomInRoom(room, rng)
}

// randomInRoom keeps off the room's outer ring, where halls arrive, unless
// the room is too thin to have an interior.
func randomInRoom(room gamemap.Rect, rng *rand.Rand) Point {
	inner := gamemap.Rect{X: room.X + 1, Y: room.Y + 1, W: room.W - 2, H: room.H - 2}
	if inner.Empty() {
		inner = room
	}
	return Point{X: inner.X + rng.Intn(inner.W), Y: inner.Y + rng.Intn(inner.H)}
}
