package generate

import (
	"math/rand"
	"testing"

	"bsp-dungeon/internal/gamemap"
)

// allFloorRow checks that every cell at y between x1 and x2 (inclusive) is floor.
func allFloorRow(g *gamemap.Grid, x1, x2, y int) bool {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		if !g.IsFloor(x, y) {
			return false
		}
	}
	return true
}

// allFloorCol checks that every cell at x between y1 and y2 (inclusive) is floor.
func allFloorCol(g *gamemap.Grid, y1, y2, x int) bool {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		if !g.IsFloor(x, y) {
			return false
		}
	}
	return true
}

func carve(segs [2]gamemap.Rect) *gamemap.Grid {
	g := gamemap.New(20, 20)
	for _, s := range segs {
		g.FillRect(s, gamemap.Floor)
	}
	return g
}

func TestSpanX(t *testing.T) {
	if got, want := spanX(3, 8, 5), (gamemap.Rect{X: 3, Y: 5, W: 6, H: 1}); got != want {
		t.Errorf("spanX(3,8,5) = %v; want %v", got, want)
	}
	if got, want := spanX(8, 3, 5), (gamemap.Rect{X: 3, Y: 5, W: 6, H: 1}); got != want {
		t.Errorf("spanX with reversed args = %v; want %v", got, want)
	}
	if got := spanX(4, 4, 2); got.Area() != 1 {
		t.Errorf("zero-length run must still cover one cell, got %v", got)
	}
}

func TestSpanY(t *testing.T) {
	if got, want := spanY(2, 7, 4), (gamemap.Rect{X: 4, Y: 2, W: 1, H: 6}); got != want {
		t.Errorf("spanY(2,7,4) = %v; want %v", got, want)
	}
	if got, want := spanY(7, 2, 4), (gamemap.Rect{X: 4, Y: 2, W: 1, H: 6}); got != want {
		t.Errorf("spanY with reversed args = %v; want %v", got, want)
	}
}

func TestLShapeHorizontalFirst(t *testing.T) {
	g := carve(lShape(2, 2, 10, 8, true))
	if !allFloorRow(g, 2, 10, 2) {
		t.Error("horizontal-first: run along x at y=2 should be floor")
	}
	if !allFloorCol(g, 2, 8, 10) {
		t.Error("horizontal-first: run along y at x=10 should be floor")
	}
	if got := g.FloorCount(); got != 9+7-1 {
		t.Errorf("FloorCount = %d, want 15 (corner shared)", got)
	}
}

func TestLShapeVerticalFirst(t *testing.T) {
	g := carve(lShape(10, 8, 2, 2, false))
	if !allFloorCol(g, 2, 8, 10) {
		t.Error("vertical-first: run along y at x=10 should be floor")
	}
	if !allFloorRow(g, 2, 10, 2) {
		t.Error("vertical-first: run along x at y=2 should be floor")
	}
}

func TestCreateHallsConnectsCenters(t *testing.T) {
	for seed := 0; seed < 10; seed++ {
		rng := rand.New(rand.NewSource(int64(seed)))
		n := &Node{
			Rect:  gamemap.Rect{W: 20, H: 20},
			Left:  &Node{Rect: gamemap.Rect{W: 10, H: 20}, Room: &gamemap.Rect{X: 1, Y: 1, W: 5, H: 5}},
			Right: &Node{Rect: gamemap.Rect{X: 10, W: 10, H: 20}, Room: &gamemap.Rect{X: 12, Y: 12, W: 5, H: 5}},
		}
		createHalls(n, rng)
		if len(n.Halls) != 2 {
			t.Fatalf("seed %d: want 2 hall segments, got %v", seed, n.Halls)
		}
		g := Rasterize(n, 20, 20)
		if !g.IsFloor(3, 3) || !g.IsFloor(14, 14) {
			t.Errorf("seed %d: both room centers should be floor", seed)
		}
		if !connected(g, 3, 3, 14, 14) {
			t.Errorf("seed %d: centers not joined by halls %v", seed, n.Halls)
		}
	}
}

func TestCreateHallsClippedToNode(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		cfg := defaultTestConfig(seed)
		root := Build(cfg)
		CreateRooms(root, cfg)
		root.Walk(func(n *Node) {
			for _, h := range n.Halls {
				if h.Empty() {
					t.Errorf("seed=%d: empty hall kept on %v", seed, n.Rect)
				}
				if !n.Rect.ContainsRect(h) {
					t.Errorf("seed=%d: hall %v escapes node %v", seed, h, n.Rect)
				}
				if h.W != 1 && h.H != 1 {
					t.Errorf("seed=%d: hall %v is not a straight segment", seed, h)
				}
			}
			if !n.IsLeaf() && len(n.Halls) == 0 {
				t.Errorf("seed=%d: internal node %v has no halls", seed, n.Rect)
			}
		})
	}
}

func TestCreateHallsWithoutRooms(t *testing.T) {
	n := &Node{
		Rect:  gamemap.Rect{W: 20, H: 20},
		Left:  &Node{Rect: gamemap.Rect{W: 10, H: 20}},
		Right: &Node{Rect: gamemap.Rect{X: 10, W: 10, H: 20}},
	}
	createHalls(n, rand.New(rand.NewSource(1)))
	if len(n.Halls) != 0 {
		t.Errorf("no rooms means no halls, got %v", n.Halls)
	}
}

// connected reports whether (x2,y2) is reachable from (x1,y1) over floor.
func connected(g *gamemap.Grid, x1, y1, x2, y2 int) bool {
	visited := make([][]bool, g.Width)
	for x := range visited {
		visited[x] = make([]bool, g.Height)
	}
	queue := [][2]int{{x1, y1}}
	visited[x1][y1] = true
	dirs := [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur[0] == x2 && cur[1] == y2 {
			return true
		}
		for _, d := range dirs {
			nx, ny := cur[0]+d[0], cur[1]+d[1]
			if !g.IsFloor(nx, ny) || visited[nx][ny] {
				continue
			}
			visited[nx][ny] = true
			queue = append(queue, [2]int{nx, ny})
		}
	}
	return false
}
