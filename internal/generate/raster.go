package generate

import "bsp-dungeon/internal/gamemap"

// Rasterize paints every room and hall of the tree as floor on a wall-filled
// width x height grid.
func Rasterize(root *Node, width, height int) *gamemap.Grid {
	g := gamemap.New(width, height)
	root.Walk(func(n *Node) {
		if n.Room != nil {
			g.FillRect(*n.Room, gamemap.Floor)
		}
		for _, h := range n.Halls {
			g.FillRect(h, gamemap.Floor)
		}
	})
	return g
}
