package movesim

import "github.com/df-mc/dragonfly/server/block/cube"

// Hull returns the local collision box of the character. Its origin is centred at the feet.
func Hull() cube.BBox {
	return cube.Box(-HullHalfWidth, 0, -HullHalfWidth, HullHalfWidth, HullHeight, HullHalfWidth)
}

// columnBox returns a world-axis aligned box extending radius around the origin horizontally,
// from bottom to top vertically.
func columnBox(radius, bottom, top float64) cube.BBox {
	return cube.Box(-radius, bottom, -radius, radius, top, radius)
}

