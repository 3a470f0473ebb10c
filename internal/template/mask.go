package template

import "math"

// EdgeReveal reports whether the point at normalized x in [0,1] shows the
// incoming clip at the given transition progress in [0,1]. The edge slides
// left to right.
func EdgeReveal(x, progress float64) bool {
	return x < progress
}

// CircleReveal reports whether the point at normalized coordinates in [-1,1]
// (frame center at the origin) shows the incoming clip at the given
// transition progress. The radius shrinks from fully covering the frame to
// zero, so progress 1 reveals everything.
func CircleReveal(x, y, progress float64) bool {
	r := math.Sqrt(x*x + y*y)
	return r > 1.5*(1-progress)
}
