// Package geom provides the value types shared by the placement and
// visibility packages: points, sizes and rectangles.
//
// A [Rect] is a read-only snapshot of an element's box in viewport
// coordinates at the time it was read. It carries all six edge/size values
// because that is how hosts report element boxes, and [Rect] keeps them
// consistent: every constructor and operation derives Right/Bottom from
// Left/Top plus Width/Height.
//
//	r := geom.RectXYWH(10, 20, 100, 30)
//	r.Right  // 110
//	r.Bottom // 50
//	r = r.Translate(0, -5)
package geom
