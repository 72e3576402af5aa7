// Package render draws a sandbox as a raster image with fogleman/gg.
//
// Each cell is a square filled with its terrain colour, or with the colour
// of its overlay mark: grey for the route, green for the start, red for the
// goal. The walking unit is a blue disc. Row y=1 is at the bottom, matching
// the grid's coordinate system.
package render
