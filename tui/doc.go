// Package tui is a terminal front end for a sandbox built on tcell.
//
// Keys:
//
//	arrows        move the cursor
//	s / g         set start / goal under the cursor
//	1 q           paint Grass
//	2 w           paint Bush
//	3 e           paint Tree
//	4 r           paint Wall
//	a             cycle the search algorithm
//	c or space    toggle coordinate labels
//	enter         spawn the unit on the start and walk the route
//	v             replay the last search's expansion order
//	p             export a PNG snapshot
//	esc / ctrl-c  quit
package tui
