// Package svg renders laid-out diagram shapes as self-contained SVG
// fragments.
//
// Track geometry is produced by a turtle: a grid position and a cardinal
// heading, moved forward and turned in 90 degree steps. Turns emit
// quarter-circle arcs and cost 2 grid units of straight run each. All
// routing happens in integer grid units; pixels appear only when a path is
// finished.
package svg
