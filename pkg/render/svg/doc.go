// Package svg draws computed layouts as standalone SVG documents.
//
// Nodes are circles sized by proficiency and stroked in their category
// color; architecture nodes are filled by tier. Edges are dashed lines,
// colored by protocol when one is set, with the reason or protocol as a
// tooltip. Nodes that first appear in a timeline snapshot's year are drawn
// half transparent.
//
// 3D layouts are rotated about the vertical axis by [WithRotation] and
// projected orthographically. Nodes are painted back to front and fade with
// distance from the viewer.
package svg
