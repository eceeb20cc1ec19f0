// Package visjs exports layouts as vis-network data sets.
//
// Nodes carry their computed coordinates with fixed x and y, so the browser
// shows exactly the layout the engine produced. [RenderHTML] wraps the data
// in a self-contained page with physics disabled.
package visjs
