// Package viz provides the terminal viewer for rendered text.
//
// The viewer is a Bubble Tea program showing the render in a scrolling
// pane next to a stats sidebar:
//
//   - [Viewer]: the tea.Model driving the pane and sidebar
//   - [Theme]: color schemes, cycled at runtime
//
// # Key Bindings
//
//	j/k, ↑/↓   - Scroll one row
//	PgUp/PgDn  - Scroll one page
//	g/G        - Jump to top/bottom
//	T          - Cycle color themes
//	Q          - Quit
package viz
