// Package tilepath is a grid pathfinding sandbox: a 4-connected terrain grid,
// three interchangeable searches over it, and the interactive pieces that
// let a user paint terrain, place endpoints and watch routes change.
//
// Packages:
//
//   - gridgraph: the grid, its terrain (Grass 1, Bush 2, Tree 4, Wall) and
//     the fixed up/right/down/left adjacency.
//   - pqueue:    a generic min-priority queue, FIFO among equal priorities.
//   - search:    BFS, Dijkstra and A*, all searching from goal back to start.
//   - selector:  the persisted choice of algorithm with change notification.
//   - prefs:     YAML and in-memory preference stores.
//   - sandbox:   endpoints, painting, recomputation and the display overlay.
//   - render:    PNG snapshots (fogleman/gg).
//   - tui:       terminal front end (tcell).
//   - config:    YAML file and flag configuration.
//
// The binary lives in cmd/tilepath.
package tilepath
