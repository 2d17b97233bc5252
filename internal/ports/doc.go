// Package ports defines interfaces between layers in the hexagonal architecture.
// Service ports are implemented by the application layer and called by handlers.
// Event ports connect the project store to the listeners that react to its changes.
package ports
