// Package grid implements the smart grid step simulator. Each time step the
// surplus of renewable generation over demand is captured into storage, up to
// a per-step capacity, and the retained energy is added back to the demand
// recorded for that step.
package grid
