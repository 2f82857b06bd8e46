// Package services implements the driving port interfaces.
// Services contain the core business logic: the review session state
// machine, the placement interaction, and the margin layout
// reconciliation. They orchestrate calls to driven ports (adapters).
package services
