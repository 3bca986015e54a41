// Package state defines the mutable game-session record shared by the
// simulation engines.
//
// A GameState is owned by the orchestrator for the lifetime of one game
// session. Engines mutate only the fields their effect vocabulary
// targets; execution is single threaded, so no locking is required.
// Catalogs never reference state directly - crises and scandals refer
// to talent and films by id so removing a contract never invalidates
// catalog data.
package state
