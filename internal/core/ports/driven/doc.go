// Package driven defines the driven ports (secondary adapters' contracts)
// for hubdeck: the integration API client, the authorization viewport,
// the in-memory contact store, and the preference store.
//
// Core services depend only on these interfaces; adapters implement them.
package driven
