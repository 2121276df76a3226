// Package domain contains the core business types for hubdeck:
// contacts, credentials, filter criteria, and the pure query helpers
// that operate on an in-memory contact list.
//
// Types here have no dependencies on adapters or transport. Anything
// that talks to the network lives behind ports.
package domain
