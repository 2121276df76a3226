// Package driving defines the driving ports (primary adapters'
// contracts) for hubdeck. The CLI and TUI drive the core exclusively
// through these interfaces.
package driving
