// Package services implements the core application services behind the
// driving ports: the connection manager's authorization state machine
// and the contact service that owns the in-memory snapshot.
package services
