package forensic

// AuditLog is the append-only, timestamped chain-of-custody trail for a case.
// Entries are ordered by call order and are never rewritten or deleted.
// Every state-changing operation against a case must be recorded here.
type AuditLog interface {
	// Append writes one timestamped entry.
	Append(message string) error

	// Appendf formats and writes one timestamped entry.
	Appendf(format string, args ...any) error
}
