package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo marks skipped extractions that fell back to runtime styling.
	SevInfo Severity = iota
	// SevWarning is for suspicious but recoverable input.
	SevWarning
	// SevError marks failures, including fallbacks escalated by a
	// static directive.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
