package domain

// Severity controls how a notice is styled.
type Severity string

const (
	SeverityInfo        Severity = "info"
	SeveritySuccess     Severity = "success"
	SeverityDestructive Severity = "destructive"
)

// Notice is a transient, user-visible outcome of an operation.
type Notice struct {
	Title    string
	Message  string
	Severity Severity
}

// IsZero reports whether n carries nothing to show.
func (n Notice) IsZero() bool {
	return n.Title == "" && n.Message == ""
}

// Failed reports whether n describes a failure.
func (n Notice) Failed() bool {
	return n.Severity == SeverityDestructive
}
