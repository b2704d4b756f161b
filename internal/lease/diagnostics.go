package lease

// DiagnosticKind classifies a non-fatal finding attached to the record.
type DiagnosticKind string

const (
	DiagCoercion   DiagnosticKind = "coercion"   // invalid value coerced to unset
	DiagConflict   DiagnosticKind = "conflict"   // same-tier sources disagreed
	DiagValidation DiagnosticKind = "validation" // cross-field rule violated
	DiagExtraction DiagnosticKind = "extraction" // per-document extraction problem
)

// Diagnostic is one finding for caller visibility. Nothing here is fatal;
// the operator corrects the record before document generation proceeds.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Field   string         `json:"field,omitempty"`
	Source  string         `json:"source,omitempty"`
	Message string         `json:"message"`
}

// Diagnostics accompanies every merged record back to the caller.
type Diagnostics struct {
	SessionID string            `json:"session_id"`
	Backends  map[string]string `json:"backends"` // document id -> backend used
	Items     []Diagnostic      `json:"items"`
	Unset     []string          `json:"unset"` // field keys still unset after merge
}

func NewDiagnostics(sessionID string) *Diagnostics {
	return &Diagnostics{
		SessionID: sessionID,
		Backends:  make(map[string]string),
	}
}

func (d *Diagnostics) Add(kind DiagnosticKind, field, source, message string) {
	d.Items = append(d.Items, Diagnostic{Kind: kind, Field: field, Source: source, Message: message})
}
