package extension

// ManifestFilename is the fixed source reported for every manifest error.
const ManifestFilename = "manifest.json"

// GeneratedBackgroundPage is the synthetic document an extension's background
// scripts execute in.
const GeneratedBackgroundPage = "_generated_background_page.html"

// ErrorType discriminates the two error variants.
type ErrorType string

const (
	TypeManifest ErrorType = "manifest"
	TypeRuntime  ErrorType = "runtime"
)

// Severity of a runtime error. Manifest errors carry no severity.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Error is one detected extension failure. It is a tagged value: Type selects
// which of the variant field groups is populated. Build instances through
// NewManifestError or NewRuntimeError; records are not mutated after
// construction.
type Error struct {
	Type          ErrorType `json:"type"`
	ExtensionID   ID        `json:"extensionId"`
	Source        string    `json:"source"`
	FromIncognito bool      `json:"fromIncognito"`
	Message       string    `json:"message"`

	// Manifest variant.
	ManifestKey      string `json:"manifestKey,omitempty"`
	ManifestSpecific string `json:"manifestSpecific,omitempty"`

	// Runtime variant.
	Severity   Severity   `json:"severity,omitempty"`
	ContextURL string     `json:"contextUrl,omitempty"`
	StackTrace StackTrace `json:"stackTrace,omitempty"`
}

// NewManifestError builds a manifest-variant error. The source is always the
// manifest filename and manifest errors are never attributed to incognito,
// regardless of what the producer observed.
func NewManifestError(id ID, message, manifestKey, manifestSpecific string) *Error {
	return &Error{
		Type:             TypeManifest,
		ExtensionID:      id,
		Source:           ManifestFilename,
		FromIncognito:    false,
		Message:          message,
		ManifestKey:      manifestKey,
		ManifestSpecific: manifestSpecific,
	}
}

// NewRuntimeError builds a runtime-variant error. The stack trace must
// already be filtered down to user-authored frames; producers apply a
// FrameClassifier before constructing the record.
func NewRuntimeError(id ID, source, message string, fromIncognito bool, severity Severity, contextURL string, stack StackTrace) *Error {
	return &Error{
		Type:          TypeRuntime,
		ExtensionID:   id,
		Source:        source,
		FromIncognito: fromIncognito,
		Message:       message,
		Severity:      severity,
		ContextURL:    contextURL,
		StackTrace:    stack,
	}
}
