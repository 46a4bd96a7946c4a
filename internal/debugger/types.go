package debugger

import "encoding/json"

// DefaultChromeDebuggerURL is the DevTools Protocol (CDP) discovery endpoint.
const DefaultChromeDebuggerURL = "http://localhost:9222/json"

// DebuggingTarget represents a Chrome debugging target.
type DebuggingTarget struct {
	ID                   string `json:"id"`
	Type                 string `json:"type"`
	Title                string `json:"title"`
	URL                  string `json:"url"`
	WebSocketDebuggerUrl string `json:"webSocketDebuggerUrl"`
}

// AttachRequest asks the service to attach error pumps to the targets
// matching the given URLs.
type AttachRequest struct {
	URLs []string `json:"urls"`
}

// AttachResponse reports how many errors each pump captured, or why a target
// could not be attached.
type AttachResponse struct {
	Reported map[string]int    `json:"reported"` // URL -> errors reported
	Errors   map[string]string `json:"errors"`   // URL -> attach failure
}

// CDP wire types, limited to the Runtime-domain events the pump consumes.

type cdpEvent struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

type remoteObject struct {
	Type        string `json:"type"`
	Value       any    `json:"value,omitempty"`
	Description string `json:"description,omitempty"`
}

// callFrame positions are 0-based on the wire.
type callFrame struct {
	FunctionName string `json:"functionName"`
	URL          string `json:"url"`
	LineNumber   int    `json:"lineNumber"`
	ColumnNumber int    `json:"columnNumber"`
}

type cdpStackTrace struct {
	CallFrames []callFrame `json:"callFrames"`
}

type exceptionDetails struct {
	Text         string         `json:"text"`
	URL          string         `json:"url"`
	LineNumber   int            `json:"lineNumber"`
	ColumnNumber int            `json:"columnNumber"`
	Exception    *remoteObject  `json:"exception,omitempty"`
	StackTrace   *cdpStackTrace `json:"stackTrace,omitempty"`
}

type exceptionThrownParams struct {
	ExceptionDetails exceptionDetails `json:"exceptionDetails"`
}

type consoleAPICalledParams struct {
	Type       string         `json:"type"`
	Args       []remoteObject `json:"args"`
	StackTrace *cdpStackTrace `json:"stackTrace,omitempty"`
}
