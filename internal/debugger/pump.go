package debugger

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"error-console-api/internal/console"
	"error-console-api/internal/extension"
)

// Pump attaches to one debugging target and converts Runtime-domain events
// (uncaught exceptions, console API calls) into runtime errors reported to
// the profile's error console. Events that cannot be attributed to an
// extension (no chrome-extension:// source anywhere) are skipped.
type Pump struct {
	target     *DebuggingTarget
	console    *console.ErrorConsole
	classifier *extension.FrameClassifier
	incognito  bool
	log        *slog.Logger
}

// NewPump builds a pump for target feeding ec. classifier strips internal
// shim frames before records are constructed; nil uses the default table.
func NewPump(target *DebuggingTarget, ec *console.ErrorConsole, classifier *extension.FrameClassifier, log *slog.Logger) *Pump {
	if classifier == nil {
		classifier = extension.DefaultFrameClassifier()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Pump{target: target, console: ec, classifier: classifier, log: log}
}

// SetIncognito marks every error this pump reports as coming from an
// incognito context.
func (p *Pump) SetIncognito(incognito bool) { p.incognito = incognito }

// Capture connects to the target, enables the Runtime domain, and reports
// errors until the connection drops or the timeout elapses. Returns the
// number of errors handed to the console.
func (p *Pump) Capture(timeout time.Duration) (int, error) {
	ws, _, err := websocket.DefaultDialer.Dial(p.target.WebSocketDebuggerUrl, nil)
	if err != nil {
		return 0, fmt.Errorf("websocket connection error: %v", err)
	}
	defer ws.Close()

	if err := p.enableRuntime(ws); err != nil {
		return 0, err
	}

	deadline := time.After(timeout)
	messages := make(chan []byte)

	go func() {
		for {
			_, message, err := ws.ReadMessage()
			if err != nil {
				close(messages)
				return
			}
			messages <- message
		}
	}()

	reported := 0
	for {
		select {
		case message, ok := <-messages:
			if !ok {
				return reported, nil
			}
			if p.handleMessage(message) {
				reported++
			}

		case <-deadline:
			return reported, nil
		}
	}
}

func (p *Pump) enableRuntime(ws *websocket.Conn) error {
	enableRuntime := map[string]any{
		"id":     1,
		"method": "Runtime.enable",
		"params": map[string]any{
			"notifyOnExceptionThrown": true,
		},
	}
	if err := ws.WriteJSON(enableRuntime); err != nil {
		return fmt.Errorf("failed to enable Runtime domain: %v", err)
	}
	return nil
}

// handleMessage reports at most one error per CDP event and says whether it
// did.
func (p *Pump) handleMessage(message []byte) bool {
	var ev cdpEvent
	if err := json.Unmarshal(message, &ev); err != nil {
		return false
	}

	var record *extension.Error
	switch ev.Method {
	case "Runtime.exceptionThrown":
		var params exceptionThrownParams
		if err := json.Unmarshal(ev.Params, &params); err != nil {
			return false
		}
		record = p.errorFromException(&params)

	case "Runtime.consoleAPICalled":
		var params consoleAPICalledParams
		if err := json.Unmarshal(ev.Params, &params); err != nil {
			return false
		}
		record = p.errorFromConsoleCall(&params)
	}

	if record == nil || record.ExtensionID == "" {
		return false
	}
	p.console.ReportError(record)
	p.log.Debug("reported runtime error",
		"extension", record.ExtensionID, "severity", record.Severity,
		"source", record.Source)
	return true
}

// errorFromException converts an uncaught exception. JS errors are always
// error severity.
func (p *Pump) errorFromException(params *exceptionThrownParams) *extension.Error {
	d := params.ExceptionDetails

	message := d.Text
	if d.Exception != nil && d.Exception.Description != "" {
		desc := firstLine(d.Exception.Description)
		switch {
		case message == "":
			message = desc
		case strings.HasPrefix(desc, message):
			message = desc
		default:
			// CDP splits "Uncaught" and "TypeError: ..." across two fields.
			message = message + " " + desc
		}
	}

	raw := rawFrames(d.StackTrace)
	if len(raw) == 0 && d.URL != "" {
		raw = extension.StackTrace{extension.NewStackFrame(
			d.URL, "", uint(d.LineNumber+1), uint(d.ColumnNumber+1))}
	}
	stack := p.classifier.Filter(raw)

	source := d.URL
	if source == "" && len(stack) > 0 {
		source = stack[0].Source
	}

	id, ok := attributeExtension(source, stack)
	if !ok {
		return nil
	}

	return extension.NewRuntimeError(id, source, message, p.incognito,
		extension.SeverityError, p.target.URL, stack)
}

// errorFromConsoleCall converts a console API call into an error record at
// the severity implied by the call type.
func (p *Pump) errorFromConsoleCall(params *consoleAPICalledParams) *extension.Error {
	raw := rawFrames(params.StackTrace)
	stack := p.classifier.Filter(raw)

	var source string
	if len(stack) > 0 {
		source = stack[0].Source
	}

	id, ok := attributeExtension(source, stack)
	if !ok {
		return nil
	}

	return extension.NewRuntimeError(id, source, consoleMessage(params.Args),
		p.incognito, severityForConsoleType(params.Type), p.target.URL, stack)
}

func rawFrames(trace *cdpStackTrace) extension.StackTrace {
	if trace == nil {
		return nil
	}
	frames := make(extension.StackTrace, 0, len(trace.CallFrames))
	for _, f := range trace.CallFrames {
		frames = append(frames, extension.NewStackFrame(
			f.URL, f.FunctionName, uint(f.LineNumber+1), uint(f.ColumnNumber+1)))
	}
	return frames
}

// attributeExtension finds the owning extension id from the source URL or,
// failing that, any frame in the filtered stack.
func attributeExtension(source string, stack extension.StackTrace) (extension.ID, bool) {
	if id, ok := extension.IDFromSourceURL(source); ok {
		return id, true
	}
	for _, f := range stack {
		if id, ok := extension.IDFromSourceURL(f.Source); ok {
			return id, true
		}
	}
	return "", false
}

func consoleMessage(args []remoteObject) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		switch {
		case arg.Value != nil:
			parts = append(parts, fmt.Sprint(arg.Value))
		case arg.Description != "":
			parts = append(parts, arg.Description)
		}
	}
	return strings.Join(parts, " ")
}

func severityForConsoleType(consoleType string) extension.Severity {
	switch consoleType {
	case "error", "assert":
		return extension.SeverityError
	case "warning":
		return extension.SeverityWarning
	default:
		return extension.SeverityInfo
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
