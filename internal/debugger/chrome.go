package debugger

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

// ChromeDebugger handles communication with Chrome's debugging protocol.
type ChromeDebugger struct {
	debugURL string
	log      *slog.Logger
}

// NewChromeDebugger creates a debugger pointed at the given discovery URL
// ("" for the default local endpoint).
func NewChromeDebugger(debugURL string, log *slog.Logger) *ChromeDebugger {
	if debugURL == "" {
		debugURL = DefaultChromeDebuggerURL
	}
	if log == nil {
		log = slog.Default()
	}
	return &ChromeDebugger{debugURL: debugURL, log: log}
}

// GetDebuggingTargets maps each requested URL to the first page target whose
// URL contains it. URLs with no matching target are absent from the result.
func (c *ChromeDebugger) GetDebuggingTargets(urls []string) (map[string]*DebuggingTarget, error) {
	resp, err := http.Get(c.debugURL)
	if err != nil {
		return nil, fmt.Errorf("error getting debug targets: %v", err)
	}
	defer resp.Body.Close()

	var targets []DebuggingTarget
	if err := json.NewDecoder(resp.Body).Decode(&targets); err != nil {
		return nil, fmt.Errorf("error decoding targets: %v", err)
	}

	urlTargets := make(map[string]*DebuggingTarget)
	for _, url := range urls {
		for i, target := range targets {
			if target.Type == "page" && strings.Contains(target.URL, url) {
				c.log.Debug("found debugging target",
					"url", url, "websocket", target.WebSocketDebuggerUrl)
				urlTargets[url] = &targets[i]
				break
			}
		}
	}

	return urlTargets, nil
}
