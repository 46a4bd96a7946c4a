package handlers

import (
	"github.com/gofiber/fiber/v2"

	"error-console-api/internal/debugger"
)

// AttachDebugger attaches a runtime-error pump to every page target matching
// the requested URLs and captures for the configured window. Captured errors
// flow into the profile's console; the response only carries per-target
// counts.
func (h *Handlers) AttachDebugger(c *fiber.Ctx) error {
	p, err := h.lookupProfile(c)
	if p == nil {
		return err
	}

	var req debugger.AttachRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if len(req.URLs) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "No URLs provided"})
	}

	targets, err := h.Chrome.GetDebuggingTargets(req.URLs)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	response := debugger.AttachResponse{
		Reported: make(map[string]int),
		Errors:   make(map[string]string),
	}

	ec := h.Consoles.Get(p)

	// Capture every target concurrently; the console serializes reports.
	resultsChan := make(chan struct {
		url      string
		reported int
		err      error
	}, len(targets))

	for url, target := range targets {
		go func(url string, target *debugger.DebuggingTarget) {
			pump := debugger.NewPump(target, ec, h.Classifier, h.Log)
			reported, err := pump.Capture(h.CaptureTimeout)
			resultsChan <- struct {
				url      string
				reported int
				err      error
			}{url, reported, err}
		}(url, target)
	}

	for i := 0; i < len(targets); i++ {
		result := <-resultsChan
		if result.err != nil {
			response.Errors[result.url] = result.err.Error()
		} else {
			response.Reported[result.url] = result.reported
		}
	}

	for _, url := range req.URLs {
		if _, ok := targets[url]; !ok {
			response.Errors[url] = "no matching debugging target"
		}
	}

	return c.JSON(response)
}
