// Package handlers exposes the error console over HTTP: profile lifecycle,
// the developer-mode preference, error ingestion (manifest validation,
// direct reports, DevTools capture), and per-extension error queries.
package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"error-console-api/internal/console"
	"error-console-api/internal/debugger"
	"error-console-api/internal/extension"
	"error-console-api/internal/profile"
)

// Handlers carries the service dependencies into each route.
type Handlers struct {
	Profiles       *profile.Manager
	Consoles       *console.Registry
	Chrome         *debugger.ChromeDebugger
	Classifier     *extension.FrameClassifier
	CaptureTimeout time.Duration
	Log            *slog.Logger
}

// lookupProfile resolves the :id path param. On a miss the 404 response has
// already been written and the returned profile is nil.
func (h *Handlers) lookupProfile(c *fiber.Ctx) (*profile.Profile, error) {
	p, err := h.Profiles.Get(c.Params("id"))
	if err != nil {
		return nil, c.Status(404).JSON(fiber.Map{"error": "Profile not found"})
	}
	return p, nil
}
