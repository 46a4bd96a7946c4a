package server

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"error-console-api/internal/config"
	"error-console-api/internal/console"
	"error-console-api/internal/debugger"
	"error-console-api/internal/extension"
	"error-console-api/internal/handlers"
	"error-console-api/internal/profile"
)

// New wires the service from cfg and returns the fiber app ready to listen.
func New(cfg *config.Config) (*fiber.App, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	profiles, err := profile.NewManager(cfg.DataDir, logger)
	if err != nil {
		return nil, fmt.Errorf("profile manager: %v", err)
	}
	classifier, err := extension.NewFrameClassifier(cfg.InternalFramePatterns)
	if err != nil {
		return nil, err
	}

	h := &handlers.Handlers{
		Profiles:       profiles,
		Consoles:       console.NewRegistry(cfg.MaxTotalErrors, logger),
		Chrome:         debugger.NewChromeDebugger(cfg.ChromeDebuggerURL, logger),
		Classifier:     classifier,
		CaptureTimeout: time.Duration(cfg.CaptureTimeoutSeconds) * time.Second,
		Log:            logger,
	}

	app := fiber.New()

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("🚀 Error Console API is running!")
	})

	// Test route that creates errors in Chrome
	app.Get("/test-errors", h.HandleTestErrors)

	app.Post("/profiles", h.CreateProfile)
	app.Delete("/profiles/:id", h.DeleteProfile)
	app.Get("/profiles/:id/prefs/developer-mode", h.GetDeveloperMode)
	app.Put("/profiles/:id/prefs/developer-mode", h.SetDeveloperMode)
	app.Post("/profiles/:id/extensions", h.LoadExtension)
	app.Get("/profiles/:id/extensions/:extensionID/errors", h.GetExtensionErrors)
	app.Post("/profiles/:id/errors", h.ReportError)
	app.Post("/profiles/:id/debugger/attach", h.AttachDebugger)

	return app, nil
}

// SetupAndRun builds the app and listens until the server stops.
func SetupAndRun(cfg *config.Config) error {
	app, err := New(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("🚀 Server starting on http://localhost:%d\n", cfg.Port)

	return app.Listen(fmt.Sprintf(":%d", cfg.Port))
}
