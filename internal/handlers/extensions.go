package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"error-console-api/internal/extension"
	"error-console-api/internal/manifest"
)

type loadExtensionRequest struct {
	// ID is optional; a fresh id is generated when absent.
	ID       extension.ID    `json:"id"`
	Manifest json.RawMessage `json:"manifest"`
}

// LoadExtension validates an extension manifest and reports every problem
// found to the profile's error console. Validation problems are data, not
// failures: the response is 200 with the assigned id and the number of
// manifest errors detected (which the console only retains while developer
// mode is on).
func (h *Handlers) LoadExtension(c *fiber.Ctx) error {
	p, err := h.lookupProfile(c)
	if p == nil {
		return err
	}

	var req loadExtensionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if len(req.Manifest) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "manifest is required"})
	}

	id := req.ID
	if id == "" {
		id = extension.GenerateID()
	}

	errs := manifest.Validate(id, req.Manifest)
	ec := h.Consoles.Get(p)
	for _, record := range errs {
		ec.ReportError(record)
	}

	h.Log.Info("extension loaded", "profile", p.ID, "extension", id,
		"manifest_errors", len(errs))
	return c.JSON(fiber.Map{
		"id":             id,
		"manifestErrors": len(errs),
	})
}
