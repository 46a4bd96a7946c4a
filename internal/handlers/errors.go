package handlers

import (
	"github.com/gofiber/fiber/v2"

	"error-console-api/internal/extension"
)

// GetExtensionErrors lists the stored errors for one extension, in detection
// order. The list is empty both when nothing was reported and when developer
// mode was off at report time.
func (h *Handlers) GetExtensionErrors(c *fiber.Ctx) error {
	p, err := h.lookupProfile(c)
	if p == nil {
		return err
	}

	id := extension.ID(c.Params("extensionID"))
	errors := h.Consoles.Get(p).GetErrorsForExtension(id)
	if errors == nil {
		errors = []*extension.Error{}
	}
	return c.JSON(fiber.Map{
		"extensionId": id,
		"errors":      errors,
	})
}

type reportRequest struct {
	Type          extension.ErrorType `json:"type"`
	ExtensionID   extension.ID        `json:"extensionId"`
	Source        string              `json:"source"`
	FromIncognito bool                `json:"fromIncognito"`
	Message       string              `json:"message"`

	ManifestKey      string `json:"manifestKey"`
	ManifestSpecific string `json:"manifestSpecific"`

	Severity   extension.Severity   `json:"severity"`
	ContextURL string               `json:"contextUrl"`
	StackTrace extension.StackTrace `json:"stackTrace"`
}

// ReportError ingests one error from an external producer. Runtime stacks
// arrive raw and go through the internal-frame filter here; manifest records
// get their fixed source and incognito attribution from the constructor no
// matter what the producer sent.
func (h *Handlers) ReportError(c *fiber.Ctx) error {
	p, err := h.lookupProfile(c)
	if p == nil {
		return err
	}

	var req reportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.ExtensionID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "extensionId is required"})
	}

	var record *extension.Error
	switch req.Type {
	case extension.TypeManifest:
		record = extension.NewManifestError(
			req.ExtensionID, req.Message, req.ManifestKey, req.ManifestSpecific)

	case extension.TypeRuntime:
		severity := req.Severity
		if severity == "" {
			severity = extension.SeverityError
		}
		raw := make(extension.StackTrace, 0, len(req.StackTrace))
		for _, f := range req.StackTrace {
			raw = append(raw, extension.NewStackFrame(f.Source, f.Function, f.Line, f.Column))
		}
		stack := h.Classifier.Filter(raw)
		record = extension.NewRuntimeError(req.ExtensionID, req.Source,
			req.Message, req.FromIncognito, severity, req.ContextURL, stack)

	default:
		return c.Status(400).JSON(fiber.Map{"error": "Unknown error type"})
	}

	h.Consoles.Get(p).ReportError(record)
	return c.Status(202).JSON(fiber.Map{"accepted": true})
}
