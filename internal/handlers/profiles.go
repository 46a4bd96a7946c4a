package handlers

import (
	"github.com/gofiber/fiber/v2"

	"error-console-api/internal/prefs"
)

// CreateProfile makes a new profile and returns its id.
func (h *Handlers) CreateProfile(c *fiber.Ctx) error {
	p, err := h.Profiles.Create()
	if err != nil {
		h.Log.Error("creating profile", "error", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create profile"})
	}
	return c.Status(201).JSON(fiber.Map{"id": p.ID})
}

// DeleteProfile tears down the profile's console (broadcasting the destroyed
// notification to its observers) and removes the profile.
func (h *Handlers) DeleteProfile(c *fiber.Ctx) error {
	p, err := h.lookupProfile(c)
	if p == nil {
		return err
	}

	h.Consoles.Remove(p)
	if err := h.Profiles.Remove(p.ID); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to remove profile"})
	}
	return c.JSON(fiber.Map{"message": "Profile removed"})
}

// GetDeveloperMode reads the profile's developer-mode preference.
func (h *Handlers) GetDeveloperMode(c *fiber.Ctx) error {
	p, err := h.lookupProfile(c)
	if p == nil {
		return err
	}
	return c.JSON(fiber.Map{"enabled": p.Prefs.GetBool(prefs.DeveloperMode)})
}

// SetDeveloperMode flips the profile's developer-mode preference. Turning it
// off purges every stored error for the profile.
func (h *Handlers) SetDeveloperMode(c *fiber.Ctx) error {
	p, err := h.lookupProfile(c)
	if p == nil {
		return err
	}

	var req struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	// Make sure the console exists so the transition is observed even when
	// nothing has been reported yet.
	h.Consoles.Get(p)
	if err := p.Prefs.SetBool(prefs.DeveloperMode, req.Enabled); err != nil {
		h.Log.Warn("persisting developer mode", "profile", p.ID, "error", err)
	}
	return c.JSON(fiber.Map{"enabled": req.Enabled})
}
