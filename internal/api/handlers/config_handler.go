package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/feedhub/internal/service"
	"github.com/maheshrc27/feedhub/internal/transfer"
)

type ConfigHandler struct {
	cs service.ConfigService
}

func NewConfigHandler(cs service.ConfigService) *ConfigHandler {
	return &ConfigHandler{cs: cs}
}

func (h *ConfigHandler) GetConfig(c *fiber.Ctx) error {
	teamID := GetTeamID(c)
	platform := c.Query("platform")

	if platform == "" {
		configs, err := h.cs.List(c.Context(), teamID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to fetch platform configs",
			})
		}
		return c.Status(fiber.StatusOK).JSON(configs)
	}

	pc, err := h.cs.Get(c.Context(), teamID, platform)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPlatform) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch platform config",
		})
	}

	return c.Status(fiber.StatusOK).JSON(pc)
}

func (h *ConfigHandler) SaveConfig(c *fiber.Ctx) error {
	teamID := GetTeamID(c)

	var input transfer.PlatformConfigInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.cs.Save(c.Context(), teamID, &input); err != nil {
		if errors.Is(err, service.ErrInvalidPlatform) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to save platform config",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
