package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/feedhub/configs"
	"github.com/maheshrc27/feedhub/internal/service"
)

type ConnectHandler struct {
	cs  service.ConnectionService
	cfg config.Config
}

func NewConnectHandler(cs service.ConnectionService, cfg config.Config) *ConnectHandler {
	return &ConnectHandler{cs: cs, cfg: cfg}
}

// BeginAuth builds the provider consent URL and sends the user agent there.
func (h *ConnectHandler) BeginAuth(c *fiber.Ctx) error {
	teamID := GetTeamID(c)
	platform := c.Params("platform")

	authURL, err := h.cs.BeginAuth(c.Context(), teamID, platform)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPlatform):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, service.ErrMissingClientCredentials):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to start authorization",
		})
	}

	return c.Redirect(authURL)
}

// Callback finishes the round trip: state check, code exchange, token save.
// Redirecting to the frontend on every outcome strips the code and state
// from the visible URL so the code cannot be replayed.
func (h *ConnectHandler) Callback(c *fiber.Ctx) error {
	teamID := GetTeamID(c)
	userID := GetUserID(c)
	platform := c.Params("platform")

	err := h.cs.HandleCallback(
		c.Context(),
		teamID,
		userID,
		platform,
		c.Query("code"),
		c.Query("state"),
		c.Query("error"),
		c.Query("error_description"),
	)
	if err != nil {
		slog.Info(err.Error())
		redirectURL := fmt.Sprintf("%s/dashboard/connections?connect_error=%s", h.cfg.FrontendURL, url.QueryEscape(err.Error()))
		return c.Redirect(redirectURL, fiber.StatusTemporaryRedirect)
	}

	redirectURL := fmt.Sprintf("%s/dashboard/connections?connected=%s", h.cfg.FrontendURL, url.QueryEscape(platform))
	return c.Redirect(redirectURL, fiber.StatusTemporaryRedirect)
}

func (h *ConnectHandler) ListConnections(c *fiber.Ctx) error {
	teamID := GetTeamID(c)

	connections, err := h.cs.List(c.Context(), teamID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch connections",
		})
	}

	return c.Status(fiber.StatusOK).JSON(connections)
}

func (h *ConnectHandler) Disconnect(c *fiber.Ctx) error {
	teamID := GetTeamID(c)
	platform := c.Query("platform")

	err := h.cs.Disconnect(c.Context(), teamID, platform)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPlatform) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to disconnect platform",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
