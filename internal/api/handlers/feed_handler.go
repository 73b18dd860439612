package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/feedhub/internal/providers"
	"github.com/maheshrc27/feedhub/internal/service"
	"github.com/maheshrc27/feedhub/internal/transfer"
)

type FeedHandler struct {
	fs service.FeedService
}

func NewFeedHandler(fs service.FeedService) *FeedHandler {
	return &FeedHandler{fs: fs}
}

func (h *FeedHandler) ListFeeds(c *fiber.Ctx) error {
	teamID := GetTeamID(c)

	feeds, err := h.fs.List(c.Context(), teamID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch feeds",
		})
	}

	return c.Status(fiber.StatusOK).JSON(feeds)
}

func (h *FeedHandler) CreateFeed(c *fiber.Ctx) error {
	teamID := GetTeamID(c)

	var req transfer.CreateFeedRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	id, err := h.fs.Create(c.Context(), teamID, req.Platform, req.AccountID, req.Label)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPlatform):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, service.ErrNotConnected):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to create feed",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"id": id})
}

func (h *FeedHandler) RemoveFeed(c *fiber.Ctx) error {
	teamID := GetTeamID(c)
	feedID := c.QueryInt("id", 0)

	err := h.fs.Remove(c.Context(), teamID, int64(feedID))
	if err != nil {
		if errors.Is(err, service.ErrFeedNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to remove feed",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

// RefreshFeed pulls live posts. An adapter failure comes back as one
// synthetic error placeholder so the view shows the failure instead of an
// empty list; placeholders are never cached.
func (h *FeedHandler) RefreshFeed(c *fiber.Ctx) error {
	teamID := GetTeamID(c)
	feedID := c.QueryInt("id", 0)
	limit := c.QueryInt("limit", 0)

	posts, err := h.fs.Refresh(c.Context(), teamID, int64(feedID), limit)
	if err != nil {
		var fetchErr *providers.FetchError
		switch {
		case errors.Is(err, service.ErrFeedNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, service.ErrNotConnected), errors.Is(err, service.ErrTokenExpired):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.As(err, &fetchErr):
			return c.Status(fiber.StatusOK).JSON([]interface{}{service.ErrorPlaceholder(err)})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to refresh feed",
		})
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}

func (h *FeedHandler) CachedPosts(c *fiber.Ctx) error {
	teamID := GetTeamID(c)
	feedID := c.QueryInt("id", 0)
	limit := c.QueryInt("limit", 0)

	posts, err := h.fs.CachedPosts(c.Context(), teamID, int64(feedID), limit)
	if err != nil {
		if errors.Is(err, service.ErrFeedNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to read cached posts",
		})
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}
