package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Team and user identity come from the session middleware, never from
// request input.
func GetTeamID(c *fiber.Ctx) int64 {
	teamID, _ := strconv.Atoi(c.Locals("team_id").(string))
	return int64(teamID)
}

func GetUserID(c *fiber.Ctx) int64 {
	userID, _ := strconv.Atoi(c.Locals("user_id").(string))
	return int64(userID)
}
