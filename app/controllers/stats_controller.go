package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/avtonomer/platemarket/internal/pkg/statistics"
)

// HandleStats returns cached marketplace-wide counters.
func HandleStats(c *fiber.Ctx) error {
	return c.JSON(statistics.GetStatisticsData())
}
