package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready reports whether the dataset can currently be loaded.
func Ready(c *fiber.Ctx) error {
	if _, err := loadTable(); err != nil {
		zap.L().Warn("readiness check failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "data_unavailable"})
	}
	return c.JSON(fiber.Map{"status": "ready"})
}
