package middleware

import "github.com/gofiber/fiber/v2"

// NoStore stops browsers and proxies from caching any response; the dataset
// file can be replaced at any time.
func NoStore(c *fiber.Ctx) error {
	err := c.Next()
	c.Set(fiber.HeaderCacheControl, "no-store")
	return err
}
