package controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// parsePagination reads the skip/limit query parameters with the usual
// defaults. Negative values are rejected as invalid arguments.
func parsePagination(c *fiber.Ctx) (skip int, limit int, ok bool) {
	skip = c.QueryInt("skip", 0)
	limit = c.QueryInt("limit", 10)
	if skip < 0 || limit < 0 {
		return 0, 0, false
	}
	return skip, limit, true
}

// queryFloatPtr returns a pointer to the float value of the query parameter,
// nil when the parameter is absent, ok=false when it is present but invalid.
func queryFloatPtr(c *fiber.Ctx, name string) (*float64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, false
	}
	return &val, true
}

// queryIntPtr returns a pointer to the int value of the query parameter,
// nil when the parameter is absent, ok=false when it is present but invalid.
func queryIntPtr(c *fiber.Ctx, name string) (*int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return nil, false
	}
	return &val, true
}

// queryUintPtr returns a pointer to the uint value of the query parameter,
// nil when the parameter is absent, ok=false when it is present but invalid.
func queryUintPtr(c *fiber.Ctx, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	val, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, false
	}
	u := uint(val)
	return &u, true
}

// paramUint parses a numeric route parameter.
func paramUint(c *fiber.Ctx, name string) (uint, bool) {
	val, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(val), true
}

// GetClientIP determines the actual client IP address considering proxies.
// Proxy headers win over the socket address so that the geolocation lookup
// sees the original client, not the load balancer.
func GetClientIP(c *fiber.Ctx) string {
	if cfIP := strings.TrimSpace(c.Get("CF-Connecting-IP")); cfIP != "" {
		return cfIP
	}

	// X-Forwarded-For can contain a list of IPs - the first one is the
	// original client IP
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}

	ip := c.IP()
	// Unwrap IPv4-mapped-IPv6 addresses (::ffff:192.168.1.1)
	if strings.HasPrefix(ip, "::ffff:") && strings.Contains(ip, ".") {
		return strings.TrimPrefix(ip, "::ffff:")
	}
	return ip
}

func errorResponse(c *fiber.Ctx, status int, kind, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   kind,
		"message": message,
	})
}
