package uploadmock

import (
	"io"

	"github.com/gofiber/fiber/v2"
)

// RegisterRequest is the payload for creating a mock user.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// NewServer builds the mock upload application around the given store.
// The server exists for documentation and client-testing purposes only; it
// performs no real authentication.
func NewServer(store Store) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "platemarket-uploadmock",
	})

	app.Post("/register/", func(c *fiber.Ctx) error {
		var req RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
		}
		if err := store.Register(req.Username, req.Password); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "User already exists"})
		}
		return c.JSON(fiber.Map{"message": "User registered successfully"})
	})

	app.Post("/upload/:username", func(c *fiber.Ctx) error {
		username := c.Params("username")
		if !store.UserExists(username) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "User not found"})
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "file missing"})
		}
		file, err := fileHeader.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "failed to open file"})
		}
		defer file.Close()

		contents, err := io.ReadAll(file)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "failed to read file"})
		}

		records, err := ParseCSV(string(contents))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid CSV"})
		}

		if err := store.AppendRecords(username, records); err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "User not found"})
		}
		return c.JSON(fiber.Map{"message": "File uploaded successfully"})
	})

	app.Get("/users/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"users": store.Usernames()})
	})

	app.Get("/user/:username", func(c *fiber.Ctx) error {
		records, err := store.Records(c.Params("username"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "User not found"})
		}
		return c.JSON(fiber.Map{"data": records})
	})

	app.Get("/data/:username", func(c *fiber.Ctx) error {
		records, err := store.Records(c.Params("username"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "User not found"})
		}
		return c.JSON(records)
	})

	return app
}
