package presenter

import "github.com/gofiber/fiber/v2"

// Envelope is the body shape of every JSON response.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

// Respond writes an envelope carrying data; nil data is omitted.
func Respond(c *fiber.Ctx, status int, message string, data any) error {
	return JSON(c, status, Envelope{StatusCode: status, Message: message, Data: data})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return Respond(c, status, message, nil)
}
