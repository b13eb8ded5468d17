package utils

import "github.com/gofiber/fiber/v2"

// APIResponse is the common envelope for all JSON responses.
type APIResponse struct {
	Status     string      `json:"status"`
	Message    string      `json:"message,omitempty"`
	Results    *int        `json:"results,omitempty"`
	Pagination interface{} `json:"pagination,omitempty"`
	Data       interface{} `json:"data,omitempty"`
}

// SendSuccess sends a 200 success envelope.
func SendSuccess(c *fiber.Ctx, message string, data interface{}) error {
	return SendSuccessWithStatus(c, fiber.StatusOK, message, data)
}

// SendCreated sends a 201 success envelope.
func SendCreated(c *fiber.Ctx, message string, data interface{}) error {
	return SendSuccessWithStatus(c, fiber.StatusCreated, message, data)
}

// SendSuccessWithStatus sends a success envelope with the provided HTTP status code.
func SendSuccessWithStatus(c *fiber.Ctx, status int, message string, data interface{}) error {
	if status == 0 {
		status = fiber.StatusOK
	}

	return c.Status(status).JSON(APIResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// SendList sends a success envelope with a result count and pagination block.
func SendList(c *fiber.Ctx, results int, pagination interface{}, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(APIResponse{
		Status:     "success",
		Results:    &results,
		Pagination: pagination,
		Data:       data,
	})
}

// SendError sends an error envelope with the given status code.
func SendError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "error"
	}

	return c.Status(status).JSON(APIResponse{
		Status:  "error",
		Message: message,
	})
}
