package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shoestore/database"
)

// GetSQLLogs returns recent SQL queries for debugging
func GetSQLLogs(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"queries": database.SQLLogger.GetQueries(),
	})
}

// ClearSQLLogs clears the SQL query log
func ClearSQLLogs(c *fiber.Ctx) error {
	database.SQLLogger.Clear()
	return c.JSON(fiber.Map{"status": "cleared"})
}
