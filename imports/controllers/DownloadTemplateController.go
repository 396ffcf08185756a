package controllers

import (
	"fmt"

	"sales-ops-backend/imports/services"

	"github.com/gofiber/fiber/v2"
)

// DownloadTemplate streams a freshly built import template for the requested
// entity type. Reference sheets are rebuilt on every request so identifier
// lists are never stale.
func (ic *ImportController) DownloadTemplate(c *fiber.Ctx) error {
	entityType, err := services.ParseEntityType(c.Params("entityType"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Unknown entity type",
			"error":   err.Error(),
		})
	}

	f, err := ic.TemplateGen.Generate(c.Context(), entityType)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to generate template",
			"error":   err.Error(),
		})
	}

	fileName := fmt.Sprintf("%s_import_template.xlsx", entityType)
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, fileName))

	buf, err := f.WriteToBuffer()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to write template",
			"error":   err.Error(),
		})
	}
	return c.Send(buf.Bytes())
}
