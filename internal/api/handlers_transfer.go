package api

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Export(c *fiber.Ctx) error {
	payload, fileName, err := handler.transfer.ExportJSON()
	if err != nil {
		return handler.respondError(c, err)
	}
	c.Attachment(fileName)
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Send(payload)
}

// Import takes the export document either as the raw body or as a "file"
// field of a multipart form.
func (handler *Handler) Import(c *fiber.Ctx) error {
	data, err := importPayload(c)
	if err != nil {
		return handler.respondError(c, err)
	}
	if err := handler.transfer.Import(data); err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"ok":      true,
		"message": handler.i18n.Translate(currentLanguage(c), "message.imported"),
	})
}

func (handler *Handler) Reset(c *fiber.Ctx) error {
	if err := handler.transfer.Reset(); err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"ok":      true,
		"message": handler.i18n.Translate(currentLanguage(c), "message.reset"),
	})
}

func importPayload(c *fiber.Ctx) ([]byte, error) {
	if !strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm) {
		if len(strings.TrimSpace(string(c.Body()))) == 0 {
			return nil, errEmptyBody
		}
		return c.Body(), nil
	}

	header, err := c.FormFile("file")
	if err != nil {
		return nil, errEmptyBody
	}
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}
