package handler

import (
	"github.com/gofiber/fiber/v2"

	"billdocs/internal/service"
)

// ListDocuments lists documents newest first.
// @Summary      List documents
// @Description  Documents ordered by creation date, newest first, with the live client summary. Without limit every document is returned.
// @Tags         documents
// @Produce      json
// @Param        limit   query     int  false  "Page size"
// @Param        offset  query     int  false  "Rows to skip"
// @Success      200     {object}  service.DocumentListResult
// @Failure      400     {object}  errorPayload
// @Router       /documents [get]
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, code := pageParams(c)
		if code != "" {
			return writeError(c, fiber.StatusBadRequest, code, "invalid pagination parameter")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// CreateDocument issues a quote, invoice or credit note.
// @Summary      Create document
// @Description  Totals and the display reference are computed by the server. Any total sent by the caller is ignored.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        document  body      service.CreateDocumentInput  true  "Document contents"
// @Success      201       {object}  service.MutationResult
// @Failure      400       {object}  errorPayload
// @Failure      409       {object}  errorPayload
// @Router       /documents [post]
func CreateDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.CreateDocumentInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be a JSON document")
		}

		res, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// GetDocument returns one document with its line items.
// @Summary      Get document
// @Tags         documents
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  service.DocumentView
// @Failure      404  {object}  errorPayload
// @Router       /documents/{id} [get]
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// UpdateDocument applies a partial update.
// @Summary      Update document
// @Description  Only the fields present in the body change. Sending line_items recomputes every total.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id        path      string                       true  "Document ID"
// @Param        document  body      service.UpdateDocumentInput  true  "Fields to change"
// @Success      200       {object}  service.MutationResult
// @Failure      400       {object}  errorPayload
// @Failure      404       {object}  errorPayload
// @Failure      409       {object}  errorPayload
// @Router       /documents/{id} [patch]
func UpdateDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var in service.UpdateDocumentInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be a JSON document")
		}

		res, err := svc.Update(c.UserContext(), id, in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// ExportDocument archives the printable page and returns a temporary link.
// @Summary      Export document
// @Tags         documents
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      201  {object}  service.ExportResult
// @Failure      404  {object}  errorPayload
// @Failure      503  {object}  errorPayload
// @Router       /documents/{id}/export [post]
func ExportDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		res, err := svc.Export(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}
