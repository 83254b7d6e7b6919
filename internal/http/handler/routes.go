package handler

import (
	"database/sql"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"billdocs/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers only translate between HTTP and the services.
func RegisterRoutes(app *fiber.App, db *sql.DB, docSvc service.DocumentService, clientSvc service.ClientService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Get("/documents", ListDocuments(docSvc))
	app.Post("/documents", CreateDocument(docSvc))
	app.Get("/documents/:id", GetDocument(docSvc))
	app.Patch("/documents/:id", UpdateDocument(docSvc))
	app.Post("/documents/:id/export", ExportDocument(docSvc))

	app.Get("/clients", ListClients(clientSvc))
	app.Post("/clients", CreateClient(clientSvc))
	app.Get("/clients/:id", GetClient(clientSvc))
	app.Patch("/clients/:id", UpdateClient(clientSvc))
}

// pageParams reads limit and offset. A missing limit means no limit.
// On bad input it returns the error code to report.
func pageParams(c *fiber.Ctx) (limit, offset int, errCode string) {
	limit, err := strconv.Atoi(c.Query("limit", "0"))
	if err != nil || limit < 0 {
		return 0, 0, "INVALID_LIMIT"
	}
	offset, err = strconv.Atoi(c.Query("offset", "0"))
	if err != nil || offset < 0 {
		return 0, 0, "INVALID_OFFSET"
	}
	return limit, offset, ""
}

// pathID returns the :id parameter when it is a UUID.
func pathID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}
