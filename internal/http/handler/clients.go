package handler

import (
	"github.com/gofiber/fiber/v2"

	"billdocs/internal/service"
)

// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Param        limit   query     int  false  "Page size"
// @Param        offset  query     int  false  "Rows to skip"
// @Success      200     {object}  service.ClientListResult
// @Router       /clients [get]
func ListClients(svc service.ClientService) fiber.Handler {
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

// @Summary      Create client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        client  body      service.CreateClientInput  true  "Client"
// @Success      201     {object}  model.Client
// @Failure      400     {object}  errorPayload
// @Router       /clients [post]
func CreateClient(svc service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.CreateClientInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be a JSON document")
		}
		client, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(client)
	}
}

// @Summary      Get client
// @Tags         clients
// @Produce      json
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  model.Client
// @Failure      404  {object}  errorPayload
// @Router       /clients/{id} [get]
func GetClient(svc service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		client, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(client)
	}
}

// UpdateClient changes the live client record. Snapshots on issued documents keep their values.
// @Summary      Update client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id      path      string                     true  "Client ID"
// @Param        client  body      service.UpdateClientInput  true  "Fields to change"
// @Success      200     {object}  model.Client
// @Failure      404     {object}  errorPayload
// @Router       /clients/{id} [patch]
func UpdateClient(svc service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var in service.UpdateClientInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be a JSON document")
		}
		client, err := svc.Update(c.UserContext(), id, in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(client)
	}
}
