package handler

import (
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"applesapi/internal/model"
	"applesapi/internal/service"
)

// appleID returns the decoded :id segment. Routing runs on the raw path, so an id
// sent as x%2Fy still lands on /:id and decodes to x/y here.
func appleID(c *fiber.Ctx) (string, error) {
	return url.PathUnescape(c.Params("id"))
}

func writeInvalidID(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid apple id encoding")
}

// ListApples godoc
// @Summary List apples
// @Tags Apples
// @Produce json
// @Param limit query int false "page size" default(10)
// @Param offset query int false "rows to skip" default(0)
// @Success 200 {object} service.AppleListResult
// @Failure 400 {object} errorPayload
// @Router /api/apples [get]
func ListApples(svc service.AppleService, logger log.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeAppleError(c, logger, err)
		}
		return c.JSON(res)
	}
}

// GetApple godoc
// @Summary Get apple with specified ID
// @Tags Apples
// @Produce json
// @Param id path string true "apple id"
// @Success 200 {object} model.AppleDTO "Apple fetched successfully"
// @Failure 400 {object} errorPayload
// @Failure 404 "Cannot find Apple with specified ID"
// @Router /api/apples/{id} [get]
func GetApple(svc service.AppleService, logger log.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := appleID(c)
		if err != nil {
			return writeInvalidID(c)
		}
		dto, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeAppleError(c, logger, err)
		}
		return c.JSON(dto)
	}
}

// CreateApple godoc
// @Summary Save apple
// @Tags Apples
// @Accept json
// @Produce json
// @Param apple body model.AppleDTO true "apple; id is optional"
// @Success 201 {object} model.AppleDTO "Apple saved successfully"
// @Failure 400 {object} errorPayload
// @Failure 409 "Conflicting apple ID. Entity already exists"
// @Router /api/apples [post]
func CreateApple(svc service.AppleService, logger log.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.AppleDTO
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		dto, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return writeAppleError(c, logger, err)
		}
		return c.Status(fiber.StatusCreated).JSON(dto)
	}
}

// UpdateApple godoc
// @Summary Update apple
// @Description Replaces the name of the apple at the path id. Any id in the body is ignored.
// @Tags Apples
// @Accept json
// @Produce json
// @Param id path string true "apple id"
// @Param apple body model.AppleDTO true "replacement fields"
// @Success 200 {object} model.AppleDTO "Apple updated successfully"
// @Failure 400 {object} errorPayload
// @Failure 404 "Cannot find Apple with specified ID"
// @Router /api/apples/{id} [put]
func UpdateApple(svc service.AppleService, logger log.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := appleID(c)
		if err != nil {
			return writeInvalidID(c)
		}
		var in model.AppleDTO
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		dto, err := svc.Update(c.UserContext(), id, in)
		if err != nil {
			return writeAppleError(c, logger, err)
		}
		return c.JSON(dto)
	}
}

// DeleteApple godoc
// @Summary Delete apple by ID
// @Tags Apples
// @Param id path string true "apple id"
// @Success 204 "Apple deleted successfully"
// @Failure 400 {object} errorPayload
// @Failure 404 "Cannot find Apple with specified ID"
// @Router /api/apples/{id} [delete]
func DeleteApple(svc service.AppleService, logger log.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := appleID(c)
		if err != nil {
			return writeInvalidID(c)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeAppleError(c, logger, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
