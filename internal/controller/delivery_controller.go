package controller

import (
	"vocabforge-be/internal/dto"
	"vocabforge-be/internal/pkg/serverutils"
	"vocabforge-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDeliveryController interface {
	RegisterRoutes(r fiber.Router)
	NextWord(ctx *fiber.Ctx) error
	RecordAction(ctx *fiber.Ctx) error
}

type deliveryController struct {
	service service.IDeliveryService
}

func NewDeliveryController(service service.IDeliveryService) IDeliveryController {
	return &deliveryController{service: service}
}

func (c *deliveryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/delivery/v1")
	h.Get("/next", c.NextWord)
	h.Post("/action", c.RecordAction)
}

func (c *deliveryController) NextWord(ctx *fiber.Ctx) error {
	userId, _, err := serverutils.UserFromHeaders(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.NextWord(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get next word", res))
}

func (c *deliveryController) RecordAction(ctx *fiber.Ctx) error {
	userId, _, err := serverutils.UserFromHeaders(ctx)
	if err != nil {
		return err
	}

	var req dto.RecordActionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	req.UserId = userId

	res, err := c.service.RecordAction(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success record action", res))
}
