package controller

import (
	"vocabforge-be/internal/dto"
	"vocabforge-be/internal/pkg/serverutils"
	"vocabforge-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IGenerationController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	Moderate(ctx *fiber.Ctx) error
}

type generationController struct {
	service service.IGenerationService
}

func NewGenerationController(service service.IGenerationService) IGenerationController {
	return &generationController{service: service}
}

func (c *generationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/generation/v1")
	h.Post("/generate", c.Generate)
	h.Post("/moderate", c.Moderate)
}

func (c *generationController) Generate(ctx *fiber.Ctx) error {
	userId, tier, err := serverutils.UserFromHeaders(ctx)
	if err != nil {
		return err
	}

	var req dto.GenerateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	req.UserId = userId
	req.Tier = tier

	res, err := c.service.Generate(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Success enqueue generation job", res))
}

func (c *generationController) Moderate(ctx *fiber.Ctx) error {
	var req dto.ModerateTermRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.ModerateTerm(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success moderate term", res))
}
