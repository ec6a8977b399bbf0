package controller

import (
	"vocabforge-be/internal/dto"
	"vocabforge-be/internal/pkg/serverutils"
	"vocabforge-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ITopicController interface {
	RegisterRoutes(r fiber.Router)
	Adopt(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
}

type topicController struct {
	service service.ITopicService
}

func NewTopicController(service service.ITopicService) ITopicController {
	return &topicController{service: service}
}

func (c *topicController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/topic/v1")
	h.Get("", c.GetAll)
	h.Post("", c.Adopt)
	h.Put(":id", c.Update)
}

func (c *topicController) Adopt(ctx *fiber.Ctx) error {
	userId, _, err := serverutils.UserFromHeaders(ctx)
	if err != nil {
		return err
	}

	var req dto.AdoptTopicRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	req.UserId = userId

	res, err := c.service.Adopt(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success adopt topic", res))
}

func (c *topicController) GetAll(ctx *fiber.Ctx) error {
	userId, _, err := serverutils.UserFromHeaders(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.List(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all topic", res))
}

func (c *topicController) Update(ctx *fiber.Ctx) error {
	idParam := ctx.Params("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid topic id")
	}

	var req dto.UpdateUserTopicRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	req.Id = id

	if err := c.service.Update(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success update topic", nil))
}
