package controller

import (
	"vocabforge-be/internal/dto"
	"vocabforge-be/internal/pkg/serverutils"
	"vocabforge-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	ResetQuota(ctx *fiber.Ctx) error
	BulkResetQuota(ctx *fiber.Ctx) error
	ChangeTier(ctx *fiber.Ctx) error
	UsageReport(ctx *fiber.Ctx) error
	CostSnapshot(ctx *fiber.Ctx) error
	EmergencyStop(ctx *fiber.Ctx) error
}

type adminController struct {
	service service.IQuotaService
}

func NewAdminController(service service.IQuotaService) IAdminController {
	return &adminController{service: service}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1")
	h.Post("/quota/reset", c.ResetQuota)
	h.Post("/quota/bulk-reset", c.BulkResetQuota)
	h.Post("/quota/tier", c.ChangeTier)
	h.Get("/quota/usage", c.UsageReport)
	h.Get("/cost", c.CostSnapshot)
	h.Post("/cost/emergency-stop", c.EmergencyStop)
}

func (c *adminController) ResetQuota(ctx *fiber.Ctx) error {
	var req dto.ResetQuotaRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.ResetUser(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success reset quota", nil))
}

func (c *adminController) BulkResetQuota(ctx *fiber.Ctx) error {
	var req dto.BulkResetQuotaRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.BulkResetTier(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success bulk reset quota", res))
}

func (c *adminController) ChangeTier(ctx *fiber.Ctx) error {
	var req dto.ChangeTierRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.ChangeTier(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success change tier", nil))
}

func (c *adminController) UsageReport(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 50)

	res, err := c.service.UsageReport(ctx.Context(), limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get usage report", res))
}

func (c *adminController) CostSnapshot(ctx *fiber.Ctx) error {
	res := c.service.CostSnapshot(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Success get cost snapshot", res))
}

func (c *adminController) EmergencyStop(ctx *fiber.Ctx) error {
	var req dto.EmergencyStopRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	c.service.SetEmergencyStop(ctx.Context(), req.Engaged)

	return ctx.JSON(serverutils.SuccessResponse("Success set emergency stop", req))
}
