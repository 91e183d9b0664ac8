package controller

import (
	"github.com/gofiber/fiber/v2"

	"callcenter-analysis-be/internal/dto"
	"callcenter-analysis-be/internal/pkg/serverutils"
	"callcenter-analysis-be/internal/service"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	GetDashboard(ctx *fiber.Ctx) error
	GetTrends(ctx *fiber.Ctx) error
	GetConversations(ctx *fiber.Ctx) error
	GetDatabaseStats(ctx *fiber.Ctx) error
	GetLogs(ctx *fiber.Ctx) error
	GetLogDetail(ctx *fiber.Ctx) error
}

type adminController struct {
	service service.IDashboardService
}

func NewAdminController(service service.IDashboardService) IAdminController {
	return &adminController{
		service: service,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")

	// Archive
	h.Get("/dashboard", c.GetDashboard)
	h.Get("/trends", c.GetTrends)
	h.Get("/conversations", c.GetConversations)
	h.Get("/database-stats", c.GetDatabaseStats)

	// Logs
	h.Get("/logs", c.GetLogs)
	h.Get("/logs/:id", c.GetLogDetail)
}

func (c *adminController) GetDashboard(ctx *fiber.Ctx) error {
	var query dto.DashboardQuery
	if err := ctx.QueryParser(&query); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid query"))
	}

	res, err := c.service.GetDashboard(ctx.Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Dashboard", res))
}

func (c *adminController) GetTrends(ctx *fiber.Ctx) error {
	var query dto.TrendsQuery
	if err := ctx.QueryParser(&query); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid query"))
	}
	if err := serverutils.ValidateRequest(&query); err != nil {
		return err
	}

	res, err := c.service.GetTrends(ctx.Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Trends", res))
}

func (c *adminController) GetConversations(ctx *fiber.Ctx) error {
	var query dto.ConversationListQuery
	if err := ctx.QueryParser(&query); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid query"))
	}
	if err := serverutils.ValidateRequest(&query); err != nil {
		return err
	}

	res, err := c.service.GetConversations(ctx.Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Conversations", res))
}

func (c *adminController) GetDatabaseStats(ctx *fiber.Ctx) error {
	res, err := c.service.GetDatabaseStats(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Database stats", res))
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	query := dto.LogListQuery{Page: 1, Limit: 10}
	if err := ctx.QueryParser(&query); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid query"))
	}
	if err := serverutils.ValidateRequest(&query); err != nil {
		return err
	}

	logs, err := c.service.GetSystemLogs(ctx.Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("System logs", logs))
}

func (c *adminController) GetLogDetail(ctx *fiber.Ctx) error {
	logId := ctx.Params("id") // MD5 of the log line

	l, err := c.service.GetLogDetail(ctx.Context(), logId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Log detail", l))
}
