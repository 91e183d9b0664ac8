package controller

import (
	"github.com/gofiber/fiber/v2"

	"callcenter-analysis-be/internal/dto"
	"callcenter-analysis-be/internal/pkg/serverutils"
	"callcenter-analysis-be/internal/service"
)

type ITicketController interface {
	RegisterRoutes(r fiber.Router)
	CreateServiceRequest(ctx *fiber.Ctx) error
}

type ticketController struct {
	service service.ITicketService
}

func NewTicketController(service service.ITicketService) ITicketController {
	return &ticketController{
		service: service,
	}
}

func (c *ticketController) RegisterRoutes(r fiber.Router) {
	r.Post("/tibco/service-request", c.CreateServiceRequest)
}

// CreateServiceRequest answers with {success, srNumber, message} directly; the
// invoice wizard reads that shape.
func (c *ticketController) CreateServiceRequest(ctx *fiber.Ctx) error {
	var req dto.ServiceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.CreateServiceRequest(ctx.Context(), req)
	if err != nil {
		return err
	}
	if !res.Success {
		return ctx.Status(fiber.StatusBadGateway).JSON(res)
	}
	return ctx.JSON(res)
}
