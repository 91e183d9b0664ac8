package controller

import (
	"github.com/gofiber/fiber/v2"

	"callcenter-analysis-be/internal/dto"
	"callcenter-analysis-be/internal/pkg/serverutils"
	"callcenter-analysis-be/internal/service"
)

type IAnalysisController interface {
	RegisterRoutes(r fiber.Router)
	Analyze(ctx *fiber.Ctx) error
}

type analysisController struct {
	service service.IAnalysisService
}

func NewAnalysisController(service service.IAnalysisService) IAnalysisController {
	return &analysisController{
		service: service,
	}
}

func (c *analysisController) RegisterRoutes(r fiber.Router) {
	r.Post("/analyze", c.Analyze)
}

// Analyze scores a pasted transcript. The body is returned bare, not wrapped
// in the response envelope, so existing consumers of the analysis shape work.
func (c *analysisController) Analyze(ctx *fiber.Ctx) error {
	var req dto.AnalyzeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Analyze(ctx.Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
