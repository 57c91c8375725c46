package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/request-service/internal/api/dto"
	"github.com/spec-kit/request-service/internal/domain"
	"github.com/spec-kit/request-service/internal/service"
	apperrors "github.com/spec-kit/request-service/pkg/util"
)

// RequestsHandler manages request lifecycle endpoints.
type RequestsHandler struct {
	service *service.RequestService
}

// NewRequestsHandler constructs handler.
func NewRequestsHandler(requestService *service.RequestService) *RequestsHandler {
	return &RequestsHandler{service: requestService}
}

// Register POST /api/requests.
func (h *RequestsHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Description == "" || req.Channel == "" || req.RequesterID == "" {
		return apperrors.NewValidationError("description, channel, requester_id required", nil)
	}

	input := service.RegisterInput{
		Description: req.Description,
		Channel:     domain.OriginChannel(req.Channel),
		RequesterID: req.RequesterID,
	}
	if req.Deadline != "" {
		deadline, err := time.Parse("2006-01-02", req.Deadline)
		if err != nil {
			return apperrors.NewValidationError("invalid deadline, expected YYYY-MM-DD", nil)
		}
		input.Deadline = &deadline
	}

	request, err := h.service.Register(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.FromRequest(request, true)})
}

// Classify PUT /api/requests/:id/classify.
func (h *RequestsHandler) Classify(c *fiber.Ctx) error {
	var req dto.ClassifyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Type == "" || req.UserID == "" {
		return apperrors.NewValidationError("type, user_id required", nil)
	}

	request, err := h.service.Classify(c.UserContext(), c.Params("id"), domain.RequestType(req.Type), req.UserID, req.Observation)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromRequest(request, true)})
}

// Prioritize PUT /api/requests/:id/priority.
func (h *RequestsHandler) Prioritize(c *fiber.Ctx) error {
	var req dto.PrioritizeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Priority == "" || req.Justification == "" || req.UserID == "" {
		return apperrors.NewValidationError("priority, justification, user_id required", nil)
	}

	request, err := h.service.SetPriority(c.UserContext(), c.Params("id"), domain.Priority(req.Priority), req.Justification, req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromRequest(request, true)})
}

// ChangeState PUT /api/requests/:id/state.
func (h *RequestsHandler) ChangeState(c *fiber.Ctx) error {
	var req dto.ChangeStateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.State == "" || req.UserID == "" {
		return apperrors.NewValidationError("state, user_id required", nil)
	}

	request, err := h.service.ChangeState(c.UserContext(), c.Params("id"), domain.RequestState(req.State), req.UserID, req.Observation)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromRequest(request, true)})
}

// Assign PUT /api/requests/:id/assign.
func (h *RequestsHandler) Assign(c *fiber.Ctx) error {
	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.HandlerID == "" || req.AssignerID == "" {
		return apperrors.NewValidationError("handler_id, assigner_id required", nil)
	}

	request, err := h.service.AssignHandler(c.UserContext(), c.Params("id"), req.HandlerID, req.AssignerID, req.Observation)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromRequest(request, true)})
}

// Close PUT /api/requests/:id/close.
func (h *RequestsHandler) Close(c *fiber.Ctx) error {
	var req dto.CloseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ClosingRemark == "" || req.UserID == "" {
		return apperrors.NewValidationError("closing_remark, user_id required", nil)
	}

	request, err := h.service.Close(c.UserContext(), c.Params("id"), req.ClosingRemark, req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromRequest(request, true)})
}

// Get GET /api/requests/:id.
func (h *RequestsHandler) Get(c *fiber.Ctx) error {
	request, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromRequest(request, true)})
}

// History GET /api/requests/:id/history.
func (h *RequestsHandler) History(c *fiber.Ctx) error {
	request, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromHistory(request.History)})
}

// List GET /api/requests. Supports state, type, priority and handler_id
// query filters, combined with AND.
func (h *RequestsHandler) List(c *fiber.Ctx) error {
	filter := service.RequestQueryFilter{}
	if v := c.Query("state"); v != "" {
		state := domain.RequestState(v)
		filter.State = &state
	}
	if v := c.Query("type"); v != "" {
		requestType := domain.RequestType(v)
		filter.Type = &requestType
	}
	if v := c.Query("priority"); v != "" {
		priority := domain.Priority(v)
		filter.Priority = &priority
	}
	if v := c.Query("handler_id"); v != "" {
		handlerID := v
		filter.HandlerID = &handlerID
	}

	requests, err := h.service.ListWithFilter(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestSummaries(requests)})
}

// ListByRequester GET /api/requests/requester/:id.
func (h *RequestsHandler) ListByRequester(c *fiber.Ctx) error {
	requests, err := h.service.ListByRequester(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestSummaries(requests)})
}

// ListByHandler GET /api/requests/handler/:id.
func (h *RequestsHandler) ListByHandler(c *fiber.Ctx) error {
	requests, err := h.service.ListByHandler(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestSummaries(requests)})
}

func requestSummaries(requests []domain.Request) []dto.RequestResponse {
	items := make([]dto.RequestResponse, 0, len(requests))
	for i := range requests {
		items = append(items, dto.FromRequest(&requests[i], false))
	}
	return items
}
