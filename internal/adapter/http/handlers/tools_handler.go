package handlers

import (
	"errors"
	"net/http"

	request "cotizador_seguros/internal/adapter/http/dto/request"
	response "cotizador_seguros/internal/adapter/http/dto/response"
	"cotizador_seguros/internal/infrastructure/logger"
	"cotizador_seguros/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// UserIDHeader carries the agent platform's user id when the body lacks it.
	UserIDHeader = "X-OpenAI-User-ID"

	serverErrorMessage = "Error interno del servidor"
	resultSuccess      = "success"
)

// IToolMetrics counts tool calls by outcome.
type IToolMetrics interface {
	ToolCalled(tool, result string)
}

type nopToolMetrics struct{}

func (nopToolMetrics) ToolCalled(string, string) {}

// ToolsHandler serves the tools called by the conversational agent. Every
// response, success or not, uses the tool envelope.
type ToolsHandler struct {
	usecase usecase.IAgentToolUseCase
	metrics IToolMetrics
	logger  *zap.Logger
}

func NewToolsHandler(uc usecase.IAgentToolUseCase, metrics IToolMetrics, l *zap.Logger) *ToolsHandler {
	if metrics == nil {
		metrics = nopToolMetrics{}
	}
	if l == nil {
		l = zap.NewNop()
	}
	return &ToolsHandler{usecase: uc, metrics: metrics, logger: l.Named("tools")}
}

// Dispatch godoc
// @Summary      Call an agent tool by name
// @Description  Generic entry point. Supported tools: identify_customer, identify_vehicle.
// @Tags         tools
// @Accept       json
// @Produce      json
// @Param        tool  path  string  true  "Tool name"
// @Success      200  {object}  map[string]interface{}
// @Failure      422  {object}  response.ToolErrorResponse
// @Failure      500  {object}  response.ToolErrorResponse
// @Router       /tools/{tool} [post]
func (h *ToolsHandler) Dispatch(c *gin.Context) {
	name := c.Param("tool")
	tool, err := usecase.ParseToolName(name)
	if err != nil {
		h.fail(c, name, err)
		return
	}

	switch tool {
	case usecase.ToolIdentifyCustomer:
		h.IdentifyCustomer(c)
	case usecase.ToolIdentifyVehicle:
		h.IdentifyVehicle(c)
	}
}

// IdentifyCustomer godoc
// @Summary      Identify the customer of a conversation
// @Description  Resolves a customer by dni, email, phone or plate and links it to the conversation.
// @Tags         tools
// @Accept       json
// @Produce      json
// @Param        payload  body  request.IdentifyCustomerRequest  true  "Identifier"
// @Success      200  {object}  response.IdentifyCustomerResponse
// @Failure      422  {object}  response.ToolErrorResponse
// @Failure      500  {object}  response.ToolErrorResponse
// @Router       /tools/identify-customer [post]
func (h *ToolsHandler) IdentifyCustomer(c *gin.Context) {
	tool := string(usecase.ToolIdentifyCustomer)

	var payload request.IdentifyCustomerRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.invalid(c, tool, request.BindingMessage(err))
		return
	}
	cmd, err := payload.ToCommand(c.GetHeader(UserIDHeader))
	if err != nil {
		h.invalid(c, tool, err.Error())
		return
	}

	result, err := h.usecase.IdentifyCustomer(c.Request.Context(), cmd)
	if err != nil {
		h.fail(c, tool, err)
		return
	}

	h.metrics.ToolCalled(tool, resultSuccess)
	c.JSON(http.StatusOK, response.FromIdentifyCustomer(result))
}

// IdentifyVehicle godoc
// @Summary      Register the vehicle of a conversation
// @Description  Requires a customer already linked to the conversation. A complete vehicle triggers a quote.
// @Tags         tools
// @Accept       json
// @Produce      json
// @Param        payload  body  request.IdentifyVehicleRequest  true  "Vehicle"
// @Success      200  {object}  response.IdentifyVehicleResponse
// @Failure      422  {object}  response.ToolErrorResponse
// @Failure      500  {object}  response.ToolErrorResponse
// @Router       /tools/identify-vehicle [post]
func (h *ToolsHandler) IdentifyVehicle(c *gin.Context) {
	tool := string(usecase.ToolIdentifyVehicle)

	var payload request.IdentifyVehicleRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.invalid(c, tool, request.BindingMessage(err))
		return
	}
	cmd, err := payload.ToCommand(c.GetHeader(UserIDHeader))
	if err != nil {
		h.invalid(c, tool, err.Error())
		return
	}

	result, err := h.usecase.IdentifyVehicle(c.Request.Context(), cmd)
	if err != nil {
		h.fail(c, tool, err)
		return
	}

	h.metrics.ToolCalled(tool, resultSuccess)
	c.JSON(http.StatusOK, response.FromIdentifyVehicle(result))
}

func (h *ToolsHandler) invalid(c *gin.Context, tool, message string) {
	h.metrics.ToolCalled(tool, response.ErrorCodeValidation)
	c.JSON(http.StatusUnprocessableEntity, response.NewToolError(response.ErrorCodeValidation, message))
}

func (h *ToolsHandler) fail(c *gin.Context, tool string, err error) {
	status, body := mapToolError(err)
	log := logger.FromGin(c, h.logger).With(zap.String("tool", tool), zap.String("error_code", body.ErrorCode))
	if body.ErrorCode == response.ErrorCodeServer {
		log.Error("tool call failed", zap.Error(err))
		_ = c.Error(err)
	} else {
		log.Warn("tool call rejected", zap.Error(err))
	}
	h.metrics.ToolCalled(tool, body.ErrorCode)
	c.JSON(status, body)
}

func mapToolError(err error) (int, response.ToolErrorResponse) {
	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, response.NewToolError(response.ErrorCodeValidation, verr.Reason)
	case errors.Is(err, usecase.ErrMissingCustomer):
		return http.StatusInternalServerError, response.NewToolError(response.ErrorCodeMissingCustomer, usecase.ErrMissingCustomer.Error())
	case errors.Is(err, usecase.ErrToolNotFound):
		return http.StatusInternalServerError, response.NewToolError(response.ErrorCodeToolNotFound, err.Error())
	default:
		return http.StatusInternalServerError, response.NewToolError(response.ErrorCodeServer, serverErrorMessage)
	}
}
