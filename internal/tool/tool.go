// Package tool exposes the weather pipeline as an MCP tool.
package tool

import (
	"errors"
	"fmt"

	"github.com/miyamo2/qilin"

	"github.com/meteomcp/weather-mcp-service/internal/observability"
	"github.com/meteomcp/weather-mcp-service/internal/service"
	"github.com/meteomcp/weather-mcp-service/internal/validation"
)

// Name is the tool name registered with the MCP server.
const Name = "get_weather"

// GetWeatherRequest contains input parameters for the get_weather tool.
type GetWeatherRequest struct {
	City string `json:"city" jsonschema:"description=Name of the city to look up"`
}

// Handler serves get_weather invocations.
type Handler struct {
	service       *service.WeatherService
	maxCityLength int
}

func NewHandler(svc *service.WeatherService, maxCityLength int) *Handler {
	return &Handler{service: svc, maxCityLength: maxCityLength}
}

// GetWeather binds and validates the request, runs the pipeline, and sends
// the summary as text content. Soft failures from the pipeline travel inside
// that text; ErrCityNotFound and validation errors go back as tool errors.
func (h *Handler) GetWeather(c qilin.ToolContext) error {
	var req GetWeatherRequest
	if err := c.Bind(&req); err != nil {
		observability.ToolInvocationsTotal.WithLabelValues(observability.ResultInvalidArgument).Inc()
		return fmt.Errorf("parse arguments: %w", err)
	}

	city, err := validation.ValidateCity(req.City, h.maxCityLength)
	if err != nil {
		observability.ToolInvocationsTotal.WithLabelValues(observability.ResultInvalidArgument).Inc()
		return err
	}

	summary, err := h.service.ResolveWeather(c.Context(), city)
	if err != nil {
		if errors.Is(err, service.ErrCityNotFound) {
			return err
		}
		return fmt.Errorf("get_weather: %w", err)
	}
	return c.String(summary)
}

// Register wires the handler into the MCP server.
func Register(q *qilin.Qilin, h *Handler) {
	q.Tool(Name,
		(*GetWeatherRequest)(nil),
		h.GetWeather,
		qilin.ToolWithDescription("Get the current weather for a given city."))
}
