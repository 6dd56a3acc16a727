package departureboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/travigo/togtider/pkg/banenor"
	"github.com/travigo/togtider/pkg/ctdf"
	"github.com/travigo/togtider/pkg/siri_et"
)

// ToolResponse wraps the board with station metadata for tool integrations
type ToolResponse struct {
	Data      *ctdf.DisplaySet `json:"data"`
	Station   string           `json:"station"`
	Timestamp string           `json:"timestamp"`
}

// ToolError is returned as data instead of failing the tool call
type ToolError struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (b *Board) RunTool(ctx context.Context, stationName string) (*ToolResponse, *ToolError) {
	b.Logger.Info().Msg("Departure tool invoked")

	display, err := b.Generate(ctx)
	if err != nil {
		b.Logger.Error().Err(err).Msg("Departure tool failed")

		return nil, NewToolError(err)
	}

	b.Logger.Info().Msg("Departure tool execution completed successfully")

	return &ToolResponse{
		Data:      display,
		Station:   stationName,
		Timestamp: display.GeneratedAt.Format(time.RFC3339),
	}, nil
}

func NewToolError(err error) *ToolError {
	return &ToolError{
		Error:   true,
		Message: err.Error(),
		Type:    errorType(err),
	}
}

func errorType(err error) string {
	var inputError *siri_et.InputError
	var malformedInputError *siri_et.MalformedInputError
	var transportError *banenor.TransportError

	switch {
	case errors.As(err, &inputError):
		return "InputError"
	case errors.As(err, &malformedInputError):
		return "MalformedInputError"
	case errors.As(err, &transportError):
		return "TransportError"
	default:
		return fmt.Sprintf("%T", err)
	}
}
