package ws

import (
	"errors"

	"github.com/voxhub/voicerelay/internal/domain"
)

// sanitizeError converts any session/provider failure into the single
// client-facing error payload. Raw upstream text never leaves the server;
// details carries only the taxonomy token.
func sanitizeError(err error) errorPayload {
	if errors.Is(err, domain.ErrUnknownModel) {
		return errorPayload{
			Message: "The requested model is not available.",
			Details: "unknown_model",
		}
	}

	var perr *domain.ProviderError
	if errors.As(err, &perr) {
		switch perr.Kind {
		case domain.KindRateLimited:
			return errorPayload{
				Message: "The assistant is receiving too many requests. Please try again in a moment.",
				Details: string(domain.KindRateLimited),
			}
		case domain.KindConnectionRefused:
			return errorPayload{
				Message: "The assistant is temporarily unreachable. Please try again later.",
				Details: string(domain.KindConnectionRefused),
			}
		}
	}

	return errorPayload{
		Message: "Something went wrong generating a response.",
		Details: string(domain.KindMalformedResponse),
	}
}
