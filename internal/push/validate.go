package push

import (
	"fmt"

	"github.com/miketwenty1/balanceofsatoshis/internal/lightning"
)

const (
	minQuizAnswers = 2
	maxQuizAnswers = 10
)

// validateRequest checks a push request for structural correctness before
// any network call. Checks run in a fixed order and the first violation
// wins, so error precedence is deterministic.
func validateRequest(req *Request) error {
	if req.Amount == "" {
		return ErrExpectedAmount
	}

	if !lightning.IsPublicKey(req.Destination) {
		return ErrExpectedDestination
	}

	if len(req.InThrough) > 1 {
		return ErrMultipleInboundPeers
	}

	if len(req.OutThrough) > 1 {
		return ErrMultipleOutboundPeers
	}

	if req.MaxFee == nil {
		return ErrExpectedMaxFee
	}

	if len(req.QuizAnswers) != 0 && req.Message == "" {
		return ErrExpectedQuizMessage
	}

	if len(req.QuizAnswers) != 0 && len(req.QuizAnswers) < minQuizAnswers {
		return ErrExpectedMultipleAnswers
	}

	if len(req.QuizAnswers) > maxQuizAnswers {
		return &Error{
			Code: ErrTooManyAnswers.Code,
			Name: ErrTooManyAnswers.Name,
			Err:  fmt.Errorf("at most %d answers", maxQuizAnswers),
		}
	}

	return nil
}
