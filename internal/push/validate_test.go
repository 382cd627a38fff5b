package push

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDestination = "03" + "ab12ab12ab12ab12ab12ab12ab12ab12ab12ab12ab12ab12ab12ab12ab12ab12"

func validRequest() *Request {
	maxFee := int64(0)
	return &Request{
		Amount:      "$10",
		Destination: testDestination,
		MaxFee:      &maxFee,
		QuizAnswers: []string{},
	}
}

func TestValidateRequest(t *testing.T) {
	t.Run("valid request passes", func(t *testing.T) {
		assert.NoError(t, validateRequest(validRequest()))
	})

	t.Run("missing amount", func(t *testing.T) {
		req := validRequest()
		req.Amount = ""
		assert.ErrorIs(t, validateRequest(req), ErrExpectedAmount)
	})

	t.Run("malformed destination", func(t *testing.T) {
		for _, destination := range []string{"", "abc", strings.Repeat("z", 66), testDestination + "00"} {
			req := validRequest()
			req.Destination = destination
			assert.ErrorIs(t, validateRequest(req), ErrExpectedDestination)
		}
	})

	t.Run("destination hex is case insensitive", func(t *testing.T) {
		req := validRequest()
		req.Destination = strings.ToUpper(testDestination)
		assert.NoError(t, validateRequest(req))
	})

	t.Run("multiple inbound peers", func(t *testing.T) {
		req := validRequest()
		req.InThrough = []string{"a", "b"}
		assert.ErrorIs(t, validateRequest(req), ErrMultipleInboundPeers)
	})

	t.Run("multiple outbound peers", func(t *testing.T) {
		req := validRequest()
		req.OutThrough = []string{"a", "b"}
		assert.ErrorIs(t, validateRequest(req), ErrMultipleOutboundPeers)
	})

	t.Run("unspecified max fee", func(t *testing.T) {
		req := validRequest()
		req.MaxFee = nil
		assert.ErrorIs(t, validateRequest(req), ErrExpectedMaxFee)
	})

	t.Run("zero max fee is valid", func(t *testing.T) {
		assert.NoError(t, validateRequest(validRequest()))
	})

	t.Run("quiz without message", func(t *testing.T) {
		req := validRequest()
		req.QuizAnswers = []string{"a", "b"}
		assert.ErrorIs(t, validateRequest(req), ErrExpectedQuizMessage)
	})

	t.Run("single quiz answer is too few, not a pass", func(t *testing.T) {
		req := validRequest()
		req.Message = "what is the answer?"
		req.QuizAnswers = []string{"42"}
		assert.ErrorIs(t, validateRequest(req), ErrExpectedMultipleAnswers)
	})

	t.Run("too many quiz answers", func(t *testing.T) {
		req := validRequest()
		req.Message = "pick one"
		req.QuizAnswers = make([]string, maxQuizAnswers+1)

		err := validateRequest(req)
		require.ErrorIs(t, err, ErrTooManyAnswers)
		assert.ErrorContains(t, err, "at most 10")
	})

	t.Run("quiz at bounds", func(t *testing.T) {
		for _, count := range []int{minQuizAnswers, maxQuizAnswers} {
			req := validRequest()
			req.Message = "pick one"
			req.QuizAnswers = make([]string, count)
			assert.NoError(t, validateRequest(req))
		}
	})
}
