package gateway

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"brewline/internal/domain"
	apperrors "brewline/internal/errors"
	"brewline/internal/infrastructure/metrics"
)

// FallbackSentinel is the reserved primary reply instructing the router to
// consult the secondary provider. Compared case-insensitively.
const FallbackSentinel = "fallback"

// UnavailableMessage is the fixed assistant text shown whenever a provider
// cannot produce a reply.
const UnavailableMessage = "AI service is temporarily unavailable."

type PrimaryProvider interface {
	Send(ctx context.Context, text string) (*PrimaryReply, error)
}

type SecondaryProvider interface {
	Generate(ctx context.Context, input string) (string, error)
}

// Router sends each utterance to the primary provider and re-routes to the
// secondary one on the fallback sentinel. At most one attempt per provider
// per utterance; no retries.
type Router struct {
	primary   PrimaryProvider
	secondary SecondaryProvider
	logger    *zap.Logger
}

func NewRouter(primary PrimaryProvider, secondary SecondaryProvider, logger *zap.Logger) *Router {
	return &Router{
		primary:   primary,
		secondary: secondary,
		logger:    logger,
	}
}

// Converse returns the assistant turns produced for one utterance: either
// the primary's text plus optional recommendation and follow-up turns, or a
// single turn from the secondary provider on the fallback path. Transport
// failures come back as UnavailableError for the session layer to absorb.
func (rt *Router) Converse(ctx context.Context, utterance string) ([]domain.ChatMessage, error) {
	metrics.ChatRequests.WithLabelValues("primary").Inc()

	reply, err := rt.primary.Send(ctx, utterance)
	if err != nil {
		rt.logger.Warn("primary provider failed", zap.Error(err))
		return nil, apperrors.NewUnavailableError("primary provider unreachable", err)
	}

	if strings.EqualFold(reply.AIText, FallbackSentinel) {
		return rt.converseFallback(ctx, utterance)
	}

	turns := []domain.ChatMessage{domain.AssistantMessage(reply.AIText)}

	if len(reply.Recommendations) > 0 {
		turn := domain.AssistantMessage(renderRecommendations(reply.Recommendations))
		turn.Recommendations = reply.Recommendations
		turns = append(turns, turn)
	}

	if reply.FollowUps != "" {
		turn := domain.AssistantMessage(reply.FollowUps)
		turn.FollowUp = true
		turns = append(turns, turn)
	}

	return turns, nil
}

// converseFallback never uses the primary's aiText; the original utterance
// is re-sent to the secondary provider.
func (rt *Router) converseFallback(ctx context.Context, utterance string) ([]domain.ChatMessage, error) {
	metrics.ChatFallbacks.Inc()
	metrics.ChatRequests.WithLabelValues("secondary").Inc()

	text, err := rt.secondary.Generate(ctx, utterance)
	if err != nil {
		rt.logger.Warn("secondary provider failed", zap.Error(err))
		return nil, apperrors.NewUnavailableError("secondary provider unreachable", err)
	}

	if text == "" {
		text = UnavailableMessage
	}

	return []domain.ChatMessage{domain.AssistantMessage(text)}, nil
}

func renderRecommendations(recs []domain.Recommendation) string {
	var b strings.Builder
	b.WriteString("Here are some suggestions for you:")
	for i, rec := range recs {
		fmt.Fprintf(&b, "\n%d. %s - %s", i+1, rec.Name, rec.Reason)
	}
	return b.String()
}
