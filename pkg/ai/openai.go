package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	verifyDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "wu",
		Subsystem: "ai",
		Name:      "verification_duration_seconds",
		Help:      "Duration of AI document verification requests",
	}, []string{"model", "document_type"})

	verifyFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wu",
		Subsystem: "ai",
		Name:      "verification_failures_total",
		Help:      "Number of AI document verification failures absorbed by the adapter",
	}, []string{"model", "document_type"})
)

// VisionConfig defines configuration options for the vision verifier.
type VisionConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
	Logger    zerolog.Logger
}

// VisionVerifier implements DocumentVerifier against the OpenAI chat completion API
// using a vision-capable model.
type VisionVerifier struct {
	client *openai.Client
	cfg    VisionConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewVisionVerifier builds a verifier using the provided configuration.
func NewVisionVerifier(cfg VisionConfig) (*VisionVerifier, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o"
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1000
	}

	tracer := otel.Tracer("github.com/workers-united/verify-api/pkg/ai/openai")
	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	client := openai.NewClientWithConfig(config)

	return &VisionVerifier{
		client: client,
		cfg:    cfg,
		tracer: tracer,
		logger: logger.With().Str("component", "vision_verifier").Logger(),
	}, nil
}

// Verify sends the document image and a type-specific prompt to the model and
// derives a verdict from the reply. Transport failures, empty replies, and
// unparseable content all collapse into a not-verified, manual-review verdict.
func (v *VisionVerifier) Verify(parent context.Context, input VerificationInput) Verdict {
	ctx, span := v.tracer.Start(parent, "openai.verify_document", trace.WithAttributes(
		attribute.String("model", v.cfg.Model),
		attribute.String("document_type", input.DocumentType),
	))
	defer span.End()

	start := time.Now()
	request := openai.ChatCompletionRequest{
		Model:     v.cfg.Model,
		MaxTokens: v.cfg.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: promptFor(input.DocumentType, input.ClaimedName),
					},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: input.ImageURL},
					},
				},
			},
		},
	}

	resp, err := v.client.CreateChatCompletion(ctx, request)
	verifyDuration.WithLabelValues(v.cfg.Model, input.DocumentType).Observe(time.Since(start).Seconds())
	if err != nil {
		verifyFailures.WithLabelValues(v.cfg.Model, input.DocumentType).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		v.logger.Error().Err(err).Str("document_type", input.DocumentType).Msg("vision request failed")
		return failedVerdict()
	}

	if len(resp.Choices) == 0 {
		verifyFailures.WithLabelValues(v.cfg.Model, input.DocumentType).Inc()
		span.SetStatus(codes.Error, "no choices returned")
		v.logger.Error().Str("document_type", input.DocumentType).Msg("vision reply had no choices")
		return failedVerdict()
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	extracted, parsed := ParseModelJSON(content)
	span.SetAttributes(attribute.Bool("response.json_parsed", parsed))
	if !parsed {
		v.logger.Warn().Str("document_type", input.DocumentType).Msg("vision reply contained no parseable JSON")
		return Verdict{Verified: false, Error: manualReviewError, ExtractedData: extracted}
	}

	if err := validatePayload(input.DocumentType, extracted); err != nil {
		v.logger.Warn().Err(err).Str("document_type", input.DocumentType).Msg("extracted payload diverges from expected schema")
	}

	return deriveVerdict(input.DocumentType, input.ClaimedName, extracted)
}
