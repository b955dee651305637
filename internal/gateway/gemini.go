package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"

	"github.com/vdtri/toeicmate/config"
	"github.com/vdtri/toeicmate/internal/apperr"
	"github.com/vdtri/toeicmate/internal/model"
	"github.com/vdtri/toeicmate/internal/session"
)

// geminiGateway implements Gateway against the Gemini API. The credential and
// model name live in the session store (the user configures them at runtime),
// so the client is rebuilt whenever the token changes rather than fixed at
// startup.
type geminiGateway struct {
	sess *session.Store
	cfg  *config.Config

	mu          sync.Mutex
	client      *genai.Client
	clientToken string
}

func NewGeminiGateway(sess *session.Store, cfg *config.Config) Gateway {
	return &geminiGateway{sess: sess, cfg: cfg}
}

func (g *geminiGateway) resolve(ctx context.Context) (*genai.Client, string, error) {
	snap := g.sess.Snapshot()
	token := snap.GeminiToken
	if token == "" {
		token = g.cfg.Gemini.APIKey
	}
	if token == "" {
		return nil, "", apperr.Gateway("configure", fmt.Errorf("no Gemini API key configured"))
	}
	modelName := snap.GeminiModel
	if modelName == "" {
		modelName = g.cfg.Gemini.DefaultModel
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client == nil || g.clientToken != token {
		client, err := genai.NewClient(ctx, option.WithAPIKey(token))
		if err != nil {
			return nil, "", apperr.Gateway("connect", err)
		}
		if g.client != nil {
			g.client.Close()
		}
		g.client = client
		g.clientToken = token
	}
	return g.client, modelName, nil
}

// generateJSON performs one structured call: system prompt + task prompt in,
// strict JSON out, decoded into out. Any response that does not parse as the
// expected shape is a GatewayError.
func (g *geminiGateway) generateJSON(ctx context.Context, op, system, prompt string, out interface{}) error {
	client, modelName, err := g.resolve(ctx)
	if err != nil {
		return err
	}

	if g.cfg.Gemini.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.Gemini.CallTimeout)
		defer cancel()
	}

	m := client.GenerativeModel(modelName)
	m.GenerationConfig.ResponseMIMEType = "application/json"

	full := system
	if custom := g.sess.Snapshot().AIPrompt; custom != "" {
		full += "\n\nAdditional instructions from the user:\n" + custom
	}
	full += "\n\n" + prompt

	resp, err := m.GenerateContent(ctx, genai.Text(full))
	if err != nil {
		log.Error().Err(err).Str("op", op).Str("model", modelName).Msg("Gemini call failed")
		return apperr.Gateway(op, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return apperr.Gateway(op, fmt.Errorf("empty response"))
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}
	raw := stripFences(text.String())
	if raw == "" {
		return apperr.Gateway(op, fmt.Errorf("no text content in response"))
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		log.Warn().Err(err).Str("op", op).Msg("Gemini response did not parse as expected JSON shape")
		return apperr.Gateway(op, fmt.Errorf("malformed response: %w", err))
	}
	return nil
}

// stripFences removes a markdown code fence if the model added one despite
// the JSON response mime type.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
	}
	return strings.TrimSpace(s)
}

func (g *geminiGateway) GenerateWritingQuestions(ctx context.Context, topic string) ([]GeneratedQuestion, error) {
	var payload struct {
		Questions []GeneratedQuestion `json:"questions"`
	}
	if err := g.generateJSON(ctx, "generate writing questions", systemPrompt, generateWritingPrompt(topic), &payload); err != nil {
		return nil, err
	}
	if len(payload.Questions) == 0 {
		return nil, apperr.Gateway("generate writing questions", fmt.Errorf("response contained no questions"))
	}
	return payload.Questions, nil
}

func (g *geminiGateway) GenerateReadingBatch(ctx context.Context, part int, topic string, batchNumber int) (*model.ReadingBatch, error) {
	var batch model.ReadingBatch
	if err := g.generateJSON(ctx, "generate reading batch", readingSystemPrompt, generateReadingPrompt(part, topic, batchNumber), &batch); err != nil {
		return nil, err
	}
	if batch.Part == 0 {
		batch.Part = part
	}
	if len(batch.Questions) == 0 && len(batch.Passages) == 0 && batch.Passage == nil {
		return nil, apperr.Gateway("generate reading batch", fmt.Errorf("batch contained no content"))
	}
	return &batch, nil
}

func (g *geminiGateway) EvaluateWriting(ctx context.Context, req WritingEvaluationRequest) (*WritingEvaluation, error) {
	var eval WritingEvaluation
	if err := g.generateJSON(ctx, "evaluate writing", systemPrompt, evaluateWritingPrompt(req), &eval); err != nil {
		return nil, err
	}
	return &eval, nil
}

func (g *geminiGateway) EvaluateReading(ctx context.Context, req ReadingEvaluationRequest) (*ReadingEvaluation, error) {
	var eval ReadingEvaluation
	if err := g.generateJSON(ctx, "evaluate reading", readingSystemPrompt, evaluateReadingPrompt(req), &eval); err != nil {
		return nil, err
	}
	return &eval, nil
}

func (g *geminiGateway) GenerateTranslationPassages(ctx context.Context, level, length string, count int) ([]VietnamesePassage, error) {
	var payload struct {
		Passages []VietnamesePassage `json:"passages"`
	}
	if err := g.generateJSON(ctx, "generate translation passages", systemPrompt, generateTranslationPrompt(level, length, count), &payload); err != nil {
		return nil, err
	}
	if len(payload.Passages) == 0 {
		return nil, apperr.Gateway("generate translation passages", fmt.Errorf("response contained no passages"))
	}
	return payload.Passages, nil
}

func (g *geminiGateway) EvaluateTranslation(ctx context.Context, req TranslationEvaluationRequest) (*TranslationEvaluation, error) {
	var eval TranslationEvaluation
	if err := g.generateJSON(ctx, "evaluate translation", systemPrompt, evaluateTranslationPrompt(req), &eval); err != nil {
		return nil, err
	}
	return &eval, nil
}

func (g *geminiGateway) AnalyzeProgress(ctx context.Context, historyJSON string) (*ProgressAnalysis, error) {
	var analysis ProgressAnalysis
	if err := g.generateJSON(ctx, "analyze progress", systemPrompt, analyzeProgressPrompt(historyJSON), &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}
