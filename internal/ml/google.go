package ml

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/franckalain/nourishbloom/internal/models"
)

const defaultGoogleModel = "gemini-1.5-flash"

// GoogleConfig holds configuration for the Vertex AI analyzer
type GoogleConfig struct {
	BaseConfig
	ProjectID       string `json:"project_id"`
	Location        string `json:"location"`
	CredentialsFile string `json:"credentials_file"`
	ModelName       string `json:"model_name"`
}

// Load loads the Google configuration
func (c *GoogleConfig) Load() error {
	if err := c.LoadConfig(c.ConfigPath, "google", c); err != nil {
		return err
	}

	// Fall back to environment variables if not set
	if c.ProjectID == "" {
		c.ProjectID = os.Getenv("GOOGLE_PROJECT_ID")
	}
	if c.Location == "" {
		c.Location = os.Getenv("GOOGLE_LOCATION")
	}
	if c.CredentialsFile == "" {
		c.CredentialsFile = os.Getenv("GOOGLE_CREDENTIALS_FILE")
	}
	if c.ModelName == "" {
		c.ModelName = os.Getenv("GOOGLE_MODEL_NAME")
	}
	if c.ModelName == "" {
		c.ModelName = defaultGoogleModel
	}

	if c.ProjectID == "" || c.Location == "" {
		return fmt.Errorf("google analyzer needs project_id and location")
	}
	return nil
}

// GoogleAnalyzer implements MealAnalyzer with Gemini on Vertex AI
type GoogleAnalyzer struct {
	config GoogleConfig
	client *genai.Client
	model  *genai.GenerativeModel
}

// GoogleAnalyzerFactory implements AnalyzerFactory for Google analyzers
type GoogleAnalyzerFactory struct {
	config GoogleConfig
}

func NewGoogleAnalyzerFactory(config GoogleConfig) *GoogleAnalyzerFactory {
	return &GoogleAnalyzerFactory{config: config}
}

func (f *GoogleAnalyzerFactory) CreateAnalyzer() (MealAnalyzer, error) {
	return &GoogleAnalyzer{
		config: f.config,
	}, nil
}

// Load creates the Vertex AI client
func (a *GoogleAnalyzer) Load(ctx context.Context) error {
	opts := []option.ClientOption{}

	if a.config.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(a.config.CredentialsFile))
	}

	client, err := genai.NewClient(ctx, a.config.ProjectID, a.config.Location, opts...)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	a.client = client
	a.model = client.GenerativeModel(a.config.ModelName)
	a.model.ResponseMIMEType = "application/json"
	return nil
}

// Close releases the Vertex AI client
func (a *GoogleAnalyzer) Close() error {
	if a.client == nil {
		return nil
	}
	return a.client.Close()
}

const analysisPrompt = `You are a supportive nutrition assistant for someone recovering their energy balance.
Analyze this %s: %q

Respond with a single JSON object and nothing else:
{
	"overall_score": integer from 1 (barely nourishing) to 10 (deeply nourishing),
	"overall_assessment": "string",
	"key_nutrients": [{"name": "string", "amount": "string", "daily_value_percentage": number, "health_impact": "positive|neutral|negative"}],
	"positive_aspects": [{"aspect": "string", "impact": "positive", "explanation": "string", "severity": "low|moderate|high"}],
	"areas_for_improvement": [{"aspect": "string", "impact": "negative", "explanation": "string", "severity": "low|moderate|high"}],
	"nutritional_highlights": "string",
	"encouragement": "string",
	"processing_level": "minimal|moderate|highly_processed",
	"estimated_calories": integer
}
Keep the tone warm and never shaming.`

// AnalyzeMeal asks Gemini to rate the meal
func (a *GoogleAnalyzer) AnalyzeMeal(ctx context.Context, req MealAnalysisRequest) (*models.MealAnalysis, error) {
	if a.model == nil {
		return nil, ErrAnalyzerNotLoaded
	}

	parts := []genai.Part{genai.Text(fmt.Sprintf(analysisPrompt, req.MealType, req.Description))}
	if len(req.Image) > 0 {
		parts = append(parts, genai.ImageData(imageFormat(req.Image), req.Image))
	}

	zap.L().Named("ml").Debug("calling meal analysis model",
		zap.String("meal_id", req.MealID), zap.String("model", a.config.ModelName))
	resp, err := a.model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("failed to call ai: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response generated")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	if text.Len() == 0 {
		return nil, fmt.Errorf("no content in response")
	}

	return parseAnalysis(text.String(), req.MealID)
}

// imageFormat sniffs the image subtype genai expects ("jpeg", "png", ...),
// assuming JPEG when the bytes are not recognised as an image.
func imageFormat(image []byte) string {
	if ct := http.DetectContentType(image); strings.HasPrefix(ct, "image/") {
		return strings.TrimPrefix(ct, "image/")
	}
	return "jpeg"
}

// parseAnalysis decodes the model's JSON reply, tolerating a markdown fence.
func parseAnalysis(text, mealID string) (*models.MealAnalysis, error) {
	text = stripCodeFence(text)

	// overall_score is the only field the nourishment model depends on
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse model response: %w while parsing %s", err, text)
	}
	if _, ok := raw["overall_score"]; !ok {
		return nil, fmt.Errorf("missing required field 'overall_score' in response")
	}

	var analysis models.MealAnalysis
	if err := json.Unmarshal([]byte(text), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse model response: %w", err)
	}
	if err := validateScore(&analysis); err != nil {
		return nil, err
	}
	analysis.MealID = mealID
	return &analysis, nil
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
