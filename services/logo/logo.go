package logo

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	genai "github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const defaultPrompt = "Generate a modern healthcare mobile app logo icon. " +
	"Feature a stylized medical cross combined elegantly with a heart shape. " +
	"Use a beautiful teal to cyan gradient. Ultra clean minimalist design with smooth curves. " +
	"Square format, professional app icon style, centered on pure white background. " +
	"No text, just the icon symbol."

// fallbackImageURL is an inline SVG served when image generation is rate
// limited or out of quota, so the app never renders without a logo.
const fallbackImageURL = "data:image/svg+xml,%3Csvg%20xmlns='http://www.w3.org/2000/svg'%20width='512'%20height='512'%20viewBox='0%200%20512%20512'%3E%3Crect%20width='512'%20height='512'%20rx='120'%20fill='white'/%3E%3Cpath%20d='M192%20212h48v-48h32v48h48v32h-48v48h-32v-48h-48v-32z'%20fill='%2306b6d4'/%3E%3C/svg%3E"

// Result is the outcome of a logo generation request.
type Result struct {
	ImageURL string `json:"imageUrl"`
	Warning  string `json:"warning,omitempty"`
}

// Service generates app logos via Gemini and hosts them on Cloudinary.
type Service interface {
	Generate(ctx context.Context, prompt string) (*Result, error)
}

// DefaultLogoService implements Service.
type DefaultLogoService struct {
	model  *genai.GenerativeModel
	cld    *cloudinary.Cloudinary
	logger *zap.Logger
}

// NewDefaultLogoService builds the Gemini client for the image model.
func NewDefaultLogoService(apiKey string, cld *cloudinary.Cloudinary, logger *zap.Logger) (*DefaultLogoService, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &DefaultLogoService{
		model:  client.GenerativeModel("models/gemini-2.0-flash-exp-image-generation"),
		cld:    cld,
		logger: logger,
	}, nil
}

// Generate asks the image model for a logo and uploads the bytes to
// Cloudinary. Quota exhaustion and rate limits degrade to the static
// fallback with a warning instead of failing.
func (s *DefaultLogoService) Generate(ctx context.Context, prompt string) (*Result, error) {
	if prompt == "" {
		prompt = defaultPrompt
	}

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && (apiErr.Code == 429 || apiErr.Code == 402) {
			s.logger.Warn("logo generation throttled, serving fallback", zap.Int("code", apiErr.Code))
			return &Result{ImageURL: fallbackImageURL, Warning: "AI rate limited"}, nil
		}
		return nil, fmt.Errorf("gemini generate error: %w", err)
	}

	imageData := extractImage(resp)
	if imageData == nil {
		return nil, fmt.Errorf("no image returned by the model")
	}

	upload, err := s.cld.Upload.Upload(ctx, bytes.NewReader(imageData), uploader.UploadParams{
		Folder:   "logos",
		PublicID: "logo-" + uuid.New().String(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload generated logo: %w", err)
	}

	s.logger.Info("logo generated", zap.String("url", upload.SecureURL))
	return &Result{ImageURL: upload.SecureURL}, nil
}

// extractImage returns the first inline image blob in the response.
func extractImage(resp *genai.GenerateContentResponse) []byte {
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if blob, ok := part.(genai.Blob); ok {
				return blob.Data
			}
		}
	}
	return nil
}
