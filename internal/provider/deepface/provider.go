package deepface

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/saturnino-fabrica-de-software/presenca/internal/provider"
)

const (
	// minFaceArea is the minimum face area (in pixels²) for reliable detection
	minFaceArea = 2500 // 50x50 pixels
	// maxFaceArea is used for confidence scaling
	maxFaceArea = 250000 // 500x500 pixels
)

// Provider implements provider.FaceDetector using the DeepFace API.
// One /represent call yields bounding boxes and embeddings together, in
// detection order.
type Provider struct {
	client *Client
	dim    int
}

// NewProvider creates a new DeepFace provider. dim is the descriptor
// dimensionality the rest of the system expects; responses with a different
// dimension are rejected rather than silently stored.
func NewProvider(config Config, dim int) *Provider {
	return &Provider{
		client: NewClient(config),
		dim:    dim,
	}
}

// Detect detects faces and extracts one descriptor per face.
func (p *Provider) Detect(ctx context.Context, image []byte) ([]provider.Detection, error) {
	imageBase64 := base64.StdEncoding.EncodeToString(image)

	resp, err := p.client.Represent(ctx, imageBase64)
	if err != nil {
		return nil, fmt.Errorf("detect faces: %w", err)
	}

	detections := make([]provider.Detection, 0, len(resp.Results))
	for _, result := range resp.Results {
		if len(result.Embedding) != p.dim {
			return nil, fmt.Errorf("%w: got %d, want %d", ErrWrongDimension, len(result.Embedding), p.dim)
		}

		faceArea := float64(result.FacialArea.W * result.FacialArea.H)

		detections = append(detections, provider.Detection{
			Descriptor: result.Embedding,
			BoundingBox: provider.BoundingBox{
				X:      float64(result.FacialArea.X),
				Y:      float64(result.FacialArea.Y),
				Width:  float64(result.FacialArea.W),
				Height: float64(result.FacialArea.H),
			},
			Confidence: calculateConfidence(faceArea),
		})
	}

	return detections, nil
}

// calculateConfidence estimates confidence based on face area.
// DeepFace doesn't return confidence, so we estimate based on face size:
// larger faces are more likely to be accurately detected.
func calculateConfidence(faceArea float64) float64 {
	if faceArea < minFaceArea {
		return 0.5 // Low confidence for very small faces
	}
	normalized := (faceArea - minFaceArea) / (maxFaceArea - minFaceArea)
	if normalized > 1.0 {
		normalized = 1.0
	}
	return 0.7 + (normalized * 0.29)
}

// Ensure Provider implements provider.FaceDetector
var _ provider.FaceDetector = (*Provider)(nil)
