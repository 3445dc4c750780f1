package mock

import (
	"context"
	"crypto/sha256"
	"math"

	"github.com/saturnino-fabrica-de-software/presenca/internal/domain"
	"github.com/saturnino-fabrica-de-software/presenca/internal/provider"
)

// Provider implementa provider.FaceDetector para testes e desenvolvimento.
// Os descritores são determinísticos: a mesma imagem sempre produz o mesmo
// descritor, então cadastrar e reconhecer com a mesma imagem casa a zero.
type Provider struct {
	dim int
}

// New cria um MockProvider com a dimensionalidade de descritor dada.
func New(dim int) *Provider {
	return &Provider{dim: dim}
}

// Detect simula detecção: imagens pequenas são rejeitadas como inválidas,
// o resto produz exatamente uma face com descritor derivado do hash.
func (p *Provider) Detect(ctx context.Context, image []byte) ([]provider.Detection, error) {
	if len(image) < 1000 {
		return nil, domain.ErrInvalidImage
	}

	return []provider.Detection{
		{
			Descriptor: p.generateDescriptor(image),
			BoundingBox: provider.BoundingBox{
				X:      0.1,
				Y:      0.1,
				Width:  0.8,
				Height: 0.8,
			},
			Confidence: 0.99,
		},
	}, nil
}

// generateDescriptor gera um descritor unitário determinístico a partir do
// hash da imagem.
func (p *Provider) generateDescriptor(image []byte) []float64 {
	hash := sha256.Sum256(image)
	descriptor := make([]float64, p.dim)
	hashLen := len(hash)

	for i := 0; i < p.dim; i++ {
		idx := i % hashLen
		descriptor[i] = (float64(hash[idx])/255.0)*2 - 1
	}

	norm := 0.0
	for _, v := range descriptor {
		norm += v * v
	}
	norm = math.Sqrt(norm)

	for i := range descriptor {
		descriptor[i] /= norm
	}

	return descriptor
}

var _ provider.FaceDetector = (*Provider)(nil)
