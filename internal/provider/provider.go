package provider

import "context"

// FaceDetector define a interface do oráculo de embeddings: recebe uma
// imagem e devolve as faces detectadas, cada uma com seu descritor.
// A ordem de detecção é preservada e significativa para os chamadores.
type FaceDetector interface {
	// Detect detecta faces na imagem e extrai um descritor por face.
	// Uma imagem sem faces retorna uma lista vazia, não um erro.
	Detect(ctx context.Context, image []byte) ([]Detection, error)
}

// Detection represents one detected face in the image.
type Detection struct {
	Descriptor  []float64   `json:"-"`
	BoundingBox BoundingBox `json:"bounding_box"`
	Confidence  float64     `json:"confidence"`
}

// BoundingBox represents the face area in the image.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
