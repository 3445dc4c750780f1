package domain

import (
	"time"
)

// Student representa um aluno cadastrado com seu descritor facial.
// RegNumber é a chave estável da identidade (ex: "CS/F/001").
type Student struct {
	RegNumber  string    `json:"reg_number"`
	Name       string    `json:"name"`
	Department string    `json:"department"`
	Level      string    `json:"level"`
	Descriptor []float64 `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
