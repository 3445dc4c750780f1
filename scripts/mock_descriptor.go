package main

import (
	"crypto/sha256"
	"fmt"
	"math"
	"os"
)

// mock_descriptor.go - Utility to print the descriptor the mock provider
// derives from an image file. Useful to check which descriptor a given
// image resolves to when running with PROVIDER_TYPE=mock.
//
// Usage:
//   go run scripts/mock_descriptor.go <image-file> [dim]
//
// Output:
//   first 8 components of the deterministic unit descriptor

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run scripts/mock_descriptor.go <image-file> [dim]")
		os.Exit(1)
	}

	image, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "read image: %v\n", err)
		os.Exit(1)
	}

	dim := 128
	if len(os.Args) > 2 {
		if _, err := fmt.Sscanf(os.Args[2], "%d", &dim); err != nil || dim <= 0 {
			fmt.Fprintln(os.Stderr, "dim must be a positive integer")
			os.Exit(1)
		}
	}

	descriptor := generate(image, dim)

	fmt.Printf("image: %s (%d bytes)\n", os.Args[1], len(image))
	fmt.Printf("dim:   %d\n", dim)
	fmt.Print("head:  [")
	for i := 0; i < 8 && i < dim; i++ {
		if i > 0 {
			fmt.Print(", ")
		}
		fmt.Printf("%.6f", descriptor[i])
	}
	fmt.Println(", ...]")
}

// generate mirrors the mock provider's hash-derived unit descriptor.
func generate(image []byte, dim int) []float64 {
	hash := sha256.Sum256(image)
	descriptor := make([]float64, dim)
	hashLen := len(hash)

	for i := 0; i < dim; i++ {
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
