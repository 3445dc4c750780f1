package deepface

import "errors"

var (
	ErrDeepFaceUnavailable = errors.New("deepface service unavailable")
	ErrInvalidResponse     = errors.New("invalid response from deepface")
	ErrWrongDimension      = errors.New("deepface returned descriptor with unexpected dimension")
)
