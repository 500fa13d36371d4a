package core

import "fmt"

// ValidationError contains details about a rejected board or level.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Level parameter bounds shared by the catalog and the endless generator.
const (
	MinGridSize = 4
	MaxGridSize = 9
	MinColors   = 3
	MaxColors   = 6
)

// ValidateParams checks a level descriptor against the supported bounds.
func ValidateParams(gridSize, colors, maxMoves int) error {
	if gridSize < MinGridSize || gridSize > MaxGridSize {
		return ValidationError{
			Code:    "INVALID_SIZE",
			Message: fmt.Sprintf("grid size %d outside [%d,%d]", gridSize, MinGridSize, MaxGridSize),
		}
	}
	if colors < MinColors || colors > MaxColors {
		return ValidationError{
			Code:    "INVALID_COLORS",
			Message: fmt.Sprintf("color count %d outside [%d,%d]", colors, MinColors, MaxColors),
		}
	}
	if maxMoves <= 0 {
		return ValidationError{
			Code:    "INVALID_MOVES",
			Message: fmt.Sprintf("max moves %d must be positive", maxMoves),
		}
	}
	return nil
}
