package types

import "fmt"

type EasingMode string

const (
	EasingLinear    EasingMode = "linear"
	EasingEaseIn    EasingMode = "ease-in"
	EasingEaseOut   EasingMode = "ease-out"
	EasingEaseInOut EasingMode = "ease-in-out"
)

// ParseEasingMode validates a configured easing name.
func ParseEasingMode(s string) (EasingMode, error) {
	switch m := EasingMode(s); m {
	case EasingLinear, EasingEaseIn, EasingEaseOut, EasingEaseInOut:
		return m, nil
	case "":
		return EasingEaseInOut, nil
	default:
		return "", fmt.Errorf("unknown easing mode %q", s)
	}
}
