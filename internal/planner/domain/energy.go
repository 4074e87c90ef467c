package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidEnergy is returned for energy levels other than low, medium or high.
var ErrInvalidEnergy = errors.New("energy must be low, medium or high")

// Energy is the self-reported energy level.
type Energy string

const (
	EnergyLow    Energy = "low"
	EnergyMedium Energy = "medium"
	EnergyHigh   Energy = "high"
)

// DefaultEnergy is used for a fresh day.
const DefaultEnergy = EnergyMedium

// ParseEnergy validates an energy level.
func ParseEnergy(value string) (Energy, error) {
	e := Energy(strings.ToLower(strings.TrimSpace(value)))
	if !e.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidEnergy, value)
	}
	return e, nil
}

// IsValid reports whether e is a known level.
func (e Energy) IsValid() bool {
	switch e {
	case EnergyLow, EnergyMedium, EnergyHigh:
		return true
	default:
		return false
	}
}
