package racesim

import (
	"math/rand"
	"time"
)

// Source: источник равномерно распределенных чисел в [0, 1).
// *rand.Rand удовлетворяет этому интерфейсу.
type Source interface {
	Float64() float64
}

// NewSource создает источник с заданным зерном. Одинаковое зерно дает одинаковые заезды.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NewTimeSource создает источник, засеянный текущим временем
func NewTimeSource() *rand.Rand {
	return NewSource(time.Now().UnixNano())
}

// Uniform возвращает число из [min, max)
func Uniform(src Source, min, max float64) float64 {
	return min + (max-min)*src.Float64()
}
