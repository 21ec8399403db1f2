package racesim

import (
	"fmt"
	"math"
)

// Коэффициенты модели заезда
const (
	speedFloor        = 0.82 // нижняя граница случайного множителя скорости
	speedSpread       = 0.37 // ширина разброса множителя скорости
	handlingPivot     = 0.5  // управляемость выше дает бонус, ниже штраф
	handlingMinFactor = 0.8
	handlingMaxFactor = 1.2
	weightScale       = 1000.0 // бонус за легкость: 1000 / (вес в тоннах)
	secondsPerHour    = 3600.0
)

// ValidateEntrant проверяет, что все характеристики участника в своих диапазонах.
// Значения не обрезаются: участник вне диапазона отклоняется.
func ValidateEntrant(e Entrant) error {
	if !finitePositive(e.BaseSpeedKmh) {
		return fmt.Errorf("%w: base speed must be positive, got %v", ErrInvalidEntrant, e.BaseSpeedKmh)
	}
	if !finitePositive(e.WeightKg) {
		return fmt.Errorf("%w: weight must be positive, got %v", ErrInvalidEntrant, e.WeightKg)
	}
	if !unitInterval(e.Handling) {
		return fmt.Errorf("%w: handling must be within [0,1], got %v", ErrInvalidEntrant, e.Handling)
	}
	if !unitInterval(e.Reliability) {
		return fmt.Errorf("%w: reliability must be within [0,1], got %v", ErrInvalidEntrant, e.Reliability)
	}
	return nil
}

// GenerateOutcome разыгрывает исход одного участника.
// Порядок выборок фиксирован: надежность, множитель скорости, множитель управляемости.
// Не финишировавший участник расходует только первую выборку.
func GenerateOutcome(e Entrant, src Source, distanceKm float64) (Outcome, error) {
	out := Outcome{Entrant: e}

	u := src.Float64()
	if e.Reliability <= 0 || u > e.Reliability {
		return out, nil
	}

	speedFactor := e.BaseSpeedKmh * (speedFloor + src.Float64()*speedSpread)
	handlingFactor := 1 + (e.Handling-handlingPivot)*Uniform(src, handlingMinFactor, handlingMaxFactor)
	effectiveSpeed := speedFactor * handlingFactor * (weightScale / (e.WeightKg / 1000))

	if !finitePositive(effectiveSpeed) {
		return out, fmt.Errorf("%w: effective speed %v", ErrDegenerateOutcome, effectiveSpeed)
	}

	elapsed := distanceKm / effectiveSpeed * secondsPerHour
	if !finitePositive(elapsed) {
		return out, fmt.Errorf("%w: elapsed time %v", ErrDegenerateOutcome, elapsed)
	}

	out.Finished = true
	out.ElapsedSeconds = elapsed
	return out, nil
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func unitInterval(v float64) bool {
	return v >= 0 && v <= 1
}
