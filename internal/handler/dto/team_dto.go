package dto

// CreateTeamRequest: запрос на регистрацию команды
type CreateTeamRequest struct {
	Name   string `json:"team_name" binding:"required,max=100"`
	Budget *int64 `json:"budget"` // по умолчанию 10000
}

// AddCarRequest: запрос на добавление машины. Пропущенные характеристики получают значения по умолчанию.
type AddCarRequest struct {
	Name         string   `json:"car_name" binding:"required,max=100"`
	BaseSpeedKmh *float64 `json:"base_speed_kmh"`
	Handling     *float64 `json:"handling"`
	Reliability  *float64 `json:"reliability"`
	WeightKg     *float64 `json:"weight_kg"`
}

// AddMemberRequest: запрос на добавление гонщика
type AddMemberRequest struct {
	Name string `json:"member_name" binding:"required,max=100"`
}

// Assignment: назначение машины гонщику. CarID = null снимает машину.
type Assignment struct {
	MemberID uint  `json:"member_id" binding:"required"`
	CarID    *uint `json:"car_id"`
}

// AssignCarsRequest: запрос на переназначение машин внутри команды
type AssignCarsRequest struct {
	Assignments []Assignment `json:"assignments" binding:"required,min=1,dive"`
}
