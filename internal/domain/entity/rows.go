package entity

// EntrantRow: строка выборки участников заезда (машина + команда + гонщик)
type EntrantRow struct {
	CarID        uint
	CarName      string
	TeamID       uint
	TeamName     string
	BaseSpeedKmh float64
	Handling     float64
	Reliability  float64
	WeightKg     float64
	MemberID     uint
	MemberName   string
}

// RosterRow: строка таблицы "команда / гонщик / машина"
type RosterRow struct {
	TeamName   string  `json:"team_name"`
	MemberName string  `json:"member_name"`
	CarName    *string `json:"car_name,omitempty"`
}
