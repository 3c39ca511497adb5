package models

// AvailableSlot is a recurring weekly window a tutor is open for sessions.
type AvailableSlot struct {
	ID          string `json:"id"`
	TutorID     string `json:"tutor_id"`
	DayOfWeek   int    `json:"day_of_week"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
	Location    string `json:"location"`
}

type SlotInput struct {
	DayOfWeek   int    `json:"day_of_week"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable *bool  `json:"is_available,omitempty"`
	Location    string `json:"location"`
}
