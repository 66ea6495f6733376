package model

// Stats holds the derived counters recomputed after every mutation. It is
// a projection of the stored collections, never mutated directly.
type Stats struct {
	TotalReminders  int     `json:"total_reminders"`
	ActiveReminders int     `json:"active_reminders"`
	TriggeredToday  int     `json:"triggered_today"`
	ProblemsSolved  int     `json:"problems_solved"`
	MoneySaved      float64 `json:"money_saved"`
}
