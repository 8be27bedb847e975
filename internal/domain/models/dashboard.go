package models

// MonthAmount is one month's total for a money series, keyed like "Jan 2026".
type MonthAmount struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// Dashboard is the owner's home-screen aggregate. Every collection in
// it is gated to the caller's pets before aggregation.
type Dashboard struct {
	TotalPets            int           `json:"totalPets"`
	UpcomingVaccinations []Vaccination `json:"upcomingVaccinations"`
	UpcomingAppointments []Appointment `json:"upcomingAppointments"`
	TotalExpenses        float64       `json:"totalExpenses"`
	MonthlyExpenses      []MonthAmount `json:"monthlyExpenses"`
}

// AdminAnalytics is the admin-only cross-owner aggregate.
type AdminAnalytics struct {
	TotalUsers       int           `json:"totalUsers"`
	TotalPets        int           `json:"totalPets"`
	TotalPolicies    int           `json:"totalPolicies"`
	TotalRevenue     float64       `json:"totalRevenue"`
	ExpiringPolicies int           `json:"expiringPolicies"`
	MonthlyRevenue   []MonthAmount `json:"monthlyRevenue"`
}
