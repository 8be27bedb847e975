package postgres

import "fmt"

// TableNames holds environment-prefixed table names so dev, test and
// prod data share one database without colliding.
type TableNames struct {
	prefix string

	Users         string
	Pets          string
	Vaccinations  string
	Appointments  string
	Expenses      string
	HealthLogs    string
	Activities    string
	Policies      string
	PetInsurance  string
	Posts         string
	Comments      string
	Likes         string
	Playdates     string
	PlaydateRSVPs string
	Notifications string
}

// NewTableNames creates table names with the given prefix.
func NewTableNames(prefix string) *TableNames {
	t := &TableNames{prefix: prefix}
	t.Users = t.For("app_users")
	t.Pets = t.For("pets")
	t.Vaccinations = t.For("vaccinations")
	t.Appointments = t.For("vet_appointments")
	t.Expenses = t.For("expenses")
	t.HealthLogs = t.For("health_logs")
	t.Activities = t.For("activities")
	t.Policies = t.For("insurance_policies")
	t.PetInsurance = t.For("pet_insurance")
	t.Posts = t.For("posts")
	t.Comments = t.For("comments")
	t.Likes = t.For("likes")
	t.Playdates = t.For("playdates")
	t.PlaydateRSVPs = t.For("playdate_rsvps")
	t.Notifications = t.For("notifications")
	return t
}

// For prefixes a base table name. The ownership resolver uses this to
// turn the declarative edge table into concrete table names.
func (t *TableNames) For(base string) string {
	return fmt.Sprintf("%s%s", t.prefix, base)
}
