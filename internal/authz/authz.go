// Package authz implements the ownership-scoped resource gate. Every
// resource type has exactly one owning principal, found either through
// a direct owner column or through one parent hop (e.g. a vaccination
// is owned by its pet's owner). The gate turns that declarative edge
// table plus a principal into allow/deny verdicts with consistent
// 403-vs-404 semantics.
package authz

import "context"

// Resource names a gated resource type.
type Resource string

const (
	// ResourceUser is only ever gated with ActionAdminOnly; user rows
	// have no ownership edge.
	ResourceUser Resource = "user"

	ResourcePet          Resource = "pet"
	ResourceVaccination  Resource = "vaccination"
	ResourceAppointment  Resource = "appointment"
	ResourceExpense      Resource = "expense"
	ResourceHealthLog    Resource = "health_log"
	ResourceActivity     Resource = "activity"
	ResourceSubscription Resource = "insurance_subscription"
	ResourcePost         Resource = "post"
	ResourceComment      Resource = "comment"
	ResourcePlaydate     Resource = "playdate"
	ResourceNotification Resource = "notification"
)

// Action is what the principal wants to do with the resource.
type Action int

const (
	ActionRead Action = iota
	ActionWrite
	// ActionAdminOnly bypasses the owner check entirely but requires
	// the admin role. Used for policy management, claim updates,
	// analytics and the global user listing - never for another
	// user's pets or pet subresources.
	ActionAdminOnly
)

// Edge declares how to find the owning principal of a resource type:
// either a direct owner column on the resource's own table, or one
// hop through a parent resource. No resource needs more than one hop.
type Edge struct {
	Table        string   // base table name, without environment prefix
	OwnerColumn  string   // direct ownership: column holding the owner id
	ParentColumn string   // transitive ownership: FK column naming the parent row
	Parent       Resource // transitive ownership: the parent resource type
}

// Direct reports whether the edge resolves through its own owner column.
func (e Edge) Direct() bool {
	return e.OwnerColumn != ""
}

// Edges is the ownership-edge table for every gated resource type.
// This replaces the per-handler ownership checks the system grew out
// of; adding a resource type means adding one row here and nothing
// else to the authorization path.
var Edges = map[Resource]Edge{
	ResourcePet:          {Table: "pets", OwnerColumn: "user_id"},
	ResourcePost:         {Table: "posts", OwnerColumn: "user_id"},
	ResourceComment:      {Table: "comments", OwnerColumn: "user_id"},
	ResourcePlaydate:     {Table: "playdates", OwnerColumn: "host_id"},
	ResourceNotification: {Table: "notifications", OwnerColumn: "user_id"},

	ResourceVaccination:  {Table: "vaccinations", ParentColumn: "pet_id", Parent: ResourcePet},
	ResourceAppointment:  {Table: "vet_appointments", ParentColumn: "pet_id", Parent: ResourcePet},
	ResourceExpense:      {Table: "expenses", ParentColumn: "pet_id", Parent: ResourcePet},
	ResourceHealthLog:    {Table: "health_logs", ParentColumn: "pet_id", Parent: ResourcePet},
	ResourceActivity:     {Table: "activities", ParentColumn: "pet_id", Parent: ResourcePet},
	ResourceSubscription: {Table: "pet_insurance", ParentColumn: "pet_id", Parent: ResourcePet},
}

// OwnerResolver resolves the owning principal id for a resource row,
// following the edge table (including the parent hop for transitively
// owned resources). Implementations return domain.ErrNotFound when
// the row does not exist and domain.ErrStoreUnavailable when the
// store cannot be reached.
type OwnerResolver interface {
	Owner(ctx context.Context, res Resource, id string) (string, error)
}
