package models

// Collection names addressable through the generic CRUD API.
const (
	CollectionJournal  = "journal"
	CollectionSteps    = "steps"
	CollectionMeals    = "meals"
	CollectionWorkouts = "workouts"
)

// CRUDCollections lists the collections exposed through the generic
// list/create/delete routes, in route-registration order.
var CRUDCollections = []string{
	CollectionJournal,
	CollectionSteps,
	CollectionMeals,
	CollectionWorkouts,
}

// Analytics holds aggregate counters mutated on every login.
type Analytics struct {
	LoginsByDate map[string]int `json:"loginsByDate"`
}

// Document is the whole persisted state. It is read in full and written
// back in full on every mutation; there are no partial updates.
type Document struct {
	Journal     []Record          `json:"journal"`
	Steps       []Record          `json:"steps"`
	Meals       []Record          `json:"meals"`
	Workouts    []Record          `json:"workouts"`
	HealthData  []Record          `json:"healthData"`
	Webhooks    []WebhookDelivery `json:"webhooks"`
	Connections []Connection      `json:"connections"`
	Users       []User            `json:"users"`
	Analytics   Analytics         `json:"analytics"`
}

// EnsureDefaults replaces nil collections with empty ones so callers
// never have to nil-check after a load.
func (d *Document) EnsureDefaults() {
	if d.Journal == nil {
		d.Journal = []Record{}
	}
	if d.Steps == nil {
		d.Steps = []Record{}
	}
	if d.Meals == nil {
		d.Meals = []Record{}
	}
	if d.Workouts == nil {
		d.Workouts = []Record{}
	}
	if d.HealthData == nil {
		d.HealthData = []Record{}
	}
	if d.Webhooks == nil {
		d.Webhooks = []WebhookDelivery{}
	}
	if d.Connections == nil {
		d.Connections = []Connection{}
	}
	if d.Users == nil {
		d.Users = []User{}
	}
	if d.Analytics.LoginsByDate == nil {
		d.Analytics.LoginsByDate = map[string]int{}
	}
}

// Collection returns the named free-form collection, or nil for an
// unknown name. healthData is addressable here for admin listing even
// though it is not part of the generic CRUD surface.
func (d *Document) Collection(name string) []Record {
	switch name {
	case CollectionJournal:
		return d.Journal
	case CollectionSteps:
		return d.Steps
	case CollectionMeals:
		return d.Meals
	case CollectionWorkouts:
		return d.Workouts
	case "healthData":
		return d.HealthData
	}
	return nil
}

// SetCollection replaces the named free-form collection. Unknown names
// are ignored.
func (d *Document) SetCollection(name string, records []Record) {
	switch name {
	case CollectionJournal:
		d.Journal = records
	case CollectionSteps:
		d.Steps = records
	case CollectionMeals:
		d.Meals = records
	case CollectionWorkouts:
		d.Workouts = records
	case "healthData":
		d.HealthData = records
	}
}
