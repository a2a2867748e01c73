package models

import "time"

// Actors used in the activity log besides usernames.
const (
	ActorAdmin  = "Admin"
	ActorSystem = "System"
)

// ActivityEntry is one parsed line of the activity log.
type ActivityEntry struct {
	Time   time.Time
	Actor  string
	Action string
}
