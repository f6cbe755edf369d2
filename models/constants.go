package models

// Collection names in the document store
const (
	ProfilesCollection = "profiles"
	SwipesCollection   = "swipes"
	MatchesCollection  = "matches"
)

// Swipe actions carried over the wire
const (
	ActionLike      = "like"
	ActionNope      = "nope"
	ActionSuperlike = "superlike"
)
