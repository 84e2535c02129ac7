package domain

import "time"

type EventKind string

const (
	EventFavoriteToggled EventKind = "favorite_toggled"
	EventCartLineAdded   EventKind = "cart_line_added"
	EventCartLineUpdated EventKind = "cart_line_updated"
	EventCartLineRemoved EventKind = "cart_line_removed"
	EventFiltersCleared  EventKind = "filters_cleared"
)

// A CatalogEvent describes one applied mutation of the catalog state.
//
// Quantity is the resulting line quantity for cart events and Favorite
// the resulting flag for favorite events.
type CatalogEvent struct {
	EventID    string
	Kind       EventKind
	ProductID  int
	Quantity   int
	Favorite   bool
	OccurredAt time.Time
}
