package models

// Event is a single catalog entry. Date is a plain local calendar date
// (YYYY-MM-DD) and is never converted to an absolute instant; Start and
// End are zero-padded HH:mm local times-of-day, empty when the slot is
// unscheduled.
type Event struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Area        string `json:"area"`
	Start       string `json:"start,omitempty"`
	End         string `json:"end,omitempty"`
	Description string `json:"description,omitempty"`

	// Computed per-device, never stored in the catalog.
	IsFavorite bool `json:"isFavorite,omitempty"`
}

// Category buckets over the free-text Type field.
const (
	CategoryAll       = "ALL"
	CategoryParties   = "PARTIES"
	CategoryWorkshops = "WORKSHOPS"
)

// Toast is one ephemeral notification frame pushed to a device.
type Toast struct {
	Action  string `json:"action"` // "show" or "dismiss"
	Message string `json:"message,omitempty"`
	Kind    string `json:"kind,omitempty"` // info | success | warning
}

// Toast kinds, purely presentational.
const (
	ToastInfo    = "info"
	ToastSuccess = "success"
	ToastWarning = "warning"
)
