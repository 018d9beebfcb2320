package domain

// Event represents one catalog entry. The catalog is loaded and enriched
// once at startup and is immutable afterwards, so events can be shared
// between requests without synchronization.
// swagger:model Event
type Event struct {
	ID       int              `json:"id"`
	Title    string           `json:"title"`
	Category string           `json:"category"`
	Date     string           `json:"date"` // calendar date, 2006-01-02
	Time     string           `json:"time"` // display string, not parsed
	City     string           `json:"city"`
	Venue    string           `json:"venue"`
	Thumb    string           `json:"thumb"`
	Short    string           `json:"short"`
	Contact  string           `json:"contact"`
	Email    string           `json:"email"`
	Program  []ProgramSection `json:"program"`
}

// ProgramSection is one titled block of an event's program.
// swagger:model ProgramSection
type ProgramSection struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// EventQuery holds the filter, sort, and pagination parameters for a
// catalog query. Blank filter fields are skipped.
type EventQuery struct {
	Category   string
	Text       string // substring match against title
	Location   string // substring match against city or venue
	DateFilter string // "today", "7days", or "next7"
	Sort       string // "date-asc", "date-desc", "title-asc", "title-desc"
	Pagination PaginationParams
}

// EventPage is one page of query results. Total is the filtered count
// before slicing.
// swagger:model EventPage
type EventPage struct {
	Total    int     `json:"total"`
	Page     int     `json:"page"`
	PageSize int     `json:"pageSize"`
	Items    []Event `json:"items"`
}

// CityCount is a distinct city name annotated with the number of events
// held there.
// swagger:model CityCount
type CityCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CityPage is one page of distinct cities.
// swagger:model CityPage
type CityPage struct {
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
	Items    []CityCount `json:"items"`
}

// CatalogService defines the read-only query operations over the event
// catalog. Implementations operate on immutable data and are safe for
// concurrent use.
type CatalogService interface {
	Query(q EventQuery) EventPage
	Categories() []string
	Cities(query string, p PaginationParams) CityPage

	// EventTitle resolves an event title for notification messages.
	// Unknown ids yield a placeholder rather than an error.
	EventTitle(id int) string
}
