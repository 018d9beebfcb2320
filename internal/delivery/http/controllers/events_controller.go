package controllers

import (
	"log/slog"
	"net/http"
	"strconv"

	"citybeat/internal/delivery/http/helpers"
	"citybeat/internal/domain"
)

// EventsController handles the read-only catalog endpoints. The catalog
// is immutable after startup, so these handlers run lock-free.
type EventsController struct {
	Logger  *slog.Logger
	Catalog domain.CatalogService
}

// NewEventsController creates an EventsController with the given logger and catalog.
func NewEventsController(logger *slog.Logger, catalog domain.CatalogService) *EventsController {
	return &EventsController{Logger: logger, Catalog: catalog}
}

// List godoc
// @Summary Query the event catalog
// @Description Filter by category, title substring (q), city/venue substring (loc), and date window (today, 7days, next7); sort by date-asc, date-desc, title-asc, title-desc; paginate. total counts the filtered set before slicing.
// @Tags events
// @Produce json
// @Param page query int false "page, default 1"
// @Param pageSize query int false "page size, default 6"
// @Param category query string false "case-insensitive exact category"
// @Param q query string false "title substring"
// @Param loc query string false "city or venue substring"
// @Param dateFilter query string false "today, 7days, or next7"
// @Param sort query string false "date-asc, date-desc, title-asc, title-desc"
// @Success 200 {object} domain.EventPage
// @Router /api/events [get]
func (c *EventsController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := domain.EventQuery{
		Category:   q.Get("category"),
		Text:       q.Get("q"),
		Location:   q.Get("loc"),
		DateFilter: q.Get("dateFilter"),
		Sort:       q.Get("sort"),
		Pagination: parsePagination(r),
	}
	helpers.WriteJSON(w, http.StatusOK, c.Catalog.Query(query))
}

// Categories godoc
// @Summary List distinct event categories
// @Description Distinct non-blank categories, case-insensitive dedup, case-insensitive alphabetical order.
// @Tags events
// @Produce json
// @Success 200 {array} string
// @Router /api/events/categories [get]
func (c *EventsController) Categories(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, c.Catalog.Categories())
}

// Cities godoc
// @Summary List distinct cities with event counts
// @Description Distinct trimmed city names with event counts. A q parameter keeps diacritics-insensitive substring matches.
// @Tags events
// @Produce json
// @Param page query int false "page, default 1"
// @Param pageSize query int false "page size, default 20"
// @Param q query string false "diacritics-insensitive substring"
// @Success 200 {object} domain.CityPage
// @Router /api/events/cities [get]
func (c *EventsController) Cities(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, c.Catalog.Cities(r.URL.Query().Get("q"), parsePagination(r)))
}

// parsePagination reads page and pageSize from the query string. Absent
// or unparseable values are left zero; the catalog clamps them to its
// per-endpoint defaults.
func parsePagination(r *http.Request) domain.PaginationParams {
	var p domain.PaginationParams
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		p.Page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("pageSize")); err == nil {
		p.PageSize = v
	}
	return p
}
