package catalog

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"citybeat/internal/domain"
)

// Pagination defaults for the query endpoints.
const (
	DefaultEventPageSize = 6
	DefaultCityPageSize  = 20
)

const dateLayout = "2006-01-02"

// Service answers queries over an immutable event catalog. All methods
// are pure reads and safe for concurrent use.
type Service struct {
	events []domain.Event
	titles map[int]string
	now    func() time.Time
}

// New returns a Service over the given events. The slice must not be
// mutated after the call.
func New(events []domain.Event) *Service {
	titles := make(map[int]string, len(events))
	for _, ev := range events {
		titles[ev.ID] = ev.Title
	}
	return &Service{events: events, titles: titles, now: time.Now}
}

// Query filters, sorts, and paginates the catalog. Filters apply in a
// fixed order: category, text, location, date window. Without a sort the
// catalog order is preserved.
func (s *Service) Query(q domain.EventQuery) domain.EventPage {
	list := make([]domain.Event, 0, len(s.events))
	today := toCalendarDate(s.now().UTC())
	for _, ev := range s.events {
		if q.Category != "" && !strings.EqualFold(ev.Category, q.Category) {
			continue
		}
		if q.Text != "" && !containsFold(ev.Title, q.Text) {
			continue
		}
		if q.Location != "" && !containsFold(ev.City, q.Location) && !containsFold(ev.Venue, q.Location) {
			continue
		}
		if q.DateFilter != "" && !matchDateFilter(ev.Date, q.DateFilter, today) {
			continue
		}
		list = append(list, ev)
	}

	sortEvents(list, q.Sort)

	p := q.Pagination.Clamp(DefaultEventPageSize)
	lo, hi := p.Slice(len(list))
	return domain.EventPage{
		Total:    len(list),
		Page:     p.Page,
		PageSize: p.PageSize,
		Items:    list[lo:hi],
	}
}

// Categories returns the distinct non-blank categories, deduplicated and
// ordered case-insensitively.
func (s *Service) Categories() []string {
	seen := make(map[string]struct{})
	cats := []string{}
	for _, ev := range s.events {
		c := strings.TrimSpace(ev.Category)
		if c == "" {
			continue
		}
		key := strings.ToLower(c)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool {
		return strings.ToLower(cats[i]) < strings.ToLower(cats[j])
	})
	return cats
}

// Cities returns the distinct non-blank city names with their event
// counts. A query keeps substring matches after diacritics folding on
// both sides.
func (s *Service) Cities(query string, p domain.PaginationParams) domain.CityPage {
	idx := make(map[string]int) // lowercased trimmed name -> position in list
	list := []domain.CityCount{}
	for _, ev := range s.events {
		name := strings.TrimSpace(ev.City)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		i, ok := idx[key]
		if !ok {
			i = len(list)
			idx[key] = i
			list = append(list, domain.CityCount{Name: name})
		}
		list[i].Count++
	}

	if q := Fold(strings.TrimSpace(query)); q != "" {
		filtered := list[:0]
		for _, c := range list {
			if strings.Contains(Fold(c.Name), q) {
				filtered = append(filtered, c)
			}
		}
		list = filtered
	}

	sort.Slice(list, func(i, j int) bool {
		return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name)
	})

	p = p.Clamp(DefaultCityPageSize)
	lo, hi := p.Slice(len(list))
	return domain.CityPage{
		Total:    len(list),
		Page:     p.Page,
		PageSize: p.PageSize,
		Items:    list[lo:hi],
	}
}

// EventTitle resolves an event title by id, falling back to a placeholder
// for ids the catalog does not know.
func (s *Service) EventTitle(id int) string {
	if t, ok := s.titles[id]; ok && t != "" {
		return t
	}
	return fmt.Sprintf("event %d", id)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// toCalendarDate truncates t to midnight, keeping only the calendar date.
func toCalendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// matchDateFilter reports whether an event date passes the given filter.
// Unparseable dates never match a recognized filter; unrecognized filter
// values leave the list unfiltered.
func matchDateFilter(date, filter string, today time.Time) bool {
	if filter != "today" && filter != "7days" && filter != "next7" {
		return true
	}
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return false
	}
	if filter == "today" {
		return d.Equal(today)
	}
	diff := d.Sub(today).Hours() / 24
	return diff >= 0 && diff <= 7
}

func sortEvents(list []domain.Event, key string) {
	switch key {
	case "date-asc":
		sort.SliceStable(list, func(i, j int) bool {
			return parseDate(list[i].Date).Before(parseDate(list[j].Date))
		})
	case "date-desc":
		sort.SliceStable(list, func(i, j int) bool {
			return parseDate(list[j].Date).Before(parseDate(list[i].Date))
		})
	case "title-asc":
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Title < list[j].Title
		})
	case "title-desc":
		sort.SliceStable(list, func(i, j int) bool {
			return list[j].Title < list[i].Title
		})
	}
}

// parseDate returns the zero time for unparseable dates so date sorts
// stay total.
func parseDate(date string) time.Time {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}
	}
	return d
}
