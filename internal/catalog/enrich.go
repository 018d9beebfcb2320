package catalog

import (
	"fmt"
	"strings"
	"unicode"

	"citybeat/internal/domain"
)

const emailDomain = "citybeat.local"

// Enrich fills blank contact, email, and program fields with values
// derived purely from the event id and existing fields, so repeated runs
// are stable. It mutates events in place and reports whether anything
// changed; already-enriched data is left untouched.
func Enrich(events []domain.Event) bool {
	changed := false
	for i := range events {
		ev := &events[i]
		if strings.TrimSpace(ev.Contact) == "" {
			ev.Contact = contactPhone(ev.ID)
			changed = true
		}
		if strings.TrimSpace(ev.Email) == "" {
			ev.Email = contactEmail(ev.ID, ev.Title)
			changed = true
		}
		if len(ev.Program) == 0 {
			ev.Program = defaultProgram(ev.Time, ev.Short)
			changed = true
		}
	}
	return changed
}

// contactPhone builds a deterministic phone string in the local
// +40 7XX AAA BBB pattern.
func contactPhone(id int) string {
	return fmt.Sprintf("+40 %d %d %d", 700+id%30, 100+(id*7)%900, 200+(id*13)%800)
}

// contactEmail sanitizes the title into a local part: lowercase, letters,
// digits and spaces only, trimmed, spaces replaced with dashes.
func contactEmail(id int, title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			b.WriteRune(r)
		}
	}
	name := strings.ReplaceAll(strings.TrimSpace(b.String()), " ", "-")
	if name == "" {
		name = fmt.Sprintf("event-%d", id)
	}
	return fmt.Sprintf("%s@%s", name, emailDomain)
}

func defaultProgram(timeStr, short string) []domain.ProgramSection {
	if len(short) > 60 {
		short = short[:60] + "..."
	}
	return []domain.ProgramSection{
		{Title: "Main", Items: []string{timeStr + " — Opening/Intro", short}},
		{Title: "Highlights", Items: []string{"Speaker session", "Q&A"}},
	}
}
