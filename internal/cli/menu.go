// Package cli implements the interactive menu frontend.
// It owns all prompting and raw-input parsing, maps raw strings through the
// validated construction path before touching the itinerary, and converts the
// service's boolean and listing results into display. The loop reads from an
// io.Reader and writes to an io.Writer so it can be driven from tests.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/pkordes/tripfolio/internal/assistant"
	"github.com/pkordes/tripfolio/internal/domain"
	"github.com/pkordes/tripfolio/internal/service"
)

// Generator is the assistant dependency: text out, never an error.
type Generator interface {
	Generate(ctx context.Context, d domain.Destination, mode assistant.Mode) string
}

// Menu drives one interactive planning session.
type Menu struct {
	itinerary *service.Itinerary
	assistant Generator
	in        *bufio.Scanner
	out       io.Writer
}

// New constructs a Menu reading commands from in and printing to out.
func New(it *service.Itinerary, gen Generator, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		itinerary: it,
		assistant: gen,
		in:        bufio.NewScanner(in),
		out:       out,
	}
}

// Run loads the persisted itinerary, then loops on the menu until the user
// exits (which saves first) or input ends.
func (m *Menu) Run(ctx context.Context) {
	if err := m.itinerary.Load(); err != nil {
		fmt.Fprintf(m.out, "Error loading itinerary: %v\n", err)
	}

	for {
		fmt.Fprint(m.out, "\nMenu:\n"+
			"1. Add Destination\n"+
			"2. Remove Destination\n"+
			"3. Update Destination\n"+
			"4. View All Destinations\n"+
			"5. Search Destinations\n"+
			"6. Travel Assistant\n"+
			"7. Save Itinerary\n"+
			"8. Load Itinerary\n"+
			"9. Exit\n")

		choice, ok := m.prompt("Choose: ")
		if !ok {
			return
		}

		switch choice {
		case "1":
			m.addFlow()
		case "2":
			m.removeFlow()
		case "3":
			m.updateFlow()
		case "4":
			m.viewAll()
		case "5":
			m.searchFlow()
		case "6":
			m.assistFlow(ctx)
		case "7":
			m.saveFlow()
		case "8":
			m.loadFlow()
		case "9":
			m.saveFlow()
			fmt.Fprintln(m.out, "Goodbye — saved and exiting.")
			return
		default:
			fmt.Fprintln(m.out, "Invalid choice. Try 1-9.")
		}
	}
}

// prompt prints label and returns the next trimmed input line.
// ok is false when input is exhausted.
func (m *Menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

// splitActivities turns a comma-separated answer into a trimmed list.
func splitActivities(s string) []string {
	return domain.TrimActivities(strings.Split(s, ","))
}

func (m *Menu) addFlow() {
	city, ok := m.prompt("City: ")
	if !ok {
		return
	}
	country, ok := m.prompt("Country: ")
	if !ok {
		return
	}
	start, ok := m.prompt("Start date (YYYY-MM-DD): ")
	if !ok {
		return
	}
	end, ok := m.prompt("End date (YYYY-MM-DD): ")
	if !ok {
		return
	}
	budget, ok := m.prompt("Budget: ")
	if !ok {
		return
	}
	acts, ok := m.prompt("Activities (comma separated): ")
	if !ok {
		return
	}

	d, err := domain.New(city, country, start, end, budget, splitActivities(acts))
	if err != nil {
		fmt.Fprintf(m.out, "Invalid destination: %v\n", err)
		return
	}
	m.itinerary.Add(d)
	fmt.Fprintln(m.out, "Destination added successfully.")
}

func (m *Menu) removeFlow() {
	city, ok := m.prompt("City to remove: ")
	if !ok {
		return
	}
	if m.itinerary.Remove(city) {
		fmt.Fprintf(m.out, "Removed destination %q.\n", city)
	} else {
		fmt.Fprintf(m.out, "No destination found with the name %q.\n", city)
	}
}

// updateFlow asks for new values, blank to keep, and applies them to every
// entry matching the city.
func (m *Menu) updateFlow() {
	city, ok := m.prompt("Which city do you want to update? ")
	if !ok {
		return
	}

	var u domain.Update

	if v, ok := m.prompt("New country (blank to keep): "); !ok {
		return
	} else if v != "" {
		u.Country = &v
	}

	if v, ok := m.prompt("New start date YYYY-MM-DD (blank to keep): "); !ok {
		return
	} else if v != "" {
		d, err := domain.ParseDate(v)
		if err != nil {
			fmt.Fprintf(m.out, "Invalid date: %v\n", err)
			return
		}
		u.StartDate = &d
	}

	if v, ok := m.prompt("New end date YYYY-MM-DD (blank to keep): "); !ok {
		return
	} else if v != "" {
		d, err := domain.ParseDate(v)
		if err != nil {
			fmt.Fprintf(m.out, "Invalid date: %v\n", err)
			return
		}
		u.EndDate = &d
	}

	if v, ok := m.prompt("New budget (blank to keep): "); !ok {
		return
	} else if v != "" {
		b, err := domain.ParseBudget(v)
		if err != nil {
			fmt.Fprintf(m.out, "Invalid budget: %v\n", err)
			return
		}
		u.Budget = &b
	}

	if v, ok := m.prompt("New activities (comma separated, blank to keep): "); !ok {
		return
	} else if v != "" {
		u.Activities = splitActivities(v)
	}

	found, err := m.itinerary.Update(city, u)
	if err != nil {
		fmt.Fprintf(m.out, "Update rejected: %v\n", err)
		return
	}
	if !found {
		fmt.Fprintln(m.out, "Destination not found.")
		return
	}
	fmt.Fprintln(m.out, "Updated destination details.")
}

// viewAll prints the indexed listing. Indices are positional and only valid
// against this listing; any mutation invalidates them.
func (m *Menu) viewAll() {
	destinations := m.itinerary.List()
	if len(destinations) == 0 {
		fmt.Fprintln(m.out, "No destinations saved.")
		return
	}

	w := tabwriter.NewWriter(m.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Index\tCity\tCountry\tStart Date\tEnd Date\tBudget\tActivities")
	for i, d := range destinations {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%.2f\t%s\n",
			i, d.City, d.Country, d.StartDate, d.EndDate, d.Budget,
			strings.Join(d.Activities, ", "))
	}
	w.Flush()
}

func (m *Menu) searchFlow() {
	term, ok := m.prompt("Search term (city/country/activity): ")
	if !ok {
		return
	}
	results := m.itinerary.Search(term)
	if len(results) == 0 {
		fmt.Fprintln(m.out, "No matches.")
		return
	}
	for _, d := range results {
		fmt.Fprintln(m.out, d)
	}
}

// assistFlow resolves a positional index against a fresh listing, then asks
// the assistant for an itinerary or budget tips.
func (m *Menu) assistFlow(ctx context.Context) {
	m.viewAll()
	if m.itinerary.Len() == 0 {
		return
	}

	answer, ok := m.prompt("Choose destination index (or 'c' to cancel): ")
	if !ok || strings.EqualFold(answer, "c") {
		return
	}
	i, err := strconv.Atoi(answer)
	if err != nil {
		fmt.Fprintln(m.out, "Invalid input.")
		return
	}
	d, ok := m.itinerary.At(i)
	if !ok {
		fmt.Fprintln(m.out, "Invalid index.")
		return
	}

	fmt.Fprint(m.out, "1) Generate full itinerary\n2) Generate budget tips\n")
	sub, ok := m.prompt("Choose: ")
	if !ok {
		return
	}
	switch sub {
	case "1":
		fmt.Fprintln(m.out, "Generating itinerary...")
		fmt.Fprintf(m.out, "\n--- Itinerary ---\n%s\n", m.assistant.Generate(ctx, d, assistant.ModeItinerary))
	case "2":
		fmt.Fprintln(m.out, "Generating budget tips...")
		fmt.Fprintf(m.out, "\n--- Budget Tips ---\n%s\n", m.assistant.Generate(ctx, d, assistant.ModeBudgetTips))
	default:
		fmt.Fprintln(m.out, "Canceled.")
	}
}

func (m *Menu) saveFlow() {
	if err := m.itinerary.Save(); err != nil {
		fmt.Fprintf(m.out, "Error saving itinerary: %v\n", err)
		return
	}
	fmt.Fprintln(m.out, "Itinerary saved.")
}

func (m *Menu) loadFlow() {
	if err := m.itinerary.Load(); err != nil {
		fmt.Fprintf(m.out, "Error loading itinerary: %v\n", err)
		return
	}
	fmt.Fprintln(m.out, "Itinerary loaded.")
}
