// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package render

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/danielhkuo/transit-routes/models"
)

// Palette holds the 24-bit colours of one theme
type Palette struct {
	Text      string
	Secondary string
	Header    string
	Active    string
	Upcoming  string
	Favourite string
}

var (
	Light = Palette{
		Text:      "#212121",
		Secondary: "#757575",
		Header:    "#1565C0",
		Active:    "#2E7D32",
		Upcoming:  "#EF6C00",
		Favourite: "#FFC107",
	}
	Dark = Palette{
		Text:      "#FFFFFF",
		Secondary: "#B0B0B0",
		Header:    "#01579B",
		Active:    "#66BB6A",
		Upcoming:  "#FFA726",
		Favourite: "#FFC107",
	}
)

// Printer writes store state for humans
type Printer struct {
	w       io.Writer
	color   bool
	palette Palette
	now     func() time.Time
}

// New returns a printer for w. Colour is used only when w is a terminal
// and NO_COLOR is unset.
func New(w io.Writer, dark bool) *Printer {
	p := &Printer{w: w, palette: Light, now: time.Now}
	if dark {
		p.palette = Dark
	}
	if f, ok := w.(*os.File); ok && os.Getenv("NO_COLOR") == "" {
		fd := f.Fd()
		p.color = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	return p
}

// WithColor forces colour on or off
func (p *Printer) WithColor(on bool) *Printer {
	p.color = on
	return p
}

func (p *Printer) paint(hex, s string) string {
	if !p.color || len(hex) != 7 {
		return s
	}
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return s
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s\x1b[0m", r, g, b, s)
}

func (p *Printer) bold(s string) string {
	if !p.color {
		return s
	}
	return "\x1b[1m" + s + "\x1b[0m"
}

func (p *Printer) statusColor(status string) string {
	if status == models.StatusActive {
		return p.palette.Active
	}
	return p.palette.Upcoming
}

func (p *Printer) star(fav bool) string {
	if fav {
		return p.paint(p.palette.Favourite, "★")
	}
	return " "
}

// Routes prints one line per route, marking favourites
func (p *Printer) Routes(routes []models.Route, favourites []int) {
	if len(routes) == 0 {
		fmt.Fprintln(p.w, p.paint(p.palette.Secondary, "No routes available."))
		return
	}

	favs := make(map[int]bool, len(favourites))
	for _, id := range favourites {
		favs[id] = true
	}

	fmt.Fprintln(p.w, p.paint(p.palette.Header, p.bold("Transport Routes")))
	for _, r := range routes {
		// pad before painting so escape codes do not count toward the width
		fmt.Fprintf(p.w, "%s %4d  %s %s\n",
			p.star(favs[r.ID]),
			r.ID,
			p.paint(p.palette.Text, fmt.Sprintf("%-40s", r.Title)),
			p.paint(p.statusColor(r.Status), r.Status),
		)
	}
}

// Route prints the detail view of one route
func (p *Printer) Route(r models.Route, favourite bool) {
	fmt.Fprintf(p.w, "%s %s\n", p.star(favourite), p.paint(p.palette.Header, p.bold(r.Title)))
	fmt.Fprintf(p.w, "  %s\n", p.paint(p.palette.Secondary, r.Description))
	fmt.Fprintf(p.w, "  Status:          %s\n", p.paint(p.statusColor(r.Status), r.Status))
	if r.Schedule != "" {
		fmt.Fprintf(p.w, "  Schedule:        %s\n", r.Schedule)
	}
	if r.Frequency != "" {
		fmt.Fprintf(p.w, "  Frequency:       %s\n", r.Frequency)
	}
	if r.OperatingHours != "" {
		fmt.Fprintf(p.w, "  Operating hours: %s\n", r.OperatingHours)
	}
	fmt.Fprintf(p.w, "  Image:           %s\n", r.Image)
}

// Favourites prints the saved routes with a count header
func (p *Printer) Favourites(routes []models.Route) {
	fmt.Fprintln(p.w, p.paint(p.palette.Header, p.bold("Favourites")))
	fmt.Fprintln(p.w, p.paint(p.palette.Secondary, SavedCount(len(routes))))
	if len(routes) == 0 {
		fmt.Fprintln(p.w, "Mark routes as favourite with `fav <id>` to see them here.")
		return
	}
	for _, r := range routes {
		fmt.Fprintf(p.w, "%s %4d  %s\n", p.star(true), r.ID, p.paint(p.palette.Text, r.Title))
	}
}

// Toggled reports the result of a favourite toggle
func (p *Printer) Toggled(r models.Route, favourite bool) {
	if favourite {
		fmt.Fprintf(p.w, "%s Added %s to favourites\n", p.star(true), r.Title)
	} else {
		fmt.Fprintf(p.w, "Removed %s from favourites\n", r.Title)
	}
}

// Profile prints the signed-in user. A zero expiry is omitted.
func (p *Printer) Profile(u models.UserProfile, favourites int, expiry time.Time) {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.Username
	}
	fmt.Fprintln(p.w, p.paint(p.palette.Header, p.bold(name)))
	fmt.Fprintf(p.w, "  Username:   @%s\n", u.Username)
	if u.Email != "" {
		fmt.Fprintf(p.w, "  Email:      %s\n", u.Email)
	}
	fmt.Fprintf(p.w, "  Favourites: %s\n", humanize.Comma(int64(favourites)))
	if !expiry.IsZero() {
		fmt.Fprintf(p.w, "  Session:    %s\n", p.sessionLine(expiry))
	}
}

func (p *Printer) sessionLine(expiry time.Time) string {
	rel := humanize.RelTime(expiry, p.now(), "ago", "from now")
	if expiry.Before(p.now()) {
		return p.paint(p.palette.Upcoming, "expired "+rel)
	}
	return "expires " + rel
}

// Theme prints the current theme name
func (p *Printer) Theme(dark bool) {
	if dark {
		fmt.Fprintln(p.w, "Dark mode on")
	} else {
		fmt.Fprintln(p.w, "Dark mode off")
	}
}

// Message prints a plain status line
func (p *Printer) Message(msg string) {
	fmt.Fprintln(p.w, msg)
}

// Error prints a user-facing error line
func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.w, p.paint(p.palette.Upcoming, msg))
}

// SavedCount formats "1 route saved" / "N routes saved"
func SavedCount(n int) string {
	if n == 1 {
		return "1 route saved"
	}
	return humanize.Comma(int64(n)) + " routes saved"
}
