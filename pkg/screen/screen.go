// Package screen turns the loader's state and a page number into the
// view the directory screen displays, and applies navigation.
package screen

import (
	"github.com/Sternrassler/employee-directory/pkg/directory"
	"github.com/Sternrassler/employee-directory/pkg/loader"
	"github.com/Sternrassler/employee-directory/pkg/pagination"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Texts shown on the screen.
const (
	Title       = "Employee Data Table"
	LoadingText = "Loading Employee Data..."
	EmptyText   = "No employee data available."
)

// Columns are the table headers, in order.
var Columns = []string{"ID", "Name", "Email", "Role"}

var navigationTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "directory_navigation_total",
	Help: "Navigation requests by direction and result (moved, boundary, not_ready)",
}, []string{"direction", "result"})

// Mode selects which of the mutually exclusive views is shown.
type Mode string

const (
	ModeLoading Mode = "loading"
	ModeEmpty   Mode = "empty"
	ModeTable   Mode = "table"
)

// View is everything a renderer needs for one frame.
type View struct {
	Mode     Mode                `json:"mode"`
	Title    string              `json:"title"`
	Message  string              `json:"message,omitempty"`
	Columns  []string            `json:"columns,omitempty"`
	Rows     []directory.Record  `json:"rows,omitempty"`
	Controls pagination.Controls `json:"controls"`
	Total    int                 `json:"total"`
	State    string              `json:"state"`
}

// Source is the part of the loader the screen reads.
type Source interface {
	State() loader.State
	Records() []directory.Record
}

// Screen derives views from a Source. It holds no page state itself, so
// one Screen serves any number of sessions.
type Screen struct {
	source   Source
	pageSize int
}

// New creates a screen over source with the given page size.
func New(source Source, pageSize int) *Screen {
	if pageSize <= 0 {
		pageSize = pagination.DefaultPageSize
	}
	return &Screen{
		source:   source,
		pageSize: pageSize,
	}
}

func (s *Screen) paginator() pagination.Paginator[directory.Record] {
	return pagination.New(s.source.Records(), s.pageSize)
}

// View builds the frame for page. page is clamped into range first.
func (s *Screen) View(page int) View {
	state := s.source.State()
	p := s.paginator()
	page = p.Clamp(page)

	v := View{
		Title:    Title,
		Controls: p.Controls(page),
		Total:    p.Len(),
		State:    state.String(),
	}

	switch {
	case state == loader.StateLoading:
		v.Mode = ModeLoading
		v.Message = LoadingText
		v.Controls.Visible = false
	case p.Len() == 0:
		v.Mode = ModeEmpty
		v.Message = EmptyText
	default:
		v.Mode = ModeTable
		v.Columns = Columns
		v.Rows = p.Slice(page)
	}
	return v
}

// Next returns the page after page, or page itself at the last page or
// while the dataset is not loaded.
func (s *Screen) Next(page int) int {
	return s.navigate("next", page, func(p pagination.Paginator[directory.Record], page int) int {
		return p.Next(page)
	})
}

// Previous returns the page before page, or page itself at the first page
// or while the dataset is not loaded.
func (s *Screen) Previous(page int) int {
	return s.navigate("previous", page, func(p pagination.Paginator[directory.Record], page int) int {
		return p.Previous(page)
	})
}

func (s *Screen) navigate(direction string, page int, step func(pagination.Paginator[directory.Record], int) int) int {
	if s.source.State() == loader.StateLoading {
		navigationTotal.WithLabelValues(direction, "not_ready").Inc()
		return page
	}

	p := s.paginator()
	page = p.Clamp(page)
	next := step(p, page)
	if next == page {
		navigationTotal.WithLabelValues(direction, "boundary").Inc()
	} else {
		navigationTotal.WithLabelValues(direction, "moved").Inc()
	}
	return next
}
