package server

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/daytrack/models"
)

type indexView struct {
	Notice     string
	Err        string
	Today      models.Day
	Trackables []trackableRow
	Chartables []chartableRow
	Charts     []*models.LineChart
	Colours    []models.Colour
}

type trackableRow struct {
	T          *models.Trackable
	Hex        string
	Answer     string
	OutOfRange bool
	CanDelete  bool
}

type chartableRow struct {
	C              *models.Chartable
	Hex            string
	ColourEditable bool
	Terms          []termRow
	Available      []*models.Trackable
	CanDelete      bool
}

type termRow struct {
	T    *models.Trackable
	Term models.SumTerm
}

type chartView struct {
	Notice              string
	Err                 string
	Chart               *models.LineChart
	ChartHTML           template.HTML
	Entries             []entryRow
	Colours             []models.Colour
	Adding              bool
	Candidate           models.ChartableID
	CreateNew           bool
	Available           []*models.Chartable
	AvailableTrackables []*models.Trackable
	EditID              models.ChartableID
}

type entryRow struct {
	Index       int
	Label       string
	Hex         string
	RefParam    string
	Visible     bool
	CanUp       bool
	CanDown     bool
	IsTrackable bool
	ChartableID models.ChartableID
	Multiplier  float64
	Inverted    bool
	Editing     bool
	Edit        *chartableRow
}

func (srv *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	view := indexView{
		Notice:  srv.session.Notice(),
		Err:     r.URL.Query().Get("err"),
		Today:   models.Today(),
		Colours: models.Colours,
	}

	srv.session.View(func(u *models.UserData) {
		for _, t := range u.Trackables {
			answer, _ := t.Responses.DisplayValue(view.Today)
			view.Trackables = append(view.Trackables, trackableRow{
				T:          t,
				Hex:        t.Colour.Hex(),
				Answer:     answer,
				OutOfRange: t.Responses.OutOfRange(view.Today),
				CanDelete:  u.DeleteTrackableAllowed(t.ID),
			})
		}
		for _, c := range u.Chartables {
			view.Chartables = append(view.Chartables, chartableRow{
				C:         c,
				Hex:       u.ResolveColour(c).Hex(),
				CanDelete: u.DeleteChartableAllowed(c.ID),
			})
		}
		view.Charts = u.Charts
	})

	renderPage(w, "index", view)
}

func (srv *Server) handleChartPage(w http.ResponseWriter, r *http.Request) {
	id, err := chartID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	var focus *models.DataRef
	if ref, err := parseRef(r.URL.Query().Get("focus")); err == nil {
		focus = &ref
	}

	view := chartView{
		Notice:  srv.session.Notice(),
		Err:     r.URL.Query().Get("err"),
		Colours: models.Colours,
	}
	state := srv.session.EditState(id)

	found := false
	srv.session.View(func(u *models.UserData) {
		lc := u.ChartByID(id)
		if lc == nil {
			return
		}
		found = true
		view.Chart = lc

		line := buildLineChart(u, lc, focus)
		var buf bytes.Buffer
		if err := line.Render(&buf); err == nil {
			view.ChartHTML = template.HTML(buf.String())
		}

		for i, entry := range lc.Entries {
			row := entryRow{
				Index:    i,
				Label:    u.RefLabel(entry.Ref),
				Hex:      u.EffectiveHex(entry, focus),
				RefParam: refParam(entry.Ref),
				Visible:  entry.Visible,
				CanUp:    lc.CanMoveUp(i),
				CanDown:  lc.CanMoveDown(i),
			}
			if entry.Ref.Kind == models.RefTrackable {
				row.IsTrackable = true
				row.Multiplier = entry.Ref.Multiplier
				row.Inverted = entry.Ref.Inverted
			} else {
				row.ChartableID = entry.Ref.ChartableID
				if state.Mode == ModeEditing && state.Editing == entry.Ref.ChartableID {
					row.Editing = true
					if c := u.ChartableByID(entry.Ref.ChartableID); c != nil {
						edit := chartableRow{
							C:              c,
							ColourEditable: len(c.Sum) >= 2,
							Available:      u.SummableTrackables(c),
						}
						for _, term := range c.Sum {
							if t := u.TrackableByID(term.TrackableID); t != nil {
								edit.Terms = append(edit.Terms, termRow{T: t, Term: term})
							}
						}
						row.Edit = &edit
						view.EditID = c.ID
					}
				}
			}
			view.Entries = append(view.Entries, row)
		}

		if state.Mode == ModeAdding {
			view.Adding = true
			view.Candidate = state.Candidate
			view.CreateNew = state.CreateNew
			view.Available = u.AvailableChartables(lc)
			view.AvailableTrackables = u.AvailableTrackables(lc)
		}
	})

	if !found {
		http.NotFound(w, r)
		return
	}
	renderPage(w, "chart", view)
}

func renderPage(w http.ResponseWriter, name string, view interface{}) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, view); err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// apply runs one edit and redirects back, carrying a validation message in
// the query string when the edit was refused.
func (srv *Server) apply(w http.ResponseWriter, r *http.Request, back string, edit func(u *models.UserData) error) {
	if err := srv.session.Apply(r.Context(), edit); err != nil {
		http.Redirect(w, r, back+"?err="+template.URLQueryEscaper(err.Error()), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// --- parsing helpers ---

func trackableIDValue(r *http.Request) (models.TrackableID, error) {
	n, err := strconv.Atoi(r.PathValue("id"))
	return models.TrackableID(n), err
}

func chartableIDValue(r *http.Request) (models.ChartableID, error) {
	n, err := strconv.Atoi(r.PathValue("id"))
	return models.ChartableID(n), err
}

func chartID(r *http.Request) (models.ChartID, error) {
	n, err := strconv.Atoi(r.PathValue("id"))
	return models.ChartID(n), err
}

// refParam encodes a DataRef for URLs and form fields.
func refParam(ref models.DataRef) string {
	if ref.Kind == models.RefTrackable {
		return fmt.Sprintf("trackable:%d", ref.TrackableID)
	}
	return fmt.Sprintf("chartable:%d", ref.ChartableID)
}

// parseRef decodes refParam's encoding.
func parseRef(s string) (models.DataRef, error) {
	kind, rest, ok := strings.Cut(s, ":")
	if !ok {
		return models.DataRef{}, fmt.Errorf("malformed reference %q", s)
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return models.DataRef{}, fmt.Errorf("malformed reference %q", s)
	}
	switch kind {
	case "chartable":
		return models.ChartableRef(models.ChartableID(n)), nil
	case "trackable":
		return models.TrackableRef(models.TrackableID(n)), nil
	}
	return models.DataRef{}, fmt.Errorf("unknown reference kind %q", kind)
}
