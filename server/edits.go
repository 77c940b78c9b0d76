package server

import (
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/daytrack/models"
)

// POST handlers. Each one decodes the form, runs a single edit-protocol
// operation through the session, and redirects back to the page it came
// from; a refused edit redirects with the validation message instead.

// --- trackables ---

func (srv *Server) handleTrackableAdd(w http.ResponseWriter, r *http.Request) {
	srv.apply(w, r, "/", func(u *models.UserData) error {
		u.AddTrackable()
		return nil
	})
}

func (srv *Server) handleTrackableQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := trackableIDValue(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	question := r.FormValue("question")
	srv.apply(w, r, "/", func(u *models.UserData) error {
		return u.SetQuestion(id, question)
	})
}

func (srv *Server) handleTrackableColour(w http.ResponseWriter, r *http.Request) {
	id, err := trackableIDValue(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	colour := r.FormValue("colour")
	srv.apply(w, r, "/", func(u *models.UserData) error {
		return u.SetTrackableColour(id, models.Colour(colour))
	})
}

func (srv *Server) handleTrackableAnswer(w http.ResponseWriter, r *http.Request) {
	id, err := trackableIDValue(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	day, err := models.ParseDay(r.FormValue("day"))
	if err != nil {
		srv.apply(w, r, "/", func(u *models.UserData) error { return err })
		return
	}
	value := r.FormValue("value")
	srv.apply(w, r, "/", func(u *models.UserData) error {
		return u.SetResponse(id, day, value)
	})
}

func (srv *Server) handleTrackableConvert(w http.ResponseWriter, r *http.Request) {
	id, err := trackableIDValue(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	kind, err := models.ParseKind(r.FormValue("type"))
	if err != nil {
		srv.apply(w, r, "/", func(u *models.UserData) error { return err })
		return
	}
	params := models.ConvertParams{
		Icons:    r.Form["icon"],
		ScaleMin: formInt(r, "min", 1),
		ScaleMax: formInt(r, "max", 5),
	}
	srv.apply(w, r, "/", func(u *models.UserData) error {
		return u.ConvertTrackable(id, kind, params)
	})
}

func (srv *Server) handleTrackableScale(w http.ResponseWriter, r *http.Request) {
	id, err := trackableIDValue(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	srv.apply(w, r, "/", func(u *models.UserData) error {
		if v := r.FormValue("min"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid minimum %q", v)
			}
			if err := u.SetScaleMin(id, n); err != nil {
				return err
			}
		}
		if v := r.FormValue("max"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid maximum %q", v)
			}
			if err := u.SetScaleMax(id, n); err != nil {
				return err
			}
		}
		return nil
	})
}

func (srv *Server) handleTrackableIconAdd(w http.ResponseWriter, r *http.Request) {
	id, err := trackableIDValue(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	name := r.FormValue("name")
	srv.apply(w, r, "/", func(u *models.UserData) error {
		return u.AddIcon(id, name)
	})
}

func (srv *Server) handleTrackableIconRemove(w http.ResponseWriter, r *http.Request) {
	id, err := trackableIDValue(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	srv.apply(w, r, "/", func(u *models.UserData) error {
		return u.RemoveLastIcon(id)
	})
}

func (srv *Server) handleTrackableDelete(w http.ResponseWriter, r *http.Request) {
	id, err := trackableIDValue(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	srv.apply(w, r, "/", func(u *models.UserData) error {
		return u.DeleteTrackable(id)
	})
}

// --- chartables ---

func (srv *Server) handleChartableAdd(w http.ResponseWriter, r *http.Request) {
	srv.apply(w, r, "/", func(u *models.UserData) error {
		u.AddChartable()
		return nil
	})
}

func (srv *Server) handleChartableName(w http.ResponseWriter, r *http.Request) {
	id, err := chartableIDValue(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	name := r.FormValue("name")
	srv.apply(w, r, backTo(r), func(u *models.UserData) error {
		return u.SetChartableName(id, name)
	})
}

func (srv *Server) handleChartableColour(w http.ResponseWriter, r *http.Request) {
	id, err := chartableIDValue(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	colour := r.FormValue("colour")
	srv.apply(w, r, backTo(r), func(u *models.UserData) error {
		return u.SetChartableColour(id, models.Colour(colour))
	})
}

func (srv *Server) handleChartableColourClear(w http.ResponseWriter, r *http.Request) {
	id, err := chartableIDValue(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	srv.apply(w, r, backTo(r), func(u *models.UserData) error {
		return u.ClearChartableColour(id)
	})
}

func (srv *Server) handleChartableInverted(w http.ResponseWriter, r *http.Request) {
	id, err := chartableIDValue(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	inverted := r.FormValue("inverted") == "true"
	srv.apply(w, r, backTo(r), func(u *models.UserData) error {
		return u.SetInverted(id, inverted)
	})
}

func (srv *Server) handleSumAdd(w http.ResponseWriter, r *http.Request) {
	id, err := chartableIDValue(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	trackable, err := formTrackableID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	srv.apply(w, r, backTo(r), func(u *models.UserData) error {
		return u.AddSumTerm(id, trackable)
	})
}

func (srv *Server) handleSumReplace(w http.ResponseWriter, r *http.Request) {
	id, err := chartableIDValue(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	from, err1 := strconv.Atoi(r.FormValue("from"))
	to, err2 := strconv.Atoi(r.FormValue("to"))
	if err1 != nil || err2 != nil {
		http.NotFound(w, r)
		return
	}
	srv.apply(w, r, backTo(r), func(u *models.UserData) error {
		return u.ReplaceSumTerm(id, models.TrackableID(from), models.TrackableID(to))
	})
}

func (srv *Server) handleSumRemove(w http.ResponseWriter, r *http.Request) {
	id, err := chartableIDValue(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	trackable, err := formTrackableID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	srv.apply(w, r, backTo(r), func(u *models.UserData) error {
		return u.RemoveSumTerm(id, trackable)
	})
}

func (srv *Server) handleSumMultiplier(w http.ResponseWriter, r *http.Request) {
	id, err := chartableIDValue(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	trackable, err := formTrackableID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	raw := r.FormValue("multiplier")
	srv.apply(w, r, backTo(r), func(u *models.UserData) error {
		multiplier, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid multiplier %q", raw)
		}
		return u.SetMultiplier(id, trackable, multiplier)
	})
}

func (srv *Server) handleChartableDelete(w http.ResponseWriter, r *http.Request) {
	id, err := chartableIDValue(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	srv.apply(w, r, backTo(r), func(u *models.UserData) error {
		return u.DeleteChartable(id)
	})
}

// --- charts ---

func (srv *Server) handleChartAdd(w http.ResponseWriter, r *http.Request) {
	srv.apply(w, r, "/", func(u *models.UserData) error {
		u.AddChart()
		return nil
	})
}

func (srv *Server) handleChartName(w http.ResponseWriter, r *http.Request) {
	id, err := chartID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	name := r.FormValue("name")
	srv.apply(w, r, chartPath(id), func(u *models.UserData) error {
		return u.SetChartName(id, name)
	})
}

func (srv *Server) handleChartFill(w http.ResponseWriter, r *http.Request) {
	id, err := chartID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	fill := r.FormValue("fill") == "true"
	srv.apply(w, r, chartPath(id), func(u *models.UserData) error {
		return u.SetFillLines(id, fill)
	})
}

func (srv *Server) handleChartDelete(w http.ResponseWriter, r *http.Request) {
	id, err := chartID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	srv.session.CloseEditing(id)
	srv.apply(w, r, "/", func(u *models.UserData) error {
		return u.DeleteChart(id)
	})
}

func (srv *Server) handleEntryRemove(w http.ResponseWriter, r *http.Request) {
	id, err := chartID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	ref, err := parseRef(r.FormValue("ref"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	srv.session.CloseEditing(id)
	srv.apply(w, r, chartPath(id), func(u *models.UserData) error {
		return u.RemoveChartEntry(id, ref)
	})
}

func (srv *Server) handleEntryUp(w http.ResponseWriter, r *http.Request) {
	id, err := chartID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	index, err := strconv.Atoi(r.FormValue("index"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	srv.session.CloseEditing(id)
	srv.apply(w, r, chartPath(id), func(u *models.UserData) error {
		return u.MoveEntryUp(id, index)
	})
}

func (srv *Server) handleEntryDown(w http.ResponseWriter, r *http.Request) {
	id, err := chartID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	index, err := strconv.Atoi(r.FormValue("index"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	srv.session.CloseEditing(id)
	srv.apply(w, r, chartPath(id), func(u *models.UserData) error {
		return u.MoveEntryDown(id, index)
	})
}

func (srv *Server) handleEntryVisible(w http.ResponseWriter, r *http.Request) {
	id, err := chartID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	ref, err := parseRef(r.FormValue("ref"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	visible := r.FormValue("visible") == "true"
	srv.apply(w, r, chartPath(id), func(u *models.UserData) error {
		return u.SetEntryVisible(id, ref, visible)
	})
}

func (srv *Server) handleEntryMultiplier(w http.ResponseWriter, r *http.Request) {
	id, err := chartID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	ref, err := parseRef(r.FormValue("ref"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	raw := r.FormValue("multiplier")
	srv.apply(w, r, chartPath(id), func(u *models.UserData) error {
		multiplier, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid multiplier %q", raw)
		}
		return u.SetEntryMultiplier(id, ref, multiplier)
	})
}

func (srv *Server) handleEntryInverted(w http.ResponseWriter, r *http.Request) {
	id, err := chartID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	ref, err := parseRef(r.FormValue("ref"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	inverted := r.FormValue("inverted") == "true"
	srv.apply(w, r, chartPath(id), func(u *models.UserData) error {
		return u.SetEntryInverted(id, ref, inverted)
	})
}

func (srv *Server) handleEntryConvert(w http.ResponseWriter, r *http.Request) {
	id, err := chartID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	index, err := strconv.Atoi(r.FormValue("index"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	ref, err := parseRef(r.FormValue("ref"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	srv.apply(w, r, chartPath(id), func(u *models.UserData) error {
		return u.ConvertEntry(id, index, ref)
	})
}

// --- chart editing state ---

func (srv *Server) handleEditAdd(w http.ResponseWriter, r *http.Request) {
	id, err := chartID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	srv.session.StartAdding(id)
	http.Redirect(w, r, chartPath(id), http.StatusSeeOther)
}

func (srv *Server) handleEditCancel(w http.ResponseWriter, r *http.Request) {
	id, err := chartID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	srv.session.CancelAdd(id)
	http.Redirect(w, r, chartPath(id), http.StatusSeeOther)
}

func (srv *Server) handleEditOpen(w http.ResponseWriter, r *http.Request) {
	id, err := chartID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	chartable, err := strconv.Atoi(r.FormValue("chartable"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	srv.session.OpenChartable(id, models.ChartableID(chartable))
	http.Redirect(w, r, chartPath(id), http.StatusSeeOther)
}

// handleEntryAdd confirms the pending addition: an existing chartable, a
// raw trackable, or a freshly created blank chartable.
func (srv *Server) handleEntryAdd(w http.ResponseWriter, r *http.Request) {
	id, err := chartID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	candidate := r.FormValue("candidate")

	if candidate == "new" {
		srv.session.SelectCandidate(id, 0, true)
	} else if ref, err := parseRef(candidate); err == nil && ref.Kind == models.RefTrackable {
		// Ad-hoc trackable entries skip the chartable candidate flow.
		srv.session.CloseEditing(id)
		srv.apply(w, r, chartPath(id), func(u *models.UserData) error {
			return u.AddChartEntry(id, ref)
		})
		return
	} else if err == nil {
		srv.session.SelectCandidate(id, ref.ChartableID, false)
	} else {
		http.NotFound(w, r)
		return
	}

	if err := srv.session.ConfirmAdd(r.Context(), id); err != nil {
		http.Redirect(w, r, chartPath(id)+"?err="+template.URLQueryEscaper(err.Error()), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, chartPath(id), http.StatusSeeOther)
}

// --- small helpers ---

func chartPath(id models.ChartID) string {
	return fmt.Sprintf("/charts/%d", id)
}

// backTo decides where a chartable edit returns: the chart page it was
// edited from when known, the index otherwise. The Referer fallback is
// reduced to its local path so the redirect can never leave this app.
func backTo(r *http.Request) string {
	if back := r.FormValue("back"); back != "" {
		if n, err := strconv.Atoi(back); err == nil {
			return chartPath(models.ChartID(n))
		}
	}
	if ref := r.Referer(); ref != "" {
		if u, err := url.Parse(ref); err == nil &&
			strings.HasPrefix(u.Path, "/") && !strings.HasPrefix(u.Path, "//") {
			return u.Path
		}
	}
	return "/"
}

func formTrackableID(r *http.Request) (models.TrackableID, error) {
	n, err := strconv.Atoi(r.FormValue("trackable"))
	return models.TrackableID(n), err
}

func formInt(r *http.Request, field string, fallback int) int {
	v := r.FormValue(field)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
