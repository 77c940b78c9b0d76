package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daytrack/models"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	u, a, _, c := fixture(t)

	icon := u.AddTrackable()
	require.NoError(t, u.SetQuestion(icon.ID, "Weather?"))
	require.NoError(t, u.ConvertTrackable(icon.ID, models.KindIcon, models.ConvertParams{Icons: []string{"sun", "rain"}}))
	require.NoError(t, u.SetResponse(icon.ID, models.Day(3), "0"))

	txt := u.AddTrackable()
	require.NoError(t, u.ConvertTrackable(txt.ID, models.KindText, models.ConvertParams{}))
	require.NoError(t, u.SetResponse(txt.ID, models.Day(3), "long walk"))

	require.NoError(t, u.SetInverted(c.ID, true))
	require.NoError(t, u.SetChartableColour(c.ID, models.ColourPurple))

	lc := u.AddChart()
	require.NoError(t, u.SetChartName(lc.ID, "Overview"))
	require.NoError(t, u.SetFillLines(lc.ID, true))
	require.NoError(t, u.AddChartEntry(lc.ID, models.ChartableRef(c.ID)))
	require.NoError(t, u.AddChartEntry(lc.ID, models.TrackableRef(a.ID)))
	require.NoError(t, u.SetEntryMultiplier(lc.ID, models.TrackableRef(a.ID), 0.5))
	require.NoError(t, u.SetEntryInverted(lc.ID, models.TrackableRef(a.ID), true))
	require.NoError(t, u.SetEntryVisible(lc.ID, models.ChartableRef(c.ID), false))

	data, err := u.Encode()
	require.NoError(t, err)

	got, err := models.DecodeUserData(data)
	require.NoError(t, err)

	assert.Equal(t, u, got)

	// The derived series survive unchanged, inversion included.
	assert.Equal(t,
		map[models.Day]float64{1: 0, 2: 3},
		got.ComputeSeries(got.ChartableByID(c.ID)))
}

func TestDecodeRepairsCounters(t *testing.T) {
	t.Parallel()

	// A hand-edited document: stored ids ahead of the counters, and one
	// store missing entirely.
	doc := []byte(`{
		"trackables": [
			{"id": 7, "question": "Mood?", "colour": "blue",
			 "data": {"type": "scale", "scale": {"4": 3}, "min": 1, "max": 5}}
		],
		"charts": [
			{"id": 3, "name": "", "fillLines": false, "entries": []}
		],
		"nextTrackableId": 2,
		"nextChartableId": 0,
		"nextChartId": 1
	}`)

	u, err := models.DecodeUserData(doc)
	require.NoError(t, err)

	assert.Equal(t, models.TrackableID(8), u.NextTrackableID)
	assert.Equal(t, models.ChartableID(1), u.NextChartableID)
	assert.Equal(t, models.ChartID(4), u.NextChartID)
	assert.NotNil(t, u.Chartables, "missing stores decode to empty slices")

	tr := u.TrackableByID(7)
	require.NotNil(t, tr)
	assert.Equal(t, models.KindScale, tr.Responses.Kind)
	v, ok := tr.Responses.DisplayValue(models.Day(4))
	require.True(t, ok)
	assert.Equal(t, "3", v)

	// Fresh ids never collide with stored ones.
	added := u.AddTrackable()
	assert.Equal(t, models.TrackableID(8), added.ID)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := models.DecodeUserData([]byte(`{"trackables": [{"data": {"type": "nope"}}]}`))
	assert.Error(t, err)

	_, err = models.DecodeUserData([]byte(`not json`))
	assert.Error(t, err)

	// Colour names are a closed enum; an unknown one must fail the load
	// rather than silently falling back to grey at render time.
	_, err = models.DecodeUserData([]byte(
		`{"trackables": [{"id": 1, "colour": "magenta", "data": {"type": "int"}}]}`))
	assert.Error(t, err)

	_, err = models.DecodeUserData([]byte(
		`{"chartables": [{"id": 1, "colour": "magenta", "sum": []}]}`))
	assert.Error(t, err)
}
