package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daytrack/models"
)

// fixture builds the document used throughout: a scale question A, an int
// question B, and a chartable C = 1*A + 2*B.
func fixture(t *testing.T) (*models.UserData, *models.Trackable, *models.Trackable, *models.Chartable) {
	t.Helper()

	u := models.NewUserData()

	a := u.AddTrackable()
	require.NoError(t, u.SetQuestion(a.ID, "How was your sleep?"))
	require.NoError(t, u.ConvertTrackable(a.ID, models.KindScale, models.ConvertParams{ScaleMin: 0, ScaleMax: 10}))
	require.NoError(t, u.SetResponse(a.ID, models.Day(1), "2"))
	require.NoError(t, u.SetResponse(a.ID, models.Day(2), "5"))

	b := u.AddTrackable()
	require.NoError(t, u.SetQuestion(b.ID, "Cups of coffee?"))
	require.NoError(t, u.ConvertTrackable(b.ID, models.KindInt, models.ConvertParams{}))
	require.NoError(t, u.SetResponse(b.ID, models.Day(1), "3"))

	c := u.AddChartable()
	require.NoError(t, u.SetChartableName(c.ID, "Rest"))
	require.NoError(t, u.AddSumTerm(c.ID, a.ID))
	require.NoError(t, u.AddSumTerm(c.ID, b.ID))
	require.NoError(t, u.SetMultiplier(c.ID, b.ID, 2))

	return u, a, b, c
}

func TestComputeSeriesSparseUnion(t *testing.T) {
	t.Parallel()

	u, _, _, c := fixture(t)

	// Day 1 has both terms, day 2 only the scale. No zero-fill.
	got := u.ComputeSeries(c)
	assert.Equal(t, map[models.Day]float64{1: 8, 2: 5}, got)
}

func TestComputeSeriesInverted(t *testing.T) {
	t.Parallel()

	u, _, _, c := fixture(t)
	require.NoError(t, u.SetInverted(c.ID, true))

	// Reflection about the summed maximum 8: 8->0, 5->3.
	got := u.ComputeSeries(c)
	assert.Equal(t, map[models.Day]float64{1: 0, 2: 3}, got)
}

func TestInversionIsInvolution(t *testing.T) {
	t.Parallel()

	u, a, _, _ := fixture(t)

	chart := u.AddChart()
	ref := models.TrackableRef(a.ID)
	require.NoError(t, u.AddChartEntry(chart.ID, ref))

	plain := u.RefSeries(ref)

	ref.Inverted = true
	inverted := u.RefSeries(ref)
	require.NotEqual(t, plain, inverted)

	// Inverting the inverted series lands back on the original, because the
	// reflection preserves the maximum.
	max := 0.0
	for _, v := range inverted {
		if v > max {
			max = v
		}
	}
	restored := map[models.Day]float64{}
	for day, v := range inverted {
		restored[day] = max - v
	}
	assert.Equal(t, plain, restored)
}

func TestInvertEmptySeries(t *testing.T) {
	t.Parallel()

	u := models.NewUserData()
	c := u.AddChartable()
	require.NoError(t, u.SetInverted(c.ID, true))

	assert.Empty(t, u.ComputeSeries(c))
}

func TestRefSeriesTrackableMultiplier(t *testing.T) {
	t.Parallel()

	u, a, _, _ := fixture(t)

	ref := models.TrackableRef(a.ID)
	ref.Multiplier = 0.5

	got := u.RefSeries(ref)
	assert.Equal(t, map[models.Day]float64{1: 1, 2: 2.5}, got)
}

func TestResolveColour(t *testing.T) {
	t.Parallel()

	u := models.NewUserData()

	a := u.AddTrackable()
	require.NoError(t, u.SetTrackableColour(a.ID, models.ColourRed))
	b := u.AddTrackable()
	require.NoError(t, u.SetTrackableColour(b.ID, models.ColourBlue))

	c := u.AddChartable()

	t.Run("empty sum falls back to the default", func(t *testing.T) {
		assert.Equal(t, models.DefaultColour, u.ResolveColour(c))
	})

	t.Run("single term follows the trackable", func(t *testing.T) {
		require.NoError(t, u.AddSumTerm(c.ID, a.ID))
		assert.Equal(t, models.ColourRed, u.ResolveColour(c))

		err := u.SetChartableColour(c.ID, models.ColourGreen)
		assert.True(t, models.IsValidation(err), "explicit colour needs two or more terms")
		assert.Equal(t, models.ColourRed, u.ResolveColour(c))
	})

	t.Run("two terms without an override follow the first term", func(t *testing.T) {
		require.NoError(t, u.AddSumTerm(c.ID, b.ID))
		assert.Equal(t, models.ColourRed, u.ResolveColour(c))
	})

	t.Run("explicit colour wins with two or more terms", func(t *testing.T) {
		require.NoError(t, u.SetChartableColour(c.ID, models.ColourGreen))
		assert.Equal(t, models.ColourGreen, u.ResolveColour(c))
	})

	t.Run("clearing reverts to the derived colour", func(t *testing.T) {
		require.NoError(t, u.ClearChartableColour(c.ID))
		assert.Equal(t, models.ColourRed, u.ResolveColour(c))
	})
}

func TestEffectiveHexDimming(t *testing.T) {
	t.Parallel()

	u, a, _, c := fixture(t)
	require.NoError(t, u.SetTrackableColour(a.ID, models.ColourRed))

	chart := u.AddChart()
	require.NoError(t, u.AddChartEntry(chart.ID, models.ChartableRef(c.ID)))
	require.NoError(t, u.AddChartEntry(chart.ID, models.TrackableRef(a.ID)))

	aEntry := chart.Entries[0]
	cEntry := chart.Entries[1]

	assert.Equal(t, models.ColourRed.Hex(), u.EffectiveHex(aEntry, nil))

	// While one entry has focus every other entry dims; the stored colours
	// are untouched.
	focus := aEntry.Ref
	assert.Equal(t, models.ColourRed.Hex(), u.EffectiveHex(aEntry, &focus))
	assert.NotEqual(t, u.RefColour(cEntry.Ref).Hex(), u.EffectiveHex(cEntry, &focus))

	require.NoError(t, u.SetEntryVisible(chart.ID, aEntry.Ref, false))
	assert.NotEqual(t, models.ColourRed.Hex(), u.EffectiveHex(chart.Entries[0], nil))
	assert.Equal(t, models.ColourRed, u.TrackableByID(a.ID).Colour, "dimming never writes back")
}

func TestRefLabelPlaceholders(t *testing.T) {
	t.Parallel()

	u := models.NewUserData()
	tr := u.AddTrackable()
	ch := u.AddChartable()

	assert.Equal(t, "[no question]", u.RefLabel(models.TrackableRef(tr.ID)))
	assert.Equal(t, "[no name]", u.RefLabel(models.ChartableRef(ch.ID)))

	require.NoError(t, u.SetQuestion(tr.ID, "Did you run?"))
	assert.Equal(t, "Did you run?", u.RefLabel(models.TrackableRef(tr.ID)))
	assert.Equal(t, "Did you run?", tr.Question, "placeholder substitution never touches the stored value")
}
