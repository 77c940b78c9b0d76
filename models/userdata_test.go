package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daytrack/models"
)

func TestAddTrackableDefaults(t *testing.T) {
	t.Parallel()

	u := models.NewUserData()

	first := u.AddTrackable()
	second := u.AddTrackable()

	assert.Equal(t, models.TrackableID(1), first.ID)
	assert.Equal(t, models.TrackableID(2), second.ID)
	assert.Equal(t, models.KindYesNo, first.Responses.Kind)
	assert.NotEqual(t, first.Colour, second.Colour, "palette cycles")
	assert.Equal(t, models.TrackableID(3), u.NextTrackableID)
}

func TestDeleteTrackableGuards(t *testing.T) {
	t.Parallel()

	t.Run("refused while responses exist", func(t *testing.T) {
		u := models.NewUserData()
		tr := u.AddTrackable()
		require.NoError(t, u.SetResponse(tr.ID, models.Day(1), "yes"))

		assert.ErrorIs(t, u.DeleteTrackable(tr.ID), models.ErrHasResponses)
		assert.False(t, u.DeleteTrackableAllowed(tr.ID))

		require.NoError(t, u.ClearResponse(tr.ID, models.Day(1)))
		assert.True(t, u.DeleteTrackableAllowed(tr.ID))
		assert.NoError(t, u.DeleteTrackable(tr.ID))
		assert.Nil(t, u.TrackableByID(tr.ID))
	})

	t.Run("refused while summed by a chartable", func(t *testing.T) {
		u := models.NewUserData()
		tr := u.AddTrackable()
		c := u.AddChartable()
		require.NoError(t, u.AddSumTerm(c.ID, tr.ID))

		assert.ErrorIs(t, u.DeleteTrackable(tr.ID), models.ErrTrackableInUse)

		require.NoError(t, u.RemoveSumTerm(c.ID, tr.ID))
		assert.NoError(t, u.DeleteTrackable(tr.ID))
	})

	t.Run("refused while charted directly", func(t *testing.T) {
		u := models.NewUserData()
		tr := u.AddTrackable()
		lc := u.AddChart()
		require.NoError(t, u.AddChartEntry(lc.ID, models.TrackableRef(tr.ID)))

		assert.ErrorIs(t, u.DeleteTrackable(tr.ID), models.ErrTrackableInUse)

		require.NoError(t, u.RemoveChartEntry(lc.ID, models.TrackableRef(tr.ID)))
		assert.NoError(t, u.DeleteTrackable(tr.ID))
	})
}

func TestDeleteChartableGuard(t *testing.T) {
	t.Parallel()

	u := models.NewUserData()
	c := u.AddChartable()
	lc := u.AddChart()
	require.NoError(t, u.AddChartEntry(lc.ID, models.ChartableRef(c.ID)))

	assert.ErrorIs(t, u.DeleteChartable(c.ID), models.ErrChartableInUse)
	assert.False(t, u.DeleteChartableAllowed(c.ID))

	require.NoError(t, u.RemoveChartEntry(lc.ID, models.ChartableRef(c.ID)))
	assert.True(t, u.DeleteChartableAllowed(c.ID))
	assert.NoError(t, u.DeleteChartable(c.ID))
}

func TestSumTermRules(t *testing.T) {
	t.Parallel()

	u := models.NewUserData()
	tr := u.AddTrackable()
	txt := u.AddTrackable()
	require.NoError(t, u.ConvertTrackable(txt.ID, models.KindText, models.ConvertParams{}))
	c := u.AddChartable()

	require.NoError(t, u.AddSumTerm(c.ID, tr.ID))
	assert.Equal(t, 1.0, c.Sum[0].Multiplier, "new terms start at weight 1")

	err := u.AddSumTerm(c.ID, tr.ID)
	assert.True(t, models.IsValidation(err), "duplicate term refused")

	err = u.AddSumTerm(c.ID, txt.ID)
	assert.True(t, models.IsValidation(err), "text refused")

	assert.ErrorIs(t, u.AddSumTerm(c.ID, models.TrackableID(99)), models.ErrNoSuchTrackable)
	assert.Len(t, c.Sum, 1, "refused edits leave the sum unchanged")
}

func TestReplaceSumTermKeepsWeightAndPosition(t *testing.T) {
	t.Parallel()

	u := models.NewUserData()
	a := u.AddTrackable()
	b := u.AddTrackable()
	other := u.AddTrackable()
	c := u.AddChartable()
	require.NoError(t, u.AddSumTerm(c.ID, a.ID))
	require.NoError(t, u.AddSumTerm(c.ID, b.ID))
	require.NoError(t, u.SetMultiplier(c.ID, a.ID, 2.5))

	require.NoError(t, u.ReplaceSumTerm(c.ID, a.ID, other.ID))
	assert.Equal(t, other.ID, c.Sum[0].TrackableID)
	assert.Equal(t, 2.5, c.Sum[0].Multiplier)

	err := u.ReplaceSumTerm(c.ID, other.ID, b.ID)
	assert.True(t, models.IsValidation(err), "replacement into an existing term refused")
}

func TestSetMultiplierRejectsNonPositive(t *testing.T) {
	t.Parallel()

	u := models.NewUserData()
	tr := u.AddTrackable()
	c := u.AddChartable()
	require.NoError(t, u.AddSumTerm(c.ID, tr.ID))
	require.NoError(t, u.SetMultiplier(c.ID, tr.ID, 3))

	for _, bad := range []float64{0, -1} {
		err := u.SetMultiplier(c.ID, tr.ID, bad)
		assert.True(t, models.IsValidation(err))
		assert.Equal(t, 3.0, c.Sum[0].Multiplier, "rejected weight leaves the stored one")
	}
}

func TestConvertSummedTrackableToTextRefused(t *testing.T) {
	t.Parallel()

	u := models.NewUserData()
	tr := u.AddTrackable()
	c := u.AddChartable()
	require.NoError(t, u.AddSumTerm(c.ID, tr.ID))

	err := u.ConvertTrackable(tr.ID, models.KindText, models.ConvertParams{})
	assert.True(t, models.IsValidation(err))
	assert.Equal(t, models.KindYesNo, tr.Responses.Kind)

	require.NoError(t, u.RemoveSumTerm(c.ID, tr.ID))
	require.NoError(t, u.ConvertTrackable(tr.ID, models.KindText, models.ConvertParams{}))
	assert.Equal(t, models.KindText, tr.Responses.Kind)
}

func TestScaleBoundsEdits(t *testing.T) {
	t.Parallel()

	u := models.NewUserData()
	tr := u.AddTrackable()
	require.NoError(t, u.ConvertTrackable(tr.ID, models.KindScale, models.ConvertParams{ScaleMin: 0, ScaleMax: 10}))
	require.NoError(t, u.SetResponse(tr.ID, models.Day(1), "8"))

	err := u.SetScaleMin(tr.ID, 11)
	assert.True(t, models.IsValidation(err), "min above max refused")

	require.NoError(t, u.SetScaleMax(tr.ID, 5))
	assert.True(t, tr.Responses.Has(models.Day(1)), "shrinking keeps stored answers")
	assert.True(t, tr.Responses.OutOfRange(models.Day(1)))
}

func TestIconEdits(t *testing.T) {
	t.Parallel()

	u := models.NewUserData()
	tr := u.AddTrackable()
	require.NoError(t, u.ConvertTrackable(tr.ID, models.KindIcon, models.ConvertParams{Icons: []string{"sun"}}))
	require.NoError(t, u.AddIcon(tr.ID, "cloud"))
	require.NoError(t, u.SetResponse(tr.ID, models.Day(1), "1"))

	err := u.RemoveLastIcon(tr.ID)
	assert.True(t, models.IsValidation(err), "icon in use cannot be removed")

	require.NoError(t, u.ClearResponse(tr.ID, models.Day(1)))
	require.NoError(t, u.RemoveLastIcon(tr.ID))
	assert.Equal(t, []string{"sun"}, tr.Responses.Icons)
}

func TestChartEntryRules(t *testing.T) {
	t.Parallel()

	u := models.NewUserData()
	a := u.AddTrackable()
	c := u.AddChartable()
	lc := u.AddChart()

	require.NoError(t, u.AddChartEntry(lc.ID, models.ChartableRef(c.ID)))
	require.NoError(t, u.AddChartEntry(lc.ID, models.TrackableRef(a.ID)))

	// New entries go to the top, visible.
	require.Len(t, lc.Entries, 2)
	assert.Equal(t, models.RefTrackable, lc.Entries[0].Ref.Kind)
	assert.True(t, lc.Entries[0].Visible)

	err := u.AddChartEntry(lc.ID, models.ChartableRef(c.ID))
	assert.True(t, models.IsValidation(err), "each data set at most once per chart")

	// The same data set may appear on a different chart.
	other := u.AddChart()
	assert.NoError(t, u.AddChartEntry(other.ID, models.ChartableRef(c.ID)))
}

func TestMoveEntryBoundaries(t *testing.T) {
	t.Parallel()

	u := models.NewUserData()
	a := u.AddTrackable()
	b := u.AddTrackable()
	lc := u.AddChart()
	require.NoError(t, u.AddChartEntry(lc.ID, models.TrackableRef(a.ID)))
	require.NoError(t, u.AddChartEntry(lc.ID, models.TrackableRef(b.ID)))

	order := func() []models.TrackableID {
		ids := make([]models.TrackableID, 0, len(lc.Entries))
		for _, e := range lc.Entries {
			ids = append(ids, e.Ref.TrackableID)
		}
		return ids
	}

	require.Equal(t, []models.TrackableID{b.ID, a.ID}, order())

	// Boundary moves are accepted no-ops.
	assert.NoError(t, u.MoveEntryUp(lc.ID, 0))
	assert.Equal(t, []models.TrackableID{b.ID, a.ID}, order())
	assert.NoError(t, u.MoveEntryDown(lc.ID, 1))
	assert.Equal(t, []models.TrackableID{b.ID, a.ID}, order())

	assert.NoError(t, u.MoveEntryDown(lc.ID, 0))
	assert.Equal(t, []models.TrackableID{a.ID, b.ID}, order())
	assert.NoError(t, u.MoveEntryUp(lc.ID, 1))
	assert.Equal(t, []models.TrackableID{b.ID, a.ID}, order())

	assert.ErrorIs(t, u.MoveEntryUp(lc.ID, 5), models.ErrNoSuchEntry)
}

func TestEntryMultiplierAndInversionOnlyForTrackables(t *testing.T) {
	t.Parallel()

	u := models.NewUserData()
	a := u.AddTrackable()
	c := u.AddChartable()
	lc := u.AddChart()
	require.NoError(t, u.AddChartEntry(lc.ID, models.ChartableRef(c.ID)))
	require.NoError(t, u.AddChartEntry(lc.ID, models.TrackableRef(a.ID)))

	assert.NoError(t, u.SetEntryMultiplier(lc.ID, models.TrackableRef(a.ID), 2))
	assert.NoError(t, u.SetEntryInverted(lc.ID, models.TrackableRef(a.ID), true))

	err := u.SetEntryMultiplier(lc.ID, models.ChartableRef(c.ID), 2)
	assert.True(t, models.IsValidation(err))
	err = u.SetEntryInverted(lc.ID, models.ChartableRef(c.ID), true)
	assert.True(t, models.IsValidation(err))
}

func TestConvertEntryKeepsPositionAndVisibility(t *testing.T) {
	t.Parallel()

	u := models.NewUserData()
	a := u.AddTrackable()
	c := u.AddChartable()
	lc := u.AddChart()
	require.NoError(t, u.AddChartEntry(lc.ID, models.ChartableRef(c.ID)))
	require.NoError(t, u.SetEntryVisible(lc.ID, models.ChartableRef(c.ID), false))

	require.NoError(t, u.ConvertEntry(lc.ID, 0, models.TrackableRef(a.ID)))
	assert.Equal(t, models.RefTrackable, lc.Entries[0].Ref.Kind)
	assert.False(t, lc.Entries[0].Visible, "visibility survives the swap")

	err := u.ConvertEntry(lc.ID, 0, models.DataRef{Kind: "bogus"})
	assert.True(t, models.IsValidation(err))
}
