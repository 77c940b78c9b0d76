package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daytrack/models"
)

func TestAvailableChartablesSorted(t *testing.T) {
	t.Parallel()

	u := models.NewUserData()

	zebra := u.AddChartable()
	require.NoError(t, u.SetChartableName(zebra.ID, "zebra"))
	apple := u.AddChartable()
	require.NoError(t, u.SetChartableName(apple.ID, "Apple"))
	unnamed := u.AddChartable()

	lc := u.AddChart()

	names := func() []string {
		var out []string
		for _, c := range u.AvailableChartables(lc) {
			out = append(out, c.DisplayName())
		}
		return out
	}

	// Case-insensitive on display names; '[' sorts before every lowercase
	// letter, so the placeholder comes first.
	assert.Equal(t, []string{"[no name]", "Apple", "zebra"}, names())

	require.NoError(t, u.AddChartEntry(lc.ID, models.ChartableRef(unnamed.ID)))
	assert.Equal(t, []string{"Apple", "zebra"}, names(), "charted chartables drop out")
}

func TestAvailableTrackablesExcludesTextAndCharted(t *testing.T) {
	t.Parallel()

	u := models.NewUserData()

	a := u.AddTrackable()
	require.NoError(t, u.SetQuestion(a.ID, "bravo"))
	b := u.AddTrackable()
	require.NoError(t, u.SetQuestion(b.ID, "Alpha"))
	txt := u.AddTrackable()
	require.NoError(t, u.SetQuestion(txt.ID, "journal"))
	require.NoError(t, u.ConvertTrackable(txt.ID, models.KindText, models.ConvertParams{}))

	lc := u.AddChart()

	got := u.AvailableTrackables(lc)
	require.Len(t, got, 2, "text questions are never chartable")
	assert.Equal(t, "Alpha", got[0].DisplayQuestion())
	assert.Equal(t, "bravo", got[1].DisplayQuestion())

	require.NoError(t, u.AddChartEntry(lc.ID, models.TrackableRef(b.ID)))
	got = u.AvailableTrackables(lc)
	require.Len(t, got, 1)
	assert.Equal(t, "bravo", got[0].DisplayQuestion())
}

func TestSummableTrackablesExcludesAlreadySummed(t *testing.T) {
	t.Parallel()

	u := models.NewUserData()
	a := u.AddTrackable()
	b := u.AddTrackable()
	c := u.AddChartable()
	require.NoError(t, u.AddSumTerm(c.ID, a.ID))

	got := u.SummableTrackables(c)
	require.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].ID)
}
