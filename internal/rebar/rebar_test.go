package rebar

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gorcc/internal/optional"
)

func TestSection(t *testing.T) {
	unit, ok := UnitSection(12)
	require.True(t, ok)
	assert.Equal(t, 1.13, unit)

	area, ok := Section(12, 4)
	require.True(t, ok)
	assert.Equal(t, 4.52, area)

	area, ok = Section(40, 10)
	require.True(t, ok)
	assert.Equal(t, 125.64, area)

	_, ok = Section(12, 0)
	assert.False(t, ok)
	_, ok = Section(12, 11)
	assert.False(t, ok)
	_, ok = UnitSection(11)
	assert.False(t, ok)

	assert.Equal(t, []int{5, 6, 8, 10, 12, 14, 16, 20, 25, 32, 40}, Diameters())
}

func TestEvaluate_Verdict(t *testing.T) {
	p := DefaultProposal(20)

	tests := []struct {
		name     string
		verified float64 // m²
		want     bool
	}{
		{"covers requirement", 4.00e-4, true},
		{"exactly equal", 4.52e-4, true},
		{"short of requirement", 5.00e-4, false},
		{"short by less than the display precision", 4.524e-4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := Evaluate(p, optional.Of(tt.verified))

			assert.Equal(t, 1.13, ev.UnitSection)
			assert.Equal(t, 4.52, ev.AchievedArea)
			approved, ok := ev.Approved.Get()
			require.True(t, ok)
			assert.Equal(t, tt.want, approved)
			assert.Empty(t, ev.Warnings)
		})
	}
}

func TestEvaluate_Spacing(t *testing.T) {
	// 20 - 2·2.5 - 4·1.2 - 6·0.6 = 6.6 cm over 3 gaps
	ev := Evaluate(DefaultProposal(20), optional.Of(4e-4))
	assert.Equal(t, 6, ev.TransverseStrands)
	assert.Equal(t, 6.6, ev.UsableLength)
	assert.InDelta(t, 2.2, ev.Spacing, 1e-9)

	// 40 - 2·2.5 - 7·1.0 - 6·0.6 = 24.4 cm over 6 gaps, kept unrounded
	p := DefaultProposal(40)
	p.BarCount = 7
	p.BarDiameter = 10
	ev = Evaluate(p, optional.Of(1e-4))
	assert.InDelta(t, (40-5-7.0-3.6)/6, ev.Spacing, 1e-9)
	assert.NotEqual(t, 4.07, ev.Spacing)

	p = DefaultProposal(40)
	p.BarCount = 1
	ev = Evaluate(p, optional.Of(1e-4))
	assert.Zero(t, ev.Spacing)
	assert.Equal(t, 1.13, ev.AchievedArea)
	assert.Empty(t, ev.Warnings)
}

func TestEvaluate_NoVerifiedArea(t *testing.T) {
	ev := Evaluate(DefaultProposal(40), optional.NotApplicable[float64]("no axial load (Ned ≤ 0)"))

	assert.Equal(t, 4.52, ev.AchievedArea)
	assert.False(t, ev.Approved.Defined())
	assert.Equal(t, "no axial load (Ned ≤ 0)", ev.Approved.Reason())
}

func TestEvaluate_Warnings(t *testing.T) {
	t.Run("unknown diameter", func(t *testing.T) {
		p := DefaultProposal(40)
		p.BarDiameter = 11

		ev := Evaluate(p, optional.Of(1e-4))
		assert.Zero(t, ev.UnitSection)
		assert.Zero(t, ev.AchievedArea)
		assert.False(t, ev.Approved.Defined())
		require.Len(t, ev.Warnings, 1)
		assert.True(t, errors.Is(ev.Warnings[0], ErrUnknownDiameter))
	})

	t.Run("bars do not fit", func(t *testing.T) {
		p := DefaultProposal(15)
		p.BarCount = 8
		p.BarDiameter = 20

		ev := Evaluate(p, optional.Of(1e-4))
		assert.Less(t, ev.Spacing, 0.0)
		require.Len(t, ev.Warnings, 1)
		assert.True(t, errors.Is(ev.Warnings[0], ErrBarsDoNotFit))
		// area still satisfies the requirement
		assert.True(t, ev.Approved.MustGet())
	})

	t.Run("no bars", func(t *testing.T) {
		p := DefaultProposal(40)
		p.BarCount = 0

		ev := Evaluate(p, optional.Of(1e-4))
		require.Len(t, ev.Warnings, 1)
		assert.True(t, errors.Is(ev.Warnings[0], ErrNoBars))
		assert.False(t, ev.Approved.MustGet())
	})
}

func TestEvaluation_JSON(t *testing.T) {
	p := DefaultProposal(40)
	p.BarDiameter = 11
	ev := Evaluate(p, optional.Of(1e-4))

	data, err := json.Marshal(ev)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Nil(t, decoded["approved"])
	assert.Equal(t, 1.0, decoded["required_area"])
	assert.Equal(t, []interface{}{"bar diameter not in the section table: 11 mm"}, decoded["warnings"])
}

func TestParseFace(t *testing.T) {
	for in, want := range map[string]Face{
		"width": FaceWidth, "largeur": FaceWidth, "Height": FaceHeight, " hauteur ": FaceHeight,
	} {
		got, err := ParseFace(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFace("depth")
	assert.Error(t, err)

	assert.Equal(t, 20.0, FaceWidth.Dimension(20, 40))
	assert.Equal(t, 40.0, FaceHeight.Dimension(20, 40))
}

func TestSuggest(t *testing.T) {
	got := Suggest(15.31)

	byDia := map[int]Suggestion{}
	for _, s := range got {
		assert.GreaterOrEqual(t, s.Area, 15.31)
		assert.GreaterOrEqual(t, s.Count, MinSuggestedBars)
		assert.GreaterOrEqual(t, s.Diameter, MinSuggestedDia)
		byDia[s.Diameter] = s
	}

	// 10 HA14 = 15.39 cm²; HA10 and HA12 cannot reach 15.31 with 10 bars
	assert.NotContains(t, byDia, 10)
	assert.NotContains(t, byDia, 12)
	assert.Equal(t, 10, byDia[14].Count)
	assert.Equal(t, 8, byDia[16].Count)
	assert.Equal(t, 5, byDia[20].Count)
	assert.Equal(t, 4, byDia[25].Count)
	assert.Equal(t, 4, byDia[40].Count)
}
