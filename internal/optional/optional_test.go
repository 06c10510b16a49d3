package optional

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestValue_Defined(t *testing.T) {
	v := Of(0.25)

	got, ok := v.Get()
	require.True(t, ok)
	assert.Equal(t, 0.25, got)
	assert.True(t, v.Defined())
	assert.Empty(t, v.Reason())
	assert.Equal(t, "0.250", v.Text("%.3f"))
}

func TestValue_NotApplicable(t *testing.T) {
	v := NotApplicable[float64]("λ ≥ 120")

	got, ok := v.Get()
	assert.False(t, ok)
	assert.Zero(t, got)
	assert.Equal(t, "λ ≥ 120", v.Reason())
	assert.Equal(t, NA, v.Text("%.3f"))
	assert.Panics(t, func() { v.MustGet() })
}

func TestValue_ZeroIsNotApplicable(t *testing.T) {
	var v Value[float64]
	assert.False(t, v.Defined())
}

func TestMap(t *testing.T) {
	toCm2 := func(m2 float64) float64 { return m2 * 1e4 }

	assert.InDelta(t, 15.31, Map(Of(0.001531), toCm2).MustGet(), 1e-9)

	na := Map(NotApplicable[float64]("Ned must be positive"), toCm2)
	assert.False(t, na.Defined())
	assert.Equal(t, "Ned must be positive", na.Reason())
}

func TestValue_JSON(t *testing.T) {
	type result struct {
		Alpha Value[float64] `json:"alpha"`
		Ks    Value[float64] `json:"ks"`
	}

	data, err := json.Marshal(result{Alpha: Of(0.6398), Ks: NotApplicable[float64]("fyk > 500")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"alpha":0.6398,"ks":null}`, string(data))

	var back result
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, 0.6398, back.Alpha.MustGet())
	assert.False(t, back.Ks.Defined())
}

func TestValue_YAML(t *testing.T) {
	data, err := yaml.Marshal(map[string]Value[bool]{
		"approved": NotApplicable[bool]("no verified area"),
		"fits":     Of(true),
	})
	require.NoError(t, err)
	assert.Equal(t, "approved: null\nfits: true\n", string(data))
}
