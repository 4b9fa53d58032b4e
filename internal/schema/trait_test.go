package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestNew(t *testing.T) {
	t.Run("minimal declaration", func(t *testing.T) {
		tr, err := New("who", String)
		require.NoError(t, err)
		assert.Equal(t, "who", tr.Name())
		assert.Equal(t, String, tr.Kind())
		assert.True(t, tr.Required())
		_, ok := tr.Default()
		assert.False(t, ok)
	})

	t.Run("default is coerced and validated at declaration time", func(t *testing.T) {
		tr, err := New("times", Int,
			WithDefault("4"),
			WithValidators(Positive()),
		)
		require.NoError(t, err)
		assert.False(t, tr.Required())

		def, ok := tr.Default()
		require.True(t, ok)
		assert.Equal(t, cty.NumberIntVal(4), def)
	})

	t.Run("invalid default fails declaration", func(t *testing.T) {
		_, err := New("times", Int,
			WithDefault(-1),
			WithValidators(Positive()),
		)
		require.Error(t, err)
		var declErr *DeclarationError
		require.ErrorAs(t, err, &declErr)
		assert.Equal(t, "times", declErr.Trait)
		assert.Contains(t, declErr.Reason, "isPositive: received -1")
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := New("  ", String)
		var declErr *DeclarationError
		require.ErrorAs(t, err, &declErr)
	})

	t.Run("dotted name rejected", func(t *testing.T) {
		_, err := New("a.b", String)
		var declErr *DeclarationError
		require.ErrorAs(t, err, &declErr)
	})
}

func TestTraitCoerce(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		kind Kind
		raw  any
		want cty.Value
	}{
		{"string stays string", String, "world", cty.StringVal("world")},
		{"string to int", Int, "3", cty.NumberIntVal(3)},
		{"int to int", Int, 3, cty.NumberIntVal(3)},
		{"string to float", Float, "2.5", cty.NumberFloatVal(2.5)},
		{"string to bool", Bool, "true", cty.True},
		{"bool stays bool", Bool, false, cty.False},
		{"number to string", String, 7, cty.StringVal("7")},
		{"comma list", List, "a, b,c", cty.ListVal([]cty.Value{
			cty.StringVal("a"), cty.StringVal("b"), cty.StringVal("c"),
		})},
		{"slice to list", List, []string{"x", "y"}, cty.ListVal([]cty.Value{
			cty.StringVal("x"), cty.StringVal("y"),
		})},
		{"loose slice to list", List, []any{"x", 2}, cty.ListVal([]cty.Value{
			cty.StringVal("x"), cty.StringVal("2"),
		})},
		{"loose map to mapping", Mapping, map[string]any{"a": 1}, cty.MapVal(map[string]cty.Value{
			"a": cty.StringVal("1"),
		})},
		{"cty value passes through", Int, cty.NumberIntVal(9), cty.NumberIntVal(9)},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tr := MustNew("x", tc.kind)
			got, err := tr.Coerce(tc.raw)
			require.NoError(t, err)
			assert.True(t, tc.want.RawEquals(got), "want %#v, got %#v", tc.want, got)
		})
	}
}

func TestTraitCoerceFailures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		kind Kind
		raw  any
	}{
		{"word to int", Int, "banana"},
		{"fraction to int", Int, "2.5"},
		{"word to bool", Bool, "maybe"},
		{"string to mapping", Mapping, "a=b"},
		{"nil value", String, nil},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tr := MustNew("x", tc.kind)
			_, err := tr.Coerce(tc.raw)
			var coErr *TypeCoercionError
			require.ErrorAs(t, err, &coErr)
			assert.Equal(t, "x", coErr.Trait)
		})
	}
}

func TestTraitApply(t *testing.T) {
	t.Run("validators run in order and short-circuit", func(t *testing.T) {
		var order []string
		first := Validator{Name: "first", Check: func(v cty.Value) (cty.Value, error) {
			order = append(order, "first")
			return cty.NilVal, assert.AnError
		}}
		second := Validator{Name: "second", Check: func(v cty.Value) (cty.Value, error) {
			order = append(order, "second")
			return v, nil
		}}

		tr := MustNew("x", Int, WithValidators(first, second))
		_, err := tr.Apply(1)

		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Equal(t, "first", valErr.Validator)
		assert.Equal(t, []string{"first"}, order)
	})

	t.Run("failure names validator and reason", func(t *testing.T) {
		tr := MustNew("times", Int, WithValidators(Positive()))
		_, err := tr.Apply("-1")

		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Equal(t, "times", valErr.Trait)
		assert.Equal(t, "isPositive", valErr.Validator)
		assert.Equal(t, "received -1", valErr.Reason)
		assert.EqualError(t, err, `trait "times": isPositive: received -1`)
	})

	t.Run("validators may normalize", func(t *testing.T) {
		clamp := Validator{Name: "clamp", Check: func(v cty.Value) (cty.Value, error) {
			if v.AsBigFloat().Sign() < 0 {
				return cty.Zero, nil
			}
			return v, nil
		}}
		tr := MustNew("x", Int, WithValidators(clamp))
		got, err := tr.Apply(-5)
		require.NoError(t, err)
		assert.True(t, cty.Zero.RawEquals(got))
	})
}

func TestValidators(t *testing.T) {
	t.Parallel()

	t.Run("OneOf", func(t *testing.T) {
		tr := MustNew("mode", String, WithValidators(OneOf("fast", "slow")))
		_, err := tr.Apply("fast")
		require.NoError(t, err)
		_, err = tr.Apply("medium")
		require.Error(t, err)
	})

	t.Run("InRange", func(t *testing.T) {
		tr := MustNew("ratio", Float, WithValidators(InRange(0, 1)))
		_, err := tr.Apply("0.5")
		require.NoError(t, err)
		_, err = tr.Apply("1.5")
		require.Error(t, err)
	})

	t.Run("NonEmpty", func(t *testing.T) {
		tr := MustNew("name", String, WithValidators(NonEmpty()))
		_, err := tr.Apply("")
		require.Error(t, err)
	})

	t.Run("NonNegative", func(t *testing.T) {
		tr := MustNew("count", Int, WithValidators(NonNegative()))
		_, err := tr.Apply(0)
		require.NoError(t, err)
		_, err = tr.Apply(-1)
		require.Error(t, err)
	})
}
