package bitpacket

import (
	"math/big"
	"testing"

	"github.com/zeebo/assert"
)

func TestEval(t *testing.T) {
	t.Run("Examples", func(t *testing.T) {
		for _, ex := range examples {
			p, err := Decode(ex.hex)
			assert.NoError(t, err)

			res, err := Evaluate(p)
			assert.NoError(t, err)
			assert.Equal(t, res.VersionSum, ex.versionSum)
			assert.Equal(t, res.Value.Int64(), ex.value)
		}
	})

	t.Run("Version Sum", func(t *testing.T) {
		p := NewOperator(1, TypeSum, LengthBits,
			lit(2, 10),
			NewOperator(3, TypeMaximum, LengthCount, lit(4, 1), lit(5, 2)),
			lit(6, 0),
		)
		assert.Equal(t, VersionSum(p), uint64(1+2+3+4+5+6))

		p.Walk(func(p *Packet) bool {
			sum := uint64(p.Version)
			for _, ch := range p.Children {
				sum += VersionSum(ch)
			}
			assert.Equal(t, VersionSum(p), sum)
			return true
		})
	})

	t.Run("Operators", func(t *testing.T) {
		cases := []struct {
			typ  Type
			args []int64
			want int64
		}{
			{TypeSum, []int64{5}, 5},
			{TypeSum, []int64{1, 2, 3}, 6},
			{TypeProduct, []int64{7}, 7},
			{TypeProduct, []int64{2, 3, 4}, 24},
			{TypeProduct, []int64{2, 0, 4}, 0},
			{TypeMinimum, []int64{9, 3, 7}, 3},
			{TypeMaximum, []int64{9, 3, 7}, 9},
			{TypeGreater, []int64{5, 3}, 1},
			{TypeGreater, []int64{3, 5}, 0},
			{TypeGreater, []int64{5, 5}, 0},
			{TypeLess, []int64{3, 5}, 1},
			{TypeLess, []int64{5, 3}, 0},
			{TypeEqual, []int64{4, 4}, 1},
			{TypeEqual, []int64{4, 5}, 0},
		}

		for _, c := range cases {
			var children []*Packet
			for _, a := range c.args {
				children = append(children, lit(0, a))
			}

			got, err := Value(NewOperator(0, c.typ, LengthCount, children...))
			assert.NoError(t, err)
			assert.Equal(t, got.Int64(), c.want)
		}
	})

	t.Run("Big Values", func(t *testing.T) {
		top := new(big.Int).SetUint64(^uint64(0))
		p := NewOperator(0, TypeProduct, LengthBits,
			NewLiteral(0, top), NewLiteral(0, top), NewLiteral(0, top))

		got, err := Value(p)
		assert.NoError(t, err)

		want := new(big.Int).Mul(top, top)
		want.Mul(want, top)
		assert.Equal(t, got.Cmp(want), 0)

		// the tree is untouched by evaluation
		assert.Equal(t, p.Children[0].Literal.Cmp(top), 0)
	})

	t.Run("Value Does Not Alias", func(t *testing.T) {
		p := NewOperator(0, TypeMinimum, LengthCount, lit(0, 3), lit(0, 8))
		got, err := Value(p)
		assert.NoError(t, err)

		got.SetInt64(100)
		assert.Equal(t, p.Children[0].Literal.Int64(), int64(3))
	})

	t.Run("Comparison Arity", func(t *testing.T) {
		for _, typ := range []Type{TypeGreater, TypeLess, TypeEqual} {
			_, err := Value(NewOperator(0, typ, LengthCount, lit(0, 1)))
			assert.That(t, InvalidOperator.Has(err))

			_, err = Value(NewOperator(0, typ, LengthCount, lit(0, 1), lit(0, 1), lit(0, 1)))
			assert.That(t, InvalidOperator.Has(err))
		}
	})

	t.Run("No Operands", func(t *testing.T) {
		_, err := Value(NewOperator(0, TypeSum, LengthCount))
		assert.That(t, InvalidOperator.Has(err))
	})

	t.Run("Unknown Type", func(t *testing.T) {
		_, err := Value(NewOperator(0, Type(9), LengthCount, lit(0, 1)))
		assert.That(t, InvalidOperator.Has(err))
	})

	t.Run("Nested Failure", func(t *testing.T) {
		bad := NewOperator(0, TypeEqual, LengthCount, lit(0, 1))
		_, err := Evaluate(NewOperator(0, TypeSum, LengthBits, lit(0, 1), bad))
		assert.That(t, InvalidOperator.Has(err))
	})

	t.Run("Parsed Bad Arity", func(t *testing.T) {
		hex := encodeHex(NewOperator(0, TypeLess, LengthBits, lit(0, 1), lit(0, 2), lit(0, 3)))
		p, err := Decode(hex)
		assert.NoError(t, err)

		_, err = Evaluate(p)
		assert.That(t, InvalidOperator.Has(err))
	})

	t.Run("Round Trip", func(t *testing.T) {
		for i := 0; i < 200; i++ {
			exp := randomTree(3)

			got, err := Decode(encodeHex(exp))
			assert.NoError(t, err)

			want, err := Evaluate(exp)
			assert.NoError(t, err)
			res, err := Evaluate(got)
			assert.NoError(t, err)

			assert.Equal(t, res.VersionSum, want.VersionSum)
			assert.Equal(t, res.Value.Cmp(want.Value), 0)
		}
	})
}

func BenchmarkEval(b *testing.B) {
	p, err := Decode("9C0141080250320F1802104A08")
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := Evaluate(p); err != nil {
			b.Fatal(err)
		}
	}
}
