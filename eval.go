package bitpacket

import (
	"math/big"

	"github.com/zeebo/mon"
)

// Result holds both metrics computed over a tree.
type Result struct {
	VersionSum uint64
	Value      *big.Int
}

// Evaluate computes the version sum and value of the tree rooted at p.
func Evaluate(p *Packet) (res Result, err error) {
	defer mon.Start().Stop(&err)

	val, err := Value(p)
	if err != nil {
		return Result{}, err
	}
	return Result{
		VersionSum: VersionSum(p),
		Value:      val,
	}, nil
}

// VersionSum returns the version of p plus the version sum of each child.
func VersionSum(p *Packet) uint64 {
	sum := uint64(p.Version)
	for _, ch := range p.Children {
		sum += VersionSum(ch)
	}
	return sum
}

var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
)

// Value evaluates the tree rooted at p. The returned integer is freshly
// allocated and may be modified by the caller.
func Value(p *Packet) (*big.Int, error) {
	if p.IsLiteral() {
		if p.Literal == nil || len(p.Children) > 0 {
			return nil, InvalidOperator.New("literal packet without a single value")
		}
		return new(big.Int).Set(p.Literal), nil
	}

	switch p.Type {
	case TypeSum, TypeProduct, TypeMinimum, TypeMaximum:
		if len(p.Children) == 0 {
			return nil, InvalidOperator.New("%s packet has no operands", p.Type)
		}
	case TypeGreater, TypeLess, TypeEqual:
		if len(p.Children) != 2 {
			return nil, InvalidOperator.New("%s packet has %d operands, want 2", p.Type, len(p.Children))
		}
	default:
		return nil, InvalidOperator.New("unknown type id %d", p.Type)
	}

	vals := make([]*big.Int, len(p.Children))
	for i, ch := range p.Children {
		v, err := Value(ch)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}

	out := vals[0]
	switch p.Type {
	case TypeSum:
		for _, v := range vals[1:] {
			out.Add(out, v)
		}
	case TypeProduct:
		for _, v := range vals[1:] {
			out.Mul(out, v)
		}
	case TypeMinimum:
		for _, v := range vals[1:] {
			if v.Cmp(out) < 0 {
				out = v
			}
		}
	case TypeMaximum:
		for _, v := range vals[1:] {
			if v.Cmp(out) > 0 {
				out = v
			}
		}
	case TypeGreater:
		out = boolValue(vals[0].Cmp(vals[1]) > 0)
	case TypeLess:
		out = boolValue(vals[0].Cmp(vals[1]) < 0)
	case TypeEqual:
		out = boolValue(vals[0].Cmp(vals[1]) == 0)
	}
	return out, nil
}

func boolValue(b bool) *big.Int {
	if b {
		return new(big.Int).Set(one)
	}
	return new(big.Int).Set(zero)
}
