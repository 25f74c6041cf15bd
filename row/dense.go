package row

import "math/big"

// Dense stores every entry.
type Dense struct {
	v []big.Rat
}

func NewDense(n int) *Dense {
	return &Dense{v: make([]big.Rat, n)}
}

func (d *Dense) Kind() Kind { return DenseKind }

func (d *Dense) Size() int { return len(d.v) }

func (d *Dense) Get(i int) *big.Rat { return &d.v[i] }

func (d *Dense) Set(i int, v *big.Rat) { d.v[i].Set(v) }

func (d *Dense) Resize(n int) {
	if n <= len(d.v) {
		for i := n; i < len(d.v); i++ {
			d.v[i].SetInt64(0)
		}
		d.v = d.v[:n]
		return
	}
	d.v = append(d.v, make([]big.Rat, n-len(d.v))...)
}

func (d *Dense) Clone() Row {
	c := NewDense(len(d.v))
	for i := range d.v {
		c.v[i].Set(&d.v[i])
	}
	return c
}

func (d *Dense) Scale(c *big.Rat) {
	for i := range d.v {
		if d.v[i].Sign() != 0 {
			d.v[i].Mul(&d.v[i], c)
		}
	}
}

func (d *Dense) LinearCombine(other Row, c1, c2 *big.Rat, start, end int) {
	var tmp big.Rat
	scale := !isOne(c1)
	for i := start; i < end; i++ {
		if scale {
			d.v[i].Mul(&d.v[i], c1)
		}
		o := other.Get(i)
		if o.Sign() == 0 {
			continue
		}
		tmp.Mul(o, c2)
		d.v[i].Add(&d.v[i], &tmp)
	}
}

func (d *Dense) ForEachNonZero(fn func(i int, v *big.Rat)) {
	for i := range d.v {
		if d.v[i].Sign() != 0 {
			fn(i, &d.v[i])
		}
	}
}
