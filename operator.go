package tonic

type operator int

const (
	opAdd operator = iota
	opSub
	opMul
	opDiv
)

func (op operator) apply(a, b float64) float64 {
	switch op {
	case opAdd:
		return a + b
	case opSub:
		return a - b
	case opMul:
		return a * b
	case opDiv:
		if b == 0 {
			return 0
		}
		return a / b
	}
	return 0
}

// Constant is a generator of a fixed value.
type Constant struct {
	value float64
	block []float64
}

// Const lifts a number into a generator.
func Const(v float64) *Constant {
	c := &Constant{
		value: v,
		block: make([]float64, MaxBlockSize),
	}
	for i := range c.block {
		c.block[i] = v
	}
	return c
}

// Tick implements Generator. Constant has no state, so it doesn't need
// memoization.
func (c *Constant) Tick(ctx *Context) []float64 {
	return c.block[:ctx.BlockSize]
}

// Inputs implements Node.
func (c *Constant) Inputs() []Node {
	return nil
}

// Value returns the constant value.
func (c *Constant) Value() float64 {
	return c.value
}

// Operator combines two generators pointwise.
type Operator struct {
	BlockMemo
	op   operator
	a, b Generator
}

func newOperator(op operator, a, b Generator) *Operator {
	return &Operator{
		BlockMemo: NewBlockMemo(),
		op:        op,
		a:         a,
		b:         b,
	}
}

// Add returns a + b.
func Add(a, b Generator) *Operator {
	return newOperator(opAdd, a, b)
}

// Sub returns a - b.
func Sub(a, b Generator) *Operator {
	return newOperator(opSub, a, b)
}

// Mul returns a * b.
func Mul(a, b Generator) *Operator {
	return newOperator(opMul, a, b)
}

// Div returns a / b. Samples where b is zero are zero.
func Div(a, b Generator) *Operator {
	return newOperator(opDiv, a, b)
}

// Tick implements Generator.
func (o *Operator) Tick(ctx *Context) []float64 {
	out, ok := o.Begin(ctx)
	if !ok {
		return out
	}
	a := o.a.Tick(ctx)
	b := o.b.Tick(ctx)
	for i := range out {
		out[i] = o.op.apply(a[i], b[i])
	}
	o.Done(ctx)
	return out
}

// Inputs implements Node.
func (o *Operator) Inputs() []Node {
	return nodes(o.a, o.b)
}

// Adder sums any number of generators.
type Adder struct {
	BlockMemo
	inputs []Generator
}

// Sum returns a generator of the sum of all inputs.
func Sum(inputs ...Generator) *Adder {
	return &Adder{
		BlockMemo: NewBlockMemo(),
		inputs:    inputs,
	}
}

// Input appends generator to the sum.
func (a *Adder) Input(g Generator) *Adder {
	a.inputs = append(a.inputs, g)
	return a
}

// Tick implements Generator.
func (a *Adder) Tick(ctx *Context) []float64 {
	out, ok := a.Begin(ctx)
	if !ok {
		return out
	}
	for i := range out {
		out[i] = 0
	}
	for _, g := range a.inputs {
		in := g.Tick(ctx)
		for i := range out {
			out[i] += in[i]
		}
	}
	a.Done(ctx)
	return out
}

// Inputs implements Node.
func (a *Adder) Inputs() []Node {
	ns := make([]Node, 0, len(a.inputs))
	for _, g := range a.inputs {
		ns = append(ns, g)
	}
	return ns
}

// Held renders control value as a flat signal, one value per block.
type Held struct {
	BlockMemo
	control Control
}

// Hold converts control into generator without smoothing.
func Hold(c Control) *Held {
	return &Held{
		BlockMemo: NewBlockMemo(),
		control:   c,
	}
}

// Tick implements Generator.
func (h *Held) Tick(ctx *Context) []float64 {
	out, ok := h.Begin(ctx)
	if !ok {
		return out
	}
	v := h.control.Tick(ctx).Value
	for i := range out {
		out[i] = v
	}
	h.Done(ctx)
	return out
}

// Inputs implements Node.
func (h *Held) Inputs() []Node {
	return nodes(h.control)
}

// ControlConstant is a control of a fixed value. It's triggered on the
// first tick only.
type ControlConstant struct {
	ControlMemo
	value  float64
	ticked bool
}

// ControlValue lifts a number into a control.
func ControlValue(v float64) *ControlConstant {
	return &ControlConstant{value: v}
}

// Tick implements Control.
func (c *ControlConstant) Tick(ctx *Context) ControlOutput {
	out, ok := c.Begin(ctx)
	if !ok {
		return out
	}
	out = ControlOutput{Value: c.value, Triggered: !c.ticked}
	c.ticked = true
	return c.Done(ctx, out)
}

// Value implements Control.
func (c *ControlConstant) Value() float64 {
	return c.value
}

// Inputs implements Node.
func (c *ControlConstant) Inputs() []Node {
	return nil
}

// ControlOperator combines two controls. It's triggered when any of the
// inputs is triggered.
type ControlOperator struct {
	ControlMemo
	op   operator
	a, b Control
}

func newControlOperator(op operator, a, b Control) *ControlOperator {
	return &ControlOperator{op: op, a: a, b: b}
}

// ControlAdd returns a + b.
func ControlAdd(a, b Control) *ControlOperator {
	return newControlOperator(opAdd, a, b)
}

// ControlSub returns a - b.
func ControlSub(a, b Control) *ControlOperator {
	return newControlOperator(opSub, a, b)
}

// ControlMul returns a * b.
func ControlMul(a, b Control) *ControlOperator {
	return newControlOperator(opMul, a, b)
}

// ControlDiv returns a / b, zero if b is zero.
func ControlDiv(a, b Control) *ControlOperator {
	return newControlOperator(opDiv, a, b)
}

// Tick implements Control.
func (o *ControlOperator) Tick(ctx *Context) ControlOutput {
	out, ok := o.Begin(ctx)
	if !ok {
		return out
	}
	a := o.a.Tick(ctx)
	b := o.b.Tick(ctx)
	return o.Done(ctx, ControlOutput{
		Value:     o.op.apply(a.Value, b.Value),
		Triggered: a.Triggered || b.Triggered,
	})
}

// Inputs implements Node.
func (o *ControlOperator) Inputs() []Node {
	return nodes(o.a, o.b)
}
