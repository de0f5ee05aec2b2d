package simplify

import (
	"math"
	"strconv"

	"github.com/gnolang/recog/dfa"
	"github.com/gnolang/recog/filter"
	"github.com/gnolang/recog/internal/sexpr"
	"github.com/gnolang/recog/recognizer"
	"github.com/gnolang/recog/tree"
)

const (
	foldDecision    = 1
	foldDescription = "fold : ( ^('+' {zero}? . .) | ^('*' {zero}? . .) | ^('+' . .) | ^('*' . .) | ^('-' . .) );"
)

// Alternatives of the fold decision.
const (
	altAddZero = iota + 1
	altMulZero
	altAdd
	altMul
	altSub
)

// FoldDecision is the encoded DFA of the fold rule. States 3 and 4 are
// reached after "+ DOWN" and "* DOWN"; they test whether the first operand
// is the literal 0 and are resolved by zeroOperand.
var FoldDecision = dfa.Encoded{
	EOT:     dfa.Units("\u000a\uffff"),
	EOF:     dfa.Units("\u000a\uffff"),
	Min:     dfa.Units("\u0001\u0009\u0002\u0002\u0007\u0000"),
	Max:     dfa.Units("\u0001\u000b\u0002\u0002\u0007\u0000"),
	Accept:  dfa.Units("\u0005\u0000\u0001\u0001\u0001\u0002\u0001\u0003\u0001\u0004\u0001\u0005"),
	Special: dfa.Units("\u0003\uffff\u0001\u0000\u0001\u0001\u0005\uffff"),
	Transition: [][]uint16{
		dfa.Units("\u0001\u0001\u0001\u0009\u0001\u0002"),
		dfa.Units("\u0001\u0003"),
		dfa.Units("\u0001\u0004"),
		nil,
		nil,
		nil,
		nil,
		nil,
		nil,
		nil,
	},
}

var foldTables = dfa.MustTables(FoldDecision)

// zeroOperand resolves the special states of the fold decision.
func zeroOperand(_ *dfa.DFA, special int, input recognizer.IntStream) (int, bool) {
	nodes, ok := input.(*tree.NodeStream)
	if !ok {
		return 0, false
	}
	zero := isLiteral(nodes.LT(1), 0)
	switch special {
	case 0:
		if zero {
			return 5, true
		}
		return 7, true
	case 1:
		if zero {
			return 6, true
		}
		return 8, true
	}
	return 0, false
}

var operatorOf = map[int]int{
	altAddZero: sexpr.PLUS,
	altMulZero: sexpr.MUL,
	altAdd:     sexpr.PLUS,
	altMul:     sexpr.MUL,
	altSub:     sexpr.MINUS,
}

// fold simplifies a binary operation whose operands are already simplified.
func (s *Simplifier) fold(ctx *filter.Context) error {
	alt, err := ctx.Predict(s.folds)
	if err != nil {
		return err
	}
	a, b, err := operands(ctx, operatorOf[alt])
	if err != nil {
		return err
	}

	var result tree.Node
	switch alt {
	case altAddZero:
		result = b
	case altMulZero:
		result = a
	case altAdd:
		result = foldAdd(a, b)
	case altMul:
		result = foldMul(a, b)
	case altSub:
		result = foldSub(a, b)
	}
	if result == nil {
		return fail(ctx)
	}
	ctx.Replace(result)
	return nil
}

// distribute rewrites (* INT (vec e...)) to (vec (* INT e)...).
func distribute(ctx *filter.Context) error {
	if _, err := ctx.Match(sexpr.MUL); err != nil {
		return err
	}
	if _, err := ctx.Match(tree.Down); err != nil {
		return err
	}
	k, err := ctx.Match(sexpr.INT)
	if err != nil {
		return err
	}
	if ctx.LA(1) != sexpr.VEC {
		_, err := ctx.Match(sexpr.VEC)
		return err
	}
	v, err := ctx.MatchAny()
	if err != nil {
		return err
	}
	if _, err := ctx.Match(tree.Up); err != nil {
		return err
	}

	vec := tree.NewWith(sexpr.VEC, v.Text())
	for i := 0; i < v.ChildCount(); i++ {
		vec.AddChild(tree.NewWith(sexpr.MUL, "*", literal(k.Text()), v.Child(i)))
	}
	ctx.Replace(vec)
	return nil
}

// operands matches ^(op . .) and returns both operands.
func operands(ctx *filter.Context, op int) (tree.Node, tree.Node, error) {
	if _, err := ctx.Match(op); err != nil {
		return nil, nil, err
	}
	if _, err := ctx.Match(tree.Down); err != nil {
		return nil, nil, err
	}
	a, err := ctx.MatchAny()
	if err != nil {
		return nil, nil, err
	}
	b, err := ctx.MatchAny()
	if err != nil {
		return nil, nil, err
	}
	if _, err := ctx.Match(tree.Up); err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func fail(ctx *filter.Context) error {
	ctx.State().Fail()
	return recognizer.ErrSpeculationFailed
}

func foldAdd(a, b tree.Node) tree.Node {
	if isLiteral(b, 0) {
		return a
	}
	x, okx := intValue(a)
	y, oky := intValue(b)
	if !okx || !oky {
		return nil
	}
	if (y > 0 && x > math.MaxInt64-y) || (y < 0 && x < math.MinInt64-y) {
		return nil
	}
	return intLiteral(x + y)
}

func foldSub(a, b tree.Node) tree.Node {
	if isLiteral(b, 0) {
		return a
	}
	x, okx := intValue(a)
	y, oky := intValue(b)
	if !okx || !oky {
		return nil
	}
	if (y < 0 && x > math.MaxInt64+y) || (y > 0 && x < math.MinInt64+y) {
		return nil
	}
	return intLiteral(x - y)
}

func foldMul(a, b tree.Node) tree.Node {
	switch {
	case isLiteral(a, 1):
		return b
	case isLiteral(b, 1):
		return a
	case isLiteral(b, 0):
		return b
	}
	x, okx := intValue(a)
	y, oky := intValue(b)
	if !okx || !oky {
		return nil
	}
	p := x * y
	if x != 0 && (p/x != y || (x == -1 && y == math.MinInt64)) {
		return nil
	}
	return intLiteral(p)
}

func intValue(n tree.Node) (int64, bool) {
	if n == nil || n.Type() != sexpr.INT {
		return 0, false
	}
	v, err := strconv.ParseInt(n.Text(), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func isLiteral(n tree.Node, v int64) bool {
	x, ok := intValue(n)
	return ok && x == v
}

func literal(text string) *tree.CommonTree {
	return tree.NewWith(sexpr.INT, text)
}

func intLiteral(v int64) *tree.CommonTree {
	return literal(strconv.FormatInt(v, 10))
}
