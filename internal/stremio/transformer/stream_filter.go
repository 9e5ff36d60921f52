package stremio_transformer

import (
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/vm"
)

type Resolution string

func (r Resolution) Order() int64 {
	return getResolutionRank(string(r))
}

type Quality string

func (q Quality) Order() int64 {
	return getQualityRank(string(q))
}

type Size string

func (s Size) Order() int64 {
	return getSizeRank(string(s))
}

var orderableConverter = map[string]string{
	"Resolution": "__Resolution__",
	"Quality":    "__Quality__",
	"Size":       "__Size__",
}

func toOrderable(node ast.Node, converter string) ast.Node {
	return &ast.CallNode{
		Callee: &ast.MemberNode{
			Node: &ast.CallNode{
				Callee:    &ast.IdentifierNode{Value: converter},
				Arguments: []ast.Node{node},
			},
			Property: &ast.StringNode{Value: "Order"},
			Method:   true,
		},
		Arguments: []ast.Node{},
	}
}

var comparisonOperators = map[string]struct{}{
	"<": {}, "<=": {}, ">": {}, ">=": {},
}

// ValuePatcher rewrites ordered comparisons on Resolution, Quality and Size
// to compare ranks instead of strings.
type ValuePatcher struct{}

func (ValuePatcher) Visit(node *ast.Node) {
	bin, ok := (*node).(*ast.BinaryNode)
	if !ok {
		return
	}
	if _, ok := comparisonOperators[bin.Operator]; !ok {
		return
	}
	for _, side := range []ast.Node{bin.Left, bin.Right} {
		ident, ok := side.(*ast.IdentifierNode)
		if !ok {
			continue
		}
		if converter, exists := orderableConverter[ident.Value]; exists {
			ast.Patch(&bin.Left, toOrderable(bin.Left, converter))
			ast.Patch(&bin.Right, toOrderable(bin.Right, converter))
			return
		}
	}
}

type StreamFilterBlob string

type StreamFilter struct {
	Blob    StreamFilterBlob
	program *vm.Program
}

func (sfb StreamFilterBlob) Parse() (*StreamFilter, error) {
	sf := &StreamFilter{Blob: sfb}

	if strings.TrimSpace(string(sfb)) == "" {
		return sf, nil
	}

	program, err := expr.Compile(
		string(sfb),
		expr.Env(&StreamResult{}),
		expr.AsBool(),
		expr.AllowUndefinedVariables(),
		expr.Function("__Resolution__", func(val ...any) (any, error) {
			return Resolution(val[0].(string)), nil
		}, new(func(string) Resolution)),
		expr.Function("__Quality__", func(val ...any) (any, error) {
			return Quality(val[0].(string)), nil
		}, new(func(string) Quality)),
		expr.Function("__Size__", func(val ...any) (any, error) {
			return Size(val[0].(string)), nil
		}, new(func(string) Size)),
		expr.Patch(ValuePatcher{}),
	)
	if err != nil {
		return sf, err
	}

	sf.program = program
	return sf, nil
}

// Match lets everything through when there is no filter or it fails to run.
func (sf *StreamFilter) Match(r *StreamResult) bool {
	if sf == nil || sf.program == nil || r == nil {
		return true
	}

	output, err := expr.Run(sf.program, r)
	if err != nil {
		return true
	}

	return output.(bool)
}
