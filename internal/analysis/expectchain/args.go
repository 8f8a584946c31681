// Filename: expectchain/args.go
package expectchain

import (
	"strconv"

	sitter "github.com/smacker/go-tree-sitter"
)

// Options carries the configured argument-count bounds for the initiating
// call. Bounds may arrive swapped from configuration; they are normalized at
// check time rather than rejected.
type Options struct {
	MinArgs int
	MaxArgs int
}

// DefaultOptions returns the documented defaults: at least one argument,
// at most two.
func DefaultOptions() Options {
	return Options{MinArgs: 1, MaxArgs: 2}
}

// normalized returns the effective bounds with min <= max.
func (o Options) normalized() (int, int) {
	if o.MinArgs > o.MaxArgs {
		return o.MaxArgs, o.MinArgs
	}
	return o.MinArgs, o.MaxArgs
}

// checkArgumentCount validates the number of arguments passed to the
// initiating call against the effective bounds. Both conditions are checked
// unconditionally; a single call can only violate one of them when min <=
// max, but the evaluation order must not short-circuit. The tree is never
// mutated and diagnostics target the initiating call.
func checkArgumentCount(call *sitter.Node, opts Options) []Diagnostic {
	var diags []Diagnostic

	count := len(extractArguments(call.ChildByFieldName("arguments")))
	min, max := opts.normalized()

	if count < min {
		diags = append(diags, Diagnostic{
			Kind: NotEnoughArgs,
			Node: call,
			Data: amountData(min),
		})
	}
	if count > max {
		diags = append(diags, Diagnostic{
			Kind: TooManyArgs,
			Node: call,
			Data: amountData(max),
		})
	}

	return diags
}

// amountData builds the interpolation payload for the argument-count
// templates: the violated bound as text plus its pluralization suffix.
func amountData(amount int) map[string]string {
	suffix := "s"
	if amount == 1 {
		suffix = ""
	}
	return map[string]string{
		"amount": strconv.Itoa(amount),
		"s":      suffix,
	}
}
