// Package amount evaluates a human amount expression, such as "2500",
// "1eur" or "liquidity/2", into a whole token count. Expressions follow HCL
// arithmetic syntax with one convenience: a number written directly against
// a variable name means multiplication.
package amount

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// shorthandPattern finds a digit immediately followed by a variable
// character, e.g. "1eur" or "0.5liquidity".
var shorthandPattern = regexp.MustCompile(`([0-9])([a-z_])`)

// Evaluate parses an amount expression and evaluates it against the given
// variable set, returning tokens rounded down to a whole number. Unknown
// variables and malformed expressions are reported as errors carrying the
// parser's diagnostics.
func Evaluate(expression string, variables map[string]float64) (int64, error) {
	normalized := normalize(expression)

	expr, diags := hclsyntax.ParseExpression([]byte(normalized), "amount", hcl.InitialPos)
	if diags.HasErrors() {
		return 0, fmt.Errorf("malformed amount expression %q: %s", expression, diags.Error())
	}

	values := make(map[string]cty.Value, len(variables))
	for name, v := range variables {
		values[name] = cty.NumberFloatVal(v)
	}

	val, diags := expr.Value(&hcl.EvalContext{Variables: values})
	if diags.HasErrors() {
		return 0, fmt.Errorf("cannot evaluate amount expression %q (variables: %s): %s",
			expression, strings.Join(variableNames(variables), ", "), diags.Error())
	}
	if val.Type() != cty.Number {
		return 0, fmt.Errorf("amount expression %q is not numeric", expression)
	}

	f, _ := val.AsBigFloat().Float64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("amount expression %q does not evaluate to a finite number", expression)
	}

	return int64(math.Floor(f)), nil
}

// normalize lowercases the expression and expands the number-against-variable
// shorthand into explicit multiplication.
func normalize(expression string) string {
	lowered := strings.ToLower(strings.TrimSpace(expression))
	return shorthandPattern.ReplaceAllString(lowered, "$1*$2")
}

func variableNames(variables map[string]float64) []string {
	names := make([]string, 0, len(variables))
	for name := range variables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
