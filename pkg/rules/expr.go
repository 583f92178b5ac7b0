package rules

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/dmitrymomot/verity"
)

// Expr compiles a boolean expression evaluated against the value under
// validation, bound to the variable "value":
//
//	rules.Expr("must be an adult age", "value >= 18 && value < 150")
//
// The expression is compiled once at construction; a malformed expression
// panics so misconfiguration surfaces at startup. A runtime evaluation error
// (for instance a type the expression cannot handle) fails the rule.
func Expr(message, expression string) *verity.Validator {
	program := mustCompile(expression)
	return verity.Test(message,
		func(v any) bool {
			return runBool(program, map[string]any{"value": v})
		},
		verity.WithCode(verity.CodeExprFailed),
		verity.WithData(map[string]any{"expression": expression}),
	)
}

// ExprCtx compiles a boolean expression evaluated against the enclosing map,
// with sibling fields available as variables:
//
//	"discount": rules.ExprCtx("requires a coupon code", `coupon != ""`)
//
// Like every contextual validator it is only usable as a field inside a Map.
func ExprCtx(message, expression string) *verity.Validator {
	program := mustCompile(expression)
	return verity.TestCtx(message,
		func(parent map[string]any) bool {
			return runBool(program, parent)
		},
		verity.WithCode(verity.CodeExprFailed),
		verity.WithData(map[string]any{"expression": expression}),
	)
}

func mustCompile(expression string) *vm.Program {
	program, err := expr.Compile(expression, expr.AllowUndefinedVariables(), expr.AsBool())
	if err != nil {
		panic("rules: invalid expression " + expression + ": " + err.Error())
	}
	return program
}

func runBool(program *vm.Program, env map[string]any) bool {
	out, err := expr.Run(program, env)
	if err != nil {
		return false
	}
	ok, isBool := out.(bool)
	return isBool && ok
}
