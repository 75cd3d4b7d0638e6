// Package arith evaluates integer arithmetic expressions. It supports:
//   - Non-negative integer literals of any size.
//   - The binary operators +, -, * and /, with * and / binding tighter.
//   - Left associativity, so 10 - 2 - 3 is (10 - 2) - 3.
//   - Parentheses for grouping.
//
// Work happens in three stages that can be invoked on their own: Tokenize
// splits text into tokens, Parse builds a tree, and Evaluate computes an
// exact Number. Division is exact, so 7 / 2 evaluates to 3.5 rather than 3.
// There is no unary minus; -5 is a parse error.
//
// Failures are returned as *LexicalError, *ParseError, *DivisionByZeroError
// or *DepthError; Kind classifies them. DepthError reports parenthesis
// nesting beyond Config.MaxDepth while parsing, or right-operand nesting
// beyond Config.MaxEvalDepth while evaluating. Flat chains of any length
// are within both limits. The package never prints.
package arith
