package arith

import "fmt"

const (
	defaultMaxDepth     = 256
	defaultMaxEvalDepth = 100000
)

// Config bounds the resources one evaluation may use.
type Config struct {
	// MaxDepth limits parenthesis nesting during parsing.
	MaxDepth int
	// MaxEvalDepth limits how deeply right operands may nest during
	// evaluation. Left-leaning chains such as 1 + 2 + 3 count as one level
	// whatever their length.
	MaxEvalDepth int
}

// Engine tokenizes, parses and evaluates expressions. It holds no mutable
// state, so one Engine may serve concurrent callers.
type Engine struct {
	config Config
}

// NewEngine constructs an Engine, filling unset limits with defaults.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.MaxDepth < 0 {
		return nil, fmt.Errorf("arith: max depth must be non-negative, got %d", cfg.MaxDepth)
	}
	if cfg.MaxEvalDepth < 0 {
		return nil, fmt.Errorf("arith: max eval depth must be non-negative, got %d", cfg.MaxEvalDepth)
	}
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = defaultMaxDepth
	}
	if cfg.MaxEvalDepth == 0 {
		cfg.MaxEvalDepth = defaultMaxEvalDepth
	}
	return &Engine{config: cfg}, nil
}

// MustNewEngine is like NewEngine but panics on invalid configuration.
func MustNewEngine(cfg Config) *Engine {
	engine, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return engine
}

// Config returns the effective configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Tokenize returns every token of text, excluding the final EOF.
func (e *Engine) Tokenize(text string) ([]Token, error) {
	l := NewLexer(text)
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenEOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// Parse builds the tree for the single expression in text.
func (e *Engine) Parse(text string) (Node, error) {
	p, err := newParser(text, e.config.MaxDepth)
	if err != nil {
		return nil, err
	}
	return p.parse()
}

// Evaluate parses and evaluates text.
func (e *Engine) Evaluate(text string) (Number, error) {
	node, err := e.Parse(text)
	if err != nil {
		return Number{}, err
	}
	return e.evaluate(node, text)
}

// EvaluateNode evaluates a tree built by Parse or by the node constructors.
func (e *Engine) EvaluateNode(node Node) (Number, error) {
	return e.evaluate(node, "")
}

func (e *Engine) evaluate(node Node, source string) (Number, error) {
	ev := &evaluator{source: source, maxDepth: e.config.MaxEvalDepth}
	value, err := ev.evaluate(node)
	if err != nil {
		return Number{}, err
	}
	return Number{rat: value}, nil
}

var defaultEngine = MustNewEngine(Config{})

// Tokenize tokenizes text with the default configuration.
func Tokenize(text string) ([]Token, error) { return defaultEngine.Tokenize(text) }

// Parse parses text with the default configuration.
func Parse(text string) (Node, error) { return defaultEngine.Parse(text) }

// Evaluate evaluates text with the default configuration.
func Evaluate(text string) (Number, error) { return defaultEngine.Evaluate(text) }
