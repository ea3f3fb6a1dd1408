package combinator

// Option configures a single Parse run.
type Option func(*runConfig)

type runConfig struct {
	complete bool
}

// Complete makes Parse fail when the parser succeeds without consuming
// the whole input. The failure is reported at the position where the
// parser stopped. Equivalent to ending the grammar with End, without
// modifying it.
func Complete() Option {
	return func(c *runConfig) { c.complete = true }
}

// Parse runs p against text from the start. The name labels the source
// in error messages; it is not interpreted. The result is the value
// produced by p, or a *Error describing the furthest match failure, or
// a *TypeMismatchError when a fold violated the value contract.
//
// By default no end-of-input check is implied: a parser that does not
// require End may succeed while leaving input unconsumed. Pass
// Complete to require full consumption.
func Parse(name, text string, p *Parser, opts ...Option) (Value, error) {
	var cfg runConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	in := &input{file: name, text: text}
	end, v, err := eval(in, State{}, p)
	if err != nil {
		return Value{}, err
	}
	if cfg.complete && end.Off != len(text) {
		return Value{}, newError(in, end, "end of input")
	}
	return v, nil
}
