package sim

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrPolicyFault wraps any failure raised while invoking a policy.
	ErrPolicyFault = errors.New("sim: policy fault")
	// ErrMalformedResult reports a policy result that is not a list of
	// direction tokens.
	ErrMalformedResult = errors.New("sim: malformed policy result")
)

// Policy decides which directions get a green light. Decide receives a deep
// copy of the run state; it cannot reach engine internals. The context
// carries a soft deadline.
type Policy interface {
	Name() string
	Decide(ctx context.Context, snap Snapshot) ([]Direction, error)
}

// PolicyFunc adapts a function to the Policy interface.
type PolicyFunc func(ctx context.Context, snap Snapshot) ([]Direction, error)

// Name implements Policy.
func (f PolicyFunc) Name() string { return "func" }

// Decide implements Policy.
func (f PolicyFunc) Decide(ctx context.Context, snap Snapshot) ([]Direction, error) {
	return f(ctx, snap)
}

// TokenPolicyFunc adapts a policy that answers with direction tokens such as
// "north". Any unknown token makes the whole result malformed, so the tick
// runs all red; unknown tokens are not skipped while the rest is applied.
type TokenPolicyFunc func(ctx context.Context, snap Snapshot) ([]string, error)

// Name implements Policy.
func (f TokenPolicyFunc) Name() string { return "tokens" }

// Decide implements Policy.
func (f TokenPolicyFunc) Decide(ctx context.Context, snap Snapshot) ([]Direction, error) {
	tokens, err := f(ctx, snap)
	if err != nil {
		return nil, err
	}
	return ParseDirections(tokens)
}

// ParseDirections converts tokens into directions.
func ParseDirections(tokens []string) ([]Direction, error) {
	dirs := make([]Direction, 0, len(tokens))
	for _, t := range tokens {
		d, ok := ParseDirection(t)
		if !ok {
			return nil, fmt.Errorf("%w: unknown direction %q", ErrMalformedResult, t)
		}
		dirs = append(dirs, d)
	}
	return dirs, nil
}

// Named wraps a policy under a different name.
func Named(name string, p Policy) Policy {
	return namedPolicy{name: name, Policy: p}
}

type namedPolicy struct {
	name string
	Policy
}

func (n namedPolicy) Name() string { return n.name }

// decision is the outcome of one policy call.
type decision struct {
	dirs    []Direction
	err     error
	overran bool
	took    time.Duration
}

// invoke calls p with a soft deadline. Panics and errors become an
// ErrPolicyFault with no directions; an overrun is only reported.
func invoke(p Policy, snap Snapshot, deadline time.Duration) (out decision) {
	if p == nil {
		return decision{}
	}
	ctx := context.Background()
	if deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, deadline)
		defer cancel()
	}

	start := time.Now()
	defer func() {
		out.took = time.Since(start)
		out.overran = deadline > 0 && out.took > deadline
		if r := recover(); r != nil {
			out.dirs = nil
			out.err = fmt.Errorf("%w: %s: panic: %v", ErrPolicyFault, p.Name(), r)
		}
	}()

	dirs, err := p.Decide(ctx, snap)
	if err != nil {
		return decision{err: fmt.Errorf("%w: %s: %w", ErrPolicyFault, p.Name(), err)}
	}
	valid := dirs[:0:0]
	for _, d := range dirs {
		if !d.valid() {
			return decision{err: fmt.Errorf("%w: %s: %w: direction %d", ErrPolicyFault, p.Name(), ErrMalformedResult, d)}
		}
		valid = append(valid, d)
	}
	return decision{dirs: valid}
}
