package filter

import (
	"context"

	"github.com/tcdirect/direct/internal/apierror"
	"github.com/tcdirect/direct/internal/lookup"
)

// IDResolver turns lookup names into ids. *lookup.Resolver satisfies it.
type IDResolver interface {
	Resolve(ctx context.Context, category lookup.Category, names []string) ([]int64, error)
	ResolveAll(ctx context.Context, category lookup.Category) ([]int64, error)
}

// Compiler turns a validated FilterSet into SQL predicates and their named parameters.
// It holds no per-request state and is safe for concurrent use.
type Compiler struct {
	settings Settings
	resolver IDResolver
	rules    []rule
}

func NewCompiler(settings Settings, resolver IDResolver) *Compiler {
	c := &Compiler{settings: settings, resolver: resolver}
	c.rules = c.sharedRules()
	return c
}

// CompileCreatorFlow restricts the listing to challenges created by callerID, then applies the shared filters.
func (c *Compiler) CompileCreatorFlow(ctx context.Context, callerID int64, fs *FilterSet) (*CompiledQuery, error) {
	q := newCompiledQuery()
	q.add(creatorFragment, map[string]interface{}{"creator_id": callerID})
	if err := c.compileShared(ctx, fs, q); err != nil {
		return nil, err
	}
	return q, nil
}

// CompileSharedFlow compiles the filters common to "my challenges" and "my created challenges".
func (c *Compiler) CompileSharedFlow(ctx context.Context, fs *FilterSet) (*CompiledQuery, error) {
	q := newCompiledQuery()
	if err := c.compileShared(ctx, fs, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (c *Compiler) compileShared(ctx context.Context, fs *FilterSet, q *CompiledQuery) error {
	for _, r := range c.rules {
		if !r.applies(fs) {
			continue
		}
		if err := r.compile(ctx, fs, q); err != nil {
			return compileError(r.name, err)
		}
	}
	return nil
}

// compileError keeps caller-facing API errors and hides everything else behind an internal error.
func compileError(ruleName string, err error) error {
	if _, ok := err.(apierror.APIError); ok {
		return err
	}
	return apierror.NewAPIError(apierror.ErrInternalServer, "An error occurred while compiling the "+ruleName+" filter", err)
}
