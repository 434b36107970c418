package lookup

import (
	"context"

	"github.com/pkg/errors"
)

// Category scopes a lookup table.
type Category string

const (
	CategoryChallengeType      Category = "challenge_type"
	CategoryTechnology         Category = "technology"
	CategoryPlatform           Category = "platform"
	CategoryDraftProjectStatus Category = "draft_project_status"
)

// NoMatchID is bound in place of an empty id list. No row carries it.
const NoMatchID int64 = -1

// NoMatch returns a fresh sentinel id set that matches nothing.
func NoMatch() []int64 {
	return []int64{NoMatchID}
}

// Source is the lookup-table boundary. A nil names slice asks for every id in the category.
type Source interface {
	GetIDs(ctx context.Context, category Category, names []string) ([]int64, error)
}

// Resolver applies the empty-result policy on top of a Source. It keeps no state between calls.
type Resolver struct {
	source Source
}

func NewResolver(source Source) *Resolver {
	return &Resolver{source: source}
}

// Resolve maps names to ids. A name list that resolves to nothing yields NoMatch, never an empty slice.
func (r *Resolver) Resolve(ctx context.Context, category Category, names []string) ([]int64, error) {
	if len(names) == 0 {
		return NoMatch(), nil
	}
	ids, err := r.source.GetIDs(ctx, category, names)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving %s lookup", category)
	}
	if len(ids) == 0 {
		return NoMatch(), nil
	}
	return ids, nil
}

// ResolveAll returns every id in category exactly as the source reports it, possibly empty.
func (r *Resolver) ResolveAll(ctx context.Context, category Category) ([]int64, error) {
	ids, err := r.source.GetIDs(ctx, category, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving all %s ids", category)
	}
	return ids, nil
}
