package lookup

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) GetIDs(ctx context.Context, category Category, names []string) ([]int64, error) {
	args := m.Called(ctx, category, names)
	ids, _ := args.Get(0).([]int64)
	return ids, args.Error(1)
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("returns source ids", func(t *testing.T) {
		src := new(mockSource)
		src.On("GetIDs", ctx, CategoryTechnology, []string{"java"}).Return([]int64{3, 7}, nil)

		ids, err := NewResolver(src).Resolve(ctx, CategoryTechnology, []string{"java"})
		require.NoError(t, err)
		assert.Equal(t, []int64{3, 7}, ids)
		src.AssertExpectations(t)
	})

	t.Run("unknown names yield the sentinel", func(t *testing.T) {
		src := new(mockSource)
		src.On("GetIDs", ctx, CategoryPlatform, []string{"nope"}).Return([]int64{}, nil)

		ids, err := NewResolver(src).Resolve(ctx, CategoryPlatform, []string{"nope"})
		require.NoError(t, err)
		assert.Equal(t, []int64{NoMatchID}, ids)
	})

	t.Run("empty names never reach the source", func(t *testing.T) {
		src := new(mockSource)

		ids, err := NewResolver(src).Resolve(ctx, CategoryChallengeType, nil)
		require.NoError(t, err)
		assert.Equal(t, NoMatch(), ids)
		src.AssertNotCalled(t, "GetIDs", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("source errors are wrapped", func(t *testing.T) {
		src := new(mockSource)
		boom := errors.New("connection reset")
		src.On("GetIDs", ctx, CategoryTechnology, []string{"go"}).Return(nil, boom)

		_, err := NewResolver(src).Resolve(ctx, CategoryTechnology, []string{"go"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, boom))
		assert.Contains(t, err.Error(), "resolving technology lookup")
	})
}

func TestResolveAll(t *testing.T) {
	ctx := context.Background()

	t.Run("passes nil names and keeps empty results", func(t *testing.T) {
		src := new(mockSource)
		src.On("GetIDs", ctx, CategoryDraftProjectStatus, []string(nil)).Return([]int64{}, nil)

		ids, err := NewResolver(src).ResolveAll(ctx, CategoryDraftProjectStatus)
		require.NoError(t, err)
		assert.Empty(t, ids)
		src.AssertExpectations(t)
	})

	t.Run("returns every id", func(t *testing.T) {
		src := new(mockSource)
		src.On("GetIDs", ctx, CategoryDraftProjectStatus, []string(nil)).Return([]int64{3, 4, 5}, nil)

		ids, err := NewResolver(src).ResolveAll(ctx, CategoryDraftProjectStatus)
		require.NoError(t, err)
		assert.Equal(t, []int64{3, 4, 5}, ids)
	})
}

func TestNoMatchIsFresh(t *testing.T) {
	a := NoMatch()
	a[0] = 42
	assert.Equal(t, []int64{NoMatchID}, NoMatch())
}
