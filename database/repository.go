/*
Copyright 2024 Blnk Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package database

import (
	"context"

	"github.com/tcdirect/direct/internal/lookup"
	"github.com/tcdirect/direct/model"
)

// IDataSource defines the interface for data source operations, grouping related functionalities.
type IDataSource interface {
	user      // Interface for user-related operations
	catalog   // Interface for lookup table operations
	challenge // Interface for challenge listing operations
}

// user defines methods for reading member identity data.
type user interface {
	GetUserHandle(ctx context.Context, userID int64) (string, error) // Retrieves the handle of a user
}

// catalog defines methods for reading lookup tables.
type catalog interface {
	GetIDs(ctx context.Context, category lookup.Category, names []string) ([]int64, error) // Resolves names to ids, or every id when names is nil
}

// challenge defines methods for reading challenges and their prizes.
type challenge interface {
	FetchChallenges(ctx context.Context, q ChallengeQuery) ([]*model.Challenge, error) // Retrieves one page of challenges visible to a user
	CountChallenges(ctx context.Context, q ChallengeQuery) (int64, error)              // Counts challenges visible to a user
	FetchPrizes(ctx context.Context, challengeIDs []int64) ([]model.Prize, error)      // Retrieves the prizes of the given challenges
}
