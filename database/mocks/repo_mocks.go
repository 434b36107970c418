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
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tcdirect/direct/database"
	"github.com/tcdirect/direct/internal/lookup"
	"github.com/tcdirect/direct/model"
)

// MockDataSource is a mock implementation of the IDataSource interface
type MockDataSource struct {
	mock.Mock
}

// User methods

func (m *MockDataSource) GetUserHandle(ctx context.Context, userID int64) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

// Catalog methods

func (m *MockDataSource) GetIDs(ctx context.Context, category lookup.Category, names []string) ([]int64, error) {
	args := m.Called(ctx, category, names)
	ids, _ := args.Get(0).([]int64)
	return ids, args.Error(1)
}

// Challenge methods

func (m *MockDataSource) FetchChallenges(ctx context.Context, q database.ChallengeQuery) ([]*model.Challenge, error) {
	args := m.Called(ctx, q)
	challenges, _ := args.Get(0).([]*model.Challenge)
	return challenges, args.Error(1)
}

func (m *MockDataSource) CountChallenges(ctx context.Context, q database.ChallengeQuery) (int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDataSource) FetchPrizes(ctx context.Context, challengeIDs []int64) ([]model.Prize, error) {
	args := m.Called(ctx, challengeIDs)
	prizes, _ := args.Get(0).([]model.Prize)
	return prizes, args.Error(1)
}
