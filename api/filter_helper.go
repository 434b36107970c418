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

package api

import (
	"github.com/gin-gonic/gin"

	"github.com/tcdirect/direct/internal/filter"
)

// ParseQueryFromContext reads filters, ordering and pagination from the request query string.
//
// Filters are accepted either as plain parameters or packed in a single "filter" parameter:
//   - type=active&challengeTechnologies=java,.net
//   - filter=type%3Dactive%26creator%3Dme
//   - challengeStatus=in(active,draft)
//
// orderBy, orderType, limit, offset and includeCount are reserved and never treated as filters.
func ParseQueryFromContext(c *gin.Context, opts *filter.ParseOptions) (filter.Query, []filter.ParseError) {
	result := filter.ParseFromQuery(c.Request.URL.Query(), opts)
	return result.Query, result.Errors
}

// Metadata is attached to listings when includeCount=true.
type Metadata struct {
	TotalCount int64 `json:"totalCount"`
}

// FilterResponse wraps the response with optional count.
type FilterResponse struct {
	Data     interface{} `json:"data"`
	Metadata *Metadata   `json:"metadata,omitempty"`
}
