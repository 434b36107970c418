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

package direct

import (
	"github.com/sirupsen/logrus"

	"github.com/tcdirect/direct/config"
	"github.com/tcdirect/direct/database"
	"github.com/tcdirect/direct/internal/cache"
	"github.com/tcdirect/direct/internal/filter"
	"github.com/tcdirect/direct/internal/lookup"
)

// Direct serves the read-only "my challenges" queries.
type Direct struct {
	datasource   database.IDataSource
	validator    *filter.Validator
	compiler     *filter.Compiler
	defaultLimit int
}

// NewDirect wires the query pipeline on top of db using the loaded configuration.
// When the lookup cache is enabled, lookup tables are read through Redis.
func NewDirect(db database.IDataSource) (*Direct, error) {
	configuration, err := config.Fetch()
	if err != nil {
		return nil, err
	}

	settings, err := filter.SettingsFromConfig(configuration)
	if err != nil {
		return nil, err
	}

	var source lookup.Source = db
	if configuration.LookupCache.Enabled {
		c, err := cache.NewCache()
		if err != nil {
			return nil, err
		}
		source = lookup.NewCachedSource(db, c, configuration.LookupCache.TTL())
		logrus.Infof("lookup cache enabled, ttl %s", configuration.LookupCache.TTL())
	}

	return &Direct{
		datasource:   db,
		validator:    filter.NewValidator(settings, db),
		compiler:     filter.NewCompiler(settings, lookup.NewResolver(source)),
		defaultLimit: configuration.Query.DefaultLimit,
	}, nil
}
