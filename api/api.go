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
	"context"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/tcdirect/direct/api/middleware"
	"github.com/tcdirect/direct/config"
	"github.com/tcdirect/direct/internal/filter"
	"github.com/tcdirect/direct/model"
)

// ChallengeService is the query facade the handlers call into.
type ChallengeService interface {
	GetMyChallenges(ctx context.Context, caller model.Caller, q filter.Query) ([]*model.Challenge, error)
	GetMyChallengesCount(ctx context.Context, caller model.Caller, q filter.Query) (int64, error)
}

type Api struct {
	direct ChallengeService
	auth   *middleware.AuthMiddleware
	router *gin.Engine
}

func (a Api) Router() *gin.Engine {
	router := a.router

	v1 := router.Group("/v1")
	v1.Use(a.auth.Authenticate())
	v1.GET("/challenges", a.GetMyChallenges)
	v1.GET("/challenges/count", a.GetMyChallengesCount)

	return router
}

func NewAPI(d ChallengeService) *Api {
	gin.SetMode(gin.ReleaseMode)
	conf, err := config.Fetch()
	if err != nil {
		return nil
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	if conf.EnableTelemetry {
		r.Use(otelgin.Middleware("DIRECT"))
	}
	r.Use(middleware.RateLimitMiddleware(conf))

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, "server running...")
	})

	return &Api{direct: d, auth: middleware.NewAuthMiddleware(conf), router: r}
}
