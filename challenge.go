package direct

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tcdirect/direct/database"
	"github.com/tcdirect/direct/internal/apierror"
	"github.com/tcdirect/direct/internal/filter"
	"github.com/tcdirect/direct/internal/notification"
	"github.com/tcdirect/direct/model"
)

const (
	msgUnauthorized    = "Unauthorized access."
	msgQueryChallenges = "An error occurred while querying for challenges"
	msgQueryCount      = "An error occurred while querying for challenges total count"
)

// GetMyChallenges returns one page of the challenges the caller can see, filtered and ordered
// as requested, with prizes attached. A query matching nothing returns an empty list.
func (d *Direct) GetMyChallenges(ctx context.Context, caller model.Caller, q filter.Query) ([]*model.Challenge, error) {
	ctx, span := otel.Tracer("direct").Start(ctx, "GetMyChallenges",
		trace.WithAttributes(attribute.Int64("caller.user_id", caller.UserID)))
	defer span.End()

	cq, err := d.prepare(ctx, caller, q)
	if err != nil {
		span.RecordError(err)
		return nil, internalError(msgQueryChallenges, err)
	}

	cq.OrderClause, err = d.compiler.CompileOrder(q.Order)
	if err != nil {
		return nil, err
	}
	cq.Limit, cq.Offset = d.window(q.Pagination)

	challenges, err := d.datasource.FetchChallenges(ctx, cq)
	if err != nil {
		span.RecordError(err)
		return nil, internalError(msgQueryChallenges, err)
	}
	span.SetAttributes(attribute.Int("challenges.count", len(challenges)))

	if err := d.mergePrizesToChallenges(ctx, challenges); err != nil {
		span.RecordError(err)
		return nil, internalError(msgQueryChallenges, err)
	}
	return challenges, nil
}

// GetMyChallengesCount counts the challenges GetMyChallenges would return without paging.
func (d *Direct) GetMyChallengesCount(ctx context.Context, caller model.Caller, q filter.Query) (int64, error) {
	ctx, span := otel.Tracer("direct").Start(ctx, "GetMyChallengesCount",
		trace.WithAttributes(attribute.Int64("caller.user_id", caller.UserID)))
	defer span.End()

	cq, err := d.prepare(ctx, caller, q)
	if err != nil {
		span.RecordError(err)
		return 0, internalError(msgQueryCount, err)
	}

	total, err := d.datasource.CountChallenges(ctx, cq)
	if err != nil {
		span.RecordError(err)
		return 0, internalError(msgQueryCount, err)
	}
	return total, nil
}

// prepare authorizes the caller, validates the query and compiles its filters.
// A creator filter switches to the "my created challenges" flow.
func (d *Direct) prepare(ctx context.Context, caller model.Caller, q filter.Query) (database.ChallengeQuery, error) {
	if !caller.HasAnyAccess(model.AccessLevelAdmin, model.AccessLevelMember) {
		return database.ChallengeQuery{}, apierror.NewAPIError(apierror.ErrUnauthorized, msgUnauthorized, nil)
	}
	if q.Filters == nil {
		q.Filters = &filter.FilterSet{}
	}

	if err := d.validator.Validate(ctx, caller.UserID, q); err != nil {
		return database.ChallengeQuery{}, err
	}

	var compiled *filter.CompiledQuery
	var err error
	if q.Filters.Has(filter.KeyCreator) {
		compiled, err = d.compiler.CompileCreatorFlow(ctx, caller.UserID, q.Filters)
	} else {
		compiled, err = d.compiler.CompileSharedFlow(ctx, q.Filters)
	}
	if err != nil {
		return database.ChallengeQuery{}, err
	}

	return database.ChallengeQuery{
		UserID:    caller.UserID,
		Fragments: compiled.Fragments,
		Params:    compiled.Params,
	}, nil
}

// window applies the configured default page size. The pagination was validated already.
func (d *Direct) window(p filter.Pagination) (limit, offset int) {
	limit = d.defaultLimit
	if p.Limit != nil {
		limit = *p.Limit
	}
	if p.Offset != nil {
		offset = *p.Offset
	}
	return limit, offset
}

// internalError passes caller-facing errors through and replaces anything else with an
// opaque internal error carrying message. Internal errors are reported.
func internalError(message string, err error) error {
	var apiErr apierror.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case apierror.ErrBadRequest, apierror.ErrUnauthorized:
			return apiErr
		}
	}
	notification.NotifyError(err)
	return apierror.APIError{Code: apierror.ErrInternalServer, Message: message, Details: err}
}
