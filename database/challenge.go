package database

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tcdirect/direct/internal/apierror"
	"github.com/tcdirect/direct/model"
)

// NoLimit disables the LIMIT clause of the listing.
const NoLimit = -1

// ChallengeQuery is a compiled listing request: AND fragments and their named parameters,
// plus the ORDER BY clause and page window. Fragments may only reference the aliases of
// challengeBaseQuery and parameters present in Params.
type ChallengeQuery struct {
	UserID      int64
	Fragments   []string
	Params      map[string]interface{}
	OrderClause string
	Limit       int
	Offset      int
}

const challengeBaseQuery = `
	SELECT
		p.project_id AS challenge_id,
		pn.value AS challenge_name,
		pcl.name AS challenge_type,
		client_billing_info.client_name,
		client_billing_info.client_id,
		client_billing_info.billing_name,
		client_billing_info.billing_id,
		tdp.name AS direct_project_name,
		p.tc_direct_project_id AS direct_project_id,
		COALESCE(reg_phase.actual_start_time, reg_phase.scheduled_start_time) AS challenge_start_date,
		(SELECT COALESCE(MAX(ph.actual_end_time), MAX(ph.scheduled_end_time))
			FROM project_phase ph WHERE ph.project_id = p.project_id) AS challenge_end_date,
		CAST(pi_dr.value AS DOUBLE PRECISION) AS dr_points,
		psl.name AS challenge_status,
		creator.handle AS challenge_creator
	FROM project p
	JOIN project_status_lu psl ON psl.project_status_id = p.project_status_id
	JOIN project_category_lu pcl ON pcl.project_category_id = p.project_category_id
	LEFT JOIN project_info pn ON pn.project_id = p.project_id AND pn.project_info_type_id = 6
	LEFT JOIN project_info pi1 ON pi1.project_id = p.project_id AND pi1.project_info_type_id = 1
	LEFT JOIN project_info pi_dr ON pi_dr.project_id = p.project_id AND pi_dr.project_info_type_id = 30
	LEFT JOIN project_info pi_billing ON pi_billing.project_id = p.project_id AND pi_billing.project_info_type_id = 32
	LEFT JOIN client_billing_info ON client_billing_info.billing_id = CAST(pi_billing.value AS BIGINT)
	LEFT JOIN tc_direct_project tdp ON tdp.project_id = p.tc_direct_project_id
	LEFT JOIN project_phase reg_phase ON reg_phase.project_id = p.project_id AND reg_phase.phase_type_id = 1
	LEFT JOIN "user" creator ON creator.user_id = p.create_user
	WHERE p.project_status_id NOT IN (3, 9)
	AND EXISTS (SELECT 1 FROM user_permission_grant upg
		WHERE upg.resource_id = p.tc_direct_project_id AND upg.user_id = :user_id)`

// buildChallengeQuery appends the fragments to the base query and merges user_id into the parameters.
func buildChallengeQuery(q ChallengeQuery) (string, map[string]interface{}) {
	var b strings.Builder
	b.WriteString(challengeBaseQuery)
	for _, fragment := range q.Fragments {
		b.WriteString("\n\t")
		b.WriteString(fragment)
	}

	params := make(map[string]interface{}, len(q.Params)+3)
	for k, v := range q.Params {
		params[k] = v
	}
	params["user_id"] = q.UserID
	return b.String(), params
}

func (d Datasource) FetchChallenges(ctx context.Context, q ChallengeQuery) ([]*model.Challenge, error) {
	ctx, span := otel.Tracer("direct.database").Start(ctx, "FetchChallenges")
	defer span.End()

	inner, params := buildChallengeQuery(q)

	var b strings.Builder
	b.WriteString("SELECT * FROM (")
	b.WriteString(inner)
	b.WriteString("\n) challenges")
	b.WriteString(q.OrderClause)
	if q.Limit != NoLimit {
		b.WriteString(" LIMIT :limit")
		params["limit"] = q.Limit
	}
	if q.Offset > 0 {
		b.WriteString(" OFFSET :offset")
		params["offset"] = q.Offset
	}

	query, args, err := d.namedQuery(b.String(), params)
	if err != nil {
		span.RecordError(err)
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to prepare challenges query", err)
	}

	challenges := []*model.Challenge{}
	if err := d.Conn.SelectContext(ctx, &challenges, query, args...); err != nil {
		span.RecordError(err)
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve challenges", err)
	}

	span.SetAttributes(attribute.Int("challenges.count", len(challenges)))
	return challenges, nil
}

func (d Datasource) CountChallenges(ctx context.Context, q ChallengeQuery) (int64, error) {
	ctx, span := otel.Tracer("direct.database").Start(ctx, "CountChallenges")
	defer span.End()

	inner, params := buildChallengeQuery(q)
	query, args, err := d.namedQuery("SELECT COUNT(*) FROM ("+inner+"\n) challenges", params)
	if err != nil {
		span.RecordError(err)
		return 0, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to prepare challenges count query", err)
	}

	var total int64
	if err := d.Conn.GetContext(ctx, &total, query, args...); err != nil {
		span.RecordError(err)
		return 0, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to count challenges", err)
	}
	return total, nil
}

const prizesQuery = `
	SELECT
		pr.project_id AS challenge_id,
		pr.prize_type_id,
		pr.prize_amount,
		pr.number_of_submissions,
		pr.place
	FROM prize pr
	WHERE pr.project_id IN (:project_ids)
	ORDER BY pr.project_id, pr.prize_type_id, pr.place`

// FetchPrizes returns every prize row of the given challenges. No ids means no rows and no query.
func (d Datasource) FetchPrizes(ctx context.Context, challengeIDs []int64) ([]model.Prize, error) {
	if len(challengeIDs) == 0 {
		return []model.Prize{}, nil
	}

	ctx, span := otel.Tracer("direct.database").Start(ctx, "FetchPrizes")
	defer span.End()

	query, args, err := d.namedQuery(prizesQuery, map[string]interface{}{"project_ids": challengeIDs})
	if err != nil {
		span.RecordError(err)
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to prepare prizes query", err)
	}

	prizes := []model.Prize{}
	if err := d.Conn.SelectContext(ctx, &prizes, query, args...); err != nil {
		span.RecordError(err)
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve prizes", err)
	}
	return prizes, nil
}
