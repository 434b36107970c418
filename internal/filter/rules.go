package filter

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tcdirect/direct/internal/lookup"
)

// SQL predicates bound by the rules below. Each starts with AND so fragments can be
// appended to the base WHERE clause in any order.
const (
	creatorFragment       = " AND p.create_user = :creator_id"
	challengeTypeFragment = " AND p.project_category_id IN (:challenge_type_ids)"
	typeFragment          = " AND p.project_status_id IN (:type_id)"
	technologyFragment    = " AND EXISTS (SELECT 1 FROM comp_technology ct" +
		" WHERE ct.comp_vers_id = CAST(pi1.value AS BIGINT) AND ct.technology_type_id IN (:technology_ids))"
	platformFragment = " AND EXISTS (SELECT 1 FROM project_platform pp" +
		" WHERE pp.project_platform_id IN (:platform_ids) AND p.project_id = pp.project_id)"
	directProjectIDFragment = " AND p.tc_direct_project_id IN (:direct_project_ids)"
	clientIDFragment        = " AND client_billing_info.client_id IN (:client_ids)"
	billingIDFragment       = " AND client_billing_info.billing_id IN (:billing_ids)"
	startDateFragment       = " AND (COALESCE(reg_phase.actual_start_time, reg_phase.scheduled_start_time)" +
		" BETWEEN :start_date_from AND :start_date_to)"
	endDateFragment = " AND ((SELECT COALESCE(MAX(ph.actual_end_time), MAX(ph.scheduled_end_time))" +
		" FROM project_phase ph WHERE ph.project_id = p.project_id) BETWEEN :end_date_from AND :end_date_to)"

	statusIDPredicate          = "p.project_status_id = :challenge_status_id%d"
	statusNamePredicate        = "LOWER(psl.name) LIKE :challenge_status_name%d"
	directProjectNamePredicate = "EXISTS (SELECT 1 FROM tc_direct_project tdp" +
		" WHERE tdp.project_id = p.tc_direct_project_id AND LOWER(tdp.name) LIKE :direct_project_name%d)"
)

// Status ids the "type" filter maps to directly.
const (
	activeStatusID int64 = 1
	draftStatusID  int64 = 2
)

type ruleFunc func(ctx context.Context, fs *FilterSet, q *CompiledQuery) error

// rule compiles one filter key (or a pair of range keys) into at most one fragment.
type rule struct {
	name    string
	keys    []string
	compile ruleFunc
}

func (r rule) applies(fs *FilterSet) bool {
	for _, key := range r.keys {
		if fs.Has(key) {
			return true
		}
	}
	return false
}

// valuesRule adapts a function over the normalized values of a single key.
func valuesRule(key string, lowerCase bool, fn func(ctx context.Context, values []string, q *CompiledQuery) error) rule {
	return rule{
		name: key,
		keys: []string{key},
		compile: func(ctx context.Context, fs *FilterSet, q *CompiledQuery) error {
			values, _ := fs.Get(key)
			return fn(ctx, normalize(values, lowerCase), q)
		},
	}
}

// sharedRules is the ordered rule table of the shared flow.
func (c *Compiler) sharedRules() []rule {
	return []rule{
		valuesRule(KeyChallengeType, false, c.lookupRule(lookup.CategoryChallengeType, "challenge_type_ids", challengeTypeFragment)),
		valuesRule(KeyChallengeStatus, true, compileChallengeStatus),
		valuesRule(KeyType, true, c.compileType),
		valuesRule(KeyChallengeTechnologies, true, c.lookupRule(lookup.CategoryTechnology, "technology_ids", technologyFragment)),
		valuesRule(KeyChallengePlatforms, true, c.lookupRule(lookup.CategoryPlatform, "platform_ids", platformFragment)),
		valuesRule(KeyDirectProjectID, true, idListRule("direct_project_ids", directProjectIDFragment)),
		valuesRule(KeyDirectProjectName, true, compileDirectProjectName),
		valuesRule(KeyClientID, true, idListRule("client_ids", clientIDFragment)),
		valuesRule(KeyBillingID, true, idListRule("billing_ids", billingIDFragment)),
		c.dateRangeRule(KeyStartDateFrom, KeyStartDateTo, "start_date_from", "start_date_to", startDateFragment),
		c.dateRangeRule(KeyEndDateFrom, KeyEndDateTo, "end_date_from", "end_date_to", endDateFragment),
	}
}

// lookupRule resolves names in category and binds the ids (or the no-match sentinel) to param.
func (c *Compiler) lookupRule(category lookup.Category, param, fragment string) func(context.Context, []string, *CompiledQuery) error {
	return func(ctx context.Context, names []string, q *CompiledQuery) error {
		ids, err := c.resolver.Resolve(ctx, category, names)
		if err != nil {
			return err
		}
		q.add(fragment, map[string]interface{}{param: ids})
		return nil
	}
}

// compileChallengeStatus ORs one predicate per value: integers match the status id exactly,
// anything else is a case-insensitive substring match on the status name.
func compileChallengeStatus(_ context.Context, values []string, q *CompiledQuery) error {
	if len(values) == 0 {
		return nil
	}
	predicates := make([]string, 0, len(values))
	params := make(map[string]interface{}, len(values))
	for i, value := range values {
		if id, err := strconv.ParseInt(value, 10, 32); err == nil {
			params[fmt.Sprintf("challenge_status_id%d", i)] = id
			predicates = append(predicates, fmt.Sprintf(statusIDPredicate, i))
			continue
		}
		params[fmt.Sprintf("challenge_status_name%d", i)] = wildcard(value)
		predicates = append(predicates, fmt.Sprintf(statusNamePredicate, i))
	}
	q.add(orGroup(predicates), params)
	return nil
}

// compileType unions the status ids of the requested challenge types.
// "past" takes every id of the draft_project_status category.
func (c *Compiler) compileType(ctx context.Context, values []string, q *CompiledQuery) error {
	var ids []int64
	if contains(values, TypeActive) {
		ids = append(ids, activeStatusID)
	}
	if contains(values, TypeDraft) {
		ids = append(ids, draftStatusID)
	}
	if contains(values, TypePast) {
		pastIDs, err := c.resolver.ResolveAll(ctx, lookup.CategoryDraftProjectStatus)
		if err != nil {
			return err
		}
		ids = append(ids, pastIDs...)
	}
	if len(ids) == 0 {
		ids = lookup.NoMatch()
	}
	q.add(typeFragment, map[string]interface{}{"type_id": ids})
	return nil
}

func compileDirectProjectName(_ context.Context, values []string, q *CompiledQuery) error {
	if len(values) == 0 {
		return nil
	}
	predicates := make([]string, 0, len(values))
	params := make(map[string]interface{}, len(values))
	for i, value := range values {
		params[fmt.Sprintf("direct_project_name%d", i)] = wildcard(value)
		predicates = append(predicates, fmt.Sprintf(directProjectNamePredicate, i))
	}
	q.add(orGroup(predicates), params)
	return nil
}

// idListRule binds already-validated integer values as an id list.
func idListRule(param, fragment string) func(context.Context, []string, *CompiledQuery) error {
	return func(_ context.Context, values []string, q *CompiledQuery) error {
		ids := make([]int64, 0, len(values))
		for _, value := range values {
			id, err := strconv.ParseInt(value, 10, 32)
			if err != nil {
				return fmt.Errorf("parsing %s value %q: %w", param, value, err)
			}
			ids = append(ids, id)
		}
		if len(ids) == 0 {
			ids = lookup.NoMatch()
		}
		q.add(fragment, map[string]interface{}{param: ids})
		return nil
	}
}

// dateRangeRule adds a single BETWEEN fragment when either bound of the range is present.
func (c *Compiler) dateRangeRule(fromKey, toKey, fromParam, toParam, fragment string) rule {
	return rule{
		name: fromKey + "/" + toKey,
		keys: []string{fromKey, toKey},
		compile: func(_ context.Context, fs *FilterSet, q *CompiledQuery) error {
			from, hasFrom := fs.First(fromKey)
			to, hasTo := fs.First(toKey)
			if !hasFrom && !hasTo {
				return nil
			}
			r, err := c.settings.resolveDateRange(strings.ToLower(from), strings.ToLower(to), hasFrom, hasTo)
			if err != nil {
				return fmt.Errorf("parsing %s range: %w", fromKey, err)
			}
			q.add(fragment, map[string]interface{}{fromParam: r.From, toParam: r.To})
			return nil
		},
	}
}

func orGroup(predicates []string) string {
	return " AND (" + strings.Join(predicates, " OR ") + ")"
}

func wildcard(value string) string {
	return "%" + value + "%"
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
