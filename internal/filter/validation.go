package filter

import (
	"context"
	"errors"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/tcdirect/direct/internal/apierror"
)

const (
	MsgInvalidType            = `Invalid type. One of ["active", "past", "draft"] expected.`
	MsgInvalidCreator         = "Invalid creator, only current user is supported."
	MsgDirectProjectPositive  = "Direct Project Id should be positive."
	MsgInvalidDirectProjectID = "Invalid directProjectId."
	MsgInvalidClientID        = "Invalid clientId."
	MsgInvalidBillingID       = "Invalid billingId."
	MsgInvalidStartDate       = "Invalid challenge start date filter, should be MM/dd/yyyy"
	MsgInvalidEndDate         = "Invalid challenge end date filter, should be MM/dd/yyyy"
	MsgInvalidLimit           = "Invalid limit, -1 if you want to get all records."
	MsgInvalidOffset          = "Invalid offset, must be 0 or more."
)

const (
	TypeActive = "active"
	TypePast   = "past"
	TypeDraft  = "draft"
)

// HandleSource resolves a user id to the handle shown as challenge creator.
type HandleSource interface {
	GetUserHandle(ctx context.Context, userID int64) (string, error)
}

// Validator checks a Query before any SQL is compiled for it.
type Validator struct {
	settings Settings
	handles  HandleSource
}

func NewValidator(settings Settings, handles HandleSource) *Validator {
	return &Validator{settings: settings, handles: handles}
}

// valueCheck validates every value of one filter key. Checks run in order and the first failure wins.
type valueCheck struct {
	key       string
	lowerCase bool
	firstOnly bool
	rules     []validation.Rule
}

// Validate returns a BAD_REQUEST APIError describing the first rule that failed.
// The identity lookup for the creator filter is the only external call made.
func (v *Validator) Validate(ctx context.Context, callerID int64, q Query) error {
	fs := q.Filters

	checks := []valueCheck{
		{key: KeyType, lowerCase: true, rules: []validation.Rule{
			validation.Required.Error(MsgInvalidType),
			validation.In(TypeActive, TypePast, TypeDraft).Error(MsgInvalidType),
		}},
		{key: KeyCreator, rules: []validation.Rule{v.creatorRule(ctx, callerID)}},
		{key: KeyDirectProjectID, rules: []validation.Rule{
			validation.By(integerRule(MsgInvalidDirectProjectID)),
			validation.By(positiveRule(MsgDirectProjectPositive)),
		}},
		{key: KeyClientID, rules: []validation.Rule{validation.By(integerRule(MsgInvalidClientID))}},
		{key: KeyBillingID, rules: []validation.Rule{validation.By(integerRule(MsgInvalidBillingID))}},
		{key: KeyStartDateFrom, lowerCase: true, firstOnly: true, rules: v.dateRules(MsgInvalidStartDate)},
		{key: KeyStartDateTo, lowerCase: true, firstOnly: true, rules: v.dateRules(MsgInvalidStartDate)},
		{key: KeyEndDateFrom, lowerCase: true, firstOnly: true, rules: v.dateRules(MsgInvalidEndDate)},
		{key: KeyEndDateTo, lowerCase: true, firstOnly: true, rules: v.dateRules(MsgInvalidEndDate)},
	}

	for _, check := range checks {
		if err := runCheck(fs, check); err != nil {
			return err
		}
	}

	return validatePagination(q.Pagination)
}

func runCheck(fs *FilterSet, check valueCheck) error {
	values, ok := fs.Get(check.key)
	if !ok {
		return nil
	}
	values = normalize(values, check.lowerCase)
	if check.firstOnly && len(values) > 1 {
		values = values[:1]
	}
	for _, value := range values {
		if err := validation.Validate(value, check.rules...); err != nil {
			return asBadRequest(err)
		}
	}
	return nil
}

func asBadRequest(err error) error {
	var apiErr apierror.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	var internal validation.InternalError
	if errors.As(err, &internal) {
		return apierror.NewAPIError(apierror.ErrInternalServer, "An error occurred while validating the query", internal.InternalError())
	}
	return apierror.BadRequest(err.Error())
}

func (v *Validator) dateRules(msg string) []validation.Rule {
	return []validation.Rule{
		validation.Required.Error(msg),
		validation.Date(v.settings.DateLayout).Error(msg),
	}
}

// creatorRule only lets the caller filter by their own handle.
// The handle is looked up once, on the first creator value.
func (v *Validator) creatorRule(ctx context.Context, callerID int64) validation.Rule {
	var handle string
	var resolved bool
	return validation.By(func(value interface{}) error {
		if !resolved {
			h, err := v.handles.GetUserHandle(ctx, callerID)
			if err != nil {
				if apierror.IsCode(err, apierror.ErrNotFound) {
					return errors.New(MsgInvalidCreator)
				}
				return validation.NewInternalError(err)
			}
			handle, resolved = h, true
		}
		if value.(string) != handle {
			return errors.New(MsgInvalidCreator)
		}
		return nil
	})
}

func integerRule(msg string) validation.RuleFunc {
	return func(value interface{}) error {
		if _, err := strconv.ParseInt(value.(string), 10, 32); err != nil {
			return errors.New(msg)
		}
		return nil
	}
}

func positiveRule(msg string) validation.RuleFunc {
	return func(value interface{}) error {
		id, _ := strconv.ParseInt(value.(string), 10, 32)
		if id <= 0 {
			return errors.New(msg)
		}
		return nil
	}
}

func validatePagination(p Pagination) error {
	if p.Limit != nil {
		err := validation.Validate(*p.Limit, validation.By(func(value interface{}) error {
			limit := value.(int)
			if limit == 0 || limit < -1 {
				return errors.New(MsgInvalidLimit)
			}
			return nil
		}))
		if err != nil {
			return apierror.BadRequest(err.Error())
		}
	}
	if p.Offset != nil {
		if err := validation.Validate(*p.Offset, validation.Min(0).Error(MsgInvalidOffset)); err != nil {
			return apierror.BadRequest(err.Error())
		}
	}
	return nil
}

// normalize trims values and lower-cases them for keys matched case-insensitively.
func normalize(values []string, lowerCase bool) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if lowerCase {
			v = strings.ToLower(v)
		}
		out = append(out, v)
	}
	return out
}
