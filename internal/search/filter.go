package search

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Recognised search parameter keys.
const (
	ParamQuery       = "query"
	ParamTags        = "tags"
	ParamSkillLevel  = "skill_level"
	ParamMinCookTime = "min_cook_time"
	ParamMaxCookTime = "max_cook_time"
	ParamMinPrepTime = "min_prep_time"
	ParamMaxPrepTime = "max_prep_time"
)

// Filter holds the optional criteria of one search request. Zero values
// (empty strings, nil slices, nil pointers) mean "not set".
type Filter struct {
	Query       string
	Tags        []string
	SkillLevel  string
	MinCookTime *int
	MaxCookTime *int
	MinPrepTime *int
	MaxPrepTime *int
}

// IsEmpty reports whether no criterion is set.
func (f Filter) IsEmpty() bool {
	return f.Query == "" &&
		len(f.Tags) == 0 &&
		f.SkillLevel == "" &&
		f.MinCookTime == nil &&
		f.MaxCookTime == nil &&
		f.MinPrepTime == nil &&
		f.MaxPrepTime == nil
}

// InvalidParamError is returned by ParseFilterStrict for a numeric
// parameter that is not a base-10 integer.
type InvalidParamError struct {
	Key   string
	Value string
}

func (e *InvalidParamError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: must be an integer", e.Value, e.Key)
}

// ParamsFromValues keeps the first value of every key.
func ParamsFromValues(values url.Values) map[string]string {
	params := make(map[string]string, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			params[key] = vals[0]
		}
	}
	return params
}

// ParseFilter normalizes raw request parameters. Numeric parameters that do
// not parse as integers are ignored, as if they had not been sent.
func ParseFilter(params map[string]string) Filter {
	f, _ := parseFilter(params, false)
	return f
}

// ParseFilterStrict is ParseFilter, except that a malformed numeric
// parameter yields an *InvalidParamError.
func ParseFilterStrict(params map[string]string) (Filter, error) {
	return parseFilter(params, true)
}

func parseFilter(params map[string]string, strict bool) (Filter, error) {
	f := Filter{
		Query:      strings.TrimSpace(params[ParamQuery]),
		Tags:       splitTags(params[ParamTags]),
		SkillLevel: params[ParamSkillLevel],
	}

	bounds := []struct {
		key  string
		dest **int
	}{
		{ParamMinCookTime, &f.MinCookTime},
		{ParamMaxCookTime, &f.MaxCookTime},
		{ParamMinPrepTime, &f.MinPrepTime},
		{ParamMaxPrepTime, &f.MaxPrepTime},
	}
	for _, b := range bounds {
		raw, ok := params[b.key]
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			if strict {
				return Filter{}, &InvalidParamError{Key: b.key, Value: raw}
			}
			continue
		}
		*b.dest = &n
	}

	return f, nil
}

func splitTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
