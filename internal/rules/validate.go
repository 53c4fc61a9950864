package rules

import (
	"fmt"
	"regexp"

	"github.com/pennywise/pennywise/internal/common"
	"github.com/pennywise/pennywise/internal/model"
)

// Validate checks a rule definition at creation time. Invalid rules are
// rejected synchronously, never silently accepted: a rule must have at
// least one condition, a target category, ordered amount bounds, a regex
// that compiles, and in-range enum fields. The name is display-only and
// may be empty; an empty amount sign is normalized to SignAny here so
// persisted rules carry an explicit sign.
func Validate(rule *model.Rule) error {
	if rule.Category == "" {
		return fmt.Errorf("%w: target category is required", common.ErrInvalidRule)
	}
	if !rule.HasConditions() {
		return fmt.Errorf("%w: at least one condition is required", common.ErrInvalidRule)
	}
	if rule.AmountMin != nil && rule.AmountMax != nil && *rule.AmountMin > *rule.AmountMax {
		return fmt.Errorf("%w: amount minimum %.2f exceeds maximum %.2f",
			common.ErrInvalidRule, *rule.AmountMin, *rule.AmountMax)
	}
	if rule.Pattern != "" {
		if _, err := regexp.Compile("(?i)" + rule.Pattern); err != nil {
			return fmt.Errorf("%w: malformed pattern: %v", common.ErrInvalidRule, err)
		}
	}
	switch rule.AmountSign {
	case "":
		rule.AmountSign = model.SignAny
	case model.SignAny, model.SignPositive, model.SignNegative:
	default:
		return fmt.Errorf("%w: unknown amount sign %q", common.ErrInvalidRule, rule.AmountSign)
	}
	for _, day := range rule.DaysOfWeek {
		if day < 1 || day > 7 {
			return fmt.Errorf("%w: day of week %d outside 1-7", common.ErrInvalidRule, day)
		}
	}
	if rule.Confidence < 0 || rule.Confidence > 1 {
		return fmt.Errorf("%w: confidence %.2f outside [0,1]", common.ErrInvalidRule, rule.Confidence)
	}
	return nil
}
