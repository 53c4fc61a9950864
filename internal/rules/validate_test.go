package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pennywise/pennywise/internal/common"
	"github.com/pennywise/pennywise/internal/model"
)

func TestValidate(t *testing.T) {
	valid := func() model.Rule {
		return model.Rule{
			Name:             "Gas",
			Category:         "Transportation",
			MerchantContains: "chevron",
			Confidence:       0.8,
		}
	}

	tests := []struct {
		mutate  func(*model.Rule)
		name    string
		wantErr bool
	}{
		{
			name:    "valid rule",
			mutate:  func(_ *model.Rule) {},
			wantErr: false,
		},
		{
			name: "no conditions is invalid regardless of name and priority",
			mutate: func(r *model.Rule) {
				r.MerchantContains = ""
				r.Priority = 100
			},
			wantErr: true,
		},
		{
			name:    "empty name is allowed, validity depends on conditions only",
			mutate:  func(r *model.Rule) { r.Name = "" },
			wantErr: false,
		},
		{
			name:    "missing category",
			mutate:  func(r *model.Rule) { r.Category = "" },
			wantErr: true,
		},
		{
			name: "minimum above maximum",
			mutate: func(r *model.Rule) {
				r.AmountMin = floatPtr(100)
				r.AmountMax = floatPtr(10)
			},
			wantErr: true,
		},
		{
			name:    "malformed regex",
			mutate:  func(r *model.Rule) { r.Pattern = `([unclosed` },
			wantErr: true,
		},
		{
			name:    "unknown amount sign",
			mutate:  func(r *model.Rule) { r.AmountSign = "sideways" },
			wantErr: true,
		},
		{
			name:    "day of week out of range",
			mutate:  func(r *model.Rule) { r.DaysOfWeek = []int{8} },
			wantErr: true,
		},
		{
			name:    "confidence out of range",
			mutate:  func(r *model.Rule) { r.Confidence = 1.5 },
			wantErr: true,
		},
		{
			name: "sign-only condition set is valid",
			mutate: func(r *model.Rule) {
				r.MerchantContains = ""
				r.AmountSign = model.SignNegative
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := valid()
			tt.mutate(&rule)

			err := Validate(&rule)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidRule)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_NormalizesEmptyAmountSign(t *testing.T) {
	rule := model.Rule{
		Category:         "Transportation",
		MerchantContains: "chevron",
		Confidence:       0.8,
	}

	assert.NoError(t, Validate(&rule))
	assert.Equal(t, model.SignAny, rule.AmountSign)
}
