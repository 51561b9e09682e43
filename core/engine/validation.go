package engine

import (
	stderrors "errors"
	"reflect"
	"strings"

	validator "github.com/go-playground/validator/v10"

	"quote-pricing/core/calculator"
	"quote-pricing/core/types"
	"quote-pricing/internal/errors"
)

// enum is implemented by every code-declared enum type
type enum interface {
	Valid() bool
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names, which is what callers send
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails for an empty tag or nil func
	_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(enum)
		return !ok || e.Valid()
	})
	return v
}

// sharedFields are QuoteInput fields validated whatever the selection.
// A non-empty service tier is itself the selection of that line item.
var sharedFields = []string{"ServiceTier"}

// serviceFields names the QuoteInput fields each service owns. Their tags
// are only checked while the service is selected; a disabled service's
// stray values are ignored.
var serviceFields = map[types.Service][]string{
	types.ServiceBookkeeping:        {"RevenueRange", "TransactionBand"},
	types.ServiceTaas:               {"RevenueRange", "NumEntities", "StatesFiled", "NumBusinessOwners"},
	types.ServicePayroll:            {"PayrollEmployeeCount", "PayrollStateCount"},
	types.ServiceAP:                 {"APServiceTier", "APVendorBillsBand"},
	types.ServiceAR:                 {"ARServiceTier", "ARCustomerInvoicesBand"},
	types.ServiceCleanup:            {"CleanupMonths"},
	types.ServicePriorYearFilings:   {"PriorYearFilings"},
	types.ServiceAgentOfService:     {"AgentOfServiceStates"},
	types.ServiceCFOAdvisory:        {"CFOAdvisoryType", "CFOAdvisoryHours"},
	types.ServiceEntityOptimization: nil,
}

// selectedFields lists the fields to tag-validate for the selected services, without duplicates
func selectedFields(in types.QuoteInput, calcs calculator.Set) []string {
	seen := make(map[string]bool)
	var fields []string
	add := func(names ...string) {
		for _, name := range names {
			if !seen[name] {
				seen[name] = true
				fields = append(fields, name)
			}
		}
	}

	add(sharedFields...)
	for _, c := range calcs {
		if c.Selected(in) {
			add(serviceFields[c.Service()]...)
		}
	}
	return fields
}

// Validate guards the engine's own invariants: tag constraints on the
// shared fields and on the fields of selected services, then the
// parameters each selected service needs.
// Every failure is an InvalidInputError naming the field.
func (e *Engine) Validate(in types.QuoteInput, cal types.CalendarContext, calcs calculator.Set) error {
	if err := e.validate.StructPartial(in, selectedFields(in, calcs)...); err != nil {
		return translate(err)
	}
	if cal.IsSet() && (cal.Month < 1 || cal.Month > 12) {
		return errors.InvalidInput("calendarMonth", "must be between 1 and 12, got %d", cal.Month)
	}
	return calcs.Validate(in, cal)
}

func translate(err error) error {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return errors.Wrap(errors.TypeInput, "invalid quote input", err)
	}

	fe := verrs[0]
	var out *errors.Error
	switch fe.Tag() {
	case "min":
		out = errors.InvalidInput(fe.Field(), "must be at least %s, got %v", fe.Param(), fe.Value())
	case "enum":
		out = errors.InvalidInput(fe.Field(), "unrecognized value %q", fe.Value())
	default:
		out = errors.InvalidInput(fe.Field(), "failed %q validation", fe.Tag())
	}
	if len(verrs) > 1 {
		out = out.WithContext("violations", len(verrs))
	}
	return out
}
