package quiz

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Violations maps a field name to its human-readable violation messages.
// All failing fields are reported, not just the first.
type Violations map[string][]string

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields under their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// integral accepts only numbers with a zero fractional part.
	_ = v.RegisterValidation("integral", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return f == math.Trunc(f)
	})

	return v
}

// Validate checks the raw submission against the quiz contract and returns
// either the fully-typed answers or the per-field violation messages.
// It has no side effects and never contacts a remote service.
func Validate(sub Submission) (*Answers, Violations) {
	if err := validate.Struct(sub); err != nil {
		violations := make(Violations)

		var verrs validator.ValidationErrors
		if ok := asValidationErrors(err, &verrs); !ok {
			violations["_"] = []string{"invalid submission"}
			return nil, violations
		}

		for _, fe := range verrs {
			violations[fe.Field()] = append(violations[fe.Field()], message(fe))
		}
		return nil, violations
	}

	return &Answers{
		Diet:                    Diet(*sub.Diet),
		WeeklyMilesDriven:       *sub.WeeklyMilesDriven,
		ElectricityKwhPerMonth:  *sub.ElectricityKwhPerMonth,
		HomeHeating:             Heating(*sub.HomeHeating),
		FlightsShortHaulPerYear: int(*sub.FlightsShortHaulPerYear),
		RecyclingHabit:          Recycling(*sub.RecyclingHabit),
		TransportMode:           TransportMode(*sub.TransportMode),
	}, nil
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors) //nolint:errorlint // validator returns this type directly
	if ok {
		*target = verrs
	}
	return ok
}

// message renders a single violation as a human-readable sentence.
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.Join(strings.Fields(fe.Param()), ", "))
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "integral":
		return "must be a whole number"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
