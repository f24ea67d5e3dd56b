package formfile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/wolfxl/campbuddy/pkg/core/model"
	"github.com/wolfxl/campbuddy/pkg/core/planner"
)

// ErrInvalidForm is returned when a form is missing data the planner needs
var ErrInvalidForm = errors.New("invalid planner form")

// MaxDistanceMiles is the largest travel radius a form may ask for
const MaxDistanceMiles = 100

var validate = validator.New()

// Validate checks a form before planning and reports every problem found.
//
// Rules:
//   - at least one child, each with a grade
//   - interest strengths, when given, are try, like or love
//   - at least one week selected
//   - location, when given, is a 5-digit zip or a place name of at least 5 characters
//   - distance, when given, is 0-100 miles (0 disables the radius)
//   - budgets, when given, are non-negative dollar amounts
func Validate(form model.FormData) error {
	var problems []string

	if len(form.Children) == 0 {
		problems = append(problems, "add at least one child")
	}

	var missingGrades []string
	for i, child := range form.Children {
		name := strings.TrimSpace(child.Name)
		if name == "" {
			name = fmt.Sprintf("Child %d", i+1)
		}
		if strings.TrimSpace(child.Grade) == "" {
			missingGrades = append(missingGrades, name)
		}
		for _, interest := range child.Interests {
			if interest.Strength != "" && !interest.Strength.IsValid() {
				problems = append(problems, fmt.Sprintf("unknown interest strength %q for %s (use try, like or love)", interest.Strength, name))
			}
		}
	}
	if len(missingGrades) > 0 {
		problems = append(problems, "select a grade level for: "+strings.Join(missingGrades, ", "))
	}

	if len(form.SelectedWeekIndices()) == 0 {
		problems = append(problems, "select at least one week for summer camp")
	}

	if location := strings.TrimSpace(form.Location); location != "" {
		numeric := validate.Var(location, "numeric") == nil
		if (numeric && validate.Var(location, "len=5") != nil) || validate.Var(location, "min=5") != nil {
			problems = append(problems, fmt.Sprintf("location %q is not a valid ZIP code", location))
		}
	}

	if strings.TrimSpace(form.Distance) != "" {
		distance := planner.ParseDistance(form.Distance)
		if validate.Var(distance, fmt.Sprintf("min=0,max=%d", MaxDistanceMiles)) != nil {
			problems = append(problems, fmt.Sprintf("distance must be between 0 and %d miles", MaxDistanceMiles))
		}
	}

	if problem := checkAmount("budget", form.Budget); problem != "" {
		problems = append(problems, problem)
	}
	if problem := checkAmount("weekly budget", form.WeeklyBudget); problem != "" {
		problems = append(problems, problem)
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidForm, strings.Join(problems, "; "))
	}
	return nil
}

func checkAmount(label, amount string) string {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return ""
	}
	if strings.HasPrefix(strings.TrimPrefix(amount, "$"), "-") || planner.ParseDollarAmount(amount) == nil {
		return fmt.Sprintf("%s must be a valid positive amount", label)
	}
	return ""
}
