package domain

import (
	"fmt"
	"unicode/utf8"
)

const (
	MaxNameLen        = 100
	MaxDescriptionLen = 500
	MaxTags           = 10
	MinGrade          = 1
	MaxGrade          = 5
)

// ValidateName checks the 1-100 character bound shared by places and routes.
func ValidateName(name string) error {
	n := utf8.RuneCountInString(name)
	if n == 0 || n > MaxNameLen {
		return fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidInput, MaxNameLen)
	}
	return nil
}

// ValidateDescription checks the description length bound.
func ValidateDescription(desc string) error {
	if utf8.RuneCountInString(desc) > MaxDescriptionLen {
		return fmt.Errorf("%w: description must be at most %d characters", ErrInvalidInput, MaxDescriptionLen)
	}
	return nil
}

// Validate checks a place before it is stored. Owners are assigned by the
// service and are not checked here.
func (p *Place) Validate() error {
	if err := ValidateName(p.Name); err != nil {
		return err
	}
	if err := ValidateDescription(p.Description); err != nil {
		return err
	}
	if len(p.Tags) > MaxTags {
		return fmt.Errorf("%w: at most %d tags allowed", ErrInvalidInput, MaxTags)
	}
	return p.Location.Validate()
}

// Validate checks a route before it is stored.
func (r *Route) Validate() error {
	if err := ValidateName(r.Name); err != nil {
		return err
	}
	if err := ValidateDescription(r.Description); err != nil {
		return err
	}
	if len(r.Places) == 0 {
		return fmt.Errorf("%w: route must contain at least one place", ErrInvalidInput)
	}
	return nil
}

// ValidateGrade checks the 1-5 grade scale.
func ValidateGrade(grade int) error {
	if grade < MinGrade || grade > MaxGrade {
		return fmt.Errorf("%w: grade must be %d-%d", ErrInvalidInput, MinGrade, MaxGrade)
	}
	return nil
}
