package checkout

import (
	"regexp"
	"strings"

	"roastery/internal/model"
)

// minAddressLength is the shortest address accepted on the shipping step.
const minAddressLength = 10

var (
	// emailPattern accepts the local@domain.tld shape without attempting
	// full RFC validation.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)

	// phoneSeparators are stripped before counting digits.
	phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")

	phonePattern = regexp.MustCompile(`^\+?[0-9]{7,20}$`)
)

// ValidEmail reports whether the address has the local@domain.tld shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// ValidateCustomerInfo checks the first checkout step. A nil return means
// the step may advance; otherwise the map carries field-level message keys.
func ValidateCustomerInfo(info model.CustomerInfo) model.FieldErrors {
	errs := model.FieldErrors{}

	if strings.TrimSpace(info.FullName) == "" {
		errs["fullName"] = "full_name_required"
	}

	if !emailPattern.MatchString(strings.TrimSpace(info.Email)) {
		errs["email"] = "invalid_email"
	}

	cleaned := phoneSeparators.Replace(strings.TrimSpace(info.Phone))
	if !phonePattern.MatchString(cleaned) {
		errs["phone"] = "invalid_phone"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateShippingInfo checks the second checkout step. The city must
// belong to the chosen emirate; a city left over from a previously chosen
// emirate therefore fails here.
func ValidateShippingInfo(info model.ShippingInfo) model.FieldErrors {
	errs := model.FieldErrors{}

	emirate := strings.TrimSpace(info.Emirate)
	city := strings.TrimSpace(info.City)

	if emirate == "" {
		errs["emirate"] = "emirate_required"
	}

	if city == "" {
		errs["city"] = "city_required"
	} else if emirate != "" && !cityInEmirate(emirate, city) {
		errs["city"] = "city_not_in_emirate"
	}

	if len(strings.TrimSpace(info.Address)) < minAddressLength {
		errs["address"] = "complete_address"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
