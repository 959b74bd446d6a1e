package checkout

import "strings"

// emirateCities keys the shipping city list by emirate. The UI resets the
// chosen city whenever the emirate changes; validation enforces the same
// constraint server-side.
var emirateCities = map[string][]string{
	"Abu Dhabi": {
		"Abu Dhabi City", "Al Ain", "Madinat Zayed", "Ruwais", "Khalifa City",
		"Mussafah", "Al Shamkha",
	},
	"Dubai": {
		"Deira", "Bur Dubai", "Jumeirah", "Al Barsha", "Dubai Marina",
		"Mirdif", "Al Quoz", "International City",
	},
	"Sharjah": {
		"Sharjah City", "Al Dhaid", "Khor Fakkan", "Kalba", "Al Nahda",
		"Muwaileh",
	},
	"Ajman": {
		"Ajman City", "Al Jurf", "Masfout",
	},
	"Umm Al Quwain": {
		"Umm Al Quwain City", "Falaj Al Mualla",
	},
	"Ras Al Khaimah": {
		"Ras Al Khaimah City", "Al Rams", "Khatt", "Al Jazirah Al Hamra",
	},
	"Fujairah": {
		"Fujairah City", "Dibba Al-Fujairah", "Masafi",
	},
}

// Emirates returns the known emirate names.
func Emirates() []string {
	names := make([]string, 0, len(emirateCities))
	for name := range emirateCities {
		names = append(names, name)
	}
	return names
}

// CitiesFor returns the shipping cities of an emirate, or nil when the
// emirate is unknown.
func CitiesFor(emirate string) []string {
	for name, cities := range emirateCities {
		if strings.EqualFold(name, emirate) {
			return cities
		}
	}
	return nil
}

// cityInEmirate reports whether city is a known shipping city of emirate.
func cityInEmirate(emirate, city string) bool {
	for _, c := range CitiesFor(emirate) {
		if strings.EqualFold(c, city) {
			return true
		}
	}
	return false
}
