package validators

import "strings"

// The directory's fixed category set.
var Categories = []string{
	"restaurant",
	"retail",
	"healthcare",
	"education",
	"technology",
	"finance",
	"automotive",
	"beauty",
	"home",
	"professional",
}

func IsValidCategory(category string) bool {
	category = strings.ToLower(strings.TrimSpace(category))
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
