package quiz

import (
	"regexp"
	"strings"
)

var orderingPrefix = regexp.MustCompile(`^\d+[_\-\s]*`)

// FormatTitle derives a display title from a quiz filename:
//
//	"03_cardiology.json"  -> "cardiology"
//	"anatomy_basics.json" -> "anatomy basics"
//	"7-pharm.json"        -> "pharm"
func FormatTitle(name string) string {
	name = strings.TrimSuffix(name, ".json")
	name = orderingPrefix.ReplaceAllString(name, "")
	return strings.ReplaceAll(name, "_", " ")
}
