package tracking

import (
	"regexp"
	"time"
)

var (
	asinPattern    = regexp.MustCompile(`^[A-Z0-9]{10}$`)
	countryPattern = regexp.MustCompile(`^[A-Z]{2}$`)
)

func ValidASIN(asin string) bool {
	return asinPattern.MatchString(asin)
}

func ValidCountryCode(code string) bool {
	return countryPattern.MatchString(code)
}

// Click is one affiliate link click. The caller's address is stored
// only as a hash.
type Click struct {
	ID                  string
	ASIN                string
	ProductName         string
	Category            string
	Country             string
	Timezone            string
	Source              string
	Campaign            string
	EstimatedCommission float64
	IPHash              string
	UserAgent           string
	ClickedAt           time.Time
}

// ClickStats is the admin dashboard aggregate.
type ClickStats struct {
	Total           int     `json:"total"`
	Last24h         int     `json:"last24h"`
	TopASIN         string  `json:"topAsin"`
	TotalCommission float64 `json:"totalCommission"`
}
