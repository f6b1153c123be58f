// Package category is the static registry of transaction categories and
// their display metadata.
package category

// Meta holds the display tokens attached to a category.
type Meta struct {
	Icon      string `json:"icon"`
	TextColor string `json:"textColor"`
	FillColor string `json:"fillColor"`
}

const (
	Salary        = "salary"
	Freelance     = "freelance"
	Food          = "food"
	Transport     = "transport"
	Shopping      = "shopping"
	Entertainment = "entertainment"
	Bills         = "bills"
	Other         = "other"
)

// keys is the canonical registry order, used for stable iteration.
var keys = []string{
	Salary,
	Freelance,
	Food,
	Transport,
	Shopping,
	Entertainment,
	Bills,
	Other,
}

var registry = map[string]Meta{
	Salary:        {Icon: "money-check-dollar", TextColor: "text-green-600", FillColor: "bg-green-600"},
	Freelance:     {Icon: "laptop-code", TextColor: "text-info", FillColor: "bg-info"},
	Food:          {Icon: "utensils", TextColor: "text-warning", FillColor: "bg-warning"},
	Transport:     {Icon: "bus", TextColor: "text-yellow-500", FillColor: "bg-yellow-500"},
	Shopping:      {Icon: "shopping-bag", TextColor: "text-indigo-600", FillColor: "bg-indigo-600"},
	Entertainment: {Icon: "film", TextColor: "text-orange-500", FillColor: "bg-orange-500"},
	Bills:         {Icon: "file-invoice-dollar", TextColor: "text-secondary", FillColor: "bg-secondary"},
	Other:         {Icon: "question-circle", TextColor: "text-gray-600", FillColor: "bg-gray-600"},
}

// Keys returns every registered category key in canonical order.
func Keys() []string {
	return append([]string(nil), keys...)
}

// IsRegistered reports whether key names a known category.
func IsRegistered(key string) bool {
	_, ok := registry[key]
	return ok
}

// Lookup returns the display metadata for key, falling back to the
// `other` entry for anything unregistered.
func Lookup(key string) Meta {
	if m, ok := registry[key]; ok {
		return m
	}
	return registry[Other]
}

// Bucket maps a category to its aggregate bucket: the key itself when
// registered, otherwise `other`. The transaction keeps its literal
// category for display; only the aggregates fold.
func Bucket(key string) string {
	if IsRegistered(key) {
		return key
	}
	return Other
}
