// internal/pkg/producturl/producturl.go
package producturl

import (
	"net/url"
	"strings"
)

// SelectedOption is a product option name/value pair chosen by the shopper.
type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Path returns the canonical product page path for a handle.
func Path(handle string) string {
	return "/products/" + handle
}

// Query encodes selected options as a query string in option order,
// e.g. "Color=Red&Size=M". Option order is preserved so the result is
// stable across requests for the same variant.
func Query(options []SelectedOption) string {
	var b strings.Builder
	for i, opt := range options {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(opt.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(opt.Value))
	}
	return b.String()
}

// WithOptions returns the product path for a handle with the selected
// options encoded as query parameters.
func WithOptions(handle string, options []SelectedOption) string {
	query := Query(options)
	if query == "" {
		return Path(handle)
	}
	return Path(handle) + "?" + query
}

// Merge overlays option values onto existing query values. Parameters that
// are not option names are kept untouched so pagination, tracking and
// preview parameters survive variant switches.
func Merge(existing url.Values, options []SelectedOption) url.Values {
	merged := url.Values{}
	for key, values := range existing {
		merged[key] = append([]string(nil), values...)
	}
	for _, opt := range options {
		merged.Set(opt.Name, opt.Value)
	}
	return merged
}

// FromQuery extracts option name/value pairs from query values, given the
// option names the product defines. Unrelated parameters are ignored.
func FromQuery(values url.Values, optionNames []string) []SelectedOption {
	var options []SelectedOption
	for _, name := range optionNames {
		if value := values.Get(name); value != "" {
			options = append(options, SelectedOption{Name: name, Value: value})
		}
	}
	return options
}

// ParseQuery extracts every query parameter as a selected option, in the
// order the parameters appear in the URL. url.Values would lose that order,
// and option order must survive a round trip through WithOptions. Pairs that
// fail to unescape are skipped.
func ParseQuery(rawQuery string) []SelectedOption {
	var options []SelectedOption
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		name, value, _ := strings.Cut(pair, "=")
		decodedName, err := url.QueryUnescape(name)
		if err != nil || decodedName == "" {
			continue
		}
		decodedValue, err := url.QueryUnescape(value)
		if err != nil {
			continue
		}
		options = append(options, SelectedOption{Name: decodedName, Value: decodedValue})
	}
	return options
}
