package stylesheet

import (
	_ "embed"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/starmap/internal/core/domain"
	"go.trai.ch/zerr"
)

//go:embed default.css
var defaultSheet string

const (
	borderPrefix = "border."
	routePrefix  = "route."
)

// property is a recognised style property.
type property int

const (
	propertyColor property = iota
	propertyStyle
	propertyWidth
)

var propertyNames = map[string]property{
	"color": propertyColor,
	"style": propertyStyle,
	"width": propertyWidth,
}

// typed resolves the recognised properties of a rule. Unknown names are
// ignored.
func typed(props Properties) map[property]string {
	out := make(map[property]string, len(propertyNames))
	for name, value := range props {
		if p, ok := propertyNames[name]; ok {
			out[p] = value
		}
	}
	return out
}

// Store holds the border and route style tables derived from a sheet.
// It is read-only after construction.
type Store struct {
	borders map[string]domain.BorderStyle
	routes  map[string]domain.RouteStyle
}

// NewStore derives the style tables from sheet. Selectors of the form
// border.<name> and route.<name> are kept; everything else is ignored.
func NewStore(sheet Sheet) *Store {
	s := &Store{
		borders: make(map[string]domain.BorderStyle),
		routes:  make(map[string]domain.RouteStyle),
	}
	for selector, props := range sheet {
		values := typed(props)
		switch {
		case strings.HasPrefix(selector, borderPrefix) && len(selector) > len(borderPrefix):
			s.borders[selector[len(borderPrefix):]] = domain.BorderStyle{
				Color: values[propertyColor],
				Style: domain.ParseLineStyle(values[propertyStyle]),
			}
		case strings.HasPrefix(selector, routePrefix) && len(selector) > len(routePrefix):
			route := domain.RouteStyle{
				Color: values[propertyColor],
				Style: domain.ParseLineStyle(values[propertyStyle]),
			}
			if w, ok := values[propertyWidth]; ok {
				if width, err := strconv.ParseFloat(w, 64); err == nil {
					route.Width = width
					route.HasWidth = true
				}
			}
			s.routes[selector[len(routePrefix):]] = route
		}
	}
	return s
}

// Default returns the store built from the embedded stylesheet.
func Default() (*Store, error) {
	return FromString(defaultSheet)
}

// FromString parses text and builds a store from it.
func FromString(text string) (*Store, error) {
	sheet, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return NewStore(sheet), nil
}

// Load builds a store from the stylesheet at path, or from the embedded
// sheet when path is empty.
func Load(path string) (*Store, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrStyleSheetReadFailed, err.Error()), "path", path)
	}
	store, err := FromString(string(data))
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return store, nil
}

// BorderStyle returns the style of the named border group. Unknown names
// yield the zero style.
func (s *Store) BorderStyle(key string) domain.BorderStyle {
	return s.borders[key]
}

// RouteStyle returns the style of the named route group. Unknown names
// yield the zero style.
func (s *Store) RouteStyle(key string) domain.RouteStyle {
	return s.routes[key]
}

// BorderKeys returns the names of all border groups, sorted.
func (s *Store) BorderKeys() []string {
	return sortedKeys(s.borders)
}

// RouteKeys returns the names of all route groups, sorted.
func (s *Store) RouteKeys() []string {
	return sortedKeys(s.routes)
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
