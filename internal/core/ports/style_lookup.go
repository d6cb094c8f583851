package ports

import "go.trai.ch/starmap/internal/core/domain"

// StyleLookup answers typed style queries. Unknown keys yield zero values.
//
//go:generate mockgen -source=style_lookup.go -destination=mocks/mock_style_lookup.go -package=mocks
type StyleLookup interface {
	BorderStyle(key string) domain.BorderStyle
	RouteStyle(key string) domain.RouteStyle
	BorderKeys() []string
	RouteKeys() []string
}
