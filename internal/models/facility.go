// Package models defines the typed domain entities for the cleanlog database.
package models

import (
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// AreaClass is the hygiene classification of a facility.
type AreaClass string

const (
	AreaCritical     AreaClass = "critical"
	AreaSemiCritical AreaClass = "semi_critical"
	AreaNonCritical  AreaClass = "non_critical"
	AreaUnspecified  AreaClass = "unspecified"
)

// Label returns the human-readable label for the area class.
// Unmapped values fall back to "unspecified".
func (a AreaClass) Label() string {
	switch a {
	case AreaCritical:
		return "critical"
	case AreaSemiCritical:
		return "semi-critical"
	case AreaNonCritical:
		return "non-critical"
	default:
		return "unspecified"
	}
}

// Facility represents a tracked location with a cleaning history.
type Facility struct {
	ID   surrealmodels.RecordID `json:"id"`
	Name string                 `json:"name"`
	Code string                 `json:"code,omitempty"`
	Area AreaClass              `json:"area,omitempty"`
}

// FacilityMatch is a facility candidate returned by the ranked match
// query. Score is the BM25 relevance score and is only meaningful
// during resolution.
type FacilityMatch struct {
	Facility
	Score float64 `json:"score"`
}

// FacilityCount pairs a facility name with a history-entry count.
type FacilityCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
