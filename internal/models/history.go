package models

import (
	"fmt"
	"time"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// HistoryEntry is one recorded cleaning event for a facility.
type HistoryEntry struct {
	ID       surrealmodels.RecordID  `json:"id"`
	Facility surrealmodels.RecordID  `json:"facility"`
	At       time.Time               `json:"at"`
	Start    string                  `json:"start_time,omitempty"`
	End      string                  `json:"end_time,omitempty"`

	// Supply checks recorded with the cleaning.
	Detergent    bool `json:"detergent"`
	Disinfectant bool `json:"disinfectant"`
	Wiper        bool `json:"wiper"`
	Mop          bool `json:"mop"`

	Concurrent bool `json:"concurrent"`
	Terminal   bool `json:"terminal"`

	Observation string                  `json:"observation,omitempty"`
	Operator    *surrealmodels.RecordID `json:"operator,omitempty"`
}

// RawHistory mirrors a history document as stored, with every field
// optional. Documents are validated into HistoryEntry at the retrieval
// boundary instead of being trusted as-is.
type RawHistory struct {
	ID       *surrealmodels.RecordID `json:"id"`
	Facility *surrealmodels.RecordID `json:"facility"`
	At       *time.Time              `json:"at"`
	Start    *string                 `json:"start_time"`
	End      *string                 `json:"end_time"`

	Detergent    *bool `json:"detergent"`
	Disinfectant *bool `json:"disinfectant"`
	Wiper        *bool `json:"wiper"`
	Mop          *bool `json:"mop"`

	Concurrent *bool `json:"concurrent"`
	Terminal   *bool `json:"terminal"`

	Observation *string                 `json:"observation"`
	Operator    *surrealmodels.RecordID `json:"operator"`
}

// Entry validates the raw document and converts it to a HistoryEntry.
// ID, facility and timestamp are required; everything else defaults to
// its zero value.
func (r RawHistory) Entry() (HistoryEntry, error) {
	if r.ID == nil {
		return HistoryEntry{}, fmt.Errorf("history record missing id")
	}
	if r.Facility == nil {
		return HistoryEntry{}, fmt.Errorf("history record %v missing facility", *r.ID)
	}
	if r.At == nil {
		return HistoryEntry{}, fmt.Errorf("history record %v missing timestamp", *r.ID)
	}

	e := HistoryEntry{
		ID:       *r.ID,
		Facility: *r.Facility,
		At:       *r.At,
		Operator: r.Operator,
	}
	if r.Start != nil {
		e.Start = *r.Start
	}
	if r.End != nil {
		e.End = *r.End
	}
	if r.Detergent != nil {
		e.Detergent = *r.Detergent
	}
	if r.Disinfectant != nil {
		e.Disinfectant = *r.Disinfectant
	}
	if r.Wiper != nil {
		e.Wiper = *r.Wiper
	}
	if r.Mop != nil {
		e.Mop = *r.Mop
	}
	if r.Concurrent != nil {
		e.Concurrent = *r.Concurrent
	}
	if r.Terminal != nil {
		e.Terminal = *r.Terminal
	}
	if r.Observation != nil {
		e.Observation = *r.Observation
	}
	return e, nil
}

// Operator is a member of the cleaning staff referenced by history entries.
type Operator struct {
	ID   surrealmodels.RecordID `json:"id"`
	Name string                 `json:"name"`
}
