package export

import (
	"context"
	"sort"
	"time"

	"github.com/sanitrack/cleanlog-go/internal/models"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// fakeMatcher returns a fixed candidate list.
type fakeMatcher struct {
	matches []models.FacilityMatch
	err     error
}

func (m *fakeMatcher) MatchFacilities(ctx context.Context, query string, limit int) ([]models.FacilityMatch, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.matches) > limit {
		return m.matches[:limit], nil
	}
	return m.matches, nil
}

// fakePager serves pages out of an in-memory history map, applying the
// window filter and newest-first ordering the real store pushes into
// the query.
type fakePager struct {
	entries map[string][]models.HistoryEntry // keyed by facility id
	err     error
	calls   int
}

func (p *fakePager) HistoryPage(ctx context.Context, facility surrealmodels.RecordID, window Window, limit, offset int) ([]models.HistoryEntry, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}

	var filtered []models.HistoryEntry
	for _, e := range p.entries[models.RecordRef(facility)] {
		if window.Contains(e.At) {
			filtered = append(filtered, e)
		}
	}
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].At.After(filtered[j].At)
	})

	if offset >= len(filtered) {
		return nil, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], nil
}

// fakeDirectory counts lookups per operator reference.
type fakeDirectory struct {
	labels  map[string]string
	err     error
	lookups map[string]int
}

func (d *fakeDirectory) OperatorLabel(ctx context.Context, operator surrealmodels.RecordID) (string, error) {
	if d.lookups == nil {
		d.lookups = make(map[string]int)
	}
	d.lookups[models.RecordRef(operator)]++
	if d.err != nil {
		return "", d.err
	}
	return d.labels[models.RecordRef(operator)], nil
}

func facilityID(id string) surrealmodels.RecordID {
	return surrealmodels.NewRecordID("facility", id)
}

func operatorID(id string) surrealmodels.RecordID {
	return surrealmodels.NewRecordID("operator", id)
}

func testFacility(id, name string, area models.AreaClass) models.Facility {
	return models.Facility{ID: facilityID(id), Name: name, Code: id, Area: area}
}

func testEntry(facility string, at time.Time, operator string) models.HistoryEntry {
	e := models.HistoryEntry{
		ID:        surrealmodels.NewRecordID("history", facility+at.Format("20060102150405")),
		Facility:  facilityID(facility),
		At:        at,
		Start:     at.Format("15:04"),
		End:       at.Add(30 * time.Minute).Format("15:04"),
		Detergent: true,
		Mop:       true,
	}
	if operator != "" {
		op := operatorID(operator)
		e.Operator = &op
	}
	return e
}
