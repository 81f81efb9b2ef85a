package export

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sanitrack/cleanlog-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatterColumns(t *testing.T) {
	ctx := context.Background()
	facility := testFacility("room_5a", "Room 5 (A)", models.AreaCritical)
	at := time.Date(2025, 6, 14, 9, 30, 0, 0, time.UTC)

	dir := &fakeDirectory{labels: map[string]string{"operator:op_ana": "Ana Ribeiro"}}
	f := NewFormatter(dir, nil)

	entry := testEntry("room_5a", at, "op_ana")
	entry.Disinfectant = true
	entry.Terminal = true
	entry.Observation = "spill near door"

	row, err := f.Row(ctx, facility, entry)
	require.NoError(t, err)
	require.Len(t, row, len(Columns))

	assert.Equal(t, "Room 5 (A)", row[0])
	assert.Equal(t, "room_5a", row[1])
	assert.Equal(t, "critical", row[2])
	assert.Equal(t, "14/06/2025 09:30", row[3])
	assert.Equal(t, "09:30", row[4])
	assert.Equal(t, "10:00", row[5])
	assert.Equal(t, "yes", row[6])  // detergent
	assert.Equal(t, "yes", row[7])  // disinfectant
	assert.Equal(t, "no", row[8])   // wiper
	assert.Equal(t, "yes", row[9])  // mop
	assert.Equal(t, "no", row[10])  // concurrent
	assert.Equal(t, "yes", row[11]) // terminal
	assert.Equal(t, "Ana Ribeiro", row[12])
	assert.Equal(t, "spill near door", row[13])
}

func TestFormatterFallbacks(t *testing.T) {
	ctx := context.Background()
	facility := testFacility("hall", "Hallway", models.AreaClass("weird"))
	at := time.Date(2025, 6, 14, 9, 30, 0, 0, time.UTC)

	f := NewFormatter(&fakeDirectory{}, nil)

	entry := models.HistoryEntry{
		ID:       testEntry("hall", at, "").ID,
		Facility: facilityID("hall"),
		At:       at,
	}

	row, err := f.Row(ctx, facility, entry)
	require.NoError(t, err)

	assert.Equal(t, "unspecified", row[2]) // unmapped area class
	assert.Equal(t, "N/A", row[4])         // missing start
	assert.Equal(t, "N/A", row[5])         // missing end
	assert.Equal(t, "unknown", row[12])    // no operator reference
	assert.Equal(t, "", row[13])           // no observation
}

func TestFormatterOperatorCache(t *testing.T) {
	ctx := context.Background()
	facility := testFacility("room_5a", "Room 5 (A)", models.AreaCritical)
	at := time.Date(2025, 6, 14, 9, 30, 0, 0, time.UTC)

	t.Run("each operator looked up once per job", func(t *testing.T) {
		dir := &fakeDirectory{labels: map[string]string{
			"operator:op_ana":  "Ana Ribeiro",
			"operator:op_joao": "João Mendes",
		}}
		f := NewFormatter(dir, nil)

		for i := 0; i < 5; i++ {
			_, err := f.Row(ctx, facility, testEntry("room_5a", at.Add(time.Duration(i)*time.Hour), "op_ana"))
			require.NoError(t, err)
		}
		_, err := f.Row(ctx, facility, testEntry("room_5a", at, "op_joao"))
		require.NoError(t, err)

		assert.Equal(t, 1, dir.lookups["operator:op_ana"])
		assert.Equal(t, 1, dir.lookups["operator:op_joao"])
	})

	t.Run("lookup failure degrades to unknown and is cached", func(t *testing.T) {
		dir := &fakeDirectory{err: errors.New("timeout")}
		f := NewFormatter(dir, nil)

		row, err := f.Row(ctx, facility, testEntry("room_5a", at, "op_ana"))
		require.NoError(t, err)
		assert.Equal(t, "unknown", row[12])

		_, err = f.Row(ctx, facility, testEntry("room_5a", at.Add(time.Hour), "op_ana"))
		require.NoError(t, err)
		assert.Equal(t, 1, dir.lookups["operator:op_ana"])
	})
}

func TestFormatterMalformedEntry(t *testing.T) {
	ctx := context.Background()
	facility := testFacility("room_5a", "Room 5 (A)", models.AreaCritical)
	f := NewFormatter(&fakeDirectory{}, nil)

	entry := models.HistoryEntry{Facility: facilityID("room_5a")} // zero timestamp

	_, err := f.Row(ctx, facility, entry)

	var fe *FormattingError
	require.ErrorAs(t, err, &fe)
}
