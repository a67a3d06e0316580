package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoevodin/hall-booking-service/pkg/types"
)

func TestResolveSlot_Vocabulary(t *testing.T) {
	tests := []struct {
		key   SlotKey
		start types.TimeString
		end   types.TimeString
	}{
		{SlotMorning, "10:00", "14:00"},
		{SlotEvening, "14:00", "18:00"},
		{SlotNight, "18:00", "22:00"},
		{SlotFullDay, "10:00", "18:00"},
		{SlotHalfDayMorning, "10:00", "14:00"},
		{SlotHalfDayEvening, "14:00", "18:00"},
		{SlotShortDuration, "10:00", "18:00"},
		{SlotNoon, "12:00", "17:00"},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			r, err := ResolveSlot(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.start, r.Start)
			assert.Equal(t, tt.end, r.End)
		})
	}
}

func TestResolveSlot_UnknownKey(t *testing.T) {
	for _, key := range []SlotKey{"", "midnight", "FULL_DAY", "morning "} {
		_, err := ResolveSlot(key)
		require.Error(t, err, "key %q must not resolve", key)
		assert.True(t, errors.Is(err, ErrUnknownSlot))
	}
}

func TestResolveSlot_Deterministic(t *testing.T) {
	first, err := ResolveSlot(SlotMorning)
	require.NoError(t, err)
	second, err := ResolveSlot(SlotMorning)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSlotKey_AllowsCustomTimes(t *testing.T) {
	assert.True(t, SlotShortDuration.AllowsCustomTimes())

	for _, key := range []SlotKey{SlotMorning, SlotEvening, SlotNight, SlotFullDay, SlotHalfDayMorning, SlotHalfDayEvening, SlotNoon} {
		assert.False(t, key.AllowsCustomTimes(), "slot %q must not allow custom times", key)
	}
}

func TestCatalogSlots_ExcludesLegacyNoon(t *testing.T) {
	slots := CatalogSlots()
	assert.Len(t, slots, 7)
	assert.NotContains(t, slots, SlotNoon)

	// Каждый слот каталога резолвится
	for _, key := range slots {
		_, err := ResolveSlot(key)
		assert.NoError(t, err)
	}
}
