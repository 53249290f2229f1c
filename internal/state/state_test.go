package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherplaces/internal/place"
)

func TestStoreDefaults(t *testing.T) {
	s := New("London", 51.5074, -0.1278)

	snap := s.Get()
	assert.Equal(t, "London", snap.LocationName)
	assert.Equal(t, 51.5074, snap.Latitude)
	assert.Equal(t, -0.1278, snap.Longitude)
	assert.Nil(t, snap.Weather)
	assert.False(t, snap.IsLoading)
	assert.Equal(t, TabCurrentWeather, snap.SelectedTab)
}

func TestUpdateIsAtomic(t *testing.T) {
	s := New("London", 51.5074, -0.1278)

	s.Update(func(snap *Snapshot) {
		snap.LocationName = "Paris"
		snap.Latitude = 48.8566
		snap.Longitude = 2.3522
		snap.Annotations = []place.Annotation{{Name: "Louvre"}}
		snap.Alert = Alert{Title: "Location Saved", Message: "Paris was saved successfully.", Visible: true}
	})

	snap := s.Get()
	assert.Equal(t, "Paris", snap.LocationName)
	assert.Equal(t, 48.8566, snap.Latitude)
	require.Len(t, snap.Annotations, 1)
	assert.True(t, snap.Alert.Visible)
}

func TestGetReturnsCopy(t *testing.T) {
	s := New("London", 51.5074, -0.1278)
	s.Update(func(snap *Snapshot) {
		snap.Annotations = []place.Annotation{{Name: "Big Ben"}}
	})

	snap := s.Get()
	snap.Annotations[0].Name = "mutated"

	assert.Equal(t, "Big Ben", s.Get().Annotations[0].Name)
}

func TestSubscribe(t *testing.T) {
	s := New("London", 51.5074, -0.1278)

	ch, cancel := s.Subscribe()
	defer cancel()

	s.Update(func(snap *Snapshot) {
		snap.LocationName = "Oslo"
	})

	select {
	case snap := <-ch:
		assert.Equal(t, "Oslo", snap.LocationName)
	case <-time.After(time.Second):
		t.Fatal("no state broadcast received")
	}
}

func TestSubscribeCancel(t *testing.T) {
	s := New("London", 51.5074, -0.1278)

	ch, cancel := s.Subscribe()
	cancel()

	_, open := <-ch
	assert.False(t, open, "channel should be closed after cancel")

	// Updating after cancel must not panic or block.
	s.Update(func(snap *Snapshot) { snap.SelectedTab = TabPlaceMap })
}
