package zones

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZoneName(t *testing.T) {
	tests := []struct {
		zone Zone
		name string
		ok   bool
	}{
		{Zone{AreaHQ}, "HQ", true},
		{Zone{AreaRD}, "R&D", true},
		{Zone{AreaArchives}, "Archives", true},
		{Zone{AreaSites}, "Sites", true},
		{Locale(1), "Locale 1", true},
		{Locale(12), "Locale 12", true},
		{Zone{AreaLocale, "0"}, "", false},
		{Zone{AreaLocale, "x"}, "", false},
		{Zone{"battlefield"}, "", false},
		{Zone{AreaRig, "program"}, "", false},
		{nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.zone.Key(), func(t *testing.T) {
			name, ok := tt.zone.Name()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.name, name)
		})
	}
}

func TestZoneSortKey(t *testing.T) {
	sites, _ := Zone{AreaSites}.SortKey()
	archives, _ := Zone{AreaArchives}.SortKey()
	rd, _ := Zone{AreaRD}.SortKey()
	hq, _ := Zone{AreaHQ}.SortKey()

	assert.Equal(t, -4, sites)
	assert.Equal(t, -3, archives)
	assert.Equal(t, -2, rd)
	assert.Equal(t, -1, hq)

	// Every locale ranks after every central zone.
	locale1, ok := Locale(1).SortKey()
	assert.True(t, ok)
	assert.Greater(t, locale1, hq)

	_, ok = Zone{"nowhere"}.SortKey()
	assert.False(t, ok)
}

func TestSortedZoneNames(t *testing.T) {
	zs := []Zone{
		Zone{AreaSites},
		Zone{AreaArchives},
		Zone{AreaRD},
		Zone{AreaHQ},
		Locale(2),
		Locale(1),
	}
	assert.Equal(t,
		[]string{"Sites", "Archives", "R&D", "HQ", "Locale 1", "Locale 2"},
		SortedZoneNames(zs),
	)
}

func TestSortedZoneNames_DropsUnrecognized(t *testing.T) {
	zs := []Zone{Zone{"limbo"}, Zone{AreaHQ}, Zone{AreaLocale, "-3"}}
	assert.Equal(t, []string{"HQ"}, SortedZoneNames(zs))
}

func TestIsPartyIsCentral(t *testing.T) {
	assert.True(t, Zone{AreaHQ}.IsCentral())
	assert.False(t, Zone{AreaHQ}.IsParty())
	assert.True(t, Locale(4).IsParty())
	assert.False(t, Locale(4).IsCentral())
	assert.False(t, Zone{AreaRig, "hardware"}.IsCentral())
	assert.False(t, Zone{AreaLocale}.IsParty())
}

func TestCentralToZone(t *testing.T) {
	tests := []struct {
		intent string
		want   Zone
		ok     bool
	}{
		{"location", Zone{AreaSites}, true},
		{"discard", Zone{AreaArchives}, true},
		{"hand", Zone{AreaHQ}, true},
		{"deck", Zone{AreaRD}, true},
		{"battlefield", nil, false},
		{"", nil, false},
	}

	for _, tt := range tests {
		z, ok := CentralToZone(tt.intent)
		assert.Equal(t, tt.ok, ok, tt.intent)
		assert.True(t, z.Equal(tt.want), tt.intent)
	}
}

func TestTypeToRigZone(t *testing.T) {
	assert.True(t, TypeToRigZone("Program").Equal(Zone{AreaRig, "program"}))
	assert.True(t, TypeToRigZone("HARDWARE").Equal(Zone{AreaRig, "hardware"}))
}

func TestLocaleType(t *testing.T) {
	kind, ok := LocaleType(Zone{AreaArchives})
	assert.True(t, ok)
	assert.Equal(t, "central", kind)

	kind, ok = LocaleType(Locale(7))
	assert.True(t, ok)
	assert.Equal(t, "locale", kind)

	_, ok = LocaleType(Zone{AreaRig, "program"})
	assert.False(t, ok)
}

func TestZoneCopyIndependence(t *testing.T) {
	orig := Locale(2)
	cpy := orig.Copy()
	cpy[1] = "9"
	assert.Equal(t, "2", orig[1])
}
