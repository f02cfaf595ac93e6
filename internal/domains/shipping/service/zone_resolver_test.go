package service_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"marketplace-backend/internal/domains/shipping/model"
	"marketplace-backend/internal/domains/shipping/service"
)

func TestZoneResolver_Defaults(t *testing.T) {
	resolver := service.NewZoneResolver()

	tests := []struct {
		name   string
		region string
		city   string
		want   model.Zone
	}{
		{"core area", "Greater Accra", "Osu", model.ZoneA},
		{"core area without region", "", "East Legon", model.ZoneA},
		{"metro region", "Greater Accra", "Tema", model.ZoneB},
		{"metro region unknown city", "Greater Accra", "Dodowa", model.ZoneB},
		{"city only accra", "", "Accra", model.ZoneA},
		{"city only satellite", "", "Kasoa", model.ZoneB},
		{"unknown region", "Ashanti", "Kumasi", model.ZoneC},
		{"unknown city only", "", "Tamale", model.ZoneC},
		{"nothing", "", "", model.ZoneC},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, resolver.Resolve(tt.region, tt.city))
		})
	}
}

func TestZoneResolver_NormalizesInput(t *testing.T) {
	resolver := service.NewZoneResolver()

	// Case và whitespace không được ảnh hưởng kết quả
	require.Equal(t, model.ZoneA, resolver.Resolve("", "  osu  "))
	require.Equal(t, model.ZoneB, resolver.Resolve("GREATER   ACCRA", ""))
	require.Equal(t, model.ZoneA, resolver.Resolve("", "east LEGON"))
}

func TestZoneResolver_Total(t *testing.T) {
	resolver := service.NewZoneResolver()

	// Mọi input đều phải ra một zone hợp lệ
	inputs := [][2]string{
		{"", ""},
		{"%%%", "###"},
		{"Greater Accra", ""},
		{"", "NoSuchTown"},
	}

	for _, in := range inputs {
		zone := resolver.Resolve(in[0], in[1])
		require.True(t, zone.IsValid(), "input %v produced invalid zone %q", in, zone)
	}
}

func TestZoneResolver_SetMappingsOverlay(t *testing.T) {
	resolver := service.NewZoneResolver()

	resolver.SetMappings([]*model.ZoneMapping{
		{MatchType: model.ZoneMatchCity, Name: "Koforidua", Zone: model.ZoneB},
		{MatchType: model.ZoneMatchRegion, Name: "Eastern", Zone: model.ZoneB},
		{MatchType: model.ZoneMatchCoreArea, Name: "Dansoman", Zone: model.ZoneA},
	})

	require.Equal(t, model.ZoneB, resolver.Resolve("", "Koforidua"))
	require.Equal(t, model.ZoneB, resolver.Resolve("Eastern", "Koforidua"))
	require.Equal(t, model.ZoneA, resolver.Resolve("", "Dansoman"))

	// Defaults vẫn còn sau overlay
	require.Equal(t, model.ZoneA, resolver.Resolve("", "Osu"))
}

func TestZoneResolver_SetMappingsIgnoresInvalid(t *testing.T) {
	resolver := service.NewZoneResolver()

	resolver.SetMappings([]*model.ZoneMapping{
		{MatchType: model.ZoneMatchCity, Name: "", Zone: model.ZoneB},
		{MatchType: model.ZoneMatchCity, Name: "Winneba", Zone: model.Zone("X")},
	})

	require.Equal(t, model.ZoneC, resolver.Resolve("", "Winneba"))
}
