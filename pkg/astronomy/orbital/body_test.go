package orbital

import "testing"

func TestBodyCatalogLookup(t *testing.T) {
	c := NewBodyCatalog([]OrbitalBodyProfile{earth, mars,
		{ID: "Luna", OrbitalPeriodDays: 27.32, SemiMajorAxisAU: 1.0},
	}, map[string]string{"moon": "luna"})

	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}
	for _, id := range []string{"earth", "EARTH", " mars ", "luna", "Moon"} {
		if _, ok := c.Lookup(id); !ok {
			t.Errorf("Lookup(%q) failed", id)
		}
	}
	if _, ok := c.Lookup("pluto"); ok {
		t.Error("Lookup(pluto) should fail")
	}
	all := c.All()
	if all[0].ID != "earth" || all[2].ID != "mars" {
		t.Errorf("All() not sorted: %v", all)
	}
}

func TestBodyCatalogPanics(t *testing.T) {
	tests := []struct {
		name     string
		profiles []OrbitalBodyProfile
		aliases  map[string]string
	}{
		{"negative period", []OrbitalBodyProfile{{ID: "x", OrbitalPeriodDays: -1, SemiMajorAxisAU: 1}}, nil},
		{"zero axis", []OrbitalBodyProfile{{ID: "x", OrbitalPeriodDays: 10, SemiMajorAxisAU: 0}}, nil},
		{"empty id", []OrbitalBodyProfile{{ID: " ", OrbitalPeriodDays: 10, SemiMajorAxisAU: 1}}, nil},
		{"duplicate", []OrbitalBodyProfile{earth, {ID: "Earth", OrbitalPeriodDays: 1, SemiMajorAxisAU: 1}}, nil},
		{"dangling alias", []OrbitalBodyProfile{earth}, map[string]string{"moon": "luna"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic")
				}
			}()
			NewBodyCatalog(tt.profiles, tt.aliases)
		})
	}
}
