package script

import "testing"

// TestProfileCatalog tests that the documented profile identifiers all
// resolve to their own entries, so a configured ID never silently falls
// back to the default.
func TestProfileCatalog(t *testing.T) {
	want := []string{"warm-narrator", "product-demo", "documentary", "energetic-promo"}

	if len(Profiles) != len(want) {
		t.Fatalf("len(Profiles) = %d, want %d", len(Profiles), len(want))
	}
	for i, id := range want {
		if Profiles[i].ID != id {
			t.Errorf("Profiles[%d].ID = %q, want %q", i, Profiles[i].ID, id)
		}
		if got := ProfileByID(id); got.ID != id {
			t.Errorf("ProfileByID(%q) resolved to %q", id, got.ID)
		}
	}
}

// TestProfileByIDFallback tests that an unknown identifier falls back to
// the first profile.
func TestProfileByIDFallback(t *testing.T) {
	if got := ProfileByID("no-such-profile"); got.ID != Profiles[0].ID {
		t.Errorf("ProfileByID(unknown) = %q, want default %q", got.ID, Profiles[0].ID)
	}
	if got := ProfileByID(""); got.ID != Profiles[0].ID {
		t.Errorf("ProfileByID(\"\") = %q, want default %q", got.ID, Profiles[0].ID)
	}
}
