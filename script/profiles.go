package script

// VoiceProfile describes a delivery style the writer can aim for. The
// catalog is fixed and preloaded; exactly one profile is active at a time
// and the first entry is the default.
type VoiceProfile struct {
	ID          string   // Stable identifier
	Label       string   // Short display name
	Description string   // One-line summary of the delivery
	Suggestions []string // Writing prompts shown alongside the editor
}

// Profiles is the preloaded voice-profile catalog.
var Profiles = []VoiceProfile{
	{
		ID:          "warm-narrator",
		Label:       "Warm Narrator",
		Description: "Conversational, unhurried, like explaining to a friend",
		Suggestions: []string{
			"Open with a question the listener already has",
			"Keep sentences under fifteen words",
			"Land on a concrete image, not an abstraction",
		},
	},
	{
		ID:          "product-demo",
		Label:       "Product Demo",
		Description: "Confident and direct, benefit before feature",
		Suggestions: []string{
			"Name the outcome in the first sentence",
			"One capability per paragraph",
			"Close with the single next step",
		},
	},
	{
		ID:          "documentary",
		Label:       "Documentary",
		Description: "Measured and authoritative, lets the pauses work",
		Suggestions: []string{
			"Start in the middle of the action",
			"Prefer present tense",
			"Leave room after each fact for it to settle",
		},
	},
	{
		ID:          "energetic-promo",
		Label:       "Energetic Promo",
		Description: "Fast, punchy, built around a single hook",
		Suggestions: []string{
			"Hook inside the first five words",
			"Cut every qualifier",
			"End on the call to action, nothing after it",
		},
	},
}

// ProfileByID returns the profile with the given identifier, falling back
// to the first profile when the identifier is unknown.
func ProfileByID(id string) VoiceProfile {
	for _, p := range Profiles {
		if p.ID == id {
			return p
		}
	}
	return Profiles[0]
}
