package script

// Idea is a starter script from the read-only catalog. Selecting an idea
// replaces the current script with its body. Bodies are short markdown so
// the picker can render them nicely.
type Idea struct {
	Title string
	Body  string
}

// Ideas is the preloaded starter catalog.
var Ideas = []Idea{
	{
		Title: "App onboarding welcome",
		Body: `Welcome aboard. In the next thirty seconds you'll record your first
note, share it with your team, and see why we never went back to email.
Tap the plus button to begin.`,
	},
	{
		Title: "Podcast cold open",
		Body: `Three years ago, nobody in this town had heard of her. Today, every
bakery on the coast uses her recipe. This is the story of how one
stubborn idea survived **two hundred** rejections.`,
	},
	{
		Title: "Tutorial intro",
		Body: `In this video we'll set up the project from scratch. You don't need
anything installed yet. By the end you'll have a working build and know
exactly where to go next.`,
	},
	{
		Title: "Museum audio guide",
		Body: `Stop here for a moment. The canvas in front of you was painted in a
single night, by candlelight. Look at the lower left corner. That
smudge is the artist's own thumbprint.`,
	},
	{
		Title: "Meditation opening",
		Body: `Find a comfortable position and let your shoulders drop. There is
nowhere else you need to be. Breathe in slowly... and out. We'll begin
with three deep breaths together.`,
	},
}
