package catalog

import (
	"fmt"
	"time"
)

// Default builds the event's challenge set against the configured start date.
// Challenge 0 is the warm-up and unlocks one interval before the event;
// challenge N unlocks N-1 intervals after the start.
func Default(start time.Time, interval time.Duration) *Catalog {
	unlock := func(n int) time.Time {
		return start.Add(time.Duration(n-1) * interval)
	}

	c, err := New([]Challenge{
		{
			ID:    0,
			Title: "🔍 Warm-up",
			Prompt: `TUTORIAL CHALLENGE

The federal fugitive-investigation division runs this exercise.

🧠 Your mission: name the acronym of the force this division belongs to.

📦 Submit the flag as: FLAG{WORD} or FLAG{WORD_WORD}.

💡 Hint: the force has national jurisdiction and wears blue.`,
			Flags:    []string{"FLAG{PFA}"},
			UnlockAt: unlock(0),
		},
		{
			ID:    1,
			Title: "📦 Challenge 1 - E-commerce Records",
			Prompt: `E-COMMERCE LOG ANALYSIS

A suspect places unusual orders on a retail portal. Several items are
commonly tied to illegal activity.

Your mission: from the purchase records, which illegal activity can be
inferred?

Answer format: FLAG{ACTIVITY} or FLAG{ACTIVITY_ACTIVITY}.`,
			Flags:        []string{"FLAG{DRUGS}", "FLAG{DRUG_TRAFFICKING}"},
			UnlockAt:     unlock(1),
			MaterialLink: "https://example.com/challenge1.xlsx",
		},
		{
			ID:    2,
			Title: "📞 Challenge 2 - Call Records",
			Prompt: `CALL DETAIL RECORD ANALYSIS

Cell-tower movements from the records of the fugitive's spouse may reveal
her home neighbourhood.

Your mission: in which neighbourhood is the spouse's residence?

Answer format: FLAG{NEIGHBOURHOOD}.

💡 Hint: night-time connections usually mark the place of residence.`,
			Flags:        []string{"FLAG{CABALLITO}"},
			UnlockAt:     unlock(2),
			MaterialLink: "https://example.com/challenge2.xlsx",
		},
		{
			ID:    3,
			Title: "🚗 Challenge 3 - Traffic Cameras",
			Prompt: `VEHICLE MOVEMENT ANALYSIS

A vehicle of interest repeats the same routes, except on specific dates when
it deviates.

Your mission: on which main street does the vehicle leave its usual route?

Answer format: FLAG{STREET} or FLAG{STREET_STREET}.`,
			Flags:        []string{"FLAG{AV_ALVAREZ_THOMAS}"},
			UnlockAt:     unlock(3),
			MaterialLink: "https://example.com/challenge3.xlsx",
		},
		{
			ID:    4,
			Title: "📸 Challenge 4 - Social Media",
			Prompt: `SOCIAL PROFILE ANALYSIS

The fugitive's brother posts freely. Backgrounds, locations and hashtags all
point somewhere.

Your mission: in which neighbourhood does the brother live?

Answer format: FLAG{NEIGHBOURHOOD}.`,
			Flags:        []string{"FLAG{URQUIZA}"},
			UnlockAt:     unlock(4),
			MaterialLink: "https://example.com/challenge4",
		},
		{
			ID:    5,
			Title: "🔗 Challenge 5 - The Final Connection",
			Prompt: `SOURCE INTEGRATION

The previous findings connect. New court orders added the missing pieces.

Your mission: what is the name of the warehouse used by the suspects?

Answer format: FLAG{WAREHOUSE} or FLAG{WAREHOUSE_WAREHOUSE}.

💡 Hint: the warehouse shows up in more than one source.`,
			Flags:        []string{"FLAG{MAHALO_HERMANOS}"},
			UnlockAt:     unlock(5),
			MaterialLink: "https://example.com/challenge5.xlsx",
		},
	})
	if err != nil {
		// The built-in set is static; a validation failure here is a
		// programming error, not a runtime condition.
		panic(fmt.Sprintf("invalid built-in catalog: %v", err))
	}
	return c
}
