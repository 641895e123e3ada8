package deck

// Card lists per deck language. Each pair names the two ends of the
// guessing axis.
var decks = map[string][][2]string{
	"en": cardsEN,
	"de": cardsDE,
}

var cardsEN = [][2]string{
	{"Hot", "Cold"},
	{"Underrated", "Overrated"},
	{"Scary", "Not scary"},
	{"Round", "Pointy"},
	{"Smells bad", "Smells good"},
	{"Rare", "Common"},
	{"Soft", "Hard"},
	{"Fragile", "Durable"},
	{"Cheap", "Expensive"},
	{"Guilty pleasure", "Openly loved"},
	{"Useless", "Useful"},
	{"Dry", "Wet"},
	{"Unhealthy", "Healthy"},
	{"Villain", "Hero"},
	{"Quiet", "Loud"},
	{"Difficult", "Easy"},
	{"Low calorie", "High calorie"},
	{"Feels bad", "Feels good"},
	{"Underpaid", "Overpaid"},
	{"Unforgivable", "Forgivable"},
	{"Dangerous", "Safe"},
	{"Dark", "Light"},
	{"Temporary", "Permanent"},
	{"Sad song", "Happy song"},
	{"Bad habit", "Good habit"},
	{"Normal", "Weird"},
	{"Small talk topic", "Deep conversation topic"},
	{"Dog person thing", "Cat person thing"},
	{"Mature", "Immature"},
	{"Boring", "Exciting"},
	{"Casual", "Formal"},
	{"Fantasy", "Sci-fi"},
	{"Movie was better", "Book was better"},
	{"Forgettable", "Memorable"},
	{"Tastes bad", "Tastes good"},
	{"Mainstream", "Niche"},
	{"Flexible", "Rigid"},
	{"Introvert activity", "Extrovert activity"},
	{"Low effort", "High effort"},
	{"Replaceable", "Irreplaceable"},
	{"Historically important", "Historically irrelevant"},
	{"Bad superpower", "Good superpower"},
	{"Slow", "Fast"},
	{"Smooth", "Rough"},
	{"Ugly", "Beautiful"},
	{"Worst day of the year", "Best day of the year"},
	{"Needs no instructions", "Needs instructions"},
	{"Overdressed", "Underdressed"},
	{"Morning thing", "Evening thing"},
	{"Art", "Not art"},
	{"Clean", "Dirty"},
	{"Traditional", "Modern"},
	{"Optional", "Mandatory"},
	{"Sport", "Not a sport"},
	{"Good pizza topping", "Bad pizza topping"},
	{"For kids", "For adults"},
	{"Hard to kill", "Easy to kill"},
	{"Sandwich", "Not a sandwich"},
	{"Lonely job", "Social job"},
	{"Bad first-date idea", "Good first-date idea"},
	{"Short-lived trend", "Here to stay"},
	{"Salty", "Sweet"},
	{"Luck", "Skill"},
	{"Worthless knowledge", "Priceless knowledge"},
}

var cardsDE = [][2]string{
	{"Heiß", "Kalt"},
	{"Unterschätzt", "Überschätzt"},
	{"Gruselig", "Harmlos"},
	{"Rund", "Spitz"},
	{"Selten", "Alltäglich"},
	{"Weich", "Hart"},
	{"Billig", "Teuer"},
	{"Nutzlos", "Nützlich"},
	{"Trocken", "Nass"},
	{"Leise", "Laut"},
	{"Schwierig", "Einfach"},
	{"Gefährlich", "Sicher"},
	{"Dunkel", "Hell"},
	{"Langweilig", "Aufregend"},
	{"Langsam", "Schnell"},
	{"Hässlich", "Schön"},
	{"Sauber", "Schmutzig"},
	{"Traditionell", "Modern"},
	{"Glück", "Können"},
	{"Vergesslich", "Unvergesslich"},
}
