package schema

// DecksDeckTable represents the 'decks.deck' table
type DecksDeckTable struct {
	Table   string
	ID      string
	UserID  string
	Name    string
	Main    string
	Egg     string
	Status  string
	MTime   string
	Created string
}

// DecksDeck is the schema definition for decks.deck
var DecksDeck = DecksDeckTable{
	Table:   "decks.deck",
	ID:      "id",
	UserID:  "userid",
	Name:    "name",
	Main:    "main",
	Egg:     "egg",
	Status:  "status",
	MTime:   "mtime",
	Created: "created",
}

// Columns returns all standard column names
func (t DecksDeckTable) Columns() []string {
	return []string{t.ID, t.UserID, t.Name, t.Main, t.Egg, t.Status, t.MTime, t.Created}
}
