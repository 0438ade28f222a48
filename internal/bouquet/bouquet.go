// Package bouquet holds the static bouquet catalog and the content codec
// that packs a note and a bouquet id into the single text column an item
// row stores.
package bouquet

import "encoding/json"

// Option is a static catalog entry. The catalog is defined at process start
// and never mutated.
type Option struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
	Gradient    string `json:"gradient"`
	Accent      string `json:"accent"`
}

// DefaultID is the bouquet used whenever stored content carries no usable
// bouquet id.
const DefaultID = "white-lily"

// Catalog lists every bouquet a note can be created with.
var Catalog = []Option{
	{
		ID:          "white-lily",
		Title:       "Beyaz Zambak Buketi",
		Emoji:       "🤍",
		Description: "Saflık ve saygı için",
		Gradient:    "rgba(226,232,240,0.9), rgba(148,163,184,0.75)",
		Accent:      "rgba(148,163,184,0.9)",
	},
	{
		ID:          "red-rose",
		Title:       "Kırmızı Gül Demeti",
		Emoji:       "🌹",
		Description: "Sonsuz sevgi ve özlem",
		Gradient:    "rgba(248,113,113,0.85), rgba(190,24,93,0.7)",
		Accent:      "rgba(190,24,93,0.9)",
	},
	{
		ID:          "white-rose",
		Title:       "Beyaz Gül Buketi",
		Emoji:       "🥀",
		Description: "Huzur ve veda",
		Gradient:    "rgba(148,163,184,0.75), rgba(15,23,42,0.85)",
		Accent:      "rgba(226,232,240,0.9)",
	},
	{
		ID:          "lavender",
		Title:       "Lavanta Demeti",
		Emoji:       "💜",
		Description: "Rahatlık ve anılar",
		Gradient:    "rgba(168,85,247,0.85), rgba(76,29,149,0.8)",
		Accent:      "rgba(192,132,252,0.9)",
	},
	{
		ID:          "wildflowers",
		Title:       "Kır Çiçekleri",
		Emoji:       "💐",
		Description: "Doğal bir veda",
		Gradient:    "rgba(52,211,153,0.8), rgba(5,150,105,0.75)",
		Accent:      "rgba(16,185,129,0.95)",
	},
	{
		ID:          "orchid",
		Title:       "Orkide Aranjmanı",
		Emoji:       "🕊️",
		Description: "Zarif bir hatırlama",
		Gradient:    "rgba(248,250,252,0.85), rgba(148,163,184,0.7)",
		Accent:      "rgba(100,116,139,0.9)",
	},
}

// Content is the decoded form of an item's content column.
type Content struct {
	Note      string `json:"note"`
	BouquetID string `json:"bouquetId"`
}

// Encode packs a note and a bouquet id into the stored text form.
// An empty bouquet id encodes the default bouquet.
func Encode(note, bouquetID string) string {
	if bouquetID == "" {
		bouquetID = DefaultID
	}
	// Marshalling a struct of two strings cannot fail.
	b, _ := json.Marshal(Content{Note: note, BouquetID: bouquetID})
	return string(b)
}

// Decode unpacks stored content. Rows written before the structured encoding
// existed hold bare text; any payload that is not a JSON object with a string
// "note" field degrades to that legacy reading: the whole payload becomes the
// note and the bouquet falls back to the default. Decode never fails.
func Decode(content string) Content {
	var raw map[string]any
	if err := json.Unmarshal([]byte(content), &raw); err == nil {
		if note, ok := raw["note"].(string); ok {
			id, ok := raw["bouquetId"].(string)
			if !ok {
				id = DefaultID
			}
			return Content{Note: note, BouquetID: id}
		}
	}
	return Content{Note: content, BouquetID: DefaultID}
}

// Lookup returns the catalog entry for id, or the default entry when the id
// is unknown, so every stored row renders with a valid bouquet.
func Lookup(id string) Option {
	var def Option
	for _, opt := range Catalog {
		if opt.ID == id {
			return opt
		}
		if opt.ID == DefaultID {
			def = opt
		}
	}
	return def
}
