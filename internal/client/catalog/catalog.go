// Package catalog exposes the static, read-only devotional content: the
// list of volumes with their daily readings, the purchasable products and
// the status-card gradient palette. The data ships embedded with the
// binary and never changes at runtime.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed catalog.json
var rawCatalog []byte

// Day is a single devotional reading.
type Day struct {
	Day          int    `json:"dia"`
	Title        string `json:"titulo"`
	Verse        string `json:"versiculo"`
	Reference    string `json:"referencia"`
	Reading      string `json:"leitura"`
	Application  string `json:"aplicacao"`
	Prayer       string `json:"oracao"`
	Exercise     string `json:"exercicio"`
	AnchorPhrase string `json:"fraseAncora"`
}

// SpokenText is the full text handed to the speech coordinator, in the
// same order the app reads it aloud.
func (d Day) SpokenText() string {
	return fmt.Sprintf("%s. %s. %s. Oração: %s", d.Title, d.Verse, d.Reading, d.Prayer)
}

// Volume is a named collection of daily readings. Locked volumes carry an
// SKU and a price; volume 1 has neither.
type Volume struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	SKU      string `json:"sku,omitempty"`
	Price    float64
	Days     []Day `json:"days"`
}

// DayByNumber returns the day record for n, if present.
func (v Volume) DayByNumber(n int) (Day, bool) {
	for _, d := range v.Days {
		if d.Day == n {
			return d, true
		}
	}
	return Day{}, false
}

var volumes []Volume

func init() {
	if err := json.Unmarshal(rawCatalog, &volumes); err != nil {
		panic(fmt.Sprintf("catalog: invalid embedded data: %v", err))
	}
	for i := range volumes {
		if p, ok := Products[volumes[i].SKU]; ok {
			volumes[i].Price = p.Price
		}
	}
}

// Volumes returns all volumes in display order.
func Volumes() []Volume {
	return volumes
}

// VolumeByID returns the volume with the given id, if present.
func VolumeByID(id int) (Volume, bool) {
	for _, v := range volumes {
		if v.ID == id {
			return v, true
		}
	}
	return Volume{}, false
}

// Product is a purchasable unlock: one volume or the full combo.
type Product struct {
	SKU   string
	Label string
	Price float64
}

// ComboSKU unlocks every volume at once.
const ComboSKU = "combo_4"

// Products is the static price/label table keyed by SKU.
var Products = map[string]Product{
	"volume_2": {SKU: "volume_2", Label: "Volume 2", Price: 9.90},
	"volume_3": {SKU: "volume_3", Label: "Volume 3", Price: 9.90},
	"volume_4": {SKU: "volume_4", Label: "Volume 4", Price: 9.90},
	ComboSKU:   {SKU: ComboSKU, Label: "Combo Especial (Todos os Volumes)", Price: 27.90},
}

// SKUForVolume maps a locked volume id to its product SKU.
func SKUForVolume(volumeID int) string {
	return fmt.Sprintf("volume_%d", volumeID)
}

// Gradient is one status-card background option. Tone drives whether the
// card renders light or dark text.
type Gradient struct {
	ID   string
	Name string
	Tone string // "light", "neutral" or "dark"
}

// Gradients is the selectable status-card palette.
var Gradients = []Gradient{
	{ID: "porcelana", Name: "Graça", Tone: "light"},
	{ID: "amanhecer", Name: "Renovo", Tone: "light"},
	{ID: "nuvem", Name: "Paz", Tone: "light"},
	{ID: "salmo", Name: "Refúgio", Tone: "light"},
	{ID: "areia", Name: "Caminho", Tone: "neutral"},
	{ID: "pedra", Name: "Firmeza", Tone: "neutral"},
	{ID: "oliva_suave", Name: "Esperança", Tone: "neutral"},
	{ID: "crepusculo", Name: "Silêncio", Tone: "neutral"},
	{ID: "noite", Name: "Noite", Tone: "dark"},
	{ID: "carvao", Name: "Profundo", Tone: "dark"},
	{ID: "oceano", Name: "Oceano", Tone: "dark"},
	{ID: "vinho", Name: "Aliança", Tone: "dark"},
}

// GradientByID returns the gradient with the given id, defaulting to the
// first palette entry when unknown.
func GradientByID(id string) Gradient {
	for _, g := range Gradients {
		if g.ID == id {
			return g
		}
	}
	return Gradients[0]
}
