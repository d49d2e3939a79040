// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package organize

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/noteforge/internal/classify"
	"github.com/pdiddy/noteforge/pkg/types"
)

const defaultShoppingCategory = "Other"

// shoppingOrganizer consolidates shopping items: quantity/unit parsing,
// store-category inference, duplicate merging, and category-then-alphabetical
// ordering.
type shoppingOrganizer struct {
	weights types.ScoreWeights
}

var (
	// qtyRe reads a leading quantity with optional unit: "2 lbs chicken",
	// "1.5 kg flour", "3x batteries".
	qtyRe = regexp.MustCompile(`(?i)^\s*(\d+(?:\.\d+)?)\s*(?:x\s+)?(lbs?|pounds?|oz|ounces?|kg|kilos?|g|grams?|l|liters?|ml|dozen|pack?s?|bottles?|cans?|boxe?s?|bags?|bunche?s?)?\.?\s+(.+)$`)

	// parenNoteRe reads a trailing parenthetical note: "milk (2%)".
	parenNoteRe = regexp.MustCompile(`\s*\(([^)]*)\)\s*$`)
)

// storeCategories maps keywords to store sections. Checked in declared
// order; the first section with a keyword hit wins.
var storeCategories = []struct {
	name     string
	keywords []string
}{
	{"Produce", []string{"apple", "banana", "orange", "lettuce", "tomato", "onion", "potato", "carrot", "pepper", "spinach", "broccoli", "fruit", "avocado", "lemon", "lime", "grape", "berries", "cucumber", "garlic"}},
	{"Dairy", []string{"milk", "cheese", "yogurt", "butter", "cream", "eggs", "egg"}},
	{"Meat & Seafood", []string{"chicken", "beef", "pork", "turkey", "fish", "salmon", "shrimp", "bacon", "sausage", "ham"}},
	{"Bakery", []string{"bread", "bagel", "muffin", "roll", "tortilla", "croissant", "bun"}},
	{"Frozen", []string{"frozen", "ice cream", "pizza"}},
	{"Pantry", []string{"rice", "pasta", "flour", "sugar", "salt", "oil", "cereal", "beans", "sauce", "soup", "spice", "vinegar", "honey", "peanut butter", "jam"}},
	{"Beverages", []string{"coffee", "tea", "juice", "soda", "water", "wine", "beer"}},
	{"Household", []string{"soap", "detergent", "paper towel", "toilet paper", "shampoo", "toothpaste", "sponge", "trash bag", "batteries"}},
}

// categoryOrder gives each store section a stable sort position.
var categoryOrder = func() map[string]int {
	m := make(map[string]int, len(storeCategories)+1)
	for i, c := range storeCategories {
		m[c.name] = i
	}
	m[defaultShoppingCategory] = len(storeCategories)
	return m
}()

func (o *shoppingOrganizer) Organize(lines []classify.LabeledLine, common types.CommonEntities) *Document {
	data := &types.ShoppingListsData{}
	category := ""
	duplicates := 0

	// index maps the normalized item name to its position in data.Items.
	index := map[string]int{}

	for _, line := range lines {
		switch line.Label {
		case classify.LabelCategoryHeader:
			category = classify.StripHeaderMarkup(line.Text)
		case classify.LabelListItem:
			item := parseShoppingItem(cleanLine(line.Text))
			if item.Name == "" {
				continue
			}
			if item.Category = category; category == "" {
				item.Category = inferCategory(item.Name)
			}

			key := normalizeItemName(item.Name)
			if at, ok := index[key]; ok {
				mergeShoppingItems(&data.Items[at], item)
				duplicates++
				continue
			}
			index[key] = len(data.Items)
			data.Items = append(data.Items, item)
		}
	}

	sortShoppingItems(data.Items)
	seen := map[string]bool{}
	for _, item := range data.Items {
		if !seen[item.Category] {
			seen[item.Category] = true
			data.Categories = append(data.Categories, item.Category)
		}
	}

	doc := &Document{
		Format:   types.FormatShoppingLists,
		Sections: shoppingSections(data),
		Data: types.ExtractedData{
			Format:   types.FormatShoppingLists,
			Common:   common,
			Shopping: data,
		},
	}
	doc.DuplicatesRemoved = duplicates
	doc.Confidence = score(o.weights, len(data.Items), len(data.Categories), duplicates > 0)
	return doc
}

// parseShoppingItem splits a raw line into name, quantity, unit, and note.
func parseShoppingItem(line string) types.ShoppingItem {
	item := types.ShoppingItem{}

	if m := parenNoteRe.FindStringSubmatch(line); m != nil {
		item.Note = strings.TrimSpace(m[1])
		line = parenNoteRe.ReplaceAllString(line, "")
	}

	if m := qtyRe.FindStringSubmatch(line); m != nil {
		if q, err := strconv.ParseFloat(m[1], 64); err == nil {
			item.Quantity = q
		}
		item.Unit = strings.ToLower(m[2])
		line = m[3]
	}

	item.Name = strings.TrimSpace(line)
	return item
}

// normalizeItemName reduces an item name for duplicate comparison:
// lowercased, quantity and note markup stripped, trailing plural 's'
// removed.
func normalizeItemName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = parenNoteRe.ReplaceAllString(n, "")
	if len(n) > 3 && strings.HasSuffix(n, "s") && !strings.HasSuffix(n, "ss") {
		n = strings.TrimSuffix(n, "s")
	}
	return n
}

// mergeShoppingItems folds dup into base: quantities add when both parsed
// and the units agree; otherwise the later item's note is appended rather
// than discarded.
func mergeShoppingItems(base *types.ShoppingItem, dup types.ShoppingItem) {
	switch {
	case dup.Quantity > 0 && base.Quantity > 0 && base.Unit == dup.Unit:
		base.Quantity += dup.Quantity
	case dup.Quantity > 0 && base.Quantity == 0 && base.Unit == "":
		base.Quantity = dup.Quantity
		base.Unit = dup.Unit
	case dup.Quantity > 0:
		appendNote(base, fmt.Sprintf("+%s %s", trimFloat(dup.Quantity), dup.Unit))
	}
	if dup.Note != "" && dup.Note != base.Note {
		appendNote(base, dup.Note)
	}
}

func appendNote(item *types.ShoppingItem, note string) {
	note = strings.TrimSpace(note)
	if note == "" {
		return
	}
	if item.Note == "" {
		item.Note = note
		return
	}
	item.Note += ", " + note
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// inferCategory assigns a store section by keyword lookup over the item
// name; unmatched items go to the default section.
func inferCategory(name string) string {
	lower := strings.ToLower(name)
	for _, c := range storeCategories {
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				return c.name
			}
		}
	}
	return defaultShoppingCategory
}

// sortShoppingItems orders by store-category position, then alphabetically
// by name; categories outside the known order sort after the known ones by
// name.
func sortShoppingItems(items []types.ShoppingItem) {
	sort.SliceStable(items, func(i, j int) bool {
		oi, oki := categoryOrder[items[i].Category]
		oj, okj := categoryOrder[items[j].Category]
		switch {
		case oki && okj && oi != oj:
			return oi < oj
		case oki != okj:
			return oki
		case !oki && !okj && items[i].Category != items[j].Category:
			return items[i].Category < items[j].Category
		}
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
}

// shoppingSections regroups sorted items by category for rendering.
func shoppingSections(data *types.ShoppingListsData) []Section {
	var sections []Section
	for _, cat := range data.Categories {
		var b strings.Builder
		for _, item := range data.Items {
			if item.Category != cat {
				continue
			}
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(item.Name)
		}
		if b.Len() > 0 {
			sections = append(sections, Section{Title: cat, Content: b.String()})
		}
	}
	return sections
}
