package supabase

import (
	"net/url"
	"strconv"
	"strings"
)

// Op is a PostgREST filter operator suffix.
type Op string

const (
	OpEq    Op = "eq"
	OpIlike Op = "ilike"
	OpGte   Op = "gte"
	OpLte   Op = "lte"
)

// Predicate is one field/operator/value condition. Filters are built as
// a slice of predicates and serialized once, so two conditions on the
// same field (a price range, for instance) can never overwrite each
// other.
type Predicate struct {
	Field string
	Op    Op
	Value string
}

func (p Predicate) encode() string {
	return string(p.Op) + "." + p.Value
}

// orTerm renders the predicate for use inside an or=(...) group, where
// the field name is part of the value.
func (p Predicate) orTerm() string {
	return p.Field + "." + p.encode()
}

// DefaultSearchLimit caps search results when the caller gives none.
const DefaultSearchLimit = 10

// DefaultOwnerLimit caps per-owner listing results when the caller
// gives none.
const DefaultOwnerLimit = 50

// Generic vehicle words WhatsApp users type instead of a category.
// A query consisting of one of these matches the category name too,
// unless the caller already picked a category.
var vehicleSynonyms = map[string]struct{}{
	"araba":    {},
	"otomobil": {},
	"araç":     {},
	"oto":      {},
}

// SearchParams are the optional criteria for a listing search. Nil
// price bounds mean unbounded on that side.
type SearchParams struct {
	Query        string
	Category     string
	Condition    string
	Location     string
	MetadataType string
	MinPrice     *int
	MaxPrice     *int
	Limit        int
}

// predicates returns the column filters plus the free-text or-group
// terms (empty when no free-text match applies).
func (p SearchParams) predicates() (preds []Predicate, orGroup []Predicate) {
	if p.Query != "" {
		_, generic := vehicleSynonyms[strings.ToLower(p.Query)]
		switch {
		case generic && p.Category != "":
			// Explicit category wins; the generic term adds nothing.
		case generic:
			orGroup = []Predicate{
				{Field: "title", Op: OpIlike, Value: "*" + p.Query + "*"},
				{Field: "description", Op: OpIlike, Value: "*" + p.Query + "*"},
				{Field: "category", Op: OpIlike, Value: "*otom*"},
			}
		default:
			orGroup = []Predicate{
				{Field: "title", Op: OpIlike, Value: "*" + p.Query + "*"},
				{Field: "description", Op: OpIlike, Value: "*" + p.Query + "*"},
			}
		}
	}

	if p.Category != "" {
		// Pattern match, not eq, so stored casing differences still hit.
		preds = append(preds, Predicate{Field: "category", Op: OpIlike, Value: p.Category})
	}
	if p.Condition != "" {
		preds = append(preds, Predicate{Field: "condition", Op: OpEq, Value: p.Condition})
	}
	if p.Location != "" {
		preds = append(preds, Predicate{Field: "location", Op: OpEq, Value: p.Location})
	}
	if p.MetadataType != "" {
		preds = append(preds, Predicate{Field: "metadata->>type", Op: OpEq, Value: p.MetadataType})
	}
	if p.MinPrice != nil {
		preds = append(preds, Predicate{Field: "price", Op: OpGte, Value: strconv.Itoa(*p.MinPrice)})
	}
	if p.MaxPrice != nil {
		preds = append(preds, Predicate{Field: "price", Op: OpLte, Value: strconv.Itoa(*p.MaxPrice)})
	}
	return preds, orGroup
}

// Values serializes the search criteria into PostgREST query
// parameters. Ordering is always newest first.
func (p SearchParams) Values() url.Values {
	v := url.Values{}

	preds, orGroup := p.predicates()
	if len(orGroup) > 0 {
		terms := make([]string, len(orGroup))
		for i, t := range orGroup {
			terms[i] = t.orTerm()
		}
		v.Set("or", "("+strings.Join(terms, ",")+")")
	}

	for _, pred := range preds {
		// Add, never Set: repeated fields (price gte + lte) must coexist.
		v.Add(pred.Field, pred.encode())
	}

	limit := p.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	v.Set("limit", strconv.Itoa(limit))
	v.Set("order", "created_at.desc")
	return v
}

// ownerValues builds the query parameters for a per-owner listing read.
func ownerValues(userID, status string, limit int) url.Values {
	v := url.Values{}
	v.Add("user_id", Predicate{Field: "user_id", Op: OpEq, Value: userID}.encode())
	if status != "" {
		v.Add("status", Predicate{Field: "status", Op: OpEq, Value: status}.encode())
	}
	if limit <= 0 {
		limit = DefaultOwnerLimit
	}
	v.Set("limit", strconv.Itoa(limit))
	v.Set("order", "created_at.desc")
	return v
}
