package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// Markets is the closed set of retailers the search backend crawls.
// Result payloads always carry one row list per market, even when empty.
var Markets = []string{"sainsburys", "homebargains", "morrisons"}

// ItemRow is a single product row as returned verbatim by the backend:
// a display name and an unvalidated free-text price (e.g. "£1.99", "89p").
// On the wire it is a two-element JSON array, not an object.
type ItemRow struct {
	Name  string
	Price string
}

func (r ItemRow) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{r.Name, r.Price})
}

func (r *ItemRow) UnmarshalJSON(data []byte) error {
	var pair [2]string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("item row must be a [name, price] pair: %w", err)
	}
	r.Name = pair[0]
	r.Price = pair[1]
	return nil
}

// SearchResultPayload is the unit of search-cache storage. Query holds the
// original trimmed text, Key the normalized cache key the payload is stored
// under, and Results one ordered row list per market.
type SearchResultPayload struct {
	Query   string               `json:"query"`
	Key     string               `json:"key"`
	Results map[string][]ItemRow `json:"results"`
}

// EmptyPayload returns a well-formed payload with empty rows for every
// known market. Used as the defined result for blank queries.
func EmptyPayload() *SearchResultPayload {
	results := make(map[string][]ItemRow, len(Markets))
	for _, m := range Markets {
		results[m] = []ItemRow{}
	}
	return &SearchResultPayload{
		Query:   "",
		Key:     "",
		Results: results,
	}
}

// BasketItem is a single basket line. Identity is the ID, not the
// (Title, Market) pair, so the same product can appear as multiple
// independent lines. UnitPrice is in major currency units.
type BasketItem struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	UnitPrice float64 `json:"unitPrice"`
	Market    string  `json:"market"`
	Quantity  int     `json:"quantity"`
}

// User is the locally stored session record. It is owned by the session
// collaborator, not by the cache or basket stores.
type User struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	LoggedInAt time.Time `json:"loggedInAt"`
}
