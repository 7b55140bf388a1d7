package domain

// StockRecord tracks the number of physical copies of a book. Available
// is derived from Quantity on every mutation and never drifts from it.
type StockRecord struct {
	ID        int32  `json:"id"`
	BookID    int32  `json:"book_id"`
	Quantity  int32  `json:"quantity"`
	Available bool   `json:"available"`
	CreatedOn string `json:"created_on"`
	UpdatedOn string `json:"updated_on"`
}
