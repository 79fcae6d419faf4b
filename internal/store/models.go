package store

// OrderRecord is one journaled order entry. Every entry that reaches
// the persistence stage is recorded here regardless of the sheet-append
// outcome, so a failed append can be recovered later.
type OrderRecord struct {
	ID              int64  `json:"id"`
	CreatedAt       int64  `json:"createdAt"`
	Customer        string `json:"customer"`
	Product         string `json:"product"`
	AmountValue     string `json:"amountValue"`
	AmountUnit      string `json:"amountUnit"`
	Comment         string `json:"comment"`
	Author          string `json:"author"`
	CustomerMatched bool   `json:"customerMatched"`
	ProductMatched  bool   `json:"productMatched"`
	SheetStatus     string `json:"sheetStatus"`
}

// Sheet-append outcomes recorded in the journal.
const (
	SheetStatusOK     = "ok"
	SheetStatusFailed = "failed"
)

// Storer is the journal interface.
type Storer interface {
	AppendOrder(rec *OrderRecord) error
	ListOrders(limit int) ([]*OrderRecord, error)
	ListFailedOrders() ([]*OrderRecord, error)
	CountOrders() (int, error)
	Close() error
}
