package entity

// CaptureRecord is the flattened row forwarded to the spreadsheet webhook
// after a successful capture. Field names match the Apps Script macro's
// expected columns.
type CaptureRecord struct {
	OrderID       string `json:"orderID"`
	Timestamp     string `json:"timestamp"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	VIN           string `json:"vin"`
	Plan          string `json:"plan"`
	Address       string `json:"address"`
	PaymentID     string `json:"paymentId"`
	PayerEmail    string `json:"payerEmail"`
	SSNLast4      string `json:"ssnLast4"`
	MothersName   string `json:"mothersName"`
}
