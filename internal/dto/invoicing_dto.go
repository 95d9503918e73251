package dto

type InvoiceBucket struct {
	Month int     `json:"month"`
	Year  int     `json:"year"`
	Total float64 `json:"total"`
}

type InvoiceHistoryResponse struct {
	Buckets []InvoiceBucket `json:"buckets"`
}
