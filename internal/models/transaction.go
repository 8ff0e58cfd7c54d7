package models

// Transaction is one sale read from the Sales sheet.
type Transaction struct {
	City         string  `json:"city"`
	Gender       string  `json:"gender"`
	CustomerType string  `json:"customer_type"`
	ProductLine  string  `json:"product_line"`
	Total        float64 `json:"total"`
	Rating       float64 `json:"rating"`
	Time         string  `json:"time"`
	Hour         int     `json:"hour"`
}

// Summary holds the KPI row of the dashboard. All values are zero when
// Transactions is zero.
type Summary struct {
	TotalSales    int64   `json:"total_sales"`
	AverageRating float64 `json:"average_rating"`
	AverageSale   float64 `json:"average_sale_per_transaction"`
	Stars         int     `json:"stars"`
	Transactions  int     `json:"transactions"`
}

// GroupTotal is one bar of an aggregate chart.
type GroupTotal struct {
	Key   string  `json:"key"`
	Total float64 `json:"total"`
}

// Selection is the set of accepted values per filter dimension. A nil slice
// means every known value, an empty non-nil slice means none.
type Selection struct {
	Cities        []string `json:"cities"`
	Genders       []string `json:"genders"`
	CustomerTypes []string `json:"customerTypes"`
}

type Options struct {
	Cities        []string `json:"cities"`
	Genders       []string `json:"genders"`
	CustomerTypes []string `json:"customer_types"`
}

type Snapshot struct {
	Summary       Summary      `json:"summary"`
	ByProductLine []GroupTotal `json:"sales_by_product_line"`
	ByHour        []GroupTotal `json:"sales_by_hour"`
}
