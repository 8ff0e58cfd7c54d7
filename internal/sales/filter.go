package sales

// Filter keeps the records whose city, gender and customer type are each in
// the matching accepted set. An empty set for any dimension matches nothing.
// Surviving records keep their relative order.
//
// Membership is tested on the recorded cell text rather than with gota's
// comparators, which treat the literal value "NaN" as missing and never
// match it.
func Filter(t *Table, cities, genders, customerTypes []string) *Table {
	if len(cities) == 0 || len(genders) == 0 || len(customerTypes) == 0 || t.Len() == 0 {
		return emptyTable()
	}

	dimensions := []struct {
		column   string
		accepted map[string]struct{}
	}{
		{ColCity, set(cities)},
		{ColGender, set(genders)},
		{ColCustomerType, set(customerTypes)},
	}

	keep := make([]bool, t.Len())
	for i := range keep {
		keep[i] = true
	}
	for _, dim := range dimensions {
		for i, v := range t.df.Col(dim.column).Records() {
			if _, ok := dim.accepted[v]; !ok {
				keep[i] = false
			}
		}
	}

	rows := make([]int, 0, len(keep))
	for i, ok := range keep {
		if ok {
			rows = append(rows, i)
		}
	}
	if len(rows) == 0 {
		return emptyTable()
	}
	if len(rows) == t.Len() {
		return &Table{df: t.df.Copy()}
	}
	return &Table{df: t.df.Subset(rows)}
}

func set(values []string) map[string]struct{} {
	s := make(map[string]struct{}, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}
