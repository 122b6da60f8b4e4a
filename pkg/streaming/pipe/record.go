package pipe

import "fmt"

// Record is a small example item shape used by the reference examples and
// tests. Pipelines are generic over their item type; nothing in the driver
// depends on Record.
type Record struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Value         int    `json:"value"`
	OriginalValue int    `json:"originalValue,omitempty"`
}

// String implements fmt.Stringer.
func (r Record) String() string {
	if r.OriginalValue != 0 {
		return fmt.Sprintf("%s: value=%d (was %d)", r.Name, r.Value, r.OriginalValue)
	}
	return fmt.Sprintf("%s: value=%d", r.Name, r.Value)
}

// SampleRecords returns the five-record dataset used across the examples:
// values 2, 0, 4, 0, 2.
func SampleRecords() []Record {
	values := []int{2, 0, 4, 0, 2}
	records := make([]Record, len(values))
	for i, v := range values {
		records[i] = Record{
			ID:    i,
			Name:  fmt.Sprintf("object %d", i),
			Value: v,
		}
	}
	return records
}
