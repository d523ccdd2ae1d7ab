package signal

import (
	"reflect"
	"testing"
)

func TestSplitTags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty string", "", nil},
		{"single tag", "urgent", []string{"urgent"}},
		{"multiple tags", "urgent,billing,ops", []string{"urgent", "billing", "ops"}},
		{"trims whitespace", " urgent , billing ", []string{"urgent", "billing"}},
		{"drops blank elements", "urgent,,  ,billing", []string{"urgent", "billing"}},
		{"only commas", ",, ,", nil},
		{"preserves case", "Urgent,BILLING", []string{"Urgent", "BILLING"}},
		{"preserves order", "z,a,m", []string{"z", "a", "m"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitTags(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitTags(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
