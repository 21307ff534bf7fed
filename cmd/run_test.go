package cmd

import "testing"

func TestValidateRunCount(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{"lower bound", 1, false},
		{"upper bound", 100, false},
		{"middle", 50, false},
		{"zero", 0, true},
		{"negative", -3, true},
		{"too large", 101, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRunCount("outer-runs", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateRunCount(%d) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}
