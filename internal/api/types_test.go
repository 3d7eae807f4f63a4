package api

import "testing"

func TestHijriDate_Valid(t *testing.T) {
	tests := []struct {
		name string
		h    HijriDate
		want bool
	}{
		{
			name: "full date",
			h:    HijriDate{Day: "10", Month: HijriMonth{Number: 8, En: "Sha'ban"}, Year: "1447"},
			want: true,
		},
		{
			name: "missing day",
			h:    HijriDate{Month: HijriMonth{Number: 9}, Year: "1447"},
			want: false,
		},
		{
			name: "non-numeric year",
			h:    HijriDate{Day: "1", Month: HijriMonth{Number: 9}, Year: "AH"},
			want: false,
		},
		{
			name: "month out of range",
			h:    HijriDate{Day: "1", Month: HijriMonth{Number: 13}, Year: "1447"},
			want: false,
		},
		{
			name: "all empty",
			h:    HijriDate{},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.h.Valid(); got != tt.want {
				t.Errorf("HijriDate.Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}
