package chart

import "testing"

func TestRecordIsNegative(t *testing.T) {
	tests := []struct {
		change string
		want   bool
	}{
		{"+184.18%", false},
		{"-3.20%", true},
		{"−1.5%", true},
		{"0.00%", false},
		{"12%", false},
		{"  -0.5%", true},
	}

	for _, tt := range tests {
		t.Run(tt.change, func(t *testing.T) {
			r := Record{ChangePct: tt.change}
			if got := r.IsNegative(); got != tt.want {
				t.Errorf("IsNegative() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecordHasLogo(t *testing.T) {
	if (Record{}).HasLogo() {
		t.Error("HasLogo() = true for empty logo")
	}
	if (Record{Logo: "  "}).HasLogo() {
		t.Error("HasLogo() = true for blank logo")
	}
	if !(Record{Logo: "https://example.com/a.png"}).HasLogo() {
		t.Error("HasLogo() = false for URL")
	}
}

func TestExample(t *testing.T) {
	a := Example()
	if len(a.Records) != 8 {
		t.Fatalf("len(Records) = %d, want 8", len(a.Records))
	}
	if a.TitleMain != "Sep 15" || a.TitleSub != "Big Movers & Drivers" {
		t.Errorf("titles = %q / %q", a.TitleMain, a.TitleSub)
	}

	// Each call returns an independent copy.
	a.Records[0].Ticker = "XXXX"
	if b := Example(); b.Records[0].Ticker != "CHEK" {
		t.Errorf("Example() shares records between calls")
	}
}
