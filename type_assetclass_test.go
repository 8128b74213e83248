package infinity

import "testing"

func TestParseAssetClass(t *testing.T) {
	tests := []struct {
		input    string
		expected AssetClass
		err      bool
	}{
		{"equity", Equity, false},
		{"Equities", Equity, false},
		{"crypto", Crypto, false},
		{"commodity", Commodity, false},
		{"future", Future, false},
		{"futures", Future, false},
		{"bond", Bond, false},
		{"stonk", Equity, true},
		{"", Equity, true},
	}

	for _, tt := range tests {
		got, err := ParseAssetClass(tt.input)
		if tt.err {
			if err == nil {
				t.Errorf("ParseAssetClass(%q) accepted, want error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAssetClass(%q) error = %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseAssetClass(%q) = %s, want %s", tt.input, got, tt.expected)
		}
	}
}

func TestParseAssetID(t *testing.T) {
	tests := []struct {
		input    string
		expected AssetID
		err      bool
	}{
		{"AAPL.equity", NewAssetID("AAPL", Equity), false},
		{"aapl.equity", NewAssetID("AAPL", Equity), false},
		{"BTC-USD.crypto", NewAssetID("BTC-USD", Crypto), false},
		// symbols may carry dots, the class is after the last one.
		{"BRK.B.equity", NewAssetID("BRK.B", Equity), false},
		{"GC=F.future", NewAssetID("GC=F", Future), false},
		{"AAPL", AssetID{}, true},
		{"AAPL.stonk", AssetID{}, true},
		{".equity", AssetID{}, true},
	}

	for _, tt := range tests {
		got, err := ParseAssetID(tt.input)
		if tt.err {
			if err == nil {
				t.Errorf("ParseAssetID(%q) accepted, want error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAssetID(%q) error = %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseAssetID(%q) = %s, want %s", tt.input, got, tt.expected)
		}
	}
}
