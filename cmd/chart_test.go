package cmd

import (
	"testing"

	infinity "github.com/Triton1605/Infinity"
	"github.com/Triton1605/Infinity/date"
)

func TestParseExclusion(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		id      string
		from    string
		to      string
		reason  string
		wantErr bool
	}{
		{name: "single date", arg: "AAPL.equity:2024-01-05", id: "AAPL.equity", from: "2024-01-05", to: "2024-01-05"},
		{name: "range", arg: "BTC.crypto:2024-01-05..2024-01-09", id: "BTC.crypto", from: "2024-01-05", to: "2024-01-09"},
		{name: "reason", arg: "AAPL.equity:2024-01-05:bad print", id: "AAPL.equity", from: "2024-01-05", to: "2024-01-05", reason: "bad print"},
		{name: "range with reason", arg: "AAPL.equity:2024-01-05..2024-01-09:halted", id: "AAPL.equity", from: "2024-01-05", to: "2024-01-09", reason: "halted"},
		{name: "missing dates", arg: "AAPL.equity", wantErr: true},
		{name: "bad id", arg: "AAPL:2024-01-05", wantErr: true},
		{name: "bad date", arg: "AAPL.equity:someday", wantErr: true},
		{name: "inverted range", arg: "AAPL.equity:2024-01-09..2024-01-05", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, rule, err := parseExclusion(tt.arg)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseExclusion(%q) expected an error", tt.arg)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseExclusion(%q): %v", tt.arg, err)
			}
			if got := id.String(); got != tt.id {
				t.Errorf("id = %q, want %q", got, tt.id)
			}
			if got := rule.From(); got != date.MustParse(tt.from) {
				t.Errorf("from = %s, want %s", got, tt.from)
			}
			if got := rule.To(); got != date.MustParse(tt.to) {
				t.Errorf("to = %s, want %s", got, tt.to)
			}
			if got := rule.Reason(); got != tt.reason {
				t.Errorf("reason = %q, want %q", got, tt.reason)
			}
		})
	}
}

func TestChartEditOnlyTouchesSetFlags(t *testing.T) {
	aapl := infinity.NewAssetID("AAPL", infinity.Equity)
	weekly, err := infinity.ParseResolution("weekly")
	if err != nil {
		t.Fatal(err)
	}
	spec := infinity.NewChartSpec("Tech").
		WithAsset(infinity.NewAssetSpec(aapl)).
		WithResolution(weekly).
		WithWeekends(false)

	c := &chartCmd{title: "", chartType: "bar", weekends: true}
	got, err := c.edit(spec, map[string]bool{"type": true}, nil)
	if err != nil {
		t.Fatal(err)
	}

	if got.Type() != infinity.Bar {
		t.Errorf("type = %s, want bar", got.Type())
	}
	// Unset flags keep the loaded values.
	if got.Title() != "Tech" {
		t.Errorf("title = %q, want %q", got.Title(), "Tech")
	}
	if got.Resolution() != weekly {
		t.Errorf("resolution = %s, want weekly", got.Resolution())
	}
	if got.IncludeWeekends() {
		t.Error("weekends should stay excluded when the flag is not set")
	}
}

func TestChartEditExclusions(t *testing.T) {
	aapl := infinity.NewAssetID("AAPL", infinity.Equity)
	btc := infinity.NewAssetID("BTC", infinity.Crypto)
	spec := infinity.NewChartSpec("Mix").
		WithAsset(infinity.NewAssetSpec(aapl), infinity.NewAssetSpec(btc))

	c := &chartCmd{exclude: repeatedFlag{"AAPL.equity:2024-01-05:bad print"}}
	got, err := c.edit(spec, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	assets := got.Assets()
	if len(assets) != 2 {
		t.Fatalf("got %d assets, want 2", len(assets))
	}
	// Order is preserved and the rule lands on the right asset.
	if assets[0].ID() != aapl || assets[1].ID() != btc {
		t.Fatalf("asset order changed: %s, %s", assets[0].ID(), assets[1].ID())
	}
	rules := assets[0].Exclusions()
	if len(rules) != 1 || rules[0].Reason() != "bad print" {
		t.Errorf("exclusions = %v, want one rule with reason %q", rules, "bad print")
	}
	if len(assets[1].Exclusions()) != 0 {
		t.Error("exclusion leaked to the wrong asset")
	}

	// Excluding an asset that is not on the chart is a usage error.
	c = &chartCmd{exclude: repeatedFlag{"GOOG.equity:2024-01-05"}}
	if _, err := c.edit(spec, nil, nil); err == nil {
		t.Error("expected an error for an asset not on the chart")
	}
}
