package infinity

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func sampleProject() *Project {
	p := NewProject("tech watch")
	p.AddSpec(NewChartSpec("big tech").
		WithAsset(
			NewAssetSpec(aapl).WithLabel("Apple").WithColor("#1f77b4").
				WithExclusion(
					ExcludeDate(day("2025-03-03"), "bad tick"),
					must(ExcludeRange(day("2025-04-07"), day("2025-04-11"), "exchange outage")),
				),
			NewAssetSpec(goog),
		).
		WithType(Candlestick).
		WithResolution(WeeklyResolution).
		WithTimeRange(must(CustomTimeRange(day("2025-01-01"), day("2025-06-30")))).
		WithWeekends(false).
		WithPercent(true))
	p.AddSpec(NewChartSpec("bitcoin").
		WithAsset(NewAssetSpec(btc)))
	return p
}

func TestProject_RoundTrip(t *testing.T) {
	p := sampleProject()

	var buf bytes.Buffer
	if err := EncodeProject(&buf, p); err != nil {
		t.Fatalf("EncodeProject() error = %v", err)
	}
	q, issues, err := DecodeProject(&buf)
	if err != nil {
		t.Fatalf("DecodeProject() error = %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("DecodeProject() issues = %v, want none", issues)
	}

	if q.Name() != p.Name() {
		t.Errorf("Name() = %q, want %q", q.Name(), p.Name())
	}
	if !q.Created().Equal(p.Created()) {
		t.Errorf("Created() = %v, want %v", q.Created(), p.Created())
	}
	if !q.Modified().Equal(p.Modified()) {
		t.Errorf("Modified() = %v, want %v", q.Modified(), p.Modified())
	}
	if !reflect.DeepEqual(q.Specs(), p.Specs()) {
		t.Errorf("Specs() differ after a round trip:\ngot  %#v\nwant %#v", q.Specs(), p.Specs())
	}
}

func TestProject_RoundTripTwice(t *testing.T) {
	p := sampleProject()

	var first bytes.Buffer
	if err := EncodeProject(&first, p); err != nil {
		t.Fatalf("EncodeProject() error = %v", err)
	}
	q, _, err := DecodeProject(bytes.NewReader(first.Bytes()))
	if err != nil {
		t.Fatalf("DecodeProject() error = %v", err)
	}
	var second bytes.Buffer
	if err := EncodeProject(&second, q); err != nil {
		t.Fatalf("second EncodeProject() error = %v", err)
	}
	if first.String() != second.String() {
		t.Errorf("encoding is not stable:\nfirst  %s\nsecond %s", first.String(), second.String())
	}
}

func TestDecodeProject_PartialLoad(t *testing.T) {
	doc := `{
	  "name": "demo",
	  "charts": [
	    {"title": "good", "assets": [{"id": "AAPL.equity"}]},
	    {"title": "bad class", "assets": [{"id": "AAPL.stonk"}]},
	    {"title": "bad resolution", "resolution": "hourly", "assets": [{"id": "AAPL.equity"}]},
	    {"title": "also good", "assets": [{"id": "BTC-USD.crypto"}]}
	  ]
	}`

	p, issues, err := DecodeProject(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("DecodeProject() error = %v", err)
	}

	if p.Len() != 2 {
		t.Fatalf("Len() = %d, want the 2 valid charts", p.Len())
	}
	good, _ := p.Spec(0)
	if good.Title() != "good" {
		t.Errorf("Spec(0).Title() = %q, want %q", good.Title(), "good")
	}
	if len(issues) != 2 {
		t.Fatalf("issues = %v, want 2", issues)
	}
	if issues[0].Spec != 1 || issues[1].Spec != 2 {
		t.Errorf("issue indexes = %d, %d, want 1, 2", issues[0].Spec, issues[1].Spec)
	}
	if !strings.Contains(issues[0].Error(), "chart spec 1") {
		t.Errorf("issues[0] = %q, want the chart spec index in the message", issues[0])
	}
}

func TestDecodeProject_Defaults(t *testing.T) {
	doc := `{"name": "minimal", "charts": [{"assets": [{"id": "AAPL.equity"}]}]}`

	p, issues, err := DecodeProject(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("DecodeProject() error = %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("issues = %v, want none", issues)
	}

	spec, ok := p.Spec(0)
	if !ok {
		t.Fatal("no chart spec loaded")
	}
	if spec.Title() != "chart 1" {
		t.Errorf("Title() = %q, want %q", spec.Title(), "chart 1")
	}
	if spec.Type() != Line {
		t.Errorf("Type() = %s, want line", spec.Type())
	}
	if spec.Resolution() != DailyResolution {
		t.Errorf("Resolution() = %s, want daily", spec.Resolution())
	}
	if !spec.TimeRange().IsAll() {
		t.Errorf("TimeRange() = %s, want all", spec.TimeRange())
	}
	if !spec.IncludeWeekends() {
		t.Errorf("IncludeWeekends() = false, want true by default")
	}
	if spec.Percent() {
		t.Errorf("Percent() = true, want false by default")
	}
	assets := spec.Assets()
	if len(assets) != 1 || assets[0].Label() != "AAPL" {
		t.Errorf("Assets() = %v, want AAPL labeled by its symbol", assets)
	}
}

func TestDecodeProject_IgnoresUnknownFields(t *testing.T) {
	doc := `{
	  "name": "future",
	  "schema_hints": {"colors": "hex"},
	  "charts": [
	    {
	      "title": "chart",
	      "annotations": [{"on": "2025-01-01", "text": "happy new year"}],
	      "assets": [{"id": "AAPL.equity", "margin_account": true}]
	    }
	  ]
	}`

	p, issues, err := DecodeProject(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("DecodeProject() error = %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("issues = %v, want none", issues)
	}
	if p.Len() != 1 {
		t.Errorf("Len() = %d, want 1", p.Len())
	}
}

func TestDecodeProject_WrongDocumentType(t *testing.T) {
	doc := `{"name": "sim", "type": "options_simulation", "charts": []}`
	if _, _, err := DecodeProject(strings.NewReader(doc)); err == nil {
		t.Fatal("DecodeProject() accepted a document of another type")
	}
}

func TestDecodeProject_ReversedExclusion(t *testing.T) {
	doc := `{
	  "name": "demo",
	  "charts": [
	    {"assets": [{"id": "AAPL.equity", "exclusions": [{"from": "2025-06-30", "to": "2025-01-01"}]}]}
	  ]
	}`

	p, issues, err := DecodeProject(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("DecodeProject() error = %v", err)
	}
	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Len())
	}
	if len(issues) != 1 || issues[0].Spec != 0 {
		t.Fatalf("issues = %v, want one for chart spec 0", issues)
	}
	if !strings.Contains(issues[0].Error(), "precedes") {
		t.Errorf("issues[0] = %q, want a reversed interval message", issues[0])
	}
}

func TestProject_Editing(t *testing.T) {
	p := NewProject("editing")
	i := p.AddSpec(NewChartSpec("one").WithAsset(NewAssetSpec(aapl)))
	if i != 0 {
		t.Errorf("AddSpec() = %d, want 0", i)
	}

	// Editing produces a new value, the project stores the replacement.
	spec, _ := p.Spec(0)
	if err := p.SetSpec(0, spec.WithTitle("renamed")); err != nil {
		t.Fatalf("SetSpec() error = %v", err)
	}
	spec, _ = p.Spec(0)
	if spec.Title() != "renamed" {
		t.Errorf("Title() = %q, want %q", spec.Title(), "renamed")
	}

	if err := p.SetSpec(5, spec); err == nil {
		t.Error("SetSpec(5) accepted an index out of range")
	}
	if err := p.RemoveSpec(0); err != nil {
		t.Fatalf("RemoveSpec() error = %v", err)
	}
	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Len())
	}
	if p.Modified().Before(p.Created()) {
		t.Errorf("Modified() = %v before Created() = %v", p.Modified(), p.Created())
	}
}

func TestChartSpec_Immutable(t *testing.T) {
	base := NewChartSpec("base").WithAsset(NewAssetSpec(aapl))
	edited := base.WithAsset(NewAssetSpec(btc)).WithType(Bar)

	if len(base.Assets()) != 1 {
		t.Errorf("base got %d assets after editing a copy, want 1", len(base.Assets()))
	}
	if base.Type() != Line {
		t.Errorf("base Type() = %s after editing a copy, want line", base.Type())
	}
	if len(edited.Assets()) != 2 || edited.Type() != Bar {
		t.Errorf("edited spec = %d assets %s, want 2 assets bar", len(edited.Assets()), edited.Type())
	}
}
