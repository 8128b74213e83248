package infinity

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AssetClass tags the market an asset trades on. The set is closed.
type AssetClass int

const (
	Equity AssetClass = iota
	Crypto
	Commodity
	Future
	Bond
)

func (c AssetClass) String() string {
	switch c {
	case Equity:
		return "equity"
	case Crypto:
		return "crypto"
	case Commodity:
		return "commodity"
	case Future:
		return "future"
	case Bond:
		return "bond"
	default:
		return fmt.Sprintf("assetclass(%d)", int(c))
	}
}

// AssetClasses lists all known asset classes.
func AssetClasses() []AssetClass { return []AssetClass{Equity, Crypto, Commodity, Future, Bond} }

// ParseAssetClass parses an asset class name.
func ParseAssetClass(s string) (AssetClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "equity", "equities", "stock":
		return Equity, nil
	case "crypto", "cryptocurrency":
		return Crypto, nil
	case "commodity", "commodities":
		return Commodity, nil
	case "future", "futures":
		return Future, nil
	case "bond", "bonds":
		return Bond, nil
	default:
		return Equity, configErrorf("unknown asset class %q", s)
	}
}

// MarshalJSON writes the asset class as its name.
func (c AssetClass) MarshalJSON() ([]byte, error) { return json.Marshal(c.String()) }

// UnmarshalJSON reads the asset class from its name.
func (c *AssetClass) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseAssetClass(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// AssetID uniquely identifies one asset series: a symbol and the class it
// trades under. Two identifiers are equal iff both fields match.
type AssetID struct {
	Symbol string
	Class  AssetClass
}

// NewAssetID returns the identifier for symbol in the given class. Symbols
// are case-insensitive and stored upper-case.
func NewAssetID(symbol string, class AssetClass) AssetID {
	return AssetID{Symbol: strings.ToUpper(strings.TrimSpace(symbol)), Class: class}
}

// String formats the identifier as "SYMBOL.class".
func (id AssetID) String() string { return id.Symbol + "." + id.Class.String() }

// ParseAssetID parses an identifier in the "SYMBOL.class" form. The class is
// the part after the last dot, so dotted symbols like "BRK.B" remain valid.
func ParseAssetID(s string) (AssetID, error) {
	i := strings.LastIndex(s, ".")
	if i <= 0 || i == len(s)-1 {
		return AssetID{}, configErrorf("invalid asset id %q want \"SYMBOL.class\"", s)
	}
	class, err := ParseAssetClass(s[i+1:])
	if err != nil {
		return AssetID{}, err
	}
	return NewAssetID(s[:i], class), nil
}
