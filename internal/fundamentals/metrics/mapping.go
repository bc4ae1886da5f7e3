package metrics

import (
	"encoding/json"
	"fmt"
	"os"
)

// Logical keys resolved by the derivation engine. A key names a metric
// independently of any source table's line-item naming.
const (
	KeyTotalAssets        = "balance_sheet.total_assets"
	KeyTotalLiabilities   = "balance_sheet.total_liabilities"
	KeyTotalDebt          = "balance_sheet.total_debt"
	KeyTotalEquity        = "balance_sheet.total_equity"
	KeyTotalCash          = "balance_sheet.total_cash"
	KeyCurrentAssets      = "balance_sheet.current_assets"
	KeyCurrentLiabilities = "balance_sheet.current_liabilities"
	KeyInventory          = "balance_sheet.inventory"
	KeySharesOutstanding  = "balance_sheet.shares_outstanding"
	KeyEbitda             = "financials.ebitda"
	KeyEbit               = "financials.ebit"
	KeyTotalRevenue       = "financials.total_revenue"
	KeyGrossProfit        = "financials.gross_profit"
	KeyNetIncome          = "earnings.net_income"
	KeyDilutedEps         = "earnings.diluted_eps"
	KeyFreeCashflow       = "cash_flow.free_cashflow"
	KeyOperatingCashflow  = "cash_flow.operating_cashflow"
	KeyClosePrice         = "price_history.close"
)

// Candidate is one (source table, source field) pair a logical key may
// resolve through.
type Candidate struct {
	Table string
	Field string
}

// Mapping maps logical metric keys to ordered candidate lists. Order encodes
// fallback priority. The mapping is loaded once at startup and read-only
// afterwards.
type Mapping map[string][]Candidate

// Candidates returns the candidate list for a key, or nil when the key is
// unmapped.
func (m Mapping) Candidates(key string) []Candidate {
	return m[key]
}

// LoadMapping reads a mapping configuration file of the form
// {"logical.key": [["table", "Field Name"], ...], ...}. A missing or
// unparseable file is a configuration error and fatal to the run.
func LoadMapping(path string) (Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}

	var raw map[string][][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse mapping file %s: %w", path, err)
	}

	mapping := make(Mapping, len(raw))
	for key, sources := range raw {
		if len(sources) == 0 {
			return nil, fmt.Errorf("mapping key %q has no candidates", key)
		}
		candidates := make([]Candidate, 0, len(sources))
		for _, src := range sources {
			if len(src) != 2 || src[0] == "" || src[1] == "" {
				return nil, fmt.Errorf("mapping key %q has a malformed candidate %v", key, src)
			}
			candidates = append(candidates, Candidate{Table: src[0], Field: src[1]})
		}
		mapping[key] = candidates
	}

	return mapping, nil
}
