package invoice

import (
	"strings"
	"time"

	"github.com/Jimmysmirlies/cheerbase/internal/models"
)

// LineItem is one division's charge on the invoice.
type LineItem struct {
	Division  string  `json:"division"`
	Quantity  int     `json:"quantity"`
	Tier      Tier    `json:"tier"`
	UnitPrice float64 `json:"unitPrice"`
	LineTotal float64 `json:"lineTotal"`
}

// Totals is the fully computed money view of an invoice. BalanceDue may go
// negative on overpayment; no clamping here, callers decide presentation.
type Totals struct {
	LineItems  []LineItem `json:"lineItems"`
	Subtotal   float64    `json:"subtotal"`
	GSTAmount  float64    `json:"gstAmount"`
	QSTAmount  float64    `json:"qstAmount"`
	TotalTax   float64    `json:"totalTax"`
	Total      float64    `json:"total"`
	TotalPaid  float64    `json:"totalPaid"`
	BalanceDue float64    `json:"balanceDue"`
}

// ComputeTotals derives line items, taxes, and balance from an assembled
// invoice. Pure: same invoice in, same totals out. Tier resolution uses the
// invoice's issued date as the reference; a division with no pricing row
// contributes a zero-priced line rather than failing.
func ComputeTotals(inv InvoiceData) Totals {
	ref := inv.IssuedDate
	if ref.IsZero() {
		ref = time.Now()
	}

	t := Totals{LineItems: make([]LineItem, 0, len(inv.Divisions))}
	for _, g := range inv.Divisions {
		qty := 0
		for _, e := range g.Entries {
			qty += len(e.Members)
		}
		item := LineItem{Division: g.Division, Quantity: qty, Tier: TierRegular}
		if p, ok := findPricing(inv.DivisionPricing, g.Division); ok {
			item.Tier, item.UnitPrice = ResolvePricing(p, ref)
		}
		item.LineTotal = float64(qty) * item.UnitPrice
		t.LineItems = append(t.LineItems, item)
		t.Subtotal += item.LineTotal
	}

	// GST and QST both apply to the pre-tax subtotal, not compounded.
	t.GSTAmount = t.Subtotal * inv.GSTRate
	t.QSTAmount = t.Subtotal * inv.QSTRate
	t.TotalTax = t.GSTAmount + t.QSTAmount
	t.Total = t.Subtotal + t.TotalTax

	for _, p := range inv.Payments {
		t.TotalPaid += p.Amount
	}
	t.BalanceDue = t.Total - t.TotalPaid
	return t
}

func findPricing(pricing []models.DivisionPricing, division string) (models.DivisionPricing, bool) {
	for _, p := range pricing {
		if strings.EqualFold(p.Name, division) {
			return p, true
		}
	}
	return models.DivisionPricing{}, false
}
