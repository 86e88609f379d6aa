package pricing

import "github.com/shopspring/decimal"

// Marketplace fee rates. The buyer pays subtotal plus 5%; the seller
// receives subtotal minus 10%.
var (
	BuyerFeeRate  = decimal.NewFromFloat(0.05)
	SellerFeeRate = decimal.NewFromFloat(0.10)
)

// Quote is the fee breakdown for one subtotal. All figures are rounded
// to cents independently, so Total = Subtotal + BuyerFee always holds.
type Quote struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	BuyerFee     decimal.Decimal `json:"buyer_fee"`
	SellerFee    decimal.Decimal `json:"seller_fee"`
	Total        decimal.Decimal `json:"total"`
	SellerPayout decimal.Decimal `json:"seller_payout"`
}

// QuoteFor computes the breakdown for a subtotal.
func QuoteFor(subtotal decimal.Decimal) Quote {
	subtotal = subtotal.Round(2)
	buyerFee := subtotal.Mul(BuyerFeeRate).Round(2)
	sellerFee := subtotal.Mul(SellerFeeRate).Round(2)
	return Quote{
		Subtotal:     subtotal,
		BuyerFee:     buyerFee,
		SellerFee:    sellerFee,
		Total:        subtotal.Add(buyerFee),
		SellerPayout: subtotal.Sub(sellerFee),
	}
}

// LineSubtotal multiplies unit price by quantity.
func LineSubtotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// Cents converts a money amount to the integer minor units charged at
// the payment boundary.
func Cents(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
