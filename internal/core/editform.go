package core

import (
	"strconv"
	"strings"
)

// EditForm is the local editable copy of a receipt shown in the edit
// modal. It carries only the fields the form exposes; everything else
// stays on the original and is preserved by Merge.
type EditForm struct {
	ReceiptDate  string
	ReceiptNo    string
	TotalAmount  float64
	KDV10Amount  float64
	TopKDVAmount float64
	NetAmount    float64
}

// NewEditForm seeds a form from a receipt. Call it again whenever a
// different receipt is opened; stale form state must never leak between
// records.
func NewEditForm(r Receipt) EditForm {
	return EditForm{
		ReceiptDate:  r.ReceiptDate,
		ReceiptNo:    r.ReceiptNo,
		TotalAmount:  r.TotalAmount,
		KDV10Amount:  r.KDV10Amount,
		TopKDVAmount: r.TopKDVAmount,
		NetAmount:    r.NetAmount,
	}
}

// SetTotalAmount records a new total and recomputes the net amount from
// the just-edited total and the current tax total.
func (f *EditForm) SetTotalAmount(v float64) {
	f.TotalAmount = v
	f.NetAmount = f.TotalAmount - f.TopKDVAmount
}

// SetTopKDVAmount records a new tax total and recomputes the net amount.
func (f *EditForm) SetTopKDVAmount(v float64) {
	f.TopKDVAmount = v
	f.NetAmount = f.TotalAmount - f.TopKDVAmount
}

// SetKDV10Amount records the 10% sub-amount. It deliberately does not
// touch the net amount: the field is independently authoritative even
// though it is conceptually part of the tax total.
func (f *EditForm) SetKDV10Amount(v float64) {
	f.KDV10Amount = v
}

// SetNetAmount overrides the derived value directly. A later edit of the
// total or tax total recomputes it again.
func (f *EditForm) SetNetAmount(v float64) {
	f.NetAmount = v
}

// Merge applies the form onto a copy of the original receipt, keeping
// identity, submitter fields, and timestamps untouched.
func (f EditForm) Merge(original Receipt) Receipt {
	merged := original
	merged.ReceiptDate = f.ReceiptDate
	merged.ReceiptNo = f.ReceiptNo
	merged.TotalAmount = f.TotalAmount
	merged.KDV10Amount = f.KDV10Amount
	merged.TopKDVAmount = f.TopKDVAmount
	merged.NetAmount = f.NetAmount
	return merged
}

// ParseAmount converts a form amount to a float64, accepting both dot
// and comma decimal separators. Empty input counts as zero, matching the
// form's behavior for cleared fields.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return v, nil
}
