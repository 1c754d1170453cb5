// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for parsing and validating HTTP request
// data: filter query parameters for the receipt list and the edit modal's
// form fields.

package http

import (
	"net/http"
	"net/url"

	"github.com/Denizcan35/barin/internal/core"
	"github.com/Denizcan35/barin/internal/view"
)

// filterFields is the order filter parameters are applied in. Page comes
// last so an explicit page request survives when it arrives together with
// unchanged filter text.
var filterFields = []string{
	core.FieldStartDate,
	core.FieldEndDate,
	core.FieldUser,
	core.FieldLimit,
	core.FieldPage,
}

// ApplyFilterParams feeds the present query parameters into the session's
// list state, field by field. Absent parameters leave their field alone;
// a present-but-empty text parameter clears the filter. Changing anything
// but the page resets the page to 1.
func ApplyFilterParams(query url.Values, state *view.ListState) {
	current := state.Filter()
	for _, field := range filterFields {
		if !query.Has(field) {
			continue
		}
		value := sanitizeInput(query.Get(field))
		if isUnchangedTextField(field, value, current) {
			continue
		}
		state.SetFilter(field, value)
	}
}

// isUnchangedTextField reports whether applying the value would be a
// no-op for a text filter. Skipping those keeps a page navigation from
// being swallowed by the page reset when the form echoes its own state.
func isUnchangedTextField(field, value string, f core.Filter) bool {
	switch field {
	case core.FieldStartDate:
		return value == f.StartDate
	case core.FieldEndDate:
		return value == f.EndDate
	case core.FieldUser:
		return value == f.User
	}
	return false
}

// ParseEditForm builds the edit form from the modal's submitted fields,
// seeded from the original so untouched amounts keep their exact values.
// The date and receipt number are taken verbatim; amounts accept both
// comma and dot decimal separators.
func ParseEditForm(r *http.Request, original core.Receipt) (core.EditForm, error) {
	form := core.NewEditForm(original)

	form.ReceiptDate = sanitizeInput(r.FormValue("receipt_date"))
	form.ReceiptNo = sanitizeInput(r.FormValue("receipt_no"))

	if v := r.FormValue("total_amount"); r.Form.Has("total_amount") {
		amount, err := core.ParseAmount(v)
		if err != nil {
			return form, err
		}
		form.SetTotalAmount(amount)
	}
	if v := r.FormValue("top_kdv_amount"); r.Form.Has("top_kdv_amount") {
		amount, err := core.ParseAmount(v)
		if err != nil {
			return form, err
		}
		form.SetTopKDVAmount(amount)
	}
	if v := r.FormValue("kdv_10_amount"); r.Form.Has("kdv_10_amount") {
		amount, err := core.ParseAmount(v)
		if err != nil {
			return form, err
		}
		form.SetKDV10Amount(amount)
	}

	return form, nil
}
