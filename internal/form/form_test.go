package form

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/url"
	"testing"

	"github.com/erazemk/zaloga/internal/model"
)

func int64p(v int64) *int64 { return &v }

func testCategories() []model.Category {
	return []model.Category{
		{ID: 3, Name: "Beverages", Status: model.CategoryStatusActive},
		{ID: 7, Name: "Snacks", Status: model.CategoryStatusActive},
	}
}

func fullItem() *model.InventoryItem {
	return &model.InventoryItem{
		ID:            42,
		Name:          "Mango Juice",
		Description:   "Chilled, 1L",
		CategoryID:    int64p(3),
		PackagingType: model.PackagingTetraPack,
		Quantity:      17,
		CostPrice:     "2500.00",
		SellingPrice:  "3000.50",
		DiscountPrice: "2800",
		Manufacturer:  "Riham",
		Status:        model.StatusInactive,
	}
}

func TestNewSeedsValuesVerbatim(t *testing.T) {
	item := fullItem()
	f := New(item, testCategories())

	v := f.Values
	if v.Name != item.Name || v.Description != item.Description || v.Manufacturer != item.Manufacturer {
		t.Errorf("text fields not seeded verbatim: %+v", v)
	}
	if v.CostPrice != "2500.00" || v.SellingPrice != "3000.50" || v.DiscountPrice != "2800" {
		t.Errorf("prices not seeded verbatim: %+v", v)
	}
	if v.Quantity != 17 || f.QuantityText() != "17" {
		t.Errorf("expected quantity 17, got %d (%q)", v.Quantity, f.QuantityText())
	}
	if v.CategoryID == nil || *v.CategoryID != 3 {
		t.Errorf("expected category 3, got %v", v.CategoryID)
	}
	if f.CategoryLabel() != "Beverages" {
		t.Errorf("expected category label 'Beverages', got %q", f.CategoryLabel())
	}
	if v.PackagingType != model.PackagingTetraPack || v.Status != model.StatusInactive {
		t.Errorf("selectors not seeded: %+v", v)
	}
	if f.Phase() != Editing {
		t.Errorf("expected editing phase, got %v", f.Phase())
	}

	// Seeding copies the category reference.
	*item.CategoryID = 7
	if *f.Values.CategoryID != 3 {
		t.Error("form state must not alias the record")
	}
}

func TestNullCategoryRendersNone(t *testing.T) {
	item := fullItem()
	item.CategoryID = nil
	f := New(item, testCategories())

	if f.CategoryLabel() != "None" {
		t.Errorf("expected 'None', got %q", f.CategoryLabel())
	}
	if f.CategoryOption() != NoneOption {
		t.Errorf("expected sentinel option, got %q", f.CategoryOption())
	}
	opts := f.CategoryOptions()
	if len(opts) != 3 || !opts[0].Selected || opts[0].Label != "None" {
		t.Errorf("expected sentinel option first and selected, got %+v", opts)
	}
}

func TestSeedDefaults(t *testing.T) {
	f := New(&model.InventoryItem{ID: 1, Name: "Blank", Quantity: -3}, nil)
	if f.Values.Status != model.StatusActive {
		t.Errorf("expected default status 'active', got %q", f.Values.Status)
	}
	if f.Values.Quantity != 0 {
		t.Errorf("expected quantity clamped to 0, got %d", f.Values.Quantity)
	}
	if f.PackagingOption() != NoneOption {
		t.Errorf("expected packaging sentinel, got %q", f.PackagingOption())
	}
}

func TestNullCategorySubmitsNull(t *testing.T) {
	item := fullItem()
	item.CategoryID = nil
	f := New(item, testCategories())

	req, err := f.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	body, _ := json.Marshal(req.Body)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		t.Fatal(err)
	}
	if string(raw[FieldCategoryID]) != "null" {
		t.Errorf("expected category_id null, got %s", raw[FieldCategoryID])
	}
}

func TestSetQuantity(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"12", 12},
		{"  8", 8},
		{"3.7", 3},
		{"12abc", 12},
		{"abc", 0},
		{"", 0},
		{"-5", 0},
		{"+4", 4},
		{"99999999999999999999999", math.MaxInt},
		{"-99999999999999999999999", 0},
	}

	f := New(fullItem(), nil)
	for _, tt := range tests {
		f.SetQuantity(tt.raw)
		if f.Values.Quantity != tt.want {
			t.Errorf("SetQuantity(%q) stored %d, want %d", tt.raw, f.Values.Quantity, tt.want)
		}
	}
}

func TestSelectPackagingNoneIsEmptyString(t *testing.T) {
	f := New(fullItem(), nil)
	if err := f.SelectPackaging(NoneOption); err != nil {
		t.Fatalf("SelectPackaging: %v", err)
	}

	req, _ := f.Submit()
	body, _ := json.Marshal(req.Body)
	var raw map[string]json.RawMessage
	json.Unmarshal(body, &raw)
	if string(raw[FieldPackagingType]) != `""` {
		t.Errorf("expected empty string packaging, got %s", raw[FieldPackagingType])
	}

	if err := f.SelectPackaging("Crate"); !errors.Is(err, ErrUnknownOption) {
		t.Errorf("expected ErrUnknownOption, got %v", err)
	}
}

func TestSelectCategory(t *testing.T) {
	f := New(fullItem(), testCategories())

	if err := f.SelectCategory("7"); err != nil {
		t.Fatalf("SelectCategory: %v", err)
	}
	if *f.Values.CategoryID != 7 {
		t.Errorf("expected category 7, got %d", *f.Values.CategoryID)
	}

	if err := f.SelectCategory(NoneOption); err != nil {
		t.Fatalf("SelectCategory none: %v", err)
	}
	if f.Values.CategoryID != nil {
		t.Error("expected sentinel to clear the category")
	}

	for _, bad := range []string{"-1", "99", "abc"} {
		if err := f.SelectCategory(bad); !errors.Is(err, ErrUnknownOption) {
			t.Errorf("SelectCategory(%q): expected ErrUnknownOption, got %v", bad, err)
		}
	}
}

func TestSelectStatus(t *testing.T) {
	f := New(fullItem(), nil)
	if err := f.SelectStatus("discontinued"); err != nil {
		t.Fatalf("SelectStatus: %v", err)
	}
	if f.Values.Status != model.StatusDiscontinued {
		t.Errorf("expected discontinued, got %q", f.Values.Status)
	}
	if err := f.SelectStatus(""); !errors.Is(err, ErrUnknownOption) {
		t.Errorf("expected ErrUnknownOption for empty status, got %v", err)
	}
}

func TestSyncDiscardsUnsavedEdits(t *testing.T) {
	original := fullItem()
	f := New(original, testCategories())
	f.SetName("unsaved edit")
	f.SetQuantity("1")

	if f.Sync(original) {
		t.Error("same record reference must not reset")
	}
	if f.Values.Name != "unsaved edit" {
		t.Error("edits must survive a sync with the same record")
	}

	refreshed := fullItem()
	refreshed.Name = "Mango Juice 2L"
	refreshed.Quantity = 40
	if !f.Sync(refreshed) {
		t.Error("new record reference must reset")
	}
	if f.Values.Name != "Mango Juice 2L" || f.Values.Quantity != 40 {
		t.Errorf("expected refreshed values, got %+v", f.Values)
	}
	if f.Record() != refreshed {
		t.Error("expected form bound to the refreshed record")
	}
}

func TestSubmitProducesSinglePut(t *testing.T) {
	f := New(fullItem(), testCategories())
	f.SetName("Passion Juice")

	req, err := f.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if req.Method != http.MethodPut {
		t.Errorf("expected PUT, got %s", req.Method)
	}
	if req.Path != "/inventory/42" {
		t.Errorf("expected /inventory/42, got %s", req.Path)
	}
	if req.Body.Name != "Passion Juice" {
		t.Errorf("expected edited name in body, got %q", req.Body.Name)
	}

	body, _ := json.Marshal(req.Body)
	var raw map[string]json.RawMessage
	json.Unmarshal(body, &raw)
	if len(raw) != len(Fields) {
		t.Errorf("expected %d fields in body, got %d: %s", len(Fields), len(raw), body)
	}
	for _, field := range Fields {
		if _, ok := raw[field]; !ok {
			t.Errorf("body missing field %q", field)
		}
	}

	if !f.Processing() {
		t.Error("expected form to be processing after submit")
	}
	if _, err := f.Submit(); !errors.Is(err, ErrSubmitting) {
		t.Errorf("expected ErrSubmitting for a duplicate submit, got %v", err)
	}
}

func TestSubmitWithoutRecord(t *testing.T) {
	f := New(nil, nil)
	if _, err := f.Submit(); !errors.Is(err, ErrNoRecord) {
		t.Errorf("expected ErrNoRecord, got %v", err)
	}
	if f.Processing() {
		t.Error("failed submit must not leave the form processing")
	}
}

func TestCompleteWithErrorsReturnsToEditing(t *testing.T) {
	f := New(fullItem(), nil)
	f.Submit()

	ok := f.Complete(Errors{FieldSellingPrice: "The selling price field is required."})
	if ok {
		t.Error("expected failure outcome")
	}
	if f.Phase() != Editing {
		t.Errorf("expected editing phase, got %v", f.Phase())
	}
	if f.Error(FieldSellingPrice) == "" || !f.HasErrors() {
		t.Error("expected inline error for selling_price")
	}

	// Resubmission is allowed and success clears the errors.
	if _, err := f.Submit(); err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if !f.Complete(nil) {
		t.Error("expected success outcome")
	}
	if f.HasErrors() {
		t.Error("expected errors cleared on success")
	}
}

func TestAbortKeepsEdits(t *testing.T) {
	f := New(fullItem(), nil)
	f.SetManufacturer("Other")
	f.Submit()
	f.Abort()

	if f.Processing() {
		t.Error("expected editing after abort")
	}
	if f.Values.Manufacturer != "Other" {
		t.Error("abort must keep edits")
	}
}

func TestSubmitBodyDoesNotAliasState(t *testing.T) {
	f := New(fullItem(), testCategories())
	req, _ := f.Submit()
	f.Abort()
	f.SelectCategory("7")

	if *req.Body.CategoryID != 3 {
		t.Errorf("submitted body changed after later edit: %d", *req.Body.CategoryID)
	}
}

func TestDecode(t *testing.T) {
	f := New(fullItem(), testCategories())

	errs := f.Decode(url.Values{
		FieldName:          {"Apple Juice"},
		FieldQuantity:      {"ten"},
		FieldCategoryID:    {NoneOption},
		FieldPackagingType: {NoneOption},
		FieldStatus:        {"bogus"},
		FieldCostPrice:     {"10.50"},
	})

	if f.Values.Name != "Apple Juice" {
		t.Errorf("expected name decoded, got %q", f.Values.Name)
	}
	if f.Values.Quantity != 0 {
		t.Errorf("expected non-numeric quantity to store 0, got %d", f.Values.Quantity)
	}
	if f.Values.CategoryID != nil || f.Values.PackagingType != model.PackagingUnset {
		t.Errorf("expected sentinel selections cleared, got %+v", f.Values)
	}
	if f.Values.CostPrice != "10.50" {
		t.Errorf("expected cost price verbatim, got %q", f.Values.CostPrice)
	}
	if f.Values.Status != model.StatusInactive {
		t.Errorf("invalid status must keep previous value, got %q", f.Values.Status)
	}
	if _, ok := errs[FieldStatus]; !ok || len(errs) != 1 {
		t.Errorf("expected exactly a status error, got %v", errs)
	}
	if f.Values.Manufacturer != "Riham" {
		t.Error("absent fields must be left untouched")
	}
}
