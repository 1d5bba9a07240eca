package form

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/erazemk/zaloga/internal/model"
)

// NoneOption is the selector value meaning "no association". It is the only
// sentinel used; in state the absence is a nil category or an unset packaging.
const NoneOption = "none"

// NoneLabel is the display text of the sentinel option.
const NoneLabel = "None"

// ErrUnknownOption is returned when a selector value matches no option.
var ErrUnknownOption = errors.New("form: unknown option")

// SetName sets the item name.
func (f *Form) SetName(s string) { f.Values.Name = s }

// SetDescription sets the item description.
func (f *Form) SetDescription(s string) { f.Values.Description = s }

// SetManufacturer sets the manufacturer.
func (f *Form) SetManufacturer(s string) { f.Values.Manufacturer = s }

// SetCostPrice stores the cost price exactly as typed.
func (f *Form) SetCostPrice(s string) { f.Values.CostPrice = s }

// SetSellingPrice stores the selling price exactly as typed.
func (f *Form) SetSellingPrice(s string) { f.Values.SellingPrice = s }

// SetDiscountPrice stores the discount price exactly as typed.
func (f *Form) SetDiscountPrice(s string) { f.Values.DiscountPrice = s }

// SetQuantity stores the integer prefix of raw. Input with no leading
// digits stores 0. Negative numbers are clamped to 0 and numbers too large
// for an int to math.MaxInt.
func (f *Form) SetQuantity(raw string) {
	f.Values.Quantity = ParseQuantity(raw)
}

// ParseQuantity reads raw the way a numeric input is read: leading spaces
// are skipped, then an optional sign and the longest run of digits.
func ParseQuantity(raw string) int {
	s := strings.TrimLeft(raw, " \t\n\r")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if errors.Is(err, strconv.ErrRange) {
		if s[0] == '-' {
			return 0
		}
		return math.MaxInt
	}
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// SelectCategory applies a category selector value. NoneOption and the
// empty string clear the category.
func (f *Form) SelectCategory(option string) error {
	if option == NoneOption || option == "" {
		f.Values.CategoryID = nil
		return nil
	}
	id, err := strconv.ParseInt(option, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: category %q", ErrUnknownOption, option)
	}
	if f.category(id) == nil {
		return fmt.Errorf("%w: category %d", ErrUnknownOption, id)
	}
	f.Values.CategoryID = &id
	return nil
}

// SelectPackaging applies a packaging selector value. NoneOption clears the
// packaging to the empty string, never to null.
func (f *Form) SelectPackaging(option string) error {
	if option == NoneOption {
		f.Values.PackagingType = model.PackagingUnset
		return nil
	}
	p, err := model.ParsePackagingType(option)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnknownOption, err)
	}
	f.Values.PackagingType = p
	return nil
}

// SelectStatus applies a status selector value.
func (f *Form) SelectStatus(option string) error {
	st, err := model.ParseStatus(option)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnknownOption, err)
	}
	f.Values.Status = st
	return nil
}

func (f *Form) category(id int64) *model.Category {
	for i := range f.categories {
		if f.categories[i].ID == id {
			return &f.categories[i]
		}
	}
	return nil
}

// Decode applies posted form fields through the field setters. Only fields
// present in posted are touched. Selector values that match no option are
// reported per field and leave the previous value in place.
func (f *Form) Decode(posted url.Values) Errors {
	errs := Errors{}
	text := map[string]func(string){
		FieldName:          f.SetName,
		FieldDescription:   f.SetDescription,
		FieldManufacturer:  f.SetManufacturer,
		FieldQuantity:      f.SetQuantity,
		FieldCostPrice:     f.SetCostPrice,
		FieldSellingPrice:  f.SetSellingPrice,
		FieldDiscountPrice: f.SetDiscountPrice,
	}
	for field, set := range text {
		if _, ok := posted[field]; ok {
			set(posted.Get(field))
		}
	}

	selects := []struct {
		field   string
		apply   func(string) error
		message string
	}{
		{FieldCategoryID, f.SelectCategory, "The selected category is invalid."},
		{FieldPackagingType, f.SelectPackaging, "The selected packaging type is invalid."},
		{FieldStatus, f.SelectStatus, "The selected status is invalid."},
	}
	for _, s := range selects {
		if _, ok := posted[s.field]; !ok {
			continue
		}
		if err := s.apply(posted.Get(s.field)); err != nil {
			errs[s.field] = s.message
		}
	}
	return errs
}
