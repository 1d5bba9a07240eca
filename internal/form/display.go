package form

import (
	"strconv"

	"github.com/erazemk/zaloga/internal/model"
)

// Option is one entry of a selector.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// CategoryOption returns the selector value of the current category.
func (f *Form) CategoryOption() string {
	if f.Values.CategoryID == nil {
		return NoneOption
	}
	return strconv.FormatInt(*f.Values.CategoryID, 10)
}

// CategoryLabel returns the display name of the current category.
func (f *Form) CategoryLabel() string {
	if f.Values.CategoryID == nil {
		return NoneLabel
	}
	if c := f.category(*f.Values.CategoryID); c != nil {
		return c.Name
	}
	return strconv.FormatInt(*f.Values.CategoryID, 10)
}

// CategoryOptions returns the category selector entries, sentinel first.
func (f *Form) CategoryOptions() []Option {
	current := f.CategoryOption()
	opts := make([]Option, 0, len(f.categories)+1)
	opts = append(opts, Option{Value: NoneOption, Label: NoneLabel, Selected: current == NoneOption})
	for _, c := range f.categories {
		v := strconv.FormatInt(c.ID, 10)
		opts = append(opts, Option{Value: v, Label: c.Name, Selected: v == current})
	}
	return opts
}

// PackagingOption returns the selector value of the current packaging type.
func (f *Form) PackagingOption() string {
	if f.Values.PackagingType == model.PackagingUnset {
		return NoneOption
	}
	return string(f.Values.PackagingType)
}

// PackagingOptions returns the packaging selector entries, sentinel first.
func (f *Form) PackagingOptions() []Option {
	current := f.PackagingOption()
	opts := make([]Option, 0, len(model.PackagingTypes)+1)
	opts = append(opts, Option{Value: NoneOption, Label: NoneLabel, Selected: current == NoneOption})
	for _, p := range model.PackagingTypes {
		opts = append(opts, Option{Value: string(p), Label: string(p), Selected: string(p) == current})
	}
	return opts
}

// StatusOptions returns the status selector entries.
func (f *Form) StatusOptions() []Option {
	opts := make([]Option, 0, len(model.Statuses))
	for _, s := range model.Statuses {
		opts = append(opts, Option{Value: string(s), Label: string(s), Selected: s == f.Values.Status})
	}
	return opts
}

// QuantityText returns the quantity as shown in its input.
func (f *Form) QuantityText() string {
	return strconv.Itoa(f.Values.Quantity)
}
