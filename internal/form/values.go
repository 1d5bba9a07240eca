package form

import (
	"github.com/erazemk/zaloga/internal/model"
)

// Editable field names, as used in HTML inputs, JSON bodies and error maps.
const (
	FieldName          = "name"
	FieldDescription   = "description"
	FieldCategoryID    = "category_id"
	FieldPackagingType = "packaging_type"
	FieldQuantity      = "quantity"
	FieldCostPrice     = "cost_price"
	FieldSellingPrice  = "selling_price"
	FieldDiscountPrice = "discount_price"
	FieldManufacturer  = "manufacturer"
	FieldStatus        = "status"
)

// Fields lists every editable field in submission order.
var Fields = []string{
	FieldName,
	FieldDescription,
	FieldCategoryID,
	FieldPackagingType,
	FieldQuantity,
	FieldCostPrice,
	FieldSellingPrice,
	FieldDiscountPrice,
	FieldManufacturer,
	FieldStatus,
}

// Values is the full editable field set of an inventory item. It is sent
// whole on every update; CategoryID marshals to null when unset.
type Values struct {
	Name          string              `json:"name" validate:"required,max=255"`
	Description   string              `json:"description" validate:"max=2000"`
	CategoryID    *int64              `json:"category_id"`
	PackagingType model.PackagingType `json:"packaging_type" validate:"packaging"`
	Quantity      int                 `json:"quantity" validate:"gte=0"`
	CostPrice     string              `json:"cost_price" validate:"omitempty,price"`
	SellingPrice  string              `json:"selling_price" validate:"required,price"`
	DiscountPrice string              `json:"discount_price" validate:"omitempty,price"`
	Manufacturer  string              `json:"manufacturer" validate:"max=255"`
	Status        model.Status        `json:"status" validate:"status"`
}

// ValuesOf returns the editable values of item. A missing item yields the
// defaults of a blank record: quantity 0 and status active.
func ValuesOf(item *model.InventoryItem) Values {
	if item == nil {
		return Values{Status: model.StatusActive}
	}
	v := Values{
		Name:          item.Name,
		Description:   item.Description,
		CategoryID:    copyID(item.CategoryID),
		PackagingType: item.PackagingType,
		Quantity:      item.Quantity,
		CostPrice:     item.CostPrice,
		SellingPrice:  item.SellingPrice,
		DiscountPrice: item.DiscountPrice,
		Manufacturer:  item.Manufacturer,
		Status:        item.Status.OrDefault(),
	}
	if v.Quantity < 0 {
		v.Quantity = 0
	}
	return v
}

// Item returns the values as an inventory item without identity or timestamps.
func (v Values) Item() model.InventoryItem {
	return model.InventoryItem{
		Name:          v.Name,
		Description:   v.Description,
		CategoryID:    copyID(v.CategoryID),
		PackagingType: v.PackagingType,
		Quantity:      v.Quantity,
		CostPrice:     v.CostPrice,
		SellingPrice:  v.SellingPrice,
		DiscountPrice: v.DiscountPrice,
		Manufacturer:  v.Manufacturer,
		Status:        v.Status,
	}
}

// clone returns a copy of v that shares no memory with it.
func (v Values) clone() Values {
	v.CategoryID = copyID(v.CategoryID)
	return v
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
