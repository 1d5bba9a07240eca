package model

import (
	"fmt"
	"time"
)

// InventoryItem is a stocked product line.
type InventoryItem struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	CategoryID    *int64        `json:"category_id"`
	PackagingType PackagingType `json:"packaging_type"`
	Quantity      int           `json:"quantity"`
	CostPrice     string        `json:"cost_price"`
	SellingPrice  string        `json:"selling_price"`
	DiscountPrice string        `json:"discount_price"`
	Manufacturer  string        `json:"manufacturer"`
	Status        Status        `json:"status"`
	ImageMime     string        `json:"image_mime,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	DeletedAt     *time.Time    `json:"deleted_at,omitempty"`

	// Joined field (not always populated).
	CategoryName string `json:"category_name,omitempty"`
}

// PackagingType is the physical packaging an item is sold in.
// The zero value means no packaging is recorded.
type PackagingType string

// Packaging types.
const (
	PackagingUnset     PackagingType = ""
	PackagingBottle    PackagingType = "Bottle"
	PackagingCan       PackagingType = "Can"
	PackagingBox       PackagingType = "Box"
	PackagingBag       PackagingType = "Bag"
	PackagingPouch     PackagingType = "Pouch"
	PackagingCarton    PackagingType = "Carton"
	PackagingJar       PackagingType = "Jar"
	PackagingSachet    PackagingType = "Sachet"
	PackagingTetraPack PackagingType = "Tetra Pack"
)

// PackagingTypes lists every packaging type in display order, excluding the unset variant.
var PackagingTypes = []PackagingType{
	PackagingBottle,
	PackagingCan,
	PackagingBox,
	PackagingBag,
	PackagingPouch,
	PackagingCarton,
	PackagingJar,
	PackagingSachet,
	PackagingTetraPack,
}

// ParsePackagingType returns the packaging type named by s.
// The empty string parses to PackagingUnset.
func ParsePackagingType(s string) (PackagingType, error) {
	if s == "" {
		return PackagingUnset, nil
	}
	for _, p := range PackagingTypes {
		if string(p) == s {
			return p, nil
		}
	}
	return PackagingUnset, fmt.Errorf("unknown packaging type %q", s)
}

// Status is the lifecycle state of an item.
// The zero value is distinct from every valid status.
type Status string

// Item statuses.
const (
	StatusUnset        Status = ""
	StatusActive       Status = "active"
	StatusInactive     Status = "inactive"
	StatusDiscontinued Status = "discontinued"
)

// Statuses lists the valid item statuses in display order.
var Statuses = []Status{StatusActive, StatusInactive, StatusDiscontinued}

// ParseStatus returns the status named by s. Unlike packaging,
// an empty string is rejected: an item always has a status.
func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return StatusUnset, fmt.Errorf("unknown status %q", s)
}

// OrDefault returns s, or StatusActive when s is unset.
func (s Status) OrDefault() Status {
	if s == StatusUnset {
		return StatusActive
	}
	return s
}
