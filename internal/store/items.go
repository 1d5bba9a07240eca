package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/erazemk/zaloga/internal/model"
)

// ErrNotFound is returned by writes that matched no live row.
var ErrNotFound = errors.New("not found")

const itemColumns = `i.id, i.name, i.description, i.category_id, i.packaging_type, i.quantity,
	i.cost_price, i.selling_price, i.discount_price, i.manufacturer, i.status, i.image_mime,
	i.created_at, i.updated_at, i.deleted_at, COALESCE(c.name, '')`

const itemFrom = `FROM inventory_items i LEFT JOIN categories c ON c.id = i.category_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*model.InventoryItem, error) {
	item := &model.InventoryItem{}
	var categoryID sql.NullInt64
	var imageMime sql.NullString
	var packaging, status string
	err := row.Scan(&item.ID, &item.Name, &item.Description, &categoryID, &packaging, &item.Quantity,
		&item.CostPrice, &item.SellingPrice, &item.DiscountPrice, &item.Manufacturer, &status, &imageMime,
		&item.CreatedAt, &item.UpdatedAt, &item.DeletedAt, &item.CategoryName)
	if err != nil {
		return nil, err
	}
	if categoryID.Valid {
		id := categoryID.Int64
		item.CategoryID = &id
	}
	item.PackagingType = model.PackagingType(packaging)
	item.Status = model.Status(status)
	item.ImageMime = imageMime.String
	return item, nil
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

// CreateInventoryItem inserts a new item. An unset status is stored as active.
func CreateInventoryItem(ctx context.Context, db *sql.DB, in model.InventoryItem) (*model.InventoryItem, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO inventory_items (name, description, category_id, packaging_type, quantity,
		     cost_price, selling_price, discount_price, manufacturer, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Name, in.Description, nullableID(in.CategoryID), string(in.PackagingType), in.Quantity,
		in.CostPrice, in.SellingPrice, in.DiscountPrice, in.Manufacturer, string(in.Status.OrDefault()),
	)
	if err != nil {
		return nil, fmt.Errorf("creating inventory item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting inventory item id: %w", err)
	}

	return GetInventoryItem(ctx, db, id)
}

// GetInventoryItem returns an item by ID, or nil if it does not exist.
func GetInventoryItem(ctx context.Context, db *sql.DB, id int64) (*model.InventoryItem, error) {
	item, err := scanItem(db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` `+itemFrom+` WHERE i.id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting inventory item: %w", err)
	}
	return item, nil
}

// ListInventoryItems returns all non-deleted items, optionally filtered by status.
func ListInventoryItems(ctx context.Context, db *sql.DB, status string) ([]model.InventoryItem, error) {
	var rows *sql.Rows
	var err error

	if status != "" {
		rows, err = db.QueryContext(ctx,
			`SELECT `+itemColumns+` `+itemFrom+`
			 WHERE i.deleted_at IS NULL AND i.status = ? ORDER BY i.name`, status,
		)
	} else {
		rows, err = db.QueryContext(ctx,
			`SELECT `+itemColumns+` `+itemFrom+`
			 WHERE i.deleted_at IS NULL ORDER BY i.name`,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("listing inventory items: %w", err)
	}
	defer rows.Close()

	var items []model.InventoryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning inventory item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// UpdateInventoryItem overwrites every editable field of the item with the
// given values. There is no version check: the last write wins.
func UpdateInventoryItem(ctx context.Context, db *sql.DB, id int64, in model.InventoryItem) error {
	result, err := db.ExecContext(ctx,
		`UPDATE inventory_items
		 SET name = ?, description = ?, category_id = ?, packaging_type = ?, quantity = ?,
		     cost_price = ?, selling_price = ?, discount_price = ?, manufacturer = ?, status = ?,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`,
		in.Name, in.Description, nullableID(in.CategoryID), string(in.PackagingType), in.Quantity,
		in.CostPrice, in.SellingPrice, in.DiscountPrice, in.Manufacturer, string(in.Status.OrDefault()),
		id,
	)
	if err != nil {
		return fmt.Errorf("updating inventory item: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating inventory item: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteInventoryItem soft-deletes an item.
func DeleteInventoryItem(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx,
		`UPDATE inventory_items SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("deleting inventory item: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetInventoryItemImage sets an item's image data.
func SetInventoryItemImage(ctx context.Context, db *sql.DB, id int64, image []byte, mime string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE inventory_items SET image = ?, image_mime = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`,
		image, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting inventory item image: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetInventoryItemImage returns an item's image data and MIME type.
func GetInventoryItemImage(ctx context.Context, db *sql.DB, id int64) ([]byte, string, error) {
	var image []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT image, image_mime FROM inventory_items WHERE id = ?`, id,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting inventory item image: %w", err)
	}
	return image, mime.String, nil
}
