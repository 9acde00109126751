package repositories

import (
	"context"

	"garage-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// insertLineItems writes a document's rows inside the caller's transaction
func insertLineItems(ctx context.Context, tx pgx.Tx, docType string, docID int, items []models.LineItem) error {
	for _, li := range items {
		_, err := tx.Exec(ctx,
			`INSERT INTO line_items(document_type, document_id, row_id, category, item_id,
			   description, quantity, unit_price, taxable, discountable, paid)
			 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			docType, docID, li.RowID, li.Category, li.ItemID,
			li.Description, li.Quantity, li.UnitPrice, li.Taxable, li.Discountable, li.Paid,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// replaceLineItems swaps a document's rows inside the caller's transaction
func replaceLineItems(ctx context.Context, tx pgx.Tx, docType string, docID int, items []models.LineItem) error {
	_, err := tx.Exec(ctx,
		`DELETE FROM line_items WHERE document_type = $1 AND document_id = $2`, docType, docID)
	if err != nil {
		return err
	}
	return insertLineItems(ctx, tx, docType, docID, items)
}

// getLineItems loads a document's rows ordered by row id
func getLineItems(ctx context.Context, db *pgxpool.Pool, docType string, docID int) ([]models.LineItem, error) {
	rows, err := db.Query(ctx,
		`SELECT row_id, category, item_id, description, quantity, unit_price, taxable, discountable, paid
		 FROM line_items WHERE document_type = $1 AND document_id = $2 ORDER BY row_id`,
		docType, docID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.LineItem
	for rows.Next() {
		var li models.LineItem
		err := rows.Scan(&li.RowID, &li.Category, &li.ItemID, &li.Description,
			&li.Quantity, &li.UnitPrice, &li.Taxable, &li.Discountable, &li.Paid)
		if err != nil {
			return nil, err
		}
		items = append(items, li)
	}
	return items, nil
}
