package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresCollection persists documents of type T as JSONB rows of a single table.
type PostgresCollection[T any, PT documentPtr[T]] struct {
	db      *sqlx.DB
	table   string
	timeout time.Duration
	now     func() time.Time
}

// NewPostgresCollection binds table of db. timeout bounds every operation.
func NewPostgresCollection[T any, PT documentPtr[T]](db *sqlx.DB, table string, timeout time.Duration) *PostgresCollection[T, PT] {
	return &PostgresCollection[T, PT]{
		db:      db,
		table:   table,
		timeout: timeout,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Find returns every document matching filter.
func (c *PostgresCollection[T, PT]) Find(ctx context.Context, filter Filter, sort Sort) ([]T, error) {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	query, args := selectQuery(c.table, filter, sort, 0)
	var bodies []string
	if err := c.db.SelectContext(ctx, &bodies, query, args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", c.table, err)
	}

	items := make([]T, 0, len(bodies))
	for _, body := range bodies {
		var doc T
		if err := json.Unmarshal([]byte(body), &doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", c.table, err)
		}
		items = append(items, doc)
	}
	return items, nil
}

// FindOne returns the oldest document matching filter or ErrNotFound.
func (c *PostgresCollection[T, PT]) FindOne(ctx context.Context, filter Filter) (*T, error) {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	query, args := selectQuery(c.table, filter, Sort{Field: "createdAt"}, 1)
	var body string
	if err := c.db.GetContext(ctx, &body, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find %s: %w", c.table, err)
	}

	var doc T
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.table, err)
	}
	return &doc, nil
}

// Insert stores doc, assigning a UUID when it has no id yet.
func (c *PostgresCollection[T, PT]) Insert(ctx context.Context, doc *T) error {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	d := PT(doc)
	if d.DocumentID() == "" {
		d.SetDocumentID(uuid.NewString())
	}
	now := c.now()
	d.Touch(now)

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.table, err)
	}

	query := fmt.Sprintf("INSERT INTO %s (id, body, created_at, updated_at) VALUES ($1, $2, $3, $4)", c.table)
	// lib/pq sends []byte as bytea; JSONB needs text.
	if _, err := c.db.ExecContext(ctx, query, d.DocumentID(), string(body), now, now); err != nil {
		return fmt.Errorf("insert %s: %w", c.table, err)
	}
	return nil
}

// Update merges the listed fields of doc onto the stored body of document id.
// doc is refreshed with the stored document.
func (c *PostgresCollection[T, PT]) Update(ctx context.Context, id string, doc *T, fields []string) error {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	d := PT(doc)
	d.SetDocumentID(id)
	now := c.now()
	d.Touch(now)

	patch, unset, err := jsonPatch(doc, fields)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.table, err)
	}

	query := fmt.Sprintf("UPDATE %s SET body = (body - $4::text[]) || $2::jsonb, updated_at = $3 WHERE id = $1 RETURNING body", c.table)
	var stored string
	if err := c.db.GetContext(ctx, &stored, query, id, string(patch), now, pq.Array(unset)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update %s: %w", c.table, err)
	}
	if err := json.Unmarshal([]byte(stored), doc); err != nil {
		return fmt.Errorf("decode %s: %w", c.table, err)
	}
	return nil
}

// Delete removes document id.
func (c *PostgresCollection[T, PT]) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	res, err := c.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", c.table), id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", c.table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", c.table, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// jsonPatch encodes the listed fields of doc, plus updatedAt, as a JSONB merge object.
// Listed fields the encoder omits are returned as keys to remove.
func jsonPatch(doc interface{}, fields []string) ([]byte, []string, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, nil, err
	}
	var encoded map[string]json.RawMessage
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return nil, nil, err
	}

	patch := map[string]json.RawMessage{"updatedAt": encoded["updatedAt"]}
	unset := []string{}
	for _, f := range writableFields(fields) {
		if v, ok := encoded[f]; ok {
			patch[f] = v
		} else {
			unset = append(unset, f)
		}
	}

	out, err := json.Marshal(patch)
	if err != nil {
		return nil, nil, err
	}
	return out, unset, nil
}

// selectQuery renders a body lookup. Filter keys are field names fixed by callers, never user input.
func selectQuery(table string, filter Filter, sort Sort, limit int) (string, []interface{}) {
	var b strings.Builder
	fmt.Fprintf(&b, "SELECT body FROM %s", table)

	keys := filter.Keys()
	args := make([]interface{}, 0, len(keys))
	for i, k := range keys {
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		fmt.Fprintf(&b, "body->>'%s' = $%d", k, i+1)
		args = append(args, filter[k])
	}

	if sort.Field != "" {
		dir := "ASC"
		if sort.Desc {
			dir = "DESC"
		}
		fmt.Fprintf(&b, " ORDER BY %s %s", orderExpr(sort.Field), dir)
	}
	if limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", limit)
	}
	return b.String(), args
}

func orderExpr(field string) string {
	switch field {
	case "createdAt":
		return "created_at"
	case "updatedAt":
		return "updated_at"
	default:
		return fmt.Sprintf("body->'%s'", field)
	}
}
