package storage

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teranos/semval/dv/item"
	"github.com/teranos/semval/dv/property"
	"github.com/teranos/semval/db"
	"github.com/teranos/semval/errors"
	"github.com/teranos/semval/logger"
)

// SQLStore is a property.Store over the facts table.
type SQLStore struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

var _ property.Store = (*SQLStore)(nil)

// NewSQLStore wraps db, which must carry the facts migration.
func NewSQLStore(db *sql.DB, log *zap.SugaredLogger) *SQLStore {
	if log == nil {
		log = logger.Logger
	}
	return &SQLStore{db: db, logger: log}
}

// Add records subject carrying propertyKey=it and returns the fact id.
func (s *SQLStore) Add(ctx context.Context, subject item.EntityRef, propertyKey string, it item.Item) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO facts (id, subject, subject_root, property, kind, item_hash, item)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, subject.Serialize(), subject.Root().Serialize(), propertyKey,
		it.Kind().String(), it.Hash(), it.Serialize())
	if err != nil {
		return "", errors.Wrapf(db.MarkClosed(err), "insert fact %s of %s", propertyKey, subject.Title())
	}
	logger.FromContext(ctx, s.logger).Debugw("fact added",
		logger.FieldSubject, subject.String(),
		logger.FieldProperty, propertyKey)
	return id, nil
}

// Declare adds meta declarations to the property page of p.
func (s *SQLStore) Declare(ctx context.Context, p *property.Property, meta string, items ...item.Item) error {
	for _, it := range items {
		if _, err := s.Add(ctx, p.Entity(), meta, it); err != nil {
			return err
		}
	}
	return nil
}

// Remove deletes every fact of subject's root entity, sub-objects
// included.
func (s *SQLStore) Remove(ctx context.Context, subject item.EntityRef) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM facts WHERE subject_root = ?`, subject.Root().Serialize())
	if err != nil {
		return 0, errors.Wrapf(db.MarkClosed(err), "delete facts of %s", subject.Title())
	}
	return res.RowsAffected()
}

func (s *SQLStore) QueryValues(ctx context.Context, p *property.Property, cond property.Condition, limit int) ([]item.EntityRef, error) {
	if cond.Value == nil {
		return nil, errors.Wrap(errors.ErrInvalidRequest, "query without value")
	}
	if limit <= 0 {
		limit = -1
	}
	exclude := ""
	if !cond.ExcludeSubject.IsZero() {
		exclude = cond.ExcludeSubject.Root().Serialize()
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT subject_root FROM facts
		 WHERE property = ? AND kind = ? AND item_hash = ? AND subject_root != ?
		 GROUP BY subject_root
		 ORDER BY MIN(rowid)
		 LIMIT ?`,
		p.Key, cond.Value.Kind().String(), cond.Value.Hash(), exclude, limit)
	if err != nil {
		return nil, errors.Wrapf(db.MarkClosed(err), "query values of %s", p.Key)
	}
	defer rows.Close()

	var out []item.EntityRef
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, errors.Wrap(err, "scan subject")
		}
		it, err := item.Deserialize(item.KindEntity, raw)
		if err != nil {
			return nil, errors.Wrapf(err, "decode subject of %s", p.Key)
		}
		out = append(out, it.(item.EntityRef))
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate subjects")
	}
	return out, nil
}

func (s *SQLStore) FetchSpecification(ctx context.Context, subject item.EntityRef, meta string) ([]item.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, item FROM facts WHERE subject = ? AND property = ? ORDER BY rowid`,
		subject.Serialize(), meta)
	if err != nil {
		return nil, errors.Wrapf(db.MarkClosed(err), "fetch %s of %s", meta, subject.Title())
	}
	defer rows.Close()

	var out []item.Item
	for rows.Next() {
		var kindName, raw string
		if err := rows.Scan(&kindName, &raw); err != nil {
			return nil, errors.Wrap(err, "scan declaration")
		}
		kind, err := item.ParseKind(kindName)
		if err != nil {
			return nil, errors.Wrapf(err, "declaration %s of %s", meta, subject.Title())
		}
		it, err := item.Deserialize(kind, raw)
		if err != nil {
			return nil, errors.Wrapf(err, "declaration %s of %s", meta, subject.Title())
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate declarations")
	}
	return out, nil
}
