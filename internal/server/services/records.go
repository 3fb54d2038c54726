package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/hopekeeper/internal/common"
	"github.com/dmitrijs2005/hopekeeper/internal/entities"
	"github.com/dmitrijs2005/hopekeeper/internal/server/repositories/repomanager"
)

// RecordService validates record payloads and stores them for the
// authenticated user. Rows travel as raw JSON in both directions.
type RecordService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewRecordService(db *sql.DB, m repomanager.RepositoryManager) *RecordService {
	return &RecordService{db: db, repomanager: m}
}

func (s *RecordService) List(ctx context.Context, userID, collection string) ([]json.RawMessage, error) {
	if !entities.Known(collection) {
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownCollection, collection)
	}

	rows, err := s.repomanager.Records(s.db).List(ctx, userID, collection)
	if err != nil {
		return nil, err
	}

	out := make([]json.RawMessage, 0, len(rows))
	for _, r := range rows {
		b, err := json.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("encode %s row: %w", collection, err)
		}
		out = append(out, b)
	}
	return out, nil
}

// Insert decodes row into the collection's type. Server-owned fields in the
// payload (id, user_id, timestamps) are ignored.
func (s *RecordService) Insert(ctx context.Context, userID, collection string, row json.RawMessage) (json.RawMessage, error) {
	dst, err := entities.NewRow(collection)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(row, dst); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidRow, err)
	}

	stored, err := s.repomanager.Records(s.db).Insert(ctx, userID, collection, dst.InsertMap())
	if err != nil {
		return nil, err
	}
	return json.Marshal(stored)
}

// Update applies a partial patch. Only the fields of the collection's patch
// type are accepted; anything else is rejected as ErrInvalidPatch.
func (s *RecordService) Update(ctx context.Context, userID, collection, id string, patch json.RawMessage) (json.RawMessage, error) {
	p, err := entities.NewPatch(collection)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(patch))
	dec.DisallowUnknownFields()
	if err := dec.Decode(p); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidPatch, err)
	}

	set := p.SetMap()
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: empty patch", common.ErrInvalidPatch)
	}

	stored, err := s.repomanager.Records(s.db).Update(ctx, userID, collection, id, set)
	if err != nil {
		return nil, err
	}
	return json.Marshal(stored)
}

// Delete removes one of userID's rows. Rows of other users are left alone
// and reported as not deleted.
func (s *RecordService) Delete(ctx context.Context, userID, collection, id string) (bool, error) {
	if !entities.Known(collection) {
		return false, fmt.Errorf("%w: %q", common.ErrUnknownCollection, collection)
	}
	return s.repomanager.Records(s.db).Delete(ctx, userID, collection, id)
}
