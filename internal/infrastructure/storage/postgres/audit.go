package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	appctx "robotpacc/internal/core/context"
	"robotpacc/internal/core/id"
	"robotpacc/internal/domain/audit"
)

// CompressionAlgo specifies how stored changes are encoded.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// DefaultCompressThreshold is the change payload size above which entries are compressed.
const DefaultCompressThreshold = 4 * 1024

var (
	_ audit.Recorder = (*AuditService)(nil)
	_ audit.Reader   = (*AuditService)(nil)
)

// AuditService writes the ledger audit trail into ledger_audit. Entries are
// written through the caller's transaction, so they commit or roll back with
// the mutation they describe.
type AuditService struct {
	txManager *TxManager
	codec     *changeCodec
	now       func() time.Time
}

// NewAuditService creates a new audit service. A non-positive threshold uses
// DefaultCompressThreshold.
func NewAuditService(txManager *TxManager, compressThreshold int) (*AuditService, error) {
	codec, err := newChangeCodec(compressThreshold)
	if err != nil {
		return nil, err
	}
	return &AuditService{txManager: txManager, codec: codec, now: time.Now}, nil
}

// Record implements audit.Recorder.
func (s *AuditService) Record(ctx context.Context, change audit.Change) error {
	raw, err := json.Marshal(change.Changes)
	if err != nil {
		return fmt.Errorf("marshal changes: %w", err)
	}
	plain, compressed, algo := s.codec.encode(raw)

	const q = `
		INSERT INTO ledger_audit (
			id, entity_type, entity_key, action,
			changes, changes_compressed, compression_algo, request_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = s.txManager.GetQuerier(ctx).Exec(ctx, q,
		id.New(), change.EntityType, change.EntityKey, string(change.Action),
		plain, compressed, string(algo), appctx.GetRequestID(ctx), s.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// History implements audit.Reader.
func (s *AuditService) History(ctx context.Context, entityType, entityKey string, limit int) ([]audit.Entry, error) {
	const q = `
		SELECT id, entity_type, entity_key, action,
		       changes, changes_compressed, compression_algo, created_at
		FROM ledger_audit
		WHERE entity_type = $1 AND entity_key = $2
		ORDER BY created_at DESC
		LIMIT $3`

	rows, err := s.txManager.GetQuerier(ctx).Query(ctx, q, entityType, entityKey, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	entries := make([]audit.Entry, 0)
	for rows.Next() {
		var (
			e          audit.Entry
			entryID    id.ID
			action     string
			plain      []byte
			compressed []byte
			algo       string
		)
		if err := rows.Scan(&entryID, &e.EntityType, &e.EntityKey, &action,
			&plain, &compressed, &algo, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}

		changes, err := s.codec.decode(plain, compressed, CompressionAlgo(algo))
		if err != nil {
			return nil, err
		}
		e.ID = entryID.String()
		e.Action = audit.Action(action)
		e.Changes = changes
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// changeCodec compresses large change payloads with zstd.
type changeCodec struct {
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
	threshold int
}

func newChangeCodec(threshold int) (*changeCodec, error) {
	if threshold <= 0 {
		threshold = DefaultCompressThreshold
	}
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &changeCodec{encoder: encoder, decoder: decoder, threshold: threshold}, nil
}

// encode returns either the plain JSON or its compressed form, never both.
func (c *changeCodec) encode(raw []byte) (plain, compressed []byte, algo CompressionAlgo) {
	if len(raw) <= c.threshold {
		return raw, nil, CompressionNone
	}
	return nil, c.encoder.EncodeAll(raw, nil), CompressionZstd
}

func (c *changeCodec) decode(plain, compressed []byte, algo CompressionAlgo) (json.RawMessage, error) {
	if algo != CompressionZstd || len(compressed) == 0 {
		return plain, nil
	}
	out, err := c.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress changes: %w", err)
	}
	return out, nil
}
