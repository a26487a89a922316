package sqlite

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/safespace-sl/safespace/internal/memory"
)

// Insert stores a fact, replacing any existing row with the same ID.
func (f *factStore) Insert(ctx context.Context, fact memory.Fact) error {
	if fact.ID == "" {
		fact.ID = uuid.NewString()
	}
	if fact.Content == "" {
		return fmt.Errorf("sqlite: insert fact: empty content")
	}

	metaJSON, err := json.Marshal(fact.Metadata)
	if err != nil {
		return fmt.Errorf("sqlite: marshal metadata: %w", err)
	}

	_, err = f.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO facts (id, content, embedding, metadata)
		VALUES (?, ?, ?, ?)`,
		fact.ID, fact.Content, encodeEmbedding(fact.Embedding), string(metaJSON),
	)
	if err != nil {
		return fmt.Errorf("sqlite: insert fact: %w", err)
	}
	return nil
}

// All returns every stored fact with its decoded embedding.
func (f *factStore) All(ctx context.Context) ([]memory.Fact, error) {
	rows, err := f.db.QueryContext(ctx, "SELECT id, content, embedding, metadata FROM facts")
	if err != nil {
		return nil, fmt.Errorf("sqlite: load facts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var facts []memory.Fact
	for rows.Next() {
		var (
			fact     memory.Fact
			blob     []byte
			metaJSON string
		)
		if err := rows.Scan(&fact.ID, &fact.Content, &blob, &metaJSON); err != nil {
			return nil, fmt.Errorf("sqlite: scan fact: %w", err)
		}

		fact.Embedding, err = decodeEmbedding(blob)
		if err != nil {
			return nil, fmt.Errorf("sqlite: fact %s: %w", fact.ID, err)
		}

		if metaJSON != "" && metaJSON != "{}" && metaJSON != "null" {
			if err := json.Unmarshal([]byte(metaJSON), &fact.Metadata); err != nil {
				return nil, fmt.Errorf("sqlite: unmarshal metadata: %w", err)
			}
		}

		facts = append(facts, fact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: load facts rows: %w", err)
	}
	return facts, nil
}

// encodeEmbedding packs a vector as little-endian float32 bytes.
func encodeEmbedding(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf
}

// decodeEmbedding is the inverse of encodeEmbedding.
func decodeEmbedding(buf []byte) ([]float32, error) {
	if len(buf)%4 != 0 {
		return nil, fmt.Errorf("embedding blob length %d not a multiple of 4", len(buf))
	}
	vec := make([]float32, len(buf)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return vec, nil
}
