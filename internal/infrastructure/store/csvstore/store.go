// Package csvstore persists chunks and their embeddings as one flat CSV
// file. The file is the single durable owner of chunk+vector data: every
// save overwrites it whole, and load reconstructs both the chunk list and
// the stacked vector matrix in matching order.
package csvstore

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"contract-rag/internal/core/domain"
)

var columns = []string{
	"page_number",
	"sentence_chunk",
	"chunk_char_count",
	"chunk_word_count",
	"chunk_token_count",
	"embedding",
}

type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// Save writes every chunk as one CSV row, replacing any previous store file.
// The embedding column is encoded as a bracketed, space-separated float
// list, e.g. "[0.1 0.2 0.3]".
func (s *Store) Save(ctx context.Context, chunks []domain.Chunk) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	file, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create store file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("write store header: %w", err)
	}
	for i, chunk := range chunks {
		row := []string{
			strconv.Itoa(chunk.PageNumber),
			chunk.SentenceChunk,
			strconv.Itoa(chunk.CharCount),
			strconv.Itoa(chunk.WordCount),
			strconv.FormatFloat(chunk.TokenCount, 'g', -1, 64),
			formatEmbedding(chunk.Embedding),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write store row %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush store file: %w", err)
	}
	return nil
}

// Load reads the store back. Row i of the returned matrix describes chunk i;
// a malformed row aborts the whole load since skipping it would break that
// alignment.
func (s *Store) Load(ctx context.Context) ([]domain.Chunk, [][]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, domain.WrapError(domain.ErrStoreNotFound, "open embedding store", err)
		}
		return nil, nil, fmt.Errorf("open embedding store: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, domain.WrapError(domain.ErrCorruptStore, "read embedding store", err)
	}
	if len(records) == 0 {
		return nil, nil, domain.WrapError(domain.ErrCorruptStore, "read embedding store", fmt.Errorf("missing header"))
	}
	if err := checkHeader(records[0]); err != nil {
		return nil, nil, domain.WrapError(domain.ErrCorruptStore, "read embedding store", err)
	}

	rows := records[1:]
	chunks := make([]domain.Chunk, 0, len(rows))
	vectors := make([][]float32, 0, len(rows))
	dimension := -1
	for i, row := range rows {
		chunk, vector, err := parseRow(row)
		if err != nil {
			return nil, nil, domain.WrapError(domain.ErrCorruptStore, fmt.Sprintf("parse store row %d", i), err)
		}
		if dimension == -1 {
			dimension = len(vector)
		}
		if len(vector) != dimension {
			return nil, nil, domain.WrapError(
				domain.ErrCorruptStore,
				fmt.Sprintf("parse store row %d", i),
				fmt.Errorf("embedding dimension %d, expected %d", len(vector), dimension),
			)
		}
		chunk.Embedding = vector
		chunks = append(chunks, chunk)
		vectors = append(vectors, vector)
	}
	return chunks, vectors, nil
}

func checkHeader(header []string) error {
	if len(header) != len(columns) {
		return fmt.Errorf("header has %d columns, expected %d", len(header), len(columns))
	}
	for i, name := range columns {
		if header[i] != name {
			return fmt.Errorf("header column %d is %q, expected %q", i, header[i], name)
		}
	}
	return nil
}

func parseRow(row []string) (domain.Chunk, []float32, error) {
	if len(row) != len(columns) {
		return domain.Chunk{}, nil, fmt.Errorf("row has %d fields, expected %d", len(row), len(columns))
	}

	pageNumber, err := strconv.Atoi(row[0])
	if err != nil {
		return domain.Chunk{}, nil, fmt.Errorf("parse page_number: %w", err)
	}
	charCount, err := strconv.Atoi(row[2])
	if err != nil {
		return domain.Chunk{}, nil, fmt.Errorf("parse chunk_char_count: %w", err)
	}
	wordCount, err := strconv.Atoi(row[3])
	if err != nil {
		return domain.Chunk{}, nil, fmt.Errorf("parse chunk_word_count: %w", err)
	}
	tokenCount, err := strconv.ParseFloat(row[4], 64)
	if err != nil {
		return domain.Chunk{}, nil, fmt.Errorf("parse chunk_token_count: %w", err)
	}
	vector, err := parseEmbedding(row[5])
	if err != nil {
		return domain.Chunk{}, nil, fmt.Errorf("parse embedding: %w", err)
	}

	return domain.Chunk{
		PageNumber:    pageNumber,
		SentenceChunk: row[1],
		CharCount:     charCount,
		WordCount:     wordCount,
		TokenCount:    tokenCount,
	}, vector, nil
}

func formatEmbedding(vector []float32) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range vector {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 32))
	}
	sb.WriteByte(']')
	return sb.String()
}

func parseEmbedding(field string) ([]float32, error) {
	trimmed := strings.TrimSpace(field)
	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
		return nil, fmt.Errorf("embedding %q is not bracket-delimited", field)
	}
	parts := strings.Fields(strings.Trim(trimmed, "[]"))
	if len(parts) == 0 {
		return nil, fmt.Errorf("embedding is empty")
	}
	vector := make([]float32, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(part, 32)
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
		vector[i] = float32(v)
	}
	return vector, nil
}
