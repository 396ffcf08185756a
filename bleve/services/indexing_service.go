package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"go.uber.org/zap"
)

// IndexingService manages one on-disk bleve index per document kind. The
// management UI searches these indexes; the import pipeline only feeds them
// after a committed batch.
type IndexingService struct {
	indexes  map[string]bleve.Index
	logger   *zap.Logger
	basePath string
}

func NewIndexingService(logger *zap.Logger, basePath string) *IndexingService {
	return &IndexingService{
		indexes:  make(map[string]bleve.Index),
		logger:   logger,
		basePath: basePath,
	}
}

func (s *IndexingService) GetIndex(indexName string) (bleve.Index, error) {
	return s.getOrCreateIndex(indexName)
}

func (s *IndexingService) getOrCreateIndex(indexName string) (bleve.Index, error) {
	if idx, ok := s.indexes[indexName]; ok {
		return idx, nil
	}

	fullPath := fmt.Sprintf("%s/%s.bleve", s.basePath, indexName)
	mapping := bleve.NewIndexMapping()

	idx, err := bleve.Open(fullPath)
	if err != nil {
		// Index does not exist yet, create a new one
		idx, err = bleve.New(fullPath, mapping)
		if err != nil {
			return nil, fmt.Errorf("failed to create index %s: %w", fullPath, err)
		}
	}

	s.indexes[indexName] = idx
	return idx, nil
}

func (s *IndexingService) IndexDocument(indexName, id string, document interface{}) error {
	idx, err := s.getOrCreateIndex(indexName)
	if err != nil {
		s.logger.Error("Could not get or create index", zap.Error(err))
		return err
	}

	if err := idx.Index(id, document); err != nil {
		s.logger.Error("Failed to index document",
			zap.String("index", indexName),
			zap.String("id", id),
			zap.Error(err))
		return err
	}
	return nil
}

func (s *IndexingService) BulkIndexDocuments(indexName string, documents map[string]interface{}) error {
	idx, err := s.getOrCreateIndex(indexName)
	if err != nil {
		return err
	}

	batch := idx.NewBatch()
	for id, document := range documents {
		if err := batch.Index(id, document); err != nil {
			return fmt.Errorf("failed to add document %s to batch: %w", id, err)
		}
	}

	if err := idx.Batch(batch); err != nil {
		s.logger.Error("Failed to execute bulk index batch",
			zap.String("index", indexName),
			zap.Int("count", len(documents)),
			zap.Error(err))
		return err
	}
	return nil
}

func (s *IndexingService) DeleteDocument(indexName, id string) error {
	idx, err := s.getOrCreateIndex(indexName)
	if err != nil {
		return err
	}
	return idx.Delete(id)
}

// DeleteAllIndices closes every open index and removes the index directories
// from disk. Used on startup before a full reindex.
func (s *IndexingService) DeleteAllIndices() error {
	for name, idx := range s.indexes {
		if err := idx.Close(); err != nil {
			s.logger.Warn("Failed to close index before deletion",
				zap.String("index", name),
				zap.Error(err))
		}
		delete(s.indexes, name)
	}

	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read index directory %s: %w", s.basePath, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasSuffix(entry.Name(), ".bleve") {
			continue
		}
		fullPath := filepath.Join(s.basePath, entry.Name())
		if err := os.RemoveAll(fullPath); err != nil {
			return fmt.Errorf("failed to remove index %s: %w", fullPath, err)
		}
	}
	return nil
}
