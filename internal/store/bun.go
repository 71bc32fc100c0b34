package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-contentgraph/internal/digest"
	"github.com/goliatone/go-contentgraph/pkg/interfaces"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

var (
	ErrUnsupportedDriver = errors.New("contentgraph store: unsupported driver")
	ErrInvalidNodeID     = errors.New("contentgraph store: node id is not a uuid")
)

// NodeRecord is the persisted form of a ContentNode.
type NodeRecord struct {
	bun.BaseModel `bun:"table:content_nodes,alias:cn"`

	ID        uuid.UUID      `bun:",pk,type:uuid"                                 json:"id"`
	Parent    string         `bun:"parent"                                        json:"parent"`
	Type      string         `bun:"type,notnull"                                  json:"type"`
	Digest    string         `bun:"content_digest,notnull"                        json:"content_digest"`
	Fields    map[string]any `bun:"fields,type:jsonb"                             json:"fields,omitempty"`
	CreatedAt time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

func (r *NodeRecord) node() *interfaces.ContentNode {
	fields := r.Fields
	if fields == nil {
		fields = map[string]any{}
	}
	return &interfaces.ContentNode{
		ID:     r.ID.String(),
		Parent: r.Parent,
		Internal: interfaces.NodeInternal{
			Type:          r.Type,
			ContentDigest: r.Digest,
		},
		Fields: fields,
	}
}

// NewNodeRepository builds the go-repository-bun repository for NodeRecord.
func NewNodeRepository(db *bun.DB) repository.Repository[*NodeRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*NodeRecord]{
		NewRecord: func() *NodeRecord { return &NodeRecord{} },
		GetID: func(r *NodeRecord) uuid.UUID {
			return r.ID
		},
		SetID: func(r *NodeRecord, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(r *NodeRecord) string {
			if r == nil {
				return ""
			}
			return r.ID.String()
		},
	})
}

// OpenDB opens a bun database for driver. Supported drivers are sqlite3 and
// postgres (through pgx).
func OpenDB(driver, dsn string) (*bun.DB, error) {
	switch driver {
	case DriverSQLite:
		sqldb, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("contentgraph store: open sqlite: %w", err)
		}
		db := bun.NewDB(sqldb, sqlitedialect.New())
		db.SetMaxOpenConns(1)
		return db, nil
	case DriverPostgres:
		sqldb, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("contentgraph store: open postgres: %w", err)
		}
		return bun.NewDB(sqldb, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

// EnsureSchema creates the content_nodes table when missing.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*NodeRecord)(nil)).IfNotExists().Exec(ctx)
	return err
}

// BunStore persists nodes through go-repository-bun. Node ids must be UUID
// strings, which is what the default id synthesizer produces.
type BunStore struct {
	repo repository.Repository[*NodeRecord]
}

var _ interfaces.NodeStore = (*BunStore)(nil)

func NewBunStore(db *bun.DB) *BunStore {
	return NewBunStoreWithCache(db, nil, nil)
}

// NewBunStoreWithCache wraps the repository with go-repository-cache when both
// cacheService and keySerializer are set.
func NewBunStoreWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunStore {
	var base repository.Repository[*NodeRecord] = NewNodeRepository(db)
	if cacheService != nil && keySerializer != nil {
		base = repositorycache.New(base, cacheService, keySerializer)
	}
	return &BunStore{repo: base}
}

// Register inserts the node or replaces the stored row with the same id.
func (s *BunStore) Register(ctx context.Context, node *interfaces.ContentNode) error {
	if node == nil {
		return ErrNodeRequired
	}
	id, err := uuid.Parse(node.ID)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidNodeID, node.ID)
	}

	fields, _ := digest.Normalize(node.Fields).(map[string]any)
	record := &NodeRecord{
		ID:     id,
		Parent: node.Parent,
		Type:   node.Internal.Type,
		Digest: node.Internal.ContentDigest,
		Fields: fields,
	}

	existing, err := s.repo.GetByID(ctx, id.String())
	switch {
	case err == nil:
		record.CreatedAt = existing.CreatedAt
		record.UpdatedAt = time.Now().UTC()
		if _, err := s.repo.Update(ctx, record); err != nil {
			return fmt.Errorf("content_nodes repository error: %w", err)
		}
		return nil
	case goerrors.IsCategory(err, repository.CategoryDatabaseNotFound):
		if _, err := s.repo.Create(ctx, record); err != nil {
			return fmt.Errorf("content_nodes repository error: %w", err)
		}
		return nil
	default:
		return mapRepositoryError(err, node.ID)
	}
}

func (s *BunStore) Get(ctx context.Context, id string) (*interfaces.ContentNode, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, &NotFoundError{ID: id}
	}
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err, id)
	}
	return record.node(), nil
}

// List returns stored nodes ordered by type and id.
func (s *BunStore) List(ctx context.Context) ([]*interfaces.ContentNode, error) {
	records, _, err := s.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.type ASC").OrderExpr("?TableAlias.id ASC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("content_nodes repository error: %w", err)
	}
	out := make([]*interfaces.ContentNode, 0, len(records))
	for _, record := range records {
		out = append(out, record.node())
	}
	return out, nil
}

func mapRepositoryError(err error, id string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{ID: id}
	}
	return fmt.Errorf("content_nodes repository error: %w", err)
}
