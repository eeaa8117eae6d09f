package postgresadapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"claimerapi/contexts/snapshot-claims/claim-service/domain/entities"
	domainerrors "claimerapi/contexts/snapshot-claims/claim-service/domain/errors"
	"claimerapi/contexts/snapshot-claims/claim-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

// Migrate creates the claims table and its unique source-address index.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&claimModel{})
}

func (r *Repository) FindBySourceAddress(ctx context.Context, sourceAddress string) (entities.Claim, bool, error) {
	var row claimModel
	err := r.db.WithContext(ctx).
		Where("source_address = ?", strings.TrimSpace(sourceAddress)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Claim{}, false, nil
		}
		return entities.Claim{}, false, err
	}
	claim, err := row.toEntity()
	if err != nil {
		return entities.Claim{}, false, err
	}
	return claim, true, nil
}

func (r *Repository) Insert(ctx context.Context, claim entities.Claim) error {
	row := claimModelFromEntity(claim)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			r.logger.Warn("claim insert hit unique index",
				"event", "claim_repo_insert_unique_conflict",
				"module", "snapshot-claims/claim-service",
				"layer", "adapter",
				"source_address", strings.TrimSpace(claim.SourceAddress),
			)
			return domainerrors.ErrDuplicateAddress
		}
		return err
	}
	return nil
}

func (r *Repository) ListAll(ctx context.Context, opts ports.ListOptions) ([]entities.Claim, error) {
	tx := r.db.WithContext(ctx).Model(&claimModel{})
	switch opts.Order {
	case ports.OrderOldestFirst:
		tx = tx.Order("created_at ASC, id ASC")
	default:
		tx = tx.Order("created_at DESC, id DESC")
	}
	if opts.Offset > 0 {
		tx = tx.Offset(opts.Offset)
	}
	if opts.Limit > 0 {
		tx = tx.Limit(opts.Limit)
	}

	var rows []claimModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]entities.Claim, 0, len(rows))
	for _, row := range rows {
		claim, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, claim)
	}
	return items, nil
}

func (r *Repository) SumBalances(ctx context.Context) (*big.Int, error) {
	var total string
	err := r.db.WithContext(ctx).
		Model(&claimModel{}).
		Select("COALESCE(SUM(claimed_balance), 0)::text").
		Scan(&total).
		Error
	if err != nil {
		return nil, err
	}
	sum, ok := new(big.Int).SetString(strings.TrimSpace(total), 10)
	if !ok {
		return nil, fmt.Errorf("claims balance sum %q is not an integer", total)
	}
	return sum, nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&claimModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type claimModel struct {
	ID                 string    `gorm:"column:id;primaryKey"`
	SourceAddress      string    `gorm:"column:source_address;uniqueIndex:idx_claims_source_address"`
	DestinationAddress string    `gorm:"column:destination_address;index"`
	ClaimedBalance     string    `gorm:"column:claimed_balance;type:numeric(78,0)"`
	Signature          string    `gorm:"column:signature"`
	RawPayload         string    `gorm:"column:raw_payload"`
	CreatedAt          time.Time `gorm:"column:created_at"`
}

func (claimModel) TableName() string {
	return "claims"
}

func claimModelFromEntity(claim entities.Claim) claimModel {
	balance := "0"
	if claim.ClaimedBalance != nil {
		balance = claim.ClaimedBalance.String()
	}
	return claimModel{
		ID:                 strings.TrimSpace(claim.ID),
		SourceAddress:      strings.TrimSpace(claim.SourceAddress),
		DestinationAddress: strings.TrimSpace(claim.DestinationAddress),
		ClaimedBalance:     balance,
		Signature:          claim.Signature,
		RawPayload:         claim.RawPayload,
		CreatedAt:          claim.CreatedAt.UTC(),
	}
}

func (m claimModel) toEntity() (entities.Claim, error) {
	balance, ok := new(big.Int).SetString(strings.TrimSpace(m.ClaimedBalance), 10)
	if !ok {
		return entities.Claim{}, fmt.Errorf("claim %s balance %q is not an integer", m.ID, m.ClaimedBalance)
	}
	return entities.Claim{
		ID:                 m.ID,
		SourceAddress:      m.SourceAddress,
		DestinationAddress: m.DestinationAddress,
		ClaimedBalance:     balance,
		Signature:          m.Signature,
		RawPayload:         m.RawPayload,
		CreatedAt:          m.CreatedAt,
	}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
