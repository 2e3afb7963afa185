package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Abhijit03/auction-app/internal/auctionerrors"
	model "github.com/Abhijit03/auction-app/internal/models"
)

// PostgresStore is an AuctionStore backed by a PostgreSQL connection pool.
// ApplyBid runs in a transaction that locks the auction row FOR UPDATE, which
// gives the serializable per-auction semantics without blocking other rows.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore initializes a store over a new connection pool
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Close closes the underlying connection pool
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Pool exposes the pool for migrations and tests
func (s *PostgresStore) Pool() *pgxpool.Pool {
	return s.pool
}

// CreateUser inserts a user record
func (s *PostgresStore) CreateUser(ctx context.Context, user model.User) error {
	_, err := s.pool.Exec(ctx,
		"INSERT INTO users (id, username, is_admin, created_at) VALUES ($1, $2, $3, $4)",
		user.UserID, user.Username, user.IsAdmin, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by id
func (s *PostgresStore) GetUser(ctx context.Context, userID string) (model.User, error) {
	var user model.User
	err := s.pool.QueryRow(ctx,
		"SELECT id, username, is_admin, created_at FROM users WHERE id = $1",
		userID).Scan(&user.UserID, &user.Username, &user.IsAdmin, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, fmt.Errorf("get user %s: %w", userID, auctionerrors.ErrUserNotFound)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByUsername retrieves a user by username
func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	var user model.User
	err := s.pool.QueryRow(ctx,
		"SELECT id, username, is_admin, created_at FROM users WHERE username = $1",
		username).Scan(&user.UserID, &user.Username, &user.IsAdmin, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, fmt.Errorf("get user by username %s: %w", username, auctionerrors.ErrUserNotFound)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

// CreateCategory inserts a category record
func (s *PostgresStore) CreateCategory(ctx context.Context, category model.Category) error {
	_, err := s.pool.Exec(ctx,
		"INSERT INTO categories (id, name, description, created_at) VALUES ($1, $2, $3, $4)",
		category.CategoryID, category.Name, category.Description, category.CreatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("create category %s: %w", category.Name, auctionerrors.ErrDuplicateCategory)
	}
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// GetCategory retrieves a category by id
func (s *PostgresStore) GetCategory(ctx context.Context, categoryID string) (model.Category, error) {
	var category model.Category
	err := s.pool.QueryRow(ctx,
		"SELECT id, name, description, created_at FROM categories WHERE id = $1",
		categoryID).Scan(&category.CategoryID, &category.Name, &category.Description, &category.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Category{}, fmt.Errorf("get category %s: %w", categoryID, auctionerrors.ErrCategoryNotFound)
	}
	if err != nil {
		return model.Category{}, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

// GetCategoryByName retrieves a category by its unique name
func (s *PostgresStore) GetCategoryByName(ctx context.Context, name string) (model.Category, error) {
	var category model.Category
	err := s.pool.QueryRow(ctx,
		"SELECT id, name, description, created_at FROM categories WHERE name = $1",
		name).Scan(&category.CategoryID, &category.Name, &category.Description, &category.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Category{}, fmt.Errorf("get category by name %s: %w", name, auctionerrors.ErrCategoryNotFound)
	}
	if err != nil {
		return model.Category{}, fmt.Errorf("failed to get category by name: %w", err)
	}
	return category, nil
}

// ListCategories retrieves all categories
func (s *PostgresStore) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT id, name, description, created_at FROM categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.CategoryID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// DeleteCategory removes a category unless auctions still reference it
func (s *PostgresStore) DeleteCategory(ctx context.Context, categoryID string) error {
	var inUse bool
	err := s.pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM auctions WHERE category_id = $1)", categoryID).Scan(&inUse)
	if err != nil {
		return fmt.Errorf("failed to check category usage: %w", err)
	}
	if inUse {
		return fmt.Errorf("delete category %s: %w", categoryID, auctionerrors.ErrCategoryInUse)
	}

	tag, err := s.pool.Exec(ctx, "DELETE FROM categories WHERE id = $1", categoryID)
	if isForeignKeyViolation(err) {
		// An auction was inserted between the check and the delete.
		return fmt.Errorf("delete category %s: %w", categoryID, auctionerrors.ErrCategoryInUse)
	}
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete category %s: %w", categoryID, auctionerrors.ErrCategoryNotFound)
	}
	return nil
}

// CreateAuction inserts an auction record
func (s *PostgresStore) CreateAuction(ctx context.Context, a model.Auction) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO auctions (id, seller_id, category_id, title, description,
		 starting_price, current_price, end_time, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.AuctionID, a.SellerID, a.CategoryID, a.Title, a.Description,
		a.StartingPrice, a.CurrentPrice, a.EndTime, a.IsActive, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create auction: %w", err)
	}
	return nil
}

// GetAuction retrieves an auction by id
func (s *PostgresStore) GetAuction(ctx context.Context, auctionID string) (model.Auction, error) {
	a, err := scanAuction(s.pool.QueryRow(ctx, selectAuction+" WHERE id = $1", auctionID))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Auction{}, fmt.Errorf("auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if err != nil {
		return model.Auction{}, fmt.Errorf("failed to get auction: %w", err)
	}
	return a, nil
}

// SetAuctionActive updates the listing's active flag
func (s *PostgresStore) SetAuctionActive(ctx context.Context, auctionID string, active bool) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE auctions SET is_active = $1 WHERE id = $2", active, auctionID)
	if err != nil {
		return fmt.Errorf("failed to update auction active flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return nil
}

// ListActive retrieves auctions that are biddable at now, newest first
func (s *PostgresStore) ListActive(ctx context.Context, now time.Time, limit, offset int) ([]model.Auction, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		selectAuction+` WHERE is_active AND end_time > $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		now, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list active auctions: %w", err)
	}
	defer rows.Close()
	return collectAuctions(rows)
}

// ListByCategory retrieves all auctions in a category, newest first
func (s *PostgresStore) ListByCategory(ctx context.Context, categoryID string) ([]model.Auction, error) {
	if _, err := s.GetCategory(ctx, categoryID); err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx,
		selectAuction+" WHERE category_id = $1 ORDER BY created_at DESC", categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list auctions by category: %w", err)
	}
	defer rows.Close()
	return collectAuctions(rows)
}

// ApplyBid inserts a bid and raises the current price in one transaction.
// The auction row is locked FOR UPDATE so the price check and the writes form
// one atomic unit; a concurrent bid waits on the lock and is then validated
// against the committed price.
func (s *PostgresStore) ApplyBid(ctx context.Context, bid model.Bid, now time.Time) (model.BidResult, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return model.BidResult{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var (
		currentPrice int64
		endTime      time.Time
		isActive     bool
	)
	err = tx.QueryRow(ctx,
		"SELECT current_price, end_time, is_active FROM auctions WHERE id = $1 FOR UPDATE",
		bid.AuctionID).Scan(&currentPrice, &endTime, &isActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.BidResult{}, fmt.Errorf("auction %s: %w", bid.AuctionID, auctionerrors.ErrAuctionNotFound)
	}
	if err != nil {
		return model.BidResult{}, fmt.Errorf("failed to lock auction row: %w", err)
	}

	if !isActive || !endTime.After(now) {
		return model.BidResult{}, fmt.Errorf("apply bid for auction %s: %w", bid.AuctionID, auctionerrors.ErrAuctionEnded)
	}
	if bid.Amount <= currentPrice {
		return model.BidResult{}, fmt.Errorf("apply bid for auction %s: %w: current price is %d",
			bid.AuctionID, auctionerrors.ErrBidTooLow, currentPrice)
	}

	_, err = tx.Exec(ctx,
		"INSERT INTO bids (id, auction_id, bidder_id, amount, created_at) VALUES ($1, $2, $3, $4, $5)",
		bid.BidID, bid.AuctionID, bid.BidderID, bid.Amount, bid.CreatedAt)
	if err != nil {
		return model.BidResult{}, fmt.Errorf("failed to insert bid: %w", err)
	}

	_, err = tx.Exec(ctx,
		"UPDATE auctions SET current_price = $1 WHERE id = $2", bid.Amount, bid.AuctionID)
	if err != nil {
		return model.BidResult{}, fmt.Errorf("failed to update current price: %w", err)
	}

	var bidCount int
	err = tx.QueryRow(ctx,
		"SELECT COUNT(*) FROM bids WHERE auction_id = $1", bid.AuctionID).Scan(&bidCount)
	if err != nil {
		return model.BidResult{}, fmt.Errorf("failed to count bids: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.BidResult{}, fmt.Errorf("%w: failed to commit bid: %v", auctionerrors.ErrStorageConflict, err)
	}

	return model.BidResult{Bid: bid, NewPrice: bid.Amount, BidCount: bidCount}, nil
}

// GetBidsByAuction retrieves all bids for an auction in acceptance order
func (s *PostgresStore) GetBidsByAuction(ctx context.Context, auctionID string) ([]model.Bid, error) {
	if _, err := s.GetAuction(ctx, auctionID); err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, auction_id, bidder_id, amount, created_at FROM bids
		 WHERE auction_id = $1 ORDER BY amount ASC`, auctionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bids: %w", err)
	}
	defer rows.Close()

	var bids []model.Bid
	for rows.Next() {
		var b model.Bid
		if err := rows.Scan(&b.BidID, &b.AuctionID, &b.BidderID, &b.Amount, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bid: %w", err)
		}
		bids = append(bids, b)
	}
	return bids, rows.Err()
}

// GetHighestBid retrieves the winning bid so far for an auction
func (s *PostgresStore) GetHighestBid(ctx context.Context, auctionID string) (model.Bid, error) {
	if _, err := s.GetAuction(ctx, auctionID); err != nil {
		return model.Bid{}, err
	}

	var b model.Bid
	err := s.pool.QueryRow(ctx,
		`SELECT id, auction_id, bidder_id, amount, created_at FROM bids
		 WHERE auction_id = $1 ORDER BY amount DESC LIMIT 1`, auctionID).
		Scan(&b.BidID, &b.AuctionID, &b.BidderID, &b.Amount, &b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Bid{}, fmt.Errorf("get highest bid for auction %s: %w", auctionID, auctionerrors.ErrNoBids)
	}
	if err != nil {
		return model.Bid{}, fmt.Errorf("failed to get highest bid: %w", err)
	}
	return b, nil
}

const selectAuction = `SELECT id, seller_id, category_id, title, description,
 starting_price, current_price, end_time, is_active, created_at FROM auctions`

func scanAuction(row pgx.Row) (model.Auction, error) {
	var a model.Auction
	err := row.Scan(&a.AuctionID, &a.SellerID, &a.CategoryID, &a.Title, &a.Description,
		&a.StartingPrice, &a.CurrentPrice, &a.EndTime, &a.IsActive, &a.CreatedAt)
	return a, err
}

func collectAuctions(rows pgx.Rows) ([]model.Auction, error) {
	var auctions []model.Auction
	for rows.Next() {
		a, err := scanAuction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan auction: %w", err)
		}
		auctions = append(auctions, a)
	}
	return auctions, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
