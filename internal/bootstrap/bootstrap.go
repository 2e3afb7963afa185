package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abhijit03/auction-app/internal/auctionerrors"
	"github.com/Abhijit03/auction-app/internal/config"
	"github.com/Abhijit03/auction-app/internal/models"
	"github.com/Abhijit03/auction-app/internal/repository"
	"github.com/Abhijit03/auction-app/utils"
)

// defaultCategories are created on first start so listings always have a
// classification to attach to.
var defaultCategories = []models.Category{
	{Name: "Electronics", Description: "Phones, computers and gadgets"},
	{Name: "Collectibles", Description: "Art, antiques and rare items"},
	{Name: "Home & Garden", Description: "Furniture, tools and plants"},
}

// Run seeds the admin user and default categories. It is idempotent: every
// insert is guarded by an existence check, so repeated starts have no effect.
// Invoked exactly once at process start, never from request handling.
func Run(ctx context.Context, store repository.AuctionStore, cfg config.BootstrapConfig) error {
	if err := ensureAdmin(ctx, store, cfg); err != nil {
		return err
	}
	return ensureCategories(ctx, store)
}

func ensureAdmin(ctx context.Context, store repository.AuctionStore, cfg config.BootstrapConfig) error {
	_, err := store.GetUser(ctx, cfg.AdminUserID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, auctionerrors.ErrUserNotFound) {
		return fmt.Errorf("bootstrap: failed to check admin user: %w", err)
	}

	admin := models.User{
		UserID:    cfg.AdminUserID,
		Username:  cfg.AdminUsername,
		IsAdmin:   true,
		CreatedAt: time.Now().UTC(),
	}
	if err := store.CreateUser(ctx, admin); err != nil {
		return fmt.Errorf("bootstrap: failed to create admin user: %w", err)
	}

	utils.Info("bootstrap: created admin user", map[string]any{"user_id": admin.UserID})
	return nil
}

func ensureCategories(ctx context.Context, store repository.AuctionStore) error {
	for _, c := range defaultCategories {
		_, err := store.GetCategoryByName(ctx, c.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, auctionerrors.ErrCategoryNotFound) {
			return fmt.Errorf("bootstrap: failed to check category %s: %w", c.Name, err)
		}

		c.CategoryID = utils.GenerateID()
		c.CreatedAt = time.Now().UTC()
		if err := store.CreateCategory(ctx, c); err != nil {
			// Another instance may have won the race; duplicates are fine.
			if errors.Is(err, auctionerrors.ErrDuplicateCategory) {
				continue
			}
			return fmt.Errorf("bootstrap: failed to create category %s: %w", c.Name, err)
		}
		utils.Info("bootstrap: created category", map[string]any{"name": c.Name})
	}
	return nil
}
