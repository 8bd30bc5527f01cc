package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mitul77/gatherly/backend/internal/models"
	"github.com/mitul77/gatherly/backend/internal/pagination"
)

// FollowRepository defines the interface for the follow graph. ToggleFollow
// is the sole mutator of follow edges in the whole application.
type FollowRepository interface {
	ToggleFollow(observerID, targetID string) (bool, error)
	IsFollowing(observerID, targetID string) (bool, error)
	GetFollowers(userID, viewerID string, page pagination.PageRequest) (pagination.Page[models.UserProfile], error)
	GetFollowing(userID, viewerID string, page pagination.PageRequest) (pagination.Page[models.UserProfile], error)
	GetFollowerCount(userID string) (int64, error)
	GetFollowingCount(userID string) (int64, error)
	GetProfile(userID, viewerID string) (*models.UserProfile, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// ToggleFollow flips the presence of the (observer, target) edge and
// reports the resulting state: true when the observer now follows the
// target. There is no desired-state parameter; two back-to-back calls
// always return the edge to its original state.
//
// The check-then-act runs in one transaction. If a concurrent toggle wins
// the race and our insert hits the composite primary key, the toggle is
// retried once from scratch; a second collision surfaces as ErrConflict.
func (r *PostgresFollowRepository) ToggleFollow(observerID, targetID string) (bool, error) {
	if observerID == targetID {
		return false, ErrSelfFollow
	}

	following, err := r.toggleOnce(observerID, targetID)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		following, err = r.toggleOnce(observerID, targetID)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, ErrConflict
		}
	}
	return following, err
}

func (r *PostgresFollowRepository) toggleOnce(observerID, targetID string) (bool, error) {
	var following bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var target models.User
		if err := tx.Select("id").First(&target, "id = ?", targetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var edge models.UserFollowing
		err := tx.First(&edge, "observer_id = ? AND target_id = ?", observerID, targetID).Error
		switch {
		case err == nil:
			if err := tx.Where("observer_id = ? AND target_id = ?", observerID, targetID).
				Delete(&models.UserFollowing{}).Error; err != nil {
				return err
			}
			following = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			edge = models.UserFollowing{
				ObserverID: observerID,
				TargetID:   targetID,
				CreatedAt:  time.Now().UTC(),
			}
			if err := tx.Create(&edge).Error; err != nil {
				return err
			}
			following = true
		default:
			return err
		}
		return nil
	})
	return following, err
}

// IsFollowing reports whether the observer currently follows the target
func (r *PostgresFollowRepository) IsFollowing(observerID, targetID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.UserFollowing{}).
		Where("observer_id = ? AND target_id = ?", observerID, targetID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetFollowers returns one page of profiles observing userID. The
// Following flag on each profile is relative to viewerID, the caller
// browsing the list. Pages are ordered by user id so the cursor walk never
// skips or duplicates a profile.
func (r *PostgresFollowRepository) GetFollowers(userID, viewerID string, page pagination.PageRequest) (pagination.Page[models.UserProfile], error) {
	sub := r.db.Table("user_followings").Select("observer_id").Where("target_id = ?", userID)
	return r.listProfiles(sub, viewerID, page)
}

// GetFollowing returns one page of profiles that userID observes, with the
// Following flag again relative to viewerID.
func (r *PostgresFollowRepository) GetFollowing(userID, viewerID string, page pagination.PageRequest) (pagination.Page[models.UserProfile], error) {
	sub := r.db.Table("user_followings").Select("target_id").Where("observer_id = ?", userID)
	return r.listProfiles(sub, viewerID, page)
}

// listProfiles pages over the users selected by sub in id order, attaching
// edge-derived counts and the viewer-relative Following flag in the same
// query so one round trip sees one snapshot.
func (r *PostgresFollowRepository) listProfiles(sub *gorm.DB, viewerID string, page pagination.PageRequest) (pagination.Page[models.UserProfile], error) {
	page = page.Normalize()

	q := r.db.Table("users").
		Select(`users.id, users.display_name, users.bio, users.image_url,
			(SELECT COUNT(*) FROM user_followings f WHERE f.target_id = users.id) AS follower_count,
			(SELECT COUNT(*) FROM user_followings f WHERE f.observer_id = users.id) AS following_count,
			EXISTS(SELECT 1 FROM user_followings f WHERE f.observer_id = ? AND f.target_id = users.id) AS following`,
			viewerID).
		Where("users.id IN (?)", sub).
		Order("users.id ASC").
		Limit(page.PageSize + 1)

	if afterID, ok := pagination.DecodeIDCursor(page.Cursor); ok {
		q = q.Where("users.id > ?", afterID)
	}

	var profiles []models.UserProfile
	if err := q.Scan(&profiles).Error; err != nil {
		return pagination.Page[models.UserProfile]{}, err
	}

	return pagination.Slice(profiles, page.PageSize, func(p models.UserProfile) string {
		return pagination.EncodeIDCursor(p.ID)
	}), nil
}

// GetFollowerCount counts edges pointing at userID. Counts are always
// derived from edge cardinality, never kept as stored counters.
func (r *PostgresFollowRepository) GetFollowerCount(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.UserFollowing{}).Where("target_id = ?", userID).Count(&count).Error
	return count, err
}

// GetFollowingCount counts edges originating at userID
func (r *PostgresFollowRepository) GetFollowingCount(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.UserFollowing{}).Where("observer_id = ?", userID).Count(&count).Error
	return count, err
}

// GetProfile returns a single user's profile projection as seen by viewerID
func (r *PostgresFollowRepository) GetProfile(userID, viewerID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.db.Table("users").
		Select(`users.id, users.display_name, users.bio, users.image_url,
			(SELECT COUNT(*) FROM user_followings f WHERE f.target_id = users.id) AS follower_count,
			(SELECT COUNT(*) FROM user_followings f WHERE f.observer_id = users.id) AS following_count,
			EXISTS(SELECT 1 FROM user_followings f WHERE f.observer_id = ? AND f.target_id = users.id) AS following`,
			viewerID).
		Where("users.id = ?", userID).
		Take(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}
