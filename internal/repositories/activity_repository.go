package repositories

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mitul77/gatherly/backend/internal/models"
	"github.com/mitul77/gatherly/backend/internal/pagination"
)

// ActivityRepository defines the interface for activity data operations
type ActivityRepository interface {
	CreateActivity(activity *models.Activity, hostID string) error
	GetActivityByID(id string) (*models.Activity, error)
	GetActivityDetail(id, viewerID string) (*models.ActivityDto, error)
	UpdateActivity(activity *models.Activity) error
	DeleteActivity(id string) error
	ListActivities(page pagination.PageRequest) (pagination.Page[models.Activity], error)
	ListUserActivities(userID, filter string, page pagination.PageRequest) (pagination.Page[models.Activity], error)
	ToggleAttendance(activityID, userID string) error
	IsHost(activityID, userID string) (bool, error)
}

// PostgresActivityRepository implements ActivityRepository for PostgreSQL
type PostgresActivityRepository struct {
	db *gorm.DB
}

// NewPostgresActivityRepository creates a new PostgresActivityRepository
func NewPostgresActivityRepository(db *gorm.DB) *PostgresActivityRepository {
	return &PostgresActivityRepository{db: db}
}

// CreateActivity creates an activity and its host attendance row in one
// transaction. The creator is the only attendee with IsHost, and hosting
// is never reassigned afterwards.
func (r *PostgresActivityRepository) CreateActivity(activity *models.Activity, hostID string) error {
	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	activity.CreatedAt = now
	activity.UpdatedAt = now

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(activity).Error; err != nil {
			return err
		}
		attendee := models.ActivityAttendee{
			ActivityID: activity.ID,
			UserID:     hostID,
			IsHost:     true,
			DateJoined: now,
		}
		return tx.Create(&attendee).Error
	})
}

// GetActivityByID retrieves an activity by ID
func (r *PostgresActivityRepository) GetActivityByID(id string) (*models.Activity, error) {
	var activity models.Activity
	if err := r.db.First(&activity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &activity, nil
}

// GetActivityDetail returns the flat response shape for one activity: the
// activity row, its host, and attendee profiles projected relative to the
// viewer. Explicit joins, no navigation-property traversal.
func (r *PostgresActivityRepository) GetActivityDetail(id, viewerID string) (*models.ActivityDto, error) {
	activity, err := r.GetActivityByID(id)
	if err != nil {
		return nil, err
	}

	var attendees []models.UserProfile
	err = r.db.Table("activity_attendees").
		Select(`users.id, users.display_name, users.bio, users.image_url,
			(SELECT COUNT(*) FROM user_followings f WHERE f.target_id = users.id) AS follower_count,
			(SELECT COUNT(*) FROM user_followings f WHERE f.observer_id = users.id) AS following_count,
			EXISTS(SELECT 1 FROM user_followings f WHERE f.observer_id = ? AND f.target_id = users.id) AS following`,
			viewerID).
		Joins("JOIN users ON users.id = activity_attendees.user_id").
		Where("activity_attendees.activity_id = ?", id).
		Order("users.id ASC").
		Scan(&attendees).Error
	if err != nil {
		return nil, err
	}

	dto := &models.ActivityDto{Activity: *activity, Attendees: attendees}

	var host struct {
		ID          string
		DisplayName string
	}
	err = r.db.Table("activity_attendees").
		Select("users.id, users.display_name").
		Joins("JOIN users ON users.id = activity_attendees.user_id").
		Where("activity_attendees.activity_id = ? AND activity_attendees.is_host = ?", id, true).
		Take(&host).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	dto.HostID = host.ID
	dto.HostDisplayName = host.DisplayName

	return dto, nil
}

// UpdateActivity updates an existing activity
func (r *PostgresActivityRepository) UpdateActivity(activity *models.Activity) error {
	activity.UpdatedAt = time.Now().UTC()
	return r.db.Save(activity).Error
}

// DeleteActivity deletes an activity together with its attendance rows and
// comments
func (r *PostgresActivityRepository) DeleteActivity(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("activity_id = ?", id).Delete(&models.ActivityAttendee{}).Error; err != nil {
			return err
		}
		if err := tx.Where("activity_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Activity{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ListActivities returns one page of all activities ordered by date, with
// the activity id tiebreaking equal dates. The cursor is a pure order
// boundary: a deleted anchor row never breaks the walk.
func (r *PostgresActivityRepository) ListActivities(page pagination.PageRequest) (pagination.Page[models.Activity], error) {
	page = page.Normalize()
	q := r.db.Model(&models.Activity{}).
		Order("date ASC, id ASC").
		Limit(page.PageSize + 1)
	q = applyTimeCursor(q, page.Cursor, "date", "id")

	var activities []models.Activity
	if err := q.Find(&activities).Error; err != nil {
		return pagination.Page[models.Activity]{}, err
	}
	return sliceActivities(activities, page.PageSize), nil
}

// ListUserActivities returns one page of the activities a user attends.
// Filters mirror the profile tabs: "past" for anything already held,
// "hosting" for activities the user hosts, anything else non-empty for
// upcoming ones. An empty filter returns everything.
func (r *PostgresActivityRepository) ListUserActivities(userID, filter string, page pagination.PageRequest) (pagination.Page[models.Activity], error) {
	page = page.Normalize()
	q := r.db.Model(&models.Activity{}).
		Select("activities.*").
		Joins("JOIN activity_attendees aa ON aa.activity_id = activities.id").
		Where("aa.user_id = ?", userID).
		Order("activities.date ASC, activities.id ASC").
		Limit(page.PageSize + 1)

	if filter != "" {
		switch filter {
		case "past":
			q = q.Where("activities.date <= ?", time.Now().UTC())
		case "hosting":
			q = q.Where("aa.is_host = ?", true)
		default:
			q = q.Where("activities.date >= ?", time.Now().UTC())
		}
	}
	q = applyTimeCursor(q, page.Cursor, "activities.date", "activities.id")

	var activities []models.Activity
	if err := q.Find(&activities).Error; err != nil {
		return pagination.Page[models.Activity]{}, err
	}
	return sliceActivities(activities, page.PageSize), nil
}

// applyTimeCursor filters to rows strictly after the cursor boundary in
// (time, id) order. A missing or malformed cursor applies no filter.
func applyTimeCursor(q *gorm.DB, cursor, timeCol, idCol string) *gorm.DB {
	after, afterID, ok := pagination.DecodeTimeCursor(cursor)
	if !ok {
		return q
	}
	return q.Where("("+timeCol+" > ? OR ("+timeCol+" = ? AND "+idCol+" > ?))", after, after, afterID)
}

func sliceActivities(activities []models.Activity, pageSize int) pagination.Page[models.Activity] {
	return pagination.Slice(activities, pageSize, func(a models.Activity) string {
		return pagination.EncodeTimeCursor(a.Date, a.ID)
	})
}

// ToggleAttendance flips the user's attendance on an activity. Joining and
// leaving are the same endpoint; the host cannot leave, and toggling as
// the host flips the activity's cancelled flag instead.
func (r *PostgresActivityRepository) ToggleAttendance(activityID, userID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var activity models.Activity
		if err := tx.First(&activity, "id = ?", activityID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var attendee models.ActivityAttendee
		err := tx.First(&attendee, "activity_id = ? AND user_id = ?", activityID, userID).Error
		switch {
		case err == nil:
			if attendee.IsHost {
				activity.IsCancelled = !activity.IsCancelled
				return tx.Model(&activity).Update("is_cancelled", activity.IsCancelled).Error
			}
			return tx.Where("activity_id = ? AND user_id = ?", activityID, userID).
				Delete(&models.ActivityAttendee{}).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			attendee = models.ActivityAttendee{
				ActivityID: activityID,
				UserID:     userID,
				IsHost:     false,
				DateJoined: time.Now().UTC(),
			}
			return tx.Create(&attendee).Error
		default:
			return err
		}
	})
}

// IsHost reports whether the user hosts the activity
func (r *PostgresActivityRepository) IsHost(activityID, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.ActivityAttendee{}).
		Where("activity_id = ? AND user_id = ? AND is_host = ?", activityID, userID, true).
		Count(&count).Error
	return count > 0, err
}
