package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AkaashSamson/Devnovate-Blogs/internal/models"
	"github.com/AkaashSamson/Devnovate-Blogs/internal/storage"
)

// userDoc — схема документа пользователя. _id — UUID строкой.
type userDoc struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password"`
	Bio          string    `bson:"bio,omitempty"`
	Location     string    `bson:"location,omitempty"`
	Website      string    `bson:"website,omitempty"`
	IsAdmin      bool      `bson:"is_admin"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func fromUser(u models.User) userDoc {
	return userDoc{
		ID:           u.ID.String(),
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Bio:          u.Bio,
		Location:     u.Location,
		Website:      u.Website,
		IsAdmin:      u.IsAdmin,
		CreatedAt:    toMS(u.CreatedAt),
		UpdatedAt:    toMS(u.UpdatedAt),
	}
}

func toUser(doc userDoc) models.User {
	u := models.User{
		Name:         doc.Name,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		Bio:          doc.Bio,
		Location:     doc.Location,
		Website:      doc.Website,
		IsAdmin:      doc.IsAdmin,
		CreatedAt:    doc.CreatedAt.UTC(),
		UpdatedAt:    doc.UpdatedAt.UTC(),
	}
	u.ID, _ = uuid.Parse(doc.ID)

	return u
}

// SaveUser создаёт пользователя. Дубликат email — storage.ErrAlreadyExists
// (уникальный индекс email_unique).
func (m *Mongo) SaveUser(ctx context.Context, user *models.User) error {
	const op = "storage/mongo/SaveUser"

	if _, err := m.users.InsertOne(ctx, fromUser(*user)); err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: insert: %w", op, failure(err))
	}

	return nil
}

// UserByEmail возвращает пользователя по email (ожидается нормализованный вход).
func (m *Mongo) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage/mongo/UserByEmail"

	var doc userDoc
	err := m.users.FindOne(ctx, bson.D{{Key: "email", Value: strings.TrimSpace(email)}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, failure(err))
	}

	out := toUser(doc)
	return &out, nil
}

// UserByID возвращает пользователя по идентификатору.
func (m *Mongo) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const op = "storage/mongo/UserByID"

	var doc userDoc
	err := m.users.FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, failure(err))
	}

	out := toUser(doc)
	return &out, nil
}

// UpdateUser применяет частичное обновление профиля.
func (m *Mongo) UpdateUser(ctx context.Context, id uuid.UUID, upd storage.UpdateUserFields) (*models.User, error) {
	const op = "storage/mongo/UpdateUser"

	set := bson.D{{Key: "updated_at", Value: toMS(time.Now())}}
	if upd.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *upd.Name})
	}
	if upd.Bio != nil {
		set = append(set, bson.E{Key: "bio", Value: *upd.Bio})
	}
	if upd.Location != nil {
		set = append(set, bson.E{Key: "location", Value: *upd.Location})
	}
	if upd.Website != nil {
		set = append(set, bson.E{Key: "website", Value: *upd.Website})
	}

	after := options.After
	var doc userDoc
	err := m.users.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id.String()}},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, failure(err))
	}

	out := toUser(doc)
	return &out, nil
}

// AuthorStats агрегирует статистику автора: количество статей (всего и
// approved) плюс суммы просмотров и лайков по approved-статьям.
func (m *Mongo) AuthorStats(ctx context.Context, authorID uuid.UUID) (*models.AuthorStats, error) {
	const op = "storage/mongo/AuthorStats"

	uid := authorID.String()

	total, err := m.blogs.CountDocuments(ctx, bson.D{{Key: "user_id", Value: uid}})
	if err != nil {
		return nil, fmt.Errorf("%s: count total: %w", op, failure(err))
	}

	pipeline := mongodriver.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "user_id", Value: uid},
			{Key: "status", Value: string(models.StatusApproved)},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "articles", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "total_views", Value: bson.D{{Key: "$sum", Value: "$views"}}},
			{Key: "total_likes", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$size", Value: "$likes_coll"}}}}},
		}}},
	}

	cur, err := m.blogs.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%s: aggregate: %w", op, failure(err))
	}
	defer cur.Close(ctx)

	stats := models.AuthorStats{TotalBlogs: total}

	if cur.Next(ctx) {
		var row struct {
			Articles   int64 `bson:"articles"`
			TotalViews int64 `bson:"total_views"`
			TotalLikes int64 `bson:"total_likes"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, failure(err))
		}

		stats.Articles = row.Articles
		stats.TotalViews = row.TotalViews
		stats.TotalLikes = row.TotalLikes
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, failure(err))
	}

	return &stats, nil
}
