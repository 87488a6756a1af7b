package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AkaashSamson/Devnovate-Blogs/internal/models"
	"github.com/AkaashSamson/Devnovate-Blogs/internal/storage"
)

// blogDoc — схема документа статьи. UUID храним строками: это убирает
// зависимость от кодеков драйвера и упрощает $addToSet/$pull по likes_coll.
type blogDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Content       string             `bson:"content"`
	Excerpt       string             `bson:"excerpt"`
	UserID        string             `bson:"user_id"`
	AuthorName    string             `bson:"author_name"`
	Tags          []string           `bson:"tags"`
	FeaturedImage string             `bson:"featured_image,omitempty"`
	Status        string             `bson:"status"`
	Views         int64              `bson:"views"`
	LikesColl     []string           `bson:"likes_coll"`
	CommentsColl  []commentDoc       `bson:"comments_coll"`
	PublishedAt   *time.Time         `bson:"published_at,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

type commentDoc struct {
	ID         primitive.ObjectID `bson:"_id"`
	UserID     string             `bson:"user_id"`
	AuthorName string             `bson:"author_name"`
	Text       string             `bson:"text"`
	CreatedAt  time.Time          `bson:"created_at"`
}

// MongoDB DateTime хранит миллисекунды.
func toMS(t time.Time) time.Time { return t.UTC().Truncate(time.Millisecond) }

func fromBlog(b models.Blog) blogDoc {
	doc := blogDoc{
		Title:         b.Title,
		Content:       b.Content,
		Excerpt:       b.Excerpt,
		UserID:        b.AuthorID.String(),
		AuthorName:    b.AuthorName,
		Tags:          b.Tags,
		FeaturedImage: b.FeaturedImage,
		Status:        string(b.Status),
		Views:         b.Views,
		LikesColl:     []string{},
		CommentsColl:  []commentDoc{},
		CreatedAt:     toMS(b.CreatedAt),
		UpdatedAt:     toMS(b.UpdatedAt),
	}

	if b.PublishedAt != nil {
		t := toMS(*b.PublishedAt)
		doc.PublishedAt = &t
	}

	return doc
}

func toBlog(doc blogDoc) models.Blog {
	b := models.Blog{
		ID:            doc.ID.Hex(),
		Title:         doc.Title,
		Content:       doc.Content,
		Excerpt:       doc.Excerpt,
		AuthorName:    doc.AuthorName,
		Tags:          doc.Tags,
		FeaturedImage: doc.FeaturedImage,
		Status:        models.Status(doc.Status),
		Views:         doc.Views,
		CreatedAt:     doc.CreatedAt.UTC(),
		UpdatedAt:     doc.UpdatedAt.UTC(),
	}

	// user_id пишем только валидным UUID; битое значение оставит uuid.Nil.
	b.AuthorID, _ = uuid.Parse(doc.UserID)

	for _, raw := range doc.LikesColl {
		if id, err := uuid.Parse(raw); err == nil {
			b.LikedBy = append(b.LikedBy, id)
		}
	}

	for _, c := range doc.CommentsColl {
		b.Comments = append(b.Comments, toComment(c))
	}

	if doc.PublishedAt != nil {
		t := doc.PublishedAt.UTC()
		b.PublishedAt = &t
	}

	return b
}

func toComment(doc commentDoc) models.Comment {
	c := models.Comment{
		ID:         doc.ID.Hex(),
		AuthorName: doc.AuthorName,
		Text:       doc.Text,
		CreatedAt:  doc.CreatedAt.UTC(),
	}
	c.UserID, _ = uuid.Parse(doc.UserID)

	return c
}

// SaveBlog создаёт статью, генерируя ObjectID и выставляя created_at/updated_at.
func (m *Mongo) SaveBlog(ctx context.Context, blog models.Blog) (*models.Blog, error) {
	const op = "storage/mongo/SaveBlog"

	now := toMS(time.Now())
	blog.CreatedAt = now
	blog.UpdatedAt = now

	doc := fromBlog(blog)
	doc.ID = primitive.NewObjectID()

	if _, err := m.blogs.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("%s: insert: %w", op, failure(err))
	}

	out := toBlog(doc)
	return &out, nil
}

// BlogByID возвращает статью по идентификатору.
// Некорректный формат id трактуется как «нет такой записи».
func (m *Mongo) BlogByID(ctx context.Context, id string) (*models.Blog, error) {
	const op = "storage/mongo/BlogByID"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	var doc blogDoc
	if err := m.blogs.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, failure(err))
	}

	out := toBlog(doc)
	return &out, nil
}

// BlogsByAuthor возвращает все статьи автора, сначала новые.
func (m *Mongo) BlogsByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Blog, error) {
	const op = "storage/mongo/BlogsByAuthor"

	filter := bson.D{{Key: "user_id", Value: authorID.String()}}
	sort := bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

	return m.findBlogs(ctx, op, filter, sort)
}

// BlogsByStatus возвращает статьи в заданном статусе.
// Поле сортировки — created_at либо published_at; _id добирает полный порядок.
func (m *Mongo) BlogsByStatus(ctx context.Context, status models.Status, opts models.ListOptions) ([]models.Blog, error) {
	const op = "storage/mongo/BlogsByStatus"

	field := opts.Field
	if field != "published_at" {
		field = "created_at"
	}

	dir := -1
	if opts.Ascending {
		dir = 1
	}

	filter := bson.D{{Key: "status", Value: string(status)}}
	sort := bson.D{{Key: field, Value: dir}, {Key: "_id", Value: dir}}

	return m.findBlogs(ctx, op, filter, sort)
}

func (m *Mongo) findBlogs(ctx context.Context, op string, filter, sort bson.D) ([]models.Blog, error) {
	cur, err := m.blogs.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, failure(err))
	}
	defer cur.Close(ctx)

	var items []models.Blog
	for cur.Next(ctx) {
		var doc blogDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, failure(err))
		}

		items = append(items, toBlog(doc))
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, failure(err))
	}

	return items, nil
}

// UpdateBlog применяет частичное обновление контентных полей.
func (m *Mongo) UpdateBlog(ctx context.Context, id string, upd storage.UpdateBlogFields) (*models.Blog, error) {
	const op = "storage/mongo/UpdateBlog"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	set := bson.D{{Key: "updated_at", Value: toMS(time.Now())}}
	if upd.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *upd.Title})
	}
	if upd.Content != nil {
		set = append(set, bson.E{Key: "content", Value: *upd.Content})
	}
	if upd.Excerpt != nil {
		set = append(set, bson.E{Key: "excerpt", Value: *upd.Excerpt})
	}
	if upd.Tags != nil {
		set = append(set, bson.E{Key: "tags", Value: *upd.Tags})
	}
	if upd.FeaturedImage != nil {
		set = append(set, bson.E{Key: "featured_image", Value: *upd.FeaturedImage})
	}
	if upd.ResetStatus {
		set = append(set, bson.E{Key: "status", Value: string(models.StatusPending)})
	}

	after := options.After
	var doc blogDoc
	err = m.blogs.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, failure(err))
	}

	out := toBlog(doc)
	return &out, nil
}

// SetStatus переводит статью в новый статус; publishedAt != nil выставляет
// published_at (момент approve).
func (m *Mongo) SetStatus(ctx context.Context, id string, status models.Status, publishedAt *time.Time) (*models.Blog, error) {
	const op = "storage/mongo/SetStatus"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	set := bson.D{
		{Key: "status", Value: string(status)},
		{Key: "updated_at", Value: toMS(time.Now())},
	}
	if publishedAt != nil {
		set = append(set, bson.E{Key: "published_at", Value: toMS(*publishedAt)})
	}

	after := options.After
	var doc blogDoc
	err = m.blogs.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, failure(err))
	}

	out := toBlog(doc)
	return &out, nil
}

// DeleteBlog безусловно удаляет статью.
func (m *Mongo) DeleteBlog(ctx context.Context, id string) error {
	const op = "storage/mongo/DeleteBlog"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	res, err := m.blogs.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, failure(err))
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// IncrementViews атомарно увеличивает счётчик просмотров approved-статьи.
// Фильтр по статусу защищает от гонки «просмотр против reject».
func (m *Mongo) IncrementViews(ctx context.Context, id string) error {
	const op = "storage/mongo/IncrementViews"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	res, err := m.blogs.UpdateOne(ctx,
		bson.D{
			{Key: "_id", Value: oid},
			{Key: "status", Value: string(models.StatusApproved)},
		},
		bson.D{
			{Key: "$inc", Value: bson.D{{Key: "views", Value: 1}}},
			{Key: "$set", Value: bson.D{{Key: "updated_at", Value: toMS(time.Now())}}},
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, failure(err))
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// ToggleLike атомарно переключает лайк: сперва пробуем $addToSet с фильтром
// «лайка ещё нет», при промахе — $pull с фильтром «лайк есть». Каждая ветка —
// одиночный conditional update, конкурентные переключения разных пользователей
// не теряются.
func (m *Mongo) ToggleLike(ctx context.Context, id string, userID uuid.UUID) (bool, int64, error) {
	const op = "storage/mongo/ToggleLike"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return false, 0, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	uid := userID.String()
	after := options.After
	touch := bson.E{Key: "$set", Value: bson.D{{Key: "updated_at", Value: toMS(time.Now())}}}

	// Лайк: добавляем, только если его ещё нет.
	var doc blogDoc
	err = m.blogs.FindOneAndUpdate(ctx,
		bson.D{
			{Key: "_id", Value: oid},
			{Key: "likes_coll", Value: bson.D{{Key: "$ne", Value: uid}}},
		},
		bson.D{
			{Key: "$addToSet", Value: bson.D{{Key: "likes_coll", Value: uid}}},
			touch,
		},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&doc)
	if err == nil {
		return true, int64(len(doc.LikesColl)), nil
	}
	if !errors.Is(err, mongodriver.ErrNoDocuments) {
		return false, 0, fmt.Errorf("%s: like: %w", op, failure(err))
	}

	// Анлайк: снимаем, только если лайк есть.
	err = m.blogs.FindOneAndUpdate(ctx,
		bson.D{
			{Key: "_id", Value: oid},
			{Key: "likes_coll", Value: uid},
		},
		bson.D{
			{Key: "$pull", Value: bson.D{{Key: "likes_coll", Value: uid}}},
			touch,
		},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&doc)
	if err == nil {
		return false, int64(len(doc.LikesColl)), nil
	}
	if errors.Is(err, mongodriver.ErrNoDocuments) {
		// Оба фильтра промахнулись — документа нет.
		return false, 0, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return false, 0, fmt.Errorf("%s: unlike: %w", op, failure(err))
}

// AppendComment атомарно добавляет комментарий ($push), генерируя его ObjectID.
func (m *Mongo) AppendComment(ctx context.Context, id string, comment models.Comment) (*models.Comment, int64, error) {
	const op = "storage/mongo/AppendComment"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	cdoc := commentDoc{
		ID:         primitive.NewObjectID(),
		UserID:     comment.UserID.String(),
		AuthorName: comment.AuthorName,
		Text:       comment.Text,
		CreatedAt:  toMS(time.Now()),
	}

	after := options.After
	var doc blogDoc
	err = m.blogs.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{
			{Key: "$push", Value: bson.D{{Key: "comments_coll", Value: cdoc}}},
			{Key: "$set", Value: bson.D{{Key: "updated_at", Value: toMS(time.Now())}}},
		},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, 0, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, 0, fmt.Errorf("%s: %w", op, failure(err))
	}

	out := toComment(cdoc)
	return &out, int64(len(doc.CommentsColl)), nil
}
