package services

import (
	"context"
	"strconv"
	"time"

	"rating-system/internal/dto"
	"rating-system/internal/entities"
	"rating-system/internal/repositories"
	"rating-system/pkg/contextkeys"
	apperrors "rating-system/pkg/errors"

	"github.com/aarondl/null/v8"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5"
)

// Контексты с идентичностью, как их собирает middleware.

func ctxFor(id uint64, role string) context.Context {
	ctx := context.WithValue(context.Background(), contextkeys.UserIDKey, id)
	return context.WithValue(ctx, contextkeys.UserRoleKey, role)
}

func anonymousCtx() context.Context {
	return context.Background()
}

// --- пользователи ---

type mockUserRepo struct {
	users  map[uint64]*entities.User
	nextID uint64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint64]*entities.User), nextID: 1}
}

func (m *mockUserRepo) addUser(username, email, role, code string) *entities.User {
	u := &entities.User{
		ID:               m.nextID,
		Username:         username,
		Email:            email,
		Role:             role,
		ConfirmationCode: code,
		CreatedAt:        time.Now(),
	}
	m.users[u.ID] = u
	m.nextID++
	return u
}

func (m *mockUserRepo) GetUsers(_ context.Context, limit, offset uint64, _ string) ([]entities.User, uint64, error) {
	out := make([]entities.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, uint64(len(m.users)), nil
}

func (m *mockUserRepo) FindByID(_ context.Context, id uint64) (*entities.User, error) {
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockUserRepo) FindByUsername(_ context.Context, username string) (*entities.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockUserRepo) CreateUser(_ context.Context, username, email, role string, bio *string) (*entities.User, error) {
	for _, u := range m.users {
		if u.Username == username || u.Email == email {
			return nil, apperrors.NewBadRequestError("Пользователь с таким username или email уже существует")
		}
	}
	u := m.addUser(username, email, role, "null")
	if bio != nil {
		u.Bio = null.StringFrom(*bio)
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) UpdateUser(_ context.Context, id uint64, payload dto.UpdateUserDTO) (*entities.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if payload.Username != nil {
		u.Username = *payload.Username
	}
	if payload.Email != nil {
		u.Email = *payload.Email
	}
	if payload.Role != nil {
		u.Role = *payload.Role
	}
	if payload.Bio != nil {
		u.Bio = null.StringFrom(*payload.Bio)
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) DeleteUser(_ context.Context, id uint64) error {
	if _, ok := m.users[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) SetConfirmationCode(_ context.Context, id uint64, codeHash string) error {
	u, ok := m.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.ConfirmationCode = codeHash
	return nil
}

// --- кэш ---

type mockCacheRepo struct {
	values   map[string]string
	counters map[string]int64
}

func newMockCacheRepo() *mockCacheRepo {
	return &mockCacheRepo{values: make(map[string]string), counters: make(map[string]int64)}
}

func (m *mockCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	switch v := value.(type) {
	case string:
		m.values[key] = v
	default:
		m.values[key] = "1"
	}
	return nil
}

func (m *mockCacheRepo) Get(_ context.Context, key string) (string, error) {
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return "", redis.Nil
}

func (m *mockCacheRepo) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.values, k)
		delete(m.counters, k)
	}
	return nil
}

func (m *mockCacheRepo) Incr(_ context.Context, key string) (int64, error) {
	m.counters[key]++
	m.values[key] = strconv.FormatInt(m.counters[key], 10)
	return m.counters[key], nil
}

func (m *mockCacheRepo) Expire(_ context.Context, _ string, _ time.Duration) error {
	return nil
}

func (m *mockCacheRepo) TTL(_ context.Context, _ string) (time.Duration, error) {
	return time.Minute, nil
}

// --- почта ---

type mockEmailService struct {
	sent     []string
	lastCode string
	failNext bool
}

func (m *mockEmailService) SendConfirmationCode(to, code string) error {
	if m.failNext {
		m.failNext = false
		return apperrors.ErrBadRequest
	}
	m.sent = append(m.sent, to)
	m.lastCode = code
	return nil
}

// --- каталог ---

type mockTitleRepo struct {
	titles map[uint64]*entities.Title
	genres map[uint64][]uint64
	nextID uint64
}

func newMockTitleRepo() *mockTitleRepo {
	return &mockTitleRepo{
		titles: make(map[uint64]*entities.Title),
		genres: make(map[uint64][]uint64),
		nextID: 1,
	}
}

func (m *mockTitleRepo) addTitle(name string) *entities.Title {
	t := &entities.Title{ID: m.nextID, Name: name}
	m.titles[t.ID] = t
	m.nextID++
	return t
}

func (m *mockTitleRepo) GetTitles(_ context.Context, filter repositories.TitleFilter) ([]entities.Title, uint64, error) {
	out := make([]entities.Title, 0, len(m.titles))
	for _, t := range m.titles {
		out = append(out, *t)
	}
	total := uint64(len(out))
	if filter.Offset >= total {
		return []entities.Title{}, total, nil
	}
	return out, total, nil
}

func (m *mockTitleRepo) FindTitle(_ context.Context, id uint64) (*entities.Title, error) {
	if t, ok := m.titles[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockTitleRepo) CreateTitle(_ context.Context, _ pgx.Tx, name string, year *int, description string, categoryID *uint64) (uint64, error) {
	t := m.addTitle(name)
	if year != nil {
		t.Year = null.IntFrom(*year)
	}
	t.Description = description
	if categoryID != nil {
		t.CategoryID = null.Uint64From(*categoryID)
	}
	return t.ID, nil
}

func (m *mockTitleRepo) AddGenre(_ context.Context, _ pgx.Tx, titleID, genreID uint64) error {
	m.genres[titleID] = append(m.genres[titleID], genreID)
	return nil
}

func (m *mockTitleRepo) UpdateTitle(_ context.Context, id uint64, name *string, year *int, description *string, categoryID *uint64) error {
	t, ok := m.titles[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	if name != nil {
		t.Name = *name
	}
	if year != nil {
		t.Year = null.IntFrom(*year)
	}
	if description != nil {
		t.Description = *description
	}
	if categoryID != nil {
		t.CategoryID = null.Uint64From(*categoryID)
	}
	return nil
}

func (m *mockTitleRepo) DeleteTitle(_ context.Context, id uint64) error {
	if _, ok := m.titles[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.titles, id)
	return nil
}

type mockCategoryRepo struct {
	categories map[string]*entities.Category
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{categories: make(map[string]*entities.Category)}
}

func (m *mockCategoryRepo) GetCategories(_ context.Context, _, _ uint64, _ string) ([]entities.Category, uint64, error) {
	out := make([]entities.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, *c)
	}
	return out, uint64(len(out)), nil
}

func (m *mockCategoryRepo) FindBySlug(_ context.Context, slug string) (*entities.Category, error) {
	if c, ok := m.categories[slug]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockCategoryRepo) CreateCategory(_ context.Context, payload dto.CreateCategoryDTO) (*entities.Category, error) {
	if _, ok := m.categories[payload.Slug]; ok {
		return nil, apperrors.NewBadRequestError("Категория с таким slug уже существует")
	}
	c := &entities.Category{ID: uint64(len(m.categories) + 1), Name: payload.Name, Slug: payload.Slug}
	m.categories[c.Slug] = c
	return c, nil
}

func (m *mockCategoryRepo) DeleteBySlug(_ context.Context, slug string) error {
	if _, ok := m.categories[slug]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.categories, slug)
	return nil
}

type mockGenreRepo struct {
	genres map[string]*entities.Genre
}

func newMockGenreRepo() *mockGenreRepo {
	return &mockGenreRepo{genres: make(map[string]*entities.Genre)}
}

func (m *mockGenreRepo) GetGenres(_ context.Context, _, _ uint64, _ string) ([]entities.Genre, uint64, error) {
	out := make([]entities.Genre, 0, len(m.genres))
	for _, g := range m.genres {
		out = append(out, *g)
	}
	return out, uint64(len(out)), nil
}

func (m *mockGenreRepo) FindBySlug(_ context.Context, slug string) (*entities.Genre, error) {
	if g, ok := m.genres[slug]; ok {
		cp := *g
		return &cp, nil
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockGenreRepo) CreateGenre(_ context.Context, payload dto.CreateGenreDTO) (*entities.Genre, error) {
	if _, ok := m.genres[payload.Slug]; ok {
		return nil, apperrors.NewBadRequestError("Жанр с таким slug уже существует")
	}
	g := &entities.Genre{ID: uint64(len(m.genres) + 1), Name: payload.Name, Slug: payload.Slug}
	m.genres[g.Slug] = g
	return g, nil
}

func (m *mockGenreRepo) DeleteBySlug(_ context.Context, slug string) error {
	if _, ok := m.genres[slug]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.genres, slug)
	return nil
}

// --- отзывы и комментарии ---

type mockReviewRepo struct {
	reviews map[uint64]*entities.Review
	nextID  uint64
}

func newMockReviewRepo() *mockReviewRepo {
	return &mockReviewRepo{reviews: make(map[uint64]*entities.Review), nextID: 1}
}

func (m *mockReviewRepo) GetReviewsByTitle(_ context.Context, titleID, _, _ uint64) ([]entities.Review, uint64, error) {
	out := make([]entities.Review, 0)
	for _, r := range m.reviews {
		if r.TitleID == titleID {
			out = append(out, *r)
		}
	}
	return out, uint64(len(out)), nil
}

func (m *mockReviewRepo) FindReview(_ context.Context, titleID, reviewID uint64) (*entities.Review, error) {
	r, ok := m.reviews[reviewID]
	if !ok || r.TitleID != titleID {
		return nil, apperrors.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *mockReviewRepo) ExistsForAuthor(_ context.Context, authorID, titleID uint64) (bool, error) {
	for _, r := range m.reviews {
		if r.AuthorID == authorID && r.TitleID == titleID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockReviewRepo) CreateReview(_ context.Context, authorID, titleID uint64, text string, score int) (*entities.Review, error) {
	r := &entities.Review{
		ID:       m.nextID,
		AuthorID: authorID,
		TitleID:  titleID,
		Text:     text,
		Score:    score,
		PubDate:  time.Now(),
	}
	m.reviews[r.ID] = r
	m.nextID++
	cp := *r
	return &cp, nil
}

func (m *mockReviewRepo) UpdateReview(_ context.Context, id uint64, text *string, score *int) (*entities.Review, error) {
	r, ok := m.reviews[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if text != nil {
		r.Text = *text
	}
	if score != nil {
		r.Score = *score
	}
	cp := *r
	return &cp, nil
}

func (m *mockReviewRepo) DeleteReview(_ context.Context, id uint64) error {
	if _, ok := m.reviews[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.reviews, id)
	return nil
}

type mockCommentRepo struct {
	comments map[uint64]*entities.Comment
	nextID   uint64
}

func newMockCommentRepo() *mockCommentRepo {
	return &mockCommentRepo{comments: make(map[uint64]*entities.Comment), nextID: 1}
}

func (m *mockCommentRepo) GetCommentsByReview(_ context.Context, reviewID, _, _ uint64) ([]entities.Comment, uint64, error) {
	out := make([]entities.Comment, 0)
	for _, c := range m.comments {
		if c.ReviewID == reviewID {
			out = append(out, *c)
		}
	}
	return out, uint64(len(out)), nil
}

func (m *mockCommentRepo) FindComment(_ context.Context, reviewID, commentID uint64) (*entities.Comment, error) {
	c, ok := m.comments[commentID]
	if !ok || c.ReviewID != reviewID {
		return nil, apperrors.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *mockCommentRepo) CreateComment(_ context.Context, authorID, reviewID uint64, text string) (*entities.Comment, error) {
	c := &entities.Comment{
		ID:       m.nextID,
		AuthorID: authorID,
		ReviewID: reviewID,
		Text:     text,
		PubDate:  time.Now(),
	}
	m.comments[c.ID] = c
	m.nextID++
	cp := *c
	return &cp, nil
}

func (m *mockCommentRepo) UpdateComment(_ context.Context, id uint64, text *string) (*entities.Comment, error) {
	c, ok := m.comments[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if text != nil {
		c.Text = *text
	}
	cp := *c
	return &cp, nil
}

func (m *mockCommentRepo) DeleteComment(_ context.Context, id uint64) error {
	if _, ok := m.comments[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}

// --- транзакции ---

type mockTxManager struct{}

func (mockTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}
