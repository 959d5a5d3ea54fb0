package service

import (
	"context"
	"testing"

	"accesshub/internal/http-api/dto"
	"accesshub/internal/http-api/models"
	"accesshub/internal/http-api/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory sqlite database per test. The pool is
// pinned to one connection because every :memory: connection is its own
// database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Game{},
		&models.Hardware{},
		&models.Place{},
		&models.Software{},
		&models.Service{},
		&models.Tag{},
		&models.AccessibilityFeature{},
		&models.EntryTag{},
		&models.EntryFeature{},
		&models.Comment{},
		&models.Review{},
	))
	return db
}

type testEnv struct {
	db *gorm.DB

	entryRepo *repository.EntryRepo
	tagRepo   *repository.TagRepo
	featRepo  *repository.FeatureRepo
	assocRepo *repository.AssociationRepo

	entries  EntryService
	browse   BrowseService
	tags     TagService
	features FeatureService
	assoc    AssociationService
	comments CommentService
	reviews  ReviewService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	entryRepo := repository.NewEntryRepo(db)
	tagRepo := repository.NewTagRepo(db)
	featRepo := repository.NewFeatureRepo(db)
	assocRepo := repository.NewAssociationRepo(db)
	commentRepo := repository.NewCommentRepo(db)
	reviewRepo := repository.NewReviewRepo(db)

	return &testEnv{
		db:        db,
		entryRepo: entryRepo,
		tagRepo:   tagRepo,
		featRepo:  featRepo,
		assocRepo: assocRepo,
		entries:   NewEntryService(entryRepo),
		browse:    NewBrowseService(entryRepo),
		tags:      NewTagService(tagRepo, assocRepo, nil),
		features:  NewFeatureService(featRepo, assocRepo, nil),
		assoc:     NewAssociationService(assocRepo, entryRepo, tagRepo, featRepo),
		comments:  NewCommentService(commentRepo, entryRepo),
		reviews:   NewReviewService(reviewRepo, entryRepo),
	}
}

const (
	testUserA = "8d4f7f62-1f5b-4d8a-9c3e-2a6b1e9d0f11"
	testUserB = "3b9c1a40-7e2d-4f6b-8a1c-5d0e9f3b2a77"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// seedGame inserts a fully filled game entry directly through the
// repository.
func seedGame(t *testing.T, env *testEnv, name string, owner *string) *models.Game {
	t.Helper()

	g := &models.Game{
		EntryCore: models.EntryCore{
			OwnerID:         owner,
			Name:            name,
			Description:     "a tough but fair platformer",
			Photos:          []string{"cover.jpg"},
			OverallRating:   5,
			VisualRating:    intPtr(4),
			AuditoryRating:  intPtr(5),
			MotorRating:     intPtr(3),
			CognitiveRating: intPtr(4),
			Website:         strPtr("https://example.com"),
		},
		Platforms: []string{"pc", "switch"},
	}
	g.Complete = models.IsComplete(g)
	require.NoError(t, env.entryRepo.Create(context.Background(), g))
	return g
}

func seedPlace(t *testing.T, env *testEnv, name string) *models.Place {
	t.Helper()

	p := &models.Place{
		EntryCore: models.EntryCore{
			Name:          name,
			Description:   "a quiet cafe",
			Photos:        []string{"front.jpg"},
			OverallRating: 4,
		},
		Address:   "1 Main St",
		City:      "Springfield",
		PlaceType: "cafe",
	}
	require.NoError(t, env.entryRepo.Create(context.Background(), p))
	return p
}

func seedTag(t *testing.T, env *testEnv, name string) *models.Tag {
	t.Helper()

	tag, err := env.tags.GetOrCreate(context.Background(), dto.CreateTagDTO{Name: name})
	require.NoError(t, err)
	return tag
}

func seedFeature(t *testing.T, env *testEnv, name string) *models.AccessibilityFeature {
	t.Helper()

	feature, err := env.features.GetOrCreate(context.Background(), dto.CreateFeatureDTO{Name: name})
	require.NoError(t, err)
	return feature
}

func tagUsage(t *testing.T, env *testEnv, id int64) int64 {
	t.Helper()

	tag, err := env.tagRepo.GetByID(context.Background(), id)
	require.NoError(t, err)
	return tag.UsageCount
}

func featureUsage(t *testing.T, env *testEnv, id int64) int64 {
	t.Helper()

	feature, err := env.featRepo.GetByID(context.Background(), id)
	require.NoError(t, err)
	return feature.UsageCount
}
