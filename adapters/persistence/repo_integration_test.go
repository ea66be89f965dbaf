package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/khoahotran/campus-connect/internal/domain/connection"
	"github.com/khoahotran/campus-connect/internal/domain/message"
	"github.com/khoahotran/campus-connect/internal/domain/profile"
	"github.com/khoahotran/campus-connect/internal/domain/user"
	"github.com/khoahotran/campus-connect/pkg/logger"
)

type RepoIntegrationTestSuite struct {
	suite.Suite
	dbPool      *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	testLogger  logger.Logger

	userRepo        user.Repository
	profileRepo     profile.Repository
	achievementRepo profile.AchievementRepository
	connRepo        connection.Repository
	campusRepo      message.BroadcastRepository
	directRepo      message.DirectRepository

	alice *user.User
	bob   *user.User
}

func (s *RepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	m, err := migrate.New("file://../../migrations", dsn)
	if err != nil {
		s.T().Fatalf("Failed to create migrate instance: %s", err)
	}
	if err := m.Up(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool
	s.testLogger = logger.NewNopLogger()

	s.userRepo = NewPostgresUserRepo(s.dbPool, s.testLogger)
	s.profileRepo = NewPostgresProfileRepo(s.dbPool, s.testLogger)
	s.achievementRepo = NewPostgresAchievementRepo(s.dbPool, s.testLogger)
	s.connRepo = NewPostgresConnectionRepo(s.dbPool, s.testLogger)
	s.campusRepo = NewPostgresCampusMessageRepo(s.dbPool, s.testLogger)
	s.directRepo = NewPostgresDirectMessageRepo(s.dbPool, s.testLogger)

	s.alice = s.seedStudent("alice@campus.edu", "Alice", "Physics")
	s.bob = s.seedStudent("bob@campus.edu", "Bob", "History")
}

func (s *RepoIntegrationTestSuite) seedStudent(email, name, department string) *user.User {
	now := time.Now().UTC()
	u := &user.User{ID: uuid.New(), Email: email, PasswordHash: "hashedpassword", CreatedAt: now}
	p := &profile.Profile{ID: u.ID, Name: name, Department: department, Email: email, CreatedAt: now, UpdatedAt: now}
	if err := s.userRepo.CreateWithProfile(context.Background(), u, p); err != nil {
		s.T().Fatalf("Failed to seed student: %s", err)
	}
	return u
}

func (s *RepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func TestRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(RepoIntegrationTestSuite))
}

func (s *RepoIntegrationTestSuite) Test_CreateWithProfile_DuplicateEmail() {
	now := time.Now().UTC()
	u := &user.User{ID: uuid.New(), Email: "ALICE@campus.edu", PasswordHash: "x", CreatedAt: now}
	p := &profile.Profile{ID: u.ID, Name: "Other", Department: "Math", Email: u.Email, CreatedAt: now, UpdatedAt: now}

	err := s.userRepo.CreateWithProfile(context.Background(), u, p)
	s.ErrorIs(err, user.ErrEmailAlreadyTaken)

	_, err = s.profileRepo.FindByID(context.Background(), u.ID)
	s.ErrorIs(err, profile.ErrProfileNotFound)
}

func (s *RepoIntegrationTestSuite) Test_Achievements_UndatedLast() {
	ctx := context.Background()
	older := time.Date(2022, 5, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	for _, a := range []*profile.Achievement{
		{ID: uuid.New(), UserID: s.alice.ID, Title: "undated", CreatedAt: time.Now()},
		{ID: uuid.New(), UserID: s.alice.ID, Title: "older", Date: &older, CreatedAt: time.Now()},
		{ID: uuid.New(), UserID: s.alice.ID, Title: "newer", Date: &newer, CreatedAt: time.Now()},
	} {
		s.Require().NoError(s.achievementRepo.Save(ctx, a))
	}

	list, err := s.achievementRepo.ListByUser(ctx, s.alice.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 3)
	s.Equal("newer", list[0].Title)
	s.Equal("older", list[1].Title)
	s.Equal("undated", list[2].Title)
}

func (s *RepoIntegrationTestSuite) Test_Connection_Lifecycle() {
	ctx := context.Background()

	c, err := connection.New(s.alice.ID, s.bob.ID)
	s.Require().NoError(err)
	s.Require().NoError(s.connRepo.Save(ctx, c))

	reverse, err := connection.New(s.bob.ID, s.alice.ID)
	s.Require().NoError(err)
	s.ErrorIs(s.connRepo.Save(ctx, reverse), connection.ErrAlreadyExists)

	s.ErrorIs(s.connRepo.MarkAccepted(ctx, c.ID, s.alice.ID), connection.ErrNotPending)
	s.Require().NoError(s.connRepo.MarkAccepted(ctx, c.ID, s.bob.ID))

	accepted, err := s.connRepo.ListAccepted(ctx, s.bob.ID)
	s.Require().NoError(err)
	s.Require().Len(accepted, 1)
	s.Equal(c.ID, accepted[0].ID)

	found, err := s.connRepo.FindBetween(ctx, s.bob.ID, s.alice.ID)
	s.Require().NoError(err)
	s.Equal(connection.StatusAccepted, found.Status)
}

func (s *RepoIntegrationTestSuite) Test_Messages_OrderedWithSenderNames() {
	ctx := context.Background()

	first, err := message.NewBroadcast(s.alice.ID, "hello campus")
	s.Require().NoError(err)
	s.Require().NoError(s.campusRepo.Save(ctx, first))
	second, err := message.NewBroadcast(s.bob.ID, "hi")
	s.Require().NoError(err)
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	s.Require().NoError(s.campusRepo.Save(ctx, second))

	all, err := s.campusRepo.ListAll(ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("Alice", all[0].SenderName)
	s.Equal("Bob", all[1].SenderName)

	dm, err := message.NewDirectText(s.bob.ID, s.alice.ID, "psst")
	s.Require().NoError(err)
	s.Require().NoError(s.directRepo.Save(ctx, dm))
	file := message.NewDirectFile(s.alice.ID, s.bob.ID, "https://cdn/x.png", "x.png")
	file.CreatedAt = dm.CreatedAt.Add(time.Second)
	s.Require().NoError(s.directRepo.Save(ctx, file))
	s.Require().NoError(s.directRepo.SetPreviewURL(ctx, file.ID, "https://cdn/thumb/x.png"))

	thread, err := s.directRepo.ListBetween(ctx, s.alice.ID, s.bob.ID)
	s.Require().NoError(err)
	s.Require().Len(thread, 2)
	s.Equal(dm.ID, thread[0].ID)
	s.Equal("Bob", thread[0].SenderName)
	s.Require().NotNil(thread[1].FilePreviewURL)
	s.Equal("https://cdn/thumb/x.png", *thread[1].FilePreviewURL)
}
