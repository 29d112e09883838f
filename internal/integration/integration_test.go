package integration

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
	"quiz-builder/internal/app"
	"quiz-builder/internal/domain"
	"quiz-builder/internal/infra/postgres"
	pgmigrations "quiz-builder/internal/infra/postgres/migrations"
	infraredis "quiz-builder/internal/infra/redis"
	"quiz-builder/internal/storage"
)

func TestPostgresCollectionsSurviveRestart(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	migrateDB(t, ctx, pgURL)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	exerciseRestart(t, ctx, postgres.NewKV(pool))
}

func TestRedisCollectionsSurviveRestart(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	client, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	defer client.Close()

	exerciseRestart(t, ctx, infraredis.NewKV(client, "it:"))
}

// exerciseRestart plays the sample quiz with one controller, then checks a
// second controller over the same store sees the attempt and skips seeding.
func exerciseRestart(t *testing.T, ctx context.Context, kv storage.KV) {
	t.Helper()

	first, err := app.NewController(ctx, storage.NewCollections(kv))
	if err != nil {
		t.Fatalf("first controller: %v", err)
	}
	quizzes := first.Quizzes()
	if len(quizzes) != 1 || quizzes[0].Title != domain.SampleQuizTitle {
		t.Fatalf("expected seeded sample, got %+v", quizzes)
	}
	quiz := quizzes[0]

	if err := first.PlayQuiz(quiz.ID); err != nil {
		t.Fatalf("play: %v", err)
	}
	for i, q := range quiz.Questions {
		// answer the first three correctly and the rest wrong
		choice := q.CorrectOptionID
		if i >= 3 {
			for _, o := range q.Options {
				if o.ID != q.CorrectOptionID {
					choice = o.ID
					break
				}
			}
		}
		if err := first.SelectOption(q.ID, choice); err != nil {
			t.Fatalf("select: %v", err)
		}
	}
	attempt, err := first.SubmitAttempt(ctx)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if attempt.Score != 3 || attempt.Total != 5 {
		t.Fatalf("expected 3/5, got %d/%d", attempt.Score, attempt.Total)
	}

	second, err := app.NewController(ctx, storage.NewCollections(kv,
		storage.WithSeed(func() []domain.Quiz {
			t.Fatalf("seed must not run once quizzes are stored")
			return nil
		}),
	))
	if err != nil {
		t.Fatalf("second controller: %v", err)
	}
	if got := second.Quizzes(); len(got) != 1 || got[0].ID != quiz.ID {
		t.Fatalf("expected stored quiz, got %+v", got)
	}
	history := second.History()
	if len(history) != 1 || history[0].AttemptID != attempt.ID || history[0].Score != 3 {
		t.Fatalf("unexpected history %+v", history)
	}

	if err := second.ReviewAttempt(attempt.ID); err != nil {
		t.Fatalf("review: %v", err)
	}
	review, ok := second.Review()
	if !ok || review.TimeTaken == "" || len(review.Questions) != 5 {
		t.Fatalf("unexpected review %+v", review)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	addr, cleanup := startContainer(t, ctx, tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "quiz", "POSTGRES_PASSWORD": "quizpass", "POSTGRES_DB": "quizdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	})
	return fmt.Sprintf("postgres://quiz:quizpass@%s/quizdb?sslmode=disable", addr), cleanup
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	addr, cleanup := startContainer(t, ctx, tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	})
	return "redis://" + addr, cleanup
}

// startContainer runs req and returns host:port of its first exposed port.
func startContainer(t *testing.T, ctx context.Context, req tc.ContainerRequest) (string, func()) {
	t.Helper()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start %s: %v", req.Image, err)
	}
	cleanup := func() { _ = container.Terminate(ctx) }

	host, err := container.Host(ctx)
	if err != nil {
		cleanup()
		t.Fatalf("%s host: %v", req.Image, err)
	}
	port, err := container.MappedPort(ctx, nat.Port(req.ExposedPorts[0]))
	if err != nil {
		cleanup()
		t.Fatalf("%s port: %v", req.Image, err)
	}
	return net.JoinHostPort(host, port.Port()), cleanup
}

func migrateDB(t *testing.T, ctx context.Context, dsn string) {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(opts), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
