package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/DanielPopoola/rental-pricing-engine/internal/application"
	"github.com/DanielPopoola/rental-pricing-engine/internal/infrastructure/persistence/sqlite"
	"github.com/DanielPopoola/rental-pricing-engine/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type QuoteRepositoryTestSuite struct {
	suite.Suite
	db   *sql.DB
	repo *sqlite.QuoteRepository
}

func TestQuoteRepositorySuite(t *testing.T) {
	suite.Run(t, new(QuoteRepositoryTestSuite))
}

func (suite *QuoteRepositoryTestSuite) SetupTest() {
	db, err := sqlite.InitDB(filepath.Join(suite.T().TempDir(), "quotes.db"))
	suite.Require().NoError(err)
	suite.db = db
	suite.repo = sqlite.NewQuoteRepository(db)
}

func (suite *QuoteRepositoryTestSuite) TearDownTest() {
	suite.NoError(suite.db.Close())
}

func (suite *QuoteRepositoryTestSuite) TestSaveAndFind() {
	ctx := context.Background()
	createdAt := time.Date(2025, 3, 1, 10, 30, 0, 123456789, time.UTC)
	quote := testhelpers.NewQuote("q-1", createdAt, 72*time.Hour)

	suite.Require().NoError(suite.repo.Save(ctx, quote))

	found, err := suite.repo.FindByID(ctx, "q-1")
	suite.Require().NoError(err)

	suite.Equal(quote.PolicyName, found.PolicyName)
	suite.Equal(quote.Destinations, found.Destinations)
	suite.Equal(quote.Result.Bookable, found.Result.Bookable)
	suite.True(quote.Result.TotalPrice.Equal(found.Result.TotalPrice))
	suite.True(quote.CreatedAt.Equal(found.CreatedAt))
	suite.True(quote.ExpiresAt.Equal(found.ExpiresAt))
	suite.True(quote.PickupAt.Equal(found.PickupAt))
}

func (suite *QuoteRepositoryTestSuite) TestSaveDuplicate() {
	ctx := context.Background()
	quote := testhelpers.NewQuote("q-1", time.Now().UTC(), time.Hour)

	suite.Require().NoError(suite.repo.Save(ctx, quote))
	suite.ErrorIs(suite.repo.Save(ctx, quote), sqlite.ErrDuplicateQuote)
}

func (suite *QuoteRepositoryTestSuite) TestFindByID_NotFound() {
	_, err := suite.repo.FindByID(context.Background(), "missing")
	suite.ErrorIs(err, application.ErrQuoteNotFound)
}

func (suite *QuoteRepositoryTestSuite) TestFindByFingerprint() {
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"first", "second", "third"} {
		q := testhelpers.NewQuote(id, base.Add(time.Duration(i)*time.Minute), time.Hour)
		q.Fingerprint = "shared"
		suite.Require().NoError(suite.repo.Save(ctx, q))
	}
	suite.Require().NoError(suite.repo.Save(ctx, testhelpers.NewQuote("other", base, time.Hour)))

	quotes, err := suite.repo.FindByFingerprint(ctx, "shared", 2)
	suite.Require().NoError(err)
	suite.Require().Len(quotes, 2)
	suite.Equal("third", quotes[0].ID)
	suite.Equal("second", quotes[1].ID)
}

func (suite *QuoteRepositoryTestSuite) TestDeleteExpired() {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	suite.Require().NoError(suite.repo.Save(ctx, testhelpers.NewQuote("oldest", now.Add(-5*time.Hour), time.Hour)))
	suite.Require().NoError(suite.repo.Save(ctx, testhelpers.NewQuote("older", now.Add(-3*time.Hour), time.Hour)))
	suite.Require().NoError(suite.repo.Save(ctx, testhelpers.NewQuote("boundary", now.Add(-time.Hour), time.Hour)))
	suite.Require().NoError(suite.repo.Save(ctx, testhelpers.NewQuote("live", now, time.Hour)))

	n, err := suite.repo.DeleteExpired(ctx, now, 2)
	suite.Require().NoError(err)
	suite.Equal(2, n)

	_, err = suite.repo.FindByID(ctx, "oldest")
	suite.ErrorIs(err, application.ErrQuoteNotFound)
	_, err = suite.repo.FindByID(ctx, "boundary")
	suite.NoError(err, "only the two oldest are removed")

	n, err = suite.repo.DeleteExpired(ctx, now, 10)
	suite.Require().NoError(err)
	suite.Equal(1, n)

	_, err = suite.repo.FindByID(ctx, "live")
	suite.NoError(err)
}

func TestInitDB_InMemory(t *testing.T) {
	db, err := sqlite.InitDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	var count int
	err = db.QueryRow(`SELECT COUNT(*) FROM quotes`).Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestIsBusy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locked.db")
	db, err := sqlite.InitDB(path)
	require.NoError(t, err)
	defer db.Close()

	other, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(0)")
	require.NoError(t, err)
	defer other.Close()

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()
	_, err = tx.ExecContext(ctx, `DELETE FROM quotes`)
	require.NoError(t, err)

	_, err = other.ExecContext(ctx, `DELETE FROM quotes`)
	require.Error(t, err)
	assert.True(t, sqlite.IsBusy(err))
	assert.False(t, sqlite.IsBusy(application.ErrQuoteNotFound))
}
