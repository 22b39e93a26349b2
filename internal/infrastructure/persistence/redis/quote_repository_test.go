//go:build integration

package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/DanielPopoola/rental-pricing-engine/internal/application"
	"github.com/DanielPopoola/rental-pricing-engine/internal/infrastructure/persistence/redis"
	"github.com/DanielPopoola/rental-pricing-engine/internal/testhelpers"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type QuoteRepositoryTestSuite struct {
	suite.Suite
	client *goredis.Client
	repo   *redis.QuoteRepository
}

func TestQuoteRepositorySuite(t *testing.T) {
	suite.Run(t, new(QuoteRepositoryTestSuite))
}

func (suite *QuoteRepositoryTestSuite) SetupSuite() {
	suite.client = testhelpers.SetupTestRedis(suite.T())
	suite.repo = redis.NewQuoteRepository(suite.client)
}

func (suite *QuoteRepositoryTestSuite) SetupTest() {
	suite.Require().NoError(suite.client.FlushAll(context.Background()).Err())
}

func (suite *QuoteRepositoryTestSuite) TestSaveAndFind() {
	ctx := context.Background()
	quote := testhelpers.NewQuote("q-1", time.Now().UTC(), time.Hour)

	suite.Require().NoError(suite.repo.Save(ctx, quote))

	found, err := suite.repo.FindByID(ctx, "q-1")
	suite.Require().NoError(err)
	suite.Equal(quote.PolicyName, found.PolicyName)
	suite.Equal(quote.Destinations, found.Destinations)
	suite.True(quote.Result.TotalPrice.Equal(found.Result.TotalPrice))
	suite.True(quote.ExpiresAt.Equal(found.ExpiresAt))

	ttl, err := suite.client.TTL(ctx, "pricing:quote:q-1").Result()
	suite.Require().NoError(err)
	suite.Greater(ttl, 50*time.Minute)
}

func (suite *QuoteRepositoryTestSuite) TestSaveDuplicate() {
	ctx := context.Background()
	now := time.Now().UTC()
	quote := testhelpers.NewQuote("q-1", now, time.Hour)
	other := testhelpers.NewQuote("q-1", now.Add(time.Minute), time.Hour)

	suite.Require().NoError(suite.repo.Save(ctx, quote))
	suite.ErrorIs(suite.repo.Save(ctx, other), redis.ErrDuplicateQuote)
}

func (suite *QuoteRepositoryTestSuite) TestSaveReplayIsIdempotent() {
	ctx := context.Background()
	quote := testhelpers.NewQuote("q-1", time.Now().UTC(), time.Hour)
	quote.Fingerprint = "shared"

	suite.Require().NoError(suite.repo.Save(ctx, quote))
	suite.Require().NoError(suite.repo.Save(ctx, quote))

	quotes, err := suite.repo.FindByFingerprint(ctx, "shared", 10)
	suite.Require().NoError(err)
	suite.Require().Len(quotes, 1)
	suite.Equal("q-1", quotes[0].ID)
}

func (suite *QuoteRepositoryTestSuite) TestSaveReindexesStoredQuote() {
	ctx := context.Background()
	quote := testhelpers.NewQuote("q-1", time.Now().UTC(), time.Hour)
	quote.Fingerprint = "shared"

	suite.Require().NoError(suite.repo.Save(ctx, quote))
	// quote key written, index entry lost before the call returned
	suite.Require().NoError(suite.client.Del(ctx, "pricing:quotes:fp:shared").Err())

	suite.Require().NoError(suite.repo.Save(ctx, quote))

	quotes, err := suite.repo.FindByFingerprint(ctx, "shared", 10)
	suite.Require().NoError(err)
	suite.Require().Len(quotes, 1)

	ttl, err := suite.client.TTL(ctx, "pricing:quotes:fp:shared").Result()
	suite.Require().NoError(err)
	suite.Greater(ttl, 50*time.Minute)
}

func (suite *QuoteRepositoryTestSuite) TestFindByID_NotFound() {
	_, err := suite.repo.FindByID(context.Background(), "missing")
	suite.ErrorIs(err, application.ErrQuoteNotFound)
}

func (suite *QuoteRepositoryTestSuite) TestFindByFingerprint() {
	ctx := context.Background()
	now := time.Now().UTC()

	for i, id := range []string{"old", "mid", "new"} {
		q := testhelpers.NewQuote(id, now.Add(time.Duration(i)*time.Second), time.Hour)
		q.Fingerprint = "shared"
		suite.Require().NoError(suite.repo.Save(ctx, q))
	}

	quotes, err := suite.repo.FindByFingerprint(ctx, "shared", 2)
	suite.Require().NoError(err)
	suite.Require().Len(quotes, 2)
	suite.Equal("new", quotes[0].ID)
	suite.Equal("mid", quotes[1].ID)
}

func (suite *QuoteRepositoryTestSuite) TestDeleteExpired_PrunesIndex() {
	ctx := context.Background()
	q := testhelpers.NewQuote("gone", time.Now().UTC(), time.Hour)
	q.Fingerprint = "shared"
	suite.Require().NoError(suite.repo.Save(ctx, q))
	suite.Require().NoError(suite.client.Del(ctx, "pricing:quote:gone").Err())

	removed, err := suite.repo.DeleteExpired(ctx, time.Now(), 100)
	suite.Require().NoError(err)
	suite.Zero(removed)

	members, err := suite.client.ZCard(ctx, "pricing:quotes:fp:shared").Result()
	suite.Require().NoError(err)
	suite.Zero(members)
}
