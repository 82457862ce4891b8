package database

import (
	"context"
	"testing"

	"shareit/internal/domain"
	"shareit/internal/models"
	"shareit/internal/paging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetRequest(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	requester := createTestUser(t, db, "Requester", "requester@example.com")

	req := &models.ItemRequest{RequesterID: requester.ID, Description: "need a drill"}
	require.NoError(t, db.CreateRequest(ctx, req))
	require.NotZero(t, req.ID)

	got, err := db.GetRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, "need a drill", got.Description)
	assert.Equal(t, requester.ID, got.RequesterID)

	_, err = db.GetRequest(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListRequestsByRequesterAndOthers(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")

	aliceReq := &models.ItemRequest{RequesterID: alice.ID, Description: "need a drill"}
	require.NoError(t, db.CreateRequest(ctx, aliceReq))
	bobFirst := &models.ItemRequest{RequesterID: bob.ID, Description: "need a tent"}
	require.NoError(t, db.CreateRequest(ctx, bobFirst))
	bobSecond := &models.ItemRequest{RequesterID: bob.ID, Description: "need a projector"}
	require.NoError(t, db.CreateRequest(ctx, bobSecond))

	own, err := db.ListRequestsByRequester(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, own, 2)
	// Newest first, id breaks the tie for same-instant rows
	assert.Equal(t, bobSecond.ID, own[0].ID)
	assert.Equal(t, bobFirst.ID, own[1].ID)

	others, err := db.ListRequestsFromOthers(ctx, alice.ID, paging.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, others, 2)
	assert.Equal(t, bobSecond.ID, others[0].ID)

	others, err = db.ListRequestsFromOthers(ctx, bob.ID, paging.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, aliceReq.ID, others[0].ID)
}
