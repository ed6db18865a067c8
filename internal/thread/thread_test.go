package thread

import (
	"testing"
	"time"

	"github.com/pacifora/sahabat-ktb/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func reply(id uint, parent *uint, minute int) models.Reply {
	return models.Reply{
		ID:            id,
		PostID:        1,
		ParentReplyID: parent,
		CreatedAt:     time.Date(2025, 3, 1, 10, minute, 0, 0, time.UTC),
	}
}

func ptr(id uint) *uint { return &id }

func TestBuildGroupsChildrenUnderParents(t *testing.T) {
	replies := []models.Reply{
		reply(1, nil, 0),
		reply(2, nil, 1),
		reply(3, ptr(1), 2),
		reply(4, ptr(2), 3),
		reply(5, ptr(1), 4),
	}

	nodes := Build(replies)

	assert.Len(t, nodes, 2)
	assert.Equal(t, uint(1), nodes[0].Reply.ID)
	assert.Equal(t, uint(2), nodes[1].Reply.ID)
	assert.Equal(t, []uint{3, 5}, childIDs(nodes[0]))
	assert.Equal(t, []uint{4}, childIDs(nodes[1]))
}

func TestBuildPreservesCreationOrder(t *testing.T) {
	replies := []models.Reply{
		reply(10, nil, 0),
		reply(11, ptr(10), 1),
		reply(12, ptr(10), 2),
		reply(13, ptr(10), 3),
	}

	nodes := Build(replies)

	assert.Len(t, nodes, 1)
	assert.Equal(t, []uint{11, 12, 13}, childIDs(nodes[0]))
}

func TestBuildDropsOrphans(t *testing.T) {
	replies := []models.Reply{
		reply(1, nil, 0),
		reply(2, ptr(99), 1), // parent does not exist
		reply(3, ptr(1), 2),
		reply(4, ptr(3), 3), // parent is itself a child
	}

	nodes := Build(replies)

	assert.Len(t, nodes, 1)
	assert.Equal(t, []uint{3}, childIDs(nodes[0]))
	assert.Equal(t, 2, Count(nodes))
}

func TestBuildEmptyInput(t *testing.T) {
	assert.Empty(t, Build(nil))
	assert.Zero(t, Count(nil))
}

func TestBuildChildArrivingBeforeParentInSlice(t *testing.T) {
	// Ordering by created_at means a child can never precede its parent in
	// practice, but the builder must not depend on that.
	replies := []models.Reply{
		reply(2, ptr(1), 1),
		reply(1, nil, 0),
	}

	nodes := Build(replies)

	assert.Len(t, nodes, 1)
	assert.Equal(t, []uint{2}, childIDs(nodes[0]))
}

func childIDs(n Node) []uint {
	ids := make([]uint, 0, len(n.Children))
	for _, c := range n.Children {
		ids = append(ids, c.ID)
	}
	return ids
}
