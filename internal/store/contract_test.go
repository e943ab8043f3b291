package store_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/knowledgebase/internal/domain"
	"github.com/heartmarshall/knowledgebase/internal/store"
	"github.com/heartmarshall/knowledgebase/internal/store/badgerstore"
	"github.com/heartmarshall/knowledgebase/internal/store/memstore"
)

// newTopic is a minimal valid topic for store tests.
func newTopic(t *testing.T, name string) domain.Topic {
	t.Helper()
	topic, err := domain.NewTopic(name, "content of "+name, nil, uuid.New(), nil)
	require.NoError(t, err)
	return *topic
}

// implementations returns each store.Collection implementation under test.
func implementations(t *testing.T) map[string]store.Collection[domain.Topic] {
	t.Helper()

	db, err := badgerstore.Open(badgerstore.InMemoryConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return map[string]store.Collection[domain.Topic]{
		"memstore":    memstore.NewCollection[domain.Topic](),
		"badgerstore": badgerstore.NewCollection[domain.Topic](db, "topics"),
	}
}

func TestCollection_CreateAndFindByID(t *testing.T) {
	for name, coll := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			topic := newTopic(t, "Go")
			require.NoError(t, coll.Create(ctx, topic))

			got, err := coll.FindByID(ctx, topic.ID)
			require.NoError(t, err)
			require.Equal(t, topic.ID, got.ID)
			require.Equal(t, "Go", got.Name)
		})
	}
}

func TestCollection_FindByID_NotFound(t *testing.T) {
	for name, coll := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			_, err := coll.FindByID(context.Background(), uuid.New())
			require.ErrorIs(t, err, domain.ErrNotFound)
		})
	}
}

func TestCollection_FindAll_EmptyIsNotNil(t *testing.T) {
	for name, coll := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			all, err := coll.FindAll(context.Background())
			require.NoError(t, err)
			require.NotNil(t, all)
			require.Empty(t, all)
		})
	}
}

func TestCollection_FindBy_Predicates(t *testing.T) {
	for name, coll := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			a := newTopic(t, "A")
			b := newTopic(t, "B")
			require.NoError(t, coll.Create(ctx, a))
			require.NoError(t, coll.Create(ctx, b))

			got, err := coll.FindBy(ctx, func(tp domain.Topic) bool { return tp.Name == "B" })
			require.NoError(t, err)
			require.Equal(t, b.ID, got.ID)

			_, err = coll.FindBy(ctx, func(tp domain.Topic) bool { return tp.Name == "C" })
			require.ErrorIs(t, err, domain.ErrNotFound)
		})
	}
}

func TestCollection_FindManyBy(t *testing.T) {
	for name, coll := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			parent := newTopic(t, "parent")
			require.NoError(t, coll.Create(ctx, parent))

			for _, n := range []string{"c1", "c2"} {
				child, err := domain.NewTopic(n, "content", &parent.ID, uuid.New(), nil)
				require.NoError(t, err)
				require.NoError(t, coll.Create(ctx, *child))
			}

			children, err := coll.FindManyBy(ctx, func(tp domain.Topic) bool {
				return tp.ParentTopicID != nil && *tp.ParentTopicID == parent.ID
			})
			require.NoError(t, err)
			require.Len(t, children, 2)

			none, err := coll.FindManyBy(ctx, func(tp domain.Topic) bool { return false })
			require.NoError(t, err)
			require.NotNil(t, none)
			require.Empty(t, none)
		})
	}
}

func TestCollection_Update(t *testing.T) {
	for name, coll := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			topic := newTopic(t, "before")
			require.NoError(t, coll.Create(ctx, topic))

			updated := topic
			updated.Name = "after"
			updated.Version = 2
			require.NoError(t, coll.Update(ctx, func(tp domain.Topic) bool {
				return tp.ID == topic.ID
			}, updated))

			got, err := coll.FindByID(ctx, topic.ID)
			require.NoError(t, err)
			require.Equal(t, "after", got.Name)
			require.Equal(t, 2, got.Version)

			// Predicate matching nothing is a silent no-op.
			require.NoError(t, coll.Update(ctx, func(domain.Topic) bool { return false }, updated))
		})
	}
}

func TestCollection_Delete_AllMatches(t *testing.T) {
	for name, coll := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			parent := newTopic(t, "parent")
			require.NoError(t, coll.Create(ctx, parent))
			for _, n := range []string{"x", "y"} {
				child, err := domain.NewTopic(n, "content", &parent.ID, uuid.New(), nil)
				require.NoError(t, err)
				require.NoError(t, coll.Create(ctx, *child))
			}

			err := coll.Delete(ctx, func(tp domain.Topic) bool {
				return tp.ParentTopicID != nil && *tp.ParentTopicID == parent.ID
			})
			require.NoError(t, err)

			all, err := coll.FindAll(ctx)
			require.NoError(t, err)
			require.Len(t, all, 1)
			require.Equal(t, parent.ID, all[0].ID)
		})
	}
}

func TestCollection_ReadsAreIndependentCopies(t *testing.T) {
	for name, coll := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			topic := newTopic(t, "Go")
			topic.Resource = &domain.Resource{
				ID: uuid.New(), TopicID: topic.ID,
				URL: "https://go.dev", Description: "site", Type: domain.ResourceTypeArticle,
			}
			require.NoError(t, coll.Create(ctx, topic))

			first, err := coll.FindByID(ctx, topic.ID)
			require.NoError(t, err)
			first.Name = "mutated"
			first.Resource.URL = "https://mutated"

			second, err := coll.FindByID(ctx, topic.ID)
			require.NoError(t, err)
			require.Equal(t, "Go", second.Name)
			require.Equal(t, "https://go.dev", second.Resource.URL)
		})
	}
}
