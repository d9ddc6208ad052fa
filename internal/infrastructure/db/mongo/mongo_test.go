package mongo

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// unreachableURI points at a port nothing listens on; the driver connects
// lazily, so building repositories against it never dials.
const unreachableURI = "mongodb://127.0.0.1:1/?connect=direct"

func offlineDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(unreachableURI))
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	return client.Database("payments_test")
}

func TestConnect_FailsFastWhenUnreachable(t *testing.T) {
	start := time.Now()
	_, _, err := Connect(context.Background(), Config{
		URI:      unreachableURI,
		Database: "payments_test",
		Timeout:  300 * time.Millisecond,
	})
	if err == nil {
		t.Fatal("expected connect error")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("connect took %v, timeout not applied", elapsed)
	}
}

func TestRepositories_Collections(t *testing.T) {
	db := offlineDatabase(t)

	txs := NewTransactionRepository(db)
	if txs.coll.Name() != transactionsCollection || txs.counters.Name() != countersCollection {
		t.Fatalf("unexpected collections: %s %s", txs.coll.Name(), txs.counters.Name())
	}
	if users := NewUserRepository(db); users.coll.Name() != usersCollection {
		t.Fatalf("unexpected users collection: %s", users.coll.Name())
	}
}

func TestListOptions_SortsBySequence(t *testing.T) {
	sort, ok := listOptions().Sort.(bson.D)
	if !ok {
		t.Fatalf("expected bson.D sort, got %T", listOptions().Sort)
	}
	if len(sort) != 1 || sort[0].Key != "seq" || sort[0].Value != 1 {
		t.Fatalf("unexpected sort: %v", sort)
	}
}

func TestToDomainTransaction(t *testing.T) {
	id := primitive.NewObjectID()
	ts := time.Date(2026, 3, 4, 5, 6, 7, 8_000_000, time.FixedZone("IST", 19800))

	got := toDomainTransaction(mongoTransaction{ID: id, Seq: 7, Method: "creditCard", Amount: 12.5, Timestamp: ts})

	if got.ID != id.Hex() || got.Method != "creditCard" || got.Amount != 12.5 {
		t.Fatalf("unexpected transaction: %+v", got)
	}
	if !got.Timestamp.Equal(ts) || got.Timestamp.Location() != time.UTC {
		t.Fatalf("timestamp = %v, want %v in UTC", got.Timestamp, ts)
	}
}

func TestToDomainUser(t *testing.T) {
	id := primitive.NewObjectID()
	got := toDomainUser(mongoUser{
		ID:           id,
		Username:     "alice",
		PasswordHash: "hash",
		Roles:        []string{"ROLE_USER"},
		CreatedAt:    1_700_000_000,
	})

	if got.ID != id.Hex() || got.Username != "alice" || len(got.Roles) != 1 {
		t.Fatalf("unexpected user: %+v", got)
	}
	if !got.CreatedAt.Equal(time.Unix(1_700_000_000, 0)) {
		t.Fatalf("created_at = %v", got.CreatedAt)
	}
	if !unixToTime(0).IsZero() {
		t.Fatal("zero timestamp must map to zero time")
	}
}
