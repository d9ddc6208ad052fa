package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/paydesk/payment-service/internal/core/domain"
	"github.com/paydesk/payment-service/internal/core/ports"
)

// TransactionRepository implements ports.TransactionRepository using MongoDB.
type TransactionRepository struct {
	coll     *mongo.Collection
	counters *mongo.Collection
}

var _ ports.TransactionRepository = (*TransactionRepository)(nil)

func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{
		coll:     db.Collection(transactionsCollection),
		counters: db.Collection(countersCollection),
	}
}

type mongoTransaction struct {
	ID        primitive.ObjectID `bson:"_id"`
	Seq       int64              `bson:"seq"`
	Method    string             `bson:"method"`
	Amount    float64            `bson:"amount"`
	Timestamp time.Time          `bson:"timestamp"`
}

// Append takes the next value of the shared transaction counter and inserts
// the document; the ObjectID is the transaction id.
func (r *TransactionRepository) Append(ctx context.Context, tx *domain.PaymentTransaction) (*domain.PaymentTransaction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	seq, err := r.nextSeq(ctx)
	if err != nil {
		return nil, err
	}

	doc := mongoTransaction{
		ID:        primitive.NewObjectID(),
		Seq:       seq,
		Method:    tx.Method,
		Amount:    tx.Amount,
		Timestamp: tx.Timestamp.UTC().Truncate(time.Millisecond),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}

	stored := toDomainTransaction(doc)
	return &stored, nil
}

// nextSeq increments the counter document with $inc, which the server applies
// atomically, so every writer process draws from one ordered sequence.
func (r *TransactionRepository) nextSeq(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": transactionsCollection},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next transaction seq: %w", err)
	}
	return counter.Seq, nil
}

// listOptions orders by the counter value, i.e. the order Append was called.
func listOptions() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})
}

func (r *TransactionRepository) List(ctx context.Context) ([]domain.PaymentTransaction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{}, listOptions())
	if err != nil {
		return nil, fmt.Errorf("find transactions: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]domain.PaymentTransaction, 0)
	for cur.Next(ctx) {
		var doc mongoTransaction
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode transaction: %w", err)
		}
		out = append(out, toDomainTransaction(doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

func toDomainTransaction(doc mongoTransaction) domain.PaymentTransaction {
	return domain.PaymentTransaction{
		ID:        doc.ID.Hex(),
		Method:    doc.Method,
		Amount:    doc.Amount,
		Timestamp: doc.Timestamp.UTC(),
	}
}
