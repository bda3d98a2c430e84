package repository

import (
	"context"
	"fmt"
	"time"

	"dna-status-service/internal/apperr"
	"dna-status-service/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo implementation
type MongoAppointmentRepository struct {
	col *mongo.Collection
}

func NewMongoAppointmentRepository(db *mongo.Database) *MongoAppointmentRepository {
	return &MongoAppointmentRepository{col: db.Collection("appointments")}
}

func (m *MongoAppointmentRepository) Save(ctx context.Context, a *model.Appointment) error {
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now

	filter := bson.M{"appointment_id": a.ID}
	update := bson.M{"$set": a}
	opts := options.Update().SetUpsert(true)
	_, err := m.col.UpdateOne(ctx, filter, update, opts)
	return err
}

func (m *MongoAppointmentRepository) FindByID(ctx context.Context, id string) (*model.Appointment, error) {
	var res model.Appointment
	err := m.col.FindOne(ctx, bson.M{"appointment_id": id}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("cita %s: %w", id, apperr.ErrNotFound)
	}
	return &res, err
}

func (m *MongoAppointmentRepository) FindByUserID(ctx context.Context, userID string) ([]*model.Appointment, error) {
	return m.findMany(ctx, bson.M{"user_id": userID})
}

func (m *MongoAppointmentRepository) FindAll(ctx context.Context) ([]*model.Appointment, error) {
	return m.findMany(ctx, bson.M{})
}

func (m *MongoAppointmentRepository) findMany(ctx context.Context, filter bson.M) ([]*model.Appointment, error) {
	cur, err := m.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*model.Appointment
	for cur.Next(ctx) {
		var v model.Appointment
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, cur.Err()
}

type MongoOrderRepository struct {
	col *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{col: db.Collection("orders")}
}

func (m *MongoOrderRepository) Save(ctx context.Context, o *model.Order) error {
	now := time.Now().UTC()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now

	filter := bson.M{"order_id": o.ID}
	update := bson.M{"$set": o}
	opts := options.Update().SetUpsert(true)
	_, err := m.col.UpdateOne(ctx, filter, update, opts)
	return err
}

func (m *MongoOrderRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	var res model.Order
	err := m.col.FindOne(ctx, bson.M{"order_id": id}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("orden %s: %w", id, apperr.ErrNotFound)
	}
	return &res, err
}

func (m *MongoOrderRepository) FindByUserID(ctx context.Context, userID string) ([]*model.Order, error) {
	cur, err := m.col.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*model.Order
	for cur.Next(ctx) {
		var v model.Order
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, cur.Err()
}
