package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/teamforge/ems-api/internal/core/domain"
	"github.com/teamforge/ems-api/internal/core/ports"
)

const projectsCollection = "projects"

// ProjectRepository persists projects. Reads resolve the owning client's
// name through a $lookup so listings do not need a second query.
type ProjectRepository struct {
	coll *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{coll: db.Collection(projectsCollection)}
}

type mongoProject struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty"`
	Title          string              `bson:"title"`
	Description    string              `bson:"description,omitempty"`
	Status         string              `bson:"status"`
	Priority       string              `bson:"priority"`
	StartDate      time.Time           `bson:"start_date"`
	CompletionDate *time.Time          `bson:"completion_date,omitempty"`
	ClientID       primitive.ObjectID  `bson:"client_id"`
	ClientName     string              `bson:"client_name,omitempty"`
	CreatedBy      *primitive.ObjectID `bson:"created_by,omitempty"`
	CreatedAt      time.Time           `bson:"created_at"`
	UpdatedAt      time.Time           `bson:"updated_at"`
}

func (r *ProjectRepository) Create(ctx context.Context, in ports.ProjectInput) (*domain.Project, error) {
	clientOID, err := parseID(in.ClientID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := mongoProject{
		Title:       in.Title,
		Description: in.Description,
		Status:      string(in.Status),
		Priority:    string(in.Priority),
		StartDate:   in.StartDate,
		ClientID:    clientOID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if !in.CompletionDate.IsZero() {
		doc.CompletionDate = &in.CompletionDate
	}
	if in.CreatedBy != "" {
		oid, err := parseID(in.CreatedBy)
		if err != nil {
			return nil, err
		}
		doc.CreatedBy = &oid
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return toDomainProject(&doc), nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	return r.aggregate(ctx, bson.M{}, bson.D{{Key: "_id", Value: 1}})
}

func (r *ProjectRepository) ListCreatedSince(ctx context.Context, since time.Time) ([]domain.Project, error) {
	return r.aggregate(ctx,
		bson.M{"created_at": bson.M{"$gte": since}},
		bson.D{{Key: "start_date", Value: 1}})
}

func (r *ProjectRepository) aggregate(ctx context.Context, match bson.M, sort bson.D) ([]domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: sort}},
		{{Key: "$lookup", Value: bson.M{
			"from":         clientsCollection,
			"localField":   "client_id",
			"foreignField": "_id",
			"as":           "client",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"client_name": bson.M{"$first": "$client.name"},
		}}},
		{{Key: "$project", Value: bson.M{"client": 0}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoProject
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}

	out := make([]domain.Project, 0, len(docs))
	for i := range docs {
		out = append(out, *toDomainProject(&docs[i]))
	}
	return out, nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoProject
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return toDomainProject(&doc), nil
}

func (r *ProjectRepository) Update(ctx context.Context, id string, in ports.ProjectInput) (*domain.Project, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{
		"title":       in.Title,
		"description": in.Description,
		"status":      string(in.Status),
		"priority":    string(in.Priority),
		"start_date":  in.StartDate,
		"updated_at":  time.Now().UTC(),
	}
	if !in.CompletionDate.IsZero() {
		set["completion_date"] = in.CompletionDate
	}
	if in.ClientID != "" {
		clientOID, err := parseID(in.ClientID)
		if err != nil {
			return nil, err
		}
		set["client_id"] = clientOID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrProjectNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func toDomainProject(doc *mongoProject) *domain.Project {
	p := &domain.Project{
		ID:          doc.ID.Hex(),
		Title:       doc.Title,
		Description: doc.Description,
		Status:      domain.WorkStatus(doc.Status),
		Priority:    domain.Priority(doc.Priority),
		StartDate:   doc.StartDate,
		ClientID:    doc.ClientID.Hex(),
		ClientName:  doc.ClientName,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
	if doc.CompletionDate != nil {
		p.CompletionDate = *doc.CompletionDate
	}
	if doc.CreatedBy != nil {
		p.CreatedBy = doc.CreatedBy.Hex()
	}
	return p
}
