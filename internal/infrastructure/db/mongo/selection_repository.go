package mongo

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/buzzhire/recruit-mailer/internal/core/domain"
)

const collectionSelections = "recipient_selections"

type SelectionRepository struct {
	col *mongo.Collection
}

func NewSelectionRepository(db *mongo.Database) *SelectionRepository {
	return &SelectionRepository{col: db.Collection(collectionSelections)}
}

// visibilityDoc is one field's toggle. Keys are values, not document field
// names, so custom keys containing "." or a leading "$" are stored as is.
type visibilityDoc struct {
	Key       string `bson:"key"`
	Client    bool   `bson:"client"`
	Internal  bool   `bson:"internal"`
	Superiors bool   `bson:"superiors"`
}

// selectionsDoc is keyed by candidate id: one record per candidate.
type selectionsDoc struct {
	CandidateID     string          `bson:"_id"`
	FieldVisibility []visibilityDoc `bson:"field_visibility"`
	FieldOrder      []string        `bson:"field_order"`
	UpdatedAt       time.Time       `bson:"updated_at"`
}

func toSelectionsDoc(s domain.RecipientSelections, now time.Time) selectionsDoc {
	doc := selectionsDoc{
		CandidateID:     s.CandidateID,
		FieldVisibility: make([]visibilityDoc, 0, len(s.FieldVisibility)),
		FieldOrder:      make([]string, 0, len(s.FieldOrder)),
		UpdatedAt:       now.UTC(),
	}
	keys := s.FieldVisibility.Keys()
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, k := range keys {
		t := s.FieldVisibility[k]
		doc.FieldVisibility = append(doc.FieldVisibility, visibilityDoc{
			Key:       string(k),
			Client:    t.Client,
			Internal:  t.Internal,
			Superiors: t.Superiors,
		})
	}
	for _, k := range s.FieldOrder {
		doc.FieldOrder = append(doc.FieldOrder, string(k))
	}
	return doc
}

func (d selectionsDoc) toDomain() domain.RecipientSelections {
	s := domain.RecipientSelections{
		CandidateID:     d.CandidateID,
		FieldVisibility: make(domain.FieldVisibility, len(d.FieldVisibility)),
		FieldOrder:      make(domain.FieldOrder, 0, len(d.FieldOrder)),
	}
	for _, v := range d.FieldVisibility {
		s.FieldVisibility[domain.FieldKey(v.Key)] = domain.VisibilityToggle{
			Client:    v.Client,
			Internal:  v.Internal,
			Superiors: v.Superiors,
		}
	}
	for _, k := range d.FieldOrder {
		s.FieldOrder = append(s.FieldOrder, domain.FieldKey(k))
	}
	return s
}

func (r *SelectionRepository) LoadSelections(ctx context.Context, candidateID string) (domain.RecipientSelections, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d selectionsDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": candidateID}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.RecipientSelections{}, domain.ErrSelectionsNotFound
		}
		return domain.RecipientSelections{}, storeErr("load selections", err)
	}
	return d.toDomain(), nil
}

// SaveSelections upserts the record and returns it as stored.
func (r *SelectionRepository) SaveSelections(ctx context.Context, s domain.RecipientSelections) (domain.RecipientSelections, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var saved selectionsDoc
	err := r.col.FindOneAndReplace(ctx,
		bson.M{"_id": s.CandidateID},
		toSelectionsDoc(s, time.Now()),
		options.FindOneAndReplace().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&saved)
	if err != nil {
		return domain.RecipientSelections{}, storeErr("save selections", err)
	}
	return saved.toDomain(), nil
}
