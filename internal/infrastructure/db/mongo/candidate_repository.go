package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/buzzhire/recruit-mailer/internal/core/domain"
)

const collectionCandidates = "candidates"

type CandidateRepository struct {
	col        *mongo.Collection
	selections *mongo.Collection
	now        func() time.Time
}

func NewCandidateRepository(db *mongo.Database) *CandidateRepository {
	return &CandidateRepository{
		col:        db.Collection(collectionCandidates),
		selections: db.Collection(collectionSelections),
		now:        time.Now,
	}
}

type customFieldDoc struct {
	Key   string `bson:"key"`
	Value string `bson:"value"`
}

// candidateDoc stores custom fields as an array so their order survives.
type candidateDoc struct {
	ID                   string           `bson:"_id"`
	Name                 string           `bson:"name"`
	Phone                string           `bson:"phone"`
	Email                string           `bson:"email"`
	Salary               *float64         `bson:"salary"`
	ExpectedCTC          *float64         `bson:"expected_ctc"`
	Notice               *float64         `bson:"notice"`
	TotalExperienceYears *float64         `bson:"total_experience_years"`
	Location             string           `bson:"location"`
	CVURL                string           `bson:"cv_url"`
	CurrentCompanyName   string           `bson:"current_company_name"`
	Skills               []string         `bson:"skills"`
	Education            string           `bson:"education"`
	JobTitle             string           `bson:"job_title"`
	Source               string           `bson:"source"`
	CustomFields         []customFieldDoc `bson:"custom_fields"`
	CreatedAt            time.Time        `bson:"created_at"`
}

func toCandidateDoc(c domain.Candidate) candidateDoc {
	doc := candidateDoc{
		ID:                   c.ID,
		Name:                 c.Name,
		Phone:                c.Phone,
		Email:                c.Email,
		Salary:               c.Salary,
		ExpectedCTC:          c.ExpectedCTC,
		Notice:               c.Notice,
		TotalExperienceYears: c.TotalExperienceYears,
		Location:             c.Location,
		CVURL:                c.CVURL,
		CurrentCompanyName:   c.CurrentCompanyName,
		Skills:               c.Skills,
		Education:            c.Education,
		JobTitle:             c.JobTitle,
		Source:               c.Source,
		CustomFields:         make([]customFieldDoc, 0, len(c.CustomFields)),
	}
	if doc.Skills == nil {
		doc.Skills = []string{}
	}
	for _, f := range c.CustomFields {
		doc.CustomFields = append(doc.CustomFields, customFieldDoc{Key: f.Key, Value: f.Value})
	}
	if c.CreatedAt != nil {
		doc.CreatedAt = c.CreatedAt.Time
	}
	return doc
}

func (d candidateDoc) toDomain() domain.Candidate {
	c := domain.Candidate{
		ID:                   d.ID,
		Name:                 d.Name,
		Phone:                d.Phone,
		Email:                d.Email,
		Salary:               d.Salary,
		ExpectedCTC:          d.ExpectedCTC,
		Notice:               d.Notice,
		TotalExperienceYears: d.TotalExperienceYears,
		Location:             d.Location,
		CVURL:                d.CVURL,
		CurrentCompanyName:   d.CurrentCompanyName,
		Skills:               d.Skills,
		Education:            d.Education,
		JobTitle:             d.JobTitle,
		Source:               d.Source,
	}
	if c.Skills == nil {
		c.Skills = []string{}
	}
	for _, f := range d.CustomFields {
		c.CustomFields = c.CustomFields.Set(f.Key, f.Value)
	}
	if !d.CreatedAt.IsZero() {
		c.CreatedAt = domain.NewTimestamp(d.CreatedAt)
	}
	return c
}

// ListCandidates returns every candidate, newest first.
func (r *CandidateRepository) ListCandidates(ctx context.Context) ([]domain.Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, storeErr("list candidates", err)
	}
	defer cur.Close(ctx)

	var docs []candidateDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storeErr("list candidates", err)
	}
	out := make([]domain.Candidate, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *CandidateRepository) GetCandidate(ctx context.Context, id string) (domain.Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d candidateDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Candidate{}, domain.ErrCandidateNotFound
		}
		return domain.Candidate{}, storeErr("get candidate", err)
	}
	return d.toDomain(), nil
}

// CreateCandidate assigns a fresh id and creation time.
func (r *CandidateRepository) CreateCandidate(ctx context.Context, c domain.Candidate) (domain.Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	c.ID = uuid.NewString()
	c.CreatedAt = domain.NewTimestamp(r.now())
	if _, err := r.col.InsertOne(ctx, toCandidateDoc(c)); err != nil {
		return domain.Candidate{}, storeErr("create candidate", err)
	}
	return toCandidateDoc(c).toDomain(), nil
}

// UpdateCandidate overwrites every field except the id and creation time.
func (r *CandidateRepository) UpdateCandidate(ctx context.Context, c domain.Candidate) (domain.Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toCandidateDoc(c)
	set := bson.M{
		"name":                   doc.Name,
		"phone":                  doc.Phone,
		"email":                  doc.Email,
		"salary":                 doc.Salary,
		"expected_ctc":           doc.ExpectedCTC,
		"notice":                 doc.Notice,
		"total_experience_years": doc.TotalExperienceYears,
		"location":               doc.Location,
		"cv_url":                 doc.CVURL,
		"current_company_name":   doc.CurrentCompanyName,
		"skills":                 doc.Skills,
		"education":              doc.Education,
		"job_title":              doc.JobTitle,
		"source":                 doc.Source,
		"custom_fields":          doc.CustomFields,
	}

	var updated candidateDoc
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": c.ID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Candidate{}, domain.ErrCandidateNotFound
		}
		return domain.Candidate{}, storeErr("update candidate", err)
	}
	return updated.toDomain(), nil
}

// DeleteCandidate removes the candidate and its selections.
func (r *CandidateRepository) DeleteCandidate(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storeErr("delete candidate", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCandidateNotFound
	}
	if _, err := r.selections.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return storeErr("delete selections", err)
	}
	return nil
}

// CountCreatedToday counts candidates created since local midnight.
func (r *CandidateRepository) CountCreatedToday(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := r.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	n, err := r.col.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": midnight.UTC()}})
	if err != nil {
		return 0, storeErr("count today", err)
	}
	return int(n), nil
}

// EnsureIndexes creates the indexes used by listing and counting.
func (r *CandidateRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "email", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func storeErr(op string, err error) error {
	return &domain.StoreError{Op: op, Err: err}
}
