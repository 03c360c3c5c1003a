package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/buzzhire/recruit-mailer/internal/core/domain"
)

func TestSelectionsDoc_KeysAreValuesNotFieldNames(t *testing.T) {
	sel := domain.RecipientSelections{
		CandidateID: "c1",
		FieldVisibility: domain.FieldVisibility{
			"visa.status":    {Client: false, Internal: true, Superiors: true},
			"$rate":          {Client: true, Internal: false, Superiors: false},
			domain.FieldName: domain.AllVisible(),
		},
		FieldOrder: domain.FieldOrder{"$rate", domain.FieldName, "visa.status"},
	}

	raw, err := bson.Marshal(toSelectionsDoc(sel, time.Now()))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var plain bson.M
	if err := bson.Unmarshal(raw, &plain); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	entries, ok := plain["field_visibility"].(bson.A)
	if !ok {
		t.Fatalf("field_visibility must be an array, got %T", plain["field_visibility"])
	}
	for _, e := range entries {
		doc, ok := e.(bson.M)
		if !ok {
			t.Fatalf("unexpected entry %T", e)
		}
		for name := range doc {
			switch name {
			case "key", "client", "internal", "superiors":
			default:
				t.Errorf("unexpected field name %q in visibility entry", name)
			}
		}
	}

	var decoded selectionsDoc
	if err := bson.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	got := decoded.toDomain()
	if got.FieldVisibility["visa.status"] != sel.FieldVisibility["visa.status"] {
		t.Errorf("dotted key lost: %+v", got.FieldVisibility)
	}
	if got.FieldVisibility["$rate"] != sel.FieldVisibility["$rate"] {
		t.Errorf("dollar key lost: %+v", got.FieldVisibility)
	}
	if len(got.FieldOrder) != 3 || got.FieldOrder[0] != "$rate" {
		t.Errorf("order changed: %v", got.FieldOrder)
	}
}
