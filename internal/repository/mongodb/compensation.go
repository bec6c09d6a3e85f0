package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/compensation"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type compensationDocument struct {
	EmployeeID            string                `bson:"_id"`
	BaseSalary            primitive.Decimal128  `bson:"base_salary"`
	Bonus                 primitive.Decimal128  `bson:"bonus"`
	Allowances            primitive.Decimal128  `bson:"allowances"`
	TaxWithholdingPercent *primitive.Decimal128 `bson:"tax_withholding_percent"`
	PayFrequency          string                `bson:"pay_frequency"`
	HealthInsurance       bool                  `bson:"health_insurance"`
	RetirementPercent     primitive.Decimal128  `bson:"retirement_percent"`
	EffectiveDate         time.Time             `bson:"effective_date"`
	UpdatedAt             time.Time             `bson:"updated_at"`
}

func (d compensationDocument) toEntity() compensation.Compensation {
	return compensation.Compensation{
		EmployeeID:            d.EmployeeID,
		BaseSalary:            fromDecimal128(d.BaseSalary),
		Bonus:                 fromDecimal128(d.Bonus),
		Allowances:            fromDecimal128(d.Allowances),
		TaxWithholdingPercent: fromNullDecimal128(d.TaxWithholdingPercent),
		PayFrequency:          compensation.PayFrequency(d.PayFrequency),
		Benefits: compensation.Benefits{
			HealthInsurance:   d.HealthInsurance,
			RetirementPercent: fromDecimal128(d.RetirementPercent),
		},
		EffectiveDate: d.EffectiveDate.UTC(),
		UpdatedAt:     d.UpdatedAt.UTC(),
	}
}

type compensationRepositoryImpl struct {
	coll *mongo.Collection
}

func NewCompensationRepository(db *database.MongoDB) compensation.CompensationRepository {
	return &compensationRepositoryImpl{coll: db.Collection(collectionCompensation)}
}

// Get implements compensation.CompensationRepository.
func (r *compensationRepositoryImpl) Get(ctx context.Context, employeeID string) (compensation.Compensation, error) {
	var doc compensationDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": employeeID}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return compensation.Compensation{}, compensation.ErrCompensationNotFound
		}
		return compensation.Compensation{}, fmt.Errorf("failed to get compensation: %w", err)
	}
	return doc.toEntity(), nil
}

// Upsert implements compensation.CompensationRepository.
// Supplied fields go to $set; the remaining defaults go to $setOnInsert so a
// partial update never resets stored values.
func (r *compensationRepositoryImpl) Upsert(ctx context.Context, employeeID string, patch compensation.Patch, at time.Time) (compensation.Compensation, error) {
	defaults := compensation.New(employeeID, at)

	set := bson.M{"effective_date": at, "updated_at": at}
	setOnInsert := bson.M{}

	putDecimal := func(field string, v *primitive.Decimal128, def primitive.Decimal128) {
		if v != nil {
			set[field] = *v
		} else {
			setOnInsert[field] = def
		}
	}
	putDecimal("base_salary", toNullDecimal128(patch.BaseSalary), toDecimal128(defaults.BaseSalary))
	putDecimal("bonus", toNullDecimal128(patch.Bonus), toDecimal128(defaults.Bonus))
	putDecimal("allowances", toNullDecimal128(patch.Allowances), toDecimal128(defaults.Allowances))
	putDecimal("retirement_percent", toNullDecimal128(patch.RetirementPercent), toDecimal128(defaults.Benefits.RetirementPercent))

	if patch.TaxWithholdingPercent != nil {
		set["tax_withholding_percent"] = toDecimal128(*patch.TaxWithholdingPercent)
	} else {
		setOnInsert["tax_withholding_percent"] = nil
	}
	if patch.PayFrequency != nil {
		set["pay_frequency"] = string(*patch.PayFrequency)
	} else {
		setOnInsert["pay_frequency"] = string(defaults.PayFrequency)
	}
	if patch.HealthInsurance != nil {
		set["health_insurance"] = *patch.HealthInsurance
	} else {
		setOnInsert["health_insurance"] = defaults.Benefits.HealthInsurance
	}

	update := bson.M{"$set": set}
	if len(setOnInsert) > 0 {
		update["$setOnInsert"] = setOnInsert
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc compensationDocument
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": employeeID}, update, opts).Decode(&doc); err != nil {
		return compensation.Compensation{}, fmt.Errorf("failed to upsert compensation: %w", err)
	}
	return doc.toEntity(), nil
}

// List implements compensation.CompensationRepository.
func (r *compensationRepositoryImpl) List(ctx context.Context) ([]compensation.Compensation, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query compensation: %w", err)
	}
	return decodeAll(ctx, cur, compensationDocument.toEntity)
}

// Delete implements compensation.CompensationRepository.
func (r *compensationRepositoryImpl) Delete(ctx context.Context, employeeID string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": employeeID}); err != nil {
		return fmt.Errorf("failed to delete compensation: %w", err)
	}
	return nil
}
