package repository

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"cost_estimates/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDynamo is a single-table, id-keyed stand-in for DynamoDB that honors
// the attribute_exists/attribute_not_exists conditions used by the repository.
type fakeDynamo struct {
	items    map[string]map[string]types.AttributeValue
	pageSize int
	err      error
	scans    int
	table    string
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: make(map[string]map[string]types.AttributeValue), pageSize: 100}
}

func keyOf(av map[string]types.AttributeValue) string {
	if s, ok := av["id"].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func conditionFailed() error {
	return &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.table = aws.ToString(in.TableName)
	id := keyOf(in.Item)
	if _, ok := f.items[id]; ok && strings.Contains(aws.ToString(in.ConditionExpression), "attribute_not_exists") {
		return nil, conditionFailed()
	}
	f.items[id] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dynamodb.GetItemOutput{Item: f.items[keyOf(in.Key)]}, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	id := keyOf(in.Key)
	current, ok := f.items[id]
	if !ok {
		return nil, conditionFailed()
	}
	updated := make(map[string]types.AttributeValue, len(current))
	for k, v := range current {
		updated[k] = v
	}
	for placeholder, attr := range in.ExpressionAttributeNames {
		if v, ok := in.ExpressionAttributeValues[":"+strings.TrimPrefix(placeholder, "#")]; ok {
			updated[attr] = v
		}
	}
	f.items[id] = updated
	return &dynamodb.UpdateItemOutput{Attributes: updated}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	id := keyOf(in.Key)
	old, ok := f.items[id]
	if !ok {
		return nil, conditionFailed()
	}
	delete(f.items, id)
	return &dynamodb.DeleteItemOutput{Attributes: old}, nil
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.scans++
	ids := make([]string, 0, len(f.items))
	for id := range f.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	start := 0
	if after := keyOf(in.ExclusiveStartKey); after != "" {
		start = sort.SearchStrings(ids, after) + 1
	}
	end := start + f.pageSize
	if end > len(ids) {
		end = len(ids)
	}

	out := &dynamodb.ScanOutput{}
	for _, id := range ids[start:end] {
		out.Items = append(out.Items, f.items[id])
	}
	if end < len(ids) {
		out.LastEvaluatedKey = idKey(ids[end-1])
	}
	return out, nil
}

func sampleEstimate(id string, createdAt time.Time) entities.Estimate {
	return entities.Estimate{
		ID: id,
		Items: []entities.ProcessedItem{
			{
				Order: []entities.OrderLine{{
					Type: "labor", Item: "digout", Units: 3, Time: entities.Float64(3), Rate: 30,
					Margin: entities.Float64(30), Mode: entities.PricingModeTime,
				}},
				Cost:  270,
				Price: 386,
			},
		},
		Total:     entities.Total{Cost: 270, Margin: 30, Price: 386},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestEstimateDynamoRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	ddb := newFakeDynamo()
	repo := NewEstimateDynamoRepository(ddb, "")

	now := time.Now().UTC().Truncate(time.Millisecond)
	e := sampleEstimate("est-1", now)

	_, err := repo.Create(ctx, e)
	require.NoError(t, err)
	assert.Equal(t, DefaultEstimatesTableName, ddb.table)

	_, err = repo.Create(ctx, e)
	var cfe *types.ConditionalCheckFailedException
	require.ErrorAs(t, err, &cfe, "duplicate ids must be rejected")

	got, err := repo.GetByID(ctx, "est-1")
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)
	assert.Equal(t, e.Items, got.Items)
	assert.Equal(t, e.Total, got.Total)
	assert.True(t, got.CreatedAt.Equal(now))

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, missing.ID)
}

func TestEstimateDynamoRepository_List(t *testing.T) {
	ctx := context.Background()
	ddb := newFakeDynamo()
	ddb.pageSize = 2
	repo := NewEstimateDynamoRepository(ddb, "estimates-test")

	base := time.Now().UTC()
	for i, id := range []string{"c", "a", "b", "d", "e"} {
		_, err := repo.Create(ctx, sampleEstimate(id, base.Add(time.Duration(i)*time.Second)))
		require.NoError(t, err)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 5)
	assert.Equal(t, 3, ddb.scans, "expected paginated scan")

	ids := make([]string, 0, len(list))
	for _, e := range list {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"c", "a", "b", "d", "e"}, ids)
}

func TestEstimateDynamoRepository_ListEmpty(t *testing.T) {
	repo := NewEstimateDynamoRepository(newFakeDynamo(), "")
	list, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestEstimateDynamoRepository_ReplaceItemsByID(t *testing.T) {
	ctx := context.Background()
	repo := NewEstimateDynamoRepository(newFakeDynamo(), "")

	created := time.Now().UTC().Add(-time.Hour)
	_, err := repo.Create(ctx, sampleEstimate("est-1", created))
	require.NoError(t, err)

	items := []entities.ProcessedItem{{
		Order: []entities.OrderLine{{Type: "materials", Item: "asphalt", Units: 100, Rate: 75, Margin: entities.Float64(20), Mode: entities.PricingModeFlat}},
		Cost:  7500,
		Price: 9375,
	}}
	total := entities.Total{Cost: 7500, Margin: 20, Price: 9375}

	updated, err := repo.ReplaceItemsByID(ctx, "est-1", items, total)
	require.NoError(t, err)
	assert.Equal(t, items, updated.Items)
	assert.Equal(t, total, updated.Total)
	assert.True(t, updated.UpdatedAt.After(created))

	got, err := repo.GetByID(ctx, "est-1")
	require.NoError(t, err)
	assert.Equal(t, total, got.Total)

	missing, err := repo.ReplaceItemsByID(ctx, "nope", items, total)
	require.NoError(t, err)
	assert.Empty(t, missing.ID)
}

func TestEstimateDynamoRepository_DeleteByID(t *testing.T) {
	ctx := context.Background()
	repo := NewEstimateDynamoRepository(newFakeDynamo(), "")

	_, err := repo.Create(ctx, sampleEstimate("est-1", time.Now()))
	require.NoError(t, err)

	deleted, err := repo.DeleteByID(ctx, "est-1")
	require.NoError(t, err)
	assert.Equal(t, "est-1", deleted.ID)

	again, err := repo.DeleteByID(ctx, "est-1")
	require.NoError(t, err)
	assert.Empty(t, again.ID)

	got, err := repo.GetByID(ctx, "est-1")
	require.NoError(t, err)
	assert.Empty(t, got.ID)
}

func TestEstimateDynamoRepository_StoreErrors(t *testing.T) {
	ctx := context.Background()
	ddb := newFakeDynamo()
	ddb.err = errors.New("throttled")
	repo := NewEstimateDynamoRepository(ddb, "")

	_, err := repo.Create(ctx, sampleEstimate("est-1", time.Now()))
	require.ErrorContains(t, err, "put estimate: throttled")

	_, err = repo.GetByID(ctx, "est-1")
	require.ErrorContains(t, err, "get estimate")

	_, err = repo.List(ctx)
	require.ErrorContains(t, err, "scan estimates")

	_, err = repo.ReplaceItemsByID(ctx, "est-1", nil, entities.Total{})
	require.ErrorContains(t, err, "update estimate")

	_, err = repo.DeleteByID(ctx, "est-1")
	require.ErrorIs(t, err, ddb.err)
}
