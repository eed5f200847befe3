package repository

import (
	"context"
	"sort"
	"time"

	"cost_estimates/internal/domain/entities"
	"cost_estimates/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-faster/errors"
)

const DefaultEstimatesTableName = "estimates"

// DynamoDBAPI is the subset of *dynamodb.Client used by the repository.
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

type estimateItem struct {
	ID        string                   `dynamodbav:"id"`
	Items     []entities.ProcessedItem `dynamodbav:"items"`
	Total     entities.Total           `dynamodbav:"total"`
	CreatedAt string                   `dynamodbav:"created_at"`
	UpdatedAt string                   `dynamodbav:"updated_at"`
}

// EstimateDynamoRepository persists Estimate documents in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Items and total are stored as nested list/map attributes of the same
// record, so an update rewrites both in a single UpdateItem call.

type EstimateDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IEstimateRepository = (*EstimateDynamoRepository)(nil)

func NewEstimateDynamoRepository(ddb DynamoDBAPI, tableName string) *EstimateDynamoRepository {
	if tableName == "" {
		tableName = DefaultEstimatesTableName
	}
	return &EstimateDynamoRepository{
		ddb:       ddb,
		tableName: tableName,
	}
}

func (r *EstimateDynamoRepository) Create(ctx context.Context, e entities.Estimate) (entities.Estimate, error) {
	av, err := attributevalue.MarshalMap(toEstimateItem(e))
	if err != nil {
		return entities.Estimate{}, errors.Wrap(err, "marshal estimate")
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Estimate{}, errors.Wrap(err, "put estimate")
	}
	return e, nil
}

func (r *EstimateDynamoRepository) List(ctx context.Context) ([]entities.Estimate, error) {
	out := make([]entities.Estimate, 0)
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "scan estimates")
		}
		var its []estimateItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &its); err != nil {
			return nil, errors.Wrap(err, "unmarshal estimates")
		}
		for _, it := range its {
			out = append(out, fromEstimateItem(it))
		}
	}

	// Scan order is arbitrary; keep creation order for clients.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *EstimateDynamoRepository) GetByID(ctx context.Context, id string) (entities.Estimate, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Estimate{}, errors.Wrap(err, "get estimate")
	}
	return decodeEstimate(out.Item)
}

func (r *EstimateDynamoRepository) ReplaceItemsByID(ctx context.Context, id string, items []entities.ProcessedItem, total entities.Total) (entities.Estimate, error) {
	itemsAV, err := attributevalue.Marshal(items)
	if err != nil {
		return entities.Estimate{}, errors.Wrap(err, "marshal items")
	}
	totalAV, err := attributevalue.Marshal(total)
	if err != nil {
		return entities.Estimate{}, errors.Wrap(err, "marshal total")
	}

	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #items = :items, #total = :total, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":items":      itemsAV,
			":total":      totalAV,
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#items":      "items",
			"#total":      "total",
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
}

func (r *EstimateDynamoRepository) DeleteByID(ctx context.Context, id string) (entities.Estimate, error) {
	out, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 idKey(id),
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.Estimate{}, nil
		}
		return entities.Estimate{}, errors.Wrap(err, "delete estimate")
	}
	return decodeEstimate(out.Attributes)
}

func (r *EstimateDynamoRepository) update(
	ctx context.Context,
	id string,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Estimate, error) {
	updateExpr, values, names := build(formatTime(time.Now()))

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       idKey(id),
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.Estimate{}, nil
		}
		return entities.Estimate{}, errors.Wrap(err, "update estimate")
	}
	return decodeEstimate(out.Attributes)
}

func isConditionFailed(err error) bool {
	var cfe *types.ConditionalCheckFailedException
	return errors.As(err, &cfe)
}

// decodeEstimate returns a zero Estimate for an empty attribute map.
func decodeEstimate(av map[string]types.AttributeValue) (entities.Estimate, error) {
	if len(av) == 0 {
		return entities.Estimate{}, nil
	}
	var it estimateItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.Estimate{}, errors.Wrap(err, "unmarshal estimate")
	}
	return fromEstimateItem(it), nil
}

func toEstimateItem(e entities.Estimate) estimateItem {
	return estimateItem{
		ID:        e.ID,
		Items:     e.Items,
		Total:     e.Total,
		CreatedAt: formatTime(e.CreatedAt),
		UpdatedAt: formatTime(e.UpdatedAt),
	}
}

func fromEstimateItem(it estimateItem) entities.Estimate {
	return entities.Estimate{
		ID:        it.ID,
		Items:     it.Items,
		Total:     it.Total,
		CreatedAt: parseTime(it.CreatedAt),
		UpdatedAt: parseTime(it.UpdatedAt),
	}
}
