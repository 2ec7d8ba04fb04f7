package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"square_gateway/internal/domain/entities"
	"square_gateway/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type webhookEventItem struct {
	EventID    string `dynamodbav:"event_id"`
	Type       string `dynamodbav:"type"`
	MerchantID string `dynamodbav:"merchant_id,omitempty"`
	ReceivedAt string `dynamodbav:"received_at"`
	ExpiresAt  int64  `dynamodbav:"expires_at"`
}

// dynamoAPI is the slice of *dynamodb.Client the repository needs.
type dynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// WebhookEventDynamoRepository stores one dedupe marker per Square event id.
//
// Table requirements:
//   - PK: event_id (string)
//   - TTL attribute: expires_at (epoch seconds)
//
// Only envelope metadata is stored, never the event body.
type WebhookEventDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IWebhookEventRepository = (*WebhookEventDynamoRepository)(nil)

// NewWebhookEventDynamoRepository binds the repository to tableName, which the config layer resolves.
func NewWebhookEventDynamoRepository(ddb *dynamodb.Client, tableName string) *WebhookEventDynamoRepository {
	return newWebhookEventDynamoRepository(ddb, tableName)
}

func newWebhookEventDynamoRepository(ddb dynamoAPI, tableName string) *WebhookEventDynamoRepository {
	return &WebhookEventDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *WebhookEventDynamoRepository) MarkReceived(ctx context.Context, receipt entities.WebhookReceipt) (bool, error) {
	av, err := attributevalue.MarshalMap(toWebhookEventItem(receipt))
	if err != nil {
		return false, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
		// A marker past its TTL may linger until DynamoDB sweeps it; treat it as absent.
		ConditionExpression: aws.String("attribute_not_exists(#id) OR #exp < :now"),
		ExpressionAttributeNames: map[string]string{
			"#id":  "event_id",
			"#exp": "expires_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":now": &types.AttributeValueMemberN{Value: strconv.FormatInt(receipt.ReceivedAt.Unix(), 10)},
		},
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *WebhookEventDynamoRepository) Forget(ctx context.Context, eventID string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"event_id": &types.AttributeValueMemberS{Value: eventID},
		},
	})
	return err
}

func toWebhookEventItem(r entities.WebhookReceipt) webhookEventItem {
	return webhookEventItem{
		EventID:    r.EventID,
		Type:       r.Type,
		MerchantID: r.MerchantID,
		ReceivedAt: r.ReceivedAt.UTC().Format(time.RFC3339Nano),
		ExpiresAt:  r.ExpiresAt.Unix(),
	}
}
